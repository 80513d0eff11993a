package converter

import (
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"
)

// ProfileToUserResponse converts a Profile to the session user projection.
func ProfileToUserResponse(profile *entity.Profile) *dto.UserResponse {
	if profile == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        profile.ID,
		Email:     profile.Email,
		Name:      profile.Name,
		Role:      profile.Role,
		NIK:       profile.NIK,
		Phone:     profile.Phone,
		Age:       profile.Age,
		TeamID:    profile.TeamID,
		CreatedAt: profile.CreatedAt,
	}
}

// ProfileToStaffResponse converts a staff profile for the admin staff tab.
func ProfileToStaffResponse(profile *entity.Profile) dto.StaffMemberResponse {
	return dto.StaffMemberResponse{
		ID:        profile.ID,
		Name:      profile.Name,
		Role:      profile.Role,
		Email:     profile.Email,
		Phone:     profile.Phone,
		CreatedAt: profile.CreatedAt,
	}
}
