package converter

import (
	"medisync/internal/delivery/dto"
	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

// TicketToResponse converts a Ticket entity to its common projection.
// Care type always comes from the room derivation so every view agrees.
func TicketToResponse(ticket *entity.Ticket) *dto.TicketResponse {
	if ticket == nil {
		return nil
	}

	response := &dto.TicketResponse{
		ID:            ticket.ID,
		FoNote:        ticket.FoNote,
		DoctorNote:    ticket.DoctorNote,
		Status:        ticket.Status,
		SeverityLevel: ticket.SeverityLevel,
		AIReasoning:   ticket.AIReasoning,
		CareType:      ticket.CareType(),
		NurseTeamID:   ticket.NurseTeamID,
		CreatedAt:     ticket.CreatedAt,
	}

	if ticket.Patient.ID != uuid.Nil {
		response.Patient = &dto.PatientRef{
			ID:   ticket.Patient.ID,
			Name: ticket.Patient.Name,
			NIK:  ticket.Patient.NIK,
			Age:  ticket.Patient.Age,
		}
	}

	if ticket.Doctor != nil {
		response.Doctor = &dto.DoctorRef{
			ID:             ticket.Doctor.UserID,
			Name:           ticket.Doctor.Profile.Name,
			Specialization: ticket.Doctor.Specialization,
		}
	}

	if ticket.Room != nil {
		response.Room = &dto.RoomRef{
			ID:   ticket.Room.ID,
			Name: ticket.Room.Name,
			Type: ticket.Room.Type,
		}
	}

	return response
}

// TicketsToResponses converts a slice of tickets.
func TicketsToResponses(tickets []entity.Ticket) []dto.TicketResponse {
	responses := make([]dto.TicketResponse, len(tickets))
	for i, ticket := range tickets {
		resp := TicketToResponse(&ticket)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
