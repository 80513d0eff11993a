package dto

import (
	"time"

	"medisync/internal/domain/entity"

	"github.com/google/uuid"
)

// Request DTOs

// AnalyzeNoteRequest asks the AI to triage an intake note.
type AnalyzeNoteRequest struct {
	FoNote    string     `json:"fo_note" validate:"required"`
	PatientID *uuid.UUID `json:"patient_id,omitempty"`
}

// NewPatientForm is the inline registration sub-form shown when a NIK search
// finds nobody. All three fields must be filled before a ticket can be created.
type NewPatientForm struct {
	Name  string `json:"name" validate:"required"`
	Age   int    `json:"age" validate:"required,gte=0,lte=150"`
	Phone string `json:"phone" validate:"required"`
}

// CreateTicketRequest opens a care episode. Severity and care type carry the
// operator's final choice; the AI analysis only ever pre-fills them.
type CreateTicketRequest struct {
	NIK               string          `json:"nik" validate:"required,nik"`
	FoNote            string          `json:"fo_note" validate:"required"`
	DoctorID          *uuid.UUID      `json:"doctor_id,omitempty"`
	RequiresInpatient bool            `json:"requires_inpatient"`
	SeverityLevel     string          `json:"severity_level,omitempty" validate:"omitempty,oneof=low medium high critical"`
	AIReasoning       string          `json:"ai_reasoning,omitempty"`
	NewPatient        *NewPatientForm `json:"new_patient,omitempty"`
}

// CompleteCheckupRequest closes the doctor's examination.
type CompleteCheckupRequest struct {
	DoctorNote        string `json:"doctor_note" validate:"required"`
	RequirePharmacy   bool   `json:"require_pharmacy"`
	RequiresInpatient bool   `json:"requires_inpatient"`
}

type AssignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
}

type DoctorAssistRequest struct {
	NIK         string `json:"nik" validate:"required,nik"`
	DoctorDraft string `json:"doctor_draft,omitempty"`
}

// Response DTOs

// TicketResponse is the common projection of a ticket. CareType is derived
// from room presence so every view shows the same thing.
type TicketResponse struct {
	ID            int64               `json:"id"`
	FoNote        string              `json:"fo_note"`
	DoctorNote    *string             `json:"doctor_note,omitempty"`
	Status        entity.TicketStatus `json:"status"`
	SeverityLevel *string             `json:"severity_level,omitempty"`
	AIReasoning   *string             `json:"ai_reasoning,omitempty"`
	CareType      entity.CareType     `json:"care_type"`
	NurseTeamID   *int64              `json:"nurse_team_id,omitempty"`
	Patient       *PatientRef         `json:"patient,omitempty"`
	Doctor        *DoctorRef          `json:"doctor,omitempty"`
	Room          *RoomRef            `json:"room,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

type PatientRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	NIK  string    `json:"nik,omitempty"`
	Age  int       `json:"age,omitempty"`
}

type DoctorRef struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Specialization string    `json:"specialization,omitempty"`
}

type RoomRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Type string    `json:"type,omitempty"`
}

// CreateTicketResponse reports the new ticket plus the nurse team the
// backend assigned for inpatient care.
type CreateTicketResponse struct {
	TicketID          int64  `json:"ticket_id"`
	Status            string `json:"status"`
	AssignedNurseTeam *int64 `json:"assigned_nurse_team,omitempty"`
}

// PatientSearchResponse is the NIK lookup result. Found=false signals the
// front office to open the new-patient sub-form.
type PatientSearchResponse struct {
	Found   bool        `json:"found"`
	Patient *PatientRef `json:"patient,omitempty"`
}

// WardBoardResponse is the nurse ward board: active inpatient and operation
// tickets for one team. TeamID is nil when the nurse has no team.
type WardBoardResponse struct {
	TeamID  *int64           `json:"team_id"`
	Tickets []TicketResponse `json:"tickets"`
}
