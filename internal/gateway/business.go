package gateway

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateTicketRequest opens a care episode. The inpatient flag, severity and
// reasoning hold whatever the operator settled on, AI-suggested or not.
type CreateTicketRequest struct {
	PatientID         uuid.UUID  `json:"patient_id"`
	FoNote            string     `json:"fo_note,omitempty"`
	DoctorID          *uuid.UUID `json:"doctor_id,omitempty"`
	RequiresInpatient bool       `json:"requires_inpatient,omitempty"`
	SeverityLevel     string     `json:"severity_level,omitempty"`
	AIReasoning       string     `json:"ai_reasoning,omitempty"`
}

// CreatedTicket is the backend's echo of the new ticket row.
type CreatedTicket struct {
	ID        int64     `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	Status    string    `json:"status"`
	CreatedAt string    `json:"created_at"`
}

type createTicketResponse struct {
	Status            string         `json:"status"`
	Ticket            *CreatedTicket `json:"ticket"`
	AssignedNurseTeam *int64         `json:"assigned_nurse_team"`
}

// CreateTicketResult pairs the ticket with the nurse team the backend's
// round-robin picked for inpatient episodes (nil for outpatient).
type CreateTicketResult struct {
	Ticket            *CreatedTicket
	AssignedNurseTeam *int64
}

func (c *Client) CreateTicket(ctx context.Context, req CreateTicketRequest) (*CreateTicketResult, error) {
	var res createTicketResponse
	if err := c.post(ctx, "/api/tickets/create", req, &res); err != nil {
		return nil, err
	}
	if res.Ticket == nil {
		return nil, &APIError{Status: 200, Message: "backend returned no ticket"}
	}
	return &CreateTicketResult{Ticket: res.Ticket, AssignedNurseTeam: res.AssignedNurseTeam}, nil
}

// CompleteCheckupRequest records the doctor's diagnosis and routes the ticket
// onward: pharmacy queue, inpatient ward, or straight to completed.
type CompleteCheckupRequest struct {
	DoctorNote        string `json:"doctor_note"`
	RequirePharmacy   bool   `json:"require_pharmacy,omitempty"`
	RequiresInpatient bool   `json:"requires_inpatient,omitempty"`
}

func (c *Client) CompleteCheckup(ctx context.Context, ticketID int64, req CompleteCheckupRequest) error {
	return c.post(ctx, fmt.Sprintf("/api/tickets/%d/complete-checkup", ticketID), req, nil)
}

type assignDoctorRequest struct {
	DoctorID uuid.UUID `json:"doctor_id"`
}

// AssignDoctor places the ticket in a doctor's queue.
func (c *Client) AssignDoctor(ctx context.Context, ticketID int64, doctorID uuid.UUID) error {
	return c.post(ctx, fmt.Sprintf("/api/tickets/%d/assign-doctor", ticketID), assignDoctorRequest{DoctorID: doctorID}, nil)
}

// RegisterPatientRequest creates a patient auth identity from the front
// office. The backend fixes the role to patient and stores the intake fields
// as user metadata.
type RegisterPatientRequest struct {
	NIK   string `json:"nik"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Phone string `json:"phone"`
}

// RegisteredPatient identifies the created patient.
type RegisteredPatient struct {
	ID   uuid.UUID `json:"id"`
	NIK  string    `json:"nik"`
	Name string    `json:"name"`
}

type registerPatientResponse struct {
	Status  string             `json:"status"`
	Message string             `json:"message,omitempty"`
	Patient *RegisteredPatient `json:"patient"`
}

func (c *Client) RegisterPatient(ctx context.Context, req RegisterPatientRequest) (*RegisteredPatient, error) {
	var res registerPatientResponse
	if err := c.post(ctx, "/api/patients/register", req, &res); err != nil {
		return nil, err
	}
	if res.Patient == nil {
		return nil, &APIError{Status: 200, Message: "patient registration failed"}
	}
	return res.Patient, nil
}

// AdminStats is the hospital summary for the admin overview.
type AdminStats struct {
	Patients int64           `json:"patients"`
	Doctors  int64           `json:"doctors"`
	Tickets  int64           `json:"tickets"`
	Revenue  decimal.Decimal `json:"revenue"`
}

func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var res AdminStats
	if err := c.get(ctx, "/api/admin/stats", &res); err != nil {
		return nil, err
	}
	return &res, nil
}
