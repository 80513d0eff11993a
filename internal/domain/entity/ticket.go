package entity

import (
	"time"

	"github.com/google/uuid"
)

// TicketStatus represents the lifecycle stage of a care episode.
type TicketStatus string

const (
	TicketStatusDraft           TicketStatus = "draft"
	TicketStatusAssignedDoctor  TicketStatus = "assigned_doctor"
	TicketStatusInProgress      TicketStatus = "in_progress"
	TicketStatusInpatient       TicketStatus = "inpatient"
	TicketStatusOperation       TicketStatus = "operation"
	TicketStatusWaitingPharmacy TicketStatus = "waiting_pharmacy"
	TicketStatusCompleted       TicketStatus = "completed"
)

// statusRank orders the lifecycle. Inpatient and operation share a rank:
// they are alternatives on the inpatient branch, not successive stages.
var statusRank = map[TicketStatus]int{
	TicketStatusDraft:           0,
	TicketStatusAssignedDoctor:  1,
	TicketStatusInProgress:      2,
	TicketStatusInpatient:       3,
	TicketStatusOperation:       3,
	TicketStatusWaitingPharmacy: 4,
	TicketStatusCompleted:       5,
}

// IsValid reports whether s is a known lifecycle status.
func (s TicketStatus) IsValid() bool {
	_, ok := statusRank[s]
	return ok
}

// CanAdvanceTo reports whether moving from s to next is a forward transition.
// Status never regresses; unknown statuses never advance anywhere.
func (s TicketStatus) CanAdvanceTo(next TicketStatus) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}

// CareType is derived from room occupancy, never stored.
type CareType string

const (
	CareInpatient  CareType = "inpatient"
	CareOutpatient CareType = "outpatient"
)

// Ticket represents one patient care episode.
type Ticket struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID     uuid.UUID     `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      *uuid.UUID    `gorm:"type:uuid;index" json:"doctor_id,omitempty"`
	FoNote        string        `gorm:"type:text;not null" json:"fo_note"`
	DoctorNote    *string       `gorm:"type:text" json:"doctor_note,omitempty"`
	Status        TicketStatus  `gorm:"type:varchar(32);not null;default:'draft';index" json:"status"`
	SeverityLevel *string       `gorm:"type:varchar(16)" json:"severity_level,omitempty"`
	AIReasoning   *string       `gorm:"type:text" json:"ai_reasoning,omitempty"`
	RoomID        *uuid.UUID    `gorm:"type:uuid;index" json:"room_id,omitempty"`
	NurseTeamID   *int64        `gorm:"index" json:"nurse_team_id,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient       Profile        `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor        *Doctor        `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Room          *Room          `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	NurseTeam     *NurseTeam     `gorm:"foreignKey:NurseTeamID" json:"nurse_team,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:TicketID" json:"prescriptions,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// CareType derives the care type: a room assignment means inpatient care.
// Every view that displays a ticket must present this derivation, never a
// separately stored flag.
func (t *Ticket) CareType() CareType {
	if t.RoomID != nil {
		return CareInpatient
	}
	return CareOutpatient
}

// IsCompleted checks whether the episode has reached its terminal status.
func (t *Ticket) IsCompleted() bool {
	return t.Status == TicketStatusCompleted
}

// Room is a ward room; presence on a ticket implies inpatient care.
type Room struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"type:varchar(100);not null" json:"name"`
	Type string    `gorm:"type:varchar(50)" json:"type"`
}

func (Room) TableName() string {
	return "rooms"
}

// NurseTeam is a named group responsible for a ward of inpatients.
type NurseTeam struct {
	ID   int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);not null" json:"name"`
}

func (NurseTeam) TableName() string {
	return "nurse_teams"
}
