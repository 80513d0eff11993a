package entity

import (
	"time"

	"github.com/google/uuid"
)

// Profile represents one account in the hospital: staff or patient.
// Role lives here the same way the auth service keeps it in user metadata.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Email     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	NIK       string    `gorm:"type:char(16);uniqueIndex" json:"nik,omitempty"`
	Role      Role      `gorm:"type:varchar(32);not null;index" json:"role"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Age       int       `gorm:"default:0" json:"age,omitempty"`
	TeamID    *int64    `gorm:"index" json:"team_id,omitempty"` // nurse ward team, nil for other roles
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor *Doctor    `gorm:"foreignKey:UserID" json:"doctor,omitempty"`
	Team   *NurseTeam `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

func (Profile) TableName() string {
	return "profiles"
}

// Doctor carries doctor-specific fields for profiles with the doctor role.
type Doctor struct {
	UserID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Specialization string    `gorm:"type:varchar(100);index" json:"specialization"`

	// Relationships
	Profile Profile  `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	Tickets []Ticket `gorm:"foreignKey:DoctorID" json:"tickets,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}
