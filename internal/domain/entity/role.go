package entity

// Role is carried in session token metadata, not a separate authorization table.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleFrontOffice Role = "fo"
	RoleDoctor      Role = "doctor_specialist"
	RoleNurse       Role = "nurse"
	RolePharmacist  Role = "pharmacist"
	RolePatient     Role = "patient"
)

// KnownRoles lists every role the dashboard can route.
var KnownRoles = []Role{
	RoleAdmin,
	RoleFrontOffice,
	RoleDoctor,
	RoleNurse,
	RolePharmacist,
	RolePatient,
}

// IsKnown reports whether r is one of the six recognized roles.
func (r Role) IsKnown() bool {
	for _, known := range KnownRoles {
		if r == known {
			return true
		}
	}
	return false
}

// IsStaff reports whether r belongs to hospital staff (everything but patient).
func (r Role) IsStaff() bool {
	return r.IsKnown() && r != RolePatient
}
