package entities

// Role distinguishes the two kinds of clinic users
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Actor is the authenticated identity behind a request. Authentication itself
// happens upstream; the actor is carried through the request context.
type Actor struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	IsSuperuser bool   `json:"is_superuser"`
}
