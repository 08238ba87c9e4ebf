package domain

type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
)

// Identity is what a client claims about itself on join-room. The relay
// trusts it as-is; verification against the consultation service is the
// platform's concern.
type Identity struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
	UserRole Role   `json:"userRole"`
}

// Participant is a registered connection together with its claimed identity
// and, once joined, its room.
type Participant struct {
	ConnectionID ConnectionID `json:"connectionId"`
	Identity
	Room RoomID `json:"-"`
}
