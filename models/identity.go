package models

// Identity is what an auth scheme attaches to a request once the bearer
// credential checks out. The external-token provider fills UID and Email;
// the local session provider fills everything it knows about the user.
type Identity struct {
	ID       uint   `json:"id,omitempty"`
	UID      string `json:"uid,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Role     string `json:"role,omitempty"`
}
