package model

import (
	"encoding/json"
)

// Role is the backend's authorization role for a user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is a Gigglit account as returned by the backend.
// Token is only populated for the authenticated subject on login/signup.
type User struct {
	ID        ID     `json:"_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Followers []ID   `json:"followers"`
	Bookmarks []ID   `json:"bookmarks,omitempty"`
	Token     string `json:"token,omitempty"`
}

// IsFollowedBy reports whether actor appears in the user's follower list.
func (u User) IsFollowedBy(actor ID) bool {
	return ContainsID(u.Followers, actor)
}

// UserRef is a post's author reference. The backend either embeds a user
// object or sends the bare identifier.
type UserRef struct {
	ID   ID     `json:"_id"`
	Name string `json:"name,omitempty"`
}

// UnmarshalJSON decodes either an embedded user object or a bare ID.
func (r *UserRef) UnmarshalJSON(b []byte) error {
	if isEmbeddedObject(b) {
		type plain UserRef
		var p plain
		if err := json.Unmarshal(b, &p); err != nil {
			return err
		}
		*r = UserRef(p)
		return nil
	}
	var id ID
	if err := id.UnmarshalJSON(b); err != nil {
		return err
	}
	*r = UserRef{ID: id}
	return nil
}

// DisplayName returns the author name or a placeholder for unresolved refs.
func (r UserRef) DisplayName() string {
	if r.Name == "" {
		return "Unknown User"
	}
	return r.Name
}
