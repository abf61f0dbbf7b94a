package models

import "time"

// User roles as stored by the backend.
const (
	RoleAdmin     = "ADMIN"
	RoleExhibitor = "EXPOSANT"
	RoleVolunteer = "BENEVOLE"
	RolePartner   = "PARTENAIRE"
	RoleVisitor   = "VISITEUR"
)

// User is a platform account.
type User struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	FirstName     string    `json:"prenom"`
	LastName      string    `json:"nom"`
	Phone         string    `json:"telephone,omitempty"`
	Organization  string    `json:"organisation,omitempty"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"emailVerifie"`
	Active        bool      `json:"actif"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FullName returns "Prenom Nom" for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	return u.FirstName + " " + u.LastName
}

// Session is the authenticated token pair returned by login/refresh.
type Session struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int    `json:"expiresIn,omitempty"` // seconds
	User         User   `json:"user"`
}

// UserList is the admin user listing payload.
type UserList struct {
	Users []User     `json:"users"`
	Meta  Pagination `json:"pagination"`
}
