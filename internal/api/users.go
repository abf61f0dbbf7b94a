package api

import (
	"context"
	"fmt"

	"sisexpo/pkg/models"
)

// UserService covers profile endpoints for the authenticated user.
type UserService struct {
	t *Transport
}

// Me returns the authenticated user's profile.
func (s *UserService) Me(ctx context.Context) Result[models.User] {
	return Decode[models.User](s.t.Get(ctx, "/users/me", nil))
}

// Get returns a user by id.
func (s *UserService) Get(ctx context.Context, id string) Result[models.User] {
	return Decode[models.User](s.t.Get(ctx, fmt.Sprintf("/users/%s", id), nil))
}

// UpdateProfileRequest carries the editable profile fields.
type UpdateProfileRequest struct {
	FirstName    string `json:"prenom,omitempty"`
	LastName     string `json:"nom,omitempty"`
	Phone        string `json:"telephone,omitempty"`
	Organization string `json:"organisation,omitempty"`
}

// UpdateProfile updates the authenticated user's profile.
func (s *UserService) UpdateProfile(ctx context.Context, req UpdateProfileRequest) Result[models.User] {
	return Decode[models.User](s.t.Put(ctx, "/users/me", req))
}

// ChangePassword replaces the current password.
func (s *UserService) ChangePassword(ctx context.Context, current, next string) Result[struct{}] {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	return Decode[struct{}](s.t.Put(ctx, "/users/me/password", body))
}
