package api

import (
	"context"
	"fmt"

	"sisexpo/pkg/models"
)

// AdminService covers the administration endpoints.
type AdminService struct {
	t *Transport
}

// ListUsersOptions filters the admin user listing.
type ListUsersOptions struct {
	Role   *string
	Search *string
	Page
}

// ListUsers returns one page of accounts.
func (s *AdminService) ListUsers(ctx context.Context, opts ListUsersOptions) Result[models.UserList] {
	q := NewQuery()
	q.String("role", opts.Role)
	q.String("search", opts.Search)
	opts.apply(q)
	return Decode[models.UserList](s.t.Get(ctx, "/admin/users", q))
}

// UpdateUserRole changes an account's role.
func (s *AdminService) UpdateUserRole(ctx context.Context, id, role string) Result[models.User] {
	body := map[string]string{"role": role}
	return Decode[models.User](s.t.Patch(ctx, fmt.Sprintf("/admin/users/%s/role", id), body))
}

// DeactivateUser disables an account without deleting it.
func (s *AdminService) DeactivateUser(ctx context.Context, id string) Result[models.User] {
	return Decode[models.User](s.t.Patch(ctx, fmt.Sprintf("/admin/users/%s/deactivate", id), nil))
}
