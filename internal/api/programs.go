package api

import (
	"context"
	"fmt"

	"sisexpo/pkg/models"
)

// ProgramService covers the programme endpoints. Mutations are admin-only;
// the backend enforces the role, this layer just shapes the calls.
type ProgramService struct {
	t *Transport
}

// ListProgramsOptions filters the programme listing.
type ListProgramsOptions struct {
	EditionID *string
	Day       *string // backend query param "jour", ISO date
	Category  *string
	Page
}

// List returns one page of scheduled programmes.
func (s *ProgramService) List(ctx context.Context, opts ListProgramsOptions) Result[models.ProgrammeList] {
	q := NewQuery()
	q.String("editionId", opts.EditionID)
	q.String("jour", opts.Day)
	q.String("categorie", opts.Category)
	opts.apply(q)
	return Decode[models.ProgrammeList](s.t.Get(ctx, "/programmes", q))
}

// Get returns one programme.
func (s *ProgramService) Get(ctx context.Context, id string) Result[models.Programme] {
	return Decode[models.Programme](s.t.Get(ctx, fmt.Sprintf("/programmes/%s", id), nil))
}

// Create schedules a new programme.
func (s *ProgramService) Create(ctx context.Context, req models.ProgrammeInput) Result[models.Programme] {
	return Decode[models.Programme](s.t.Post(ctx, "/programmes", req))
}

// Update replaces a programme's fields.
func (s *ProgramService) Update(ctx context.Context, id string, req models.ProgrammeInput) Result[models.Programme] {
	return Decode[models.Programme](s.t.Put(ctx, fmt.Sprintf("/programmes/%s", id), req))
}

// Delete removes a programme from the schedule.
func (s *ProgramService) Delete(ctx context.Context, id string) Result[struct{}] {
	return Decode[struct{}](s.t.Delete(ctx, fmt.Sprintf("/programmes/%s", id)))
}
