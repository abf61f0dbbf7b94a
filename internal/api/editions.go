package api

import (
	"context"

	"sisexpo/pkg/models"
)

// EditionService covers the exhibition edition registry.
type EditionService struct {
	t *Transport
}

// List returns all editions, newest first.
func (s *EditionService) List(ctx context.Context) Result[[]models.Edition] {
	return Decode[[]models.Edition](s.t.Get(ctx, "/editions", nil))
}

// Current returns the active edition.
func (s *EditionService) Current(ctx context.Context) Result[models.Edition] {
	return Decode[models.Edition](s.t.Get(ctx, "/editions/courante", nil))
}
