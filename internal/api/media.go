package api

import (
	"context"
	"fmt"
	"io"

	"sisexpo/pkg/models"
)

// MediaService covers the media library endpoints.
type MediaService struct {
	t *Transport
}

// ListMediaOptions filters the media listing.
type ListMediaOptions struct {
	Type      *string
	EditionID *string
	Page
}

// List returns one page of the media library.
func (s *MediaService) List(ctx context.Context, opts ListMediaOptions) Result[models.MediaList] {
	q := NewQuery()
	q.String("type", opts.Type)
	q.String("editionId", opts.EditionID)
	opts.apply(q)
	return Decode[models.MediaList](s.t.Get(ctx, "/media", q))
}

// Get returns one media entry.
func (s *MediaService) Get(ctx context.Context, id string) Result[models.Media] {
	return Decode[models.Media](s.t.Get(ctx, fmt.Sprintf("/media/%s", id), nil))
}

// Upload sends one file as multipart form data under the "file" field.
func (s *MediaService) Upload(ctx context.Context, filename string, r io.Reader) Result[models.Media] {
	return Decode[models.Media](s.t.Upload(ctx, "/media/upload", "file", filename, r))
}

// Delete removes one media entry.
func (s *MediaService) Delete(ctx context.Context, id string) Result[struct{}] {
	return Decode[struct{}](s.t.Delete(ctx, fmt.Sprintf("/media/%s", id)))
}
