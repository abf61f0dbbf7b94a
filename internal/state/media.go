package state

import (
	"context"
	"io"
	"sync"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// MediaLibrary manages the media listing plus uploads and deletions with
// optimistic local patching.
type MediaLibrary struct {
	svc      *api.MediaService
	notifier Notifier
	list     *Caller[models.MediaList]

	mu    sync.Mutex
	items []models.Media
	meta  models.Pagination
	opts  api.ListMediaOptions
}

// NewMediaLibrary creates an empty library. notifier may be nil.
func NewMediaLibrary(svc *api.MediaService, notifier Notifier) *MediaLibrary {
	return &MediaLibrary{
		svc:      svc,
		notifier: notifier,
		list:     NewCaller[models.MediaList](notifier),
	}
}

// Load fetches one page and replaces the local collection on success.
func (l *MediaLibrary) Load(ctx context.Context, opts api.ListMediaOptions) api.Result[models.MediaList] {
	l.mu.Lock()
	l.opts = opts
	l.mu.Unlock()

	return l.list.Call(func() api.Result[models.MediaList] {
		return l.svc.List(ctx, opts)
	}, CallOptions[models.MediaList]{
		Quiet: true,
		OnSuccess: func(data *models.MediaList) {
			if data == nil {
				return
			}
			l.mu.Lock()
			l.items = data.Items
			l.meta = data.Meta
			l.mu.Unlock()
		},
	})
}

// GoToPage loads the given 1-indexed page with the current filters.
func (l *MediaLibrary) GoToPage(ctx context.Context, page int) api.Result[models.MediaList] {
	l.mu.Lock()
	opts := l.opts
	l.mu.Unlock()
	opts.Page.Page = &page
	return l.Load(ctx, opts)
}

// ChangeLimit sets a new page size and resets to page 1.
func (l *MediaLibrary) ChangeLimit(ctx context.Context, limit int) api.Result[models.MediaList] {
	l.mu.Lock()
	opts := l.opts
	l.mu.Unlock()
	first := 1
	opts.Page.Page = &first
	opts.Page.Limit = &limit
	return l.Load(ctx, opts)
}

// FilterByType reloads page 1 scoped to one media type; nil clears it.
func (l *MediaLibrary) FilterByType(ctx context.Context, typ *string) api.Result[models.MediaList] {
	l.mu.Lock()
	opts := l.opts
	l.mu.Unlock()
	first := 1
	opts.Type = typ
	opts.Page.Page = &first
	return l.Load(ctx, opts)
}

// Upload sends one file and prepends the created entry locally on success.
func (l *MediaLibrary) Upload(ctx context.Context, filename string, r io.Reader) api.Result[models.Media] {
	res := l.svc.Upload(ctx, filename, r)
	if res.Success && res.Data != nil {
		l.mu.Lock()
		l.items = append([]models.Media{*res.Data}, l.items...)
		l.meta.Total++
		l.mu.Unlock()
		if l.notifier != nil && res.Message != "" {
			l.notifier.Success(res.Message)
		}
	} else if !res.Success && l.notifier != nil {
		l.notifier.Error(res.Error)
	}
	return res
}

// Delete removes one entry and filters it out locally on success.
func (l *MediaLibrary) Delete(ctx context.Context, id string) api.Result[struct{}] {
	res := l.svc.Delete(ctx, id)
	if res.Success {
		l.mu.Lock()
		kept := l.items[:0]
		for _, m := range l.items {
			if m.ID != id {
				kept = append(kept, m)
			}
		}
		l.items = kept
		if l.meta.Total > 0 {
			l.meta.Total--
		}
		l.mu.Unlock()
	} else if l.notifier != nil {
		l.notifier.Error(res.Error)
	}
	return res
}

// Reset returns the library to its initial empty state.
func (l *MediaLibrary) Reset() {
	l.list.Reset()
	l.mu.Lock()
	l.items = nil
	l.meta = models.Pagination{}
	l.opts = api.ListMediaOptions{}
	l.mu.Unlock()
}

// Items returns a copy of the local collection.
func (l *MediaLibrary) Items() []models.Media {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.Media, len(l.items))
	copy(out, l.items)
	return out
}

// Meta returns the current pagination snapshot.
func (l *MediaLibrary) Meta() models.Pagination {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.meta
}

// Loading reports whether a list load is in flight.
func (l *MediaLibrary) Loading() bool {
	return l.list.Loading()
}

// Err returns the last list load error, if any.
func (l *MediaLibrary) Err() (msg, code string) {
	return l.list.Err()
}
