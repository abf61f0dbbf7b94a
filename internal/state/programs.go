package state

import (
	"context"
	"sync"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// ProgramCatalog manages the programme listing: pagination, edition/day
// filters, and optimistic patching after admin mutations.
type ProgramCatalog struct {
	svc      *api.ProgramService
	notifier Notifier
	list     *Caller[models.ProgrammeList]

	mu    sync.Mutex
	items []models.Programme
	meta  models.Pagination
	opts  api.ListProgramsOptions
}

// NewProgramCatalog creates an empty catalog. notifier may be nil.
func NewProgramCatalog(svc *api.ProgramService, notifier Notifier) *ProgramCatalog {
	return &ProgramCatalog{
		svc:      svc,
		notifier: notifier,
		list:     NewCaller[models.ProgrammeList](notifier),
	}
}

// Load fetches one page and replaces the local collection on success.
func (c *ProgramCatalog) Load(ctx context.Context, opts api.ListProgramsOptions) api.Result[models.ProgrammeList] {
	c.mu.Lock()
	c.opts = opts
	c.mu.Unlock()

	return c.list.Call(func() api.Result[models.ProgrammeList] {
		return c.svc.List(ctx, opts)
	}, CallOptions[models.ProgrammeList]{
		Quiet: true,
		OnSuccess: func(data *models.ProgrammeList) {
			if data == nil {
				return
			}
			c.mu.Lock()
			c.items = data.Items
			c.meta = data.Meta
			c.mu.Unlock()
		},
	})
}

// GoToPage loads the given 1-indexed page with the current filters.
func (c *ProgramCatalog) GoToPage(ctx context.Context, page int) api.Result[models.ProgrammeList] {
	c.mu.Lock()
	opts := c.opts
	c.mu.Unlock()
	opts.Page.Page = &page
	return c.Load(ctx, opts)
}

// ChangeLimit sets a new page size and resets to page 1.
func (c *ProgramCatalog) ChangeLimit(ctx context.Context, limit int) api.Result[models.ProgrammeList] {
	c.mu.Lock()
	opts := c.opts
	c.mu.Unlock()
	first := 1
	opts.Page.Page = &first
	opts.Page.Limit = &limit
	return c.Load(ctx, opts)
}

// FilterByDay reloads page 1 scoped to one exhibition day; nil clears it.
func (c *ProgramCatalog) FilterByDay(ctx context.Context, day *string) api.Result[models.ProgrammeList] {
	c.mu.Lock()
	opts := c.opts
	c.mu.Unlock()
	first := 1
	opts.Day = day
	opts.Page.Page = &first
	return c.Load(ctx, opts)
}

// FilterByEdition reloads page 1 scoped to one edition; nil clears it.
func (c *ProgramCatalog) FilterByEdition(ctx context.Context, editionID *string) api.Result[models.ProgrammeList] {
	c.mu.Lock()
	opts := c.opts
	c.mu.Unlock()
	first := 1
	opts.EditionID = editionID
	opts.Page.Page = &first
	return c.Load(ctx, opts)
}

// Create schedules a programme and prepends it locally on success.
func (c *ProgramCatalog) Create(ctx context.Context, input models.ProgrammeInput) api.Result[models.Programme] {
	res := c.svc.Create(ctx, input)
	if res.Success && res.Data != nil {
		c.mu.Lock()
		c.items = append([]models.Programme{*res.Data}, c.items...)
		c.meta.Total++
		c.mu.Unlock()
	} else if !res.Success && c.notifier != nil {
		c.notifier.Error(res.Error)
	}
	return res
}

// Update replaces a programme and patches it in place on success.
func (c *ProgramCatalog) Update(ctx context.Context, id string, input models.ProgrammeInput) api.Result[models.Programme] {
	res := c.svc.Update(ctx, id, input)
	if res.Success && res.Data != nil {
		c.mu.Lock()
		for i := range c.items {
			if c.items[i].ID == id {
				c.items[i] = *res.Data
			}
		}
		c.mu.Unlock()
	} else if !res.Success && c.notifier != nil {
		c.notifier.Error(res.Error)
	}
	return res
}

// Delete removes a programme and filters it out locally on success.
func (c *ProgramCatalog) Delete(ctx context.Context, id string) api.Result[struct{}] {
	res := c.svc.Delete(ctx, id)
	if res.Success {
		c.mu.Lock()
		kept := c.items[:0]
		for _, p := range c.items {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		c.items = kept
		if c.meta.Total > 0 {
			c.meta.Total--
		}
		c.mu.Unlock()
	} else if c.notifier != nil {
		c.notifier.Error(res.Error)
	}
	return res
}

// Reset returns the catalog to its initial empty state.
func (c *ProgramCatalog) Reset() {
	c.list.Reset()
	c.mu.Lock()
	c.items = nil
	c.meta = models.Pagination{}
	c.opts = api.ListProgramsOptions{}
	c.mu.Unlock()
}

// Items returns a copy of the local collection.
func (c *ProgramCatalog) Items() []models.Programme {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Programme, len(c.items))
	copy(out, c.items)
	return out
}

// Meta returns the current pagination snapshot.
func (c *ProgramCatalog) Meta() models.Pagination {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// Loading reports whether a list load is in flight.
func (c *ProgramCatalog) Loading() bool {
	return c.list.Loading()
}

// Err returns the last list load error, if any.
func (c *ProgramCatalog) Err() (msg, code string) {
	return c.list.Err()
}
