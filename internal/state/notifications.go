package state

import (
	"context"
	"sync"
	"time"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// NotificationFeed manages the notification list for a UI surface:
// pagination, read/type filters, optimistic local patching after mutations,
// and optional fixed-interval polling. Every full load replaces the local
// collection wholesale, so any drift introduced by an optimistic patch heals
// on the next refresh cycle.
type NotificationFeed struct {
	svc      *api.NotificationService
	notifier Notifier

	list  *Caller[models.NotificationList]
	count *Caller[models.UnreadCount]

	mu     sync.Mutex
	items  []models.Notification
	meta   models.Pagination
	unread int
	opts   api.ListNotificationsOptions

	pollMu     sync.Mutex
	pollCancel context.CancelFunc
}

// NewNotificationFeed creates an empty feed. notifier may be nil.
func NewNotificationFeed(svc *api.NotificationService, notifier Notifier) *NotificationFeed {
	return &NotificationFeed{
		svc:      svc,
		notifier: notifier,
		list:     NewCaller[models.NotificationList](notifier),
		count:    NewCaller[models.UnreadCount](notifier),
	}
}

// Load fetches one page with the given options and replaces the local
// collection and pagination snapshot on success. No merging is attempted.
func (f *NotificationFeed) Load(ctx context.Context, opts api.ListNotificationsOptions) api.Result[models.NotificationList] {
	f.mu.Lock()
	f.opts = opts
	f.mu.Unlock()

	return f.list.Call(func() api.Result[models.NotificationList] {
		return f.svc.List(ctx, opts)
	}, CallOptions[models.NotificationList]{
		Quiet: true,
		OnSuccess: func(data *models.NotificationList) {
			if data == nil {
				return
			}
			f.mu.Lock()
			f.items = data.Items
			f.meta = data.Meta
			f.unread = data.UnreadCount
			f.mu.Unlock()
		},
	})
}

// Refresh re-issues the last load.
func (f *NotificationFeed) Refresh(ctx context.Context) api.Result[models.NotificationList] {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	return f.Load(ctx, opts)
}

// GoToPage loads the given 1-indexed page with the current filters.
func (f *NotificationFeed) GoToPage(ctx context.Context, page int) api.Result[models.NotificationList] {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	opts.Page.Page = &page
	return f.Load(ctx, opts)
}

// ChangeLimit sets a new page size. The page always resets to 1 so the
// request cannot point at an offset the new size made invalid.
func (f *NotificationFeed) ChangeLimit(ctx context.Context, limit int) api.Result[models.NotificationList] {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	first := 1
	opts.Page.Page = &first
	opts.Page.Limit = &limit
	return f.Load(ctx, opts)
}

// FilterByType reloads page 1 filtered to one notification type; nil clears
// the filter.
func (f *NotificationFeed) FilterByType(ctx context.Context, typ *string) api.Result[models.NotificationList] {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	first := 1
	opts.Type = typ
	opts.Page.Page = &first
	return f.Load(ctx, opts)
}

// FilterByRead reloads page 1 filtered on the read flag; nil clears the filter.
func (f *NotificationFeed) FilterByRead(ctx context.Context, read *bool) api.Result[models.NotificationList] {
	f.mu.Lock()
	opts := f.opts
	f.mu.Unlock()
	first := 1
	opts.Read = read
	opts.Page.Page = &first
	return f.Load(ctx, opts)
}

// MarkRead flags one notification read. On success the local item is patched
// in place and the unread count re-fetched from the server; the count is
// never decremented locally, so client assumptions cannot drift from server
// truth.
func (f *NotificationFeed) MarkRead(ctx context.Context, id string) api.Result[models.Notification] {
	res := f.svc.MarkRead(ctx, id)
	if res.Success {
		f.mu.Lock()
		for i := range f.items {
			if f.items[i].ID == id {
				f.items[i].Read = true
			}
		}
		f.mu.Unlock()
		f.refreshUnread(ctx)
	} else if f.notifier != nil {
		f.notifier.Error(res.Error)
	}
	return res
}

// MarkAllRead flags everything read. The local items and unread count are
// rewritten optimistically; a partially failed server-side bulk update is
// reconciled by the next full load.
func (f *NotificationFeed) MarkAllRead(ctx context.Context) api.Result[models.UnreadCount] {
	res := f.svc.MarkAllRead(ctx)
	if res.Success {
		f.mu.Lock()
		for i := range f.items {
			f.items[i].Read = true
		}
		f.unread = 0
		f.mu.Unlock()
	} else if f.notifier != nil {
		f.notifier.Error(res.Error)
	}
	return res
}

// Delete removes one notification. The local item is filtered out and the
// unread count re-fetched, since this layer cannot know whether the deleted
// item was still counted server-side.
func (f *NotificationFeed) Delete(ctx context.Context, id string) api.Result[struct{}] {
	res := f.svc.Delete(ctx, id)
	if res.Success {
		f.mu.Lock()
		kept := f.items[:0]
		for _, n := range f.items {
			if n.ID != id {
				kept = append(kept, n)
			}
		}
		f.items = kept
		if f.meta.Total > 0 {
			f.meta.Total--
		}
		f.mu.Unlock()
		f.refreshUnread(ctx)
	} else if f.notifier != nil {
		f.notifier.Error(res.Error)
	}
	return res
}

func (f *NotificationFeed) refreshUnread(ctx context.Context) {
	f.count.Call(func() api.Result[models.UnreadCount] {
		return f.svc.UnreadCount(ctx)
	}, CallOptions[models.UnreadCount]{
		Quiet: true,
		OnSuccess: func(data *models.UnreadCount) {
			if data == nil {
				return
			}
			f.mu.Lock()
			f.unread = data.Count
			f.mu.Unlock()
		},
	})
}

// ApplyEvent folds one live stream event into the local collection and
// re-fetches the unread count.
func (f *NotificationFeed) ApplyEvent(ctx context.Context, event models.NotificationEvent) {
	switch event.Type {
	case "notification:new":
		if event.Notification == nil {
			return
		}
		f.mu.Lock()
		f.items = append([]models.Notification{*event.Notification}, f.items...)
		f.meta.Total++
		f.mu.Unlock()
	case "notification:read":
		if event.Notification == nil {
			return
		}
		f.mu.Lock()
		for i := range f.items {
			if f.items[i].ID == event.Notification.ID {
				f.items[i].Read = true
			}
		}
		f.mu.Unlock()
	default:
		return
	}
	f.refreshUnread(ctx)
}

// StartPolling re-issues the current load at a fixed interval until
// StopPolling or Close. The interval is not adaptive: no backoff, no pause
// on inactive views. Simplicity over efficiency.
func (f *NotificationFeed) StartPolling(ctx context.Context, interval time.Duration) {
	f.pollMu.Lock()
	defer f.pollMu.Unlock()
	if f.pollCancel != nil {
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	f.pollCancel = cancel

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-pollCtx.Done():
				return
			case <-ticker.C:
				f.Refresh(pollCtx)
			}
		}
	}()
}

// StopPolling cancels the polling loop, if running.
func (f *NotificationFeed) StopPolling() {
	f.pollMu.Lock()
	defer f.pollMu.Unlock()
	if f.pollCancel != nil {
		f.pollCancel()
		f.pollCancel = nil
	}
}

// Close stops polling and resets the feed.
func (f *NotificationFeed) Close() {
	f.StopPolling()
	f.Reset()
}

// Reset returns the feed to its initial empty state.
func (f *NotificationFeed) Reset() {
	f.list.Reset()
	f.count.Reset()
	f.mu.Lock()
	f.items = nil
	f.meta = models.Pagination{}
	f.unread = 0
	f.opts = api.ListNotificationsOptions{}
	f.mu.Unlock()
}

// Items returns a copy of the local collection.
func (f *NotificationFeed) Items() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.items))
	copy(out, f.items)
	return out
}

// Meta returns the current pagination snapshot.
func (f *NotificationFeed) Meta() models.Pagination {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.meta
}

// UnreadCount returns the current unread aggregate.
func (f *NotificationFeed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

// Loading reports whether a list load is in flight.
func (f *NotificationFeed) Loading() bool {
	return f.list.Loading()
}

// Err returns the last list load error, if any.
func (f *NotificationFeed) Err() (msg, code string) {
	return f.list.Err()
}
