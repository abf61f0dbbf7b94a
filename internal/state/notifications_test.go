package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

// notifServer is a stateful fake of the notification endpoints.
type notifServer struct {
	mu    sync.Mutex
	items []models.Notification
	gets  []url.Values // recorded /notifications queries
}

func newNotifServer() *notifServer {
	return &notifServer{
		items: []models.Notification{
			{ID: "n1", Type: "SYSTEME", Title: "Maintenance", Read: false},
			{ID: "n2", Type: "PROGRAMME", Title: "Nouvel atelier", Read: false},
			{ID: "n3", Type: "MEDIA", Title: "Photos en ligne", Read: true},
		},
	}
}

func (s *notifServer) unread() int {
	n := 0
	for _, item := range s.items {
		if !item.Read {
			n++
		}
	}
	return n
}

func (s *notifServer) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")

		ok := func(data interface{}) {
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			s.gets = append(s.gets, r.URL.Query())
			limit := len(s.items)
			if v := r.URL.Query().Get("limit"); v != "" {
				limit, _ = strconv.Atoi(v)
			}
			items := s.items
			if len(items) > limit {
				items = items[:limit]
			}
			ok(map[string]interface{}{
				"notifications": items,
				"pagination":    models.NewPagination(len(s.items), 1, limit),
				"nonLues":       s.unread(),
			})
		case r.URL.Path == "/notifications/non-lues":
			ok(map[string]int{"count": s.unread()})
		case r.Method == http.MethodPatch && r.URL.Path == "/notifications/tout-lues":
			for i := range s.items {
				s.items[i].Read = true
			}
			ok(map[string]int{"count": 0})
		case r.Method == http.MethodDelete:
			id := r.URL.Path[len("/notifications/"):]
			kept := s.items[:0]
			for _, item := range s.items {
				if item.ID != id {
					kept = append(kept, item)
				}
			}
			s.items = kept
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		case r.Method == http.MethodPatch:
			// /notifications/{id}/lue
			id := r.URL.Path[len("/notifications/") : len(r.URL.Path)-len("/lue")]
			for i := range s.items {
				if s.items[i].ID == id {
					s.items[i].Read = true
					ok(s.items[i])
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "introuvable", "code": "NOT_FOUND",
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "introuvable", "code": "NOT_FOUND",
			})
		}
	}
}

func newTestFeed(t *testing.T) (*NotificationFeed, *notifServer, *MemoryNotifier) {
	t.Helper()
	server := newNotifServer()
	srv := httptest.NewServer(server.handler())
	t.Cleanup(srv.Close)
	client := api.NewClient(srv.URL, api.NewMemoryTokenStore(), api.TransportOptions{})
	notifier := NewMemoryNotifier(10)
	feed := NewNotificationFeed(client.Notifications, notifier)
	t.Cleanup(feed.Close)
	return feed, server, notifier
}

func TestFeedLoadReplacesWholesale(t *testing.T) {
	feed, _, _ := newTestFeed(t)

	res := feed.Load(context.Background(), api.ListNotificationsOptions{})

	require.True(t, res.Success)
	assert.Len(t, feed.Items(), 3)
	assert.Equal(t, 2, feed.UnreadCount())
	assert.Equal(t, 3, feed.Meta().Total)
}

func TestFeedMarkReadPatchesLocallyAndRefetchesUnread(t *testing.T) {
	feed, server, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	res := feed.MarkRead(context.Background(), "n1")

	require.True(t, res.Success)
	items := feed.Items()
	for _, n := range items {
		if n.ID == "n1" {
			assert.True(t, n.Read)
		}
	}
	// The unread count comes back from the server, not local arithmetic.
	assert.Equal(t, 1, feed.UnreadCount())
	assert.Equal(t, 1, server.unread())
}

func TestFeedMarkReadFailureLeavesStateAlone(t *testing.T) {
	feed, _, notifier := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	res := feed.MarkRead(context.Background(), "missing")

	assert.False(t, res.Success)
	assert.Equal(t, 2, feed.UnreadCount())
	toast, ok := notifier.Latest()
	require.True(t, ok)
	assert.Equal(t, "error", toast.Level)
}

func TestFeedMarkAllReadZeroesOptimistically(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	res := feed.MarkAllRead(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, 0, feed.UnreadCount())
	for _, n := range feed.Items() {
		assert.True(t, n.Read)
	}
}

func TestFeedDeleteFiltersLocally(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	res := feed.Delete(context.Background(), "n2")

	require.True(t, res.Success)
	assert.Len(t, feed.Items(), 2)
	assert.Equal(t, 2, feed.Meta().Total)
	for _, n := range feed.Items() {
		assert.NotEqual(t, "n2", n.ID)
	}
	// n2 was unread, so the refetched count dropped.
	assert.Equal(t, 1, feed.UnreadCount())
}

func TestFeedChangeLimitResetsToPageOne(t *testing.T) {
	feed, server, _ := newTestFeed(t)
	three := 3
	feed.Load(context.Background(), api.ListNotificationsOptions{Page: api.Page{Page: &three}})

	feed.ChangeLimit(context.Background(), 2)

	server.mu.Lock()
	last := server.gets[len(server.gets)-1]
	server.mu.Unlock()
	assert.Equal(t, "1", last.Get("page"))
	assert.Equal(t, "2", last.Get("limit"))
	assert.Len(t, feed.Items(), 2)
}

func TestFeedFilterByReadResetsToPageOne(t *testing.T) {
	feed, server, _ := newTestFeed(t)
	two := 2
	feed.Load(context.Background(), api.ListNotificationsOptions{Page: api.Page{Page: &two}})

	read := false
	feed.FilterByRead(context.Background(), &read)

	server.mu.Lock()
	last := server.gets[len(server.gets)-1]
	server.mu.Unlock()
	assert.Equal(t, "false", last.Get("lue"))
	assert.Equal(t, "1", last.Get("page"))
}

func TestFeedApplyEventPrependsNew(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	feed.ApplyEvent(context.Background(), models.NotificationEvent{
		Type:         "notification:new",
		Notification: &models.Notification{ID: "n9", Title: "Flash", Read: false},
	})

	items := feed.Items()
	require.Len(t, items, 4)
	assert.Equal(t, "n9", items[0].ID)
	assert.Equal(t, 4, feed.Meta().Total)
}

func TestFeedApplyEventIgnoresUnknownType(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	feed.ApplyEvent(context.Background(), models.NotificationEvent{Type: "ping"})

	assert.Len(t, feed.Items(), 3)
}

func TestFeedPollingStopsOnCancel(t *testing.T) {
	feed, server, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	ctx, cancel := context.WithCancel(context.Background())
	feed.StartPolling(ctx, 10*time.Millisecond)
	time.Sleep(35 * time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	server.mu.Lock()
	after := len(server.gets)
	server.mu.Unlock()
	time.Sleep(30 * time.Millisecond)
	server.mu.Lock()
	final := len(server.gets)
	server.mu.Unlock()

	assert.Greater(t, after, 1)
	assert.Equal(t, after, final)
}

func TestFeedStartPollingIsIdempotent(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	feed.StartPolling(context.Background(), time.Hour)
	feed.StartPolling(context.Background(), time.Hour)
	feed.StopPolling()
	feed.StopPolling()
}

func TestFeedResetClearsEverything(t *testing.T) {
	feed, _, _ := newTestFeed(t)
	feed.Load(context.Background(), api.ListNotificationsOptions{})

	feed.Reset()

	assert.Empty(t, feed.Items())
	assert.Equal(t, 0, feed.UnreadCount())
	assert.Equal(t, models.Pagination{}, feed.Meta())
}
