package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisexpo/pkg/models"
)

// fakeBackend records requests and serves canned notification payloads with
// server-side mark-all semantics, so idempotence is observable.
type fakeBackend struct {
	mu       sync.Mutex
	requests []string // "METHOD path?query"
	unread   int
}

func (f *fakeBackend) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		url := r.URL.Path
		if r.URL.RawQuery != "" {
			url += "?" + r.URL.RawQuery
		}
		f.requests = append(f.requests, r.Method+" "+url)
		f.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/notifications":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data": map[string]interface{}{
					"notifications": []map[string]interface{}{
						{"id": "n1", "type": "SYSTEME", "titre": "Maintenance", "lue": false},
						{"id": "n2", "type": "PROGRAMME", "titre": "Nouvel atelier", "lue": true},
					},
					"pagination": map[string]int{"total": 2, "page": 1, "limit": 10, "totalPages": 1},
					"nonLues":    f.unreadCount(),
				},
			})
		case r.URL.Path == "/notifications/non-lues":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]int{"count": f.unreadCount()},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/notifications/tout-lues":
			f.mu.Lock()
			f.unread = 0
			f.mu.Unlock()
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"message": "toutes les notifications sont lues",
				"data":    map[string]int{"count": 0},
			})
		case r.Method == http.MethodPatch && r.URL.Path == "/notifications/n1/lue":
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    map[string]interface{}{"id": "n1", "titre": "Maintenance", "lue": true},
			})
		case r.Method == http.MethodDelete && r.URL.Path == "/notifications/n1":
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "introuvable", "code": "NOT_FOUND",
			})
		}
	}
}

func (f *fakeBackend) unreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.unread
}

func (f *fakeBackend) lastRequest() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return ""
	}
	return f.requests[len(f.requests)-1]
}

func newFakeClient(t *testing.T, backend *fakeBackend) *Client {
	t.Helper()
	srv := httptest.NewServer(backend.handler())
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, NewMemoryTokenStore(), TransportOptions{})
}

func TestListNotificationsQueryShape(t *testing.T) {
	backend := &fakeBackend{unread: 1}
	client := newFakeClient(t, backend)

	read := false
	page, limit := 2, 10
	res := client.Notifications.List(context.Background(), ListNotificationsOptions{
		Read: &read,
		Page: Page{Page: &page, Limit: &limit},
	})

	require.True(t, res.Success)
	assert.Equal(t, "GET /notifications?lue=false&page=2&limit=10", backend.lastRequest())
	require.NotNil(t, res.Data)
	assert.Len(t, res.Data.Items, 2)
	assert.Equal(t, 1, res.Data.UnreadCount)
	assert.Equal(t, 1, res.Data.Meta.TotalPages)
}

func TestListNotificationsNoFiltersNoQuery(t *testing.T) {
	backend := &fakeBackend{}
	client := newFakeClient(t, backend)

	res := client.Notifications.List(context.Background(), ListNotificationsOptions{})

	require.True(t, res.Success)
	assert.Equal(t, "GET /notifications", backend.lastRequest())
}

func TestMarkAllReadIsIdempotent(t *testing.T) {
	backend := &fakeBackend{unread: 5}
	client := newFakeClient(t, backend)

	first := client.Notifications.MarkAllRead(context.Background())
	require.True(t, first.Success)
	assert.Equal(t, 0, backend.unreadCount())

	second := client.Notifications.MarkAllRead(context.Background())
	require.True(t, second.Success)
	require.NotNil(t, second.Data)
	assert.Equal(t, 0, second.Data.Count)
}

func TestMarkReadURL(t *testing.T) {
	backend := &fakeBackend{}
	client := newFakeClient(t, backend)

	res := client.Notifications.MarkRead(context.Background(), "n1")

	require.True(t, res.Success)
	assert.Equal(t, "PATCH /notifications/n1/lue", backend.lastRequest())
	require.NotNil(t, res.Data)
	assert.True(t, res.Data.Read)
}

func TestDeleteNotificationURL(t *testing.T) {
	backend := &fakeBackend{}
	client := newFakeClient(t, backend)

	res := client.Notifications.Delete(context.Background(), "n1")

	require.True(t, res.Success)
	assert.Equal(t, "DELETE /notifications/n1", backend.lastRequest())
}

func TestUnreadCountEndpoint(t *testing.T) {
	backend := &fakeBackend{unread: 3}
	client := newFakeClient(t, backend)

	res := client.Notifications.UnreadCount(context.Background())

	require.True(t, res.Success)
	assert.Equal(t, "GET /notifications/non-lues", backend.lastRequest())
	assert.Equal(t, 3, res.Data.Count)
}

func TestNotFoundFailureResult(t *testing.T) {
	backend := &fakeBackend{}
	client := newFakeClient(t, backend)

	res := client.Notifications.MarkRead(context.Background(), "missing")

	assert.False(t, res.Success)
	assert.Equal(t, "introuvable", res.Error)
	assert.Equal(t, "NOT_FOUND", res.Code)
	assert.Nil(t, res.Data)

	var appErr *models.AppError
	require.ErrorAs(t, res.Err(), &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}
