package state

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

func newTestCatalog(t *testing.T) (*ProgramCatalog, *MemoryNotifier) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		ok := func(data interface{}) {
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
		}
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/programmes":
			ok(map[string]interface{}{
				"programmes": []models.Programme{
					{ID: "p1", Day: "2026-10-03", Title: "Conférence tabac", Category: "CONFERENCE"},
					{ID: "p2", Day: "2026-10-04", Title: "Atelier nutrition", Category: "ATELIER"},
				},
				"pagination": models.NewPagination(2, 1, 10),
			})
		case r.Method == http.MethodPost && r.URL.Path == "/programmes":
			var input models.ProgrammeInput
			json.NewDecoder(r.Body).Decode(&input)
			ok(models.Programme{ID: "p3", Day: input.Day, Title: input.Title, Category: input.Category})
		case r.Method == http.MethodPut && r.URL.Path == "/programmes/p1":
			var input models.ProgrammeInput
			json.NewDecoder(r.Body).Decode(&input)
			ok(models.Programme{ID: "p1", Day: input.Day, Title: input.Title, Category: input.Category})
		case r.Method == http.MethodDelete:
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false, "error": "introuvable", "code": "NOT_FOUND",
			})
		}
	}))
	t.Cleanup(srv.Close)

	client := api.NewClient(srv.URL, api.NewMemoryTokenStore(), api.TransportOptions{})
	notifier := NewMemoryNotifier(10)
	return NewProgramCatalog(client.Programs, notifier), notifier
}

func TestCatalogLoad(t *testing.T) {
	catalog, _ := newTestCatalog(t)

	res := catalog.Load(context.Background(), api.ListProgramsOptions{})

	require.True(t, res.Success)
	assert.Len(t, catalog.Items(), 2)
	assert.Equal(t, 2, catalog.Meta().Total)
}

func TestCatalogCreatePrepends(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	catalog.Load(context.Background(), api.ListProgramsOptions{})

	res := catalog.Create(context.Background(), models.ProgrammeInput{
		Day: "2026-10-05", Title: "Dépistage auditif", Category: "DEPISTAGE",
	})

	require.True(t, res.Success)
	items := catalog.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "p3", items[0].ID)
	assert.Equal(t, 3, catalog.Meta().Total)
}

func TestCatalogUpdatePatchesInPlace(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	catalog.Load(context.Background(), api.ListProgramsOptions{})

	res := catalog.Update(context.Background(), "p1", models.ProgrammeInput{
		Day: "2026-10-03", Title: "Conférence alcool", Category: "CONFERENCE",
	})

	require.True(t, res.Success)
	items := catalog.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "Conférence alcool", items[0].Title)
	assert.Equal(t, "p1", items[0].ID)
}

func TestCatalogDeleteFilters(t *testing.T) {
	catalog, _ := newTestCatalog(t)
	catalog.Load(context.Background(), api.ListProgramsOptions{})

	res := catalog.Delete(context.Background(), "p1")

	require.True(t, res.Success)
	items := catalog.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "p2", items[0].ID)
	assert.Equal(t, 1, catalog.Meta().Total)
}

func TestCatalogMutationFailureEmitsToast(t *testing.T) {
	catalog, notifier := newTestCatalog(t)
	catalog.Load(context.Background(), api.ListProgramsOptions{})

	res := catalog.Update(context.Background(), "missing", models.ProgrammeInput{})

	require.False(t, res.Success)
	toast, ok := notifier.Latest()
	require.True(t, ok)
	assert.Equal(t, "error", toast.Level)
	// Local state is untouched on failure.
	assert.Len(t, catalog.Items(), 2)
}
