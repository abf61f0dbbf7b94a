package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginationCeiling(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		limit      int
		totalPages int
	}{
		{"exact multiple", 20, 10, 2},
		{"remainder rounds up", 21, 10, 3},
		{"single partial page", 3, 10, 1},
		{"empty collection", 0, 10, 0},
		{"limit one", 5, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPagination(tt.total, 1, tt.limit)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.total, p.Total)
		})
	}
}

func TestNewPaginationZeroLimit(t *testing.T) {
	p := NewPagination(10, 1, 0)
	assert.Equal(t, 0, p.TotalPages)
}

func TestEnvelopeUnmarshalSuccess(t *testing.T) {
	raw := `{
		"success": true,
		"message": "ok",
		"data": {"count": 4},
		"timestamp": "2026-04-01T10:00:00Z"
	}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
	assert.JSONEq(t, `{"count": 4}`, string(env.Data))
	assert.Empty(t, env.Error)
}

func TestEnvelopeUnmarshalValidationFailure(t *testing.T) {
	raw := `{
		"success": false,
		"error": "données invalides",
		"code": "VALIDATION_ERROR",
		"details": [{"field": "email", "message": "email invalide"}],
		"timestamp": "2026-04-01T10:00:00Z"
	}`

	var env Envelope
	require.NoError(t, json.Unmarshal([]byte(raw), &env))

	assert.False(t, env.Success)
	assert.Equal(t, ErrCodeValidation, env.Code)
	require.Len(t, env.Details, 1)
	assert.Equal(t, "email", env.Details[0].Field)
}

func TestCodeForStatus(t *testing.T) {
	assert.Equal(t, ErrCodeBadRequest, CodeForStatus(400))
	assert.Equal(t, ErrCodeUnauthorized, CodeForStatus(401))
	assert.Equal(t, ErrCodeForbidden, CodeForStatus(403))
	assert.Equal(t, ErrCodeNotFound, CodeForStatus(404))
	assert.Equal(t, ErrCodeValidation, CodeForStatus(422))
	assert.Equal(t, ErrCodeRateLimited, CodeForStatus(429))
	assert.Equal(t, ErrCodeInternal, CodeForStatus(500))
	assert.Equal(t, ErrCodeInternal, CodeForStatus(502))
}

func TestNotificationReadFlagUsesFrenchField(t *testing.T) {
	raw := `{"id": "n1", "titre": "Maintenance", "lue": true, "type": "SYSTEME"}`

	var n Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &n))

	assert.True(t, n.Read)
	assert.Equal(t, "Maintenance", n.Title)
}

func TestUserFullName(t *testing.T) {
	u := User{FirstName: "Marie", LastName: "Dupont"}
	assert.Equal(t, "Marie Dupont", u.FullName())

	assert.Equal(t, "Dupont", User{LastName: "Dupont"}.FullName())
}
