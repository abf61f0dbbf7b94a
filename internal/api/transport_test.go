package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisexpo/pkg/models"
)

func newTestTransport(t *testing.T, handler http.HandlerFunc, opts TransportOptions) (*Transport, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewTransport(srv.URL, NewMemoryTokenStore(), opts), srv
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func TestDoSuccessEnvelope(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "ok",
			"data":    map[string]string{"id": "n1"},
		})
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/notifications", nil)

	assert.True(t, env.Success)
	assert.Equal(t, "ok", env.Message)
	assert.NotEmpty(t, env.Data)
	assert.Empty(t, env.Error)
	assert.Empty(t, env.Code)
}

func TestDoFailureEnvelopeHasNoData(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"error":   "notification introuvable",
			"code":    "NOT_FOUND",
			"data":    map[string]string{"leak": "nope"},
		})
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/notifications/x", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "notification introuvable", env.Error)
	assert.Equal(t, "NOT_FOUND", env.Code)
	assert.Empty(t, env.Data)
}

func TestDoSuccessEnvelopeStripsError(t *testing.T) {
	// A malformed payload claiming success while carrying an error field is
	// normalized so exactly one side is populated.
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"error":   "ghost",
			"code":    "INTERNAL_ERROR",
		})
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/x", nil)

	assert.True(t, env.Success)
	assert.Empty(t, env.Error)
	assert.Empty(t, env.Code)
}

func TestDoErrorStatusOverridesSuccessFlag(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": true,
		})
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/x", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "request failed", env.Error)
	assert.Equal(t, models.ErrCodeInternal, env.Code)
}

func TestDoNetworkErrorFoldsToFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on
	tr := NewTransport(srv.URL, NewMemoryTokenStore(), TransportOptions{})

	env := tr.Get(context.Background(), "/x", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "network or server error", env.Error)
	assert.Equal(t, models.ErrCodeInternal, env.Code)
}

func TestDoEmptyBodyOn2xxIsSuccess(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, TransportOptions{})

	env := tr.Delete(context.Background(), "/notifications/n1")

	assert.True(t, env.Success)
}

func TestDoMalformedBodyIsFailure(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<html>not json</html>"))
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/x", nil)

	assert.False(t, env.Success)
	assert.Equal(t, models.ErrCodeInternal, env.Code)
}

func TestValidationDetailsSurviveOnlyForValidationCode(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"error":   "données invalides",
			"code":    "VALIDATION_ERROR",
			"details": []map[string]string{
				{"field": "email", "message": "email invalide"},
				{"field": "password", "message": "trop court"},
			},
		})
	}, TransportOptions{})

	env := tr.Post(context.Background(), "/auth/register", map[string]string{})

	require.Len(t, env.Details, 2)
	assert.Equal(t, "email", env.Details[0].Field)

	// Same details under another code get dropped.
	tr2, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"error":   "conflit",
			"code":    "CONFLICT",
			"details": []map[string]string{{"field": "email", "message": "pris"}},
		})
	}, TransportOptions{})

	env2 := tr2.Post(context.Background(), "/auth/register", map[string]string{})
	assert.Empty(t, env2.Details)
}

func TestRequestHeaders(t *testing.T) {
	var gotAuth, gotLang, gotReqID string
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotLang = r.Header.Get("Accept-Language")
		gotReqID = r.Header.Get("X-Request-ID")
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}, TransportOptions{Language: "en"})

	require.NoError(t, tr.SetTokens("opaque-token", "refresh"))
	tr.Get(context.Background(), "/x", nil)

	assert.Equal(t, "Bearer opaque-token", gotAuth)
	assert.Equal(t, "en", gotLang)
	assert.NotEmpty(t, gotReqID)
}

func TestNoAuthHeaderWithoutToken(t *testing.T) {
	var gotAuth string
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
	}, TransportOptions{})

	tr.Get(context.Background(), "/x", nil)

	assert.Empty(t, gotAuth)
}

func TestUnauthorizedWipesTokensBeforeReturning(t *testing.T) {
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false,
			"error":   "session expirée",
			"code":    "UNAUTHORIZED",
		})
	}, TransportOptions{})

	require.NoError(t, tr.SetTokens("opaque-token", "refresh"))
	env := tr.Get(context.Background(), "/users/me", nil)

	assert.False(t, env.Success)
	assert.Empty(t, tr.AccessToken())
	assert.Empty(t, tr.RefreshToken())
}

func TestUnauthorizedCallbackFiresOncePerTokenLifetime(t *testing.T) {
	var fired atomic.Int32
	var tr *Transport
	tr, _ = newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
			"success": false, "error": "expirée", "code": "UNAUTHORIZED",
		})
	}, TransportOptions{OnUnauthorized: func() { fired.Add(1) }})

	require.NoError(t, tr.SetTokens("tok", "ref"))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Get(context.Background(), "/users/me", nil)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), fired.Load())

	// A fresh login re-arms the callback.
	require.NoError(t, tr.SetTokens("tok2", "ref2"))
	tr.Get(context.Background(), "/users/me", nil)
	assert.Equal(t, int32(2), fired.Load())
}

func TestRateLimitedResponsePassesThrough(t *testing.T) {
	// 429 is logged but does not alter the decoded outcome.
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
			"success": false,
			"error":   "trop de requêtes",
			"code":    "RATE_LIMITED",
		})
	}, TransportOptions{})

	env := tr.Get(context.Background(), "/x", nil)

	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)
	assert.Equal(t, "trop de requêtes", env.Error)
}

func TestUploadMultipart(t *testing.T) {
	var gotField, gotFilename, gotContent string
	tr, _ := newTestTransport(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		buf := make([]byte, header.Size)
		f.Read(buf)
		gotField = "file"
		gotFilename = header.Filename
		gotContent = string(buf)
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"success": true,
			"data":    map[string]string{"id": "m1"},
		})
	}, TransportOptions{})

	env := tr.Upload(context.Background(), "/media/upload", "file", "affiche.png", strings.NewReader("fake-png"))

	assert.True(t, env.Success)
	assert.Equal(t, "file", gotField)
	assert.Equal(t, "affiche.png", gotFilename)
	assert.Equal(t, "fake-png", gotContent)
}

func TestDecodeTypedResult(t *testing.T) {
	env := models.Envelope{
		Success: true,
		Data:    json.RawMessage(`{"count": 7}`),
	}

	res := Decode[models.UnreadCount](env)

	require.True(t, res.Success)
	require.NotNil(t, res.Data)
	assert.Equal(t, 7, res.Data.Count)
	assert.NoError(t, res.Err())
}

func TestDecodeMismatchedDataIsFailure(t *testing.T) {
	env := models.Envelope{
		Success: true,
		Data:    json.RawMessage(`{"count": "sept"}`),
	}

	res := Decode[models.UnreadCount](env)

	assert.False(t, res.Success)
	assert.Equal(t, models.ErrCodeInternal, res.Code)
	assert.Error(t, res.Err())
}

func TestResultErrCarriesCodeAndDetails(t *testing.T) {
	res := Result[struct{}]{
		Success: false,
		Error:   "données invalides",
		Code:    models.ErrCodeValidation,
		Details: []models.ValidationDetail{{Field: "email", Message: "invalide"}},
	}

	err := res.Err()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	assert.Len(t, appErr.Details, 1)
}
