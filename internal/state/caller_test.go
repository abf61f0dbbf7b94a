package state

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sisexpo/internal/api"
	"sisexpo/pkg/models"
)

func successResult(v int) api.Result[int] {
	return api.Result[int]{Success: true, Data: &v}
}

func TestCallerIdleState(t *testing.T) {
	c := NewCaller[int](nil)

	assert.False(t, c.Loading())
	assert.Nil(t, c.Data())
	msg, code := c.Err()
	assert.Empty(t, msg)
	assert.Empty(t, code)
}

func TestCallerSettlesWithData(t *testing.T) {
	c := NewCaller[int](nil)

	res := c.Call(func() api.Result[int] { return successResult(42) }, CallOptions[int]{})

	require.True(t, res.Success)
	require.NotNil(t, c.Data())
	assert.Equal(t, 42, *c.Data())
	assert.False(t, c.Loading())
}

func TestCallerSettlesWithError(t *testing.T) {
	c := NewCaller[int](nil)
	c.Call(func() api.Result[int] { return successResult(1) }, CallOptions[int]{})

	c.Call(func() api.Result[int] {
		return api.Result[int]{Success: false, Error: "boom", Code: models.ErrCodeInternal}
	}, CallOptions[int]{Quiet: true})

	msg, code := c.Err()
	assert.Equal(t, "boom", msg)
	assert.Equal(t, models.ErrCodeInternal, code)
	// The failure settlement evicts the previous data.
	assert.Nil(t, c.Data())
}

func TestCallerSettledStateIsExclusive(t *testing.T) {
	// After any settlement exactly one of data/error is populated; both are
	// empty only before the first call or after Reset.
	c := NewCaller[int](nil)

	c.Call(func() api.Result[int] { return successResult(1) }, CallOptions[int]{})
	msg, _ := c.Err()
	assert.NotNil(t, c.Data())
	assert.Empty(t, msg)

	c.Call(func() api.Result[int] {
		return api.Result[int]{Success: false, Error: "boom", Code: models.ErrCodeInternal}
	}, CallOptions[int]{Quiet: true})
	msg, _ = c.Err()
	assert.Nil(t, c.Data())
	assert.Equal(t, "boom", msg)

	c.Reset()
	msg, _ = c.Err()
	assert.Nil(t, c.Data())
	assert.Empty(t, msg)
}

func TestCallerErrorClearedOnNextSuccess(t *testing.T) {
	c := NewCaller[int](nil)
	c.Call(func() api.Result[int] {
		return api.Result[int]{Success: false, Error: "boom", Code: models.ErrCodeInternal}
	}, CallOptions[int]{Quiet: true})

	c.Call(func() api.Result[int] { return successResult(7) }, CallOptions[int]{})

	msg, _ := c.Err()
	assert.Empty(t, msg)
	assert.Equal(t, 7, *c.Data())
}

func TestCallerLoadingWhileInFlight(t *testing.T) {
	c := NewCaller[int](nil)
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Call(func() api.Result[int] {
			close(started)
			<-release
			return successResult(1)
		}, CallOptions[int]{})
	}()

	<-started
	assert.True(t, c.Loading())
	close(release)
	wg.Wait()
	assert.False(t, c.Loading())
}

func TestCallerStaleSettlementDiscarded(t *testing.T) {
	c := NewCaller[int](nil)
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	var slowCalled bool
	go func() {
		defer wg.Done()
		c.Call(func() api.Result[int] {
			close(started)
			<-release
			return successResult(1) // dispatched first, settles last
		}, CallOptions[int]{OnSuccess: func(*int) { slowCalled = true }})
	}()

	<-started
	c.Call(func() api.Result[int] { return successResult(2) }, CallOptions[int]{})
	close(release)
	wg.Wait()

	// The newer call owns the state; the stale settlement updated nothing
	// and fired no callback.
	require.NotNil(t, c.Data())
	assert.Equal(t, 2, *c.Data())
	assert.False(t, slowCalled)
}

func TestCallerResetInvalidatesInFlightCall(t *testing.T) {
	c := NewCaller[int](nil)
	started := make(chan struct{})
	release := make(chan struct{})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.Call(func() api.Result[int] {
			close(started)
			<-release
			return successResult(99)
		}, CallOptions[int]{})
	}()

	<-started
	c.Reset()
	close(release)
	wg.Wait()

	assert.Nil(t, c.Data())
}

func TestCallerPanicBecomesFailure(t *testing.T) {
	c := NewCaller[int](nil)

	res := c.Call(func() api.Result[int] { panic("codec exploded") }, CallOptions[int]{Quiet: true})

	assert.False(t, res.Success)
	assert.Equal(t, "codec exploded", res.Error)
	assert.Equal(t, models.ErrCodeInternal, res.Code)
	msg, _ := c.Err()
	assert.Equal(t, "codec exploded", msg)
}

func TestCallerValidationToastPerField(t *testing.T) {
	notifier := NewMemoryNotifier(10)
	c := NewCaller[int](notifier)

	c.Call(func() api.Result[int] {
		return api.Result[int]{
			Success: false,
			Error:   "données invalides",
			Code:    models.ErrCodeValidation,
			Details: []models.ValidationDetail{
				{Field: "email", Message: "email invalide"},
				{Field: "password", Message: "mot de passe trop court"},
			},
		}
	}, CallOptions[int]{})

	toasts := notifier.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, "error", toasts[0].Level)
	assert.Equal(t, "email: email invalide", toasts[0].Message)
	assert.Equal(t, "password: mot de passe trop court", toasts[1].Message)
}

func TestCallerQuietSuppressesToasts(t *testing.T) {
	notifier := NewMemoryNotifier(10)
	c := NewCaller[int](notifier)

	c.Call(func() api.Result[int] {
		return api.Result[int]{Success: false, Error: "boom", Code: models.ErrCodeInternal}
	}, CallOptions[int]{Quiet: true})

	assert.Empty(t, notifier.Toasts())
}

func TestCallerSuccessToastCarriesMessage(t *testing.T) {
	notifier := NewMemoryNotifier(10)
	c := NewCaller[int](notifier)

	v := 1
	c.Call(func() api.Result[int] {
		return api.Result[int]{Success: true, Data: &v, Message: "notification supprimée"}
	}, CallOptions[int]{})

	toast, ok := notifier.Latest()
	require.True(t, ok)
	assert.Equal(t, "success", toast.Level)
	assert.Equal(t, "notification supprimée", toast.Message)
}

func TestMemoryNotifierBounded(t *testing.T) {
	notifier := NewMemoryNotifier(3)
	for i := 0; i < 10; i++ {
		notifier.Success("msg")
	}
	assert.Len(t, notifier.Toasts(), 3)
}

func TestCallerConcurrentCallsLastSettleWins(t *testing.T) {
	c := NewCaller[int](nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(v int) {
			defer wg.Done()
			c.Call(func() api.Result[int] {
				time.Sleep(time.Millisecond)
				return successResult(v)
			}, CallOptions[int]{})
		}(i)
	}
	wg.Wait()

	// Whichever call was dispatched last owns the state; the invariant under
	// churn is that the caller settled consistently, not which value won.
	assert.False(t, c.Loading())
	assert.NotNil(t, c.Data())
	msg, _ := c.Err()
	assert.Empty(t, msg)
}
