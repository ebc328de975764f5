package booking

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yahorse/boardo/internal/pkg/apperror"
)

func TestStoreErrMapsTimeouts(t *testing.T) {
	err := storeErr("check overlap", context.DeadlineExceeded)
	require.ErrorIs(t, err, ErrStoreUnavailable)

	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusServiceUnavailable, appErr.Code)
	assert.True(t, appErr.Retryable)
}

func TestStoreErrKeepsOtherErrors(t *testing.T) {
	cause := errors.New("relation does not exist")
	err := storeErr("list bookings", cause)
	require.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrStoreUnavailable)
}

func TestWithTimeoutSetsDeadline(t *testing.T) {
	r := &pgxRepository{queryTimeout: 5 * time.Second}
	ctx, cancel := r.withTimeout(context.Background())
	defer cancel()
	_, ok := ctx.Deadline()
	assert.True(t, ok)

	// Zero timeout leaves the context unbounded.
	r = &pgxRepository{}
	ctx, cancel = r.withTimeout(context.Background())
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok)
}
