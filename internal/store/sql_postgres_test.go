package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cpwcao/recipe-app-api/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubPinger fails the first `failures` pings and succeeds afterwards.
type stubPinger struct {
	failures int
	calls    int
}

func (p *stubPinger) PingContext(_ context.Context) error {
	p.calls++
	if p.calls <= p.failures {
		return errors.New("connection refused")
	}
	return nil
}

func TestWaitForDatabase_SucceedsAfterRetries(t *testing.T) {
	db := &stubPinger{failures: 3}

	err := waitForDatabase(context.Background(), db, 5, time.Millisecond, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, 4, db.calls)
}

func TestWaitForDatabase_GivesUpAfterAllAttempts(t *testing.T) {
	db := &stubPinger{failures: 10}

	err := waitForDatabase(context.Background(), db, 3, time.Millisecond, logger.Nop())
	require.Error(t, err)
	assert.Equal(t, 3, db.calls)
}

func TestWaitForDatabase_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	db := &stubPinger{failures: 10}

	err := waitForDatabase(ctx, db, 5, time.Minute, logger.Nop())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, db.calls)
}
