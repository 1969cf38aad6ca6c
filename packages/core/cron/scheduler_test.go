package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := NewScheduler()
	err := s.Register("broken", "every minute", func() {})
	assert.Error(t, err)
}

func TestRunNowCallsRegisteredJob(t *testing.T) {
	s := NewScheduler()
	calls := 0
	require.NoError(t, s.Register("sweep", "0 */5 * * * *", func() { calls++ }))

	assert.True(t, s.RunNow("sweep"))
	assert.False(t, s.RunNow("unknown"))
	assert.Equal(t, 1, calls)
}

func TestEmptySpecDisablesJob(t *testing.T) {
	s := NewScheduler()
	require.NoError(t, s.Register("off", "", func() {}))
	assert.False(t, s.RunNow("off"))
}

func TestRunNowDoesNotBlockRegister(t *testing.T) {
	s := NewScheduler()
	done := make(chan error, 1)
	require.NoError(t, s.Register("slow", "0 */5 * * * *", func() {
		done <- s.Register("late", "0 0 * * * *", func() {})
	}))

	go s.RunNow("slow")

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Register blocked while a job was running")
	}
	assert.True(t, s.RunNow("late"))
}
