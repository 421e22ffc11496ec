package session_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aretw0/cvterm/pkg/domain"
	"github.com/aretw0/cvterm/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_AppendAndNotify(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	var changes []session.Change
	s.Subscribe(func(c session.Change) { changes = append(changes, c) })

	require.NoError(t, s.Append(domain.Entry{Command: "whoami"}))
	require.NoError(t, s.Append(domain.Entry{Command: "help"}))

	entries := s.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "whoami", entries[0].Command)
	assert.False(t, entries[0].Timestamp.IsZero())

	require.Len(t, changes, 2)
	assert.Equal(t, session.ChangeAppend, changes[1].Kind)
	assert.Equal(t, 1, changes[1].Index)
	assert.Equal(t, 2, changes[1].Len)
}

func TestSession_UpdateLast(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	err := s.UpdateLast(func(e *domain.Entry) { e.Command = "x" })
	assert.ErrorIs(t, err, session.ErrEmptyTranscript)

	require.NoError(t, s.Append(domain.Entry{Command: "first"}))
	require.NoError(t, s.Append(domain.Entry{Typing: true}))
	require.NoError(t, s.UpdateLast(func(e *domain.Entry) { e.Command = "wh" }))

	entries := s.Entries()
	assert.Equal(t, "first", entries[0].Command)
	assert.Equal(t, "wh", entries[1].Command)
	assert.True(t, entries[1].Typing)
}

func TestSession_ClearRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 5, 50} {
		s := session.New(context.Background())
		for i := 0; i < n; i++ {
			require.NoError(t, s.Append(domain.Entry{Command: "help"}))
		}
		require.NoError(t, s.ReplaceAll(nil))
		assert.Equal(t, 0, s.Len(), "n=%d", n)
		s.Close()
	}
}

func TestSession_EntriesAreCopies(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	require.NoError(t, s.Append(domain.Entry{Command: "a", Output: domain.Lines("one")}))
	got := s.Entries()
	got[0].Output[0] = domain.PlainLine("mutated")
	assert.Equal(t, "one", s.Entries()[0].Output[0].String())
}

func TestSession_PendingAndPhase(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	var kinds []session.ChangeKind
	s.Subscribe(func(c session.Change) { kinds = append(kinds, c.Kind) })

	assert.Equal(t, domain.PhaseBooting, s.Phase())
	require.NoError(t, s.SetPending("ski"))
	require.NoError(t, s.SetPending("ski"))
	require.NoError(t, s.ClearPending())
	require.NoError(t, s.SetPhase(domain.PhaseReady))

	assert.Equal(t, "", s.Pending())
	assert.Equal(t, domain.PhaseReady, s.Phase())
	assert.Equal(t, []session.ChangeKind{session.ChangePending, session.ChangePending, session.ChangePhase}, kinds)
}

func TestSession_Unsubscribe(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	var count int
	unsubscribe := s.Subscribe(func(session.Change) { count++ })
	require.NoError(t, s.Append(domain.Entry{}))
	unsubscribe()
	require.NoError(t, s.Append(domain.Entry{}))
	assert.Equal(t, 1, count)
}

func TestSession_CloseRejectsMutations(t *testing.T) {
	s := session.New(context.Background())
	require.NoError(t, s.Append(domain.Entry{Command: "help"}))

	s.Close()
	s.Close()

	assert.True(t, s.Closed())
	assert.ErrorIs(t, s.Append(domain.Entry{}), domain.ErrSessionClosed)
	assert.ErrorIs(t, s.ReplaceAll(nil), domain.ErrSessionClosed)
	assert.ErrorIs(t, s.UpdateLast(func(*domain.Entry) {}), domain.ErrSessionClosed)
	assert.Equal(t, 1, s.Len())
	assert.Error(t, s.Context().Err())
}

func TestSession_ScheduleTermination(t *testing.T) {
	var fired atomic.Int32
	done := make(chan struct{})
	s := session.New(context.Background(), session.WithTerminate(func() {
		fired.Add(1)
		close(done)
	}))
	defer s.Close()

	start := time.Now()
	assert.True(t, s.ScheduleTermination(30*time.Millisecond))
	assert.False(t, s.ScheduleTermination(30*time.Millisecond), "only one termination per session")
	assert.True(t, s.Terminating())

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("termination never fired")
	}
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
	assert.Equal(t, 0, s.PendingTimers())
}

func TestSession_CloseCancelsTimers(t *testing.T) {
	var fired atomic.Bool
	s := session.New(context.Background(), session.WithTerminate(func() { fired.Store(true) }))

	s.ScheduleTermination(20 * time.Millisecond)
	s.AfterFunc(20*time.Millisecond, func() { fired.Store(true) })
	assert.Equal(t, 2, s.PendingTimers())

	s.Close()
	time.Sleep(60 * time.Millisecond)
	assert.False(t, fired.Load())
}

func TestSession_ParentCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := session.New(ctx)
	cancel()

	assert.True(t, s.Closed())
	select {
	case <-s.Context().Done():
	case <-time.After(time.Second):
		t.Fatal("session context not cancelled")
	}
}

func TestSession_AfterFuncStop(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	var fired atomic.Bool
	stop := s.AfterFunc(time.Hour, func() { fired.Store(true) })
	assert.True(t, stop())
	assert.False(t, stop())
	assert.Equal(t, 0, s.PendingTimers())
}

func TestSession_ConcurrentAppendsKeepOrderOfNotifications(t *testing.T) {
	s := session.New(context.Background())
	defer s.Close()

	var mu sync.Mutex
	var indexes []int
	s.Subscribe(func(c session.Change) {
		mu.Lock()
		indexes = append(indexes, c.Index)
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Append(domain.Entry{Command: "help"})
		}()
	}
	wg.Wait()

	require.Len(t, indexes, 20)
	for i, idx := range indexes {
		assert.Equal(t, i, idx)
	}
}
