package remote

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/swbrowse/pkg/fp"
)

// blockingOp returns an operation that waits for release and then resolves with the received value.
func blockingOp(release <-chan fp.Either[error, string]) Operation[error, string] {
	return func(ctx context.Context) fp.Either[error, string] {
		select {
		case res := <-release:
			return res
		case <-ctx.Done():
			return fp.Left[error, string](ctx.Err())
		}
	}
}

// logRecorder captures formatted log lines.
type logRecorder struct {
	mu   sync.Mutex
	msgs []string
}

func (l *logRecorder) Logf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *logRecorder) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.msgs, "\n")
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("run did not settle")
	}
}

func TestTracker_StartsIdle(t *testing.T) {
	tr := New[error, string](Config{Name: "people"})
	assert.True(t, tr.Phase().IsIdle())
	assert.Equal(t, "people", tr.Name())
	assert.Equal(t, uint64(0), tr.Seq())
}

func TestTracker_RunSetsLoadingSynchronously(t *testing.T) {
	t.Run("slow operation", func(t *testing.T) {
		tr := New[error, string](Config{})
		release := make(chan fp.Either[error, string], 1)
		done := tr.Run(context.Background(), blockingOp(release))
		assert.True(t, tr.Phase().IsLoading())
		release <- fp.Right[error]("luke")
		waitDone(t, done)
	})

	t.Run("instant operation", func(t *testing.T) {
		tr := New[error, string](Config{})
		var mu sync.Mutex
		var kinds []Kind
		tr.OnChange(func(tr Transition[error, string]) {
			mu.Lock()
			kinds = append(kinds, tr.Cur.Kind())
			mu.Unlock()
		})
		waitDone(t, tr.Run(context.Background(), Of[error]("luke")))

		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, []Kind{KindLoading, KindSucceeded}, kinds)
	})
}

func TestTracker_RunSettles(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		tr := New[error, string](Config{})
		waitDone(t, tr.Run(context.Background(), Of[error]("luke")))
		v, ok := tr.Phase().Value()
		require.True(t, ok)
		assert.Equal(t, "luke", v)
	})

	t.Run("failure", func(t *testing.T) {
		tr := New[error, string](Config{})
		waitDone(t, tr.Run(context.Background(), Fail[error, string](errors.New("network down"))))
		err, ok := tr.Phase().Err()
		require.True(t, ok)
		require.EqualError(t, err, "network down")
	})

	t.Run("run replaces prior state", func(t *testing.T) {
		tr := New[error, string](Config{})
		waitDone(t, tr.Run(context.Background(), Fail[error, string](errors.New("first"))))
		waitDone(t, tr.Run(context.Background(), Of[error]("second")))
		v, ok := tr.Phase().Value()
		require.True(t, ok)
		assert.Equal(t, "second", v)
	})
}

func TestTracker_CanceledRunIsDropped(t *testing.T) {
	tr := New[error, string](Config{})
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan fp.Either[error, string], 1)

	done := tr.Run(ctx, blockingOp(release))
	cancel()
	waitDone(t, done)

	assert.True(t, tr.Phase().IsLoading(), "canceled run must not transition")
}

func TestTracker_CanceledAfterResultBeforeSettle(t *testing.T) {
	log := &logRecorder{}
	tr := New[error, string](Config{Name: "people", Log: log})
	ctx, cancel := context.WithCancel(context.Background())
	op := func(context.Context) fp.Either[error, string] {
		cancel() // resolved, but the owner is gone by the time it settles
		return fp.Right[error]("late")
	}
	var calls int
	tr.OnChange(func(Transition[error, string]) { calls++ })
	waitDone(t, tr.Run(ctx, op))
	assert.True(t, tr.Phase().IsLoading())
	assert.Zero(t, calls, "no terminal transition for a canceled run")
	assert.Contains(t, log.joined(), "people: run 1 canceled, result dropped")
}

func TestTracker_ApplyChecksContext(t *testing.T) {
	tr := New[error, string](Config{})
	waitDone(t, tr.Run(context.Background(), Of[error]("luke")))
	var calls int
	tr.OnChange(func(Transition[error, string]) { calls++ })

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, tr.apply(ctx, tr.Seq(), Succeeded[error]("leia")))
	assert.Zero(t, calls)
	v, ok := tr.Phase().Value()
	require.True(t, ok)
	assert.Equal(t, "luke", v)

	assert.True(t, tr.apply(context.Background(), tr.Seq(), Succeeded[error]("leia")))
	assert.Equal(t, 1, calls)
}

func TestTracker_StaleRunIsDropped(t *testing.T) {
	tr := New[error, string](Config{})
	release := make(chan fp.Either[error, string], 1)

	first := tr.Run(context.Background(), blockingOp(release))
	second := tr.Run(context.Background(), Of[error]("second"))
	waitDone(t, second)

	release <- fp.Right[error]("first")
	waitDone(t, first)

	v, ok := tr.Phase().Value()
	require.True(t, ok)
	assert.Equal(t, "second", v, "older run settling last must not win")
	assert.Equal(t, uint64(2), tr.Seq())
}

func TestTracker_Clear(t *testing.T) {
	tr := New[error, string](Config{})
	waitDone(t, tr.Run(context.Background(), Of[error]("luke")))
	tr.Clear()
	assert.True(t, tr.Phase().IsIdle())

	t.Run("invalidates run in flight", func(t *testing.T) {
		release := make(chan fp.Either[error, string], 1)
		done := tr.Run(context.Background(), blockingOp(release))
		tr.Clear()
		release <- fp.Right[error]("leia")
		waitDone(t, done)
		assert.True(t, tr.Phase().IsIdle())
	})
}

func TestTracker_MinLoading(t *testing.T) {
	t.Run("fast result held until floor", func(t *testing.T) {
		tr := New[error, string](Config{MinLoading: 50 * time.Millisecond})
		start := time.Now()
		done := tr.Run(context.Background(), Of[error]("luke"))
		assert.True(t, tr.Phase().IsLoading())
		waitDone(t, done)
		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		v, ok := tr.Phase().Value()
		require.True(t, ok)
		assert.Equal(t, "luke", v)
	})

	t.Run("cancel during floor drops result", func(t *testing.T) {
		tr := New[error, string](Config{MinLoading: time.Minute})
		ctx, cancel := context.WithCancel(context.Background())
		done := tr.Run(ctx, Of[error]("luke"))
		cancel()
		waitDone(t, done)
		assert.True(t, tr.Phase().IsLoading())
	})
}

func TestTracker_PanicRecovered(t *testing.T) {
	t.Run("error type recovers by default", func(t *testing.T) {
		tr := New[error, string](Config{})
		op := func(context.Context) fp.Either[error, string] { panic("boom") }
		waitDone(t, tr.Run(context.Background(), op))
		err, ok := tr.Phase().Err()
		require.True(t, ok)
		require.EqualError(t, err, "boom")
	})

	t.Run("non-error type warns without SetRecover", func(t *testing.T) {
		log := &logRecorder{}
		New[[]string, string](Config{Name: "films", Log: log})
		assert.Contains(t, log.joined(), "[WARN] films: panics in operations are not recovered for error type []string")

		log = &logRecorder{}
		New[error, string](Config{Name: "people", Log: log})
		assert.Empty(t, log.joined())
	})

	t.Run("custom error type with SetRecover", func(t *testing.T) {
		tr := New[[]string, string](Config{})
		tr.SetRecover(func(v any) []string { return []string{"recovered"} })
		op := func(context.Context) fp.Either[[]string, string] { panic(42) }
		waitDone(t, tr.Run(context.Background(), op))
		errs, ok := tr.Phase().Err()
		require.True(t, ok)
		assert.Equal(t, []string{"recovered"}, errs)
	})
}

func TestTracker_OnChangeTransitions(t *testing.T) {
	tr := New[error, string](Config{Name: "films"})
	var got []Transition[error, string]
	var mu sync.Mutex
	tr.OnChange(func(tr Transition[error, string]) {
		mu.Lock()
		got = append(got, tr)
		mu.Unlock()
	})

	waitDone(t, tr.Run(context.Background(), Of[error]("a new hope")))
	tr.Clear()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 3)
	assert.Equal(t, "films", got[0].Name)
	assert.True(t, got[0].Old.IsIdle())
	assert.True(t, got[0].Cur.IsLoading())
	assert.Equal(t, uint64(1), got[0].Seq)
	assert.True(t, got[1].Old.IsLoading())
	assert.True(t, got[1].Cur.IsSucceeded())
	assert.Equal(t, uint64(1), got[1].Seq)
	assert.True(t, got[2].Cur.IsIdle())
	assert.Equal(t, uint64(2), got[2].Seq)
	assert.False(t, got[2].At.IsZero())
}

func TestTracker_Match(t *testing.T) {
	tr := New[error, string](Config{})
	var seen string
	tr.Match(func() { seen = "idle" }, func() { seen = "loading" }, func(error) { seen = "failed" }, func(string) { seen = "ok" })
	assert.Equal(t, "idle", seen)
}

func TestTracker_ConcurrentRuns(t *testing.T) {
	tr := New[error, int](Config{})
	var wg sync.WaitGroup
	for i := range 32 {
		wg.Go(func() {
			<-tr.Run(context.Background(), Of[error](i))
			_ = tr.Phase()
		})
	}
	wg.Wait()
	assert.True(t, tr.Phase().IsSucceeded() || tr.Phase().IsLoading())
	assert.Equal(t, uint64(32), tr.Seq())
}
