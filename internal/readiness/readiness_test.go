package readiness

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/loghoi/loghoi/internal/backend"
	"github.com/loghoi/loghoi/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient answers SetupSSHKey with a canned response.
type fakeClient struct {
	resp    *backend.SetupResponse
	err     error
	calls   atomic.Int32
	release chan struct{} // if set, SetupSSHKey blocks until closed or ctx ends
}

func (f *fakeClient) SetupSSHKey(ctx context.Context) (*backend.SetupResponse, error) {
	f.calls.Add(1)
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.resp, f.err
}

// recorder collects phase changes with their arrival time.
type recorder struct {
	mu     sync.Mutex
	phases []Phase
	times  []time.Time
	last   Outcome
}

func (r *recorder) PhaseChanged(phase Phase, outcome Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phases = append(r.phases, phase)
	r.times = append(r.times, time.Now())
	r.last = outcome
}

func (r *recorder) snapshot() ([]Phase, []time.Time, Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Phase(nil), r.phases...), append([]time.Time(nil), r.times...), r.last
}

func TestPhase_String(t *testing.T) {
	tests := []struct {
		phase  Phase
		expect string
	}{
		{PhaseChecking, "checking"},
		{PhaseGenerating, "generating"},
		{PhaseComplete, "complete"},
		{Phase(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			assert.Equal(t, tt.expect, tt.phase.String())
			text, err := tt.phase.MarshalText()
			require.NoError(t, err)
			assert.Equal(t, tt.expect, string(text))
		})
	}
}

func TestNewState(t *testing.T) {
	s := NewState()

	assert.Equal(t, PhaseChecking, s.Phase())
	assert.False(t, s.SetupComplete())
	assert.Equal(t, []Phase{PhaseChecking}, s.History())
}

func TestState_Advance(t *testing.T) {
	tests := []struct {
		name    string
		steps   []Phase
		wantErr bool
		final   Phase
	}{
		{name: "checking to complete", steps: []Phase{PhaseComplete}, final: PhaseComplete},
		{name: "checking to generating", steps: []Phase{PhaseGenerating}, final: PhaseGenerating},
		{name: "generating to complete", steps: []Phase{PhaseGenerating, PhaseComplete}, final: PhaseComplete},
		{name: "checking to checking", steps: []Phase{PhaseChecking}, wantErr: true, final: PhaseChecking},
		{name: "generating to checking", steps: []Phase{PhaseGenerating, PhaseChecking}, wantErr: true, final: PhaseGenerating},
		{name: "generating twice", steps: []Phase{PhaseGenerating, PhaseGenerating}, wantErr: true, final: PhaseGenerating},
		{name: "complete to generating", steps: []Phase{PhaseComplete, PhaseGenerating}, wantErr: true, final: PhaseComplete},
		{name: "complete to checking", steps: []Phase{PhaseComplete, PhaseChecking}, wantErr: true, final: PhaseComplete},
		{name: "complete twice", steps: []Phase{PhaseComplete, PhaseComplete}, wantErr: true, final: PhaseComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState()
			var err error
			for _, p := range tt.steps {
				err = s.Advance(p)
			}

			if tt.wantErr {
				var te *TransitionError
				require.ErrorAs(t, err, &te)
				assert.Equal(t, tt.steps[len(tt.steps)-1], te.To)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.final, s.Phase())
			assert.Equal(t, s.Phase() == PhaseComplete, s.SetupComplete())
		})
	}
}

func TestState_CompleteNeverReverts(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Advance(PhaseComplete))

	for _, p := range []Phase{PhaseChecking, PhaseGenerating, PhaseComplete} {
		assert.Error(t, s.Advance(p))
		assert.True(t, s.SetupComplete())
		assert.Equal(t, PhaseComplete, s.Phase())
	}
	assert.Equal(t, []Phase{PhaseChecking, PhaseComplete}, s.History())
}

func TestState_CopiesDoNotShareHistory(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Advance(PhaseGenerating))

	a := s
	b := s
	require.NoError(t, a.Advance(PhaseComplete))

	assert.Equal(t, []Phase{PhaseChecking, PhaseGenerating, PhaseComplete}, a.History())
	assert.Equal(t, []Phase{PhaseChecking, PhaseGenerating}, b.History())
	assert.False(t, b.SetupComplete())
}

func TestOutcome_Next(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    Phase
	}{
		{name: "generated", outcome: Outcome{Status: "generated"}, want: PhaseGenerating},
		{name: "exists", outcome: Outcome{Status: "exists"}, want: PhaseComplete},
		{name: "ready", outcome: Outcome{Status: "ready"}, want: PhaseComplete},
		{name: "empty", outcome: Outcome{}, want: PhaseComplete},
		{name: "case sensitive", outcome: Outcome{Status: "Generated"}, want: PhaseComplete},
		{name: "error wins", outcome: Outcome{Status: "generated", Err: fmt.Errorf("boom")}, want: PhaseComplete},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.outcome.Next())
		})
	}
}

func TestChecker_Check(t *testing.T) {
	t.Run("generated", func(t *testing.T) {
		log := logger.NewBufferLogger()
		c := NewChecker(&fakeClient{resp: &backend.SetupResponse{Status: "generated", PublicKey: "ssh-ed25519 AAAA"}}, log)

		out := c.Check(context.Background())
		assert.Equal(t, "generated", out.Status)
		assert.Equal(t, "ssh-ed25519 AAAA", out.PublicKey)
		assert.NoError(t, out.Err)
		assert.False(t, log.HasLevel("error"))
	})

	t.Run("backend failure is logged, not returned", func(t *testing.T) {
		log := logger.NewBufferLogger()
		c := NewChecker(&fakeClient{err: fmt.Errorf("503 Service Unavailable")}, log)

		out := c.Check(context.Background())
		assert.Error(t, out.Err)
		assert.Equal(t, PhaseComplete, out.Next())
		require.True(t, log.HasLevel("error"))
		assert.Contains(t, log.Messages()[0].Message, "503 Service Unavailable")
	})

	t.Run("cancelled request is not an error", func(t *testing.T) {
		log := logger.NewBufferLogger()
		c := NewChecker(&fakeClient{release: make(chan struct{})}, log)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		out := c.Check(ctx)
		assert.ErrorIs(t, out.Err, context.Canceled)
		assert.Equal(t, PhaseComplete, out.Next())
		assert.False(t, log.HasLevel("error"))
		assert.True(t, log.HasLevel("debug"))
	})

		t.Run("nil response is already-ready", func(t *testing.T) {
		c := NewChecker(&fakeClient{}, nil)
		out := c.Check(context.Background())
		assert.NoError(t, out.Err)
		assert.Equal(t, PhaseComplete, out.Next())
	})
}

func TestRunner_Generated(t *testing.T) {
	const grace = 60 * time.Millisecond
	client := &fakeClient{resp: &backend.SetupResponse{Status: "generated"}}
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), grace)
	r.SetListener(rec)

	started := time.Now()
	require.NoError(t, r.Wait(context.Background()))

	phases, times, outcome := rec.snapshot()
	assert.Equal(t, []Phase{PhaseGenerating, PhaseComplete}, phases)
	assert.GreaterOrEqual(t, times[1].Sub(times[0]), grace, "generating should be visible for the grace window")
	assert.GreaterOrEqual(t, time.Since(started), grace)
	assert.Equal(t, "generated", outcome.Status)
}

func TestRunner_AlreadyReady(t *testing.T) {
	client := &fakeClient{resp: &backend.SetupResponse{Status: "ready"}}
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), time.Hour)
	r.SetListener(rec)
	require.NoError(t, r.Wait(context.Background()))

	phases, _, _ := rec.snapshot()
	assert.Equal(t, []Phase{PhaseComplete}, phases, "should skip generating")
}

func TestRunner_FailureStillCompletes(t *testing.T) {
	log := logger.NewBufferLogger()
	client := &fakeClient{err: fmt.Errorf("dial tcp: connection refused")}
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, log), time.Hour)
	r.SetListener(rec)
	require.NoError(t, r.Wait(context.Background()))

	phases, _, outcome := rec.snapshot()
	assert.Equal(t, []Phase{PhaseComplete}, phases)
	assert.Error(t, outcome.Err)
	assert.True(t, log.HasLevel("error"), "failure should leave a diagnostic")
}

func TestRunner_StartsOnce(t *testing.T) {
	client := &fakeClient{resp: &backend.SetupResponse{Status: "exists"}}
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), 0)
	r.SetListener(rec)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Start()
		}()
	}
	wg.Wait()
	<-r.Done()

	assert.Equal(t, int32(1), client.calls.Load())
	phases, _, _ := rec.snapshot()
	assert.Equal(t, []Phase{PhaseComplete}, phases)
}

func TestRunner_StopDropsLateResult(t *testing.T) {
	client := &fakeClient{
		resp:    &backend.SetupResponse{Status: "exists"},
		release: make(chan struct{}),
	}
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), 0)
	r.SetListener(rec)
	r.Start()

	r.Stop()
	close(client.release)

	select {
	case <-r.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("runner did not settle after Stop")
	}

	phases, _, _ := rec.snapshot()
	assert.Empty(t, phases, "no phase change should reach a stopped listener")
}

func TestRunner_StopDuringGrace(t *testing.T) {
	client := &fakeClient{resp: &backend.SetupResponse{Status: "generated"}}
	gotGenerating := make(chan struct{})
	rec := &recorder{}

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), time.Hour)
	r.SetListener(ListenerFunc(func(p Phase, o Outcome) {
		rec.PhaseChanged(p, o)
		if p == PhaseGenerating {
			close(gotGenerating)
		}
	}))
	r.Start()

	<-gotGenerating
	r.Stop()
	<-r.Done()

	phases, _, _ := rec.snapshot()
	assert.Equal(t, []Phase{PhaseGenerating}, phases)
}

func TestRunner_NoListener(t *testing.T) {
	client := &fakeClient{resp: &backend.SetupResponse{Status: "generated"}}
	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), 0)

	assert.NotPanics(t, func() {
		require.NoError(t, r.Wait(context.Background()))
	})
}

func TestRunner_WaitContextCancelled(t *testing.T) {
	client := &fakeClient{release: make(chan struct{})}
	defer close(client.release)

	r := NewRunner(context.Background(), NewChecker(client, logger.Noop()), 0)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := r.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
