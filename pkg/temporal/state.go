// Package temporal drives a board forward in time at a target rate.
//
// A State owns the current cell state and its tunables. Run attaches a
// driver loop that advances the board by GenerationsPerStep once per tick
// while the state is Running; Step advances it once on demand while Paused.
// Every update is committed atomically, so observers never see a partially
// advanced board.
package temporal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"life-engine/pkg/algorithm"
	"life-engine/pkg/cellstate"
)

var (
	// ErrRunning is returned by Step while a driver owns the board.
	ErrRunning = errors.New("temporal: state is running")
	// ErrSuperseded is returned by Run when a newer driver took over.
	ErrSuperseded = errors.New("temporal: driver superseded")
	// ErrStale is returned by Step when the board changed while the step
	// was being computed. Nothing is committed.
	ErrStale = errors.New("temporal: state changed during step")
	// ErrInvalidParameter is returned for out-of-range tunables.
	ErrInvalidParameter = errors.New("temporal: invalid parameter")
)

// Config holds the tunables of a State.
type Config struct {
	GenerationsPerStep   int
	TargetStepsPerSecond float64
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{GenerationsPerStep: 1, TargetStepsPerSecond: 60}
}

func validRate(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// Option customises a State.
type Option func(*State)

// WithClock replaces the wall clock, typically with a ManualClock.
func WithClock(c Clock) Option {
	return func(s *State) { s.clock = c }
}

// WithAlgorithm replaces the default HashLife stepper.
func WithAlgorithm(a algorithm.Algorithm) Option {
	return func(s *State) { s.algorithm = a }
}

// WithLogger sets the logger used for driver lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) { s.logger = l }
}

// Snapshot is a consistent view of a State.
type Snapshot struct {
	ID                   string
	CellState            cellstate.CellState
	Generation           uint64
	GenerationsPerStep   int
	TargetStepsPerSecond float64
	Status               Status
}

// State is a board that evolves over time. All methods are safe for
// concurrent use.
type State struct {
	id        string
	clock     Clock
	algorithm algorithm.Algorithm
	logger    *slog.Logger

	stepMu sync.Mutex

	mu                   sync.Mutex
	cells                cellstate.CellState
	generation           uint64
	generationsPerStep   int
	targetStepsPerSecond float64
	running              bool
	runID                uint64
	runStart             time.Time
	window               rateWindow
	rate                 float64
	// epoch changes on every mutation that invalidates an in-flight tick
	// or step.
	epoch   uint64
	driver  uint64
	changed chan struct{}
}

// New creates a paused State holding initial. Out-of-range values in cfg
// fall back to DefaultConfig.
func New(initial cellstate.CellState, cfg Config, opts ...Option) *State {
	def := DefaultConfig()
	if cfg.GenerationsPerStep < 1 {
		cfg.GenerationsPerStep = def.GenerationsPerStep
	}
	if !validRate(cfg.TargetStepsPerSecond) {
		cfg.TargetStepsPerSecond = def.TargetStepsPerSecond
	}
	s := &State{
		id:                   uuid.NewString(),
		cells:                initial,
		generationsPerStep:   cfg.GenerationsPerStep,
		targetStepsPerSecond: cfg.TargetStepsPerSecond,
		changed:              make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	if s.algorithm == nil {
		s.algorithm = algorithm.NewHashLife()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With(slog.String("session", s.id))
	return s
}

// ID returns the session identifier carried in log lines.
func (s *State) ID() string { return s.id }

// Snapshot returns the current state.
func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:                   s.id,
		CellState:            s.cells,
		Generation:           s.generation,
		GenerationsPerStep:   s.generationsPerStep,
		TargetStepsPerSecond: s.targetStepsPerSecond,
		Status:               s.statusLocked(),
	}
}

// CellState returns the current board.
func (s *State) CellState() cellstate.CellState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cells
}

// Status returns Paused or Running with the measured rate.
func (s *State) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *State) statusLocked() Status {
	if !s.running {
		return Paused{}
	}
	return Running{AverageGenerationsPerSecond: s.rate}
}

// Changes returns a channel that is closed at the next change of the
// observable state. Call it again after each close to keep watching.
func (s *State) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changed
}

func (s *State) notifyLocked() {
	close(s.changed)
	s.changed = make(chan struct{})
}

// SetIsRunning switches between Paused and Running. Entering Running
// restarts rate measurement; entering Paused keeps the last committed board
// and discards any tick in flight.
func (s *State) SetIsRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running == running {
		return
	}
	s.running = running
	s.epoch++
	if running {
		s.runID++
		s.runStart = s.clock.Now()
		s.window.reset(s.runStart)
		s.rate = 0
	} else {
		measuredRate.Set(0)
	}
	s.logger.Debug("temporal state toggled", slog.Bool("running", running))
	s.notifyLocked()
}

// SetCellState replaces the board and restarts the generation count.
func (s *State) SetCellState(cells cellstate.CellState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cells = cells
	s.generation = 0
	s.epoch++
	s.notifyLocked()
}

// SetGenerationsPerStep changes how far each tick advances. It applies from
// the next tick.
func (s *State) SetGenerationsPerStep(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: generations per step %d", ErrInvalidParameter, n)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generationsPerStep = n
	s.notifyLocked()
	return nil
}

// SetTargetStepsPerSecond changes the tick rate. It applies from the next
// tick without resetting the schedule or the rate measurement.
func (s *State) SetTargetStepsPerSecond(tps float64) error {
	if !validRate(tps) {
		return fmt.Errorf("%w: target steps per second %v", ErrInvalidParameter, tps)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.targetStepsPerSecond = tps
	s.notifyLocked()
	return nil
}

// Step advances the board by GenerationsPerStep once. It fails with
// ErrRunning while Running.
func (s *State) Step() error {
	s.stepMu.Lock()
	defer s.stepMu.Unlock()

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrRunning
	}
	cells, gens, epoch := s.cells, s.generationsPerStep, s.epoch
	s.mu.Unlock()

	next := s.algorithm.Step(cells, gens)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		return ErrStale
	}
	s.commitLocked(next, gens)
	return nil
}

func (s *State) commitLocked(next cellstate.CellState, gens int) {
	s.cells = next
	s.generation += uint64(gens)
	s.epoch++
	s.notifyLocked()
}

// Run drives the board while the state is Running and idles while it is
// Paused. It returns ctx.Err() when ctx is done, or ErrSuperseded once a
// later Run call has taken over; a superseded driver commits nothing.
func (s *State) Run(ctx context.Context) error {
	s.mu.Lock()
	s.driver++
	token := s.driver
	s.epoch++
	s.notifyLocked()
	s.mu.Unlock()

	activeDrivers.Inc()
	defer activeDrivers.Dec()
	log := s.logger.With(slog.Uint64("driver", token))
	log.Info("temporal driver started")

	var (
		runID    uint64
		deadline time.Time
	)
	for {
		s.mu.Lock()
		if s.driver != token {
			s.mu.Unlock()
			ticksSuperseded.Inc()
			log.Info("temporal driver superseded")
			return ErrSuperseded
		}
		if !s.running {
			changed := s.changed
			s.mu.Unlock()
			select {
			case <-changed:
				continue
			case <-ctx.Done():
				log.Info("temporal driver stopped", slog.String("reason", ctx.Err().Error()))
				return ctx.Err()
			}
		}
		if runID != s.runID {
			runID = s.runID
			deadline = s.runStart.Add(tickInterval(s.targetStepsPerSecond))
		}
		changed := s.changed
		s.mu.Unlock()

		if wait := deadline.Sub(s.clock.Now()); wait > 0 {
			woke, err := s.sleep(ctx, changed, wait)
			if err != nil {
				log.Info("temporal driver stopped", slog.String("reason", err.Error()))
				return err
			}
			if woke {
				continue
			}
		}

		committed, err := s.tick(token, runID, &deadline)
		if err != nil {
			log.Info("temporal driver superseded")
			return err
		}
		if !committed {
			ticksDiscarded.Inc()
		}
	}
}

// sleep waits for d on the clock. It reports woke=true when changed fires
// first, so the caller can re-check ownership and status.
func (s *State) sleep(ctx context.Context, changed <-chan struct{}, d time.Duration) (woke bool, err error) {
	sleepCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-changed:
			cancel()
		case <-sleepCtx.Done():
		}
	}()
	if err := s.clock.Sleep(sleepCtx, d); err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		return true, nil
	}
	return false, nil
}

// tick advances the board once on behalf of driver token. The computation
// runs without holding the lock; its result is dropped if anything mutated
// the state meanwhile.
func (s *State) tick(token, runID uint64, deadline *time.Time) (bool, error) {
	s.mu.Lock()
	if s.driver != token {
		s.mu.Unlock()
		ticksSuperseded.Inc()
		return false, ErrSuperseded
	}
	if !s.running || s.runID != runID {
		s.mu.Unlock()
		return false, nil
	}
	cells, gens, epoch := s.cells, s.generationsPerStep, s.epoch
	s.mu.Unlock()

	start := time.Now()
	next := s.algorithm.Step(cells, gens)
	tickDuration.Observe(time.Since(start).Seconds())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver != token {
		ticksSuperseded.Inc()
		return false, ErrSuperseded
	}
	if s.epoch != epoch {
		return false, nil
	}
	now := s.clock.Now()
	s.commitLocked(next, gens)
	s.window.add(now, gens)
	s.rate = s.window.rate()
	measuredRate.Set(s.rate)
	ticksCommitted.Inc()
	*deadline = nextDeadline(*deadline, tickInterval(s.targetStepsPerSecond), now)
	return true, nil
}
