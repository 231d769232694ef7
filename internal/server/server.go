// Package server is the HTTP shell of the planner. It serves the address
// and imagery proxies and holds the single workbench session.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/roofsolar/planner/internal/export"
	"github.com/roofsolar/planner/internal/influx"
	"github.com/roofsolar/planner/internal/provider"
	"github.com/roofsolar/planner/internal/session"
	"github.com/roofsolar/planner/pkg/core"
)

// Suggester answers address autocomplete queries.
type Suggester interface {
	Suggest(ctx context.Context, query string) ([]core.Location, error)
}

// Resolver turns an address into a location.
type Resolver interface {
	Resolve(ctx context.Context, address string) (provider.Result, error)
}

// Recorder stores computed layouts.
type Recorder interface {
	RecordLayout(ctx context.Context, ev influx.LayoutEvent) error
}

// Deps are the collaborators of the shell. Any of them may be nil; the
// matching routes then answer 503.
type Deps struct {
	Suggester Suggester
	Resolver  Resolver
	Imagery   provider.Imagery
	Recorder  Recorder
	Exporter  *export.Writer
}

// Options tune the shell.
type Options struct {
	AllowedOrigins []string
	// ImageWidth and ImageHeight are the default satellite picture size.
	ImageWidth  int
	ImageHeight int
	Meter       metric.Meter
	Logger      *slog.Logger
	Now         func() time.Time
}

// Server serves the planner API.
type Server struct {
	deps Deps
	opts Options
	log  *slog.Logger

	mu        sync.Mutex
	state     session.State
	sessionID string

	// current mirrors sessionID and the workflow step for lock-free reads
	// by the logging middleware.
	current atomic.Pointer[sessionInfo]

	requests metric.Int64Counter
	closed   metric.Int64Counter
	exports  metric.Int64Counter
}

type sessionInfo struct {
	id   string
	step session.Step
}

// New creates a server around a fresh session.
func New(settings session.Settings, deps Deps, opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Meter == nil {
		opts.Meter = noop.NewMeterProvider().Meter("roofsolar")
	}
	if opts.ImageWidth <= 0 || opts.ImageHeight <= 0 {
		opts.ImageWidth, opts.ImageHeight = 600, 400
	}

	s := &Server{
		deps:      deps,
		opts:      opts,
		log:       opts.Logger,
		state:     session.New(settings),
		sessionID: uuid.NewString(),
	}
	s.publish()

	var err error
	if s.requests, err = opts.Meter.Int64Counter("roofsolar.http.requests",
		metric.WithDescription("HTTP requests served")); err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}
	if s.closed, err = opts.Meter.Int64Counter("roofsolar.outlines.closed",
		metric.WithDescription("Roof outlines closed")); err != nil {
		return nil, fmt.Errorf("failed to create outline counter: %w", err)
	}
	if s.exports, err = opts.Meter.Int64Counter("roofsolar.layouts.exported",
		metric.WithDescription("Layouts exported")); err != nil {
		return nil, fmt.Errorf("failed to create export counter: %w", err)
	}
	return s, nil
}

// State returns the current session.
func (s *Server) State() session.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SessionID returns the id of the current session.
func (s *Server) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// update applies fn to the current state and swaps in the result. On error
// the state is kept.
func (s *Server) update(fn func(session.State) (session.State, error)) (session.State, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(s.state)
	if err != nil {
		return s.state, s.sessionID, err
	}
	s.state = next
	s.publish()
	return next, s.sessionID, nil
}

// relocate starts a new session at loc. Panel settings carry over.
func (s *Server) relocate(loc core.Location) (session.State, string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessionID = uuid.NewString()
	s.state = s.state.WithLocation(loc)
	s.publish()
	return s.state, s.sessionID
}

// publish must be called with mu held.
func (s *Server) publish() {
	s.current.Store(&sessionInfo{id: s.sessionID, step: s.state.Step()})
}

// record stores a layout event. Failures are logged, never returned.
func (s *Server) record(ctx context.Context, id, action string, st session.State) {
	if s.deps.Recorder == nil {
		return
	}
	loc, _ := st.Location()
	ev := influx.LayoutEvent{
		Time:     s.opts.Now(),
		Session:  id,
		Action:   action,
		Address:  loc.Address,
		Vertices: len(st.Outline().Points),
		Panel:    st.Panels(),
		Result:   st.Layout(),
	}
	if err := s.deps.Recorder.RecordLayout(ctx, ev); err != nil {
		s.log.WarnContext(ctx, "failed to record layout", "action", action, "error", err)
	}
}
