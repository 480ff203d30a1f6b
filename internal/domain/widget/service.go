package widget

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/skycast/internal/domain/forecast"
	"github.com/yanqian/skycast/internal/domain/location"
	"github.com/yanqian/skycast/internal/domain/presenter"
	apperrors "github.com/yanqian/skycast/pkg/errors"
	"github.com/yanqian/skycast/pkg/metrics"
	"github.com/yanqian/skycast/pkg/util"
)

// Service drives widget sessions through Loading to Content or Error.
type Service interface {
	Open(ctx context.Context) (State, error)
	Load(ctx context.Context, sessionID string) (State, error)
	Search(ctx context.Context, sessionID string, trigger Trigger, city string) (State, error)
	Locate(ctx context.Context, sessionID string, report location.PositionReport) (State, error)
	State(ctx context.Context, sessionID string) (State, error)
}

// Store keeps the current query id and state of each session.
type Store interface {
	// Begin allocates the next query id of a session.
	Begin(ctx context.Context, sessionID string) (uint64, error)
	// Publish stores st only while st.QueryID is still the session's current
	// query id, and reports whether it did.
	Publish(ctx context.Context, sessionID string, st State) (bool, error)
	Load(ctx context.Context, sessionID string) (State, bool, error)
}

// Notifier receives every applied state transition.
type Notifier interface {
	Notify(sessionID string, st State)
}

// Formatter renders fetched weather for display.
type Formatter interface {
	Format(loc *location.Location, w forecast.Weather, now time.Time) presenter.Display
}

type service struct {
	cfg       Config
	resolver  location.Resolver
	fetcher   forecast.Fetcher
	formatter Formatter
	store     Store
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewService wires the orchestrator.
func NewService(cfg Config, resolver location.Resolver, fetcher forecast.Fetcher, formatter Formatter, store Store, notifier Notifier, logger *slog.Logger) Service {
	if strings.TrimSpace(cfg.DefaultCity) == "" {
		cfg.DefaultCity = DefaultCity
	}
	return &service{
		cfg:       cfg,
		resolver:  resolver,
		fetcher:   fetcher,
		formatter: formatter,
		store:     store,
		notifier:  notifier,
		logger:    logger.With("component", "widget.service"),
		now:       util.NowUTC,
		newID:     uuid.NewString,
	}
}

// Open creates a session and runs the initial load for the default city.
func (s *service) Open(ctx context.Context) (State, error) {
	sessionID := s.newID()
	idle := State{SessionID: sessionID, Phase: PhaseIdle, UpdatedAt: s.now()}
	if _, err := s.store.Publish(ctx, sessionID, idle); err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to create session", err)
	}
	s.logger.Info("widget session opened", "session", sessionID)
	return s.search(ctx, sessionID, TriggerInitialLoad, s.cfg.DefaultCity)
}

func (s *service) Load(ctx context.Context, sessionID string) (State, error) {
	if _, err := s.State(ctx, sessionID); err != nil {
		return State{}, err
	}
	return s.search(ctx, sessionID, TriggerInitialLoad, s.cfg.DefaultCity)
}

func (s *service) Search(ctx context.Context, sessionID string, trigger Trigger, city string) (State, error) {
	if _, err := s.State(ctx, sessionID); err != nil {
		return State{}, err
	}
	if trigger != TriggerEnterKey && trigger != TriggerInitialLoad {
		trigger = TriggerSearchButton
	}
	return s.search(ctx, sessionID, trigger, city)
}

func (s *service) Locate(ctx context.Context, sessionID string, report location.PositionReport) (State, error) {
	if _, err := s.State(ctx, sessionID); err != nil {
		return State{}, err
	}
	if !report.Supported {
		// No position request is ever made, so the widget goes straight to Error.
		_, err := s.resolver.ResolveByGeolocation(ctx, report)
		return s.failImmediately(ctx, sessionID, TriggerCurrentLocation, err)
	}
	return s.run(ctx, sessionID, TriggerCurrentLocation, func(ctx context.Context) (location.Location, error) {
		return s.resolver.ResolveByGeolocation(ctx, report)
	})
}

func (s *service) State(ctx context.Context, sessionID string) (State, error) {
	st, ok, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to load session", err)
	}
	if !ok {
		return State{}, apperrors.Wrap(apperrors.CodeSessionNotFound, fmt.Sprintf("session %q not found", sessionID), nil)
	}
	return st, nil
}

func (s *service) search(ctx context.Context, sessionID string, trigger Trigger, city string) (State, error) {
	name := strings.TrimSpace(city)
	if name == "" {
		return s.failImmediately(ctx, sessionID, trigger, apperrors.Wrap(apperrors.CodeEmptyInput, location.MsgEmptyCity, nil))
	}
	return s.run(ctx, sessionID, trigger, func(ctx context.Context) (location.Location, error) {
		return s.resolver.ResolveByName(ctx, name)
	})
}

// failImmediately supersedes any in-flight query with an Error state without
// passing through Loading.
func (s *service) failImmediately(ctx context.Context, sessionID string, trigger Trigger, cause error) (State, error) {
	queryID, err := s.store.Begin(ctx, sessionID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to start query", err)
	}
	return s.commit(ctx, s.errorState(sessionID, queryID, trigger, cause))
}

func (s *service) run(ctx context.Context, sessionID string, trigger Trigger, resolve func(context.Context) (location.Location, error)) (State, error) {
	queryID, err := s.store.Begin(ctx, sessionID)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to start query", err)
	}
	logger := s.logger.With("session", sessionID, "query", queryID, "trigger", trigger)

	if _, err := s.commit(ctx, State{
		SessionID: sessionID,
		Phase:     PhaseLoading,
		QueryID:   queryID,
		Trigger:   trigger,
		UpdatedAt: s.now(),
	}); err != nil {
		return State{}, err
	}

	watch := metrics.StartStopwatch(s.now)
	loc, err := resolve(ctx)
	if err != nil {
		logger.Info("location resolution failed", "error", err)
		return s.commit(ctx, s.errorState(sessionID, queryID, trigger, err))
	}
	resolveMs := watch.Lap()

	weather, err := s.fetcher.Fetch(ctx, loc.Latitude, loc.Longitude)
	if err != nil {
		logger.Info("weather fetch failed", "error", err)
		return s.commit(ctx, s.errorState(sessionID, queryID, trigger, err))
	}
	fetchMs := watch.Lap()

	display := s.formatter.Format(&loc, weather, s.now())
	logger.Info("weather query completed", "location", display.DisplayName, "forecast_days", len(display.Forecast))
	return s.commit(ctx, State{
		SessionID: sessionID,
		Phase:     PhaseContent,
		QueryID:   queryID,
		Trigger:   trigger,
		Location:  &loc,
		Display:   &display,
		Timings:   &metrics.QueryTimings{ResolveMs: resolveMs, FetchMs: fetchMs, TotalMs: watch.Total()},
		UpdatedAt: s.now(),
	})
}

func (s *service) errorState(sessionID string, queryID uint64, trigger Trigger, cause error) State {
	code := apperrors.CodeOf(cause)
	if code == "" {
		code = apperrors.CodeServiceError
	}
	return State{
		SessionID: sessionID,
		Phase:     PhaseError,
		QueryID:   queryID,
		Trigger:   trigger,
		Message:   apperrors.MessageOf(cause),
		Code:      code,
		UpdatedAt: s.now(),
	}
}

// commit publishes st unless a newer query has started, in which case the
// session's current state is returned instead. Writes outlive the caller's
// context so a query never stays in Loading because its client went away.
func (s *service) commit(ctx context.Context, st State) (State, error) {
	writeCtx := context.WithoutCancel(ctx)
	applied, err := s.store.Publish(writeCtx, st.SessionID, st)
	if err != nil {
		return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to publish state", err)
	}
	if !applied {
		s.logger.Info("discarding superseded result", "session", st.SessionID, "query", st.QueryID, "phase", st.Phase)
		current, _, err := s.store.Load(writeCtx, st.SessionID)
		if err != nil {
			return State{}, apperrors.Wrap(apperrors.CodeSessionError, "failed to load session", err)
		}
		return current, nil
	}
	if s.notifier != nil {
		s.notifier.Notify(st.SessionID, st)
	}
	return st, nil
}
