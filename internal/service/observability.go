package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// UseCaseEvent is one completed roadmap operation: which project and
// viewer it served, how long it took, and whether it succeeded. Counts
// describe the built projection and stay zero when the load failed.
type UseCaseEvent struct {
	Name       string
	ProjectID  string
	UserID     string
	TrackCount int
	ItemCount  int
	Duration   time.Duration
	Success    bool
	Err        error
	StartedAt  time.Time
}

// UseCaseObserver receives use-case execution events. Heavyweight
// operations like roadmap loads report through it; cheap CRUD does not.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver emits one structured log line per event to w.
func NewLogUseCaseObserver(w io.Writer) UseCaseObserver {
	if w == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	attrs := []any{
		"use_case", event.Name,
		"project", event.ProjectID,
		"user", event.UserID,
		"duration_ms", event.Duration.Milliseconds(),
		"success", event.Success,
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "usecase", attrs...)
		return
	}
	attrs = append(attrs,
		"tracks", event.TrackCount,
		"items", event.ItemCount,
	)
	o.logger.InfoContext(ctx, "usecase", attrs...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
