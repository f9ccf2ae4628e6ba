package health

import (
	"context"

	"github.com/pkg/errors"
)

// Checker represents a dependency health check.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// ReadinessUseCase describes readiness verification.
type ReadinessUseCase interface {
	// Ready fails with the first failing dependency, prefixed by its name.
	Ready(ctx context.Context) error
	// Report returns "ok" or the error text for every dependency.
	Report(ctx context.Context) map[string]string
}

type service struct {
	checkers []Checker
}

// NewService aggregates dependency checkers. With no checkers the service is always ready.
func NewService(checkers ...Checker) ReadinessUseCase {
	return &service{checkers: checkers}
}

func (s *service) Ready(ctx context.Context) error {
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			return errors.Wrap(err, ch.Name())
		}
	}
	return nil
}

func (s *service) Report(ctx context.Context) map[string]string {
	report := make(map[string]string, len(s.checkers))
	for _, ch := range s.checkers {
		if err := ch.Check(ctx); err != nil {
			report[ch.Name()] = err.Error()
			continue
		}
		report[ch.Name()] = "ok"
	}
	return report
}
