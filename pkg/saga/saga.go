// Package saga runs a multi-step operation whose steps may span systems
// with no shared transaction boundary. On failure the compensations of the
// steps that already completed are executed in reverse order.
package saga

import (
	"context"
	"fmt"
	"log"
)

type Step struct {
	Name string
	Run  func(ctx context.Context) error

	// Compensate undoes a completed Run. Nil for steps with nothing to undo.
	Compensate func(ctx context.Context) error
}

// Execute runs the steps in order. The first failing step aborts the
// sequence; the failed step itself is not compensated. Compensations run on
// a fresh context so a rollback still happens after the caller's context is
// cancelled.
func Execute(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := step.Run(ctx); err != nil {
			rollback(steps[:i])
			return fmt.Errorf("step %q: %w", step.Name, err)
		}
	}
	return nil
}

func rollback(completed []Step) {
	ctx := context.Background()
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			log.Printf("Error compensating step %q: %v", step.Name, err)
		}
	}
}
