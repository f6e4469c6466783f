package notifier

import (
	"context"
	"errors"

	"leadboard/internal/model"
)

// Fanout writes every update to all of its writers. A failing writer does not
// stop the others; their errors are joined.
type Fanout []Writer

func (f Fanout) WriteStage(ctx context.Context, u model.StageUpdate) error {
	var errs []error
	for _, w := range f {
		if err := w.WriteStage(ctx, u); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
