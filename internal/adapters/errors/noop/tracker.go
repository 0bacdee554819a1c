package noop

import (
	"context"

	"kunaclient/pkg/errors"
)

// Tracker is a no-op error tracker used when tracking is disabled.
type Tracker struct{}

// New creates a new no-op tracker
func New() *Tracker {
	return &Tracker{}
}

func (t *Tracker) CaptureError(ctx context.Context, err error, tags map[string]string) error {
	return nil
}

func (t *Tracker) CaptureMessage(ctx context.Context, message string, level errors.Level, tags map[string]string) error {
	return nil
}

func (t *Tracker) Flush(ctx context.Context) error {
	return nil
}
