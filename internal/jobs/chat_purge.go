package jobs

import (
	"context"

	"go.uber.org/zap"
)

// Purger deletes chat messages past retention.
type Purger interface {
	Purge(ctx context.Context) (int64, error)
}

func ChatPurge(p Purger, log *zap.Logger) Job {
	return func(ctx context.Context) error {
		n, err := p.Purge(ctx)
		if err != nil {
			return err
		}
		if n > 0 && log != nil {
			log.Info("chat messages purged", zap.Int64("deleted", n))
		}
		return nil
	}
}
