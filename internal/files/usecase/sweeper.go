package usecase

import (
	"context"
	"log/slog"
	"time"
)

// SweeperConfig holds reclamation sweeper configuration.
type SweeperConfig struct {
	// Interval is the delay between sweep runs.
	Interval time.Duration
}

// Sweeper runs the reclamation sweep periodically until its context is
// canceled. The sweep itself lives in the use case; the sweeper only
// schedules it, so the same logic backs the standalone CLI command.
type Sweeper struct {
	config SweeperConfig
	fileUC FileUseCase
	logger *slog.Logger
}

// NewSweeper creates a new periodic sweeper.
func NewSweeper(config SweeperConfig, fileUC FileUseCase, logger *slog.Logger) *Sweeper {
	return &Sweeper{
		config: config,
		fileUC: fileUC,
		logger: logger,
	}
}

// Start runs the sweep loop. The first sweep runs immediately so a restart
// never postpones reclamation by a full interval. Sweep failures are logged
// and the loop keeps going; only context cancellation stops it.
func (s *Sweeper) Start(ctx context.Context) error {
	if s.logger != nil {
		s.logger.Info("starting reclamation sweeper",
			slog.Duration("interval", s.config.Interval),
		)
	}

	s.sweep(ctx)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if s.logger != nil {
				s.logger.Info("stopping reclamation sweeper")
			}
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	report, err := s.fileUC.Sweep(ctx, false)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("reclamation sweep failed", slog.Any("error", err))
		}
		return
	}

	if s.logger != nil && (report.Expired > 0 || report.Exhausted > 0) {
		s.logger.Info("reclamation sweep completed",
			slog.Int64("expired_deleted", report.Expired),
			slog.Int64("exhausted_deleted", report.Exhausted),
		)
	}
}
