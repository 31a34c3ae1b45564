package scheduler

import (
	"context"
	"time"

	"github.com/wb-go/wbf/logger"
)

type sessionSweeper interface {
	ResetExpired(ctx context.Context) ([]int64, error)
}

// Scheduler периодически сбрасывает брошенные диалоги бронирования,
// чтобы забытая на середине сессия не держала чат в режиме диалога вечно.
type Scheduler struct {
	bookingService sessionSweeper
	interval       time.Duration
	logger         logger.Logger
}

func New(
	bookingService sessionSweeper,
	interval time.Duration,
	logger logger.Logger,
) *Scheduler {
	return &Scheduler{
		bookingService: bookingService,
		interval:       interval,
		logger:         logger,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("session sweeper started",
		logger.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	expired, err := s.bookingService.ResetExpired(ctx)
	if err != nil {
		s.logger.Error("failed to reset expired sessions",
			logger.String("error", err.Error()),
		)
		return
	}

	for _, chatID := range expired {
		s.logger.Info("booking session expired",
			logger.Int64("chat_id", chatID),
		)
	}
}
