package listings

import (
	"context"
	"time"

	"matchly/pkg/logger"
)

// GoLiveSweeper periodically publishes DRAFT listings whose go-live
// time has passed.
type GoLiveSweeper struct {
	repo     Repository
	interval time.Duration
	logger   *logger.Logger
	done     chan struct{}
}

func NewGoLiveSweeper(repo Repository, interval time.Duration, log *logger.Logger) *GoLiveSweeper {
	return &GoLiveSweeper{
		repo:     repo,
		interval: interval,
		logger:   log,
		done:     make(chan struct{}),
	}
}

// Start runs the sweep loop until Stop is called
func (s *GoLiveSweeper) Start() {
	go func() {
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.sweep(context.Background())
			case <-s.done:
				return
			}
		}
	}()
}

// Stop signals the sweep loop to exit
func (s *GoLiveSweeper) Stop() {
	close(s.done)
}

func (s *GoLiveSweeper) sweep(ctx context.Context) {
	published, err := s.repo.ActivateDue(ctx, time.Now())
	if err != nil {
		s.logger.ErrorWithContext(ctx, "Go-live sweep failed", err, nil)
		return
	}
	if published > 0 {
		s.logger.InfoWithContext(ctx, "Published due listings", map[string]interface{}{
			"published": published,
		})
	}
}
