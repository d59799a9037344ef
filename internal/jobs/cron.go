package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronManager owns the scheduled jobs of the process.
type CronManager struct {
	cron   *cron.Cron
	logger *zap.Logger
}

func NewCronManager(loc *time.Location, logger *zap.Logger) *CronManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CronManager{
		cron:   cron.New(cron.WithLocation(loc)),
		logger: logger,
	}
}

// Add registers fn under a cron schedule. Each run gets its own timeout.
func (cm *CronManager) Add(name, schedule string, timeout time.Duration, fn func(ctx context.Context) error) error {
	_, err := cm.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			cm.logger.Error("cron job failed", zap.String("job", name), zap.Error(err))
			return
		}
		cm.logger.Info("cron job completed",
			zap.String("job", name),
			zap.Duration("took", time.Since(start)),
		)
	})
	if err != nil {
		return err
	}

	cm.logger.Info("cron job registered", zap.String("job", name), zap.String("schedule", schedule))
	return nil
}

func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop waits for running jobs to return.
func (cm *CronManager) Stop() {
	<-cm.cron.Stop().Done()
}
