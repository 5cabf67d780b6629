package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"replenish-backend/internal/config"
	"replenish-backend/internal/shared"
	"replenish-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	jobConfig config.JobConfig
}

func NewScheduler(redisAddress string, jobConfig config.JobConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		jobConfig: jobConfig,
	}
}

// RegisterPeriodicJobs wires the three recurring jobs: the nightly plan
// generation, the hourly availability sync, and the plan retention
// prune. Cron specs come from config so operators can stagger them.
func (s *Scheduler) RegisterPeriodicJobs() error {
	if err := s.registerPlanGenerateJob(); err != nil {
		return err
	}

	if err := s.registerInventorySyncJob(); err != nil {
		return err
	}

	if err := s.registerPlanPruneJob(); err != nil {
		return err
	}

	return nil
}

// Nightly full-catalog plan generation. Runs before business hours so a
// fresh plan is waiting when planners start the day.
func (s *Scheduler) registerPlanGenerateJob() error {
	payload, err := json.Marshal(shared.PlanGeneratePayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePlanGenerate, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.PlanGenerateCron,
		task,
		asynq.Queue(shared.QueueHigh),
		asynq.MaxRetry(2),
		asynq.Timeout(15*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PlanGenerate job", err)
		return err
	}

	logger.Info("Registered PlanGenerate", map[string]interface{}{"cron": s.jobConfig.PlanGenerateCron})
	return nil
}

// Hourly availability cache refresh.
func (s *Scheduler) registerInventorySyncJob() error {
	payload, err := json.Marshal(shared.InventorySyncPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeInventorySync, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.InventorySyncCron,
		task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register InventorySync job", err)
		return err
	}

	logger.Info("Registered InventorySync", map[string]interface{}{"cron": s.jobConfig.InventorySyncCron})
	return nil
}

// Daily prune of expired plans, staggered after plan generation.
func (s *Scheduler) registerPlanPruneJob() error {
	payload, err := json.Marshal(shared.PlanPrunePayload{
		RetentionDays: s.jobConfig.PlanRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypePlanPrune, payload)

	_, err = s.scheduler.Register(
		s.jobConfig.PlanPruneCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register PlanPrune job", err)
		return err
	}

	logger.Info("Registered PlanPrune", map[string]interface{}{"cron": s.jobConfig.PlanPruneCron})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
