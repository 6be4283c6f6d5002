// SPDX-License-Identifier: GPL-3.0-only

// Package sweeper schedules garbage collection of expired API keys. The
// sweep is pure cleanup; token validation rejects expired keys on its own,
// so nothing breaks if a run fails or the process never starts one.
package sweeper

import (
	"todoapp-server/apikeys"
	"todoapp-server/commons"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

const defaultSchedule = "0 0 * * *"

type Sweeper struct {
	manager *apikeys.Manager
	cron    *cron.Cron
}

func NewSweeper(conn *gorm.DB) *Sweeper {
	return &Sweeper{
		manager: apikeys.NewManager(conn),
		cron:    cron.New(),
	}
}

// Start registers the sweep on its cron schedule (SWEEP_SCHEDULE env,
// default daily at midnight) and launches the scheduler. A failed sweep is
// logged and left for the next tick; the rows it missed are still pending.
func (s *Sweeper) Start() error {
	schedule := commons.GetEnv("SWEEP_SCHEDULE", defaultSchedule)
	_, err := s.cron.AddFunc(schedule, s.runSweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	commons.Logger.Infof("Expired API key sweeper scheduled: %s", schedule)
	return nil
}

func (s *Sweeper) Stop() {
	s.cron.Stop()
}

func (s *Sweeper) runSweep() {
	deleted, err := s.manager.Sweep()
	if err != nil {
		commons.Logger.Errorf("API key sweep failed: %v", err)
		return
	}
	commons.Logger.Infof("API key sweep completed, %d expired keys deleted", deleted)
}
