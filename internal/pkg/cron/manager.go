package cron

import (
	"Arbor/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// voteSyncSpec 投票计数回写的调度周期
const voteSyncSpec = "@every 5m"

type Manager struct {
	engine       *cron.Cron
	voteCountJob *job.VoteCountJob
}

func NewCronManager(voteCountJob *job.VoteCountJob) *Manager {
	return &Manager{
		engine:       cron.New(cron.WithSeconds()),
		voteCountJob: voteCountJob,
	}
}

// Start 注册全部定时任务并启动调度引擎
func (s *Manager) Start() error {
	if _, err := s.engine.AddJob(voteSyncSpec, s.voteCountJob); err != nil {
		return err
	}
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
	return nil
}

// Stop 停止调度并等待进行中的任务结束
func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
