package cron

import (
	"CodeConnect/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine         *cron.Cron
	emailDigestJob *job.EmailDigestJob
	trendingJob    *job.TrendingJob
}

func NewCronManager(emailDigestJob *job.EmailDigestJob, trendingJob *job.TrendingJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds()),
		emailDigestJob: emailDigestJob,
		trendingJob:    trendingJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	// 每天 8 点发送摘要邮件
	if _, err := s.engine.AddJob("0 0 8 * * *", s.emailDigestJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob("@hourly", s.trendingJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}
