package job

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/logger"
	"CodeConnect/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// EmailDigestJob 每天触发日报，周一额外触发周报
type EmailDigestJob struct {
	digestSvc service.DigestService
}

func NewEmailDigestJob(digestSvc service.DigestService) *EmailDigestJob {
	return &EmailDigestJob{
		digestSvc: digestSvc,
	}
}

func (s *EmailDigestJob) Run() {
	ctx := logger.WithTraceID(context.Background(), "job-digest-"+uuid.NewString())

	if err := s.digestSvc.SendDigests(ctx, model.EmailFrequencyDaily); err != nil {
		log.ErrorContext(ctx, "daily digest run error", "err", err)
	}

	if time.Now().UTC().Weekday() == time.Monday {
		if err := s.digestSvc.SendDigests(ctx, model.EmailFrequencyWeekly); err != nil {
			log.ErrorContext(ctx, "weekly digest run error", "err", err)
		}
	}
}
