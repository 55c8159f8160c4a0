package service

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"CodeConnect/internal/pkg/mailer"
	"CodeConnect/internal/pkg/redis"
	"CodeConnect/internal/repository"
	"context"
	"html/template"
	log "log/slog"
	"strconv"
	"strings"
	"time"
)

const digestTemplateText = `<html>
<body style="font-family: Arial, sans-serif; color: #24292f;">
  <h2>Hi {{.Username}},</h2>
  <p>Here are some open-source projects we think you'll enjoy:</p>
  {{range .Projects}}
  <div style="border: 1px solid #d0d7de; border-radius: 6px; padding: 16px; margin-bottom: 12px;">
    <h3 style="margin: 0 0 8px 0;">
      <a href="https://github.com/{{.RepoOwner}}/{{.RepoName}}">{{.RepoOwner}}/{{.RepoName}}</a>
    </h3>
    <p style="margin: 0 0 8px 0;">{{.Description}}</p>
    <p style="margin: 0; color: #57606a; font-size: 13px;">{{.Reason}}</p>
  </div>
  {{end}}
  <p style="color: #57606a; font-size: 12px;">
    You receive this digest because of your CodeConnect email preferences.
  </p>
</body>
</html>`

var digestTemplate = template.Must(template.New("digest").Parse(digestTemplateText))

type digestProject struct {
	RepoOwner   string
	RepoName    string
	Description string
	Reason      string
}

type digestData struct {
	Username string
	Projects []digestProject
}

// DigestService 邮件摘要管道：选用户、取推荐、渲染、发送、记历史
type DigestService interface {
	SendDigests(ctx context.Context, frequency string) error
}

type digestServiceImpl struct {
	userRepo     repository.UserRepo
	historyRepo  repository.HistoryRepo
	recommendSvc RecommendationService
}

func NewDigestService(
	userRepo repository.UserRepo,
	historyRepo repository.HistoryRepo,
	recommendSvc RecommendationService,
) DigestService {
	return &digestServiceImpl{
		userRepo:     userRepo,
		historyRepo:  historyRepo,
		recommendSvc: recommendSvc,
	}
}

// SendDigests 给订阅了指定频率的用户各发一封摘要，单个用户失败不影响其他用户
func (s *digestServiceImpl) SendDigests(ctx context.Context, frequency string) error {
	users, err := s.userRepo.GetByEmailFrequency(ctx, frequency)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "digest run started", "frequency", frequency, "users", len(users))

	var sent int
	for _, user := range users {
		if user.Email == "" {
			continue
		}
		ok, err := s.sendToUser(ctx, user, frequency)
		if err != nil {
			log.ErrorContext(ctx, "send digest failed", "userID", user.ID, "err", err)
			continue
		}
		if ok {
			sent++
		}
	}
	log.InfoContext(ctx, "digest run finished", "frequency", frequency, "sent", sent)
	return nil
}

func (s *digestServiceImpl) sendToUser(ctx context.Context, user *model.User, frequency string) (bool, error) {
	now := time.Now().UTC()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	// 当天已发过就跳过，日发和周发同一天触发时只发一封
	alreadySent, err := s.historyRepo.HasSentSince(ctx, user.ID, midnight, model.RecommendationContextEmail)
	if err != nil {
		return false, err
	}
	if alreadySent {
		return false, nil
	}

	lockKey := consts.DigestSentLock + strconv.FormatUint(user.ID, 10)
	locked, err := redis.TryLock(ctx, lockKey, "1", midnight.Add(24*time.Hour).Sub(now), 0)
	if err != nil || !locked {
		return false, err
	}
	// 没发出邮件就释放锁，否则一次失败会把用户锁到第二天
	sent := false
	defer func() {
		if !sent {
			redis.UnLock(ctx, lockKey, "1")
		}
	}()

	recs, err := s.recommendSvc.GetHybridRecommendations(ctx, user.ID, consts.DigestSize, model.RecommendationContextEmail)
	if err != nil {
		return false, err
	}
	if len(recs) == 0 {
		// 没有可推荐的内容，本次不发信
		return false, nil
	}

	data := digestData{Username: user.Username}
	for _, r := range recs {
		data.Projects = append(data.Projects, digestProject{
			RepoOwner:   r.Project.RepoOwner,
			RepoName:    r.Project.RepoName,
			Description: r.Project.Description,
			Reason:      strings.Join(r.Reasons, " · "),
		})
	}

	var body strings.Builder
	if err := digestTemplate.Execute(&body, data); err != nil {
		return false, err
	}

	subject := "Your daily CodeConnect picks"
	if frequency == model.EmailFrequencyWeekly {
		subject = "Your weekly CodeConnect picks"
	}

	result, err := mailer.Send(ctx, user.Email, subject, body.String())
	if err != nil || !result.Success {
		return false, err
	}

	entries := make([]*model.RecommendationHistory, 0, len(recs))
	sentAt := time.Now()
	for _, r := range recs {
		entries = append(entries, &model.RecommendationHistory{
			UserID:    user.ID,
			ProjectID: r.Project.ID,
			SentAt:    sentAt,
			Context:   model.RecommendationContextEmail,
		})
	}
	if err := s.historyRepo.Create(ctx, entries); err != nil {
		log.ErrorContext(ctx, "record recommendation history failed", "userID", user.ID, "err", err)
	}
	sent = true
	return true, nil
}
