package service

import (
	"CodeConnect/internal/api/dto"
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"CodeConnect/internal/pkg/github"
	"CodeConnect/internal/pkg/util"
	"CodeConnect/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/copier"
)

type ProjectService interface {
	CreateProject(ctx context.Context, userID uint64, req *dto.ProjectCreateDTO) (*dto.ProjectDTO, error)
	GetProject(ctx context.Context, viewerID, projectID uint64) (*dto.ProjectDetailDTO, error)
	ListProjects(ctx context.Context, tagName, technologyName string, page, pageSize int) (*dto.ProjectListDTO, error)
	UpdateProject(ctx context.Context, userID, projectID uint64, req *dto.ProjectUpdateDTO) error
	DeleteProject(ctx context.Context, userID, projectID uint64) error
}

type projectServiceImpl struct {
	projectRepo    repository.ProjectRepo
	tagRepo        repository.TagRepo
	technologyRepo repository.TechnologyRepo
	actionSvc      ProjectActionService
}

func NewProjectService(
	projectRepo repository.ProjectRepo,
	tagRepo repository.TagRepo,
	technologyRepo repository.TechnologyRepo,
	actionSvc ProjectActionService,
) ProjectService {
	return &projectServiceImpl{
		projectRepo:    projectRepo,
		tagRepo:        tagRepo,
		technologyRepo: technologyRepo,
		actionSvc:      actionSvc,
	}
}

// CreateProject 发布项目，从 GitHub 拉取仓库元数据补全描述、星数与主语言
func (s *projectServiceImpl) CreateProject(ctx context.Context, userID uint64, req *dto.ProjectCreateDTO) (*dto.ProjectDTO, error) {
	repoInfo, err := github.GetRepository(ctx, req.RepoOwner, req.RepoName)
	if err != nil {
		log.WarnContext(ctx, "fetch github repository failed", "owner", req.RepoOwner, "repo", req.RepoName, "err", err)
		return nil, ErrRepoNotFound
	}

	description := req.Description
	if description == "" {
		description = repoInfo.Description
	}

	project := &model.Project{
		UserID:          userID,
		RepoOwner:       req.RepoOwner,
		RepoName:        req.RepoName,
		Description:     description,
		DifficultyLevel: req.DifficultyLevel,
		Stars:           repoInfo.Stars,
		Language:        repoInfo.Language,
		Status:          consts.ProjectStatusNormal,
		WebhookActive:   true,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	tagRows, techRows, err := s.resolveAssociations(ctx, req.Tags, req.Technologies)
	if err != nil {
		return nil, err
	}

	if err := s.projectRepo.Create(ctx, project, tagRows, techRows); err != nil {
		if isDuplicateError(err) {
			return nil, ErrProjectExist
		}
		return nil, err
	}

	item := s.toProjectDTO(project)
	item.Tags = util.DedupStrings(req.Tags)
	item.Technologies = util.DedupStrings(req.Technologies)
	return item, nil
}

func (s *projectServiceImpl) GetProject(ctx context.Context, viewerID, projectID uint64) (*dto.ProjectDetailDTO, error) {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil || project.Status != consts.ProjectStatusNormal {
		return nil, ErrProjectNotFound
	}

	detail := &dto.ProjectDetailDTO{ProjectDTO: *s.toProjectDTO(project)}
	if project.User.ID > 0 {
		detail.Username = project.User.Username
		detail.AvatarURL = project.User.AvatarURL
	}

	detail.LikeCount, _ = s.actionSvc.GetLikeCount(ctx, projectID)
	detail.ViewCount, _ = s.actionSvc.GetViewCount(ctx, projectID)
	detail.CommentCount, _ = s.actionSvc.GetCommentCount(ctx, projectID)
	detail.IsLiked, _ = s.actionSvc.IsLiked(ctx, viewerID, projectID)
	return detail, nil
}

func (s *projectServiceImpl) ListProjects(ctx context.Context, tagName, technologyName string, page, pageSize int) (*dto.ProjectListDTO, error) {
	projects, err := s.projectRepo.List(ctx, tagName, technologyName, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	hasMore := len(projects) > pageSize
	if hasMore {
		projects = projects[:pageSize]
	}
	list := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		list = append(list, s.toProjectDTO(p))
	}
	return &dto.ProjectListDTO{List: list, HasMore: hasMore}, nil
}

func (s *projectServiceImpl) UpdateProject(ctx context.Context, userID, projectID uint64, req *dto.ProjectUpdateDTO) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil || project.Status != consts.ProjectStatusNormal {
		return ErrProjectNotFound
	}
	if project.UserID != userID {
		return UnauthorizedError
	}

	project.Description = req.Description
	project.DifficultyLevel = req.DifficultyLevel
	project.UpdatedAt = time.Now()

	tagRows, techRows, err := s.resolveAssociations(ctx, req.Tags, req.Technologies)
	if err != nil {
		return err
	}
	for _, t := range tagRows {
		t.ProjectID = project.ID
	}
	for _, t := range techRows {
		t.ProjectID = project.ID
	}
	return s.projectRepo.Update(ctx, project, tagRows, techRows)
}

func (s *projectServiceImpl) DeleteProject(ctx context.Context, userID, projectID uint64) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	if project == nil || project.Status != consts.ProjectStatusNormal {
		return ErrProjectNotFound
	}
	if project.UserID != userID {
		return UnauthorizedError
	}
	return s.projectRepo.Delete(ctx, projectID)
}

// resolveAssociations 标签与技术栈按名称 get-or-create，第一个标签作为主标签高亮
func (s *projectServiceImpl) resolveAssociations(ctx context.Context, tagNames, techNames []string) ([]*model.ProjectTag, []*model.ProjectTechnology, error) {
	tagNames = util.DedupStrings(tagNames)
	techNames = util.DedupStrings(techNames)

	var tagRows []*model.ProjectTag
	if len(tagNames) > 0 {
		tags, err := s.tagRepo.GetOrCreateTags(ctx, tagNames)
		if err != nil {
			return nil, nil, err
		}
		idByName := make(map[string]uint64, len(tags))
		for _, t := range tags {
			idByName[t.Name] = t.ID
		}
		for i, name := range tagNames {
			id, ok := idByName[name]
			if !ok {
				continue
			}
			tagRows = append(tagRows, &model.ProjectTag{TagID: id, IsHighlighted: i == 0})
		}
	}

	var techRows []*model.ProjectTechnology
	if len(techNames) > 0 {
		techs, err := s.technologyRepo.GetOrCreateTechnologies(ctx, techNames)
		if err != nil {
			return nil, nil, err
		}
		idByName := make(map[string]uint64, len(techs))
		for _, t := range techs {
			idByName[t.Name] = t.ID
		}
		for _, name := range techNames {
			id, ok := idByName[name]
			if !ok {
				continue
			}
			techRows = append(techRows, &model.ProjectTechnology{TechnologyID: id})
		}
	}
	return tagRows, techRows, nil
}

func (s *projectServiceImpl) toProjectDTO(project *model.Project) *dto.ProjectDTO {
	item := &dto.ProjectDTO{}
	_ = copier.Copy(item, project)
	item.DifficultyLevel = project.DifficultyLevel
	item.Tags = make([]string, 0, len(project.Tags))
	for _, t := range project.Tags {
		item.Tags = append(item.Tags, t.Name)
	}
	item.Technologies = make([]string, 0, len(project.Technologies))
	for _, t := range project.Technologies {
		item.Technologies = append(item.Technologies, t.Name)
	}
	item.CreatedAt = project.CreatedAt.Format("2006-01-02 15:04:05")
	return item
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}
