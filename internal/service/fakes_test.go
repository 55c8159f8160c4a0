package service

import (
	"CodeConnect/internal/model"
	"CodeConnect/internal/pkg/consts"
	"context"
	"time"
)

// 内存版仓储实现，测试推荐引擎时替代 MySQL

type fakeInteractionRepo struct {
	interactions []*model.Interaction
	err          error
}

func (f *fakeInteractionRepo) GetByUser(_ context.Context, userID uint64) ([]*model.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*model.Interaction
	for _, it := range f.interactions {
		if it.UserID == userID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) Upsert(_ context.Context, interaction *model.Interaction) error {
	if f.err != nil {
		return f.err
	}
	for _, it := range f.interactions {
		if it.UserID == interaction.UserID && it.ProjectID == interaction.ProjectID && it.InteractionType == interaction.InteractionType {
			it.CreatedAt = interaction.CreatedAt
			return nil
		}
	}
	f.interactions = append(f.interactions, interaction)
	return nil
}

func (f *fakeInteractionRepo) DeleteLike(_ context.Context, userID, projectID uint64) error {
	if f.err != nil {
		return f.err
	}
	out := f.interactions[:0]
	for _, it := range f.interactions {
		if it.UserID == userID && it.ProjectID == projectID && it.InteractionType == model.InteractionTypeLike {
			continue
		}
		out = append(out, it)
	}
	f.interactions = out
	return nil
}

func (f *fakeInteractionRepo) CheckLikeExists(_ context.Context, userID, projectID uint64) (bool, error) {
	for _, it := range f.interactions {
		if it.UserID == userID && it.ProjectID == projectID && it.InteractionType == model.InteractionTypeLike {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInteractionRepo) GetLikeCountByProjectID(_ context.Context, projectID uint64) (int64, error) {
	var count int64
	for _, it := range f.interactions {
		if it.ProjectID == projectID && it.InteractionType == model.InteractionTypeLike {
			count++
		}
	}
	return count, nil
}

func (f *fakeInteractionRepo) GetViewCountByProjectID(_ context.Context, projectID uint64) (int64, error) {
	var count int64
	for _, it := range f.interactions {
		if it.ProjectID == projectID && it.InteractionType == model.InteractionTypeView {
			count++
		}
	}
	return count, nil
}

func (f *fakeInteractionRepo) GetByProjectIDs(_ context.Context, projectIDs []uint64, excludeUserID uint64) ([]*model.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	idSet := make(map[uint64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		idSet[id] = struct{}{}
	}
	var out []*model.Interaction
	for _, it := range f.interactions {
		if _, ok := idSet[it.ProjectID]; ok && it.UserID != excludeUserID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) GetByUserIDs(_ context.Context, userIDs []uint64) ([]*model.Interaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	idSet := make(map[uint64]struct{}, len(userIDs))
	for _, id := range userIDs {
		idSet[id] = struct{}{}
	}
	var out []*model.Interaction
	for _, it := range f.interactions {
		if _, ok := idSet[it.UserID]; ok {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeInteractionRepo) GetSince(_ context.Context, since time.Time) ([]*model.Interaction, error) {
	var out []*model.Interaction
	for _, it := range f.interactions {
		if !it.CreatedAt.Before(since) {
			out = append(out, it)
		}
	}
	return out, nil
}

type fakeTagRepo struct {
	tags        []*model.Tag
	projectTags []*model.ProjectTag
}

func (f *fakeTagRepo) GetAll(_ context.Context) ([]*model.Tag, error) {
	return f.tags, nil
}

func (f *fakeTagRepo) GetByIDs(_ context.Context, ids []uint64) ([]*model.Tag, error) {
	idSet := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []*model.Tag
	for _, t := range f.tags {
		if _, ok := idSet[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) GetByNames(_ context.Context, names []string) ([]*model.Tag, error) {
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	var out []*model.Tag
	for _, t := range f.tags {
		if _, ok := nameSet[t.Name]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTagRepo) GetOrCreateTags(ctx context.Context, tagNames []string) ([]*model.Tag, error) {
	for _, name := range tagNames {
		exists := false
		for _, t := range f.tags {
			if t.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			f.tags = append(f.tags, &model.Tag{ID: uint64(len(f.tags) + 1), Name: name})
		}
	}
	return f.GetByNames(ctx, tagNames)
}

func (f *fakeTagRepo) GetNamesByProjectIDs(_ context.Context, projectIDs []uint64) ([]string, error) {
	idSet := make(map[uint64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		idSet[id] = struct{}{}
	}
	nameByID := make(map[uint64]string, len(f.tags))
	for _, t := range f.tags {
		nameByID[t.ID] = t.Name
	}
	seen := make(map[string]struct{})
	var out []string
	for _, pt := range f.projectTags {
		if _, ok := idSet[pt.ProjectID]; !ok {
			continue
		}
		name := nameByID[pt.TagID]
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func (f *fakeTagRepo) GetProjectTagsByTagIDs(_ context.Context, tagIDs []uint64) ([]*model.ProjectTag, error) {
	idSet := make(map[uint64]struct{}, len(tagIDs))
	for _, id := range tagIDs {
		idSet[id] = struct{}{}
	}
	var out []*model.ProjectTag
	for _, pt := range f.projectTags {
		if _, ok := idSet[pt.TagID]; ok {
			out = append(out, pt)
		}
	}
	return out, nil
}

type fakeTechnologyRepo struct {
	technologies []*model.Technology
	projectTechs []*model.ProjectTechnology
}

func (f *fakeTechnologyRepo) GetAll(_ context.Context) ([]*model.Technology, error) {
	return f.technologies, nil
}

func (f *fakeTechnologyRepo) GetByIDs(_ context.Context, ids []uint64) ([]*model.Technology, error) {
	idSet := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []*model.Technology
	for _, t := range f.technologies {
		if _, ok := idSet[t.ID]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTechnologyRepo) GetByNames(_ context.Context, names []string) ([]*model.Technology, error) {
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	var out []*model.Technology
	for _, t := range f.technologies {
		if _, ok := nameSet[t.Name]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTechnologyRepo) GetOrCreateTechnologies(ctx context.Context, names []string) ([]*model.Technology, error) {
	for _, name := range names {
		exists := false
		for _, t := range f.technologies {
			if t.Name == name {
				exists = true
				break
			}
		}
		if !exists {
			f.technologies = append(f.technologies, &model.Technology{ID: uint64(len(f.technologies) + 1), Name: name})
		}
	}
	return f.GetByNames(ctx, names)
}

func (f *fakeTechnologyRepo) GetNamesByProjectIDs(_ context.Context, projectIDs []uint64) ([]string, error) {
	idSet := make(map[uint64]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		idSet[id] = struct{}{}
	}
	nameByID := make(map[uint64]string, len(f.technologies))
	for _, t := range f.technologies {
		nameByID[t.ID] = t.Name
	}
	seen := make(map[string]struct{})
	var out []string
	for _, pt := range f.projectTechs {
		if _, ok := idSet[pt.ProjectID]; !ok {
			continue
		}
		name := nameByID[pt.TechnologyID]
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out, nil
}

func (f *fakeTechnologyRepo) GetProjectTechnologiesByTechnologyIDs(_ context.Context, technologyIDs []uint64) ([]*model.ProjectTechnology, error) {
	idSet := make(map[uint64]struct{}, len(technologyIDs))
	for _, id := range technologyIDs {
		idSet[id] = struct{}{}
	}
	var out []*model.ProjectTechnology
	for _, pt := range f.projectTechs {
		if _, ok := idSet[pt.TechnologyID]; ok {
			out = append(out, pt)
		}
	}
	return out, nil
}

type fakeProjectRepo struct {
	projects []*model.Project
}

func (f *fakeProjectRepo) Create(_ context.Context, project *model.Project, _ []*model.ProjectTag, _ []*model.ProjectTechnology) error {
	project.ID = uint64(len(f.projects) + 1)
	f.projects = append(f.projects, project)
	return nil
}

func (f *fakeProjectRepo) GetByID(_ context.Context, id uint64) (*model.Project, error) {
	for _, p := range f.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProjectRepo) GetActiveByIDs(_ context.Context, ids []uint64, excludeOwnerID uint64) ([]*model.Project, error) {
	idSet := make(map[uint64]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}
	var out []*model.Project
	for _, p := range f.projects {
		if _, ok := idSet[p.ID]; !ok {
			continue
		}
		if !p.WebhookActive || p.Status != consts.ProjectStatusNormal {
			continue
		}
		if excludeOwnerID > 0 && p.UserID == excludeOwnerID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProjectRepo) List(_ context.Context, _, _ string, limit, offset int) ([]*model.Project, error) {
	if offset >= len(f.projects) {
		return nil, nil
	}
	end := offset + limit
	if end > len(f.projects) {
		end = len(f.projects)
	}
	return f.projects[offset:end], nil
}

func (f *fakeProjectRepo) Update(_ context.Context, _ *model.Project, _ []*model.ProjectTag, _ []*model.ProjectTechnology) error {
	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id uint64) error {
	for _, p := range f.projects {
		if p.ID == id {
			p.Status = consts.ProjectStatusRemoved
		}
	}
	return nil
}

type fakePreferenceRepo struct {
	tagIDs  map[uint64][]uint64
	techIDs map[uint64][]uint64
	profile map[uint64]*model.UserProfile
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{
		tagIDs:  make(map[uint64][]uint64),
		techIDs: make(map[uint64][]uint64),
		profile: make(map[uint64]*model.UserProfile),
	}
}

func (f *fakePreferenceRepo) GetTagIDs(_ context.Context, userID uint64) ([]uint64, error) {
	return f.tagIDs[userID], nil
}

func (f *fakePreferenceRepo) GetTechnologyIDs(_ context.Context, userID uint64) ([]uint64, error) {
	return f.techIDs[userID], nil
}

func (f *fakePreferenceRepo) ReplaceTagPreferences(_ context.Context, userID uint64, tagIDs []uint64) error {
	f.tagIDs[userID] = tagIDs
	return nil
}

func (f *fakePreferenceRepo) ReplaceTechnologyPreferences(_ context.Context, userID uint64, technologyIDs []uint64) error {
	f.techIDs[userID] = technologyIDs
	return nil
}

func (f *fakePreferenceRepo) GetProfile(_ context.Context, userID uint64) (*model.UserProfile, error) {
	return f.profile[userID], nil
}

func (f *fakePreferenceRepo) SaveProfile(_ context.Context, profile *model.UserProfile) error {
	f.profile[profile.UserID] = profile
	return nil
}

type fakeHistoryRepo struct {
	entries []*model.RecommendationHistory
}

func (f *fakeHistoryRepo) GetRecent(_ context.Context, userID uint64, since time.Time) ([]*model.RecommendationHistory, error) {
	var out []*model.RecommendationHistory
	for _, e := range f.entries {
		if e.UserID == userID && !e.SentAt.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeHistoryRepo) Create(_ context.Context, entries []*model.RecommendationHistory) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeHistoryRepo) HasSentSince(_ context.Context, userID uint64, since time.Time, context_ string) (bool, error) {
	for _, e := range f.entries {
		if e.UserID == userID && !e.SentAt.Before(since) && e.Context == context_ {
			return true, nil
		}
	}
	return false, nil
}

type fakeCommentRepo struct {
	comments []*model.Comment
	nextID   uint64
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments = append(f.comments, comment)
	return nil
}

func (f *fakeCommentRepo) GetByID(_ context.Context, id uint64) (*model.Comment, error) {
	for _, c := range f.comments {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCommentRepo) GetByProjectID(_ context.Context, projectID uint64, limit, offset int) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range f.comments {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	end := offset + limit
	if end > len(out) {
		end = len(out)
	}
	return out[offset:end], nil
}

func (f *fakeCommentRepo) CountByProjectID(_ context.Context, projectID uint64) (int64, error) {
	var count int64
	for _, c := range f.comments {
		if c.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id uint64) error {
	out := f.comments[:0]
	for _, c := range f.comments {
		if c.ID != id {
			out = append(out, c)
		}
	}
	f.comments = out
	return nil
}

// engineFixture 组装一套完整的推荐引擎依赖
type engineFixture struct {
	interactions *fakeInteractionRepo
	preferences  *fakePreferenceRepo
	tags         *fakeTagRepo
	technologies *fakeTechnologyRepo
	projects     *fakeProjectRepo
	history      *fakeHistoryRepo

	preferenceSvc PreferenceService
	contentScorer ContentScorer
	collabScorer  CollaborativeScorer
	recommendSvc  RecommendationService
}

func newEngineFixture() *engineFixture {
	f := &engineFixture{
		interactions: &fakeInteractionRepo{},
		preferences:  newFakePreferenceRepo(),
		tags:         &fakeTagRepo{},
		technologies: &fakeTechnologyRepo{},
		projects:     &fakeProjectRepo{},
		history:      &fakeHistoryRepo{},
	}
	weights := DefaultRecommendWeights()
	f.preferenceSvc = NewPreferenceService(f.preferences, f.interactions, f.tags, f.technologies)
	f.contentScorer = NewContentScorer(f.interactions, f.preferenceSvc, f.tags, f.technologies, f.projects, weights)
	f.collabScorer = NewCollaborativeScorer(f.interactions, f.projects, weights)
	f.recommendSvc = NewRecommendationService(f.contentScorer, f.collabScorer, f.interactions, f.preferenceSvc, f.history, f.projects, weights)
	return f
}

func (f *engineFixture) addProject(id, ownerID uint64, difficulty []int, tagIDs, techIDs []uint64) *model.Project {
	p := &model.Project{
		ID:              id,
		UserID:          ownerID,
		RepoOwner:       "owner",
		RepoName:        "repo",
		DifficultyLevel: model.IntSlice(difficulty),
		Status:          consts.ProjectStatusNormal,
		WebhookActive:   true,
		CreatedAt:       time.Now(),
	}
	f.projects.projects = append(f.projects.projects, p)
	for _, tagID := range tagIDs {
		f.tags.projectTags = append(f.tags.projectTags, &model.ProjectTag{ProjectID: id, TagID: tagID})
	}
	for _, techID := range techIDs {
		f.technologies.projectTechs = append(f.technologies.projectTechs, &model.ProjectTechnology{ProjectID: id, TechnologyID: techID})
	}
	return p
}

func (f *engineFixture) addInteraction(userID, projectID uint64, interactionType int8) {
	f.interactions.interactions = append(f.interactions.interactions, &model.Interaction{
		UserID:          userID,
		ProjectID:       projectID,
		InteractionType: interactionType,
		CreatedAt:       time.Now(),
	})
}
