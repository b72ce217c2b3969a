//go:generate mockery --name ProjectService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"
	"github.com/functionasasin/projects-api/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProjectService interface {
	GenerateRandomProject(ctx context.Context, projectType model.ProjectType, difficulty model.Difficulty) (*model.ProjectResponse, error)
	CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error)
	DeleteProject(ctx context.Context, id string) (*model.DeleteProjectResult, error)
	FindProjectByTitleAndDifficulty(ctx context.Context, title string, difficulty model.Difficulty) (*model.ProjectResponse, error)
	EnhanceProject(ctx context.Context, title string, target model.Difficulty, current *model.Difficulty) (*model.ProjectResponse, error)
}

type projectService struct {
	db       *gorm.DB
	repo     repository.ProjectRepository
	enhancer ProjectEnhancer
	locker   repository.EnhancementLocker
	// 同一プロセス内で同じキーの生成を1回にまとめる
	group singleflight.Group
	now   func() time.Time
}

func NewProjectService(db *gorm.DB, repo repository.ProjectRepository, enhancer ProjectEnhancer, locker repository.EnhancementLocker) ProjectService {
	if locker == nil {
		locker = repository.NoopEnhancementLocker{}
	}
	return &projectService{
		db:       db,
		repo:     repo,
		enhancer: enhancer,
		locker:   locker,
		now:      time.Now,
	}
}

func (s *projectService) GenerateRandomProject(ctx context.Context, projectType model.ProjectType, difficulty model.Difficulty) (*model.ProjectResponse, error) {
	if !projectType.IsValid() || !difficulty.IsValid() {
		return nil, model.NewAppError(model.CodeValidationError, "project_type or difficulty is invalid", nil, model.ErrInvalidInput)
	}

	project, err := s.repo.SampleOne(ctx, s.db, repository.ProjectFilter{
		ProjectType: projectType,
		Difficulty:  difficulty,
	})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.NewNotFoundError("Projects", "No projects found matching the selected criteria")
		}
		return nil, err
	}
	return model.ToProjectResponse(project), nil
}

func (s *projectService) CreateProject(ctx context.Context, req *model.CreateProjectRequest) (*model.ProjectResponse, error) {
	if req.Title == "" || req.Description == "" || !req.ProjectType.IsValid() || !req.Difficulty.IsValid() {
		return nil, model.NewAppError(model.CodeValidationError, "Validation error", nil, model.ErrInvalidInput)
	}

	now := s.now().UTC()
	project := &model.Project{
		ProjectID:   uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		ProjectType: req.ProjectType,
		Difficulty:  req.Difficulty,
		TechStack:   datatypes.JSONSlice[string](req.TechStack),
		Features:    datatypes.JSONSlice[string](req.Features),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	saved, err := s.repo.Create(ctx, s.db, project)
	if err != nil {
		return nil, err
	}
	middleware.GetLogger(ctx).Info("Project created",
		"project_id", saved.ProjectID.String(),
		"title", saved.Title,
		"difficulty", saved.Difficulty,
	)
	return model.ToProjectResponse(saved), nil
}

// DeleteProject は ID の形式をストアに問い合わせる前に検証します
func (s *projectService) DeleteProject(ctx context.Context, id string) (*model.DeleteProjectResult, error) {
	projectID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.NewInvalidIDError()
	}

	deleted, err := s.repo.DeleteByID(ctx, s.db, projectID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, model.NewNotFoundError("Project", fmt.Sprintf("Project with ID %s not found", id))
	}
	middleware.GetLogger(ctx).Info("Project deleted", "project_id", id)
	return &model.DeleteProjectResult{ID: id}, nil
}

// FindProjectByTitleAndDifficulty は見つからない場合 nil, nil を返します
func (s *projectService) FindProjectByTitleAndDifficulty(ctx context.Context, title string, difficulty model.Difficulty) (*model.ProjectResponse, error) {
	project, err := s.findByTitle(ctx, title, difficulty)
	if err != nil || project == nil {
		return nil, err
	}
	return model.ToProjectResponse(project), nil
}

func (s *projectService) findByTitle(ctx context.Context, title string, difficulty model.Difficulty) (*model.Project, error) {
	project, err := s.repo.FindOne(ctx, s.db, repository.ProjectFilter{Title: title, Difficulty: difficulty})
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return project, nil
}

// EnhanceProject は強化済みプロジェクトを返します。
//  1. (title, target) が既にあればそれを返す (生成APIは呼ばない)
//  2. 強化元ティアを決める (指定が無ければ前段ティア)
//  3. 強化元が無ければ NotFound
//  4. キー単位の排他の中で再確認してから生成し、保存する
func (s *projectService) EnhanceProject(ctx context.Context, title string, target model.Difficulty, current *model.Difficulty) (*model.ProjectResponse, error) {
	if err := model.ValidateEnhancementTiers(target, current); err != nil {
		return nil, err
	}
	logger := middleware.GetLogger(ctx).With("title", title, "target_difficulty", target)

	existing, err := s.findByTitle(ctx, title, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Existing enhancement found", "project_id", existing.ProjectID.String())
		return model.ToProjectResponse(existing), nil
	}

	basisTier, _ := model.BasisDifficulty(target, current)
	basis, err := s.findByTitle(ctx, title, basisTier)
	if err != nil {
		return nil, err
	}
	if basis == nil {
		logger.Info("Basis project not found", "basis_difficulty", basisTier)
		return nil, model.NewNotFoundError("Project",
			fmt.Sprintf("Original project with title '%s' and difficulty '%s' not found", title, basisTier))
	}

	key := enhancementKey(title, basis.ProjectType, target)
	v, err, shared := s.group.Do(key, func() (interface{}, error) {
		return s.generateAndPersist(ctx, key, basis, target)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		logger.Debug("Enhancement result shared with a concurrent request")
	}
	return model.ToProjectResponse(v.(*model.Project)), nil
}

func (s *projectService) generateAndPersist(ctx context.Context, key string, basis *model.Project, target model.Difficulty) (*model.Project, error) {
	logger := middleware.GetLogger(ctx).With("title", basis.Title, "target_difficulty", target)

	release, err := s.locker.Acquire(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("projectService.generateAndPersist: acquire lock: %w", err)
	}
	defer release()

	// 待っている間に別のリクエスト (別プロセス含む) が保存している場合がある
	existing, err := s.findByTitle(ctx, basis.Title, target)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		logger.Info("Enhancement created by a concurrent request", "project_id", existing.ProjectID.String())
		return existing, nil
	}

	fields, err := s.enhancer.Enhance(ctx, basis, target)
	if err != nil {
		// 詳細はログのみ。クライアントには汎用メッセージを返す。
		logger.Error("Error enhancing project with AI", "error", err, "basis_project_id", basis.ProjectID.String())
		return nil, model.NewGenerationFailedError()
	}

	now := s.now().UTC()
	basisID := basis.ProjectID
	enhanced := &model.Project{
		ProjectID:         uuid.New(),
		Title:             basis.Title,
		Description:       fields.Description,
		ProjectType:       basis.ProjectType,
		Difficulty:        target,
		TechStack:         datatypes.JSONSlice[string](fields.TechStack),
		NewFeatures:       datatypes.JSONSlice[string](fields.NewFeatures),
		Justification:     datatypes.NewJSONType(fields.Justification.AsMap()),
		OriginalProjectID: &basisID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	saved, err := s.repo.Create(ctx, s.db, enhanced)
	if err != nil {
		return nil, err
	}
	logger.Info("Enhanced project saved",
		"project_id", saved.ProjectID.String(),
		"basis_project_id", basisID.String(),
	)
	return saved, nil
}

func enhancementKey(title string, projectType model.ProjectType, target model.Difficulty) string {
	return fmt.Sprintf("%s|%s|%s", title, projectType, target)
}
