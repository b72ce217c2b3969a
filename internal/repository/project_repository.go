//go:generate mockery --name ProjectRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectFilter はプロジェクト検索用の等値フィルタです。空のフィールドは条件に含めません。
type ProjectFilter struct {
	Title       string
	ProjectType model.ProjectType
	Difficulty  model.Difficulty
}

func (f ProjectFilter) conditions() map[string]interface{} {
	cond := make(map[string]interface{}, 3)
	if f.Title != "" {
		cond["title"] = f.Title
	}
	if f.ProjectType != "" {
		cond["project_type"] = string(f.ProjectType)
	}
	if f.Difficulty != "" {
		cond["difficulty"] = string(f.Difficulty)
	}
	return cond
}

type ProjectRepository interface {
	Count(ctx context.Context, db *gorm.DB, filter ProjectFilter) (int64, error)
	SampleOne(ctx context.Context, db *gorm.DB, filter ProjectFilter) (*model.Project, error)
	FindOne(ctx context.Context, db *gorm.DB, filter ProjectFilter) (*model.Project, error)
	FindByID(ctx context.Context, db *gorm.DB, projectID uuid.UUID) (*model.Project, error)
	ExistsByTitle(ctx context.Context, db *gorm.DB, title string) (bool, error)
	Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (bool, error)
}

type gormProjectRepository struct {
	// [0, n) の乱数。テストで差し替え可能。
	randN func(n int64) int64
}

func NewGormProjectRepository() ProjectRepository {
	return &gormProjectRepository{randN: rand.Int64N}
}

// 挿入順 (created_at) を正とし、同時刻は ID で並べる
const projectOrder = "created_at ASC, project_id ASC"

func (r *gormProjectRepository) Count(ctx context.Context, db *gorm.DB, filter ProjectFilter) (int64, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Project{}).Where(filter.conditions()).Count(&count)
	if result.Error != nil {
		logger.Error("Error counting projects in DB",
			"error", result.Error,
			"project_type", filter.ProjectType,
			"difficulty", filter.Difficulty,
		)
		return 0, fmt.Errorf("gormProjectRepository.Count: %w", result.Error)
	}
	return count, nil
}

// SampleOne は条件に合うプロジェクトから1件を一様ランダムに選びます。
// 件数を数えてからランダムなオフセットで1件だけ取得するため、全件をメモリに載せません。
func (r *gormProjectRepository) SampleOne(ctx context.Context, db *gorm.DB, filter ProjectFilter) (*model.Project, error) {
	logger := middleware.GetLogger(ctx)

	count, err := r.Count(ctx, db, filter)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, model.ErrNotFound
	}

	offset := r.randN(count)
	var project model.Project
	result := db.WithContext(ctx).
		Where(filter.conditions()).
		Order(projectOrder).
		Offset(int(offset)).
		Limit(1).
		Take(&project)
	if result.Error != nil {
		// count と取得の間に件数が減った場合
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			logger.Warn("Matching set shrank between count and fetch",
				"count", count,
				"offset", offset,
			)
			return nil, model.ErrNotFound
		}
		logger.Error("Error sampling project in DB",
			"error", result.Error,
			"project_type", filter.ProjectType,
			"difficulty", filter.Difficulty,
			"offset", offset,
		)
		return nil, fmt.Errorf("gormProjectRepository.SampleOne: %w", result.Error)
	}
	return &project, nil
}

func (r *gormProjectRepository) FindOne(ctx context.Context, db *gorm.DB, filter ProjectFilter) (*model.Project, error) {
	logger := middleware.GetLogger(ctx)
	var project model.Project
	result := db.WithContext(ctx).Where(filter.conditions()).Order(projectOrder).Take(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding project in DB",
			"error", result.Error,
			"title", filter.Title,
			"difficulty", filter.Difficulty,
		)
		return nil, fmt.Errorf("gormProjectRepository.FindOne: %w", result.Error)
	}
	return &project, nil
}

func (r *gormProjectRepository) FindByID(ctx context.Context, db *gorm.DB, projectID uuid.UUID) (*model.Project, error) {
	logger := middleware.GetLogger(ctx)
	var project model.Project
	result := db.WithContext(ctx).Where("project_id = ?", projectID).Take(&project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding project by ID in DB",
			"error", result.Error,
			"project_id", projectID.String(),
		)
		return nil, fmt.Errorf("gormProjectRepository.FindByID: %w", result.Error)
	}
	return &project, nil
}

func (r *gormProjectRepository) ExistsByTitle(ctx context.Context, db *gorm.DB, title string) (bool, error) {
	logger := middleware.GetLogger(ctx)
	var count int64
	result := db.WithContext(ctx).Model(&model.Project{}).Where("title = ?", title).Count(&count)
	if result.Error != nil {
		logger.Error("Error checking title existence in DB",
			"error", result.Error,
			"title", title,
		)
		return false, fmt.Errorf("gormProjectRepository.ExistsByTitle: %w", result.Error)
	}
	return count > 0, nil
}

// Create は ID を採番して挿入し、保存された内容を読み直して返します。
func (r *gormProjectRepository) Create(ctx context.Context, tx *gorm.DB, project *model.Project) (*model.Project, error) {
	logger := middleware.GetLogger(ctx)
	if project.ProjectID == uuid.Nil {
		project.ProjectID = uuid.New()
	}
	result := tx.WithContext(ctx).Create(project)
	if result.Error != nil {
		logger.Error("Error creating project in DB",
			"error", result.Error,
			"title", project.Title,
			"difficulty", project.Difficulty,
		)
		return nil, fmt.Errorf("gormProjectRepository.Create: %w", result.Error)
	}

	saved, err := r.FindByID(ctx, tx, project.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("gormProjectRepository.Create: re-read: %w", err)
	}
	return saved, nil
}

// DeleteByID は削除できた場合に true を返します
func (r *gormProjectRepository) DeleteByID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (bool, error) {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Project{})
	if result.Error != nil {
		logger.Error("Error deleting project in DB",
			"error", result.Error,
			"project_id", projectID.String(),
		)
		return false, fmt.Errorf("gormProjectRepository.DeleteByID: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
