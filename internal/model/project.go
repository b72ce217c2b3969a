// internal/model/project.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectType はプロジェクトの種別です
type ProjectType string

const (
	ProjectTypeFrontend  ProjectType = "frontend"
	ProjectTypeBackend   ProjectType = "backend"
	ProjectTypeFullstack ProjectType = "fullstack"
)

func (t ProjectType) IsValid() bool {
	switch t {
	case ProjectTypeFrontend, ProjectTypeBackend, ProjectTypeFullstack:
		return true
	}
	return false
}

// Difficulty は難易度ティア (beginner < intermediate < advanced) です
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

var difficultyRank = map[Difficulty]int{
	DifficultyBeginner:     1,
	DifficultyIntermediate: 2,
	DifficultyAdvanced:     3,
}

// 強化の前段ティア。beginner には前段が無い。
var previousDifficulty = map[Difficulty]Difficulty{
	DifficultyIntermediate: DifficultyBeginner,
	DifficultyAdvanced:     DifficultyIntermediate,
}

func (d Difficulty) IsValid() bool {
	_, ok := difficultyRank[d]
	return ok
}

// Rank はティアの順序 (1..3) を返します。不正値は 0。
func (d Difficulty) Rank() int {
	return difficultyRank[d]
}

// Previous は1つ下のティアを返します
func (d Difficulty) Previous() (Difficulty, bool) {
	p, ok := previousDifficulty[d]
	return p, ok
}

// IsEnhanceTarget は強化先として指定できるティアかどうか
func (d Difficulty) IsEnhanceTarget() bool {
	_, ok := previousDifficulty[d]
	return ok
}

// Project は保存されるプロジェクトドキュメントです
type Project struct {
	ProjectID         uuid.UUID                             `gorm:"type:uuid;primaryKey" json:"project_id"`
	Title             string                                `gorm:"type:varchar(100);not null;index:idx_projects_title_difficulty" json:"title"`
	Description       string                                `gorm:"type:text;not null" json:"description"`
	ProjectType       ProjectType                           `gorm:"type:varchar(20);not null;index:idx_projects_type_difficulty" json:"project_type"`
	Difficulty        Difficulty                            `gorm:"type:varchar(20);not null;index:idx_projects_type_difficulty;index:idx_projects_title_difficulty" json:"difficulty"`
	TechStack         datatypes.JSONSlice[string]           `gorm:"not null" json:"tech_stack"`
	Features          datatypes.JSONSlice[string]           `gorm:"not null" json:"features"`
	NewFeatures       datatypes.JSONSlice[string]           `gorm:"not null" json:"new_features"`
	Justification     datatypes.JSONType[map[string]string] `gorm:"not null" json:"justification"`
	OriginalProjectID *uuid.UUID                            `gorm:"type:uuid;index" json:"original_project_id,omitempty"`
	CreatedAt         time.Time                             `json:"created_at"`
	UpdatedAt         time.Time                             `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// BeforeSave は JSON カラムに SQL の NULL が入らないよう nil を空値に揃えます。
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.TechStack == nil {
		p.TechStack = datatypes.JSONSlice[string]{}
	}
	if p.Features == nil {
		p.Features = datatypes.JSONSlice[string]{}
	}
	if p.NewFeatures == nil {
		p.NewFeatures = datatypes.JSONSlice[string]{}
	}
	if p.Justification.Data() == nil {
		p.Justification = datatypes.NewJSONType(map[string]string{})
	}
	return nil
}

// IsEnhancement は AI 強化によって作られたプロジェクトかどうか
func (p *Project) IsEnhancement() bool {
	return p.OriginalProjectID != nil
}

// プロジェクト作成リクエストDTO
type CreateProjectRequest struct {
	Title       string      `json:"title" validate:"required,max=100"`
	Description string      `json:"description" validate:"required,max=1000"`
	ProjectType ProjectType `json:"project_type" validate:"required,oneof=frontend backend fullstack"`
	Difficulty  Difficulty  `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	TechStack   []string    `json:"tech_stack" validate:"required,dive,required"`
	Features    []string    `json:"features,omitempty" validate:"omitempty,dive,required"`
}

// ランダム生成クエリDTO
type GenerateProjectQuery struct {
	ProjectType ProjectType `json:"project_type" validate:"required,oneof=frontend backend fullstack"`
	Difficulty  Difficulty  `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
}

// 強化クエリDTO
type EnhanceProjectQuery struct {
	Title             string      `json:"title" validate:"required,max=100"`
	TargetDifficulty  Difficulty  `json:"target_difficulty" validate:"required,oneof=intermediate advanced"`
	CurrentDifficulty *Difficulty `json:"current_difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

// EnhancedFields は生成APIの応答から取り出した強化内容です
type EnhancedFields struct {
	Description   string               `json:"description" validate:"required,max=1000"`
	TechStack     []string             `json:"tech_stack" validate:"required,min=1,dive,required"`
	NewFeatures   []string             `json:"new_features" validate:"required,min=1,dive,required"`
	Justification EnhancementRationale `json:"justification"`
}

type EnhancementRationale struct {
	TechStack string `json:"tech_stack" validate:"required"`
	Features  string `json:"features" validate:"required"`
}

// AsMap は保存用の justification マップに変換します
func (r EnhancementRationale) AsMap() map[string]string {
	return map[string]string{
		"tech_stack": r.TechStack,
		"features":   r.Features,
	}
}

// DeleteProjectResult は削除APIのレスポンスデータです
type DeleteProjectResult struct {
	ID string `json:"id"`
}
