//go:generate mockery --name ProjectEnhancer --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"log/slog"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"
)

// ProjectEnhancer は強化元プロジェクトから上位ティアの内容を生成します。
// 失敗はすべて model.ErrGenerationFailed をラップして返します。
type ProjectEnhancer interface {
	Enhance(ctx context.Context, basis *model.Project, target model.Difficulty) (*model.EnhancedFields, error)
}

// --- DisabledEnhancer ---

// DisabledEnhancer は生成APIの認証情報が無い環境用で、常に失敗します。
type DisabledEnhancer struct{}

func (DisabledEnhancer) Enhance(ctx context.Context, basis *model.Project, target model.Difficulty) (*model.EnhancedFields, error) {
	middleware.GetLogger(ctx).Warn("Enhancement requested but the enhancer is disabled",
		"title", basis.Title,
		"target_difficulty", target,
	)
	return nil, model.ErrGenerationFailed
}

// --- NewProjectEnhancer ファクトリ関数 ---
func NewProjectEnhancer(cfg *config.Config, logger *slog.Logger) ProjectEnhancer {
	if logger == nil {
		logger = slog.Default()
	}
	switch cfg.Enhancer.Type {
	case config.EnhancerTypeOpenAI:
		if cfg.OpenAI.APIKey == "" {
			logger.Warn("OpenAI API key is not set, enhancement is disabled")
			return DisabledEnhancer{}
		}
		logger.Info("Initializing OpenAI enhancer...", "model", cfg.OpenAI.Model, "base_url", cfg.OpenAI.BaseURL)
		return NewOpenAIEnhancer(cfg.OpenAI, nil)
	case config.EnhancerTypeDisabled:
		logger.Info("Enhancer disabled by configuration")
		return DisabledEnhancer{}
	default:
		logger.Warn("Unknown enhancer type, defaulting to disabled", "type", cfg.Enhancer.Type)
		return DisabledEnhancer{}
	}
}
