// internal/service/enhancer_openai.go
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"

	"github.com/go-playground/validator/v10"
	"golang.org/x/time/rate"
)

const chatCompletionsPath = "/v1/chat/completions"

// エラー応答本文はログ用に先頭だけ読む
const maxErrorBodyBytes = 4 << 10

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatCompletionRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// OpenAIEnhancer は Chat Completions API (JSON モード) で強化内容を生成します。
// 1回の失敗で諦め、内部でリトライはしません。
type OpenAIEnhancer struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	limiter    *rate.Limiter
	validate   *validator.Validate
}

// NewOpenAIEnhancer は httpClient が nil なら cfg.Timeout 付きのクライアントを作ります
func NewOpenAIEnhancer(cfg config.OpenAIConfig, httpClient *http.Client) *OpenAIEnhancer {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultOpenAIModel
	}
	return &OpenAIEnhancer{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		model:      modelName,
		limiter:    rate.NewLimiter(limit, burst),
		validate:   validator.New(),
	}
}

func (e *OpenAIEnhancer) Enhance(ctx context.Context, basis *model.Project, target model.Difficulty) (*model.EnhancedFields, error) {
	logger := middleware.GetLogger(ctx).With("enhancer", "openai", "title", basis.Title, "target_difficulty", target)

	content, err := e.complete(ctx, EnhancementSystemPrompt, BuildEnhancementPrompt(basis, target))
	if err != nil {
		logger.Error("Generation request failed", "error", err)
		return nil, fmt.Errorf("OpenAIEnhancer.Enhance: %w: %v", model.ErrGenerationFailed, err)
	}

	fields, err := e.parseReply(content)
	if err != nil {
		logger.Error("Generation reply rejected", "error", err, "reply", truncate(content, 500))
		return nil, fmt.Errorf("OpenAIEnhancer.Enhance: %w: %v", model.ErrGenerationFailed, err)
	}

	logger.Info("Enhancement generated",
		"tech_stack_count", len(fields.TechStack),
		"new_feature_count", len(fields.NewFeatures),
	)
	return fields, nil
}

// complete は1回だけ API を呼び、最初の choice の本文を返します
func (e *OpenAIEnhancer) complete(ctx context.Context, system, user string) (string, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter: %w", err)
	}

	reqBody, err := json.Marshal(chatCompletionRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+chatCompletionsPath, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+e.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return "", fmt.Errorf("provider returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var out chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("response has no choices")
	}
	return out.Choices[0].Message.Content, nil
}

// parseReply は応答本文を4キーのオブジェクトとして厳密に読み、スキーマ検証します
func (e *OpenAIEnhancer) parseReply(content string) (*model.EnhancedFields, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var fields model.EnhancedFields
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}
	if dec.More() {
		return nil, errors.New("decode reply: trailing data after JSON object")
	}
	if err := e.validate.Struct(&fields); err != nil {
		return nil, fmt.Errorf("validate reply: %w", err)
	}
	return &fields, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
