// internal/handlers/project_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"
	"github.com/functionasasin/projects-api/internal/service"
	"github.com/functionasasin/projects-api/internal/webutil"

	"github.com/go-chi/chi/v5"
)

type ProjectHandler struct {
	service service.ProjectService
	logger  *slog.Logger
}

func NewProjectHandler(s service.ProjectService, logger *slog.Logger) *ProjectHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProjectHandler{
		service: s,
		logger:  logger,
	}
}

// requestLogger はミドルウェアが入れた req_id 付きロガーに handler 名を足します
func (h *ProjectHandler) requestLogger(r *http.Request, name string) *slog.Logger {
	logger := h.logger
	if l := middleware.GetLogger(r.Context()); l != slog.Default() {
		logger = l
	}
	return logger.With(slog.String("handler", name))
}

// GenerateProject は条件に合うプロジェクトをランダムに1件返すハンドラ
// GET /projects/generate?project_type=&difficulty=
func (h *ProjectHandler) GenerateProject(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "GenerateProject")

	q := r.URL.Query()
	query := model.GenerateProjectQuery{
		ProjectType: model.ProjectType(q.Get("project_type")),
		Difficulty:  model.Difficulty(q.Get("difficulty")),
	}
	if query.Difficulty == "" {
		query.Difficulty = model.DifficultyBeginner
	}
	if err := webutil.ValidateStruct(&query); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	project, err := h.service.GenerateRandomProject(r.Context(), query.ProjectType, query.Difficulty)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Project generated", slog.String("project_id", project.ID))
	webutil.RespondSuccess(w, http.StatusOK, "Project generated successfully", project, logger)
}

// EnhanceProject は上位ティアの強化版を返すハンドラ (無ければ生成して保存)
// GET /projects/enhance?title=&target_difficulty=&current_difficulty=
func (h *ProjectHandler) EnhanceProject(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "EnhanceProject")

	q := r.URL.Query()
	query := model.EnhanceProjectQuery{
		Title:            q.Get("title"),
		TargetDifficulty: model.Difficulty(q.Get("target_difficulty")),
	}
	if q.Has("current_difficulty") {
		current := model.Difficulty(q.Get("current_difficulty"))
		query.CurrentDifficulty = &current
	}
	if err := webutil.ValidateStruct(&query); err != nil {
		logger.Warn("Validation failed", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}
	// 飛び級はサービスを呼ぶ前に弾く
	if err := model.ValidateEnhancementTiers(query.TargetDifficulty, query.CurrentDifficulty); err != nil {
		logger.Warn("Invalid enhancement request", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	project, err := h.service.EnhanceProject(r.Context(), query.Title, query.TargetDifficulty, query.CurrentDifficulty)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Project enhanced", slog.String("project_id", project.ID))
	webutil.RespondSuccess(w, http.StatusOK, "Project enhanced successfully", project, logger)
}

// CreateProject はプロジェクトを新規登録するハンドラ (要APIキー)
// POST /projects/create
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "CreateProject")

	var req model.CreateProjectRequest
	if err := webutil.DecodeJSONBody(w, r, &req); err != nil {
		logger.Warn("Invalid request body", slog.Any("error", err))
		webutil.HandleError(w, logger, err)
		return
	}

	project, err := h.service.CreateProject(r.Context(), &req)
	if err != nil {
		logger.Error("Error creating project in service", slog.Any("error", err), slog.String("title", req.Title))
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Project created successfully", slog.String("project_id", project.ID))
	webutil.RespondSuccess(w, http.StatusCreated, "Project created successfully", project, logger)
}

// DeleteProject は ID 指定でプロジェクトを削除するハンドラ (要APIキー)
// DELETE /projects/delete/{project_id}
func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r, "DeleteProject")

	// ID の形式チェックはサービス側で行う (不正ならストアに触れずに InvalidID)
	projectID := chi.URLParam(r, "project_id")
	result, err := h.service.DeleteProject(r.Context(), projectID)
	if err != nil {
		webutil.HandleError(w, logger, err)
		return
	}

	logger.Info("Project deleted successfully", slog.String("project_id", result.ID))
	webutil.RespondSuccess(w, http.StatusOK, "Project deleted successfully", result, logger)
}

// Root はアプリ名とバージョンを返します
func Root(w http.ResponseWriter, r *http.Request) {
	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{
		"app":     config.AppName,
		"version": config.AppVersion,
	}, middleware.GetLogger(r.Context()))
}
