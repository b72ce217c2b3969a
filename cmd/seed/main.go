// cmd/seed/main.go
// プロジェクトの初期データを YAML から投入します。既に同じタイトルがあればスキップします。
//
//	go run ./cmd/seed -file configs/seed_projects.yaml
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/functionasasin/projects-api/internal/config"
	"github.com/functionasasin/projects-api/internal/model"
	"github.com/functionasasin/projects-api/internal/repository"
	"github.com/functionasasin/projects-api/internal/service"
	"github.com/functionasasin/projects-api/internal/webutil"

	"gopkg.in/yaml.v3"
)

type seedProject struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	ProjectType string   `yaml:"project_type"`
	Difficulty  string   `yaml:"difficulty"`
	TechStack   []string `yaml:"tech_stack"`
	Features    []string `yaml:"features"`
}

type seedFile struct {
	Projects []seedProject `yaml:"projects"`
}

func (p seedProject) toRequest() *model.CreateProjectRequest {
	return &model.CreateProjectRequest{
		Title:       p.Title,
		Description: p.Description,
		ProjectType: model.ProjectType(p.ProjectType),
		Difficulty:  model.Difficulty(p.Difficulty),
		TechStack:   p.TechStack,
		Features:    p.Features,
	}
}

func loadSeedFile(path string) ([]seedProject, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return f.Projects, nil
}

func main() {
	file := flag.String("file", "configs/seed_projects.yaml", "seed YAML file")
	configDir := flag.String("config", "configs", "config directory")
	flag.Parse()

	if err := config.LoadConfig(*configDir); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	projects, err := loadSeedFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file %s: %v", *file, err)
	}

	db, err := repository.NewDB(config.Cfg.Database.Driver, config.Cfg.Database.URL, logger)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	repo := repository.NewGormProjectRepository()
	// シードでは強化しないので生成器は無効のまま
	svc := service.NewProjectService(db, repo, service.DisabledEnhancer{}, nil)
	ctx := context.Background()

	var created, skipped, failed int
	for _, p := range projects {
		exists, err := repo.ExistsByTitle(ctx, db, p.Title)
		if err != nil {
			log.Fatalf("Failed to check title %q: %v", p.Title, err)
		}
		if exists {
			logger.Info("Skipping existing project", slog.String("title", p.Title))
			skipped++
			continue
		}

		req := p.toRequest()
		if err := webutil.ValidateStruct(req); err != nil {
			logger.Warn("Invalid seed entry", slog.String("title", p.Title), slog.Any("error", err))
			failed++
			continue
		}
		res, err := svc.CreateProject(ctx, req)
		if err != nil {
			logger.Error("Failed to create project", slog.String("title", p.Title), slog.Any("error", err))
			failed++
			continue
		}
		logger.Info("Created project", slog.String("title", res.Title), slog.String("project_id", res.ID))
		created++
	}

	logger.Info("Seeding finished",
		slog.Int("created", created),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed),
	)
	if failed > 0 {
		os.Exit(1)
	}
}
