// internal/service/project_service_test.go
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/functionasasin/projects-api/internal/middleware"
	"github.com/functionasasin/projects-api/internal/model"
	"github.com/functionasasin/projects-api/internal/repository"
	"github.com/functionasasin/projects-api/internal/repository/mocks"
	svcmocks "github.com/functionasasin/projects-api/internal/service/mocks"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// --- テストヘルパー関数 ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testContext() context.Context {
	return middleware.WithLogger(context.Background(), testLogger())
}

// setupTestDB はテストごとに独立したインメモリ SQLite を返します。
// モックを使うテストでは形だけ渡し、並行テストでは実際に読み書きします。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := repository.NewDB(repository.DriverSQLite, dsn, testLogger())
	require.NoError(t, err)
	require.NoError(t, repository.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// shared cache のテーブルロック競合を避けるため接続を1本にする
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

var fixedNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, repo repository.ProjectRepository, enhancer ProjectEnhancer, locker repository.EnhancementLocker) *projectService {
	t.Helper()
	s := NewProjectService(setupTestDB(t), repo, enhancer, locker).(*projectService)
	s.now = func() time.Time { return fixedNow }
	return s
}

func difficultyPtr(d model.Difficulty) *model.Difficulty {
	return &d
}

func titleFilter(title string, d model.Difficulty) repository.ProjectFilter {
	return repository.ProjectFilter{Title: title, Difficulty: d}
}

func sampleEnhancedFields() *model.EnhancedFields {
	return &model.EnhancedFields{
		Description: "Todo app with accounts and sync",
		TechStack:   []string{"Next.js", "PostgreSQL"},
		NewFeatures: []string{"JWT-based login", "Offline sync"},
		Justification: model.EnhancementRationale{
			TechStack: "Next.js adds SSR",
			Features:  "Accounts let users sync",
		},
	}
}

func assertAppError(t *testing.T, err error, code string) *model.AppError {
	t.Helper()
	var appErr *model.AppError
	require.True(t, errors.As(err, &appErr), "expected *model.AppError, got %T: %v", err, err)
	assert.Equal(t, code, appErr.Code)
	return appErr
}

// --- GenerateRandomProject ---

func Test_projectService_GenerateRandomProject(t *testing.T) {
	stored := &model.Project{
		ProjectID:   uuid.New(),
		Title:       "Portfolio",
		ProjectType: model.ProjectTypeFrontend,
		Difficulty:  model.DifficultyBeginner,
		TechStack:   datatypes.JSONSlice[string]{"HTML"},
		CreatedAt:   fixedNow,
		UpdatedAt:   fixedNow,
	}
	filter := repository.ProjectFilter{ProjectType: model.ProjectTypeFrontend, Difficulty: model.DifficultyBeginner}

	tests := []struct {
		name        string
		projectType model.ProjectType
		difficulty  model.Difficulty
		setupMock   func(repo *mocks.ProjectRepository)
		wantFail    bool
		wantErr     error
		wantCode    string
		wantMessage string
	}{
		{
			name:        "正常系: 条件に合うプロジェクトを1件返す",
			projectType: model.ProjectTypeFrontend,
			difficulty:  model.DifficultyBeginner,
			setupMock: func(repo *mocks.ProjectRepository) {
				repo.On("SampleOne", mock.Anything, mock.Anything, filter).Return(stored, nil).Once()
			},
		},
		{
			name:        "異常系: 該当なしは NotFound",
			projectType: model.ProjectTypeFrontend,
			difficulty:  model.DifficultyBeginner,
			setupMock: func(repo *mocks.ProjectRepository) {
				repo.On("SampleOne", mock.Anything, mock.Anything, filter).Return(nil, model.ErrNotFound).Once()
			},
			wantErr:     model.ErrNotFound,
			wantCode:    model.CodeResourceNotFound,
			wantMessage: "No projects found matching the selected criteria",
		},
		{
			name:        "異常系: 不正な project_type はストアに問い合わせない",
			projectType: "mobile",
			difficulty:  model.DifficultyBeginner,
			setupMock:   func(repo *mocks.ProjectRepository) {},
			wantErr:     model.ErrInvalidInput,
			wantCode:    model.CodeValidationError,
		},
		{
			name:        "異常系: DBエラーはそのまま返す",
			projectType: model.ProjectTypeFrontend,
			difficulty:  model.DifficultyBeginner,
			setupMock: func(repo *mocks.ProjectRepository) {
				repo.On("SampleOne", mock.Anything, mock.Anything, filter).Return(nil, errors.New("db down")).Once()
			},
			wantFail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewProjectRepository(t)
			tt.setupMock(repo)
			s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

			got, err := s.GenerateRandomProject(testContext(), tt.projectType, tt.difficulty)

			switch {
			case tt.wantCode != "":
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				appErr := assertAppError(t, err, tt.wantCode)
				if tt.wantMessage != "" {
					assert.Equal(t, tt.wantMessage, appErr.Message)
				}
				assert.Nil(t, got)
			case tt.wantFail:
				require.Error(t, err)
				assert.Nil(t, got)
			default:
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, stored.ProjectID.String(), got.ID)
				assert.Equal(t, []string{}, got.NewFeatures)
				assert.Equal(t, map[string]string{}, got.Justification)
			}
		})
	}
}

// --- CreateProject ---

func Test_projectService_CreateProject(t *testing.T) {
	req := &model.CreateProjectRequest{
		Title:       "Recipe Finder",
		Description: "Search recipes by ingredient",
		ProjectType: model.ProjectTypeFullstack,
		Difficulty:  model.DifficultyBeginner,
		TechStack:   []string{"React", "Express"},
		Features:    []string{"Search"},
	}

	t.Run("正常系: 保存した内容を投影して返す", func(t *testing.T) {
		repo := mocks.NewProjectRepository(t)
		repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
			return p.Title == req.Title &&
				p.ProjectID != uuid.Nil &&
				p.OriginalProjectID == nil &&
				len(p.NewFeatures) == 0 &&
				p.CreatedAt.Equal(fixedNow) &&
				p.UpdatedAt.Equal(fixedNow)
		})).Return(func(_ context.Context, _ *gorm.DB, p *model.Project) (*model.Project, error) {
			return p, nil
		}).Once()

		s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)
		got, err := s.CreateProject(testContext(), req)

		require.NoError(t, err)
		assert.Equal(t, "Recipe Finder", got.Title)
		assert.Equal(t, []string{"React", "Express"}, got.TechStack)
		assert.Equal(t, []string{"Search"}, got.Features)
		assert.Equal(t, []string{}, got.NewFeatures)
		assert.Nil(t, got.OriginalProjectID)
		require.NotNil(t, got.CreatedAt)
		assert.Equal(t, "2025-03-01T12:00:00Z", *got.CreatedAt)
	})

	t.Run("異常系: タイトルが空ならストアに触れない", func(t *testing.T) {
		repo := mocks.NewProjectRepository(t)
		s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

		bad := *req
		bad.Title = ""
		got, err := s.CreateProject(testContext(), &bad)

		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Nil(t, got)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("異常系: 保存に失敗", func(t *testing.T) {
		repo := mocks.NewProjectRepository(t)
		repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("insert failed")).Once()
		s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

		got, err := s.CreateProject(testContext(), req)
		assert.EqualError(t, err, "insert failed")
		assert.Nil(t, got)
	})
}

// --- DeleteProject ---

func Test_projectService_DeleteProject(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name        string
		inputID     string
		setupMock   func(repo *mocks.ProjectRepository)
		wantErr     error
		wantCode    string
		wantMessage string
	}{
		{
			name:    "正常系: 削除できれば ID を返す",
			inputID: id.String(),
			setupMock: func(repo *mocks.ProjectRepository) {
				repo.On("DeleteByID", mock.Anything, mock.Anything, id).Return(true, nil).Once()
			},
		},
		{
			name:        "異常系: 形式不正な ID はストアに問い合わせない",
			inputID:     "not-a-uuid",
			setupMock:   func(repo *mocks.ProjectRepository) {},
			wantErr:     model.ErrInvalidID,
			wantCode:    model.CodeInvalidID,
			wantMessage: "Invalid ID format",
		},
		{
			name:    "異常系: 該当なしは NotFound",
			inputID: id.String(),
			setupMock: func(repo *mocks.ProjectRepository) {
				repo.On("DeleteByID", mock.Anything, mock.Anything, id).Return(false, nil).Once()
			},
			wantErr:     model.ErrNotFound,
			wantCode:    model.CodeResourceNotFound,
			wantMessage: fmt.Sprintf("Project with ID %s not found", id),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewProjectRepository(t)
			tt.setupMock(repo)
			s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

			got, err := s.DeleteProject(testContext(), tt.inputID)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				appErr := assertAppError(t, err, tt.wantCode)
				assert.Equal(t, tt.wantMessage, appErr.Message)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, &model.DeleteProjectResult{ID: tt.inputID}, got)
		})
	}
}

// --- FindProjectByTitleAndDifficulty ---

func Test_projectService_FindProjectByTitleAndDifficulty(t *testing.T) {
	t.Run("正常系: 見つからなければ nil, nil", func(t *testing.T) {
		repo := mocks.NewProjectRepository(t)
		repo.On("FindOne", mock.Anything, mock.Anything, titleFilter("X", model.DifficultyBeginner)).
			Return(nil, model.ErrNotFound).Once()
		s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

		got, err := s.FindProjectByTitleAndDifficulty(testContext(), "X", model.DifficultyBeginner)
		assert.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("正常系: 見つかれば投影を返す", func(t *testing.T) {
		p := &model.Project{ProjectID: uuid.New(), Title: "X", Difficulty: model.DifficultyBeginner}
		repo := mocks.NewProjectRepository(t)
		repo.On("FindOne", mock.Anything, mock.Anything, titleFilter("X", model.DifficultyBeginner)).Return(p, nil).Once()
		s := newTestService(t, repo, svcmocks.NewProjectEnhancer(t), nil)

		got, err := s.FindProjectByTitleAndDifficulty(testContext(), "X", model.DifficultyBeginner)
		require.NoError(t, err)
		assert.Equal(t, p.ProjectID.String(), got.ID)
	})
}

// --- EnhanceProject ---

func Test_projectService_EnhanceProject(t *testing.T) {
	const title = "Todo App"
	basisBeginner := &model.Project{
		ProjectID:   uuid.New(),
		Title:       title,
		Description: "Simple todo list",
		ProjectType: model.ProjectTypeFullstack,
		Difficulty:  model.DifficultyBeginner,
		TechStack:   datatypes.JSONSlice[string]{"React", "Express"},
	}
	basisIntermediate := &model.Project{
		ProjectID:   uuid.New(),
		Title:       title,
		Description: "Todo list with accounts",
		ProjectType: model.ProjectTypeFullstack,
		Difficulty:  model.DifficultyIntermediate,
		TechStack:   datatypes.JSONSlice[string]{"Next.js", "PostgreSQL"},
		NewFeatures: datatypes.JSONSlice[string]{"JWT-based login"},
	}
	existingIntermediate := &model.Project{
		ProjectID:         uuid.New(),
		Title:             title,
		ProjectType:       model.ProjectTypeFullstack,
		Difficulty:        model.DifficultyIntermediate,
		OriginalProjectID: &basisBeginner.ProjectID,
	}
	echoCreate := func(_ context.Context, _ *gorm.DB, p *model.Project) (*model.Project, error) {
		return p, nil
	}

	tests := []struct {
		name        string
		target      model.Difficulty
		current     *model.Difficulty
		setupMock   func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker)
		wantErr     error
		wantCode    string
		wantMessage string
		check       func(t *testing.T, got *model.ProjectResponse)
	}{
		{
			name:   "正常系: 既存の強化結果を返し生成APIは呼ばない",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(existingIntermediate, nil).Once()
			},
			check: func(t *testing.T, got *model.ProjectResponse) {
				assert.Equal(t, existingIntermediate.ProjectID.String(), got.ID)
			},
		},
		{
			name:   "異常系: 強化元が無ければ NotFound",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(nil, model.ErrNotFound).Once()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyBeginner)).
					Return(nil, model.ErrNotFound).Once()
			},
			wantErr:     model.ErrNotFound,
			wantCode:    model.CodeResourceNotFound,
			wantMessage: "Original project with title 'Todo App' and difficulty 'beginner' not found",
		},
		{
			name:   "正常系: beginner から intermediate を生成して保存",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(nil, model.ErrNotFound).Twice()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyBeginner)).
					Return(basisBeginner, nil).Once()
				locker.On("Acquire", mock.Anything, "Todo App|fullstack|intermediate").Return(func() {}, nil).Once()
				enh.On("Enhance", mock.Anything, basisBeginner, model.DifficultyIntermediate).
					Return(sampleEnhancedFields(), nil).Once()
				repo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
					return p.Title == title &&
						p.ProjectType == model.ProjectTypeFullstack &&
						p.Difficulty == model.DifficultyIntermediate &&
						p.OriginalProjectID != nil && *p.OriginalProjectID == basisBeginner.ProjectID &&
						len(p.Features) == 0 &&
						p.CreatedAt.Equal(fixedNow)
				})).Return(echoCreate).Once()
			},
			check: func(t *testing.T, got *model.ProjectResponse) {
				assert.Equal(t, model.DifficultyIntermediate, got.Difficulty)
				assert.Equal(t, "Todo app with accounts and sync", got.Description)
				assert.Equal(t, []string{"Next.js", "PostgreSQL"}, got.TechStack)
				assert.Equal(t, []string{"JWT-based login", "Offline sync"}, got.NewFeatures)
				assert.Equal(t, []string{}, got.Features)
				assert.Equal(t, map[string]string{
					"tech_stack": "Next.js adds SSR",
					"features":   "Accounts let users sync",
				}, got.Justification)
				require.NotNil(t, got.OriginalProjectID)
				assert.Equal(t, basisBeginner.ProjectID.String(), *got.OriginalProjectID)
			},
		},
		{
			name:    "正常系: current 指定時はそのティアを強化元にする",
			target:  model.DifficultyAdvanced,
			current: difficultyPtr(model.DifficultyIntermediate),
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyAdvanced)).
					Return(nil, model.ErrNotFound).Twice()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(basisIntermediate, nil).Once()
				locker.On("Acquire", mock.Anything, "Todo App|fullstack|advanced").Return(func() {}, nil).Once()
				enh.On("Enhance", mock.Anything, basisIntermediate, model.DifficultyAdvanced).
					Return(sampleEnhancedFields(), nil).Once()
				repo.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(echoCreate).Once()
			},
			check: func(t *testing.T, got *model.ProjectResponse) {
				assert.Equal(t, model.DifficultyAdvanced, got.Difficulty)
				require.NotNil(t, got.OriginalProjectID)
				assert.Equal(t, basisIntermediate.ProjectID.String(), *got.OriginalProjectID)
			},
		},
		{
			name:   "異常系: 生成失敗は NotFound として返し保存しない",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(nil, model.ErrNotFound).Twice()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyBeginner)).
					Return(basisBeginner, nil).Once()
				locker.On("Acquire", mock.Anything, mock.Anything).Return(func() {}, nil).Once()
				enh.On("Enhance", mock.Anything, basisBeginner, model.DifficultyIntermediate).
					Return(nil, fmt.Errorf("%w: status 500", model.ErrGenerationFailed)).Once()
			},
			wantErr:     model.ErrGenerationFailed,
			wantCode:    model.CodeResourceNotFound,
			wantMessage: "Unable to generate an enhanced version of this project",
		},
		{
			name:   "正常系: ロック待ちの間に他のリクエストが保存していればそれを返す",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(nil, model.ErrNotFound).Once()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyBeginner)).
					Return(basisBeginner, nil).Once()
				locker.On("Acquire", mock.Anything, mock.Anything).Return(func() {}, nil).Once()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(existingIntermediate, nil).Once()
			},
			check: func(t *testing.T, got *model.ProjectResponse) {
				assert.Equal(t, existingIntermediate.ProjectID.String(), got.ID)
			},
		},
		{
			name:   "異常系: ロック取得のタイムアウト",
			target: model.DifficultyIntermediate,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyIntermediate)).
					Return(nil, model.ErrNotFound).Once()
				repo.On("FindOne", mock.Anything, mock.Anything, titleFilter(title, model.DifficultyBeginner)).
					Return(basisBeginner, nil).Once()
				locker.On("Acquire", mock.Anything, mock.Anything).Return(nil, model.ErrLockTimeout).Once()
			},
			wantErr: model.ErrLockTimeout,
		},
		{
			name:    "異常系: beginner から advanced への飛び級はストアに触れない",
			target:  model.DifficultyAdvanced,
			current: difficultyPtr(model.DifficultyBeginner),
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
			},
			wantErr:     model.ErrInvalidEnhancement,
			wantCode:    model.CodeInvalidEnhancement,
			wantMessage: "Cannot skip difficulty levels. Must enhance to intermediate before advanced.",
		},
		{
			name:   "異常系: beginner は強化先に指定できない",
			target: model.DifficultyBeginner,
			setupMock: func(repo *mocks.ProjectRepository, enh *svcmocks.ProjectEnhancer, locker *mocks.EnhancementLocker) {
			},
			wantErr:  model.ErrInvalidInput,
			wantCode: model.CodeValidationError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewProjectRepository(t)
			enh := svcmocks.NewProjectEnhancer(t)
			locker := mocks.NewEnhancementLocker(t)
			tt.setupMock(repo, enh, locker)
			s := newTestService(t, repo, enh, locker)

			got, err := s.EnhanceProject(testContext(), title, tt.target, tt.current)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantCode != "" {
					appErr := assertAppError(t, err, tt.wantCode)
					if tt.wantMessage != "" {
						assert.Equal(t, tt.wantMessage, appErr.Message)
					}
				}
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, got)
			tt.check(t, got)
		})
	}
}

// --- 並行リクエスト ---

// countingEnhancer は呼び出し回数を数え、重なりが起きるよう少し待ってから結果を返します
type countingEnhancer struct {
	calls atomic.Int32
	delay time.Duration
}

func (e *countingEnhancer) Enhance(ctx context.Context, basis *model.Project, target model.Difficulty) (*model.EnhancedFields, error) {
	e.calls.Add(1)
	time.Sleep(e.delay)
	return sampleEnhancedFields(), nil
}

func seedBasis(t *testing.T, db *gorm.DB, repo repository.ProjectRepository, title string) *model.Project {
	t.Helper()
	p, err := repo.Create(testContext(), db, &model.Project{
		Title:       title,
		Description: "basis",
		ProjectType: model.ProjectTypeBackend,
		Difficulty:  model.DifficultyBeginner,
		TechStack:   datatypes.JSONSlice[string]{"Express"},
	})
	require.NoError(t, err)
	return p
}

func runConcurrently(n int, fn func(i int)) {
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			fn(i)
		}(i)
	}
	close(start)
	wg.Wait()
}

func Test_projectService_EnhanceProject_ConcurrentSingleGeneration(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewGormProjectRepository()
	seedBasis(t, db, repo, "URL Shortener")
	enhancer := &countingEnhancer{delay: 50 * time.Millisecond}
	s := NewProjectService(db, repo, enhancer, nil)

	const n = 8
	ids := make([]string, n)
	errs := make([]error, n)
	runConcurrently(n, func(i int) {
		got, err := s.EnhanceProject(testContext(), "URL Shortener", model.DifficultyIntermediate, nil)
		errs[i] = err
		if got != nil {
			ids[i] = got.ID
		}
	})

	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int32(1), enhancer.calls.Load())

	count, err := repo.Count(testContext(), db, repository.ProjectFilter{Title: "URL Shortener", Difficulty: model.DifficultyIntermediate})
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// 複数インスタンスを模し、サービスを2つ作って Redis ロックを共有させる
func Test_projectService_EnhanceProject_SharedLockAcrossInstances(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	locker := repository.NewRedisEnhancementLocker(client, 10*time.Second, 5*time.Second)

	db := setupTestDB(t)
	repo := repository.NewGormProjectRepository()
	seedBasis(t, db, repo, "Job Board")
	enhancer := &countingEnhancer{delay: 100 * time.Millisecond}
	instances := []ProjectService{
		NewProjectService(db, repo, enhancer, locker),
		NewProjectService(db, repo, enhancer, locker),
	}

	ids := make([]string, 4)
	errs := make([]error, 4)
	runConcurrently(4, func(i int) {
		got, err := instances[i%2].EnhanceProject(testContext(), "Job Board", model.DifficultyIntermediate, nil)
		errs[i] = err
		if got != nil {
			ids[i] = got.ID
		}
	})

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
	assert.Equal(t, int32(1), enhancer.calls.Load())
}
