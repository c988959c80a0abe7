package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/learnhub/internal/app/controllers"
	appMigrations "github.com/yigit/learnhub/internal/app/migrations"
	appRepos "github.com/yigit/learnhub/internal/app/repositories"
	appRoutes "github.com/yigit/learnhub/internal/app/routes"
	appServices "github.com/yigit/learnhub/internal/app/services"
	"github.com/yigit/learnhub/internal/config"
	"github.com/yigit/learnhub/internal/db"
	"github.com/yigit/learnhub/internal/jobs"
	appMiddleware "github.com/yigit/learnhub/internal/middleware"
	pkgAuth "github.com/yigit/learnhub/internal/pkg/auth"
	"github.com/yigit/learnhub/internal/pkg/filestorage"
	"github.com/yigit/learnhub/internal/pkg/helpers"
	"github.com/yigit/learnhub/internal/pkg/logger"
	"github.com/yigit/learnhub/internal/pkg/throttle"
	"github.com/yigit/learnhub/internal/seed"
	"github.com/yigit/learnhub/internal/web"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	FileStorage    *filestorage.LocalStorage
	Sessions       *pkgAuth.SessionManager
	Redis          *redis.Client // nil when login throttling is disabled
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    *appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Configure(logger.Config{
		Level:   logger.ParseLevel(cfg.Logging.Level),
		Pretty:  cfg.Logging.Format == "text",
		Service: "learnhub",
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL, applies the embedded migrations
// and seeds demo data when enabled.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(database.Pool, lgr).Migrate(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if shouldSeedDemo(cfg) {
		if err := seed.CreateDemoData(ctx, appRepos.NewRepositories(database), lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return database, nil
}

// setupThrottle connects to Redis when a url is configured. Without one,
// or when Redis is unreachable at startup, logins are not throttled.
func setupThrottle(cfg *config.Config, lgr zerolog.Logger) (throttle.LoginThrottle, *redis.Client) {
	if cfg.Redis.URL == "" {
		lgr.Info().Msg("Redis url not set, login throttling disabled")
		return throttle.Noop{}, nil
	}

	client, err := throttle.NewRedisClient(cfg.Redis.URL, helpers.ParseDuration(cfg.Redis.ConnectTimeout, 3*time.Second))
	if err != nil {
		lgr.Warn().Err(err).Msg("Redis unavailable, login throttling disabled")
		return throttle.Noop{}, nil
	}

	lgr.Info().Int("maxAttempts", cfg.Redis.MaxAttempts).Msg("Login throttling enabled")
	return throttle.NewRedisThrottle(client, throttle.Config{
		MaxAttempts: cfg.Redis.MaxAttempts,
		Window:      helpers.ParseDuration(cfg.Redis.AttemptWindow, 15*time.Minute),
		Lockout:     helpers.ParseDuration(cfg.Redis.LockoutPeriod, 15*time.Minute),
	}, lgr), client
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Sessions = pkgAuth.NewSessionManager(pkgAuth.SessionConfig{
		SecretKey: cfg.Session.Secret,
		TTL:       helpers.ParseDuration(cfg.Session.TTL, 168*time.Hour),
		Issuer:    cfg.Session.Issuer,
	})

	var loginThrottle throttle.LoginThrottle
	loginThrottle, deps.Redis = setupThrottle(cfg, lgr)

	repos := deps.Repos
	authService := appServices.NewAuthService(repos.UserRepository, deps.Sessions, loginThrottle, lgr)
	userService := appServices.NewUserService(repos.UserRepository, deps.FileStorage, deps.Sessions, lgr)
	courseService := appServices.NewCourseService(
		repos.CourseRepository,
		repos.LessonRepository,
		repos.EnrollmentRepository,
		repos.ProgressRepository,
		deps.FileStorage,
		lgr,
	)
	lessonService := appServices.NewLessonService(repos.CourseRepository, repos.LessonRepository, lgr)
	quizService := appServices.NewQuizService(repos.LessonRepository, repos.QuizRepository, lgr)
	enrollmentService := appServices.NewEnrollmentService(repos.EnrollmentRepository, lgr)
	progressService := appServices.NewProgressService(repos.CourseRepository, repos.LessonRepository, repos.ProgressRepository, lgr)
	reportService := appServices.NewReportService(repos.CourseRepository, repos.LessonRepository, repos.ProgressRepository, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.Sessions, cfg.Session.CookieName, cfg.Session.Secure, lgr)

	deps.Controllers = &appRoutes.Controllers{
		Home:     appControllers.NewHomeController(database, lgr),
		Auth:     appControllers.NewAuthController(authService, deps.AuthMiddleware, lgr),
		Course:   appControllers.NewCourseController(courseService, reportService, lgr),
		Lesson:   appControllers.NewLessonController(lessonService, lgr),
		Learning: appControllers.NewLearningController(enrollmentService, progressService, lgr),
		Quiz:     appControllers.NewQuizController(quizService, lgr),
		User:     appControllers.NewUserController(userService, deps.AuthMiddleware, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware, templates and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	appMiddleware.RegisterFormFieldNames()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	router, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.Use(
		appMiddleware.RequestLogger(lgr),
		appMiddleware.Recovery(),
		appMiddleware.BodyLimit(cfg.MaxUploadBytes()),
	)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, web.Static(), deps.FileStorage.BasePath())

	return router, nil
}

// shouldSeedDemo keeps the published demo accounts out of production.
func shouldSeedDemo(cfg *config.Config) bool {
	return cfg.Seed.Demo && !cfg.IsProduction()
}

// newEngine creates a bare gin engine. Only the configured proxies may
// override the client IP through forwarding headers.
func newEngine(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	return router, nil
}

// SetupJobs registers the background jobs on a new scheduler. The caller
// starts and stops it.
func SetupJobs(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*jobs.Manager, error) {
	manager := jobs.NewManager(lgr)

	sweeper := jobs.NewUploadSweeper(
		deps.FileStorage,
		deps.Repos.UploadRepository,
		helpers.ParseDuration(cfg.Jobs.UploadSweepGrace, 24*time.Hour),
		lgr,
	)
	if err := manager.Register(cfg.Jobs.UploadSweepSchedule, sweeper); err != nil {
		return nil, err
	}

	return manager, nil
}
