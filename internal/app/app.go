package app

import (
	"context"
	"errors"
	"eventhub_backend/internal/config"
	"eventhub_backend/internal/controller"
	"eventhub_backend/internal/middleware"
	"eventhub_backend/internal/repository"
	"eventhub_backend/internal/service"
	"eventhub_backend/pkg/configwatcher"
	"eventhub_backend/pkg/database"
	"eventhub_backend/pkg/logger"
	"eventhub_backend/pkg/monitoring"
	"eventhub_backend/pkg/security"
	"eventhub_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	shutdownTimeout  = 5 * time.Second
	autoTaggingEvery = 24 * time.Hour
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	services        *services
	cors            *security.CORS
	limiter         *security.RateLimiter
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user          *repository.UserRepository
	event         *repository.EventRepository
	eventCategory *repository.EventCategoryRepository
	purchase      *repository.PurchaseRepository
	friend        *repository.FriendRepository
	follow        *repository.FollowRepository
	favourite     *repository.FavouriteRepository
	story         *repository.StoryRepository
	review        *repository.ReviewRepository
	post          *repository.PostRepository
	comment       *repository.CommentRepository
	reaction      *repository.ReactionRepository
	analytics     *repository.AnalyticsRepository
	cache         *repository.CacheRepository
}

type services struct {
	auth        *service.AuthService
	oauth       *service.OAuthService
	mail        *service.MailService
	user        *service.UserService
	event       *service.EventService
	purchase    *service.PurchaseService
	social      *service.SocialService
	community   *service.CommunityService
	content     *service.ContentService
	analytics   *service.AnalyticsService
	autoTagging *service.AutoTaggingService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	analytics *controller.AnalyticsController
	event     *controller.EventController
	purchase  *controller.PurchaseController
	social    *controller.SocialController
	community *controller.CommunityController
	content   *controller.ContentController
	health    *controller.HealthController
}

// RegisterConfigCallback adds a hook run after every config reload.
func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB, rdb *redis.Client) *repositories {
	return &repositories{
		user:          repository.NewUserRepository(db),
		event:         repository.NewEventRepository(db),
		eventCategory: repository.NewEventCategoryRepository(db),
		purchase:      repository.NewPurchaseRepository(db),
		friend:        repository.NewFriendRepository(db),
		follow:        repository.NewFollowRepository(db),
		favourite:     repository.NewFavouriteRepository(db),
		story:         repository.NewStoryRepository(db),
		review:        repository.NewReviewRepository(db),
		post:          repository.NewPostRepository(db),
		comment:       repository.NewCommentRepository(db),
		reaction:      repository.NewReactionRepository(db),
		analytics:     repository.NewAnalyticsRepository(db),
		cache:         repository.NewCacheRepository(rdb),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB) *services {
	s := &services{}

	s.mail = service.NewMailService(cfg.Mail)
	s.oauth = service.NewOAuthService(cfg.OAuth)
	s.auth = service.NewAuthService(repos.user, repos.cache, s.mail, cfg)
	s.user = service.NewUserService(repos.user, repos.follow, repos.post)
	s.event = service.NewEventService(db, repos.event, repos.eventCategory, repos.review, repos.cache, cfg)
	s.purchase = service.NewPurchaseService(db, repos.user, repos.event, repos.purchase)
	s.social = service.NewSocialService(repos.user, repos.event, repos.friend, repos.follow, repos.favourite)
	s.community = service.NewCommunityService(repos.user, repos.event, repos.post, repos.comment, repos.reaction)
	s.content = service.NewContentService(repos.user, repos.event, repos.review, repos.story)
	s.analytics = service.NewAnalyticsService(repos.analytics)
	s.autoTagging = service.NewAutoTaggingService(repos.eventCategory)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth, s.oauth, a.Config.Server.IsRelease()),
		user:      controller.NewUserController(s.user),
		analytics: controller.NewAnalyticsController(s.analytics),
		event:     controller.NewEventController(s.event),
		purchase:  controller.NewPurchaseController(s.purchase),
		social:    controller.NewSocialController(s.social),
		community: controller.NewCommunityController(s.community),
		content:   controller.NewContentController(s.content),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(gin.Recovery())

	// the span has to wrap everything below it
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(middleware.RequestLogger())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(a.cors.Middleware())
	router.Use(security.Secure())
	router.Use(a.limiter.Middleware())
}

// applyConfig pushes the reloadable parts of a fresh config into the running app.
func (a *App) applyConfig(cfg *config.Config) {
	logger.SetMode(cfg.Server.Mode)
	a.cors.Update(cfg.CORS.AllowedOrigins)
	a.limiter.Update(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())

	for _, callback := range a.configCallbacks {
		callback(cfg)
	}

	logger.Log.Info("Configuration reloaded",
		zap.String("mode", cfg.Server.Mode),
		zap.Int("rate_limit", cfg.RateLimit.MaxRequests),
		zap.Strings("cors_origins", cfg.CORS.AllowedOrigins),
	)
}

func (a *App) startBackgroundTasks(ctx context.Context) {
	go a.limiter.Run(ctx)
	go a.services.autoTagging.Start(ctx, autoTaggingEvery)

	if a.Config.ConfigDir != "" {
		go func() {
			if err := configwatcher.WatchConfig(ctx, a.Config.ConfigDir, a.applyConfig); err != nil {
				logger.Log.Error("Config watcher stopped", zap.Error(err))
			}
		}()
	}
}

// New assembles the application on top of already opened stores. rdb may be
// nil, in which case caching and token revocation are disabled.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *App {
	app := &App{
		Config:  cfg,
		DB:      db,
		Redis:   rdb,
		cors:    security.NewCORS(cfg.CORS.AllowedOrigins),
		limiter: security.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window()),
	}

	repos := app.initRepositories(db, rdb)
	app.services = app.initServices(repos, cfg, db)
	controllers := app.initControllers(app.services, db, rdb)

	monitoring.Init()

	router := gin.New()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers)

	return app
}

// NewApp opens every store named in cfg and builds the application. It exits
// the process when a required store is unreachable.
func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	gin.SetMode(ginMode(cfg.Server.Mode))

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := New(cfg, db, rdb)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	return app
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}

// Run serves HTTP until SIGINT or SIGTERM, then drains requests for up to
// five seconds and releases the stores.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              ":" + a.Config.Server.Port,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.startBackgroundTasks(ctx)

	serveErr := make(chan error, 1)
	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			a.close()
			return err
		}
	case <-ctx.Done():
	}
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := tracing.Shutdown(shutdownCtx, a.tracer); err != nil {
		logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
	}
	a.close()

	logger.Log.Info("Server exiting")
	return nil
}

func (a *App) close() {
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			logger.Log.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
