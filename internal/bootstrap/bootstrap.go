package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appAuth "github.com/yigit/volunteerhub/internal/app/auth"
	appControllers "github.com/yigit/volunteerhub/internal/app/controllers"
	appMigrations "github.com/yigit/volunteerhub/internal/app/migrations"
	appRepos "github.com/yigit/volunteerhub/internal/app/repositories"
	appRoutes "github.com/yigit/volunteerhub/internal/app/routes"
	appServices "github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/config"
	"github.com/yigit/volunteerhub/internal/db"
	appMiddleware "github.com/yigit/volunteerhub/internal/middleware"
	pkgAuth "github.com/yigit/volunteerhub/internal/pkg/auth"
	"github.com/yigit/volunteerhub/internal/pkg/cache"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
	"github.com/yigit/volunteerhub/internal/pkg/logger"
	"github.com/yigit/volunteerhub/internal/pkg/payment"
	"github.com/yigit/volunteerhub/internal/pkg/queue"
	"github.com/yigit/volunteerhub/internal/pkg/receipt"
	"github.com/yigit/volunteerhub/internal/pkg/validation"
	"github.com/yigit/volunteerhub/internal/pkg/websocket"
	"github.com/yigit/volunteerhub/internal/scheduler"
	"github.com/yigit/volunteerhub/internal/seed"
	"github.com/yigit/volunteerhub/internal/worker"
)

// tokenCleanupInterval is how often expired tokens are purged
const tokenCleanupInterval = 6 * time.Hour

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	FileStorage  *filestorage.LocalStorage
	Receipts     *receipt.Generator
	Redis        *redis.Client
	RabbitMQ     *queue.RabbitMQ // nil when mail is sent in process
	Hub          *websocket.Hub
	MailWorker   *worker.MailWorker
	Scheduler    *scheduler.Manager // nil when disabled

	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = filepath.Join("configs", "config.yaml")
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		dbPool.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool, lgr)
	if err := migrator.MigrateFromDirectory(context.Background(), migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	if strings.ToLower(cfg.Server.Mode) == "development" {
		if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create demo data, proceeding anyway...")
		}
	}

	return dbPool, nil
}

// BuildDependencies initializes repositories, infrastructure clients, services and controllers.
func BuildDependencies(ctx context.Context, cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	var err error

	if err := validation.RegisterWithGin(); err != nil {
		return nil, fmt.Errorf("failed to register validation rules: %w", err)
	}

	deps.Repos = appRepos.NewRepositories(dbPool)

	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath, cfg.Server.MaxImageWidth)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Receipts, err = receipt.NewGenerator(cfg.Server.ReceiptsPath)
	if err != nil {
		return nil, err
	}

	deps.Redis, err = cache.New(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to redis")
		return nil, err
	}

	// Mail delivery: through RabbitMQ when enabled, otherwise in the publishing goroutine
	sender := email.NewSMTPSender(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  "VolunteerHub",
		FromEmail: cfg.SMTP.From,
		UseTLS:    cfg.SMTP.Port == 465,
	}, lgr)
	deps.MailWorker = worker.NewMailWorker(sender, lgr)

	var publisher queue.Publisher
	if cfg.RabbitMQ.Enabled {
		deps.RabbitMQ, err = queue.NewRabbitMQ(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue, lgr)
		if err != nil {
			deps.Close()
			return nil, err
		}
		publisher = deps.RabbitMQ
	} else {
		lgr.Warn().Msg("RabbitMQ disabled, mails are sent in process")
		publisher = queue.NewInlinePublisher(deps.MailWorker.Handle)
	}
	mailer := appServices.NewMailer(publisher, cfg.Server.BaseURL, lgr)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  config.Duration(cfg.JWT.AccessTokenExpiration),
		RefreshTokenExp: config.Duration(cfg.JWT.RefreshTokenExpiration),
		TokenIssuer:     cfg.JWT.Issuer,
	})
	deps.AuthzService = appAuth.NewAuthorizationService(deps.Repos.ChatRepository)
	deps.Hub = websocket.NewHub(lgr)

	gateway := payment.NewMidtransGateway(payment.MidtransConfig{
		ServerKey:  cfg.Payment.ServerKey,
		Production: cfg.Payment.Production,
		FinishURL:  cfg.Payment.FinishURL,
	}, lgr)
	if cfg.Payment.ServerKey == "" {
		lgr.Warn().Msg("Payment server key not set, donation checkouts will fail")
	}
	checkouts := payment.NewCheckoutStore(deps.Redis, config.Duration(cfg.Redis.CheckoutTTL))

	r := deps.Repos

	// Initialize services
	authService := appServices.NewAuthService(r.UserRepository, r.TokenRepository, r.PasswordResetTokenRepository, deps.JWTService, mailer, lgr)
	userService := appServices.NewUserService(r.UserRepository, r.FollowRepository, r.EventRepository, r.CampaignRepository, r.PostRepository, deps.FileStorage, lgr)
	eventService := appServices.NewEventService(r.EventRepository, r.ParticipationRepository, deps.FileStorage, lgr)
	participationService := appServices.NewParticipationService(r.ParticipationRepository, r.EventRepository, r.UserRepository, mailer, lgr)
	campaignService := appServices.NewCampaignService(r.CampaignRepository, deps.FileStorage, lgr)
	donationService := appServices.NewDonationService(r.DonationRepository, r.CampaignRepository, r.EventRepository, r.UserRepository,
		checkouts, gateway, deps.Receipts, mailer, cfg.Payment.ServerKey, lgr)
	postService := appServices.NewPostService(r.PostRepository, deps.FileStorage, lgr)
	feedService := appServices.NewFeedService(r.EventRepository, r.PostRepository, r.CampaignRepository, r.PetitionRepository, r.ReportRepository, r.UserRepository, lgr)
	notificationService := appServices.NewNotificationService(r.NotificationRepository, lgr)
	chatService := appServices.NewChatService(r.ChatRepository, r.UserRepository, deps.AuthzService, deps.Hub, lgr)
	petitionService := appServices.NewPetitionService(r.PetitionRepository, deps.FileStorage, lgr)
	reportService := appServices.NewReportService(r.ReportRepository, deps.FileStorage, lgr)
	dashboardService := appServices.NewDashboardService(r.ReportRepository, r.PetitionRepository, r.DonationRepository,
		r.ParticipationRepository, r.EventRepository, r.CampaignRepository, r.PostRepository, lgr)

	if cfg.Scheduler.Enabled {
		reminderService := appServices.NewReminderService(r.EventRepository, r.ParticipationRepository, mailer,
			config.Duration(cfg.Scheduler.ReminderWindow), lgr)
		deps.Scheduler, err = newScheduler(cfg, reminderService, r, lgr)
		if err != nil {
			deps.Close()
			return nil, err
		}
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	incoming := websocket.NewMessageHandler(chatService, deps.Hub, lgr)
	deps.Controllers = appRoutes.Controllers{
		Auth:         appControllers.NewAuthController(authService, lgr),
		User:         appControllers.NewUserController(userService, lgr),
		Event:        appControllers.NewEventController(eventService, participationService, lgr),
		Campaign:     appControllers.NewCampaignController(campaignService, donationService, deps.Receipts, lgr),
		Post:         appControllers.NewPostController(postService, lgr),
		Feed:         appControllers.NewFeedController(feedService, lgr),
		Notification: appControllers.NewNotificationController(notificationService, lgr),
		Chat:         appControllers.NewChatController(chatService, lgr),
		Petition:     appControllers.NewPetitionController(petitionService, lgr),
		Report:       appControllers.NewReportController(reportService, lgr),
		Dashboard:    appControllers.NewDashboardController(dashboardService, lgr),
		WebSocket:    websocket.NewHandler(deps.Hub, deps.AuthzService, incoming, lgr),
	}

	return deps, nil
}

func newScheduler(cfg *config.Config, reminders appServices.ReminderService, r *appRepos.Repositories, lgr zerolog.Logger) (*scheduler.Manager, error) {
	m, err := scheduler.NewManager(logger.ForComponent("scheduler"))
	if err != nil {
		return nil, err
	}
	if err := m.Register(scheduler.NewReminderJob(reminders, config.Duration(cfg.Scheduler.ReminderInterval), lgr)); err != nil {
		return nil, err
	}
	cleanup := scheduler.NewTokenCleanupJob(map[string]scheduler.TokenPurger{
		"refresh":        r.TokenRepository.CleanupExpiredTokens,
		"password_reset": r.PasswordResetTokenRepository.DeleteExpiredTokens,
	}, tokenCleanupInterval, lgr)
	if err := m.Register(cleanup); err != nil {
		return nil, err
	}
	return m, nil
}

// Close releases the infrastructure clients opened by BuildDependencies
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		if err := d.Scheduler.Stop(); err != nil {
			d.Logger.Error().Err(err).Msg("Scheduler shutdown error")
		}
	}
	if d.RabbitMQ != nil {
		d.RabbitMQ.Close()
	}
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			d.Logger.Error().Err(err).Msg("Redis close error")
		}
	}
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(lgr),
		appMiddleware.CORS(cfg.CORS.AllowedOrigins),
	)
	router.MaxMultipartMemory = 8 << 20

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
