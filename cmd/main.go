package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/li812/face-bank/internal/dbtx"
	_ "github.com/li812/face-bank/internal/docs"
	"github.com/li812/face-bank/internal/facades"
	"github.com/li812/face-bank/internal/handlers"
	"github.com/li812/face-bank/internal/jwt"
	"github.com/li812/face-bank/internal/logger"
	"github.com/li812/face-bank/internal/metrics"
	"github.com/li812/face-bank/internal/middlewares"
	"github.com/li812/face-bank/internal/migrations"
	"github.com/li812/face-bank/internal/repositories"
	"github.com/li812/face-bank/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds everything read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	KafkaBrokers      []string
	NotificationTopic string
	TransactionTopic  string

	BiometricHost    string
	BiometricPort    string
	BiometricTimeout time.Duration

	FaceThreshold    float64
	OTPMaxAttempts   int
	RequireFaceCheck bool
	SessionTTL       time.Duration

	JWTSecretKey string
	CORSOrigins  []string
}

// @title face-bank API
// @version 1.0.0
// @description Face-verified login and OTP-confirmed money transfers
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, Kafka, biometric, workflow and JWT configuration.
func parseConfig(path string) (config, error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	var (
		cfg config
		err error
	)
	getInt := func(key, defaultValue string) int {
		if err != nil {
			return 0
		}
		var n int
		if n, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
		return n
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	cfg.PGPort = getInt("POSTGRES_PORT", "5432")
	cfg.PGMaxOpenConns = getInt("POSTGRES_MAX_OPEN_CONNS", "16")
	cfg.PGMaxIdleConns = getInt("POSTGRES_MAX_IDLE_CONNS", "8")

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPort = getInt("REDIS_PORT", "6379")
	cfg.RedisDB = getInt("REDIS_DB", "0")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisPoolSize = getInt("REDIS_POOL_SIZE", "10")
	cfg.RedisMinIdleConns = getInt("REDIS_MIN_IDLE_CONNS", "2")

	// Kafka config
	cfg.KafkaBrokers = splitList(getEnv("KAFKA_BROKERS", "localhost:9092"))
	cfg.NotificationTopic = getEnv("NOTIFICATION_TOPIC", "notifications")
	cfg.TransactionTopic = getEnv("TRANSACTION_TOPIC", "transactions")

	// Biometric comparator config
	cfg.BiometricHost = getEnv("BIOMETRIC_HOST", "localhost")
	cfg.BiometricPort = getEnv("BIOMETRIC_PORT", "50051")
	cfg.BiometricTimeout = time.Duration(getInt("BIOMETRIC_TIMEOUT_MS", "5000")) * time.Millisecond

	// Workflow config
	cfg.OTPMaxAttempts = getInt("OTP_MAX_ATTEMPTS", "5")
	cfg.SessionTTL = time.Duration(getInt("SESSION_TTL_SECOND", "1800")) * time.Second
	if err != nil {
		return config{}, err
	}

	if cfg.FaceThreshold, err = strconv.ParseFloat(getEnv("FACE_SIMILARITY_THRESHOLD", "0.75"), 64); err != nil {
		return config{}, fmt.Errorf("FACE_SIMILARITY_THRESHOLD: %w", err)
	}
	if cfg.FaceThreshold < 0 || cfg.FaceThreshold >= 1 {
		return config{}, fmt.Errorf("FACE_SIMILARITY_THRESHOLD must be in [0, 1), got %v", cfg.FaceThreshold)
	}
	if cfg.RequireFaceCheck, err = strconv.ParseBool(getEnv("REQUIRE_TRANSACTION_FACE_CHECK", "false")); err != nil {
		return config{}, fmt.Errorf("REQUIRE_TRANSACTION_FACE_CHECK: %w", err)
	}
	if cfg.OTPMaxAttempts < 0 {
		return config{}, fmt.Errorf("OTP_MAX_ATTEMPTS must not be negative, got %d", cfg.OTPMaxAttempts)
	}
	if cfg.SessionTTL <= 0 {
		return config{}, fmt.Errorf("SESSION_TTL_SECOND must be positive")
	}

	// JWT and CORS config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	cfg.CORSOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"))
	for _, origin := range cfg.CORSOrigins {
		// Session cookies are sent cross-origin, so every origin must be named.
		if origin == "*" {
			return config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS must list explicit origins, got %q", origin)
		}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run initializes the logger, database, Redis, Kafka, gRPC client, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Apply(ctx, db); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka writers: mail relay notifications and settled transaction events
	notificationWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.NotificationTopic)
	defer notificationWriter.Close()
	transactionWriter := newKafkaWriter(cfg.KafkaBrokers, cfg.TransactionTopic)
	defer transactionWriter.Close()

	// Connect to the biometric comparator
	grpcAddr := fmt.Sprintf("%s:%s", cfg.BiometricHost, cfg.BiometricPort)
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to biometric service at %s: %w", grpcAddr, err)
	}
	defer conn.Close()

	// Initialize JWT service
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWTSecretKey), jwt.WithExpiration(cfg.SessionTTL))

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	familyReadRepo := repositories.NewFamilyReadRepository(db, dbtx.FromContext)
	familyWriteRepo := repositories.NewFamilyWriteRepository(db, dbtx.FromContext)
	accountReadRepo := repositories.NewAccountReadRepository(db, dbtx.FromContext)
	accountWriteRepo := repositories.NewAccountWriteRepository(db, dbtx.FromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db, dbtx.FromContext)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, dbtx.FromContext)
	sessionRepo := repositories.NewSessionRepository(rdb)
	transactor := dbtx.NewTransactor(db)

	// Initialize facades
	faceService := facades.NewFaceServiceGRPCFacade(conn, cfg.BiometricTimeout)
	notifier := facades.NewKafkaNotifier(notificationWriter, cfg.NotificationTopic, 0)

	// Initialize services
	verifier := services.NewFaceVerifier(faceService, cfg.FaceThreshold)
	enrollmentService := services.NewEnrollmentService(userReadRepo, userWriteRepo, familyReadRepo, familyWriteRepo, verifier, transactor)
	authService := services.NewAuthService(userReadRepo, familyReadRepo, verifier)
	sessionService := services.NewSessionService(sessionRepo, tokens, cfg.SessionTTL)

	policy := services.DefaultTransactionPolicy()
	policy.MaxOTPAttempts = cfg.OTPMaxAttempts
	policy.RequireFaceCheck = cfg.RequireFaceCheck
	transactionService := services.NewTransactionService(
		userReadRepo, accountReadRepo, accountWriteRepo,
		txnReadRepo, txnWriteRepo, transactor,
		notifier, transactionWriter, policy,
	)

	metrics.Register(prometheus.DefaultRegisterer)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(log))
	r.Use(middlewares.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middlewares.RequestIDHeader},
		ExposedHeaders:   []string{middlewares.RequestIDHeader},
		AllowCredentials: true,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		handlers.RegisterRegisterHandler(r, handlers.NewRegisterHandler(enrollmentService))
		handlers.RegisterLoginHandlers(r,
			handlers.NewLoginHandler(authService, sessionService),
			handlers.NewFamilyLoginHandler(authService, sessionService),
		)

		// Protected routes with session middleware
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokens, sessionService))

			handlers.RegisterFamilyRegisterHandler(r, handlers.NewFamilyRegisterHandler(enrollmentService))
			handlers.RegisterLogoutHandler(r, handlers.NewLogoutHandler(sessionService))
			handlers.RegisterTransactionHandlers(r, handlers.TransactionHandlers{
				Initiate:         handlers.NewInitiateTransactionHandler(transactionService, sessionService),
				FaceVerification: handlers.NewFaceVerificationHandler(authService, sessionService),
				Verify:           handlers.NewVerifyTransactionHandler(transactionService, sessionService),
				History:          handlers.NewHistoryHandler(transactionService),
			})
		})
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}

func newKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
	}
}
