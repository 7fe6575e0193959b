package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quizwhiz-service/internal/app"
	"quizwhiz-service/internal/config"
	"quizwhiz-service/internal/infra/memory"
	pgloader "quizwhiz-service/internal/infra/postgres"
	redisinfra "quizwhiz-service/internal/infra/redis"
	transport "quizwhiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz session server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.QuestionLoader = memory.NewStaticQuestionLoader(sampleCatalog())
	if pool != nil {
		loader = pgloader.NewQuestionLoader(pool)
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalog app.QuestionRepository
	if redisClient != nil {
		catalog = redisinfra.NewQuestionRepository(redisClient, loader, catalogTTL)
	} else {
		catalog = memory.NewQuestionRepository(loader, catalogTTL)
	}

	var sessions app.SessionRepository
	var progress app.ProgressStore
	var accounts app.AccountStore
	if redisClient != nil {
		sessionTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)
		sessions = redisinfra.NewSessionStore(redisClient, sessionTTL)
		progress = redisinfra.NewProgressStore(redisClient)
		accounts = redisinfra.NewAccountStore(redisClient)
	} else {
		sessions = memory.NewSessionStore()
		progress = memory.NewProgressStore()
		accounts = memory.NewAccountStore()
	}

	rules := app.DefaultRules()
	if d := config.TTLDuration(cfg.Quiz.TimeLimit, 0); d > 0 {
		rules.TimeLimitSeconds = int(d / time.Second)
	}
	if cfg.Quiz.QuestionsPerQuiz > 0 {
		rules.QuestionsPerQuiz = cfg.Quiz.QuestionsPerQuiz
	}

	service := app.NewSessionService(sessions, catalog, progress, accounts, rules)
	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz session service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
