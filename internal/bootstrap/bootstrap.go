package bootstrap

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpadapter "github.com/unp-digital/sciencebot/internal/adapters/http"
	"github.com/unp-digital/sciencebot/internal/config"
	"github.com/unp-digital/sciencebot/internal/core/ports"
	"github.com/unp-digital/sciencebot/internal/core/usecase"
	"github.com/unp-digital/sciencebot/internal/infrastructure/llm/openai"
	natsqueue "github.com/unp-digital/sciencebot/internal/infrastructure/queue/nats"
	"github.com/unp-digital/sciencebot/internal/infrastructure/repository/postgres"
	"github.com/unp-digital/sciencebot/internal/infrastructure/resilience"
	"github.com/unp-digital/sciencebot/internal/infrastructure/vector/qdrant"
	"github.com/unp-digital/sciencebot/internal/observability/logging"
	"github.com/unp-digital/sciencebot/internal/observability/metrics"
)

// App wires configuration into the full dependency graph and owns the
// lifecycle of everything that needs closing.
type App struct {
	Config  config.Config
	Logger  *slog.Logger
	Handler http.Handler

	db     *sql.DB
	events *natsqueue.Publisher
}

func NewApp(cfg config.Config) (*App, error) {
	logger := logging.NewJSONLogger("sciencebot-api", cfg.LogLevel)
	slog.SetDefault(logger)

	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	catalog := postgres.NewCatalogRepository(db)

	resilienceCfg := resilience.DefaultConfig()
	if cfg.ExternalCallTimeoutSeconds > 0 {
		resilienceCfg.CallTimeout = time.Duration(cfg.ExternalCallTimeoutSeconds) * time.Second
	}
	executor := resilience.NewExecutor(resilienceCfg)

	llmClient := openai.New(openai.Config{
		APIKey:      cfg.OpenAIAPIKey,
		BaseURL:     cfg.OpenAIBaseURL,
		ChatModel:   cfg.OpenAIModel,
		EmbedModel:  cfg.OpenAIEmbedModel,
		Temperature: float32(cfg.OpenAITemperature),
		MaxTokens:   cfg.OpenAIMaxTokens,
		Executor:    executor,
	})

	pageIndex := qdrant.New(cfg.QdrantURL, cfg.QdrantCollection, executor)

	var events ports.EventPublisher
	var publisher *natsqueue.Publisher
	if cfg.NATSURL != "" {
		publisher, err = natsqueue.New(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("connect nats: %w", err)
		}
		events = publisher
	}

	ranker := usecase.NewDocumentRanker(llmClient)
	engine := usecase.NewPageSearchEngine(llmClient, pageIndex)
	synthesizer := usecase.NewAnswerSynthesizer(llmClient)

	pipeline := usecase.NewSearchPipeline(catalog, ranker, engine, synthesizer, events, usecase.PipelineConfig{
		RankTopK:        cfg.RAGRankTopK,
		MaxCandidates:   cfg.RAGRankTopK,
		AcceptThreshold: cfg.RAGAcceptThreshold,
	})

	history := usecase.NewHistoryManager(cfg.HistoryMaxTurns)
	chat := usecase.NewChatUseCase(pipeline, history, cfg.RAGMaxPages)

	serverMetrics := metrics.NewHTTPServerMetrics("sciencebot-api")
	pipeline.Instrument(serverMetrics.PipelineObserver("sciencebot-api"))
	router := httpadapter.NewRouter(pipeline, chat, serverMetrics, httpadapter.RouterConfig{
		RateLimitRPS:   cfg.APIRateLimitRPS,
		RateLimitBurst: cfg.APIRateLimitBurst,
		MaxInFlight:    cfg.APIMaxInFlight,
	})

	return &App{
		Config:  cfg,
		Logger:  logger,
		Handler: router.Handler(),
		db:      db,
		events:  publisher,
	}, nil
}

func (a *App) Close() {
	if a.events != nil {
		a.events.Close()
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.Logger.Warn("db_close_failed", "error", err)
		}
	}
}
