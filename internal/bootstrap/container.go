package bootstrap

import (
	"log"

	"ai-shopassist-be/internal/config"
	"ai-shopassist-be/internal/controller"
	"ai-shopassist-be/internal/pkg/logger"
	"ai-shopassist-be/internal/repository/implementation"
	"ai-shopassist-be/internal/repository/memory"
	"ai-shopassist-be/internal/service"
	"ai-shopassist-be/pkg/assessor"
	"ai-shopassist-be/pkg/embedding"
	"ai-shopassist-be/pkg/llm/factory"
	"ai-shopassist-be/pkg/resolver"
	"ai-shopassist-be/pkg/retrieval"

	pkgNats "ai-shopassist-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	QueryController   controller.IQueryController
	CatalogController controller.ICatalogController
	HealthController  controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService   service.IConsumerService
	EventAuditService service.IEventAuditService

	// Shared
	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. NATS
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}
	var natsSub *pkgNats.Subscriber
	if natsPub != nil {
		natsSub, err = pkgNats.NewSubscriber(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
			natsSub = nil
		}
	}

	// 4. Redis
	var rdb *redis.Client
	if opts, err := redis.ParseURL(cfg.App.RedisURL); err == nil {
		rdb = redis.NewClient(opts)
	} else {
		log.Printf("[WARN] Invalid REDIS_URL, session language cache disabled: %v", err)
	}

	// 5. AI Providers
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.GoogleGemini,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 6. Repositories & Caches
	offerRepo := implementation.NewOfferRepository(db)
	chunkRepo := implementation.NewContentChunkRepository(db)
	rateLimiter := memory.NewRateLimiter(cfg.Limits.QueriesPerMinute, 0)
	langCache := memory.NewLanguageCache(rdb, cfg.Limits.LanguageCacheTTL)

	// 7. Pipeline components
	offerResolver := resolver.NewResolver(offerRepo)
	ranker := retrieval.NewRanker(retrieval.RankerConfig{
		VectorWeight:        cfg.Retrieval.VectorWeight,
		SimilarityThreshold: cfg.Retrieval.SimilarityThreshold,
		Limit:               cfg.Retrieval.Limit,
	})
	productFilter := retrieval.NewProductFilter(llmProvider)
	gate := assessor.NewAssessor(llmProvider)

	// 8. Services
	queryService := service.NewQueryService(
		chunkRepo, offerResolver, ranker, productFilter, gate,
		embeddingProvider, rateLimiter, langCache, natsPub, sysLogger, cfg,
	)
	offerService := service.NewOfferService(offerRepo, pubSub, cfg.Keys.OfferNormalizeTopic, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Keys.OfferNormalizeTopic, offerRepo, natsPub)
	eventAuditService := service.NewEventAuditService(natsSub, sysLogger)

	// 9. Controllers
	return &Container{
		QueryController:   controller.NewQueryController(queryService),
		CatalogController: controller.NewCatalogController(offerService),
		HealthController:  controller.NewHealthController(db),
		ConsumerService:   consumerService,
		EventAuditService: eventAuditService,
		Logger:            sysLogger,
	}
}
