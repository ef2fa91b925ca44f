package bootstrap

import (
	"chat-vector-be/internal/config"
	"chat-vector-be/internal/controller"
	"chat-vector-be/internal/pkg/logger"
	"chat-vector-be/internal/repository/contract"
	"chat-vector-be/internal/repository/implementation"
	"chat-vector-be/internal/repository/unitofwork"
	"chat-vector-be/internal/service"
	"chat-vector-be/pkg/embedding"
	"chat-vector-be/pkg/llm/ollama"
	"chat-vector-be/pkg/wikipedia"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController      controller.IChatController
	SessionController   controller.ISessionController
	QueryController     controller.IQueryController
	FactCheckController controller.IFactCheckController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db, vectorDB *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// The vector index lives on its own connection so the two stores
	// fail independently.
	vectorRepo := implementation.NewChatEmbeddingRepository(vectorDB)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := service.NewPublisherService(cfg.Topics.VectorCleanup, pubSub)
	consumer := service.NewConsumerService(pubSub, cfg.Topics.VectorCleanup, vectorRepo, sysLogger)

	// 3. Providers
	embeddingProvider := embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	wikiClient := wikipedia.NewClient("")

	// 4. Services
	chatService := service.NewChatService(uowFactory, vectorRepo, embeddingProvider, llmProvider, publisher, sysLogger)
	sessionService := service.NewSessionService(uowFactory, vectorRepo, embeddingProvider, publisher, sysLogger)
	queryService := service.NewQueryService(uowFactory, vectorRepo, embeddingProvider, contract.CosineScore, sysLogger)
	factCheckService := service.NewFactCheckService(wikiClient, sysLogger)

	// 5. Controllers
	return &Container{
		ChatController:      controller.NewChatController(chatService),
		SessionController:   controller.NewSessionController(sessionService),
		QueryController:     controller.NewQueryController(queryService),
		FactCheckController: controller.NewFactCheckController(factCheckService),
		ConsumerService:     consumer,
		Logger:              sysLogger,
	}
}
