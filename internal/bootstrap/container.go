package bootstrap

import (
	"log"

	"guest-concierge-be/internal/config"
	"guest-concierge-be/internal/controller"
	"guest-concierge-be/internal/pkg/logger"
	"guest-concierge-be/internal/pkg/mailer"
	"guest-concierge-be/internal/repository/unitofwork"
	"guest-concierge-be/internal/service"
	"guest-concierge-be/pkg/assist/quota"
	"guest-concierge-be/pkg/assist/retrieval"
	channelFactory "guest-concierge-be/pkg/channel/factory"
	"guest-concierge-be/pkg/embedding"
	llmFactory "guest-concierge-be/pkg/llm/factory"

	pktNats "guest-concierge-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	WebhookController      controller.IWebhookController
	AuthController         controller.IAuthController
	PropertyController     controller.IPropertyController
	DocumentController     controller.IDocumentController
	ConversationController controller.IConversationController
	BillingController      controller.IBillingController

	// Background services, run by main.go
	IndexerService service.IIndexerService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process job bus for knowledge indexing
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	var embeddingProvider embedding.EmbeddingProvider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	case "openai":
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Keys.OpenAI)
		log.Printf("[INFO] Using Embedding Provider: OPENAI")
	default:
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider, err := llmFactory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	dispatcher, err := channelFactory.NewDispatcher(cfg.Channel, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize channel dispatcher: %v", err)
	}
	log.Printf("[INFO] Using Channel Provider: %s", cfg.Channel.Provider)

	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	quotaGate := quota.NewGate(uowFactory, sysLogger)
	retriever := retrieval.NewAssembler(uowFactory, embeddingProvider, sysLogger)

	publisherService := service.NewPublisherService(pubSub, cfg.App.IndexTopic)
	indexerService := service.NewIndexerService(
		pubSub,
		cfg.App.IndexTopic,
		uowFactory,
		embeddingProvider,
		sysLogger,
	)

	messageService := service.NewMessageService(
		uowFactory,
		llmProvider,
		quotaGate,
		retriever,
		dispatcher,
		eventPublisher,
		emailService,
		sysLogger,
	)

	authService := service.NewAuthService(uowFactory)
	propertyService := service.NewPropertyService(uowFactory, publisherService, messageService, sysLogger)
	documentService := service.NewDocumentService(uowFactory, publisherService, sysLogger)
	conversationService := service.NewConversationService(uowFactory)
	billingService := service.NewBillingService(uowFactory, cfg.Billing.MidtransServerKey, cfg.Billing.Environment, sysLogger)

	return &Container{
		WebhookController:      controller.NewWebhookController(messageService, sysLogger),
		AuthController:         controller.NewAuthController(authService),
		PropertyController:     controller.NewPropertyController(propertyService),
		DocumentController:     controller.NewDocumentController(documentService),
		ConversationController: controller.NewConversationController(conversationService, messageService),
		BillingController:      controller.NewBillingController(billingService),

		IndexerService: indexerService,
	}
}
