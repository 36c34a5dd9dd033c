package bootstrap

import (
	"context"
	"log"

	"devonaut-be/internal/config"
	"devonaut-be/internal/controller"
	"devonaut-be/internal/handler"
	"devonaut-be/internal/pkg/logger"
	"devonaut-be/internal/repository/memory"
	"devonaut-be/internal/repository/unitofwork"
	"devonaut-be/internal/service"
	"devonaut-be/internal/websocket"
	"devonaut-be/pkg/llm/factory"
	pktNats "devonaut-be/pkg/nats"
	"devonaut-be/pkg/sandbox"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	UserController       controller.IUserController
	AiController         controller.IAiController
	CodeController       controller.ICodeController
	AssignmentController controller.IAssignmentController
	WorkspaceController  controller.IWorkspaceController
	TeacherController    controller.ITeacherController

	// Background services (exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService *service.NotificationService

	// WebSockets & notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. In-process event bus for keystroke snapshots
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. LLM provider
	apiKey := cfg.Ai.AnthropicKey
	modelName := cfg.Ai.AnthropicModel
	if cfg.Ai.Provider == "ollama" {
		modelName = cfg.Ai.OllamaModel
	}
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.Provider,
		modelName,
		cfg.Ai.OllamaBaseURL,
		apiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.Provider, modelName)

	conversationRepo := memory.NewConversationRepository()

	// 4. Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// Docker sandbox
	runner, err := sandbox.NewDockerRunner(sandbox.Config{
		Image:          cfg.Sandbox.Image,
		TimeoutSeconds: cfg.Sandbox.TimeoutSeconds,
		MemoryLimitMB:  cfg.Sandbox.MemoryLimitMB,
		MaxConcurrent:  cfg.Sandbox.MaxConcurrent,
		MaxPerUser:     cfg.Sandbox.MaxPerUser,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize sandbox runner: %v", err)
	}

	// 5. Services
	chatLogger := logger.NewIsolatedLogger("logs/chat.log")

	authService := service.NewAuthService(uowFactory, cfg, natsPub)
	userService := service.NewUserService(uowFactory)
	chatService := service.NewChatService(uowFactory, llmProvider, conversationRepo, cfg, chatLogger)
	codeService := service.NewCodeService(runner, natsPub, sysLogger)
	keystrokeService := service.NewKeystrokeService(pubSub, uowFactory)
	assignmentService := service.NewAssignmentService(uowFactory, natsPub)
	workspaceService := service.NewWorkspaceService(uowFactory)

	consumerService := service.NewConsumerService(
		pubSub,
		service.KeystrokeTopic,
		uowFactory,
		sysLogger,
	)

	notifService := service.NewNotificationService(uowFactory, natsSub, wsHub, wsLogger)
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService, cfg),
		UserController:       controller.NewUserController(userService, sysLogger),
		AiController:         controller.NewAiController(chatService, chatLogger),
		CodeController:       controller.NewCodeController(codeService, keystrokeService),
		AssignmentController: controller.NewAssignmentController(assignmentService),
		WorkspaceController:  controller.NewWorkspaceController(workspaceService),
		TeacherController:    controller.NewTeacherController(userService),

		ConsumerService:     consumerService,
		NotificationService: notifService,

		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
	}
}
