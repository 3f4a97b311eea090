package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	"emoticore-be/internal/config"
	"emoticore-be/internal/controller"
	"emoticore-be/internal/pkg/logger"
	"emoticore-be/internal/pkg/mailer"
	"emoticore-be/internal/pkg/ratelimit"
	"emoticore-be/internal/pkg/serverutils"
	"emoticore-be/internal/prompt"
	"emoticore-be/internal/repository/memory"
	"emoticore-be/internal/repository/unitofwork"
	"emoticore-be/internal/service"
	"emoticore-be/pkg/billing/midtrans"
	"emoticore-be/pkg/events"
	"emoticore-be/pkg/llm/factory"
	pktNats "emoticore-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController    controller.IChatController
	BillingController controller.IBillingController
	ProfileController controller.IProfileController

	// Middleware
	AuthMiddleware fiber.Handler
	ChatLimiter    fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Services reused outside HTTP (cmd tools)
	ChatService service.IChatService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	systemPrompt, err := prompt.Load(cfg.Chat.SystemPromptFile)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}

	llmProvider, err := factory.NewLLMProvider(cfg.Ai, cfg.App.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}
	if !llmProvider.Available() {
		sysLogger.Warn("Bootstrap", "Completion provider not configured, chat will answer with the configuration fallback", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
		})
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	c := &Container{Logger: sysLogger}

	// NATS is optional; billing events are dropped while it is unreachable
	var eventPublisher events.Publisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
		c.closers = append(c.closers, natsPub.Close)
	}

	// Redis backs the chat limiter when reachable, otherwise counters stay in memory
	var limiterStorage fiber.Storage
	if rdb := connectRedis(cfg.App.RedisURL); rdb != nil {
		limiterStorage = ratelimit.NewRedisStorage(rdb)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	}

	planCache := memory.NewPlanCache(time.Duration(cfg.Billing.PlanCacheTTLMinutes) * time.Minute)
	gateway := midtrans.NewGateway(cfg.Billing.MidtransServerKey, cfg.Billing.MidtransIsProduction)

	// 3. Services
	publisherService := service.NewPublisherService(cfg.Chat.EventTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Chat.EventTopic, uowFactory, sysLogger)

	chatService := service.NewChatService(uowFactory, llmProvider, publisherService, sysLogger, service.ChatServiceConfig{
		SystemPrompt:     systemPrompt.Content,
		AtomicNewSession: cfg.Chat.AtomicNewSession,
	})
	billingService := service.NewBillingService(
		uowFactory,
		gateway,
		planCache,
		emailService,
		eventPublisher,
		sysLogger,
		cfg.Billing.FinishRedirectURL,
	)
	profileService := service.NewProfileService(uowFactory)

	sysLogger.Info("Bootstrap", "System prompt loaded", map[string]interface{}{
		"version": systemPrompt.Version,
		"name":    systemPrompt.Name,
	})

	// 4. Controllers
	c.ChatController = controller.NewChatController(chatService)
	c.BillingController = controller.NewBillingController(billingService, sysLogger)
	c.ProfileController = controller.NewProfileController(profileService)
	c.AuthMiddleware = serverutils.NewJwtMiddleware(cfg.Auth.JwtSecret)
	c.ChatLimiter = ratelimit.NewChatLimiter(cfg.Chat.RateLimitPerMinute, limiterStorage)
	c.ConsumerService = consumerService
	c.ChatService = chatService
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	return c, nil
}

// Close releases broker and cache connections.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func connectRedis(url string) *redis.Client {
	if url == "" {
		return nil
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: url,
		}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v (rate limiter uses memory)", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
