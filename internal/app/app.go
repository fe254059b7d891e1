package app

import (
	"fmt"
	"net/http"

	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/marketplace-hub/shopping-assistant/internal/api"
	in_memory "github.com/marketplace-hub/shopping-assistant/internal/storage/in-memory"
	key_value "github.com/marketplace-hub/shopping-assistant/internal/storage/key-value"
	"github.com/marketplace-hub/shopping-assistant/internal/usecase"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func Run(cfg *config.Config) error {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	var conversationStorage usecase.ConversationStorage
	if cfg.Redis.Endpoint != "" {
		rdb := redis.NewClient(
			&redis.Options{
				Addr: cfg.Redis.Endpoint,
			},
		)
		conversationStorage = key_value.NewConversationStorage(rdb)
		log.WithField("endpoint", cfg.Redis.Endpoint).Info("using redis conversation storage")
	} else {
		conversationStorage = in_memory.NewConversationStorage()
		log.Info("using in-memory conversation storage")
	}

	conversationUsecase := usecase.NewConversationUsecase(
		usecase.ConversationUsecaseDeps{
			ConversationStorage: conversationStorage,
		}, cfg.Assistant.HistoryWindow,
	)

	catalogUsecase := usecase.NewCatalogUsecase(cfg.Catalog, log)

	strategy, err := usecase.NewAssistantStrategy(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create assistant strategy: %w", err)
	}

	assistantUsecase := usecase.NewAssistantUsecase(
		usecase.AssistantUsecaseDeps{
			Conversation: conversationUsecase,
			Catalog:      catalogUsecase,
			Strategy:     strategy,
		}, cfg.Assistant, log,
	)

	server := api.NewServer(assistantUsecase, cfg.Assistant.Provider, log)

	log.WithFields(
		logrus.Fields{
			"address":  cfg.HTTP.Address,
			"provider": cfg.Assistant.Provider,
		},
	).Info("starting assistant server")
	return http.ListenAndServe(cfg.HTTP.Address, server.Router())
}
