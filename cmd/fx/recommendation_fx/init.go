package recommendation_fx

import (
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/masa-png/gadget-concierge-sub001/internal/repositories"
	"github.com/masa-png/gadget-concierge-sub001/internal/services"
	mem "github.com/masa-png/gadget-concierge-sub001/pkg/memcache"
	"github.com/masa-png/gadget-concierge-sub001/pkg/utils"
)

var Module = fx.Provide(
	ProvideGenerationClient,
	provideInFlightWindow,
	provideRecommendationRepo,
	provideRecommendationService)

// AgentConfig holds the generation agent settings read from the
// environment.
type AgentConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideGenerationClient creates the generation client based on
// environment variables.
func ProvideGenerationClient() (utils.GenerationClientInterface, error) {
	config := getAgentConfig()

	log.Printf("Initializing %s generation client with model: %s", config.Provider, config.Model)

	client, err := utils.NewGenerationClient(config.Provider, config.APIKey, config.Model)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation client: %w", err)
	}
	return client, nil
}

func provideInFlightWindow() *mem.InFlightWindow {
	// Slightly above the agent call timeout so a stuck generation
	// cannot block its session forever.
	return mem.NewInFlightWindow(45 * time.Second)
}

func provideRecommendationRepo(db *gorm.DB) repositories.RecommendationRepository {
	return repositories.NewRecommendationRepository(db)
}

func provideRecommendationService(
	sessionRepo repositories.SessionRepository,
	answerRepo repositories.AnswerRepository,
	categoryRepo repositories.CategoryRepository,
	productRepo repositories.ProductRepository,
	recommendationRepo repositories.RecommendationRepository,
	aiClient utils.GenerationClientInterface,
	inflight *mem.InFlightWindow,
	logger *zap.Logger,
) services.RecommendationServiceInterface {
	return services.NewRecommendationService(
		sessionRepo,
		answerRepo,
		categoryRepo,
		productRepo,
		recommendationRepo,
		aiClient,
		inflight,
		logger,
	)
}

// getAgentConfig reads configuration from environment variables.
func getAgentConfig() AgentConfig {
	provider := getEnvWithDefault("AI_PROVIDER", "gemini")
	apiKey := os.Getenv("AI_API_KEY")
	model := os.Getenv("AI_MODEL")

	if apiKey == "" {
		log.Fatal("AI_API_KEY is required")
	}

	return AgentConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
