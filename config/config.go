package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type OpenAI struct {
	OpenAIAPIKey     string        `env:"OPENAI_API_KEY"`
	OpenAIModel      string        `yaml:"openai_model" env:"OPENAI_MODEL" env-default:"gpt-4o-mini"`
	OpenAIBaseURL    string        `yaml:"openai_base_url" env:"OPENAI_BASE_URL"`
	ModelTemperature float32       `yaml:"model_temperature" env:"MODEL_TEMPERATURE" env-default:"0.7"`
	MaxTokens        int           `yaml:"max_tokens" env:"MAX_TOKENS" env-default:"500"`
	RequestTimeout   time.Duration `yaml:"request_timeout" env:"OPENAI_REQUEST_TIMEOUT" env-default:"30s"`
}

type Catalog struct {
	ProductServiceURL string        `yaml:"product_service_url" env:"PRODUCT_SERVICE_URL" env-default:"http://localhost:8081"`
	EbaySearchLimit   int           `yaml:"ebay_search_limit" env:"EBAY_SEARCH_LIMIT" env-default:"50"`
	RequestTimeout    time.Duration `yaml:"request_timeout" env:"CATALOG_REQUEST_TIMEOUT" env-default:"10s"`
}

type Assistant struct {
	Provider       string `yaml:"provider" env:"ASSISTANT_PROVIDER" env-default:"openai"`
	HistoryWindow  int    `yaml:"history_window" env:"HISTORY_WINDOW" env-default:"12"`
	CandidateLimit int    `yaml:"candidate_limit" env:"CANDIDATE_LIMIT" env-default:"40"`
	Language       string `yaml:"language" env:"ASSISTANT_LANGUAGE" env-default:"en"`
}

type Redis struct {
	Endpoint string `yaml:"endpoint" env:"REDIS_ENDPOINT"`
}

type HTTP struct {
	Address string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8090"`
}

type Config struct {
	OpenAI    OpenAI    `yaml:"openai"`
	Catalog   Catalog   `yaml:"catalog"`
	Assistant Assistant `yaml:"assistant"`
	Redis     Redis     `yaml:"redis"`
	HTTP      HTTP      `yaml:"http"`
}

func LoadConfig(cfgPath string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(cfgPath, &cfg); err != nil {
		return nil, err
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
