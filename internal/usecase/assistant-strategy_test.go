package usecase

import (
	"io"
	"testing"

	"github.com/marketplace-hub/shopping-assistant/config"
	"github.com/sirupsen/logrus"
)

func TestNewAssistantStrategy(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	tests := []struct {
		name     string
		cfg      config.Config
		wantErr  bool
		wantType any
	}{
		{
			name: "rule-based provider",
			cfg: config.Config{
				Assistant: config.Assistant{Provider: ProviderRuleBased, Language: "en"},
			},
			wantType: &RuleBasedStrategy{},
		},
		{
			name: "openai provider with key",
			cfg: config.Config{
				OpenAI:    config.OpenAI{OpenAIAPIKey: "sk-test", OpenAIModel: "gpt-4o-mini"},
				Assistant: config.Assistant{Provider: ProviderOpenAI, Language: "en"},
			},
			wantType: &LLMStrategy{},
		},
		{
			name: "openai provider without key is a hard error",
			cfg: config.Config{
				Assistant: config.Assistant{Provider: ProviderOpenAI, Language: "en"},
			},
			wantErr: true,
		},
		{
			name: "unknown provider",
			cfg: config.Config{
				Assistant: config.Assistant{Provider: "oracle", Language: "en"},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				strategy, err := NewAssistantStrategy(&tt.cfg, log)
				if tt.wantErr {
					if err == nil {
						t.Fatal("expected error")
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				switch tt.wantType.(type) {
				case *RuleBasedStrategy:
					if _, ok := strategy.(*RuleBasedStrategy); !ok {
						t.Errorf("expected *RuleBasedStrategy, got %T", strategy)
					}
				case *LLMStrategy:
					if _, ok := strategy.(*LLMStrategy); !ok {
						t.Errorf("expected *LLMStrategy, got %T", strategy)
					}
				}
			},
		)
	}
}
