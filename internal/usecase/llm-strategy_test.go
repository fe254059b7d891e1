package usecase

import (
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/marketplace-hub/shopping-assistant/internal/model"
	"github.com/marketplace-hub/shopping-assistant/pkg/local"
	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

type fakeCompleter struct {
	reply        string
	err          error
	lastMessages []openai.ChatCompletionMessage
}

func (f *fakeCompleter) Complete(
	_ context.Context, messages []openai.ChatCompletionMessage, _ bool,
) (string, error) {
	f.lastMessages = messages
	return f.reply, f.err
}

func newTestLLMStrategy(completer ChatCompleter) *LLMStrategy {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewLLMStrategy(completer, local.Eng, log)
}

func TestClassifyParsesIntent(t *testing.T) {
	completer := &fakeCompleter{
		reply: `{"wantsNewSearch": true, "searchTerms": "laptop notebook", "maxPrice": 800, "sourcePreference": "all"}`,
	}
	strategy := newTestLLMStrategy(completer)

	intent := strategy.Classify(context.Background(), "find a laptop under $800", model.Conversation{})
	if !intent.WantsNewSearch || intent.SearchTerms != "laptop notebook" || intent.MaxPrice != 800 {
		t.Errorf("unexpected intent: %+v", intent)
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	completer := &fakeCompleter{
		reply: `{"isFollowUp": true, "followUpIntent": "cheapest"}`,
	}
	strategy := newTestLLMStrategy(completer)
	conversation := model.Conversation{
		LastProducts: []model.Product{{Name: "Laptop", Price: 700, Source: model.SourceInternal}},
		LastQuery:    "laptop",
	}

	first := strategy.Classify(context.Background(), "which is cheapest?", conversation)
	second := strategy.Classify(context.Background(), "which is cheapest?", conversation)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("classification is not idempotent: %+v vs %+v", first, second)
	}
}

func TestClassifyFailsSoftToDefaultIntent(t *testing.T) {
	tests := []struct {
		name      string
		completer *fakeCompleter
	}{
		{name: "completion error", completer: &fakeCompleter{err: errors.New("timeout")}},
		{name: "non-json reply", completer: &fakeCompleter{reply: "sorry, I cannot do that"}},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				strategy := newTestLLMStrategy(tt.completer)
				intent := strategy.Classify(context.Background(), "show me headphones", model.Conversation{})
				want := model.Intent{SearchTerms: "show me headphones"}
				if !reflect.DeepEqual(intent, want) {
					t.Errorf("expected default intent %+v, got %+v", want, intent)
				}
			},
		)
	}
}

func TestClassifyPromptMentionsShownProducts(t *testing.T) {
	completer := &fakeCompleter{reply: `{"isGeneralChat": true}`}
	strategy := newTestLLMStrategy(completer)

	strategy.Classify(context.Background(), "hi", model.Conversation{})
	if len(completer.lastMessages) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(completer.lastMessages))
	}
	userPrompt := completer.lastMessages[1].Content
	if !containsAny(userPrompt, []string{"No products have been shown"}) {
		t.Errorf("expected empty-products marker in prompt, got %q", userPrompt)
	}

	conversation := model.Conversation{
		LastProducts: []model.Product{{Name: "Noise-cancelling headphones", Price: 199.99, Currency: "USD", Source: model.SourceEbay}},
		LastQuery:    "headphones",
	}
	strategy.Classify(context.Background(), "now check our store", conversation)
	userPrompt = completer.lastMessages[1].Content
	if !containsAny(userPrompt, []string{"Noise-cancelling headphones", "headphones"}) {
		t.Errorf("expected shown products in prompt, got %q", userPrompt)
	}
}

func TestAnalyzeFollowUpFallsBackToClarification(t *testing.T) {
	strategy := newTestLLMStrategy(&fakeCompleter{reply: "not json at all"})
	result := strategy.AnalyzeFollowUp(context.Background(), "which one?", model.Conversation{})
	if result.Message != msgClarifyFollowUp.Text(local.Eng) {
		t.Errorf("expected clarification message, got %q", result.Message)
	}
	if result.BestValue != nil || result.Premium != nil {
		t.Errorf("expected no picks on fallback, got %+v", result)
	}
}

func TestSelectRelevantKeepsAllOnFailure(t *testing.T) {
	strategy := newTestLLMStrategy(&fakeCompleter{err: errors.New("unreachable")})
	candidates := []model.Product{{Name: "a"}, {Name: "b"}, {Name: "c"}}

	selection := strategy.SelectRelevant(context.Background(), "laptops", model.Intent{}, candidates)
	if !reflect.DeepEqual(selection.RelevantIndexes, []int{0, 1, 2}) {
		t.Errorf("expected all indexes on failure, got %v", selection.RelevantIndexes)
	}
	if selection.Message != msgTroubleAnalyzing.Text(local.Eng) {
		t.Errorf("unexpected fallback message: %q", selection.Message)
	}
}

func TestTruncateCutsOnRuneBoundaries(t *testing.T) {
	description := strings.Repeat("é", 100)

	got := truncate(description, 80)
	if !utf8.ValidString(got) {
		t.Fatalf("truncation produced invalid UTF-8: %q", got)
	}
	if got != strings.Repeat("é", 80)+"..." {
		t.Errorf("expected 80 runes plus ellipsis, got %q", got)
	}
	if short := truncate("casque audio", 80); short != "casque audio" {
		t.Errorf("short strings must pass through unchanged, got %q", short)
	}
}

func TestUnmarshalModelJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "bare object", raw: `{"message": "hi"}`},
		{name: "fenced block", raw: "Sure!\n```json\n{\"message\": \"hi\"}\n```\nanything else?"},
		{name: "object inside text", raw: `here you go {"message": "hi"} done`},
		{name: "no object", raw: "there is nothing here", wantErr: true},
		{name: "broken object", raw: `{"message": `, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(
			tt.name, func(t *testing.T) {
				var payload struct {
					Message string `json:"message"`
				}
				err := unmarshalModelJSON(tt.raw, &payload)
				if tt.wantErr {
					if err == nil {
						t.Fatal("expected error")
					}
					return
				}
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if payload.Message != "hi" {
					t.Errorf("expected message 'hi', got %q", payload.Message)
				}
			},
		)
	}
}
