package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a helpful assistant. Summarize the following news article for a daily newsletter in 3 concise sentences."

// maxInputChars keeps long articles inside the context window of the fixed
// model. Anything useful for a 3-sentence summary fits well under this.
const maxInputChars = 16000

type OpenAISummarizer struct {
	client *openai.Client
	model  openai.ChatModel
}

func NewOpenAISummarizer(apiKey string) *OpenAISummarizer {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAISummarizer{
		client: &client,
		model:  openai.ChatModelGPT3_5Turbo,
	}
}

func (s *OpenAISummarizer) Summarize(ctx context.Context, text string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(truncate(text, maxInputChars)),
		},
	})

	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}

	summary := strings.TrimSpace(resp.Choices[0].Message.Content)
	if summary == "" {
		return "", fmt.Errorf("empty summary from openai")
	}

	return summary, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Cut on a rune boundary so we never send a broken UTF-8 tail.
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
