package dialogue

// #region imports
import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// #endregion

// #region client
// GeminiClient implements Generator against the Gemini API.
type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a Gemini-backed generator. A missing API key is a
// configuration error: the session cannot start without it.
func NewGeminiClient(ctx context.Context, apiKey, modelName string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiClient{client: client, modelName: modelName}, nil
}

// Close shuts down the underlying API client.
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

// #endregion client

// #region generate
// Generate sends the transcript to the model and returns the raw reply text,
// hidden metadata block included.
func (c *GeminiClient) Generate(ctx context.Context, system string, history []Message) (string, error) {
	if len(history) == 0 {
		return "", fmt.Errorf("empty history")
	}
	last := history[len(history)-1]
	if last.Role != RoleUser {
		return "", fmt.Errorf("history must end with a user message")
	}

	model := c.client.GenerativeModel(c.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	chat := model.StartChat()
	chat.History = toContents(history[:len(history)-1])

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", fmt.Errorf("send message: %w", err)
	}
	return responseText(resp)
}

// #endregion generate

// #region helpers
func toContents(msgs []Message) []*genai.Content {
	contents := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		contents[i] = &genai.Content{
			Role:  string(m.Role),
			Parts: []genai.Part{genai.Text(m.Content)},
		}
	}
	return contents
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from model")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return b.String(), nil
}

// #endregion helpers
