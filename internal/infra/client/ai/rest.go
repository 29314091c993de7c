package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Negosyo-Digital/platform-backend/internal/application/errs"
	"github.com/Negosyo-Digital/platform-backend/internal/domain/content"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
)

const extractionPrompt = `You are given the transcript of an interview with a small business owner.
Extract the business content as a single JSON object with exactly these keys:
"tagline" (string, one short sentence), "about" (string, 2-4 sentences),
"services" (array of {"name","description"}), "contact" ({"phone","email","address"}, empty strings when unknown),
"highlights" (array of short strings). Respond with the JSON object only, no prose, no code fences.`

type Client struct {
	cfg      Config
	client   openai.Client
	download http.Client
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:      cfg,
		client:   openai.NewClient(option.WithAPIKey(cfg.apiKey), option.WithBaseURL(cfg.baseURL)),
		download: http.Client{Timeout: 60 * time.Second},
	}
}

// ExtractContent asks the model for structured business content. A malformed
// reply is a recoverable provider failure: retried once, then surfaced as an
// upstream error rather than a crash.
func (c *Client) ExtractContent(ctx context.Context, transcript string) (*content.BusinessContent, error) {
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := c.complete(ctx, transcript)
		if err != nil {
			lastErr = err
			continue
		}
		var extracted content.BusinessContent
		if err := json.Unmarshal([]byte(stripFences(raw)), &extracted); err != nil {
			slog.Warn("extraction returned malformed JSON", "attempt", attempt, "err", err)
			lastErr = fmt.Errorf("malformed extraction payload, %v", err)
			continue
		}
		return &extracted, nil
	}
	return nil, errs.UpstreamError{Service: "extraction", Err: lastErr}
}

func (c *Client) complete(ctx context.Context, transcript string) (string, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfSystem: &openai.ChatCompletionSystemMessageParam{
			Content: openai.ChatCompletionSystemMessageParamContentUnion{
				OfString: param.Opt[string]{Value: extractionPrompt},
			},
		},
	})
	messages = append(messages, openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfString: param.Opt[string]{Value: transcript},
			},
		},
	})

	chatCompletion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:               c.cfg.model,
		Messages:            messages,
		MaxCompletionTokens: param.Opt[int64]{Value: c.cfg.maxTokens},
		N:                   param.Opt[int64]{Value: 1},
		Temperature:         param.Opt[float64]{Value: 0.2},
	})
	if err != nil {
		return "", err
	}
	if len(chatCompletion.Choices) == 0 {
		return "", fmt.Errorf("no choices in completion")
	}
	return chatCompletion.Choices[0].Message.Content, nil
}

// Transcribe downloads the interview recording and runs it through the
// whisper-style transcription endpoint.
func (c *Client) Transcribe(ctx context.Context, mediaURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", mediaURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.download.Do(req)
	if err != nil {
		return "", errs.UpstreamError{Service: "transcription", Err: fmt.Errorf("fetching media, %v", err)}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errs.UpstreamError{Service: "transcription", Err: fmt.Errorf("media fetch status %d", resp.StatusCode)}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.UpstreamError{Service: "transcription", Err: err}
	}

	transcription, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		Model: c.cfg.transcribeModel,
		File:  openai.File(bytes.NewReader(data), fileNameFromURL(mediaURL), resp.Header.Get("Content-Type")),
	})
	if err != nil {
		return "", errs.UpstreamError{Service: "transcription", Err: err}
	}
	return transcription.Text, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func fileNameFromURL(mediaURL string) string {
	if idx := strings.LastIndex(mediaURL, "/"); idx >= 0 && idx < len(mediaURL)-1 {
		name := mediaURL[idx+1:]
		if q := strings.Index(name, "?"); q > 0 {
			name = name[:q]
		}
		if name != "" {
			return name
		}
	}
	return "interview.mp3"
}
