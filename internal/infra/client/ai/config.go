package ai

import (
	"strconv"

	"github.com/Negosyo-Digital/platform-backend/pkg/env"
)

type Config struct {
	apiKey          string
	baseURL         string
	model           string
	transcribeModel string
	maxTokens       int64
}

// NewConfig targets any OpenAI-compatible endpoint; the default is Groq,
// which serves both the chat and whisper-style transcription APIs.
func NewConfig() Config {
	maxTokens, err := strconv.Atoi(env.GetEnv("AI_MAX_TOKENS", "1024"))
	if err != nil {
		maxTokens = 1024
	}
	return Config{
		apiKey:          env.GetEnv("AI_API_KEY", ""),
		baseURL:         env.GetEnv("AI_BASE_URL", "https://api.groq.com/openai/v1"),
		model:           env.GetEnv("AI_MODEL", "llama-3.3-70b-versatile"),
		transcribeModel: env.GetEnv("AI_TRANSCRIBE_MODEL", "whisper-large-v3"),
		maxTokens:       int64(maxTokens),
	}
}
