package hosting

import (
	"strconv"
	"time"

	"github.com/Negosyo-Digital/platform-backend/pkg/env"
)

type Config struct {
	baseURL    string
	token      string
	baseDomain string
	timeout    time.Duration
}

func NewConfig() *Config {
	timeoutSeconds, err := strconv.Atoi(env.GetEnv("HOSTING_TIMEOUT", "15"))
	if err != nil {
		timeoutSeconds = 15
	}
	return &Config{
		baseURL:    env.GetEnv("HOSTING_API_URL", "https://api.netlify.com/api/v1"),
		token:      env.GetEnv("HOSTING_TOKEN", ""),
		baseDomain: env.GetEnv("HOSTING_BASE_DOMAIN", "netlify.app"),
		timeout:    time.Duration(timeoutSeconds) * time.Second,
	}
}

// BaseDomain is the suffix every hosted site URL must carry; publish uses it
// to validate locally stored URLs before trusting them.
func (c *Config) BaseDomain() string {
	return c.baseDomain
}
