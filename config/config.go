package config

import (
	"os"
	"strconv"
	"time"

	"digest_worker/pkg/apperr"
)

// SummaryDestination is where the finished report goes: a configured
// recipient address, or stdout when unset. Modeled explicitly so the
// dispatch branch never rests on a truthy string check.
type SummaryDestination struct {
	address    string
	configured bool
}

// Recipient returns a configured destination.
func Recipient(address string) SummaryDestination {
	return SummaryDestination{address: address, configured: true}
}

// Unset returns the stdout fallback destination.
func Unset() SummaryDestination {
	return SummaryDestination{}
}

// Configured reports whether a recipient address is set.
func (d SummaryDestination) Configured() bool { return d.configured }

// Address returns the recipient address; only meaningful when Configured.
func (d SummaryDestination) Address() string { return d.address }

type Config struct {
	Port        string
	Environment string

	// Microsoft identity (client-credentials flow)
	MicrosoftTenantID     string
	MicrosoftClientID     string
	MicrosoftClientSecret string

	// Graph mailboxes
	TargetMailbox  string
	SenderMailbox  string
	MailFolder     string
	UnreadPageSize int

	// Report dispatch
	SummaryDestination SummaryDestination

	// Azure OpenAI
	OpenAIEndpoint   string
	OpenAIAPIKey     string
	OpenAIAPIVersion string
	OpenAIDeployment string
	LLMMaxTokens     int
	LLMTemperature   float64
	LLMTimeoutSec    int

	// Digest run
	DigestInterval time.Duration
	MarkAsRead     bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),

		MicrosoftTenantID:     getEnv("MICROSOFT_TENANT_ID", ""),
		MicrosoftClientID:     getEnv("MICROSOFT_CLIENT_ID", ""),
		MicrosoftClientSecret: getEnv("MICROSOFT_CLIENT_SECRET", ""),

		TargetMailbox:  getEnv("TARGET_MAILBOX", ""),
		SenderMailbox:  getEnv("SENDER_MAILBOX", ""),
		MailFolder:     getEnv("MAIL_FOLDER", "inbox"),
		UnreadPageSize: getEnvInt("UNREAD_PAGE_SIZE", 50),

		OpenAIEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		OpenAIAPIKey:     getEnv("AZURE_OPENAI_KEY", ""),
		OpenAIAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-02-15-preview"),
		OpenAIDeployment: getEnv("AZURE_OPENAI_DEPLOYMENT", "gpt-4o-mini"),
		LLMMaxTokens:     getEnvInt("LLM_MAX_TOKENS", 512),
		LLMTemperature:   getEnvFloat("LLM_TEMPERATURE", 0.2),
		LLMTimeoutSec:    getEnvInt("LLM_TIMEOUT_SEC", 60),

		DigestInterval: time.Duration(getEnvInt("DIGEST_INTERVAL_HOURS", 168)) * time.Hour,
		MarkAsRead:     getEnvBool("MARK_AS_READ", false),
	}

	if recipient := getEnv("SUMMARY_RECIPIENT", ""); recipient != "" {
		cfg.SummaryDestination = Recipient(recipient)
	} else {
		cfg.SummaryDestination = Unset()
	}

	return cfg, cfg.Validate()
}

// Validate enforces the startup-abort conditions: identity and LLM
// credentials are required, the summary recipient is not.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"MICROSOFT_TENANT_ID", c.MicrosoftTenantID},
		{"MICROSOFT_CLIENT_ID", c.MicrosoftClientID},
		{"MICROSOFT_CLIENT_SECRET", c.MicrosoftClientSecret},
		{"TARGET_MAILBOX", c.TargetMailbox},
		{"AZURE_OPENAI_ENDPOINT", c.OpenAIEndpoint},
		{"AZURE_OPENAI_KEY", c.OpenAIAPIKey},
	}
	for _, r := range required {
		if r.value == "" {
			return apperr.ConfigError("missing required environment variable: " + r.name)
		}
	}
	if c.SummaryDestination.Configured() && c.SenderMailbox == "" {
		return apperr.ConfigError("SUMMARY_RECIPIENT is set but SENDER_MAILBOX is missing")
	}
	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
