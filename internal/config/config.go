package config

import (
	"time"

	"github.com/Samir-atra/courtesy-agent/pkg/config"
)

// Config stores environment configuration for the courier.
type Config struct {
	ContactsFile    string
	MessageContext  string
	PromptTemplate  string
	LLMProvider     string
	LLMAPIKey       string
	LLMAPIURL       string
	LLMMaxTokens    int
	ModelCandidates []string
	QuotaCooldown   time.Duration
	RetryBudget     int
	StopOnError     bool
	SimulateEmail   bool
	SenderName      string
	SenderEmail     string
	SMTPHost        string
	SMTPPort        string
	SMTPUser        string
	SMTPPassword    string
	SendPacing      time.Duration
	DatabaseURL     string
}

// DefaultModelCandidates is the ranked model list used when LLM_MODELS is unset.
var DefaultModelCandidates = []string{"gemini-2.5-flash", "gemini-2.5-flash-lite", "gemini-2.0-flash"}

// LoadConfig loads the courier configuration from environment variables.
func LoadConfig() Config {
	return Config{
		ContactsFile:    config.GetEnv("CONTACTS_FILE", "contacts.csv"),
		MessageContext:  config.GetEnv("MESSAGE_CONTEXT", "sending a courtesy message"),
		PromptTemplate:  config.GetEnv("LLM_PROMPT", ""),
		LLMProvider:     config.GetEnv("LLM_PROVIDER", "gemini"),
		LLMAPIKey:       config.GetEnv("LLM_API_KEY", config.GetEnv("GEMINI_API_KEY", "")),
		LLMAPIURL:       config.GetEnv("LLM_API_URL", ""),
		LLMMaxTokens:    config.GetEnvInt("LLM_MAX_TOKENS", 1024),
		ModelCandidates: config.GetEnvList("LLM_MODELS", DefaultModelCandidates),
		QuotaCooldown:   config.GetEnvDuration("LLM_QUOTA_COOLDOWN", 60*time.Second),
		RetryBudget:     config.GetEnvInt("LLM_RETRY_BUDGET", 2),
		StopOnError:     config.GetEnvBool("STOP_ON_ERROR", true),
		SimulateEmail:   config.GetEnvBool("SIMULATE_EMAIL_SEND", true),
		SenderName:      config.GetEnv("SENDER_NAME", ""),
		SenderEmail:     config.GetEnv("SENDER_EMAIL", ""),
		SMTPHost:        config.GetEnv("SMTP_HOST", ""),
		SMTPPort:        config.GetEnv("SMTP_PORT", "587"),
		SMTPUser:        config.GetEnv("SMTP_USER", ""),
		SMTPPassword:    config.GetEnv("SMTP_PASSWORD", ""),
		SendPacing:      config.GetEnvDuration("SEND_PACING", 0),
		DatabaseURL:     config.GetEnv("DATABASE_URL", ""),
	}
}
