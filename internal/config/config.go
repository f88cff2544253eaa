package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration. It is built once at startup and
// treated as read-only afterward.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Agent identity with the hosting runtime.
	AgentName    string
	RuntimeWSURL string

	// Scheduling webhook (availability lookups).
	SlotWebhookURL        string
	SlotWebhookTimeout    time.Duration
	SlotWebhookPhoneField string

	// Clinic parameters.
	ClinicTimezone  string
	ClinicOpenHour  int
	ClinicCloseHour int

	// Caller handling.
	DefaultCallerPhone string
	RejectMessage      string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AgentName:    getEnv("AGENT_NAME", "symrax"),
		RuntimeWSURL: getEnv("RUNTIME_WS_URL", ""),

		SlotWebhookURL:        getEnv("SLOT_WEBHOOK_URL", ""),
		SlotWebhookTimeout:    getEnvAsDuration("SLOT_WEBHOOK_TIMEOUT", 10*time.Second),
		SlotWebhookPhoneField: getEnv("SLOT_WEBHOOK_PHONE_FIELD", "Phone Number"),

		ClinicTimezone:  getEnv("CLINIC_TIMEZONE", "America/Toronto"),
		ClinicOpenHour:  getEnvAsInt("CLINIC_OPEN_HOUR", 9),
		ClinicCloseHour: getEnvAsInt("CLINIC_CLOSE_HOUR", 17),

		DefaultCallerPhone: getEnv("DEFAULT_CALLER_PHONE", "4168398090"),
		RejectMessage: getEnv("REJECT_MESSAGE",
			"I'm sorry, we cannot accept calls from blocked or unknown numbers. "+
				"Please call back with caller ID enabled. Goodbye."),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
