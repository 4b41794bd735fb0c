package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	DefaultPort          = "5000"
	DefaultAllowedOrigin = "http://localhost:3000"
	DefaultOTLPEndpoint  = "localhost:4317"
	DefaultServiceName   = "listener-relay"

	// DummyBackendURL is the OpenAI-compatible base URL of loadtest/dummy_backend.go.
	DummyBackendURL = "http://dummy-backend:2000/v1"
)

// Config is read once at startup and passed explicitly to the components
// that need it.
type Config struct {
	// Server
	Port          string
	AllowedOrigin string

	// Completion provider
	Provider string
	APIKey   string
	Model    string
	BaseURL  string

	// Persona
	SystemPrompt string

	// Tracing
	OTelEnabled  bool
	OTelEndpoint string
	ServiceName  string
}

// Load reads a .env file if one exists and builds the Config from the
// process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the Config from the process environment only.
func FromEnv() (*Config, error) {
	providerName := strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI))

	apiKey, err := apiKeyFor(providerName)
	if err != nil {
		return nil, err
	}

	baseURL := os.Getenv("LLM_BASE_URL")
	if os.Getenv("USE_DUMMY_BACKEND") == "1" {
		baseURL = DummyBackendURL
	}

	systemPrompt, err := resolveSystemPrompt()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", DefaultPort),
		AllowedOrigin: getEnvOrDefault("ALLOWED_ORIGIN", DefaultAllowedOrigin),
		Provider:      providerName,
		APIKey:        apiKey,
		Model:         os.Getenv("LLM_MODEL"),
		BaseURL:       baseURL,
		SystemPrompt:  systemPrompt,
		OTelEnabled:   getEnvAsBoolOrDefault("OTEL_ENABLED", false),
		OTelEndpoint:  getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", DefaultOTLPEndpoint),
		ServiceName:   getEnvOrDefault("OTEL_SERVICE_NAME", DefaultServiceName),
	}, nil
}

// apiKeyFor returns the credential for the selected provider. LLM_API_KEY is
// accepted as a fallback for every provider.
func apiKeyFor(providerName string) (string, error) {
	var key string
	switch providerName {
	case ProviderOpenAI:
		key = firstNonEmpty(os.Getenv("OPENAI_API_KEY"), os.Getenv("LLM_API_KEY"))
		if key == "" {
			return "", fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	case ProviderGemini:
		key = firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("LLM_API_KEY"))
		if key == "" {
			return "", fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	default:
		key = os.Getenv("LLM_API_KEY")
	}
	return key, nil
}

func resolveSystemPrompt() (string, error) {
	if prompt := os.Getenv("SYSTEM_PROMPT"); prompt != "" {
		return prompt, nil
	}

	quoteExcerpt := getEnvAsBoolOrDefault("PERSONA_QUOTE_EXCERPT", true)

	if path := os.Getenv("PERSONA_FILE"); path != "" {
		persona, err := LoadPersona(path)
		if err != nil {
			return "", err
		}
		if persona.SystemPrompt != "" {
			return persona.SystemPrompt, nil
		}
		if persona.QuoteExcerpt != nil {
			quoteExcerpt = *persona.QuoteExcerpt
		}
	}

	return BuildSystemPrompt(quoteExcerpt), nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsBoolOrDefault(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
