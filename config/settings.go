package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	ClassifierBackendHugot       = "hugot"
	ClassifierBackendHuggingFace = "huggingface"
	ClassifierBackendOpenAI      = "openai"
	ClassifierBackendNone        = "none"
)

type Settings struct {
	Env      string
	LogLevel string

	HTTPAddr     string
	MaxBodyBytes int64

	ClassifierBackend  string
	ClassifierTimeout  time.Duration
	SentimentTimeout   time.Duration
	SentimentFallback  bool
	HealthcheckPeriod  time.Duration
	ScoringPolicyPath  string
	HFEmotionEndpoint  string
	HFHealthEndpoint   string
	HugotModelDir      string
	HugotModelName     string
	OpenAIAPIKey       string
	OpenAIModel        string
	ValkeyInitAddress  string
	ValkeyPassword     string
	ValkeyTLS          bool
	KafkaBroker        string
	KafkaGroupID       string
	KafkaRequestTopic  string
	KafkaResultTopic   string
	KafkaResultBatch   int
	KafkaResultTimeout time.Duration
}

// GetSettings reads the process environment. Call LoadEnv first so values
// from config/envs are visible.
func GetSettings() Settings {
	return Settings{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		HTTPAddr:     getEnv("HTTP_ADDR", ":8080"),
		MaxBodyBytes: int64(getEnvInt("MAX_BODY_BYTES", 65536)),

		ClassifierBackend: strings.ToLower(getEnv("CLASSIFIER_BACKEND", ClassifierBackendHuggingFace)),
		ClassifierTimeout: getEnvDuration("CLASSIFIER_TIMEOUT", 5*time.Second),
		SentimentTimeout:  getEnvDuration("SENTIMENT_TIMEOUT", 2*time.Second),
		SentimentFallback: getEnvBool("SENTIMENT_NEUTRAL_FALLBACK", false),
		HealthcheckPeriod: getEnvDuration("HEALTHCHECK_INTERVAL", 15*time.Second),
		ScoringPolicyPath: getEnv("SCORING_POLICY_PATH", ""),
		HFEmotionEndpoint: getEnv("HF_EMOTION_ENDPOINT", "https://spacesedan-emotion-classifier.hf.space/classify"),
		HFHealthEndpoint:  getEnv("HF_HEALTH_ENDPOINT", "https://spacesedan-emotion-classifier.hf.space/health"),
		HugotModelDir:     getEnv("HUGOT_MODEL_DIR", "./models"),
		HugotModelName:    getEnv("HUGOT_MODEL_NAME", "j-hartmann/emotion-english-distilroberta-base"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		ValkeyInitAddress: getEnv("VALKEY_INIT_ADDRESS", "localhost:6379"),
		ValkeyPassword:    getEnv("VALKEY_PASSWORD", ""),
		ValkeyTLS:         getEnvBool("VALKEY_TLS", false),

		KafkaBroker:        getEnv("KAFKA_BROKER", "localhost:29092"),
		KafkaGroupID:       getEnv("KAFKA_CONSUMER_GROUP_ID", "moodlens-consumer-group"),
		KafkaRequestTopic:  getEnv("KAFKA_REQUEST_TOPIC", "analysis-request"),
		KafkaResultTopic:   getEnv("KAFKA_RESULT_TOPIC", "analysis-results"),
		KafkaResultBatch:   getEnvInt("KAFKA_RESULT_BATCH_SIZE", 10),
		KafkaResultTimeout: getEnvDuration("KAFKA_RESULT_BATCH_TIMEOUT", 5*time.Second),
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("[Config] Invalid integer, using default",
			slog.String("key", key),
			slog.Int("default", defaultValue))
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("[Config] Invalid boolean, using default",
			slog.String("key", key),
			slog.Bool("default", defaultValue))
		return defaultValue
	}
	return b
}

// getEnvDuration accepts Go duration strings ("1500ms") or whole seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	slog.Warn("[Config] Invalid duration, using default",
		slog.String("key", key),
		slog.Duration("default", defaultValue))
	return defaultValue
}
