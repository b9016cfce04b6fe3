package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Kafka    KafkaConfig
	Redis    RedisConfig
	Mollie   MollieConfig
	Checkout CheckoutConfig
}

type ServerConfig struct {
	Port         string        `env:"SERVER_PORT" env-default:":8086"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

type DatabaseConfig struct {
	Host         string        `env:"DB_HOST" env-default:"localhost"`
	Port         string        `env:"DB_PORT" env-default:"3306"`
	Username     string        `env:"DB_USER" env-default:"root"`
	Password     string        `env:"DB_PASSWORD" env-default:""`
	Database     string        `env:"DB_NAME" env-default:"mollie_bridge"`
	MaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" env-default:"5"`
	MaxLifetime  time.Duration `env:"DB_CONN_MAX_LIFETIME" env-default:"5m"`
}

type KafkaConfig struct {
	Brokers  []string `env:"KAFKA_BROKERS" env-default:"localhost:29092"`
	GroupID  string   `env:"KAFKA_GROUP_ID" env-default:"mollie-bridge"`
	MockMode bool     `env:"KAFKA_MOCK_MODE" env-default:"false"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
}

// MollieConfig holds the API endpoint and the bearer tokens used to
// authenticate outbound calls. Tokens can be scoped per sales channel via
// MOLLIE_CHANNEL_TOKENS ("1:live_xxx,2:test_yyy"); calls without a channel
// context use APIToken.
type MollieConfig struct {
	APIBaseURL       string        `env:"MOLLIE_API_BASE_URL" env-default:"https://api.mollie.com/v2"`
	APIToken         string        `env:"MOLLIE_API_TOKEN" env-default:""`
	ChannelTokensRaw string        `env:"MOLLIE_CHANNEL_TOKENS" env-default:""`
	Timeout          time.Duration `env:"MOLLIE_HTTP_TIMEOUT" env-default:"30s"`
}

type CheckoutConfig struct {
	CompletionURL string `env:"CHECKOUT_COMPLETION_URL" env-default:"/customer/checkout"`
	SessionCookie string `env:"CHECKOUT_SESSION_COOKIE" env-default:"shop_session_id"`
}

func Load() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read configuration from environment: %v", err)
	}
	return &cfg
}

// ChannelTokens parses the per-channel token list. Malformed entries are
// skipped rather than fatal so a single bad channel does not take the
// service down.
func (m MollieConfig) ChannelTokens() map[int]string {
	tokens := make(map[int]string)
	if m.ChannelTokensRaw == "" {
		return tokens
	}

	for _, pair := range strings.Split(m.ChannelTokensRaw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), ":", 2)
		if len(parts) != 2 {
			continue
		}
		channelID, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		tokens[channelID] = parts[1]
	}

	return tokens
}
