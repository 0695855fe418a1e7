package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/Alwanly/sensu-relay/internal/broadcast"
	"github.com/Alwanly/sensu-relay/internal/format"
	"github.com/Alwanly/sensu-relay/pkg/validator"
)

// Chat backends.
const (
	ChatBackendLog     = "log"
	ChatBackendRedis   = "redis"
	ChatBackendWebhook = "webhook"
)

// Duration accepts "10s" style strings in the config file.
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := parseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

type RelayConfig struct {
	ServerAddr   string           `toml:"addr" validate:"required"`
	BodyLimit    int              `toml:"body_limit" validate:"gt=0"`
	DatabasePath string           `toml:"database_path"`
	Monitoring   MonitoringConfig `toml:"monitoring"`
	Dashboard    DashboardConfig  `toml:"dashboard"`
	Broadcast    BroadcastConfig  `toml:"broadcast"`
	Message      MessageConfig    `toml:"message"`
	Operator     Credentials      `toml:"operator"`
	Webhook      Credentials      `toml:"webhook"`
	Chat         ChatConfig       `toml:"chat"`
	Redis        *RedisConfig     `toml:"redis"`
}

type MonitoringConfig struct {
	Endpoint string   `toml:"endpoint" validate:"required,url"`
	Username string   `toml:"username"`
	Password string   `toml:"password"`
	Timeout  Duration `toml:"timeout" validate:"gt=0"`
}

type DashboardConfig struct {
	URL      string `toml:"url" validate:"omitempty,url"`
	Username string `toml:"username"`
	Password string `toml:"password"`
}

type BroadcastConfig struct {
	Rooms  []string `toml:"rooms"`
	Policy string   `toml:"policy" validate:"oneof=exact substring"`
}

type MessageConfig struct {
	Style           string `toml:"style" validate:"oneof=inline link"`
	MaxLength       int    `toml:"max_length" validate:"gte=16"`
	OutputMaxLength int    `toml:"output_max_length" validate:"gte=0"`
	SourceTag       string `toml:"source_tag" validate:"max=32"`
}

// Credentials is an optional basic auth pair. Empty means the route is open.
type Credentials struct {
	Username string `toml:"username"`
	Password string `toml:"password" validate:"required_with=Username"`
}

func (c Credentials) Enabled() bool {
	return c.Username != ""
}

type ChatConfig struct {
	Backend       string `toml:"backend" validate:"oneof=log redis webhook"`
	WebhookURL    string `toml:"webhook_url" validate:"omitempty,url"`
	ChannelPrefix string `toml:"channel_prefix"`
	MaxRetries    int    `toml:"max_retries" validate:"gte=0"`
}

type RedisConfig struct {
	Host     string `toml:"host" validate:"required"`
	Port     int    `toml:"port" validate:"gt=0"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Default returns the configuration used when nothing is set.
func Default() *RelayConfig {
	return &RelayConfig{
		ServerAddr: ":8090",
		BodyLimit:  1 << 20,
		Monitoring: MonitoringConfig{
			Endpoint: "http://localhost:4567",
			Timeout:  Duration(10 * time.Second),
		},
		Broadcast: BroadcastConfig{
			Policy: string(broadcast.PolicyExact),
		},
		Message: MessageConfig{
			Style:     string(format.StyleInline),
			MaxLength: format.DefaultMaxLength,
			SourceTag: "[sensu]",
		},
		Chat: ChatConfig{
			Backend:       ChatBackendLog,
			ChannelPrefix: "chat:",
			MaxRetries:    3,
		},
	}
}

// LoadRelayConfig builds the config from defaults, the optional TOML file named by
// RELAY_CONFIG_FILE, then environment variables, and validates the result.
func LoadRelayConfig() (*RelayConfig, error) {
	cfg := Default()

	if path := os.Getenv("RELAY_CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints plus the cross-field rules validator tags cannot express.
func (c *RelayConfig) Validate() error {
	if c.Message.OutputMaxLength == 0 {
		c.Message.OutputMaxLength = c.Message.MaxLength
	}
	if err := validator.ValidateStruct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Chat.Backend == ChatBackendRedis && c.Redis == nil {
		return fmt.Errorf("invalid configuration: chat backend %q requires redis settings", ChatBackendRedis)
	}
	if c.Chat.Backend == ChatBackendWebhook && c.Chat.WebhookURL == "" {
		return fmt.Errorf("invalid configuration: chat backend %q requires a webhook url", ChatBackendWebhook)
	}
	return nil
}

func (c *RelayConfig) BroadcastPolicy() broadcast.Policy {
	return broadcast.Policy(c.Broadcast.Policy)
}

func (c *RelayConfig) MessageStyle() format.Style {
	return format.Style(c.Message.Style)
}

func (c *RelayConfig) RequestTimeout() time.Duration {
	return time.Duration(c.Monitoring.Timeout)
}

func applyEnv(cfg *RelayConfig) error {
	setString("RELAY_ADDR", &cfg.ServerAddr)
	setString("DATABASE_PATH", &cfg.DatabasePath)

	setString("MONITORING_ENDPOINT", &cfg.Monitoring.Endpoint)
	setString("MONITORING_USERNAME", &cfg.Monitoring.Username)
	setString("MONITORING_PASSWORD", &cfg.Monitoring.Password)
	setString("MONITORING_DASHBOARD", &cfg.Dashboard.URL)
	setString("MONITORING_DASHBOARD_USERNAME", &cfg.Dashboard.Username)
	setString("MONITORING_DASHBOARD_PASSWORD", &cfg.Dashboard.Password)
	if v := os.Getenv("MONITORING_BROADCAST_CHANNELS"); v != "" {
		cfg.Broadcast.Rooms = splitList(v)
	}
	setString("BROADCAST_POLICY", &cfg.Broadcast.Policy)
	cfg.Broadcast.Policy = strings.ToLower(cfg.Broadcast.Policy)

	setString("MESSAGE_STYLE", &cfg.Message.Style)
	cfg.Message.Style = strings.ToLower(cfg.Message.Style)
	setString("MESSAGE_SOURCE_TAG", &cfg.Message.SourceTag)

	setString("OPERATOR_USER", &cfg.Operator.Username)
	setString("OPERATOR_PASSWORD", &cfg.Operator.Password)
	setString("WEBHOOK_USER", &cfg.Webhook.Username)
	setString("WEBHOOK_PASSWORD", &cfg.Webhook.Password)

	setString("CHAT_BACKEND", &cfg.Chat.Backend)
	setString("CHAT_WEBHOOK_URL", &cfg.Chat.WebhookURL)
	setString("CHAT_CHANNEL_PREFIX", &cfg.Chat.ChannelPrefix)

	ints := []struct {
		key string
		dst *int
	}{
		{"BODY_LIMIT", &cfg.BodyLimit},
		{"MESSAGE_MAX_LENGTH", &cfg.Message.MaxLength},
		{"OUTPUT_MAX_LENGTH", &cfg.Message.OutputMaxLength},
		{"CHAT_MAX_RETRIES", &cfg.Chat.MaxRetries},
	}
	for _, i := range ints {
		if err := setInt(i.key, i.dst); err != nil {
			return err
		}
	}

	if v := os.Getenv("MONITORING_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MONITORING_TIMEOUT: %w", err)
		}
		cfg.Monitoring.Timeout = Duration(d)
	}

	if host := os.Getenv("REDIS_HOST"); host != "" {
		if cfg.Redis == nil {
			cfg.Redis = &RedisConfig{Port: 6379}
		}
		cfg.Redis.Host = host
		setString("REDIS_PASSWORD", &cfg.Redis.Password)
		if err := setInt("REDIS_PORT", &cfg.Redis.Port); err != nil {
			return err
		}
		if err := setInt("REDIS_DB", &cfg.Redis.DB); err != nil {
			return err
		}
	}

	return nil
}

func setString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(key string, dst *int) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = i
	return nil
}

// parseDuration accepts Go duration strings and bare integers as seconds.
func parseDuration(v string) (time.Duration, error) {
	if i, err := strconv.Atoi(v); err == nil {
		return time.Duration(i) * time.Second, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
