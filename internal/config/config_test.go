package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alwanly/sensu-relay/internal/broadcast"
	"github.com/Alwanly/sensu-relay/internal/format"
)

func TestLoadRelayConfigDefaults(t *testing.T) {
	t.Setenv("RELAY_CONFIG_FILE", "")

	cfg, err := LoadRelayConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.ServerAddr)
	assert.Equal(t, broadcast.PolicyExact, cfg.BroadcastPolicy())
	assert.Equal(t, format.StyleInline, cfg.MessageStyle())
	assert.Equal(t, 460, cfg.Message.MaxLength)
	assert.Equal(t, 460, cfg.Message.OutputMaxLength)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout())
	assert.Equal(t, ChatBackendLog, cfg.Chat.Backend)
	assert.Nil(t, cfg.Redis)
}

func TestLoadRelayConfigFromEnv(t *testing.T) {
	t.Setenv("RELAY_CONFIG_FILE", "")
	t.Setenv("MONITORING_ENDPOINT", "http://sensu.internal:4567")
	t.Setenv("MONITORING_TIMEOUT", "3")
	t.Setenv("MONITORING_BROADCAST_CHANNELS", "#ops, #dev,,")
	t.Setenv("BROADCAST_POLICY", "Substring")
	t.Setenv("MESSAGE_STYLE", "link")
	t.Setenv("MESSAGE_MAX_LENGTH", "300")
	t.Setenv("OUTPUT_MAX_LENGTH", "120")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("CHAT_BACKEND", "redis")

	cfg, err := LoadRelayConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://sensu.internal:4567", cfg.Monitoring.Endpoint)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []string{"#ops", "#dev"}, cfg.Broadcast.Rooms)
	assert.Equal(t, broadcast.PolicySubstring, cfg.BroadcastPolicy())
	assert.Equal(t, format.StyleLink, cfg.MessageStyle())
	assert.Equal(t, 300, cfg.Message.MaxLength)
	assert.Equal(t, 120, cfg.Message.OutputMaxLength)
	require.NotNil(t, cfg.Redis)
	assert.Equal(t, "redis", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
}

func TestLoadRelayConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relay.toml")
	content := `
addr = ":9000"

[monitoring]
endpoint = "http://sensu:4567"
timeout = "2s"

[broadcast]
rooms = ["ops"]
policy = "exact"

[chat]
backend = "webhook"
webhook_url = "https://hooks.example.com/T000"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	t.Setenv("RELAY_CONFIG_FILE", path)
	t.Setenv("RELAY_ADDR", ":9100")

	cfg, err := LoadRelayConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9100", cfg.ServerAddr, "environment overrides the file")
	assert.Equal(t, "http://sensu:4567", cfg.Monitoring.Endpoint)
	assert.Equal(t, 2*time.Second, cfg.RequestTimeout())
	assert.Equal(t, []string{"ops"}, cfg.Broadcast.Rooms)
	assert.Equal(t, ChatBackendWebhook, cfg.Chat.Backend)
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *RelayConfig)
	}{
		{"unknown policy", func(c *RelayConfig) { c.Broadcast.Policy = "fanout" }},
		{"unknown style", func(c *RelayConfig) { c.Message.Style = "fancy" }},
		{"tiny max length", func(c *RelayConfig) { c.Message.MaxLength = 4 }},
		{"bad endpoint", func(c *RelayConfig) { c.Monitoring.Endpoint = "not a url" }},
		{"zero timeout", func(c *RelayConfig) { c.Monitoring.Timeout = 0 }},
		{"redis backend without redis", func(c *RelayConfig) { c.Chat.Backend = ChatBackendRedis }},
		{"webhook backend without url", func(c *RelayConfig) { c.Chat.Backend = ChatBackendWebhook }},
		{"operator without password", func(c *RelayConfig) { c.Operator.Username = "admin" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestInvalidEnvInteger(t *testing.T) {
	t.Setenv("RELAY_CONFIG_FILE", "")
	t.Setenv("MESSAGE_MAX_LENGTH", "lots")

	_, err := LoadRelayConfig()
	assert.Error(t, err)
}
