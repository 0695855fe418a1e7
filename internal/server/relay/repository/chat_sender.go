package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/pubsub"
	"github.com/Alwanly/sensu-relay/pkg/retry"
)

// ChatMessage is the wire form of a chat send for the redis and webhook backends.
type ChatMessage struct {
	Channel string      `json:"channel"`
	Text    string      `json:"text"`
	Kind    MessageKind `json:"kind"`
}

// NewChatSender builds the sender for the configured backend. pub is only used by the
// redis backend and may be nil otherwise.
func NewChatSender(cfg *config.RelayConfig, pub pubsub.Publisher, log *logger.CanonicalLogger) (IChatSender, error) {
	switch cfg.Chat.Backend {
	case config.ChatBackendRedis:
		if pub == nil {
			return nil, fmt.Errorf("chat backend %q needs a redis publisher", cfg.Chat.Backend)
		}
		return NewRedisChatSender(pub, cfg.Chat.ChannelPrefix), nil
	case config.ChatBackendWebhook:
		return NewWebhookChatSender(cfg.Chat.WebhookURL, cfg.RequestTimeout(), retry.Config{
			MaxRetries:     cfg.Chat.MaxRetries,
			InitialBackoff: 500 * time.Millisecond,
			MaxBackoff:     5 * time.Second,
			Multiplier:     2.0,
			Jitter:         true,
		}, log), nil
	default:
		return NewLogChatSender(log), nil
	}
}

type logChatSender struct {
	logger *logger.CanonicalLogger
}

// NewLogChatSender writes every message to the log. Useful without a chat backend.
func NewLogChatSender(log *logger.CanonicalLogger) IChatSender {
	return &logChatSender{logger: log.Component("chat-log")}
}

func (s *logChatSender) Send(_ context.Context, room, text string, kind MessageKind) error {
	s.logger.Info("chat message",
		logger.String(logger.FieldRoom, room),
		logger.String("kind", string(kind)),
		logger.String("text", text),
	)
	return nil
}

type redisChatSender struct {
	pub    pubsub.Publisher
	prefix string
}

// NewRedisChatSender publishes each message on "<prefix><room>" for a chat bot to pick up.
func NewRedisChatSender(pub pubsub.Publisher, prefix string) IChatSender {
	return &redisChatSender{pub: pub, prefix: prefix}
}

func (s *redisChatSender) Send(ctx context.Context, room, text string, kind MessageKind) error {
	payload, err := json.Marshal(ChatMessage{Channel: room, Text: text, Kind: kind})
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}
	if err := s.pub.Publish(ctx, s.prefix+room, string(payload)); err != nil {
		return fmt.Errorf("failed to publish chat message to %s: %w", room, err)
	}
	return nil
}

type webhookChatSender struct {
	url         string
	httpClient  *http.Client
	retryConfig retry.Config
	logger      *logger.CanonicalLogger
}

// NewWebhookChatSender posts Slack style incoming-webhook payloads, retrying failed
// deliveries with exponential backoff.
func NewWebhookChatSender(url string, timeout time.Duration, retryConfig retry.Config, log *logger.CanonicalLogger) IChatSender {
	return &webhookChatSender{
		url:         url,
		httpClient:  &http.Client{Timeout: timeout},
		retryConfig: retryConfig,
		logger:      log.Component("chat-webhook"),
	}
}

func (s *webhookChatSender) Send(ctx context.Context, room, text string, kind MessageKind) error {
	body, err := json.Marshal(ChatMessage{Channel: room, Text: text, Kind: kind})
	if err != nil {
		return fmt.Errorf("failed to marshal chat message: %w", err)
	}

	attempts := 0
	err = retry.WithExponentialBackoff(ctx, s.retryConfig, func(ctx context.Context) error {
		attempts++
		err := s.post(ctx, body)
		if err != nil {
			s.logger.WithRoom(room).Warn("chat webhook delivery failed",
				logger.Int("attempt", attempts),
				logger.Error(err),
			)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("chat webhook delivery to %s: %w", room, err)
	}
	return nil
}

func (s *webhookChatSender) post(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		err := fmt.Errorf("chat webhook returned status %d: %s", resp.StatusCode, string(b))
		// the same request will be rejected again
		if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Permanent(err)
		}
		return err
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
