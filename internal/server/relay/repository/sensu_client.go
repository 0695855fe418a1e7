package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/internal/models"
	"github.com/Alwanly/sensu-relay/pkg/logger"
)

const (
	userAgent = "sensu-relay"

	// responses larger than this are cut before decoding
	maxResponseBytes = 8 << 20
	// characters of a successful response body kept in the debug log
	debugBodyChars = 80
)

// method is the closed set of HTTP methods the monitoring API is called with.
type method string

const (
	methodGet    method = http.MethodGet
	methodPost   method = http.MethodPost
	methodDelete method = http.MethodDelete
)

func isSuccess(status int) bool {
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted, http.StatusNoContent:
		return true
	}
	return false
}

type sensuClient struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
	logger     *logger.CanonicalLogger
}

// NewSensuClient creates the monitoring API client. The client keeps no state besides
// its connection settings and is safe for concurrent use.
func NewSensuClient(cfg *config.RelayConfig, log *logger.CanonicalLogger) ISensuClient {
	return &sensuClient{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout()},
		baseURL:    strings.TrimRight(cfg.Monitoring.Endpoint, "/"),
		username:   cfg.Monitoring.Username,
		password:   cfg.Monitoring.Password,
		logger:     log.Component("sensu-client"),
	}
}

// request performs one API call and returns the body of a successful response.
func (c *sensuClient) request(ctx context.Context, m method, path string, payload any) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s %s payload: %w", m, path, err)
		}
		body = bytes.NewReader(b)
	}

	target := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, string(m), target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	c.logger.Debug("monitoring api request",
		logger.String(logger.FieldMethod, string(m)),
		logger.String(logger.FieldURL, target),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: string(m), Path: path, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &TransportError{Method: string(m), Path: path, Err: err}
	}

	if !isSuccess(resp.StatusCode) {
		c.logger.Warn("monitoring api bad response",
			logger.String(logger.FieldMethod, string(m)),
			logger.String(logger.FieldURL, target),
			logger.Int(logger.FieldStatusCode, resp.StatusCode),
			logger.String("body", string(respBody)),
		)
		return nil, &APIError{
			Method:     string(m),
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	c.logger.Debug("monitoring api response",
		logger.Int(logger.FieldStatusCode, resp.StatusCode),
		logger.String("body", debugBody(respBody)),
	)

	return respBody, nil
}

// get decodes the JSON body of a GET into T.
func get[T any](ctx context.Context, c *sensuClient, path string) (T, error) {
	var out T
	body, err := c.request(ctx, methodGet, path, nil)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return out, &APIError{
			Method:     string(methodGet),
			Path:       path,
			StatusCode: http.StatusOK,
			Reason:     fmt.Sprintf("invalid response body: %v", err),
		}
	}
	return out, nil
}

// Clients

func (c *sensuClient) ListClients(ctx context.Context) ([]models.Client, error) {
	return get[[]models.Client](ctx, c, "/clients/")
}

func (c *sensuClient) GetClient(ctx context.Context, name string) (*models.Client, error) {
	client, err := get[models.Client](ctx, c, "/clients/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (c *sensuClient) GetClientHistory(ctx context.Context, name string) ([]models.HistoryEntry, error) {
	return get[[]models.HistoryEntry](ctx, c, "/clients/"+url.PathEscape(name)+"/history")
}

func (c *sensuClient) DeleteClient(ctx context.Context, name string) error {
	_, err := c.request(ctx, methodDelete, "/clients/"+url.PathEscape(name), nil)
	return err
}

// Events

func (c *sensuClient) ListEvents(ctx context.Context) ([]models.Event, error) {
	return get[[]models.Event](ctx, c, "/events/")
}

func (c *sensuClient) ListClientEvents(ctx context.Context, client string) ([]models.Event, error) {
	return get[[]models.Event](ctx, c, "/events/"+url.PathEscape(client))
}

func (c *sensuClient) GetEvent(ctx context.Context, client, check string) (*models.Event, error) {
	ev, err := get[models.Event](ctx, c, eventPath(client, check))
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func (c *sensuClient) DeleteEvent(ctx context.Context, client, check string) error {
	_, err := c.request(ctx, methodDelete, eventPath(client, check), nil)
	return err
}

func (c *sensuClient) ResolveEvent(ctx context.Context, client, check string) error {
	_, err := c.request(ctx, methodPost, "/resolve", map[string]string{
		"client": client,
		"check":  check,
	})
	return err
}

func eventPath(client, check string) string {
	return "/events/" + url.PathEscape(client) + "/" + url.PathEscape(check)
}

// Checks

func (c *sensuClient) ListChecks(ctx context.Context) ([]models.Check, error) {
	return get[[]models.Check](ctx, c, "/checks")
}

func (c *sensuClient) GetCheck(ctx context.Context, name string) (*models.Check, error) {
	check, err := get[models.Check](ctx, c, "/checks/"+url.PathEscape(name))
	if err != nil {
		return nil, err
	}
	return &check, nil
}

func (c *sensuClient) RequestCheck(ctx context.Context, check string, subscribers []string) error {
	if subscribers == nil {
		subscribers = []string{}
	}
	_, err := c.request(ctx, methodPost, "/request", map[string]any{
		"check":       check,
		"subscribers": subscribers,
	})
	return err
}

// Stashes

func (c *sensuClient) ListStashes(ctx context.Context) ([]models.Stash, error) {
	return get[[]models.Stash](ctx, c, "/stashes")
}

// CreateStash stores payload under path. An empty path posts to the collection root.
func (c *sensuClient) CreateStash(ctx context.Context, payload map[string]any, path string) error {
	_, err := c.request(ctx, methodPost, stashPath(path), payload)
	return err
}

func (c *sensuClient) DeleteStash(ctx context.Context, path string) error {
	_, err := c.request(ctx, methodDelete, stashPath(path), nil)
	return err
}

// stashPath escapes each segment of a slash separated stash path.
func stashPath(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "/stashes"
	}
	segments := strings.Split(path, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/stashes/" + strings.Join(segments, "/")
}

func debugBody(b []byte) string {
	s := strings.Join(strings.Split(string(b), "\n"), "")
	if r := []rune(s); len(r) > debugBodyChars {
		return string(r[:debugBodyChars])
	}
	return s
}
