package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
	"github.com/Alwanly/sensu-relay/internal/server/relay/usecase"
	"github.com/Alwanly/sensu-relay/pkg/deps"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/validator"
	"github.com/Alwanly/sensu-relay/pkg/wrapper"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type Handler struct {
	Logger  *logger.CanonicalLogger
	UseCase usecase.IUseCase
	Config  *config.RelayConfig
}

// NewHandler wires the relay repositories and usecase and registers the routes on d.Fiber.
func NewHandler(d deps.App) (*Handler, error) {
	cfg := d.Config

	sender, err := repository.NewChatSender(cfg, d.Pub, d.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat sender: %w", err)
	}

	var journal repository.IDeliveryJournal
	if d.Database != nil {
		journal = repository.NewDeliveryJournal(d.Database)
		sender = repository.NewJournalingSender(sender, journal, d.Logger)
	}

	uc := usecase.NewFromConfig(cfg, repository.NewSensuClient(cfg, d.Logger), sender, journal, d.Logger)

	h := &Handler{
		Logger:  d.Logger,
		UseCase: uc,
		Config:  cfg,
	}
	h.Register(d)

	return h, nil
}

// Register mounts the routes. Split from NewHandler so tests can inject a usecase.
func (h *Handler) Register(d deps.App) {
	// Health check endpoint (no auth required)
	d.Fiber.Get("/health", h.health)

	// Monitoring webhook, optionally protected by basic auth
	d.Fiber.Post("/event", d.Middleware.WebhookAuth(), h.event)

	// Operator endpoints
	d.Fiber.Get("/commands", d.Middleware.OperatorAuth(), h.listCommands)
	d.Fiber.Post("/commands/:name", d.Middleware.OperatorAuth(), h.runCommand)
	d.Fiber.Get("/deliveries", d.Middleware.OperatorAuth(), h.listDeliveries)
}

// health godoc
// @Summary      Health check
// @Description  Report the relay status and its active chat settings
// @Tags         health
// @Produce      json
// @Success      200 {object} dto.HealthResponse
// @Router       /health [get]
func (h *Handler) health(c *fiber.Ctx) error {
	res := dto.HealthResponse{
		Status:          "ok",
		ChatBackend:     h.Config.Chat.Backend,
		BroadcastPolicy: h.Config.Broadcast.Policy,
		Rooms:           len(h.Config.Broadcast.Rooms),
		Journal:         h.Config.DatabasePath != "",
	}
	return c.Status(fiber.StatusOK).JSON(res)
}

// event godoc
// @Summary      Receive a monitoring event
// @Description  Normalize a monitoring handler payload and relay it to the chat rooms selected by its broadcast target. Accepts a JSON body or a form field named payload holding the JSON.
// @Tags         events
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body object true "Monitoring event payload"
// @Success      200 {object} wrapper.JSONResult{data=dto.EventResponse} "Delivered or declined"
// @Failure      400 {object} wrapper.JSONResult "Body is not a JSON object"
// @Failure      422 {object} wrapper.JSONResult{data=dto.EventResponse} "Required event field missing"
// @Failure      502 {object} wrapper.JSONResult{data=dto.EventResponse} "Chat delivery failed for every room"
// @Router       /event [post]
// @Security     BasicAuth
func (h *Handler) event(c *fiber.Ctx) error {
	logger.AddToContext(c.UserContext(), logger.String(logger.FieldOperation, "receive_event"))

	payload, err := decodeEventBody(c)
	if err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		res := wrapper.ResponseFailed(http.StatusBadRequest, err.Error(), nil)
		return c.Status(res.Code).JSON(res)
	}

	res := h.UseCase.ProcessEvent(c.UserContext(), payload)
	return c.Status(res.Code).JSON(res)
}

// decodeEventBody accepts application/json or a form encoded payload=<json> field.
func decodeEventBody(c *fiber.Ctx) (map[string]any, error) {
	body := c.Body()
	if strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEApplicationForm) {
		form := c.FormValue("payload")
		if form == "" {
			return nil, fmt.Errorf("missing form field payload")
		}
		body = []byte(form)
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid event body: %w", err)
	}
	if payload == nil {
		return nil, fmt.Errorf("invalid event body: expected a JSON object")
	}
	return payload, nil
}

// listCommands godoc
// @Summary      List chat commands
// @Tags         commands
// @Produce      json
// @Success      200 {object} wrapper.JSONResult{data=[]dto.CommandInfo}
// @Failure      401 {object} wrapper.JSONResult
// @Router       /commands [get]
// @Security     BasicAuth
func (h *Handler) listCommands(c *fiber.Ctx) error {
	res := wrapper.ResponseSuccess(fiber.StatusOK, h.UseCase.ListCommands())
	return c.Status(res.Code).JSON(res)
}

// runCommand godoc
// @Summary      Run a chat command
// @Description  Query or act on the monitoring API. The reply lines are returned and, when room or broadcast is set, sent to chat as one message or one message per line.
// @Tags         commands
// @Accept       json
// @Produce      json
// @Param        name path string true "Command name" example(clients)
// @Param        request body dto.CommandRequest false "Arguments and reply destination"
// @Success      200 {object} wrapper.JSONResult{data=dto.CommandResponse}
// @Failure      400 {object} wrapper.JSONResult{data=dto.CommandResponse} "Invalid body or wrong arguments"
// @Failure      401 {object} wrapper.JSONResult
// @Failure      404 {object} wrapper.JSONResult{data=dto.CommandResponse} "Unknown command"
// @Failure      502 {object} wrapper.JSONResult{data=dto.CommandResponse} "Monitoring API or chat delivery failed"
// @Router       /commands/{name} [post]
// @Security     BasicAuth
func (h *Handler) runCommand(c *fiber.Ctx) error {
	req := new(dto.CommandRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			logger.AddToContext(c.UserContext(), zap.Error(err))
			res := wrapper.ResponseFailed(fiber.StatusBadRequest, "Invalid request body", nil)
			return c.Status(res.Code).JSON(res)
		}
	}

	if err := validator.ValidateStruct(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		res := wrapper.ResponseFailed(fiber.StatusBadRequest, err.Error(), validator.TranslateError(err))
		return c.Status(res.Code).JSON(res)
	}

	res := h.UseCase.RunCommand(c.UserContext(), c.Params("name"), req)
	return c.Status(res.Code).JSON(res)
}

// listDeliveries godoc
// @Summary      List journaled chat deliveries
// @Description  Most recent first. Only available when DATABASE_PATH is set.
// @Tags         deliveries
// @Produce      json
// @Param        room query string false "Only deliveries to this room"
// @Param        limit query int false "Maximum rows, default 50"
// @Success      200 {object} wrapper.JSONResult{data=dto.ListDeliveriesResponse}
// @Failure      400 {object} wrapper.JSONResult
// @Failure      401 {object} wrapper.JSONResult
// @Failure      404 {object} wrapper.JSONResult "Journal disabled"
// @Router       /deliveries [get]
// @Security     BasicAuth
func (h *Handler) listDeliveries(c *fiber.Ctx) error {
	req := new(dto.ListDeliveriesRequest)
	if err := c.QueryParser(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		res := wrapper.ResponseFailed(fiber.StatusBadRequest, "Invalid query", nil)
		return c.Status(res.Code).JSON(res)
	}

	if err := validator.ValidateStruct(req); err != nil {
		logger.AddToContext(c.UserContext(), zap.Error(err))
		res := wrapper.ResponseFailed(fiber.StatusBadRequest, err.Error(), validator.TranslateError(err))
		return c.Status(res.Code).JSON(res)
	}

	res := h.UseCase.ListDeliveries(c.UserContext(), req)
	return c.Status(res.Code).JSON(res)
}
