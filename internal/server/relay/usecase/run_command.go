package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/wrapper"
)

// RunCommand executes a command and, when the request names a room or asks for a
// broadcast, delivers the reply there. Failures become a reply line as well so the chat
// user sees them.
func (uc *UseCase) RunCommand(ctx context.Context, name string, req *dto.CommandRequest) wrapper.JSONResult {
	logger.AddToContext(ctx,
		logger.String(logger.FieldOperation, "run_command"),
		logger.String(logger.FieldCommand, name),
	)

	code, message := http.StatusOK, "Success"
	reply, err := uc.Command(ctx, name, req.Args)
	if err != nil {
		logger.AddToContext(ctx, logger.Error(err))
		code, message, reply = uc.failureReply(err)
	}

	rooms := uc.replyRooms(req)
	kind := repository.KindGroupChat
	if req.Kind != "" {
		kind = repository.MessageKind(req.Kind)
	}
	d := uc.newDeliverer(rooms, kind)

	var lines []string
	for line := range reply.Lines {
		lines = append(lines, line)
		if req.Stream {
			d.send(ctx, line)
		}
	}
	if !req.Stream && len(lines) > 0 {
		for _, msg := range uc.Formatter.Batch(lines) {
			d.send(ctx, msg)
		}
	}

	res := dto.CommandResponse{Command: name, Lines: lines}
	if len(rooms) > 0 {
		res.Rooms, res.FailedRooms = d.result()
		logger.AddToContext(ctx, logger.Strings(logger.FieldRooms, res.Rooms))
	}

	if code != http.StatusOK {
		return wrapper.ResponseFailed(code, message, res)
	}
	if len(rooms) > 0 && len(res.Rooms) == 0 {
		return wrapper.ResponseFailed(http.StatusBadGateway, "chat delivery failed for every room", res)
	}
	return wrapper.ResponseSuccess(http.StatusOK, res)
}

func (uc *UseCase) failureReply(err error) (int, string, Reply) {
	var usage *UsageError
	switch {
	case errors.Is(err, ErrUnknownCommand):
		return http.StatusNotFound, err.Error(),
			replyLines(uc.Formatter.List("Unknown command, available commands", commandNames()))
	case errors.As(err, &usage):
		return http.StatusBadRequest, err.Error(), replyLines(uc.Formatter.Line(err.Error()))
	case errors.Is(err, repository.ErrMonitoringAPI):
		uc.Logger.WithError(err).Warn("monitoring api call failed")
		return http.StatusBadGateway, "monitoring api request failed",
			replyLines(uc.Formatter.Line("Monitoring API request failed: " + err.Error()))
	default:
		uc.Logger.WithError(err).Error("command failed")
		return http.StatusInternalServerError, "command failed",
			replyLines(uc.Formatter.Line("Command failed: " + err.Error()))
	}
}

func (uc *UseCase) replyRooms(req *dto.CommandRequest) []string {
	if req.Broadcast {
		return uc.Router.Broadcast().Rooms
	}
	if room := strings.TrimSpace(req.Room); room != "" {
		return []string{room}
	}
	return nil
}
