package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Alwanly/sensu-relay/internal/event"
	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/wrapper"
)

// ProcessEvent runs one webhook payload through the pipeline. It never panics on payload
// shape; every failure is reported in the result.
func (uc *UseCase) ProcessEvent(ctx context.Context, payload map[string]any) wrapper.JSONResult {
	logger.AddToContext(ctx, logger.String(logger.FieldOperation, "process_event"))

	ev, err := uc.Normalizer.Normalize(payload)
	if err != nil {
		return uc.rejectEvent(ctx, err)
	}

	logger.AddToContext(ctx,
		logger.String(logger.FieldClient, ev.Hostname),
		logger.String(logger.FieldCheck, ev.CheckName),
		logger.String(logger.FieldAction, string(ev.Action)),
	)

	line := uc.Formatter.Event(ev)

	decision := uc.Router.To(ev.BroadcastTarget)
	if decision.Empty() {
		reason := fmt.Sprintf("broadcast target %q matches no configured room", ev.BroadcastTarget)
		logger.AddToContext(ctx, logger.String(logger.FieldOutcome, string(dto.OutcomeDeclined)))
		uc.Logger.Info("event declined",
			logger.String(logger.FieldCheck, ev.CheckName),
			logger.String("reason", reason),
		)
		return wrapper.ResponseFailed(http.StatusOK, "event declined", dto.EventResponse{
			Outcome: dto.OutcomeDeclined,
			Reason:  reason,
			Message: line,
		})
	}

	d := uc.newDeliverer(decision.Rooms, repository.KindGroupChat)
	d.send(ctx, line)
	sent, failed := d.result()

	res := dto.EventResponse{
		Message:     line,
		Rooms:       sent,
		FailedRooms: failed,
	}
	logger.AddToContext(ctx, logger.Strings(logger.FieldRooms, sent))

	if len(sent) == 0 {
		res.Outcome = dto.OutcomeFailed
		res.Reason = "chat delivery failed for every room"
		logger.AddToContext(ctx, logger.String(logger.FieldOutcome, string(res.Outcome)))
		return wrapper.ResponseFailed(http.StatusBadGateway, res.Reason, res)
	}

	res.Outcome = dto.OutcomeDelivered
	logger.AddToContext(ctx, logger.String(logger.FieldOutcome, string(res.Outcome)))
	return wrapper.ResponseSuccess(http.StatusOK, res)
}

func (uc *UseCase) rejectEvent(ctx context.Context, err error) wrapper.JSONResult {
	if errors.Is(err, event.ErrDeclined) {
		logger.AddToContext(ctx, logger.String(logger.FieldOutcome, string(dto.OutcomeDeclined)))
		uc.Logger.Debug("event declined", logger.String("reason", err.Error()))
		return wrapper.ResponseFailed(http.StatusOK, "event declined", dto.EventResponse{
			Outcome: dto.OutcomeDeclined,
			Reason:  err.Error(),
		})
	}

	var malformed *event.MalformedEventError
	key := ""
	if errors.As(err, &malformed) {
		key = malformed.Key
	}

	logger.AddToContext(ctx,
		logger.String(logger.FieldOutcome, string(dto.OutcomeMalformed)),
		logger.Error(err),
	)
	uc.Logger.Warn("malformed monitoring event", logger.String("key", key), logger.Error(err))
	return wrapper.ResponseFailed(http.StatusUnprocessableEntity, err.Error(), dto.EventResponse{
		Outcome: dto.OutcomeMalformed,
		Reason:  err.Error(),
	})
}
