package usecase

import (
	"context"
	"net/http"

	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/pkg/logger"
	"github.com/Alwanly/sensu-relay/pkg/wrapper"
)

func (uc *UseCase) ListDeliveries(ctx context.Context, req *dto.ListDeliveriesRequest) wrapper.JSONResult {
	logger.AddToContext(ctx, logger.String(logger.FieldOperation, "list_deliveries"))

	if uc.Journal == nil {
		return wrapper.ResponseFailed(http.StatusNotFound, "delivery journal is disabled", nil)
	}

	deliveries, err := uc.Journal.List(ctx, req.Room, req.Limit)
	if err != nil {
		logger.AddToContext(ctx, logger.Error(err))
		uc.Logger.WithError(err).Error("failed to list deliveries")
		return wrapper.ResponseFailed(http.StatusInternalServerError, "failed to list deliveries", nil)
	}

	return wrapper.ResponseSuccess(http.StatusOK, dto.ListDeliveriesResponse{
		Deliveries: deliveries,
		Count:      len(deliveries),
	})
}
