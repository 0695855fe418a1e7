package usecase

import (
	"context"

	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/pkg/wrapper"
)

// IUseCase is the surface the relay handler drives.
type IUseCase interface {
	// ProcessEvent normalizes, formats, routes and sends one webhook payload
	ProcessEvent(ctx context.Context, payload map[string]any) wrapper.JSONResult
	// RunCommand executes a chat command and optionally delivers the reply
	RunCommand(ctx context.Context, name string, req *dto.CommandRequest) wrapper.JSONResult
	// ListCommands describes the command set
	ListCommands() []dto.CommandInfo
	// ListDeliveries reads the delivery journal
	ListDeliveries(ctx context.Context, req *dto.ListDeliveriesRequest) wrapper.JSONResult
}

var _ IUseCase = (*UseCase)(nil)
