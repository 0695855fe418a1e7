package repository

import (
	"context"

	"github.com/Alwanly/sensu-relay/internal/models"
)

// ISensuClient is the typed view of the monitoring API. Every method returns an error
// matching ErrMonitoringAPI on failure; nothing is cached or retried.
type ISensuClient interface {
	ListClients(ctx context.Context) ([]models.Client, error)
	GetClient(ctx context.Context, name string) (*models.Client, error)
	GetClientHistory(ctx context.Context, name string) ([]models.HistoryEntry, error)
	DeleteClient(ctx context.Context, name string) error

	ListEvents(ctx context.Context) ([]models.Event, error)
	ListClientEvents(ctx context.Context, client string) ([]models.Event, error)
	GetEvent(ctx context.Context, client, check string) (*models.Event, error)
	DeleteEvent(ctx context.Context, client, check string) error
	ResolveEvent(ctx context.Context, client, check string) error

	ListChecks(ctx context.Context) ([]models.Check, error)
	GetCheck(ctx context.Context, name string) (*models.Check, error)
	RequestCheck(ctx context.Context, check string, subscribers []string) error

	ListStashes(ctx context.Context) ([]models.Stash, error)
	CreateStash(ctx context.Context, payload map[string]any, path string) error
	DeleteStash(ctx context.Context, path string) error
}

// MessageKind tells the chat backend how to address a destination.
type MessageKind string

const (
	KindGroupChat MessageKind = "groupchat"
	KindChat      MessageKind = "chat"
)

// IChatSender delivers one line of text to one chat destination.
type IChatSender interface {
	Send(ctx context.Context, room, text string, kind MessageKind) error
}

// IDeliveryJournal records chat sends.
type IDeliveryJournal interface {
	Record(ctx context.Context, d *models.Delivery) error
	List(ctx context.Context, room string, limit int) ([]models.Delivery, error)
}
