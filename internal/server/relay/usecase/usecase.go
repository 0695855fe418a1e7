package usecase

import (
	"context"

	"github.com/Alwanly/sensu-relay/internal/broadcast"
	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/internal/event"
	"github.com/Alwanly/sensu-relay/internal/format"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
	"github.com/Alwanly/sensu-relay/pkg/logger"
)

// UseCase holds the relay pipeline. Every field is read-only after construction, so one
// instance serves concurrent webhook and command invocations.
type UseCase struct {
	Client     repository.ISensuClient
	Sender     repository.IChatSender
	Journal    repository.IDeliveryJournal
	Normalizer *event.Normalizer
	Formatter  *format.Formatter
	Router     *broadcast.Router
	Dashboard  config.DashboardConfig
	Logger     *logger.CanonicalLogger
}

func NewUseCase(uc UseCase) *UseCase {
	if uc.Logger == nil {
		uc.Logger = logger.NewNop()
	}
	return &uc
}

// NewFromConfig builds the normalizer, formatter and router from cfg.
// journal may be nil when the delivery journal is disabled.
func NewFromConfig(cfg *config.RelayConfig, client repository.ISensuClient, sender repository.IChatSender, journal repository.IDeliveryJournal, log *logger.CanonicalLogger) *UseCase {
	style := cfg.MessageStyle()
	return NewUseCase(UseCase{
		Client:  client,
		Sender:  sender,
		Journal: journal,
		Normalizer: event.NewNormalizer(event.Config{
			Required:        style.RequiredKeys(),
			MaxOutputLength: cfg.Message.OutputMaxLength,
		}),
		Formatter: format.NewFormatter(format.Config{
			Style:        style,
			MaxLength:    cfg.Message.MaxLength,
			SourceTag:    cfg.Message.SourceTag,
			DashboardURL: cfg.Dashboard.URL,
		}),
		Router:    broadcast.NewRouter(cfg.BroadcastPolicy(), cfg.Broadcast.Rooms),
		Dashboard: cfg.Dashboard,
		Logger:    log.Component("relay"),
	})
}

// deliverer sends messages to a fixed set of rooms and remembers which rooms failed.
type deliverer struct {
	uc     *UseCase
	rooms  []string
	kind   repository.MessageKind
	failed map[string]bool
}

func (uc *UseCase) newDeliverer(rooms []string, kind repository.MessageKind) *deliverer {
	return &deliverer{uc: uc, rooms: rooms, kind: kind, failed: map[string]bool{}}
}

// send delivers text to every room once. A failure in one room does not stop the others.
func (d *deliverer) send(ctx context.Context, text string) {
	for _, room := range d.rooms {
		if err := d.uc.Sender.Send(ctx, room, text, d.kind); err != nil {
			d.failed[room] = true
			d.uc.Logger.WithRoom(room).WithError(err).Error("chat send failed")
		}
	}
}

// result splits the rooms into delivered and failed, keeping their order.
func (d *deliverer) result() (sent, failed []string) {
	for _, room := range d.rooms {
		if d.failed[room] {
			failed = append(failed, room)
		} else {
			sent = append(sent, room)
		}
	}
	return sent, failed
}
