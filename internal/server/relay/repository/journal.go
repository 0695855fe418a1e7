package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Alwanly/sensu-relay/internal/models"
	"github.com/Alwanly/sensu-relay/pkg/logger"
)

const defaultJournalLimit = 50

type deliveryJournal struct {
	db *gorm.DB
}

// NewDeliveryJournal stores deliveries in the given database.
func NewDeliveryJournal(db *gorm.DB) IDeliveryJournal {
	return &deliveryJournal{db: db}
}

func (j *deliveryJournal) Record(ctx context.Context, d *models.Delivery) error {
	if d.ID == "" {
		d.ID = uuid.Must(uuid.NewV7()).String()
	}
	if err := j.db.WithContext(ctx).Create(d).Error; err != nil {
		return fmt.Errorf("failed to record delivery: %w", err)
	}
	return nil
}

// List returns the most recent deliveries, optionally for a single room.
func (j *deliveryJournal) List(ctx context.Context, room string, limit int) ([]models.Delivery, error) {
	if limit <= 0 {
		limit = defaultJournalLimit
	}
	q := j.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Limit(limit)
	if room != "" {
		q = q.Where("room = ?", room)
	}

	var deliveries []models.Delivery
	if err := q.Find(&deliveries).Error; err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	return deliveries, nil
}

type journalingSender struct {
	next    IChatSender
	journal IDeliveryJournal
	logger  *logger.CanonicalLogger
}

// NewJournalingSender records the outcome of every send made through next.
// A journal failure is logged and never fails the send.
func NewJournalingSender(next IChatSender, journal IDeliveryJournal, log *logger.CanonicalLogger) IChatSender {
	return &journalingSender{next: next, journal: journal, logger: log.Component("delivery-journal")}
}

func (s *journalingSender) Send(ctx context.Context, room, text string, kind MessageKind) error {
	sendErr := s.next.Send(ctx, room, text, kind)

	d := &models.Delivery{
		CorrelationID: logger.GetCorrelationID(ctx),
		Room:          room,
		Kind:          string(kind),
		Text:          text,
		Status:        models.DeliveryStatusSent,
	}
	if sendErr != nil {
		d.Status = models.DeliveryStatusFailed
		d.Error = sendErr.Error()
	}

	// record even when the request context is already done
	if err := s.journal.Record(context.WithoutCancel(ctx), d); err != nil {
		s.logger.WithError(err).Error("failed to journal delivery", logger.String(logger.FieldRoom, room))
	}

	return sendErr
}
