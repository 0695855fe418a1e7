package logger

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type (
	logContextKey  struct{}
	correlationKey struct{}
)

// Canonical log line keys shared by the middleware, the relay usecase and the
// monitoring client.
const (
	FieldRequestID = "request_id"
	FieldOperation = "operation"
	FieldSuccess   = "success"
	FieldOutcome   = "outcome"

	// event and command fields
	FieldAction  = "action"
	FieldClient  = "client"
	FieldCheck   = "check"
	FieldRoom    = "room"
	FieldRooms   = "rooms"
	FieldCommand = "command"

	// monitoring API call fields
	FieldMethod     = "method"
	FieldURL        = "url"
	FieldStatusCode = "status_code"
)

// LogContext collects fields during one request; the canonical logger middleware
// writes them out in a single line when the request ends.
type LogContext struct {
	mu     sync.Mutex
	fields []zap.Field
}

func NewLogContext() *LogContext {
	return &LogContext{fields: make([]zap.Field, 0, 12)}
}

// Add appends fields. Safe on a nil receiver and from concurrent goroutines.
func (lc *LogContext) Add(fields ...zap.Field) {
	if lc == nil || len(fields) == 0 {
		return
	}
	lc.mu.Lock()
	lc.fields = append(lc.fields, fields...)
	lc.mu.Unlock()
}

// Fields returns a copy of the collected fields.
func (lc *LogContext) Fields() []zap.Field {
	if lc == nil {
		return nil
	}
	lc.mu.Lock()
	defer lc.mu.Unlock()
	return append([]zap.Field(nil), lc.fields...)
}

func WithLogContext(ctx context.Context, lc *LogContext) context.Context {
	return context.WithValue(ctx, logContextKey{}, lc)
}

func GetLogContext(ctx context.Context) *LogContext {
	if ctx == nil {
		return nil
	}
	lc, _ := ctx.Value(logContextKey{}).(*LogContext)
	return lc
}

// AddToContext adds fields to the request's canonical log line, if there is one.
func AddToContext(ctx context.Context, fields ...zap.Field) {
	GetLogContext(ctx).Add(fields...)
}

// WithCorrelationID tags ctx with the id journaled alongside each chat delivery.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
