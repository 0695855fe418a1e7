package usecase

import (
	"context"
	"sync"

	"github.com/Alwanly/sensu-relay/internal/models"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
)

type sentMessage struct {
	room string
	text string
	kind repository.MessageKind
}

type recordingSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	failFor map[string]error
}

func (s *recordingSender) Send(_ context.Context, room, text string, kind repository.MessageKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failFor[room]; err != nil {
		return err
	}
	s.sent = append(s.sent, sentMessage{room: room, text: text, kind: kind})
	return nil
}

// fakeSensu answers from fixed data; err, when set, is returned by every call.
type fakeSensu struct {
	err       error
	clients   []models.Client
	checks    []models.Check
	events    []models.Event
	history   []models.HistoryEntry
	stashes   []models.Stash
	calls     []string
	lastStash map[string]any
}

func (f *fakeSensu) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeSensu) ListClients(context.Context) ([]models.Client, error) {
	return f.clients, f.record("ListClients")
}

func (f *fakeSensu) GetClient(_ context.Context, name string) (*models.Client, error) {
	if err := f.record("GetClient " + name); err != nil {
		return nil, err
	}
	for i := range f.clients {
		if f.clients[i].Name == name {
			return &f.clients[i], nil
		}
	}
	return nil, &repository.APIError{Method: "GET", Path: "/clients/" + name, StatusCode: 404}
}

func (f *fakeSensu) GetClientHistory(_ context.Context, name string) ([]models.HistoryEntry, error) {
	return f.history, f.record("GetClientHistory " + name)
}

func (f *fakeSensu) DeleteClient(_ context.Context, name string) error {
	return f.record("DeleteClient " + name)
}

func (f *fakeSensu) ListEvents(context.Context) ([]models.Event, error) {
	return f.events, f.record("ListEvents")
}

func (f *fakeSensu) ListClientEvents(_ context.Context, client string) ([]models.Event, error) {
	return f.events, f.record("ListClientEvents " + client)
}

func (f *fakeSensu) GetEvent(_ context.Context, client, check string) (*models.Event, error) {
	if err := f.record("GetEvent " + client + " " + check); err != nil {
		return nil, err
	}
	return &f.events[0], nil
}

func (f *fakeSensu) DeleteEvent(_ context.Context, client, check string) error {
	return f.record("DeleteEvent " + client + " " + check)
}

func (f *fakeSensu) ResolveEvent(_ context.Context, client, check string) error {
	return f.record("ResolveEvent " + client + " " + check)
}

func (f *fakeSensu) ListChecks(context.Context) ([]models.Check, error) {
	return f.checks, f.record("ListChecks")
}

func (f *fakeSensu) GetCheck(_ context.Context, name string) (*models.Check, error) {
	if err := f.record("GetCheck " + name); err != nil {
		return nil, err
	}
	return &f.checks[0], nil
}

func (f *fakeSensu) RequestCheck(_ context.Context, check string, subscribers []string) error {
	return f.record("RequestCheck " + check)
}

func (f *fakeSensu) ListStashes(context.Context) ([]models.Stash, error) {
	return f.stashes, f.record("ListStashes")
}

func (f *fakeSensu) CreateStash(_ context.Context, payload map[string]any, path string) error {
	f.lastStash = payload
	return f.record("CreateStash " + path)
}

func (f *fakeSensu) DeleteStash(_ context.Context, path string) error {
	return f.record("DeleteStash " + path)
}
