package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alwanly/sensu-relay/internal/broadcast"
	"github.com/Alwanly/sensu-relay/internal/config"
	"github.com/Alwanly/sensu-relay/internal/format"
	"github.com/Alwanly/sensu-relay/internal/models"
	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
	"github.com/Alwanly/sensu-relay/internal/server/relay/repository"
	"github.com/Alwanly/sensu-relay/pkg/truncate"
)

func decodeClient(t *testing.T, raw string) models.Client {
	t.Helper()
	var c models.Client
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	return c
}

func commandResponse(t *testing.T, data any) dto.CommandResponse {
	t.Helper()
	res, ok := data.(dto.CommandResponse)
	require.True(t, ok, "expected dto.CommandResponse, got %T", data)
	return res
}

func TestCommandClients(t *testing.T) {
	uc, client, _ := newTestUseCase(t, nil)
	client.clients = []models.Client{{Name: "host1"}, {Name: "host2"}}

	reply, err := uc.Command(context.Background(), "clients", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"[sensu] Clients: host1, host2"}, slices.Collect(reply.Lines))
}

func TestCommandClientDetailsAreLazy(t *testing.T) {
	uc, client, _ := newTestUseCase(t, nil)
	client.clients = []models.Client{decodeClient(t, `{"name":"host1","address":"10.0.0.1","datacenter":"dc1"}`)}

	reply, err := uc.Command(context.Background(), "client", []string{"host1"})
	require.NoError(t, err)

	lines := slices.Collect(reply.Lines)
	assert.Equal(t, []string{
		"[sensu] Client details: host1",
		"[sensu] address: 10.0.0.1",
		"[sensu] datacenter: dc1",
		"[sensu] name: host1",
	}, lines)

	var first []string
	for line := range reply.Lines {
		first = append(first, line)
		break
	}
	assert.Equal(t, []string{"[sensu] Client details: host1"}, first)
}

func TestCommandDashboard(t *testing.T) {
	uc, _, _ := newTestUseCase(t, func(cfg *config.RelayConfig) {
		cfg.Dashboard = config.DashboardConfig{URL: "https://uchiwa.example", Username: "view", Password: "pw"}
	})

	reply, err := uc.Command(context.Background(), "dashboard", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"[sensu] The Uchiwa dashboard is available at: https://uchiwa.example (credentials: view/pw)",
	}, slices.Collect(reply.Lines))
}

func TestCommandWriteOperations(t *testing.T) {
	uc, client, _ := newTestUseCase(t, nil)
	ctx := context.Background()

	cases := []struct {
		name string
		args []string
		call string
		line string
	}{
		{"resolve", []string{"host1", "disk"}, "ResolveEvent host1 disk", "[sensu] Resolved host1/disk"},
		{"request", []string{"disk", "web", "db"}, "RequestCheck disk", "[sensu] Requested execution of disk on web, db"},
		{"silence", []string{"host1", "disk"}, "CreateStash silence/host1/disk", "[sensu] Silenced host1/disk"},
		{"unsilence", []string{"host1"}, "DeleteStash silence/host1", "[sensu] Removed stash silence/host1"},
		{"unsilence", []string{"silence/host1/disk"}, "DeleteStash silence/host1/disk", "[sensu] Removed stash silence/host1/disk"},
		{"remove-client", []string{"host1"}, "DeleteClient host1", "[sensu] Removed client host1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client.calls = nil
			reply, err := uc.Command(ctx, tc.name, tc.args)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.call}, client.calls)
			assert.Equal(t, []string{tc.line}, slices.Collect(reply.Lines))
		})
	}
	assert.Equal(t, "silenced from chat", client.lastStash["reason"])
}

func TestCommandListings(t *testing.T) {
	uc, client, _ := newTestUseCase(t, nil)
	ctx := context.Background()

	reply, err := uc.Command(ctx, "events", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"[sensu] No open events"}, slices.Collect(reply.Lines))

	client.events = []models.Event{{
		Client:      models.Client{Name: "host1"},
		Check:       models.Check{Name: "disk", Status: 2, Output: "95%\nfull"},
		Occurrences: 3,
	}}
	reply, err = uc.Command(ctx, "events", []string{"host1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[sensu] host1/disk: CRITICAL (3 occurrences) - 95% full"}, slices.Collect(reply.Lines))
	assert.Contains(t, client.calls, "ListClientEvents host1")

	client.history = []models.HistoryEntry{{Check: "disk", History: []int{0, 0, 2}, LastStatus: 2, LastExecution: 1700000000}}
	reply, err = uc.Command(ctx, "history", []string{"host1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[sensu] disk: CRITICAL at 2023-11-14T22:13:20Z [0 0 2]"}, slices.Collect(reply.Lines))

	client.stashes = []models.Stash{{Path: "silence/host1", Content: map[string]any{"reason": "maint"}, Expire: 60}}
	reply, err = uc.Command(ctx, "stashes", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{`[sensu] silence/host1: {"reason":"maint"} (expires in 60s)`}, slices.Collect(reply.Lines))
}

func TestCommandErrors(t *testing.T) {
	uc, client, _ := newTestUseCase(t, nil)
	ctx := context.Background()

	_, err := uc.Command(ctx, "nope", nil)
	assert.ErrorIs(t, err, ErrUnknownCommand)

	_, err = uc.Command(ctx, "client", nil)
	var usage *UsageError
	require.ErrorAs(t, err, &usage)
	assert.Equal(t, "client <name>", usage.Usage)

	client.err = &repository.APIError{Method: "GET", Path: "/clients/", StatusCode: 500}
	_, err = uc.Command(ctx, "clients", nil)
	assert.ErrorIs(t, err, repository.ErrMonitoringAPI)
}

func TestRunCommandDeliversBatchOrStream(t *testing.T) {
	uc, client, sender := newTestUseCase(t, nil)
	client.clients = []models.Client{decodeClient(t, `{"name":"host1","address":"10.0.0.1"}`)}
	ctx := context.Background()

	res := uc.RunCommand(ctx, "client", &dto.CommandRequest{Args: []string{"host1"}, Room: "ops"})
	require.Equal(t, http.StatusOK, res.Code)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "[sensu] Client details: host1\n[sensu] address: 10.0.0.1\n[sensu] name: host1", sender.sent[0].text)

	sender.sent = nil
	res = uc.RunCommand(ctx, "client", &dto.CommandRequest{Args: []string{"host1"}, Room: "alice", Stream: true, Kind: "chat"})
	require.Equal(t, http.StatusOK, res.Code)
	require.Len(t, sender.sent, 3)
	for _, m := range sender.sent {
		assert.Equal(t, "alice", m.room)
		assert.Equal(t, repository.KindChat, m.kind)
	}
	assert.Len(t, commandResponse(t, res.Data).Lines, 3)
}

func TestRunCommandWithoutRoomOnlyReplies(t *testing.T) {
	uc, client, sender := newTestUseCase(t, nil)
	client.clients = []models.Client{{Name: "host1"}}

	res := uc.RunCommand(context.Background(), "clients", &dto.CommandRequest{})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Empty(t, sender.sent)
	assert.Equal(t, []string{"[sensu] Clients: host1"}, commandResponse(t, res.Data).Lines)
}

func TestRunCommandBroadcast(t *testing.T) {
	uc, _, sender := newTestUseCase(t, func(cfg *config.RelayConfig) {
		cfg.Broadcast.Policy = string(broadcast.PolicySubstring)
		cfg.Broadcast.Rooms = []string{"ops", "dev"}
	})

	res := uc.RunCommand(context.Background(), "dashboard", &dto.CommandRequest{Broadcast: true})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"ops", "dev"}, commandResponse(t, res.Data).Rooms)
	assert.Len(t, sender.sent, 2)
}

func TestRunCommandBroadcastUnderExactPolicy(t *testing.T) {
	uc, _, sender := newTestUseCase(t, func(cfg *config.RelayConfig) {
		cfg.Broadcast.Rooms = []string{"ops", "dev"}
	})
	require.Equal(t, broadcast.PolicyExact, uc.Router.Policy())

	res := uc.RunCommand(context.Background(), "dashboard", &dto.CommandRequest{Broadcast: true})
	require.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, []string{"ops", "dev"}, commandResponse(t, res.Data).Rooms)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "ops", sender.sent[0].room)
	assert.Equal(t, "dev", sender.sent[1].room)
}

func TestRunCommandBatchRespectsMaxLength(t *testing.T) {
	uc, client, sender := newTestUseCase(t, nil)
	client.clients = []models.Client{decodeClient(t, `{"name":"host1","address":"10.0.0.1"}`)}
	client.clients[0].Attributes = map[string]any{
		"notes": strings.Repeat("n", 400),
		"owner": strings.Repeat("o", 400),
	}

	res := uc.RunCommand(context.Background(), "client", &dto.CommandRequest{Args: []string{"host1"}, Room: "ops"})
	require.Equal(t, http.StatusOK, res.Code)
	require.Greater(t, len(sender.sent), 1)

	var delivered []string
	for _, m := range sender.sent {
		assert.LessOrEqual(t, truncate.Len(m.text), format.DefaultMaxLength)
		delivered = append(delivered, strings.Split(m.text, "\n")...)
	}
	assert.Equal(t, commandResponse(t, res.Data).Lines, delivered)
}

func TestRunCommandReportsMonitoringFailure(t *testing.T) {
	uc, client, sender := newTestUseCase(t, nil)
	client.err = &repository.TransportError{Method: "GET", Path: "/checks", Err: errors.New("connection refused")}

	res := uc.RunCommand(context.Background(), "checks", &dto.CommandRequest{Room: "ops"})

	assert.Equal(t, http.StatusBadGateway, res.Code)
	assert.False(t, res.Success)
	lines := commandResponse(t, res.Data).Lines
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Monitoring API request failed")
	require.Len(t, sender.sent, 1)
	assert.Equal(t, lines[0], sender.sent[0].text)
}

func TestRunCommandUnknownAndUsage(t *testing.T) {
	uc, _, _ := newTestUseCase(t, nil)
	ctx := context.Background()

	res := uc.RunCommand(ctx, "bogus", &dto.CommandRequest{})
	assert.Equal(t, http.StatusNotFound, res.Code)
	assert.Contains(t, commandResponse(t, res.Data).Lines[0], "clients")

	res = uc.RunCommand(ctx, "event", &dto.CommandRequest{Args: []string{"host1"}})
	assert.Equal(t, http.StatusBadRequest, res.Code)
	assert.Equal(t, []string{"[sensu] usage: event <client> <check>"}, commandResponse(t, res.Data).Lines)
}

func TestListCommandsSorted(t *testing.T) {
	uc, _, _ := newTestUseCase(t, nil)
	infos := uc.ListCommands()
	require.Len(t, infos, len(commands))
	names := make([]string, 0, len(infos))
	for _, i := range infos {
		names = append(names, i.Name)
	}
	assert.True(t, slices.IsSorted(names))
}

func TestListDeliveriesDisabled(t *testing.T) {
	uc, _, _ := newTestUseCase(t, nil)
	res := uc.ListDeliveries(context.Background(), &dto.ListDeliveriesRequest{})
	assert.Equal(t, http.StatusNotFound, res.Code)
}
