package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/Alwanly/sensu-relay/internal/format"
	"github.com/Alwanly/sensu-relay/internal/models"
	"github.com/Alwanly/sensu-relay/internal/server/relay/dto"
)

// silencePrefix is the stash namespace the dashboard treats as silenced.
const silencePrefix = "silence"

var ErrUnknownCommand = errors.New("unknown command")

// UsageError reports a command invoked with the wrong number of arguments.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return "usage: " + e.Usage
}

type command struct {
	usage       string
	description string
	minArgs     int
	// maxArgs < 0 means no upper bound
	maxArgs int
	run     func(uc *UseCase, ctx context.Context, args []string) (Reply, error)
}

var commands = map[string]command{
	"dashboard": {
		usage: "dashboard", description: "Show the dashboard URL",
		run: (*UseCase).dashboard,
	},
	"clients": {
		usage: "clients", description: "List monitored clients",
		run: (*UseCase).clients,
	},
	"client": {
		usage: "client <name>", description: "Show the details of a client",
		minArgs: 1, maxArgs: 1,
		run: (*UseCase).client,
	},
	"history": {
		usage: "history <client>", description: "Show the check history of a client",
		minArgs: 1, maxArgs: 1,
		run: (*UseCase).history,
	},
	"events": {
		usage: "events [client]", description: "List open events, optionally for one client",
		maxArgs: 1,
		run:     (*UseCase).events,
	},
	"event": {
		usage: "event <client> <check>", description: "Show one open event",
		minArgs: 2, maxArgs: 2,
		run: (*UseCase).event,
	},
	"resolve": {
		usage: "resolve <client> <check>", description: "Resolve an open event",
		minArgs: 2, maxArgs: 2,
		run: (*UseCase).resolve,
	},
	"checks": {
		usage: "checks", description: "List check definitions",
		run: (*UseCase).checks,
	},
	"check": {
		usage: "check <name>", description: "Show a check definition",
		minArgs: 1, maxArgs: 1,
		run: (*UseCase).check,
	},
	"request": {
		usage: "request <check> [subscriber...]", description: "Request a check execution",
		minArgs: 1, maxArgs: -1,
		run: (*UseCase).request,
	},
	"stashes": {
		usage: "stashes", description: "List stashes",
		run: (*UseCase).stashes,
	},
	"silence": {
		usage: "silence <client> [check]", description: "Silence a client or one of its checks",
		minArgs: 1, maxArgs: 2,
		run: (*UseCase).silence,
	},
	"unsilence": {
		usage: "unsilence <path>", description: "Remove a silence stash",
		minArgs: 1, maxArgs: 1,
		run: (*UseCase).unsilence,
	},
	"remove-client": {
		usage: "remove-client <name>", description: "Remove a client and its history",
		minArgs: 1, maxArgs: 1,
		run: (*UseCase).removeClient,
	},
}

func commandNames() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (uc *UseCase) ListCommands() []dto.CommandInfo {
	names := commandNames()
	infos := make([]dto.CommandInfo, 0, len(names))
	for _, name := range names {
		c := commands[name]
		infos = append(infos, dto.CommandInfo{Name: name, Usage: c.usage, Description: c.description})
	}
	return infos
}

// Command runs the named command. Monitoring API failures are returned unchanged and match
// repository.ErrMonitoringAPI.
func (uc *UseCase) Command(ctx context.Context, name string, args []string) (Reply, error) {
	c, ok := commands[strings.ToLower(name)]
	if !ok {
		return Reply{}, fmt.Errorf("%w %q", ErrUnknownCommand, name)
	}
	if len(args) < c.minArgs || (c.maxArgs >= 0 && len(args) > c.maxArgs) {
		return Reply{}, &UsageError{Usage: c.usage}
	}
	return c.run(uc, ctx, args)
}

func (uc *UseCase) dashboard(_ context.Context, _ []string) (Reply, error) {
	if uc.Dashboard.URL == "" {
		return replyLines(uc.Formatter.Line("No dashboard is configured")), nil
	}
	msg := "The Uchiwa dashboard is available at: " + uc.Dashboard.URL
	if uc.Dashboard.Username != "" {
		msg += fmt.Sprintf(" (credentials: %s/%s)", uc.Dashboard.Username, uc.Dashboard.Password)
	}
	return replyLines(uc.Formatter.Line(msg)), nil
}

func (uc *UseCase) clients(ctx context.Context, _ []string) (Reply, error) {
	clients, err := uc.Client.ListClients(ctx)
	if err != nil {
		return Reply{}, err
	}
	names := make([]string, 0, len(clients))
	for _, c := range clients {
		names = append(names, c.Name)
	}
	return replyLines(uc.Formatter.List("Clients", names)), nil
}

func (uc *UseCase) client(ctx context.Context, args []string) (Reply, error) {
	client, err := uc.Client.GetClient(ctx, args[0])
	if err != nil {
		return Reply{}, err
	}
	return replyWith(uc.Formatter.Line("Client details: "+args[0]), uc.Formatter.Attributes(client.Attributes)), nil
}

func (uc *UseCase) history(ctx context.Context, args []string) (Reply, error) {
	entries, err := uc.Client.GetClientHistory(ctx, args[0])
	if err != nil {
		return Reply{}, err
	}
	return replyEach(entries, uc.Formatter.Line("No history for "+args[0]), func(h models.HistoryEntry) string {
		statuses := make([]string, 0, len(h.History))
		for _, s := range h.History {
			statuses = append(statuses, fmt.Sprint(s))
		}
		line := fmt.Sprintf("%s: %s", h.Check, format.StatusName(h.LastStatus))
		if h.LastExecution > 0 {
			line += " at " + time.Unix(h.LastExecution, 0).UTC().Format(time.RFC3339)
		}
		if len(statuses) > 0 {
			line += " [" + strings.Join(statuses, " ") + "]"
		}
		return uc.Formatter.Line(line)
	}), nil
}

func (uc *UseCase) events(ctx context.Context, args []string) (Reply, error) {
	var (
		events []models.Event
		err    error
	)
	if len(args) == 1 {
		events, err = uc.Client.ListClientEvents(ctx, args[0])
	} else {
		events, err = uc.Client.ListEvents(ctx)
	}
	if err != nil {
		return Reply{}, err
	}
	return replyEach(events, uc.Formatter.Line("No open events"), uc.eventLine), nil
}

func (uc *UseCase) eventLine(ev models.Event) string {
	line := fmt.Sprintf("%s/%s: %s (%d occurrences)",
		ev.Client.Name, ev.Check.Name, format.StatusName(ev.Check.Status), ev.Occurrences)
	if out := strings.Join(strings.Fields(ev.Check.Output), " "); out != "" {
		line += " - " + out
	}
	return uc.Formatter.Line(line)
}

func (uc *UseCase) event(ctx context.Context, args []string) (Reply, error) {
	ev, err := uc.Client.GetEvent(ctx, args[0], args[1])
	if err != nil {
		return Reply{}, err
	}
	return replyWith(uc.eventLine(*ev), uc.Formatter.Attributes(ev.Check.Attributes)), nil
}

func (uc *UseCase) resolve(ctx context.Context, args []string) (Reply, error) {
	if err := uc.Client.ResolveEvent(ctx, args[0], args[1]); err != nil {
		return Reply{}, err
	}
	return replyLines(uc.Formatter.Line(fmt.Sprintf("Resolved %s/%s", args[0], args[1]))), nil
}

func (uc *UseCase) checks(ctx context.Context, _ []string) (Reply, error) {
	checks, err := uc.Client.ListChecks(ctx)
	if err != nil {
		return Reply{}, err
	}
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	return replyLines(uc.Formatter.List("Checks", names)), nil
}

func (uc *UseCase) check(ctx context.Context, args []string) (Reply, error) {
	check, err := uc.Client.GetCheck(ctx, args[0])
	if err != nil {
		return Reply{}, err
	}
	return replyWith(uc.Formatter.Line("Check details: "+args[0]), uc.Formatter.Attributes(check.Attributes)), nil
}

func (uc *UseCase) request(ctx context.Context, args []string) (Reply, error) {
	check, subscribers := args[0], args[1:]
	if err := uc.Client.RequestCheck(ctx, check, subscribers); err != nil {
		return Reply{}, err
	}
	msg := "Requested execution of " + check
	if len(subscribers) > 0 {
		msg += " on " + strings.Join(subscribers, ", ")
	}
	return replyLines(uc.Formatter.Line(msg)), nil
}

func (uc *UseCase) stashes(ctx context.Context, _ []string) (Reply, error) {
	stashes, err := uc.Client.ListStashes(ctx)
	if err != nil {
		return Reply{}, err
	}
	return replyEach(stashes, uc.Formatter.Line("No stashes"), func(s models.Stash) string {
		line := s.Path
		if len(s.Content) > 0 {
			line += ": " + format.Value(s.Content)
		}
		if s.Expire > 0 {
			line += fmt.Sprintf(" (expires in %ds)", s.Expire)
		}
		return uc.Formatter.Line(line)
	}), nil
}

func (uc *UseCase) silence(ctx context.Context, args []string) (Reply, error) {
	target := strings.Join(args, "/")
	payload := map[string]any{
		"reason":    "silenced from chat",
		"timestamp": time.Now().Unix(),
	}
	if err := uc.Client.CreateStash(ctx, payload, silencePrefix+"/"+target); err != nil {
		return Reply{}, err
	}
	return replyLines(uc.Formatter.Line("Silenced " + target)), nil
}

func (uc *UseCase) unsilence(ctx context.Context, args []string) (Reply, error) {
	path := strings.Trim(args[0], "/")
	if !strings.HasPrefix(path, silencePrefix+"/") {
		path = silencePrefix + "/" + path
	}
	if err := uc.Client.DeleteStash(ctx, path); err != nil {
		return Reply{}, err
	}
	return replyLines(uc.Formatter.Line("Removed stash " + path)), nil
}

func (uc *UseCase) removeClient(ctx context.Context, args []string) (Reply, error) {
	if err := uc.Client.DeleteClient(ctx, args[0]); err != nil {
		return Reply{}, err
	}
	return replyLines(uc.Formatter.Line("Removed client " + args[0])), nil
}
