package format

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alwanly/sensu-relay/internal/event"
	"github.com/Alwanly/sensu-relay/pkg/truncate"
)

func sampleEvent(action event.Action) *event.NormalizedEvent {
	return &event.NormalizedEvent{
		Action:     action,
		Hostname:   "host1",
		Address:    "10.0.0.1",
		Datacenter: "dc1",
		CheckName:  "disk",
		Output:     "95% full",
	}
}

func TestEventTemplatePerAction(t *testing.T) {
	f := NewFormatter(Config{Style: StyleInline, SourceTag: "[sensu]"})

	tests := []struct {
		action event.Action
		want   string
	}{
		{event.ActionCreate, "[sensu] NEW PROBLEM: host1 (10.0.0.1): disk - 95% full"},
		{event.ActionResolve, "[sensu] RESOLVED PROBLEM: host1 (10.0.0.1): disk - 95% full"},
		{event.ActionFlapping, "[sensu] FLAPPING PROBLEM: host1 (10.0.0.1): disk - 95% full"},
		{event.ActionUnknown, "[sensu] UNKNOWN PROBLEM: host1 (10.0.0.1): disk - 95% full"},
		{event.Action("bogus"), "[sensu] UNKNOWN PROBLEM: host1 (10.0.0.1): disk - 95% full"},
	}
	for _, tt := range tests {
		t.Run(string(tt.action), func(t *testing.T) {
			assert.Equal(t, tt.want, f.Event(sampleEvent(tt.action)))
		})
	}
}

func TestEventLinkStyle(t *testing.T) {
	f := NewFormatter(Config{Style: StyleLink, DashboardURL: "https://uchiwa.example.com/", SourceTag: "[sensu]"})

	ev := sampleEvent(event.ActionCreate)
	ev.Address = ""
	got := f.Event(ev)

	assert.Equal(t, "[sensu] NEW PROBLEM: host1 (dc1): disk @ https://uchiwa.example.com/#/client/dc1/host1?check=disk", got)
}

func TestEventOmitsEmptyLocation(t *testing.T) {
	f := NewFormatter(Config{})
	ev := sampleEvent(event.ActionCreate)
	ev.Address, ev.Datacenter = "", ""

	assert.Equal(t, "NEW PROBLEM: host1: disk - 95% full", f.Event(ev))
}

func TestEventFlattensMultilineOutput(t *testing.T) {
	f := NewFormatter(Config{})
	ev := sampleEvent(event.ActionCreate)
	ev.Output = "line one\nline  two\n"

	assert.Equal(t, "NEW PROBLEM: host1 (10.0.0.1): disk - line one line two", f.Event(ev))
}

func TestRenderedLengthNeverExceedsMax(t *testing.T) {
	for _, max := range []int{20, 64, DefaultMaxLength} {
		f := NewFormatter(Config{MaxLength: max, SourceTag: "[sensu]"})
		for _, n := range []int{0, 10, 100, 1000} {
			ev := sampleEvent(event.ActionCreate)
			ev.Output = strings.Repeat("o", n)

			line := f.Event(ev)
			assert.LessOrEqual(t, truncate.Len(line), max)
			assert.True(t, strings.HasPrefix(line, "[sensu] "))

			full := NewFormatter(Config{MaxLength: 100000, SourceTag: "[sensu]"}).Event(ev)
			assert.Equal(t, truncate.Len(full) > max, strings.HasSuffix(line, truncate.Marker))
		}
	}
}

func TestAttributesYieldsSortedLines(t *testing.T) {
	f := NewFormatter(Config{SourceTag: "[sensu]"})
	attrs := map[string]any{
		"name":          "host1",
		"address":       "10.0.0.1",
		"subscriptions": []any{"base", "web"},
		"timestamp":     float64(1700000000),
	}

	var lines []string
	for line := range f.Attributes(attrs) {
		lines = append(lines, line)
	}

	require.Len(t, lines, 4)
	assert.Equal(t, []string{
		"[sensu] address: 10.0.0.1",
		"[sensu] name: host1",
		`[sensu] subscriptions: ["base","web"]`,
		"[sensu] timestamp: 1700000000",
	}, lines)
}

func TestAttributesStopsEarly(t *testing.T) {
	f := NewFormatter(Config{})
	seen := 0
	for range f.Attributes(map[string]any{"a": 1, "b": 2, "c": 3}) {
		seen++
		break
	}
	assert.Equal(t, 1, seen)
}

func TestListAndStyle(t *testing.T) {
	f := NewFormatter(Config{SourceTag: "[sensu]"})
	assert.Equal(t, "[sensu] Clients: a, b", f.List("Clients", []string{"a", "b"}))
	assert.Equal(t, "[sensu] Clients: none", f.List("Clients", nil))

	style, err := ParseStyle("LINK")
	require.NoError(t, err)
	assert.Equal(t, StyleLink, style)
	assert.Equal(t, []string{event.KeyClientDatacenter}, style.RequiredKeys())

	_, err = ParseStyle("fancy")
	assert.Error(t, err)
}

func TestAttributeValuesAreSingleLine(t *testing.T) {
	f := NewFormatter(Config{})
	lines := slices.Collect(f.Attributes(map[string]any{
		"command": "check-disk.rb\n  -w 80 -c 90",
		"output":  "line one\r\nline two\t",
	}))

	assert.Equal(t, []string{"command: check-disk.rb -w 80 -c 90", "output: line one line two"}, lines)
}

func TestBatchNeverExceedsMax(t *testing.T) {
	f := NewFormatter(Config{MaxLength: 100, SourceTag: "[sensu]"})
	lines := []string{
		f.Line("Client details: host1"),
		f.Line("a: " + strings.Repeat("x", 400)),
		f.Line("b: " + strings.Repeat("y", 400)),
		f.Line("c: short"),
		strings.Repeat("z", 150),
	}

	msgs := f.Batch(lines)
	require.NotEmpty(t, msgs)
	for _, m := range msgs {
		assert.LessOrEqual(t, truncate.Len(m), 100, m)
	}
	joined := strings.Split(strings.Join(msgs, "\n"), "\n")
	require.Len(t, joined, len(lines))
	assert.Equal(t, lines[:4], joined[:4])

	assert.Equal(t, []string{"a\nb"}, f.Batch([]string{"a", "b"}))
	assert.Empty(t, f.Batch(nil))
}
