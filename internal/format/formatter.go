package format

import (
	"encoding/json"
	"fmt"
	"iter"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/Alwanly/sensu-relay/internal/event"
	"github.com/Alwanly/sensu-relay/pkg/truncate"
)

// DefaultMaxLength fits a single IRC PRIVMSG with room for the protocol overhead.
const DefaultMaxLength = 460

// Style selects how an event line refers to the check result.
type Style string

const (
	// StyleInline puts the (truncated) check output in the line.
	StyleInline Style = "inline"
	// StyleLink puts a dashboard link to the check in the line.
	StyleLink Style = "link"
)

func ParseStyle(s string) (Style, error) {
	switch st := Style(strings.ToLower(strings.TrimSpace(s))); st {
	case StyleInline, StyleLink:
		return st, nil
	case "":
		return StyleInline, nil
	default:
		return "", fmt.Errorf("unknown message style %q", s)
	}
}

// RequiredKeys lists the payload keys the style's templates interpolate.
func (s Style) RequiredKeys() []string {
	if s == StyleLink {
		return []string{event.KeyClientDatacenter}
	}
	return []string{event.KeyCheckOutput}
}

var labels = map[event.Action]string{
	event.ActionCreate:   "NEW PROBLEM",
	event.ActionResolve:  "RESOLVED PROBLEM",
	event.ActionFlapping: "FLAPPING PROBLEM",
	event.ActionUnknown:  "UNKNOWN PROBLEM",
}

type Config struct {
	Style        Style
	MaxLength    int
	SourceTag    string
	DashboardURL string
}

// Formatter renders chat lines bounded by MaxLength characters, source tag included.
type Formatter struct {
	style     Style
	maxLength int
	prefix    string
	dashboard string
}

func NewFormatter(cfg Config) *Formatter {
	f := &Formatter{
		style:     cfg.Style,
		maxLength: cfg.MaxLength,
		dashboard: strings.TrimRight(cfg.DashboardURL, "/"),
	}
	if f.style == "" {
		f.style = StyleInline
	}
	if f.maxLength <= 0 {
		f.maxLength = DefaultMaxLength
	}
	if cfg.SourceTag != "" {
		f.prefix = cfg.SourceTag + " "
	}
	return f
}

func (f *Formatter) Style() Style {
	return f.style
}

// Event renders the single chat line for a normalized event.
func (f *Formatter) Event(ev *event.NormalizedEvent) string {
	label, ok := labels[ev.Action]
	if !ok {
		label = labels[event.ActionUnknown]
	}

	var b strings.Builder
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(ev.Hostname)
	if where := firstNonEmpty(ev.Address, ev.Datacenter); where != "" {
		fmt.Fprintf(&b, " (%s)", where)
	}
	b.WriteString(": ")
	b.WriteString(ev.CheckName)

	switch f.style {
	case StyleLink:
		fmt.Fprintf(&b, " @ %s", f.CheckURL(ev.Datacenter, ev.Hostname, ev.CheckName))
	default:
		if ev.Output != "" {
			fmt.Fprintf(&b, " - %s", strings.Join(strings.Fields(ev.Output), " "))
		}
	}

	return f.Line(b.String())
}

// CheckURL links to the check view of the dashboard.
func (f *Formatter) CheckURL(datacenter, hostname, check string) string {
	return fmt.Sprintf("%s/#/client/%s/%s?check=%s",
		f.dashboard,
		url.PathEscape(datacenter),
		url.PathEscape(hostname),
		url.QueryEscape(check),
	)
}

// Line prefixes body with the source tag and truncates the result to the maximum length.
func (f *Formatter) Line(body string) string {
	budget := f.maxLength - truncate.Len(f.prefix)
	if budget <= 0 {
		line, _ := truncate.String(f.prefix+body, f.maxLength)
		return line
	}
	body, _ = truncate.String(body, budget)
	return f.prefix + body
}

// List renders "label: a, b, c" on one line.
func (f *Formatter) List(label string, items []string) string {
	if len(items) == 0 {
		return f.Line(label + ": none")
	}
	return f.Line(label + ": " + strings.Join(items, ", "))
}

// Attributes yields one "key: value" line per attribute, keys in sorted order.
// The sequence is lazy; callers may stop early or stream lines as they come.
func (f *Formatter) Attributes(attrs map[string]any) iter.Seq[string] {
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	return func(yield func(string) bool) {
		for _, k := range keys {
			if !yield(f.Line(fmt.Sprintf("%s: %s", k, Value(attrs[k])))) {
				return
			}
		}
	}
}

// Batch joins lines with newlines into as few messages as fit the maximum length.
// A line that alone exceeds the maximum is truncated into its own message.
func (f *Formatter) Batch(lines []string) []string {
	var (
		out  []string
		cur  strings.Builder
		size int
	)
	flush := func() {
		if size > 0 {
			out = append(out, cur.String())
			cur.Reset()
			size = 0
		}
	}

	for _, line := range lines {
		line, _ = truncate.String(line, f.maxLength)
		n := truncate.Len(line)
		if size > 0 && size+1+n > f.maxLength {
			flush()
		}
		if size > 0 {
			cur.WriteByte('\n')
			size++
		}
		cur.WriteString(line)
		size += n
	}
	flush()
	return out
}

// Value renders an attribute value on a single line; objects and arrays are rendered
// as compact JSON.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.Join(strings.Fields(t), " ")
	case float64:
		// JSON numbers decode as float64; keep integral values readable
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	default:
		return fmt.Sprint(t)
	}
}

// StatusName maps a check exit status to its conventional name.
func StatusName(status int) string {
	switch status {
	case 0:
		return "OK"
	case 1:
		return "WARNING"
	case 2:
		return "CRITICAL"
	default:
		return "UNKNOWN"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
