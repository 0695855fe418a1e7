package event

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Alwanly/sensu-relay/pkg/truncate"
)

// Payload keys a message template may require.
const (
	KeyClientName       = "client.name"
	KeyClientAddress    = "client.address"
	KeyClientDatacenter = "client.datacenter"
	KeyCheckName        = "check.name"
	KeyCheckOutput      = "check.output"
	KeyCheckBroadcast   = "check.broadcast"
)

// canonical order used when reporting missing keys
var knownKeys = []string{
	KeyClientName,
	KeyClientAddress,
	KeyClientDatacenter,
	KeyCheckName,
	KeyCheckOutput,
}

// NormalizedEvent is the validated form of one webhook payload.
// Hostname and CheckName are never empty.
type NormalizedEvent struct {
	Action          Action
	Hostname        string
	Address         string
	Datacenter      string
	CheckName       string
	Output          string
	OutputTruncated bool
	Occurrences     int
	Timestamp       int64
	BroadcastTarget string
}

type Config struct {
	// Required lists the payload keys the active message template needs.
	// client.name and check.name are always required.
	Required []string
	// MaxOutputLength bounds the check output in characters; 0 disables the bound.
	MaxOutputLength int
}

// Normalizer turns loosely-typed webhook payloads into NormalizedEvents.
// It holds no mutable state and is safe for concurrent use.
type Normalizer struct {
	required  map[string]bool
	maxOutput int
}

func NewNormalizer(cfg Config) *Normalizer {
	required := map[string]bool{
		KeyClientName: true,
		KeyCheckName:  true,
	}
	for _, k := range cfg.Required {
		required[k] = true
	}
	return &Normalizer{
		required:  required,
		maxOutput: cfg.MaxOutputLength,
	}
}

// Normalize validates payload and extracts a NormalizedEvent.
// It returns a *MalformedEventError when a required key is missing and ErrDeclined when the
// check carries no broadcast target.
func (n *Normalizer) Normalize(payload map[string]any) (*NormalizedEvent, error) {
	client, _ := payload["client"].(map[string]any)
	check, _ := payload["check"].(map[string]any)

	values := map[string]string{}
	for _, key := range knownKeys {
		obj, field := client, key[len("client."):]
		if key == KeyCheckName || key == KeyCheckOutput {
			obj, field = check, key[len("check."):]
		}

		v, present := lookupString(obj, field)
		if !present {
			if n.required[key] {
				return nil, &MalformedEventError{Key: key}
			}
			continue
		}
		if v == "" && (key == KeyClientName || key == KeyCheckName) {
			return nil, &MalformedEventError{Key: key, Reason: "must not be empty"}
		}
		values[key] = v
	}

	target, err := broadcastTarget(check)
	if err != nil {
		return nil, err
	}
	if target == "" {
		return nil, ErrDeclined
	}

	output, truncated := truncate.String(values[KeyCheckOutput], n.maxOutput)

	return &NormalizedEvent{
		Action:          ParseAction(payload["action"]),
		Hostname:        values[KeyClientName],
		Address:         values[KeyClientAddress],
		Datacenter:      values[KeyClientDatacenter],
		CheckName:       values[KeyCheckName],
		Output:          output,
		OutputTruncated: truncated,
		Occurrences:     int(toInt64(payload["occurrences"])),
		Timestamp:       toInt64(payload["timestamp"]),
		BroadcastTarget: target,
	}, nil
}

// broadcastTarget prefers check.broadcast over check.custom.broadcast.
// An empty string counts as unset.
func broadcastTarget(check map[string]any) (string, error) {
	if v, ok := check["broadcast"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return "", &MalformedEventError{Key: KeyCheckBroadcast, Reason: "must be a string"}
		}
		if s != "" {
			return s, nil
		}
	}

	custom, ok := check["custom"].(map[string]any)
	if !ok {
		return "", nil
	}
	if v, ok := custom["broadcast"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return "", &MalformedEventError{Key: "check.custom.broadcast", Reason: "must be a string"}
		}
		return s, nil
	}
	return "", nil
}

// lookupString reads a scalar field as a string. Non-scalar values count as absent.
func lookupString(obj map[string]any, field string) (string, bool) {
	v, ok := obj[field]
	if !ok || v == nil {
		return "", false
	}
	switch t := v.(type) {
	case string:
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int64:
		return fmt.Sprint(t), true
	default:
		return "", false
	}
}

func toInt64(v any) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case int:
		return int64(t)
	case int64:
		return t
	case json.Number:
		i, _ := t.Int64()
		return i
	case string:
		i, _ := strconv.ParseInt(t, 10, 64)
		return i
	default:
		return 0
	}
}
