package broadcast

import (
	"fmt"
	"strings"
)

// Policy decides how a broadcast target is matched against the configured rooms.
type Policy string

const (
	// PolicyExact sends only to the room equal to the target. An absent target sends nowhere.
	PolicyExact Policy = "exact"
	// PolicySubstring is the legacy behaviour: an absent target sends to every room,
	// otherwise every room contained in the target string is selected.
	PolicySubstring Policy = "substring"
)

func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyExact, PolicySubstring:
		return p, nil
	case "":
		return PolicyExact, nil
	default:
		return "", fmt.Errorf("unknown broadcast policy %q", s)
	}
}

// Decision is the ordered set of rooms that receive a message.
type Decision struct {
	Rooms []string
}

func (d Decision) Empty() bool {
	return len(d.Rooms) == 0
}

// Router selects destination rooms from an allow-list. It only decides where a message
// goes; delivery belongs to the chat sender.
type Router struct {
	policy Policy
	rooms  []string
}

// NewRouter keeps the configured room order and drops blanks and duplicates.
func NewRouter(policy Policy, rooms []string) *Router {
	seen := make(map[string]bool, len(rooms))
	allowed := make([]string, 0, len(rooms))
	for _, r := range rooms {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		allowed = append(allowed, r)
	}
	if policy == "" {
		policy = PolicyExact
	}
	return &Router{policy: policy, rooms: allowed}
}

func (r *Router) Policy() Policy {
	return r.policy
}

// Rooms returns a copy of the allow-list.
func (r *Router) Rooms() []string {
	return append([]string(nil), r.rooms...)
}

// Route resolves target against the allow-list. A nil target means no target was set.
func (r *Router) Route(target *string) Decision {
	var selected []string

	switch r.policy {
	case PolicySubstring:
		for _, room := range r.rooms {
			if target == nil || strings.Contains(*target, room) {
				selected = append(selected, room)
			}
		}
	default:
		if target == nil {
			return Decision{}
		}
		for _, room := range r.rooms {
			if room == *target {
				selected = append(selected, room)
			}
		}
	}

	return Decision{Rooms: selected}
}

// To is a convenience for routing a target that is known to be set.
func (r *Router) To(target string) Decision {
	return r.Route(&target)
}

// All routes a message with no target.
func (r *Router) All() Decision {
	return r.Route(nil)
}

// Broadcast selects every allowed room regardless of policy.
func (r *Router) Broadcast() Decision {
	return Decision{Rooms: r.Rooms()}
}
