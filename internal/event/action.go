package event

// Action is the category of an inbound monitoring event.
type Action string

const (
	ActionCreate   Action = "create"
	ActionResolve  Action = "resolve"
	ActionFlapping Action = "flapping"
	ActionUnknown  Action = "unknown"
)

// ParseAction classifies a raw action value. Anything that is not one of
// create, resolve or flapping, absent and non-string values included, is unknown.
func ParseAction(v any) Action {
	s, ok := v.(string)
	if !ok {
		return ActionUnknown
	}
	switch a := Action(s); a {
	case ActionCreate, ActionResolve, ActionFlapping:
		return a
	default:
		return ActionUnknown
	}
}
