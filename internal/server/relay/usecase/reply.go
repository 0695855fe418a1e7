package usecase

import (
	"iter"
	"slices"
)

// Reply is the lazily produced answer to a chat command.
type Reply struct {
	Lines iter.Seq[string]
}

func replyLines(lines ...string) Reply {
	return Reply{Lines: slices.Values(lines)}
}

// replyWith yields head first, then every line of tail.
func replyWith(head string, tail iter.Seq[string]) Reply {
	return Reply{Lines: func(yield func(string) bool) {
		if !yield(head) {
			return
		}
		for line := range tail {
			if !yield(line) {
				return
			}
		}
	}}
}

// replyEach yields render(item) for every item, or empty when there are none.
func replyEach[T any](items []T, empty string, render func(T) string) Reply {
	if len(items) == 0 {
		return replyLines(empty)
	}
	return Reply{Lines: func(yield func(string) bool) {
		for _, item := range items {
			if !yield(render(item)) {
				return
			}
		}
	}}
}
