package event

import "strings"

// Topic is a dot-separated event name or subscription pattern.
type Topic string

// Validate checks that no segment is empty.
func (t Topic) Validate() error {
	if t == "" {
		return ErrInvalidTopic
	}
	for _, seg := range strings.Split(string(t), ".") {
		if seg == "" {
			return ErrInvalidTopic
		}
	}
	return nil
}

// Matches reports whether the pattern t matches the concrete topic.
// "*" matches exactly one segment; a trailing "**" matches one or more.
func (t Topic) Matches(concrete Topic) bool {
	pattern := strings.Split(string(t), ".")
	parts := strings.Split(string(concrete), ".")

	for i, seg := range pattern {
		if seg == "**" && i == len(pattern)-1 {
			return len(parts) > i
		}
		if i >= len(parts) {
			return false
		}
		if seg != "*" && seg != parts[i] {
			return false
		}
	}
	return len(parts) == len(pattern)
}
