package history

// Transaction runs fn inside a group. When fn fails the group is cancelled
// and rollback, if not nil, receives the state from before the group's first
// recorded edit.
func (h *History[T]) Transaction(name string, fn func() error, rollback func(T)) error {
	h.BeginGroup(name)

	if err := fn(); err != nil {
		if before, ok := h.CancelGroupState(); ok && rollback != nil {
			rollback(before)
		}
		return err
	}

	h.EndGroup()
	return nil
}
