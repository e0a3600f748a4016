package domain

import "time"

// CompleteTask returns a copy with Completed set and CompletedAt stamped.
// Completing an already-completed task keeps the original CompletedAt.
func CompleteTask(t *Task, now time.Time) *Task {
	out := t.Clone().(*Task)
	if !out.Completed {
		out.Completed = true
		stamp := now
		out.CompletedAt = &stamp
	}
	out.UpdatedAt = now
	return out
}

// UncompleteTask returns a copy with Completed cleared and CompletedAt
// removed.
func UncompleteTask(t *Task, now time.Time) *Task {
	out := t.Clone().(*Task)
	out.Completed = false
	out.CompletedAt = nil
	out.UpdatedAt = now
	return out
}

// ToggleTaskCompletion flips the completion state.
func ToggleTaskCompletion(t *Task, now time.Time) *Task {
	if t.Completed {
		return UncompleteTask(t, now)
	}
	return CompleteTask(t, now)
}
