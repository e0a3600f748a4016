package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompleteTask_StampsCompletedAt(t *testing.T) {
	task, err := NewTask(taskDraft(), testNow)
	require.NoError(t, err)

	done := CompleteTask(task, testNow)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testNow, *done.CompletedAt)
	assert.False(t, task.Completed, "input must not change")
}

func TestCompleteTask_AlreadyCompleted(t *testing.T) {
	task, err := NewTask(taskDraft(), testNow)
	require.NoError(t, err)

	first := CompleteTask(task, testNow)
	later := testNow.Add(2 * time.Hour)
	again := CompleteTask(first, later)
	assert.Equal(t, testNow, *again.CompletedAt, "should not overwrite existing CompletedAt")
	assert.Equal(t, later, again.UpdatedAt)
}

func TestUncompleteTask_ClearsCompletedAt(t *testing.T) {
	task, err := NewTask(taskDraft(), testNow)
	require.NoError(t, err)

	done := CompleteTask(task, testNow)
	undone := UncompleteTask(done, testNow.Add(time.Minute))
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)
}

func TestToggleTaskCompletion(t *testing.T) {
	task, err := NewTask(taskDraft(), testNow)
	require.NoError(t, err)

	on := ToggleTaskCompletion(task, testNow)
	assert.True(t, on.Completed)
	off := ToggleTaskCompletion(on, testNow)
	assert.False(t, off.Completed)
	assert.Nil(t, off.CompletedAt)
}
