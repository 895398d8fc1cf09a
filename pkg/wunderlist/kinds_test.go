package wunderlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllKinds_DocumentOrder(t *testing.T) {
	var names []string
	for _, kind := range AllKinds() {
		names = append(names, kind.String())
	}
	assert.Equal(t, []string{
		"lists", "tasks", "reminders", "subtasks", "notes", "task_positions",
		"subtask_positions", "folders", "memberships", "task_comments", "webhooks",
	}, names)
}

func TestKind_Path(t *testing.T) {
	tests := []struct {
		kind     Kind
		listID   string
		expected string
	}{
		{Lists, "", "lists"},
		{Folders, "7", "folders"},
		{Memberships, "", "memberships"},
		{Tasks, "1", "tasks?list_id=1"},
		{Reminders, "1", "reminders?list_id=1"},
		{Subtasks, "1", "subtasks?list_id=1"},
		{Notes, "1", "notes?list_id=1"},
		{TaskPositions, "42", "task_positions?list_id=42"},
		{SubtaskPositions, "42", "subtask_positions?list_id=42"},
		{TaskComments, "42", "task_comments?list_id=42"},
		{Webhooks, "42", "webhooks?list_id=42"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.kind.Path(tt.listID))
		})
	}
}

func TestCompletedTasksPath_DiffersFromTasks(t *testing.T) {
	assert.Equal(t, "tasks?list_id=1&completed=true", CompletedTasksPath("1"))
	assert.NotEqual(t, Tasks.Path("1"), CompletedTasksPath("1"))
}

func TestKind_Label(t *testing.T) {
	assert.Equal(t, "Task Positions", TaskPositions.Label())
	assert.Equal(t, "Lists", Lists.Label())
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind("subtask_positions")
	require.NoError(t, err)
	assert.Equal(t, SubtaskPositions, kind)

	_, err = ParseKind("projects")
	assert.Error(t, err)
}

func TestKind_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "Kind(99)", Kind(99).String())
}
