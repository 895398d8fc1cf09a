package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/mholzen/wunderlist-backup/pkg/wunderlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeService answers GETs with bodies keyed by request URI without the
// leading slash, and 404 for anything else. Status overrides body.
type fakeService struct {
	bodies   map[string]string
	statuses map[string]int
	requests []string
}

func (f *fakeService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.URL.RequestURI()[1:]
	f.requests = append(f.requests, key)
	if status, ok := f.statuses[key]; ok {
		w.WriteHeader(status)
		return
	}
	body, ok := f.bodies[key]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func emptyListBodies(listID string) map[string]string {
	bodies := map[string]string{wunderlist.CompletedTasksPath(listID): "[]"}
	for _, kind := range wunderlist.AllKinds() {
		if kind.Scope() == wunderlist.ListScoped {
			bodies[kind.Path(listID)] = "[]"
		}
	}
	return bodies
}

func merge(maps ...map[string]string) map[string]string {
	out := map[string]string{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

type exportedIDs struct {
	Data map[string][]struct {
		ID int `json:"id"`
	} `json:"data"`
}

func idsOf(t *testing.T, stdout string, kind wunderlist.Kind) []int {
	t.Helper()
	var doc exportedIDs
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	ids := []int{}
	for _, item := range doc.Data[kind.String()] {
		ids = append(ids, item.ID)
	}
	return ids
}

func runCommand(t *testing.T, service http.Handler, args ...string) (string, string, error) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })
	t.Setenv(wunderlist.AccessTokenEnv, "")
	t.Setenv(wunderlist.ClientIDEnv, "")

	server := httptest.NewServer(service)
	t.Cleanup(server.Close)

	var stdout, stderr bytes.Buffer
	cmd := newRootCommand(&stdout, &stderr)
	argv := append([]string{"wunderlist-backup", "--base-url", server.URL + "/", "--config", ""}, args...)
	err := cmd.Run(context.Background(), argv)
	return stdout.String(), stderr.String(), err
}

func TestExport_SingleList(t *testing.T) {
	service := &fakeService{bodies: merge(map[string]string{
		"user":    `{"id": 99}`,
		"lists":   `[{"id": 1, "title": "Home"}]`,
		"folders": `[]`,
	}, emptyListBodies("1"))}

	stdout, stderr, err := runCommand(t, service, "--access-token", "t")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &doc))
	assert.Equal(t, float64(99), doc["user"])
	assert.NotEmpty(t, doc["exported"])

	data := doc["data"].(map[string]any)
	assert.Len(t, data, 11)
	assert.Equal(t, []any{map[string]any{"id": float64(1), "title": "Home"}}, data["lists"])
	for _, kind := range wunderlist.AllKinds() {
		if kind == wunderlist.Lists {
			continue
		}
		assert.Equal(t, []any{}, data[kind.String()], kind.String())
	}

	assert.Contains(t, stderr, "INFO: initialized")
	assert.Contains(t, stderr, "processing 1 lists")
	assert.Contains(t, stderr, "(1/1) Home")
	assert.NotContains(t, service.requests, "memberships")
}

func TestExport_MergesTasksInListOrder(t *testing.T) {
	service := &fakeService{bodies: merge(
		emptyListBodies("1"),
		emptyListBodies("2"),
		map[string]string{
			"user":                           `{"id": 5}`,
			"lists":                          `[{"id": 1, "title": "A"}, {"id": 2, "title": "B"}]`,
			"folders":                        `[{"id": 300}]`,
			"tasks?list_id=1":                `[{"id": 10}, {"id": 11}]`,
			"tasks?list_id=1&completed=true": `[{"id": 12}]`,
			"tasks?list_id=2":                `[{"id": 20}]`,
			"tasks?list_id=2&completed=true": `[{"id": 21}, {"id": 22}]`,
			"notes?list_id=2":                `{"id": 900}`,
		},
	)}

	stdout, _, err := runCommand(t, service, "--client-id", "c")
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11, 12, 20, 21, 22}, idsOf(t, stdout, wunderlist.Tasks))
	assert.Equal(t, []int{900}, idsOf(t, stdout, wunderlist.Notes))
	assert.Equal(t, []int{300}, idsOf(t, stdout, wunderlist.Folders))
	assert.Equal(t, []int{1, 2}, idsOf(t, stdout, wunderlist.Lists))

	assert.Equal(t, []string{
		"user", "lists", "folders",
		"tasks?list_id=1", "tasks?list_id=1&completed=true", "reminders?list_id=1", "subtasks?list_id=1",
		"notes?list_id=1", "task_positions?list_id=1", "subtask_positions?list_id=1",
		"tasks?list_id=2", "tasks?list_id=2&completed=true", "reminders?list_id=2", "subtasks?list_id=2",
		"notes?list_id=2", "task_positions?list_id=2", "subtask_positions?list_id=2",
	}, service.requests)
}

func TestExport_FailedRequestContributesNothing(t *testing.T) {
	service := &fakeService{
		bodies: merge(emptyListBodies("1"), map[string]string{
			"user":                           `{"id": 1}`,
			"lists":                          `[{"id": 1, "title": "Home"}]`,
			"folders":                        `[]`,
			"tasks?list_id=1&completed=true": `[{"id": 7}]`,
			"reminders?list_id=1":            `[{"id": 8}]`,
		}),
		statuses: map[string]int{"tasks?list_id=1": http.StatusInternalServerError},
	}

	stdout, stderr, err := runCommand(t, service, "--access-token", "t")
	require.NoError(t, err)

	assert.Equal(t, []int{7}, idsOf(t, stdout, wunderlist.Tasks))
	assert.Equal(t, []int{8}, idsOf(t, stdout, wunderlist.Reminders))

	assert.Contains(t, stderr, "ERROR: request failed (status='500' message='Internal Server Error' path='tasks?list_id=1'")
	assert.Contains(t, stderr, "failed_requests='1'")
}

func TestExport_AllKinds(t *testing.T) {
	service := &fakeService{bodies: merge(emptyListBodies("1"), map[string]string{
		"user":                    `{"id": 1}`,
		"lists":                   `[{"id": 1, "title": "Home"}]`,
		"folders":                 `[]`,
		"memberships":             `[{"id": 40}]`,
		"task_comments?list_id=1": `[{"id": 41}]`,
		"webhooks?list_id=1":      `[{"id": 42}]`,
	})}

	stdout, _, err := runCommand(t, service, "--access-token", "t", "--all-kinds")
	require.NoError(t, err)

	assert.Equal(t, []int{40}, idsOf(t, stdout, wunderlist.Memberships))
	assert.Equal(t, []int{41}, idsOf(t, stdout, wunderlist.TaskComments))
	assert.Equal(t, []int{42}, idsOf(t, stdout, wunderlist.Webhooks))
}

func TestExport_MissingCredentials(t *testing.T) {
	service := &fakeService{}
	stdout, _, err := runCommand(t, service)
	require.Error(t, err)

	var configErr *wunderlist.ConfigurationError
	assert.True(t, errors.As(err, &configErr))
	assert.Empty(t, stdout)
	assert.Empty(t, service.requests)
}

func TestExport_UserFailureAborts(t *testing.T) {
	service := &fakeService{statuses: map[string]int{"user": http.StatusUnauthorized}}
	stdout, _, err := runCommand(t, service, "--access-token", "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot resolve user")
	assert.Empty(t, stdout)
}

func TestExport_TransportErrorAbortsWithoutOutput(t *testing.T) {
	fake := &fakeService{bodies: map[string]string{
		"user":    `{"id": 1}`,
		"lists":   `[{"id": 1, "title": "Home"}]`,
		"folders": `[]`,
	}}
	service := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/tasks" {
			if hj, ok := w.(http.Hijacker); ok {
				if conn, _, err := hj.Hijack(); err == nil {
					conn.Close()
				}
			}
			return
		}
		fake.ServeHTTP(w, r)
	})

	stdout, _, err := runCommand(t, service, "--access-token", "t")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot get tasks?list_id=1")
	assert.Empty(t, stdout)
}

func TestExport_WritesOutputFile(t *testing.T) {
	service := &fakeService{bodies: merge(emptyListBodies("1"), map[string]string{
		"user":    `{"id": 1}`,
		"lists":   `[{"id": 1, "title": "Home"}]`,
		"folders": `[]`,
	})}
	path := filepath.Join(t.TempDir(), "backup.json")

	stdout, stderr, err := runCommand(t, service, "--access-token", "t", "--output", path, "--pretty")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "backup written")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  \"user\": 1,")
}

func TestListSteps_Order(t *testing.T) {
	var labels []string
	for _, step := range listSteps(exportOptions{}) {
		labels = append(labels, step.label)
	}
	assert.Equal(t, []string{
		"Tasks", "Completed Tasks", "Reminders", "Subtasks", "Notes", "Task Positions", "Subtask Positions",
	}, labels)

	all := listSteps(exportOptions{allKinds: true})
	assert.Len(t, all, 9)
	assert.Equal(t, wunderlist.Webhooks, all[8].kind)
}
