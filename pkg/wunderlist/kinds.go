package wunderlist

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind is one of the resource collections exported from an account
type Kind int

const (
	Lists Kind = iota
	Tasks
	Reminders
	Subtasks
	Notes
	TaskPositions
	SubtaskPositions
	Folders
	Memberships
	TaskComments
	Webhooks
)

// Scope tells whether a kind is fetched once per account or once per list
type Scope int

const (
	AccountScoped Scope = iota
	ListScoped
)

var kindSpecs = [...]struct {
	name  string
	scope Scope
}{
	Lists:            {"lists", AccountScoped},
	Tasks:            {"tasks", ListScoped},
	Reminders:        {"reminders", ListScoped},
	Subtasks:         {"subtasks", ListScoped},
	Notes:            {"notes", ListScoped},
	TaskPositions:    {"task_positions", ListScoped},
	SubtaskPositions: {"subtask_positions", ListScoped},
	Folders:          {"folders", AccountScoped},
	Memberships:      {"memberships", AccountScoped},
	TaskComments:     {"task_comments", ListScoped},
	Webhooks:         {"webhooks", ListScoped},
}

// AllKinds returns every kind in export document order
func AllKinds() []Kind {
	kinds := make([]Kind, len(kindSpecs))
	for i := range kindSpecs {
		kinds[i] = Kind(i)
	}
	return kinds
}

func ParseKind(name string) (Kind, error) {
	for i, spec := range kindSpecs {
		if spec.name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resource kind: %s", name)
}

func (k Kind) valid() bool {
	return k >= 0 && int(k) < len(kindSpecs)
}

func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindSpecs[k].name
}

func (k Kind) Scope() Scope {
	return kindSpecs[k].scope
}

// Label returns a human-readable name, e.g. "Task Positions"
func (k Kind) Label() string {
	caser := cases.Title(language.English)
	return caser.String(strings.ReplaceAll(k.String(), "_", " "))
}

// Path returns the request path for the kind. listID is ignored for
// account-scoped kinds.
func (k Kind) Path(listID string) string {
	if k.Scope() == AccountScoped {
		return k.String()
	}
	return fmt.Sprintf("%s?list_id=%s", k, url.QueryEscape(listID))
}

// CompletedTasksPath is distinct from Tasks.Path and cached separately
func CompletedTasksPath(listID string) string {
	return fmt.Sprintf("tasks?list_id=%s&completed=true", url.QueryEscape(listID))
}
