package wunderlist

import "fmt"

type Outcome int

const (
	// Empty is a successful response with a null body
	Empty Outcome = iota
	Success
	// Failure is a non-2xx response; the request was logged and not cached
	Failure
)

func (o Outcome) String() string {
	switch o {
	case Empty:
		return "empty"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of a GET. Data is set only for Success; Status and
// Message only for Failure.
type Result struct {
	Outcome Outcome
	Path    string
	Data    any
	Status  int
	Message string
}

func Succeeded(path string, data any) Result {
	if data == nil {
		return Result{Outcome: Empty, Path: path}
	}
	return Result{Outcome: Success, Path: path, Data: data}
}

func Failed(path string, status int, message string) Result {
	return Result{Outcome: Failure, Path: path, Status: status, Message: message}
}

func (r Result) OK() bool {
	return r.Outcome == Success
}
