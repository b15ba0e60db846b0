package resolver

import "mouldsite/internal/locations"

type State int

const (
	StateIdle State = iota
	StateLoading
	StateResolved
	StateNotFound
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Reason tells operators why a navigation ended in StateNotFound. Visitors
// see the same redirect for every reason.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonMissingParameter Reason = "missing_parameter"
	ReasonUnknownSlug      Reason = "unknown_slug"
	ReasonLoadFailure      Reason = "load_failure"
	ReasonLoadTimeout      Reason = "load_timeout"
	ReasonCanceled         Reason = "canceled"
)

type Result struct {
	State      State
	Slug       string
	Identifier string
	Page       locations.Page
	Reason     Reason
	Err        error
}

func Loading(slug string) Result {
	return Result{State: StateLoading, Slug: slug}
}

func Resolved(slug string, identifier string, page locations.Page) Result {
	return Result{State: StateResolved, Slug: slug, Identifier: identifier, Page: page}
}

func NotFound(slug string, reason Reason, err error) Result {
	return Result{State: StateNotFound, Slug: slug, Reason: reason, Err: err}
}

func (r Result) Terminal() bool {
	return r.State == StateResolved || r.State == StateNotFound
}

// Outcome is the metrics label for a terminal result.
func (r Result) Outcome() string {
	if r.State == StateResolved {
		return "resolved"
	}
	if r.Reason == ReasonNone {
		return r.State.String()
	}
	return string(r.Reason)
}
