package appcore

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/starfederation/datastar-go/datastar"
)

const maxQueryLength = 64

// AreasSignalState mirrors the datastar signals on the areas page.
type AreasSignalState struct {
	Query  string `json:"q"`
	Region string `json:"region"`
}

// NavigatorSignalState carries the viewer id that groups one tab's live
// location navigations.
type NavigatorSignalState struct {
	NavID string `json:"navId"`
}

func AreasSignalsJSON(state AreasSignalState) string {
	return marshalSignals(state)
}

// NavigatorSignalsJSON seeds a fresh viewer id for the page being rendered.
func NavigatorSignalsJSON() string {
	return marshalSignals(NavigatorSignalState{NavID: uuid.NewString()})
}

func ParseAreasState(r *http.Request) (AreasSignalState, error) {
	fallback := AreasSignalState{
		Query:  r.URL.Query().Get("q"),
		Region: r.URL.Query().Get("region"),
	}

	state, err := readDatastarState(r, fallback)
	if err != nil {
		return AreasSignalState{}, err
	}
	return sanitizeAreasState(state), nil
}

// ParseNavigatorID returns the viewer id sent with a live request, or a new
// one when it is missing or malformed.
func ParseNavigatorID(r *http.Request) string {
	state, err := readDatastarState(r, NavigatorSignalState{})
	if err == nil {
		if parsed, parseErr := uuid.Parse(strings.TrimSpace(state.NavID)); parseErr == nil {
			return parsed.String()
		}
	}
	return uuid.NewString()
}

func BuildAreasURL(state AreasSignalState) string {
	state = sanitizeAreasState(state)

	q := make(url.Values)
	if state.Query != "" {
		q.Set("q", state.Query)
	}
	if state.Region != "" {
		q.Set("region", state.Region)
	}

	encoded := q.Encode()
	if encoded == "" {
		return "/areas"
	}
	return "/areas?" + encoded
}

func readDatastarState[T interface{}](r *http.Request, fallback T) (T, error) {
	if r.Method == http.MethodGet && strings.TrimSpace(r.URL.Query().Get(datastar.DatastarKey)) == "" {
		return fallback, nil
	}

	parsed := fallback
	if err := datastar.ReadSignals(r, &parsed); err != nil {
		return fallback, err
	}

	return parsed, nil
}

func sanitizeAreasState(state AreasSignalState) AreasSignalState {
	state.Query = strings.TrimSpace(state.Query)
	if runes := []rune(state.Query); len(runes) > maxQueryLength {
		state.Query = string(runes[:maxQueryLength])
	}
	state.Region = strings.TrimSpace(state.Region)
	return state
}

func marshalSignals[T interface{}](value T) string {
	payload, err := json.Marshal(value)
	if err != nil {
		return "{}"
	}

	return string(payload)
}

func NavLinkClass(active bool) string {
	if active {
		return "nav-link active"
	}
	return "nav-link"
}

func RegionChipClass(active bool) string {
	if active {
		return "region-chip active"
	}
	return "region-chip"
}

func PriorityClass(priority string) string {
	switch priority {
	case "high":
		return "suburb-card priority-high"
	case "medium":
		return "suburb-card priority-medium"
	default:
		return "suburb-card"
	}
}
