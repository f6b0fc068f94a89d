package storefront

import "github.com/rotisserie/eris"

// Status is the catalog presentation state.
type Status int

const (
	StatusLoading Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status as its lowercase name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a lowercase status name.
func (s *Status) UnmarshalText(b []byte) error {
	switch string(b) {
	case "loading":
		*s = StatusLoading
	case "ready":
		*s = StatusReady
	case "failed":
		*s = StatusFailed
	default:
		return eris.Errorf("storefront: unknown status %q", string(b))
	}
	return nil
}

// FallbackPolicy selects what the catalog shows after a failed fetch.
type FallbackPolicy string

const (
	// PolicyFallback fills the catalog with FallbackCatalog and still reports the error.
	PolicyFallback FallbackPolicy = "fallback"
	// PolicyEmpty leaves the catalog empty and reports the error.
	PolicyEmpty FallbackPolicy = "empty"
)

// ParseFallbackPolicy validates a configured policy name. An empty name
// selects PolicyFallback.
func ParseFallbackPolicy(s string) (FallbackPolicy, error) {
	switch FallbackPolicy(s) {
	case "", PolicyFallback:
		return PolicyFallback, nil
	case PolicyEmpty:
		return PolicyEmpty, nil
	default:
		return "", eris.Errorf("storefront: unknown fallback policy %q", s)
	}
}
