package feed

import (
	"fmt"

	"github.com/neoniv-fr/breizh-transit/registry"
)

// FetchError reports a failed upstream fetch. Exactly one of the failure
// modes applies: Timeout, a transport error wrapped in Err, or a non-2xx
// StatusCode.
type FetchError struct {
	URL        string
	StatusCode int
	Timeout    bool
	Err        error
}

func (e *FetchError) Error() string {
	switch {
	case e.Timeout:
		return fmt.Sprintf("fetch %s: timed out", e.URL)
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: HTTP %d", e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// DecodeError reports a payload that could not be decoded for its feed kind.
// The byte length is kept so operators can tell truncated payloads from
// garbage without logging the body itself.
type DecodeError struct {
	Kind registry.FeedKind
	Size int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s payload (%d bytes): %v", e.Kind, e.Size, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
