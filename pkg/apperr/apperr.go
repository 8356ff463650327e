// Package apperr defines the application error taxonomy. Errors returned by
// service handlers cross the service container as strings, so each error
// carries its kind in a parseable "kind: message" form that Decode can
// recover on the calling side.
package apperr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies an error for transport-level mapping.
type Kind string

const (
	// KindValidation marks bad input: missing required fields, enum violations.
	KindValidation Kind = "validation"
	// KindNotFound marks lookups for ids that do not exist.
	KindNotFound Kind = "not_found"
	// KindUpstream marks failures of an external provider call.
	KindUpstream Kind = "upstream"
	// KindInternal marks everything else.
	KindInternal Kind = "internal"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// UpstreamStatus holds the provider HTTP status for KindUpstream.
	// Zero when the provider was never reached (network failure).
	UpstreamStatus int
}

func (e *Error) Error() string {
	if e.Kind == KindUpstream {
		return fmt.Sprintf("%s(%d): %s", e.Kind, e.UpstreamStatus, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Validation creates a KindValidation error.
func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a KindNotFound error.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// Upstream creates a KindUpstream error carrying the provider status.
func Upstream(status int, format string, args ...any) *Error {
	return &Error{Kind: KindUpstream, UpstreamStatus: status, Message: fmt.Sprintf(format, args...)}
}

// Internal creates a KindInternal error.
func Internal(format string, args ...any) *Error {
	return &Error{Kind: KindInternal, Message: fmt.Sprintf(format, args...)}
}

// Decode recovers a classified error from err. It prefers a typed *Error in
// the chain and otherwise parses the wire form out of the error string, so
// classification survives serialization and fmt.Errorf wrapping. A kind
// marker only counts on a wrap boundary (the start of the string or right
// after a ": " separator) and the leftmost one wins, so kind-shaped text
// inside a message cannot reclassify the error. Unclassified errors come back
// as KindInternal.
func Decode(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}

	s := err.Error()
	kind, idx := leftmostMarker(s)
	if idx < 0 {
		return &Error{Kind: KindInternal, Message: s}
	}
	if kind == KindUpstream {
		// Shape already validated by markerIndex.
		rest := s[idx+len(string(KindUpstream))+1:]
		j := strings.Index(rest, "): ")
		status, _ := strconv.Atoi(rest[:j])
		return &Error{Kind: KindUpstream, UpstreamStatus: status, Message: rest[j+3:]}
	}
	return &Error{Kind: kind, Message: s[idx+len(string(kind))+2:]}
}

// leftmostMarker finds the first kind marker sitting on a wrap boundary.
func leftmostMarker(s string) (Kind, int) {
	best := KindInternal
	bestIdx := -1
	for _, k := range []Kind{KindValidation, KindNotFound, KindUpstream, KindInternal} {
		if idx := markerIndex(s, k); idx >= 0 && (bestIdx < 0 || idx < bestIdx) {
			best, bestIdx = k, idx
		}
	}
	return best, bestIdx
}

// markerIndex returns the first boundary occurrence of k's wire marker in s,
// or -1. Upstream markers must also carry the "(status): " shape.
func markerIndex(s string, k Kind) int {
	marker := string(k) + ": "
	if k == KindUpstream {
		marker = string(k) + "("
	}
	for from := 0; ; {
		j := strings.Index(s[from:], marker)
		if j < 0 {
			return -1
		}
		idx := from + j
		onBoundary := idx == 0 || (idx >= 2 && s[idx-2:idx] == ": ")
		if onBoundary && (k != KindUpstream || upstreamShapeAt(s, idx)) {
			return idx
		}
		from = idx + 1
	}
}

func upstreamShapeAt(s string, idx int) bool {
	rest := s[idx+len(string(KindUpstream))+1:]
	j := strings.Index(rest, "): ")
	if j < 0 {
		return false
	}
	_, err := strconv.Atoi(rest[:j])
	return err == nil
}

// KindOf reports the kind err decodes to.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	return Decode(err).Kind
}

// IsNotFound reports whether err decodes to KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsValidation reports whether err decodes to KindValidation.
func IsValidation(err error) bool {
	return KindOf(err) == KindValidation
}
