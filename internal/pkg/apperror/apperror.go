// Package apperror classifies domain errors into the kinds the transport layer
// understands. Each domain keeps its own sentinel errors; they are created with
// New so that errors.Is can match both the sentinel and its kind.
package apperror

import "errors"

type Kind string

const (
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindConfiguration Kind = "configuration"
)

// Kind sentinels. errors.Is(err, ErrNotFound) reports whether err or any error
// it wraps was created with KindNotFound.
var (
	ErrNotFound      = &Error{kind: KindNotFound, msg: "not found"}
	ErrConflict      = &Error{kind: KindConflict, msg: "conflict"}
	ErrConfiguration = &Error{kind: KindConfiguration, msg: "configuration error"}
)

type Error struct {
	kind Kind
	msg  string
}

func New(kind Kind, msg string) *Error {
	return &Error{kind: kind, msg: msg}
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Kind() Kind {
	return e.kind
}

// Is matches another *Error by identity, or by kind when the target is one of
// the package level kind sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e == t {
		return true
	}
	switch t {
	case ErrNotFound, ErrConflict, ErrConfiguration:
		return e.kind == t.kind
	}
	return false
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind, true
	}
	return "", false
}

// Configuration wraps a cause as a configuration error.
func Configuration(msg string, cause error) error {
	return &wrapped{base: New(KindConfiguration, msg), cause: cause}
}

type wrapped struct {
	base  *Error
	cause error
}

func (w *wrapped) Error() string {
	if w.cause == nil {
		return w.base.msg
	}
	return w.base.msg + ": " + w.cause.Error()
}

func (w *wrapped) Unwrap() []error {
	if w.cause == nil {
		return []error{w.base}
	}
	return []error{w.base, w.cause}
}
