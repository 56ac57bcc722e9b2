package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies failures so callers can branch on recoverable vs fatal
// outcomes without inspecting concrete error types.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindNoMatches     Kind = "no_matches"
	KindUpstream      Kind = "upstream"
	KindEmptyResponse Kind = "empty_response"
	KindMalformed     Kind = "malformed_response"
	KindPersistence   Kind = "persistence"
	KindConflict      Kind = "conflict"
	KindInternal      Kind = "internal"
)

type Error struct {
	Kind   Kind
	Status int
	Code   string
	Op     string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var msg string
	switch {
	case e.Err != nil:
		msg = e.Err.Error()
	case e.Code != "":
		msg = e.Code
	case e.Status != 0:
		msg = fmt.Sprintf("api error (%d)", e.Status)
	default:
		msg = "api error"
	}
	if op := strings.TrimSpace(e.Op); op != "" {
		return op + ": " + msg
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Kind: kindForStatus(status), Status: status, Code: code, Err: err}
}

// Wrap tags err with kind. A nil err yields nil.
func Wrap(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Status: statusFor(kind), Code: string(kind), Op: op, Err: err}
}

func Validation(format string, args ...any) error {
	return Wrap(KindValidation, "", fmt.Errorf(format, args...))
}

func NotFound(format string, args ...any) error {
	return Wrap(KindNotFound, "", fmt.Errorf(format, args...))
}

func NoMatches(format string, args ...any) error {
	return Wrap(KindNoMatches, "", fmt.Errorf(format, args...))
}

func Upstream(op string, err error) error { return Wrap(KindUpstream, op, err) }

func EmptyResponse(op string) error {
	return Wrap(KindEmptyResponse, op, errors.New("provider returned an empty response"))
}

func Malformed(op string, err error) error { return Wrap(KindMalformed, op, err) }

func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) && existing.Kind != KindInternal {
		return err
	}
	return Wrap(KindPersistence, op, err)
}

// KindOf returns the outermost Kind carried by err, or "" when err is untagged.
func KindOf(err error) Kind {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Kind
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// IsRecoverable reports whether err is an AI-side failure that enrichment
// callers absorb instead of propagating.
func IsRecoverable(err error) bool {
	switch KindOf(err) {
	case KindUpstream, KindEmptyResponse, KindMalformed:
		return true
	default:
		return false
	}
}

// StatusOf maps err onto an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) && e.Status != 0 {
		return e.Status
	}
	return http.StatusInternalServerError
}

func statusFor(kind Kind) int {
	switch kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindNoMatches:
		return http.StatusUnprocessableEntity
	case KindConflict:
		return http.StatusConflict
	case KindUpstream, KindEmptyResponse, KindMalformed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusBadRequest:
		return KindValidation
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusUnprocessableEntity:
		return KindNoMatches
	case http.StatusConflict:
		return KindConflict
	case http.StatusBadGateway:
		return KindUpstream
	default:
		return KindInternal
	}
}
