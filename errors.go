package shoebox

import (
	"errors"
	"fmt"
)

// Code identifies a category of store failure. Codes are stable strings
// so they can cross process boundaries (CLI output, script traces).
type Code string

const (
	// CodeInvalidElement means the element was nil or not plain data.
	CodeInvalidElement Code = "INVALID_ELEMENT"

	// CodeIDAlreadySet means the element carried an "id" key on insert.
	// Identifiers are store-assigned, never caller-chosen.
	CodeIDAlreadySet Code = "ID_ALREADY_SET"

	// CodeInvalidType means the collection name was empty.
	CodeInvalidType Code = "INVALID_TYPE"

	// CodeNotFound means no record matched the (type, id) address.
	CodeNotFound Code = "NOT_FOUND"

	// CodeIDMismatch means a replacement's id disagreed with the record
	// it addressed. Mismatches are rejected, never corrected.
	CodeIDMismatch Code = "ID_MISMATCH"

	// CodeSeedConflict means seeding was refused because a "tweets"
	// collection already exists, even an empty one.
	CodeSeedConflict Code = "SEED_CONFLICT"
)

// Error is the structured error returned by every failing store
// operation. Type and ID narrow the failure to a collection and record
// when those are known.
type Error struct {
	// Code identifies the failure category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Type is the collection the operation targeted, when known.
	Type string

	// ID is the record identifier involved, when one was addressed.
	ID int64

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Type != "" && e.ID != 0:
		return fmt.Sprintf("%s: %s (type=%s, id=%d)", e.Code, e.Message, e.Type, e.ID)
	case e.Type != "":
		return fmt.Sprintf("%s: %s (type=%s)", e.Code, e.Message, e.Type)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode extracts the store error code from err, unwrapping as
// needed. The second return is false when err carries no store error.
func ErrorCode(err error) (Code, bool) {
	var storeErr *Error
	if errors.As(err, &storeErr) {
		return storeErr.Code, true
	}
	return "", false
}

// IsInvalidElement checks if err is a store error with CodeInvalidElement.
func IsInvalidElement(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeInvalidElement
}

// IsIDAlreadySet checks if err is a store error with CodeIDAlreadySet.
func IsIDAlreadySet(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeIDAlreadySet
}

// IsInvalidType checks if err is a store error with CodeInvalidType.
func IsInvalidType(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeInvalidType
}

// IsNotFound checks if err is a store error with CodeNotFound.
func IsNotFound(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeNotFound
}

// IsIDMismatch checks if err is a store error with CodeIDMismatch.
func IsIDMismatch(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeIDMismatch
}

// IsSeedConflict checks if err is a store error with CodeSeedConflict.
func IsSeedConflict(err error) bool {
	code, ok := ErrorCode(err)
	return ok && code == CodeSeedConflict
}

func newInvalidElementError(typ string, cause error) *Error {
	msg := "element must be a non-nil record"
	if cause != nil {
		msg = "element is not plain data"
	}
	return &Error{
		Code:    CodeInvalidElement,
		Message: msg,
		Type:    typ,
		Err:     cause,
	}
}

func newIDAlreadySetError(typ string) *Error {
	return &Error{
		Code:    CodeIDAlreadySet,
		Message: "element already carries an id; identifiers are store-assigned",
		Type:    typ,
	}
}

func newInvalidTypeError() *Error {
	return &Error{
		Code:    CodeInvalidType,
		Message: "type must be a non-empty string",
	}
}

func newNotFoundError(typ string, id int64) *Error {
	return &Error{
		Code:    CodeNotFound,
		Message: "no record with this id",
		Type:    typ,
		ID:      id,
	}
}

func newIDMismatchError(typ string, id int64) *Error {
	return &Error{
		Code:    CodeIDMismatch,
		Message: "element id does not match the addressed record",
		Type:    typ,
		ID:      id,
	}
}

func newSeedConflictError() *Error {
	return &Error{
		Code:    CodeSeedConflict,
		Message: "refusing to seed while a tweets collection exists",
		Type:    "tweets",
	}
}
