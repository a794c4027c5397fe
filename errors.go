package resourcelib

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedType is returned for resource types without a converter or generator.
	ErrUnsupportedType = errors.New("unsupported resource type")
	// ErrUnknownStruct is returned for unknown game structure types.
	ErrUnknownStruct = errors.New("unknown game structure")
	// ErrTargetTooSmall is returned if a game structure does not fit into the target memory.
	ErrTargetTooSmall = errors.New("target memory too small")
	// ErrNilView is returned when a view does not point to any memory.
	ErrNilView = errors.New("nil view")
)

// LibErr reports malformed resource data or views.
type LibErr string

func (e *LibErr) Error() string {
	return string(*e)
}

func newLibErr(format string, a ...interface{}) *LibErr {
	err := LibErr(fmt.Sprintf(format, a...))
	return &err
}
