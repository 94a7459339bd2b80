package shmap

import (
	"errors"
	"fmt"
)

var (
	ErrorInvalidFormat    = errors.New("Invalid map format")
	ErrorOffsetOutOfRange = errors.New("Write offset out of range")
	ErrorIO               = errors.New("Map file access failed")
	ErrorUnknownAction    = errors.New("Unknown map action")
	ErrorLocked           = errors.New("Map file is in use")
	ErrorInvalidRule      = errors.New("Invalid action rule")
)

// FormatError reports a buffer that is too short for the field being read.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "invalid map format: " + e.Reason
}

func (e *FormatError) Is(target error) bool {
	return target == ErrorInvalidFormat
}

// RangeError reports a write that would not fit inside the buffer.
type RangeError struct {
	Offset int
	Length int
	Size   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("write offset out of range: %d bytes at %d (0x%x), file is %d bytes", e.Length, e.Offset, e.Offset, e.Size)
}

func (e *RangeError) Is(target error) bool {
	return target == ErrorOffsetOutOfRange
}

// IOError wraps failures of the file collaborator.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrorIO
}

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindInvalidFormat
	KindOffsetOutOfRange
	KindIOFailure
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindInvalidFormat:
		return "invalid-format"
	case KindOffsetOutOfRange:
		return "offset-out-of-range"
	case KindIOFailure:
		return "io-failure"
	}
	return "other"
}

// KindOf classifies err into one of the kinds reported to callers.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrorIO):
		return KindIOFailure
	case errors.Is(err, ErrorInvalidFormat):
		return KindInvalidFormat
	case errors.Is(err, ErrorOffsetOutOfRange):
		return KindOffsetOutOfRange
	}
	return KindOther
}
