package convert

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a file could not be accepted or converted.
type ErrorKind int

const (
	// InvalidExtension means the input name does not end in .heic.
	InvalidExtension ErrorKind = iota + 1
	// FileNotFound means the input path does not exist.
	FileNotFound
	// DecodeFailure means the input bytes could not be parsed as an image.
	DecodeFailure
	// EncodeOrWriteFailure means encoding or writing the output failed.
	EncodeOrWriteFailure
)

const (
	msgInvalidExtension = "Please select a .heic file!"
	msgFileNotFound     = "The selected file does not exist!"
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidExtension:
		return "invalid extension"
	case FileNotFound:
		return "file not found"
	case DecodeFailure:
		return "decode failure"
	case EncodeOrWriteFailure:
		return "encode or write failure"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is the failure type returned by validation and conversion. Validation
// failures carry the fixed user-facing message; conversion failures carry
// the underlying cause.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

// Sentinels for errors.Is. They match any *Error of the same kind.
var (
	ErrInvalidExtension     = &Error{Kind: InvalidExtension}
	ErrFileNotFound         = &Error{Kind: FileNotFound}
	ErrDecodeFailure        = &Error{Kind: DecodeFailure}
	ErrEncodeOrWriteFailure = &Error{Kind: EncodeOrWriteFailure}
)

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidExtension:
		return msgInvalidExtension
	case FileNotFound:
		return msgFileNotFound
	}
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinels by kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Path == "" && t.Err == nil && t.Kind == e.Kind
}

// KindOf returns the ErrorKind carried by err, or 0 when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
