package pipeline

import (
	"errors"
	"fmt"
)

// ErrInputMissing is returned by Run when the input directory does not exist.
var ErrInputMissing = errors.New("input directory not found")

// ErrorKind classifies a per-file failure.
type ErrorKind int

const (
	KindIO ErrorKind = iota
	KindDecode
	KindEncode
)

func (k ErrorKind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindDecode:
		return "decode"
	case KindEncode:
		return "encode"
	default:
		return "unknown"
	}
}

// FileError is the failure of a single file. It never aborts the batch.
type FileError struct {
	Kind ErrorKind
	Op   string // "stat", "open", "decode", "encode", "write"
	Name string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Name, e.Err)
}

func (e *FileError) Unwrap() error { return e.Err }

func fileErr(kind ErrorKind, op, name string, err error) *FileError {
	return &FileError{Kind: kind, Op: op, Name: name, Err: err}
}
