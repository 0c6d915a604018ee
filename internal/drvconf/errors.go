package drvconf

import (
	"errors"
	"fmt"
)

// ErrorKind classifies configuration defects.
type ErrorKind int

const (
	KindDecode ErrorKind = iota + 1
	KindMissingKey
	KindUnsupportedType
	KindInvalidPeripheral
	KindDuplicateName
	KindDuplicateSequence
	KindDuplicatePeripheral
)

func (k ErrorKind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindMissingKey:
		return "missing key"
	case KindUnsupportedType:
		return "unsupported driver type"
	case KindInvalidPeripheral:
		return "invalid peripheral"
	case KindDuplicateName:
		return "duplicate driver name"
	case KindDuplicateSequence:
		return "duplicate init sequence"
	case KindDuplicatePeripheral:
		return "duplicate interrupt peripheral"
	default:
		return "unknown"
	}
}

// Error is the single canonical configuration error type.
type Error struct {
	Kind   ErrorKind
	Key    string
	Detail string
}

func (e *Error) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("config: %s: %s", e.Kind, e.Detail)
	}
	if e.Detail == "" {
		return fmt.Sprintf("config: %s: %s", e.Kind, e.Key)
	}
	return fmt.Sprintf("config: %s: %s: %s", e.Kind, e.Key, e.Detail)
}

func ErrDecode(detail string) *Error {
	return &Error{Kind: KindDecode, Detail: detail}
}
func ErrMissingKey(key string) *Error {
	return &Error{Kind: KindMissingKey, Key: key}
}
func ErrUnsupportedType(key, driverType string) *Error {
	return &Error{Kind: KindUnsupportedType, Key: key, Detail: fmt.Sprintf("no handler known for type %q", driverType)}
}
func ErrInvalidPeripheral(key, detail string) *Error {
	return &Error{Kind: KindInvalidPeripheral, Key: key, Detail: detail}
}
func ErrDuplicateName(key, name string) *Error {
	return &Error{Kind: KindDuplicateName, Key: key, Detail: fmt.Sprintf("%q already declared", name)}
}
func ErrDuplicateSequence(key, driverType string) *Error {
	return &Error{Kind: KindDuplicateSequence, Key: key, Detail: fmt.Sprintf("type %q already has an init sequence", driverType)}
}
func ErrDuplicatePeripheral(key, periph string) *Error {
	return &Error{Kind: KindDuplicatePeripheral, Key: key, Detail: fmt.Sprintf("%s already serves another interrupt-enabled driver", periph)}
}

// IsKind reports whether err wraps a configuration error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind == kind
	}
	return false
}
