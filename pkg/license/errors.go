package license

import (
	goerrors "errors"

	"github.com/kelda/licensegen/pkg/errors"
)

// Kind classifies why issuing a license failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindUsage
	KindValidation
	KindKeyLoad
	KindSign
	KindWrite
)

var (
	ErrMissingArgs       = errors.New("missing required parameters")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrInvalidDomain     = errors.New("invalid domain format")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidDate       = errors.New("invalid calendar date")
	ErrExpiryNotInFuture = errors.New("expiry date must be in the future")
)

func (k Kind) String() string {
	switch k {
	case KindUsage:
		return "usage error"
	case KindValidation:
		return "validation error"
	case KindKeyLoad:
		return "key load error"
	case KindSign:
		return "sign error"
	case KindWrite:
		return "write error"
	default:
		return "unknown error"
	}
}

// ExitCode is the process status the CLI exits with for this kind.
func (k Kind) ExitCode() int {
	switch k {
	case KindUsage, KindValidation:
		return 2
	case KindKeyLoad, KindSign:
		return 3
	case KindWrite:
		return 4
	default:
		return 1
	}
}

// Error is returned by every step of issuing a license.
type Error struct {
	Kind Kind
	Err  error
}

func (err *Error) Error() string {
	return err.Err.Error()
}

func (err *Error) Unwrap() error {
	return err.Err
}

func (err *Error) Cause() error {
	return err.Err
}

func (err *Error) Context() string {
	return err.Kind.String()
}

func (err *Error) ExitCode() int {
	return err.Kind.ExitCode()
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var licenseErr *Error
	if goerrors.As(err, &licenseErr) {
		return licenseErr.Kind
	}
	return KindUnknown
}

func newError(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}
