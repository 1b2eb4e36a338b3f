package errors

import (
	"bytes"
	goerrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCause(t *testing.T) {
	errOne := New("1")
	errTwo := WithContext("2", errOne)
	errThree := WithContext("3", errTwo)

	tests := []struct {
		arg      error
		expCause error
		expOK    bool
	}{
		{
			arg:      errOne,
			expCause: nil,
			expOK:    false,
		},
		{
			arg:      errTwo,
			expCause: errOne,
			expOK:    true,
		},
		{
			arg:      errThree,
			expCause: errTwo,
			expOK:    true,
		},
	}

	for _, test := range tests {
		actualCause, actualOK := Cause(test.arg)
		assert.Equal(t, test.expCause, actualCause)
		assert.Equal(t, test.expOK, actualOK)
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := goerrors.New("sentinel")
	wrapped := WithContext("outer", WithContext("inner", sentinel))
	assert.True(t, goerrors.Is(wrapped, sentinel))
}

func TestGetPrintableMessage(t *testing.T) {
	friendlyError := NewFriendlyError("friendly error")
	wrappedFriendlyError := WithContext("ignore me", friendlyError)

	assert.Equal(t, "friendly error", GetPrintableMessage(friendlyError))
	assert.Equal(t, "friendly error", GetPrintableMessage(wrappedFriendlyError))

	regularError := New("regular error")
	wrappedRegularError := WithContext("context", regularError)
	assert.Equal(t, "regular error", GetPrintableMessage(regularError))
	assert.Equal(t, "context: regular error", GetPrintableMessage(wrappedRegularError))
}

func TestNewFriendlyErrorFmt(t *testing.T) {
	err := NewFriendlyError("%d fish, %d fish, %s fish, %s fish",
		1, 2, "red", "blue")
	assert.EqualError(t, err, "1 fish, 2 fish, red fish, blue fish")
}

type codedError struct {
	code int
}

func (err codedError) Error() string {
	return "coded"
}

func (err codedError) ExitCode() int {
	return err.code
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		expCode int
	}{
		{
			name:    "Plain error",
			err:     New("plain"),
			expCode: 1,
		},
		{
			name:    "Coded error",
			err:     codedError{3},
			expCode: 3,
		},
		{
			name:    "Wrapped coded error",
			err:     WithContext("a", WithContext("b", codedError{4})),
			expCode: 4,
		},
		{
			name:    "Nil",
			err:     nil,
			expCode: 1,
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expCode, ExitCode(test.err))
		})
	}
}

func TestPrintFatalError(t *testing.T) {
	var out bytes.Buffer
	PrintFatalError(&out, WithContext("ignore me", NewFriendlyError("bad key")))
	assert.Contains(t, out.String(), "FATAL ERROR")
	assert.Contains(t, out.String(), "bad key\n")
}
