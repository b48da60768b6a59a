package api

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesSentinelByCode(t *testing.T) {
	err := NewError(ErrCodeInvalidArgument, "callback must be a function").
		WithContext("got", "int")

	assert.True(t, errors.Is(err, ErrInvalidArgument))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "callback must be a function")
	assert.Contains(t, err.Error(), "got:int")

	wrapped := fmt.Errorf("subscribe: %w", err)
	assert.True(t, errors.Is(wrapped, ErrInvalidArgument))

	var se *Error
	assert.True(t, errors.As(wrapped, &se))
	assert.Equal(t, ErrCodeInvalidArgument, se.Code)
}

func TestError_NoContext(t *testing.T) {
	err := &Error{Code: ErrCodeInternal, Message: "boom"}
	assert.Equal(t, "boom", err.Error())
	assert.False(t, errors.Is(err, ErrInvalidArgument))
}

func TestReleaserFunc(t *testing.T) {
	var gotOwner, gotCallback any
	var r Releaser = ReleaserFunc(func(owner, callback any) {
		gotOwner, gotCallback = owner, callback
	})
	r.Release("owner", 42)
	assert.Equal(t, "owner", gotOwner)
	assert.Equal(t, 42, gotCallback)
}
