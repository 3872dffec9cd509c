package oidc

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "category and message",
			err:  ErrValidation("bad input"),
			want: "[validation] bad input",
		},
		{
			name: "with construct path",
			err:  ErrValidation("bad input").WithConstruct("Stack/Provider"),
			want: "[Stack/Provider:validation] bad input",
		},
		{
			name: "with cause",
			err:  ErrInternal("create failed").WithCause(errors.New("boom")),
			want: "[internal] create failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("root cause")
	err := ErrInternal("wrapper").WithCause(cause)

	assert.ErrorIs(t, err, cause)

	var oe *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &oe))
	assert.Equal(t, ErrCategoryInternal, oe.Category)
}

func TestErrorBuilders(t *testing.T) {
	err := ErrValidation("bad url").
		WithOperation("create").
		WithDetail("url", "http://example.com")

	assert.Equal(t, "create", err.Operation)
	assert.Equal(t, "http://example.com", err.Details["url"])
}

func TestErrNotFound(t *testing.T) {
	err := ErrNotFound("oidc-provider", "arn:aws:iam::123456789012:oidc-provider/example.com")

	assert.Contains(t, err.Error(), "oidc-provider not found")
	assert.Equal(t, "oidc-provider", err.Details["resource_type"])
}

func TestIsCategory(t *testing.T) {
	notFound := ErrNotFound("provider", "example")

	assert.True(t, IsCategory(notFound, ErrCategoryNotFound))
	assert.True(t, IsCategory(fmt.Errorf("wrapped: %w", notFound), ErrCategoryNotFound))
	assert.False(t, IsCategory(notFound, ErrCategoryValidation))
	assert.False(t, IsCategory(errors.New("plain"), ErrCategoryNotFound))
	assert.False(t, IsCategory(nil, ErrCategoryNotFound))
}

func TestScopeError(t *testing.T) {
	err := NewScopeError("Objects returned by fakeFactory cannot be used in this API")

	assert.Equal(t, "Objects returned by fakeFactory cannot be used in this API", err.Error())
	assert.True(t, IsScopeError(err))
	assert.True(t, IsScopeError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsScopeError(errors.New("other")))
	assert.False(t, IsScopeError(nil))
}

func TestScopeErrorIsNotCategorized(t *testing.T) {
	// ScopeError deliberately sits outside the category taxonomy: it marks
	// misuse of a detached stand-in, not a failed operation.
	err := NewScopeError("detached object")

	assert.False(t, IsCategory(err, ErrCategoryValidation))
	assert.False(t, IsCategory(err, ErrCategoryInternal))
}
