package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderMarksAndPredicates(t *testing.T) {
	err := NewError("profile not found").
		WithHint("Profile p1 does not exist").
		Mark(ErrNotFound)

	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWithErrorPreservesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := WithError(cause).
		WithHint("Payment gateway is unreachable").
		Mark(ErrHTTPClient)

	assert.True(t, IsHTTPClient(err))
	assert.True(t, errors.Is(err, cause))
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{NewError("bad").Mark(ErrValidation), http.StatusBadRequest},
		{NewError("missing").Mark(ErrNotFound), http.StatusNotFound},
		{NewError("dupe").Mark(ErrAlreadyExists), http.StatusConflict},
		{NewError("nope").Mark(ErrPermissionDenied), http.StatusForbidden},
		{NewError("gateway").Mark(ErrHTTPClient), http.StatusBadGateway},
		{NewError("boom").Mark(ErrInternal), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.status, HTTPStatusFromErr(tc.err))
	}
}

func TestErrorResponseLeaksOnlyHintAndDetails(t *testing.T) {
	cause := errors.New("pq: duplicate key value violates unique constraint")
	err := WithError(cause).
		WithHint("An organization with this slug already exists").
		WithReportableDetails(map[string]interface{}{"slug": "acme"}).
		Mark(ErrAlreadyExists)

	resp := NewErrorResponse(err)
	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, "An organization with this slug already exists", resp.Error.Message)
	assert.Equal(t, "acme", resp.Error.Details["slug"])
	assert.NotContains(t, resp.Error.Message, "pq:")
}
