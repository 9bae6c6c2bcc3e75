package application_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/icsbenin/candidature/internal/application"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	providerErr := errors.New("smtp: 535 authentication failed")

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "validation",
			err:      &application.ValidationError{Field: "nom", Message: "missing required fields: nom"},
			wantCode: http.StatusBadRequest,
			wantMsg:  "missing required fields: nom",
		},
		{
			name:     "wrapped validation",
			err:      fmt.Errorf("process: %w", &application.ValidationError{Message: "photo must be an image"}),
			wantCode: http.StatusBadRequest,
			wantMsg:  "photo must be an image",
		},
		{
			name:     "dispatch",
			err:      &application.DispatchError{Err: providerErr},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "failed to send application",
		},
		{
			name:     "unexpected",
			err:      &application.UnexpectedError{Op: "store upload", Err: errors.New("disk full")},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
		{
			name:     "unknown",
			err:      errors.New("boom"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, msg := application.StatusCode(tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestErrors_Unwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")

	assert.ErrorIs(t, &application.ValidationError{Err: cause}, cause)
	assert.ErrorIs(t, &application.DispatchError{Err: cause}, cause)
	assert.ErrorIs(t, &application.UnexpectedError{Op: "op", Err: cause}, cause)
	assert.Equal(t, "dispatch application: cause", (&application.DispatchError{Err: cause}).Error())
	assert.Equal(t, "op: cause", (&application.UnexpectedError{Op: "op", Err: cause}).Error())
}
