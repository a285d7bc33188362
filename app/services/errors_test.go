package services

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"socialfeed/app/repositories"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"no credential", ErrNoCredential, http.StatusUnauthorized},
		{"wrapped invalid credential", fmt.Errorf("%w: expired", ErrInvalidCredential), http.StatusUnauthorized},
		{"forbidden", ErrNotPostOwner, http.StatusForbidden},
		{"not found", ErrPostNotFound, http.StatusNotFound},
		{"invalid argument", invalidArgument(errors.New("bad")), http.StatusBadRequest},
		{"already liked", ErrAlreadyLiked, http.StatusConflict},
		{"not liked", ErrNotLiked, http.StatusConflict},
		{"email in use", ErrEmailInUse, http.StatusConflict},
		{"dependency", dependencyFailure("upload", errors.New("disk full")), http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	assert.ErrorIs(t, storeError("get", repositories.ErrNotFound, ErrPostNotFound), ErrPostNotFound)
	assert.ErrorIs(t, storeError("create", fmt.Errorf("%w: email", repositories.ErrDuplicate), nil), ErrConflict)

	err := storeError("get", errors.New("io"), ErrPostNotFound)
	assert.ErrorIs(t, err, ErrDependencyFailure)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "post not found", ErrPostNotFound.Error())
	assert.ErrorIs(t, ErrWrongPassword, ErrUnauthenticated)
}
