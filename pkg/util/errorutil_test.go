package util_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/account-service/pkg/util"
)

func TestToDomainError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, util.ToDomainError(nil))
	})

	t.Run("passes through an existing domain error", func(t *testing.T) {
		err := util.NewForbidden("insufficient credentials")
		domainErr := util.ToDomainError(err)
		assert.Equal(t, "FORBIDDEN", domainErr.Code)
		assert.Equal(t, http.StatusForbidden, domainErr.HTTPStatus)
	})

	t.Run("maps pgx no rows to not found", func(t *testing.T) {
		domainErr := util.ToDomainError(pgx.ErrNoRows)
		assert.Equal(t, "NOT_FOUND", domainErr.Code)
		assert.Equal(t, http.StatusNotFound, domainErr.HTTPStatus)
	})

	t.Run("maps a unique violation to duplicate email", func(t *testing.T) {
		domainErr := util.ToDomainError(&pgconn.PgError{Code: "23505"})
		assert.Equal(t, "DUPLICATE_EMAIL", domainErr.Code)
		assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)
	})

	t.Run("wraps unknown errors as internal without leaking the cause", func(t *testing.T) {
		cause := errors.New("connection refused to 10.0.0.1")
		domainErr := util.ToDomainError(cause)
		assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
		assert.Equal(t, "internal server error", domainErr.Message)
		assert.ErrorIs(t, domainErr, cause)
	})
}

func TestDomainErrorTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		code   string
		status int
	}{
		{"validation", util.NewValidationError("bad input", nil), "VALIDATION_FAILED", http.StatusBadRequest},
		{"invalid credentials", util.NewInvalidCredentials(), "INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"unauthorized", util.NewUnauthorized("missing token"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", util.NewForbidden("nope"), "FORBIDDEN", http.StatusForbidden},
		{"not found", util.NewNotFound("user", nil), "NOT_FOUND", http.StatusNotFound},
		{"duplicate email", util.NewDuplicateEmail("a@x.com"), "DUPLICATE_EMAIL", http.StatusConflict},
		{"internal", util.NewInternalError(errors.New("x")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var domainErr *util.DomainError
			assert.ErrorAs(t, tc.err, &domainErr)
			assert.Equal(t, tc.code, domainErr.Code)
			assert.Equal(t, tc.status, domainErr.HTTPStatus)
		})
	}
}
