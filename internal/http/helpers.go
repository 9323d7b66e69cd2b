// Package http exposes the circulation core as a JSON API. Controllers are
// thin: they parse the request, call one service operation, and translate
// domain errors to status codes.
package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/accounts"
	"github.com/shelfwise/circulation/internal/catalog"
	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/database/loans"
	"github.com/shelfwise/circulation/internal/database/users"
	"github.com/shelfwise/circulation/internal/lending"
	"github.com/shelfwise/circulation/internal/notify"
)

// errorStatus maps domain errors onto HTTP status codes. Everything in the
// taxonomy is caller-triggerable; only unexpected failures become 500s.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, users.ErrUserNotFound),
		errors.Is(err, books.ErrBookNotFound),
		errors.Is(err, loans.ErrLoanNotFound):
		return http.StatusNotFound
	case errors.Is(err, lending.ErrBookUnavailable),
		errors.Is(err, lending.ErrAlreadyReturned),
		errors.Is(err, books.ErrDuplicateISBN),
		errors.Is(err, users.ErrDuplicateUserID):
		return http.StatusConflict
	case errors.Is(err, notify.ErrUnknownChannel),
		errors.Is(err, catalog.ErrMissingField),
		errors.Is(err, accounts.ErrMissingField):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	c.AbortWithStatusJSON(errorStatus(err), gin.H{"error": err.Error()})
}
