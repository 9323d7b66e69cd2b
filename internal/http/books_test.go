package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/circulation/internal/entities"
)

func TestBooksEndpoints(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	t.Run("lists the seeded catalog", func(t *testing.T) {
		w := srv.do(t, "GET", "/api/books", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var booksList []entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &booksList))
		assert.Len(t, booksList, 3)
	})

	t.Run("creates a book with defaults", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/books", gin.H{
			"isbn":   "978-0134190440",
			"title":  "The Go Programming Language",
			"author": "Donovan & Kernighan",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, entities.DefaultPublisher, book.Publisher)
		assert.True(t, book.Available)
	})

	t.Run("duplicate ISBN conflicts", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/books", gin.H{
			"isbn":   "978-0134190440",
			"title":  "Other",
			"author": "Someone",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing required field", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/books", gin.H{"isbn": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("gets a single book", func(t *testing.T) {
		w := srv.do(t, "GET", "/api/books/978-0134190440", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var book entities.Book
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &book))
		assert.Equal(t, "The Go Programming Language", book.Title)
	})

	t.Run("unknown book is 404", func(t *testing.T) {
		w := srv.do(t, "GET", "/api/books/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("deletes a book", func(t *testing.T) {
		w := srv.do(t, "DELETE", "/api/books/978-0134190440", nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = srv.do(t, "DELETE", "/api/books/978-0134190440", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMembersEndpoints(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	t.Run("registers a member", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/members", gin.H{
			"user_id":    "U100",
			"first_name": "Ada",
			"last_name":  "Lovelace",
			"email":      "ada@example.com",
			"password":   "first-programmer",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		assert.NotContains(t, w.Body.String(), "first-programmer", "password material must never be echoed")
	})

	t.Run("duplicate member conflicts", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/members", gin.H{
			"user_id":    "U100",
			"first_name": "Grace",
			"last_name":  "Hopper",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("lists members including fixtures", func(t *testing.T) {
		w := srv.do(t, "GET", "/api/members", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var members []entities.User
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
		assert.Len(t, members, 4)
	})
}

func TestHealthEndpoint(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	w := srv.do(t, "GET", "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}
