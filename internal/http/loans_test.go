package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shelfwise/circulation/internal/accounts"
	auditsvc "github.com/shelfwise/circulation/internal/audit"
	"github.com/shelfwise/circulation/internal/catalog"
	"github.com/shelfwise/circulation/internal/database"
	auditdb "github.com/shelfwise/circulation/internal/database/audit"
	"github.com/shelfwise/circulation/internal/database/books"
	"github.com/shelfwise/circulation/internal/database/users"
	"github.com/shelfwise/circulation/internal/entities"
	"github.com/shelfwise/circulation/internal/lending"
	"github.com/shelfwise/circulation/internal/notify"
)

type testServer struct {
	router *gin.Engine
	db     *database.Database
	bridge *notify.Bridge
	out    *bytes.Buffer
}

func setupServer(t *testing.T) (*testServer, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_http_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	accountsService := accounts.NewService(users.NewRepository(db.DB), 4)
	catalogService := catalog.NewService(books.NewRepository(db.DB))

	out := &bytes.Buffer{}
	bridge, err := notify.NewBridge(accountsService, out, "console")
	require.NoError(t, err)

	auditService := auditsvc.NewService(auditdb.NewRepository(db.DB))

	dispatcher := notify.NewDispatcher()
	dispatcher.Subscribe(bridge)
	dispatcher.Subscribe(auditService)

	lendingService := lending.NewService(db.DB, accountsService, dispatcher, 14)

	router := NewRouter(RouterConfig{
		Database: db,
		Catalog:  catalogService,
		Accounts: accountsService,
		Lending:  lendingService,
		Bridge:   bridge,
		Audit:    auditService,
		Version:  "test",
	})

	return &testServer{router: router, db: db, bridge: bridge, out: out}, cleanup
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestCreateLoanEndpoint(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	w := srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U001", "isbn": "978-0-547-92822-7"})

	assert.Equal(t, http.StatusCreated, w.Code)

	var loan entities.Loan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))
	assert.Equal(t, "L001", loan.LoanID)

	// The borrowed book reports unavailable.
	var book entities.Book
	require.NoError(t, srv.db.DB.Where("isbn = ?", "978-0-547-92822-7").First(&book).Error)
	assert.False(t, book.Available)

	// The console notification went out.
	assert.Contains(t, srv.out.String(), "To: jean.dupont@email.com")
}

func TestCreateLoanEndpoint_Failures(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	t.Run("book already on loan", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U001", "isbn": "978-0-547-92822-7"})
		require.Equal(t, http.StatusCreated, w.Code)

		w = srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U002", "isbn": "978-0-547-92822-7"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "not available")
	})

	t.Run("unknown user", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U999", "isbn": "978-2-07-036822-8"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "user not found")
	})

	t.Run("missing fields", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U001"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestReturnBookEndpoint(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	w := srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U001", "isbn": "978-0-547-92822-7"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = srv.do(t, "POST", "/api/loans/L001/return", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var book entities.Book
	require.NoError(t, srv.db.DB.Where("isbn = ?", "978-0-547-92822-7").First(&book).Error)
	assert.True(t, book.Available)

	t.Run("second return conflicts", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/loans/L001/return", nil)
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "already been returned")
	})

	t.Run("unknown loan", func(t *testing.T) {
		w := srv.do(t, "POST", "/api/loans/L999/return", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListLoansEndpoint(t *testing.T) {
	srv, cleanup := setupServer(t)
	defer cleanup()

	w := srv.do(t, "GET", "/api/loans", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	require.Equal(t, http.StatusCreated, srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U001", "isbn": "978-0-547-92822-7"}).Code)
	require.Equal(t, http.StatusCreated, srv.do(t, "POST", "/api/loans", gin.H{"user_id": "U002", "isbn": "978-2-07-036822-8"}).Code)
	require.Equal(t, http.StatusOK, srv.do(t, "POST", "/api/loans/L002/return", nil).Code)

	var views []lending.LoanView

	w = srv.do(t, "GET", "/api/loans", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Len(t, views, 2)

	w = srv.do(t, "GET", "/api/loans?status=active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "L001", views[0].LoanID)
	assert.Equal(t, "Jean Dupont", views[0].Borrower)
	assert.Equal(t, entities.LoanStatusActive, views[0].Status)

	w = srv.do(t, "GET", "/api/loans?status=overdue", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	assert.Empty(t, views)

	w = srv.do(t, "GET", "/api/loans?user=U001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, "L001", views[0].LoanID)

	w = srv.do(t, "GET", "/api/loans?status=bogus", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
