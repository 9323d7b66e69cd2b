package books

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/shelfwise/circulation/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := "./test_books_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.Book{})
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return repo, cleanup
}

func testBook(isbn string) *entities.Book {
	return &entities.Book{
		ISBN:      isbn,
		Title:     "The Go Programming Language",
		Author:    "Donovan & Kernighan",
		Publisher: "Addison-Wesley",
		Year:      2015,
		Available: true,
	}
}

func TestRepository_Create(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	book := testBook("978-0134190440")
	err := repo.Create(book)

	require.NoError(t, err)
	assert.NotZero(t, book.ID)
}

func TestRepository_Create_DuplicateISBN(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(testBook("978-0134190440")))

	err := repo.Create(testBook("978-0134190440"))

	assert.ErrorIs(t, err, ErrDuplicateISBN)
}

func TestRepository_GetByISBN(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(testBook("978-0134190440")))

	book, err := repo.GetByISBN("978-0134190440")

	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language", book.Title)
	assert.True(t, book.Available)
}

func TestRepository_GetByISBN_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetByISBN("missing")

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_GetAll_InsertionOrder(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	for _, isbn := range []string{"isbn-1", "isbn-2", "isbn-3"} {
		require.NoError(t, repo.Create(testBook(isbn)))
	}

	books, err := repo.GetAll()

	require.NoError(t, err)
	require.Len(t, books, 3)
	assert.Equal(t, "isbn-1", books[0].ISBN)
	assert.Equal(t, "isbn-2", books[1].ISBN)
	assert.Equal(t, "isbn-3", books[2].ISBN)
}

func TestRepository_GetAll_Empty(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	books, err := repo.GetAll()

	require.NoError(t, err)
	assert.Empty(t, books)
}

func TestRepository_SetAvailability(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(testBook("978-0134190440")))

	err := repo.SetAvailability("978-0134190440", false)
	require.NoError(t, err)

	book, err := repo.GetByISBN("978-0134190440")
	require.NoError(t, err)
	assert.False(t, book.Available)
}

func TestRepository_SetAvailability_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.SetAvailability("missing", false)

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_Update(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(testBook("978-0134190440")))

	updated := testBook("978-0134190440")
	updated.Title = "The Go Programming Language, 2nd Edition"
	err := repo.Update(updated)
	require.NoError(t, err)

	book, err := repo.GetByISBN("978-0134190440")
	require.NoError(t, err)
	assert.Equal(t, "The Go Programming Language, 2nd Edition", book.Title)
}

func TestRepository_Update_NotFound(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	err := repo.Update(testBook("missing"))

	assert.ErrorIs(t, err, ErrBookNotFound)
}

func TestRepository_Delete(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Create(testBook("978-0134190440")))

	removed, err := repo.Delete("978-0134190440")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete("978-0134190440")
	require.NoError(t, err)
	assert.False(t, removed)
}
