package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/catalog"
)

// BooksController handles catalog operations.
type BooksController struct {
	catalog *catalog.Service
}

// NewBooksController creates a new BooksController.
func NewBooksController(catalogService *catalog.Service) *BooksController {
	return &BooksController{catalog: catalogService}
}

type createBookRequest struct {
	ISBN      string `json:"isbn" binding:"required"`
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Publisher string `json:"publisher"`
	Year      int    `json:"year"`
}

// ListBooks returns the whole catalog.
func (bc *BooksController) ListBooks(c *gin.Context) {
	booksList, err := bc.catalog.ListBooks()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, booksList)
}

// GetBook returns a single book by ISBN.
func (bc *BooksController) GetBook(c *gin.Context) {
	book, err := bc.catalog.GetBook(c.Param("isbn"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// CreateBook registers a new book.
func (bc *BooksController) CreateBook(c *gin.Context) {
	var req createBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	book, err := bc.catalog.AddBook(catalog.BookParams{
		ISBN:      req.ISBN,
		Title:     req.Title,
		Author:    req.Author,
		Publisher: req.Publisher,
		Year:      req.Year,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, book)
}

// DeleteBook removes a book from the catalog.
func (bc *BooksController) DeleteBook(c *gin.Context) {
	removed, err := bc.catalog.RemoveBook(c.Param("isbn"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
