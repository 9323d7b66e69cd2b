package http

import (
	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/accounts"
	"github.com/shelfwise/circulation/internal/audit"
	"github.com/shelfwise/circulation/internal/catalog"
	"github.com/shelfwise/circulation/internal/database"
	"github.com/shelfwise/circulation/internal/lending"
	"github.com/shelfwise/circulation/internal/notify"
)

// RouterConfig carries every dependency the controllers need.
type RouterConfig struct {
	Database *database.Database
	Catalog  *catalog.Service
	Accounts *accounts.Service
	Lending  *lending.Service
	Bridge   *notify.Bridge
	Audit    *audit.Service
	Version  string
}

// NewRouter assembles the API surface.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	healthController := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.Catalog)
	membersController := NewMembersController(cfg.Accounts)
	loansController := NewLoansController(cfg.Lending)
	notificationsController := NewNotificationsController(cfg.Bridge, cfg.Audit)

	router.GET("/health", healthController.Status)

	api := router.Group("/api")
	{
		api.GET("/books", booksController.ListBooks)
		api.POST("/books", booksController.CreateBook)
		api.GET("/books/:isbn", booksController.GetBook)
		api.DELETE("/books/:isbn", booksController.DeleteBook)

		api.GET("/members", membersController.ListMembers)
		api.POST("/members", membersController.RegisterMember)

		api.GET("/loans", loansController.ListLoans)
		api.POST("/loans", loansController.CreateLoan)
		api.POST("/loans/:loanID/return", loansController.ReturnBook)

		api.GET("/notifications/channel", notificationsController.GetChannel)
		api.PUT("/notifications/channel", notificationsController.SetChannel)
		api.GET("/audit", notificationsController.RecentEvents)
	}

	return router
}
