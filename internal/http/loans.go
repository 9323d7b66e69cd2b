package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/lending"
)

// LoansController handles the loan lifecycle endpoints.
type LoansController struct {
	lending *lending.Service
}

// NewLoansController creates a new LoansController.
func NewLoansController(lendingService *lending.Service) *LoansController {
	return &LoansController{lending: lendingService}
}

type createLoanRequest struct {
	UserID string `json:"user_id" binding:"required"`
	ISBN   string `json:"isbn" binding:"required"`
}

// CreateLoan borrows a book for a member.
func (lc *LoansController) CreateLoan(c *gin.Context) {
	var req createLoanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loan, err := lc.lending.CreateLoan(req.UserID, req.ISBN)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan)
}

// ReturnBook closes an active loan.
func (lc *LoansController) ReturnBook(c *gin.Context) {
	loan, err := lc.lending.ReturnBook(c.Param("loanID"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

// ListLoans returns loan views, filtered by the optional status and user
// query parameters.
func (lc *LoansController) ListLoans(c *gin.Context) {
	var (
		views []lending.LoanView
		err   error
	)

	status := c.Query("status")
	user := c.Query("user")

	switch {
	case user != "":
		views, err = lc.lending.ActiveLoansForUser(user)
	case status == "active":
		views, err = lc.lending.ActiveLoans()
	case status == "overdue":
		views, err = lc.lending.OverdueLoans()
	case status == "":
		views, err = lc.lending.AllLoans()
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status filter: " + status})
		return
	}
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, views)
}
