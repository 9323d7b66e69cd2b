package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shelfwise/circulation/internal/accounts"
)

// MembersController handles member registration and listing.
type MembersController struct {
	accounts *accounts.Service
}

// NewMembersController creates a new MembersController.
func NewMembersController(accountsService *accounts.Service) *MembersController {
	return &MembersController{accounts: accountsService}
}

type registerMemberRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// RegisterMember adds a new member.
func (mc *MembersController) RegisterMember(c *gin.Context) {
	var req registerMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := mc.accounts.Register(accounts.MemberParams{
		UserID:    req.UserID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// ListMembers returns all registered members.
func (mc *MembersController) ListMembers(c *gin.Context) {
	members, err := mc.accounts.ListMembers()
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}
