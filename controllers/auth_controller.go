package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"luxury-stay-backend/middleware"
	"luxury-stay-backend/services"
	"luxury-stay-backend/utils"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPayload struct {
	Email string `json:"email" binding:"required,email"`
}

type AuthController struct {
	Auth *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Auth: svc}
}

// Login handles POST /api/auth/login. One endpoint serves staff and
// guests; the issued token records which store the account came from.
func (ac *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	principal, err := ac.Auth.Authenticate(payload.Email, payload.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := middleware.IssueToken(principal.ID, principal.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    principal.ID,
		"name":  principal.DisplayName,
		"email": principal.Email,
		"role":  principal.Role,
		"token": token,
	})
}

// ForgotPassword handles POST /api/auth/forgot-password. The response
// is identical whether or not the email exists.
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var payload forgotPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
		return
	}

	if err := ac.Auth.StartPasswordReset(payload.Email); err != nil {
		log.Printf("password reset initiation failed: %v", err)
	}
	utils.JSONMessage(c, http.StatusOK, "If this email exists, a reset link was sent.")
}

// Profile handles GET /api/auth/profile for any authenticated caller.
func (ac *AuthController) Profile(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized"})
		return
	}
	c.JSON(http.StatusOK, principal)
}
