package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *App) registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput))
		return
	}
	user, err := a.RegisterUser(req.Username, req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "user registered successfully",
		"user":    user,
	})
}

func (a *App) loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: username and password are required", ErrInvalidInput))
		return
	}
	user, err := a.Authenticate(req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	access, err := a.issueAccessToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	refresh, err := a.issueRefreshToken(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":       "login successful",
		"access_token":  access,
		"refresh_token": refresh,
	})
}

func (a *App) meHandler(c *gin.Context) {
	user, err := a.getUserByID(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// refreshHandler exchanges a refresh token for a new access token and
// rotates the refresh token.
func (a *App) refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput))
		return
	}
	access, refresh, err := a.rotateRefreshToken(req.RefreshToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

// logoutHandler revokes a refresh token.
func (a *App) logoutHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: refresh_token is required", ErrInvalidInput))
		return
	}
	if err := a.revokeRefreshToken(req.RefreshToken); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}

func (a *App) changePasswordHandler(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"current_password" binding:"required"`
		NewPassword     string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, fmt.Errorf("%w: current_password and new_password are required", ErrInvalidInput))
		return
	}
	if err := a.ChangePassword(currentUserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

// deleteAccountHandler removes the account and all of its expenses.
func (a *App) deleteAccountHandler(c *gin.Context) {
	if err := a.DeleteUser(currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted successfully"})
}
