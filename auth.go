package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"trackex/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

// RegisterUser creates a new user, storing only a bcrypt hash of the
// password. Duplicate username or email yields Conflict.
func (a *App) RegisterUser(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" {
		return nil, fmt.Errorf("%w: username and email are required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("%w: password too short (min 6)", ErrInvalidInput)
	}
	// pre-check existing (optimistic)
	var existing models.User
	if err := a.db.Where("username = ? OR email = ?", username, email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("username or email %w", ErrConflict)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Username: username, Email: email, HashedPassword: hashedPassword}
	if err := a.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race condition after initial check
			return nil, fmt.Errorf("username or email %w", ErrConflict)
		}
		return nil, err
	}
	return &user, nil
}

// Authenticate verifies credentials. Unknown username and wrong password
// return the same error so callers cannot probe for accounts.
func (a *App) Authenticate(username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	var user models.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return &user, nil
}

// ChangePassword verifies the current password before writing a new hash.
func (a *App) ChangePassword(userID uint, current, next string) error {
	user, err := a.getUserByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword(user.HashedPassword, []byte(current)); err != nil {
		return ErrUnauthorized
	}
	if len(next) < 6 {
		return fmt.Errorf("%w: password too short (min 6)", ErrInvalidInput)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := a.db.Model(&models.User{}).Where("id = ?", userID).Update("hashed_password", hashed).Error; err != nil {
		return err
	}
	a.users.del(userID)
	return nil
}

// DeleteUser removes the user and everything it owns in one transaction.
// The cascade is explicit: dependent rows go first, then the user row.
func (a *App) DeleteUser(userID uint) error {
	err := a.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Expense{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.User{}, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.users.del(userID)
	return nil
}

// getUserByID resolves a user, consulting the in-process cache first.
func (a *App) getUserByID(id uint) (*models.User, error) {
	if user, ok := a.users.get(id); ok {
		return user, nil
	}
	var user models.User
	if err := a.db.First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("user %w", ErrNotFound)
	}
	a.users.set(&user)
	return &user, nil
}

// issueAccessToken signs an HS256 JWT bound to the user id with a
// clock-based expiry.
func (a *App) issueAccessToken(user *models.User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(a.cfg.TokenTTL).Unix(),
	})
	return token.SignedString(a.cfg.JWTSecret)
}

// resolveAccessToken validates a bearer token and returns the user id it
// is bound to.
func (a *App) resolveAccessToken(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return a.cfg.JWTSecret, nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, fmt.Errorf("%w: invalid claims", ErrUnauthenticated)
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, fmt.Errorf("%w: invalid claims", ErrUnauthenticated)
	}
	return uint(idFloat), nil
}

// authMiddleware gates every protected route: it resolves the bearer token
// and puts the acting user id into the request context before the handler
// body runs.
func (a *App) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(statusForError(ErrUnauthenticated), gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		userID, err := a.resolveAccessToken(authHeader[7:])
		if err != nil {
			c.JSON(statusForError(err), gin.H{"error": err.Error()})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// currentUserID reads the id set by authMiddleware.
func currentUserID(c *gin.Context) uint {
	return c.GetUint("user_id")
}

// issueRefreshToken generates a random refresh token, stores its hash with
// expiry and returns the raw token string.
func (a *App) issueRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	h := sha256.Sum256([]byte(token))
	rt := models.RefreshToken{
		UserID:    userID,
		TokenHash: hex.EncodeToString(h[:]),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := a.db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

func (a *App) findRefreshToken(raw string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(raw))
	var rt models.RefreshToken
	if err := a.db.Where("token_hash = ?", hex.EncodeToString(h[:])).First(&rt).Error; err != nil {
		return nil, fmt.Errorf("refresh token %w", ErrNotFound)
	}
	return &rt, nil
}

// rotateRefreshToken exchanges a valid refresh token for a new access and
// refresh token pair, revoking the old one.
func (a *App) rotateRefreshToken(raw string) (access, refresh string, err error) {
	rt, err := a.findRefreshToken(raw)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		return "", "", fmt.Errorf("%w: invalid or expired refresh token", ErrUnauthenticated)
	}
	var user models.User
	if err := a.db.First(&user, rt.UserID).Error; err != nil {
		return "", "", fmt.Errorf("%w: user not found", ErrUnauthenticated)
	}
	access, err = a.issueAccessToken(&user)
	if err != nil {
		return "", "", err
	}
	if err := a.db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true).Error; err != nil {
		return "", "", err
	}
	refresh, err = a.issueRefreshToken(user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// revokeRefreshToken marks a refresh token unusable (logout).
func (a *App) revokeRefreshToken(raw string) error {
	rt, err := a.findRefreshToken(raw)
	if err != nil {
		return err
	}
	rt.Revoked = true
	return a.db.Save(rt).Error
}
