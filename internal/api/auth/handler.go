package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"folkify/config"
	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/domain/artists"
	"folkify/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func isEmailValid(email string) bool {
	return emailPattern.MatchString(email)
}

func generateToken() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// POST /register
func Register(c *gin.Context) {
	var input RegisterRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err)
		return
	}

	email := normalizeEmail(input.Email)
	if !isPasswordStrong(input.Password) {
		respond.FailWith(c, http.StatusBadRequest, "Password must be at least 8 characters long and contain both letters and numbers")
		return
	}
	if !isEmailValid(email) {
		respond.FailWith(c, http.StatusBadRequest, "Invalid email format")
		return
	}
	if !users.ValidRole(input.Role) {
		respond.FailWith(c, http.StatusBadRequest, "Role must be artist or buyer")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	hashed := string(hashedPassword)

	var exists int64
	if err := database.DB.Model(&users.User{}).Where("email = ?", email).Count(&exists).Error; err != nil {
		respond.Fail(c, err)
		return
	}
	if exists > 0 {
		respond.FailWith(c, http.StatusConflict, "Email already registered")
		return
	}

	user := users.User{
		Email:        email,
		Password:     &hashed,
		AuthProvider: users.ProviderLocal,
		Role:         input.Role,
		DisplayName:  strings.TrimSpace(input.DisplayName),
		Phone:        strings.TrimSpace(input.Phone),
	}
	var artist *artists.Artist

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if !user.IsArtist() {
			return nil
		}

		artist = &artists.Artist{
			ID:          user.ID,
			DisplayName: user.DisplayName,
			ArtForm:     strings.TrimSpace(input.ArtForm),
			Region:      strings.TrimSpace(input.Region),
			Village:     strings.TrimSpace(input.Village),
		}
		if err := tx.Create(artist).Error; err != nil {
			return err
		}
		_, err := artists.EnsureProfileSlug(tx, artist)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("email", email).Msg("register failed")
		respond.FailWith(c, http.StatusConflict, "Email may already exist")
		return
	}

	token, err := middleware.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Could not create token")
		return
	}

	log.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("user registered")
	respond.OK(c, http.StatusCreated, gin.H{"token": token, "user": user, "artist": artist})
}

// POST /login
func Login(c *gin.Context) {
	var input LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", normalizeEmail(input.Email)).First(&user).Error; err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if user.Password == nil || *user.Password == "" {
		respond.FailWith(c, http.StatusUnauthorized, "This account uses Google sign-in")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := middleware.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Could not create token")
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"token": token, "user": user})
}

// POST /logout. Tokens are stateless; the client drops its copy.
func Logout(c *gin.Context) {
	respond.OK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// POST /request-password-reset
func RequestPasswordReset(c *gin.Context) {
	var body PasswordResetRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.FailWith(c, http.StatusBadRequest, "Invalid email")
		return
	}

	const reply = "If your email exists, you'll receive a reset link."

	var user users.User
	if err := database.DB.Where("email = ?", normalizeEmail(body.Email)).First(&user).Error; err != nil {
		respond.OK(c, http.StatusOK, gin.H{"message": reply})
		return
	}

	token := generateToken()
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", user.ID).Delete(&users.ResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&users.ResetToken{
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: time.Now().Add(resetTokenTTL),
		}).Error
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", strings.TrimRight(config.APP_URL, "/"), token)
	if err := sendResetEmail(user.Email, link); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("password reset email not sent")
	}

	respond.OK(c, http.StatusOK, gin.H{"message": reply})
}

// POST /reset-password
func ResetPassword(c *gin.Context) {
	var body ResetPasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.FailWith(c, http.StatusBadRequest, "Invalid request")
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		respond.FailWith(c, http.StatusBadRequest, "Password must be at least 8 characters with letters and numbers")
		return
	}

	var reset users.ResetToken
	err := database.DB.Where("token = ?", body.Token).First(&reset).Error
	if err != nil || reset.Expired(time.Now()) {
		respond.FailWith(c, http.StatusBadRequest, "Invalid or expired token")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&users.User{}).Where("id = ?", reset.UserID).Update("password", string(hashed)).Error; err != nil {
			return err
		}
		return tx.Delete(&reset).Error
	})
	if err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"message": "Password reset successful"})
}

// POST /change-password
func ChangePassword(c *gin.Context) {
	s, ok := middleware.CurrentSession(c)
	if !ok {
		respond.FailWith(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var body ChangePasswordRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.FailWith(c, http.StatusBadRequest, "Invalid input")
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		respond.FailWith(c, http.StatusBadRequest, "New password must be at least 8 characters with letters and numbers")
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ?", s.UserID).Error; err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "User not found")
		return
	}

	if user.Password == nil || *user.Password == "" {
		respond.FailWith(c, http.StatusBadRequest, "This account does not have a password. Sign in with Google or reset your password first.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(body.OldPassword)); err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "Old password is incorrect")
		return
	}

	hashedNew, err := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "Failed to hash password")
		return
	}
	if err := database.DB.Model(&user).Update("password", string(hashedNew)).Error; err != nil {
		respond.Fail(c, err)
		return
	}

	respond.OK(c, http.StatusOK, gin.H{"message": "Password changed successfully"})
}
