package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"folkify/config"
	"folkify/database"
	"folkify/internal/app/http/middleware"
	"folkify/internal/app/http/respond"
	"folkify/internal/domain/artists"
	"folkify/internal/domain/users"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

const (
	stateCookie = "oauth_state"
	roleCookie  = "oauth_role"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			oidc.ScopeOpenID,
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google?role=artist|buyer
func GoogleStart(c *gin.Context) {
	if !config.GoogleEnabled() {
		respond.FailWith(c, http.StatusNotFound, "Google sign-in is not enabled")
		return
	}

	state, err := randomState()
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "failed to generate state")
		return
	}

	role := c.DefaultQuery("role", users.RoleBuyer)
	if !users.ValidRole(role) {
		respond.FailWith(c, http.StatusBadRequest, "Role must be artist or buyer")
		return
	}

	secure := strings.HasPrefix(config.APP_URL, "https://")
	c.SetCookie(stateCookie, state, 300, "/", "", secure, true)
	c.SetCookie(roleCookie, role, 300, "/", "", secure, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.FailWith(c, http.StatusBadRequest, "missing code/state")
		return
	}

	cookieState, err := c.Cookie(stateCookie)
	if err != nil || cookieState != state {
		respond.FailWith(c, http.StatusBadRequest, "invalid oauth state")
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		respond.FailWith(c, http.StatusUnauthorized, "failed to exchange code")
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respond.FailWith(c, http.StatusUnauthorized, "missing id_token")
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		respond.FailWith(c, http.StatusUnauthorized, err.Error())
		return
	}

	role, _ := c.Cookie(roleCookie)
	if !users.ValidRole(role) {
		role = users.RoleBuyer
	}

	user, err := findOrCreateGoogleUser(database.DB, claims, role)
	if err != nil {
		log.Error().Err(err).Str("email", claims.Email).Msg("google sign-in failed")
		respond.FailWith(c, http.StatusInternalServerError, "failed to create user")
		return
	}

	tokenString, err := middleware.IssueToken(user.ID, user.Email, user.Role)
	if err != nil {
		respond.FailWith(c, http.StatusInternalServerError, "could not create token")
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		respond.OK(c, http.StatusOK, gin.H{"token": tokenString, "user": user})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	if !claims.EmailVerified {
		return nil, errors.New("google email is not verified")
	}
	return &claims, nil
}

// findOrCreateGoogleUser resolves the account by Google subject, then by
// email (linking the subject), and otherwise creates one with role.
func findOrCreateGoogleUser(db *gorm.DB, gc *googleIDClaims, role string) (users.User, error) {
	var user users.User
	email := normalizeEmail(gc.Email)

	if err := db.Where("google_sub = ?", gc.Sub).First(&user).Error; err == nil {
		return user, nil
	}

	if err := db.Where("email = ?", email).First(&user).Error; err == nil {
		if user.GoogleSub == nil {
			sub := gc.Sub
			if err := db.Model(&user).Update("google_sub", sub).Error; err != nil {
				return users.User{}, err
			}
			user.GoogleSub = &sub
		}
		return user, nil
	}

	sub := gc.Sub
	user = users.User{
		Email:        email,
		AuthProvider: users.ProviderGoogle,
		GoogleSub:    &sub,
		Role:         role,
		DisplayName:  firstNonEmpty(gc.Name, gc.GivenName, email),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if !user.IsArtist() {
			return nil
		}
		artist := artists.Artist{ID: user.ID, DisplayName: user.DisplayName}
		if err := tx.Create(&artist).Error; err != nil {
			return err
		}
		_, err := artists.EnsureProfileSlug(tx, &artist)
		return err
	})
	if err != nil {
		return users.User{}, err
	}
	return user, nil
}

func firstNonEmpty(s ...string) string {
	for _, v := range s {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
