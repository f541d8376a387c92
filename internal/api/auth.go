package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/u22754459/Group-29-Retail-Supply-Chain/internal/models"
)

const (
	sessionCookieName = "sc_session"
	sessionUserKey    = "session_user"
)

var errAuthDisabled = errors.New("JWT secret missing")

// SessionUser is what the session token carries about the signed-in user
type SessionUser struct {
	ID        int             `json:"user_id"`
	FirstName string          `json:"first_name"`
	Email     string          `json:"email"`
	UserType  models.UserType `json:"user_type"`
}

// IsAdmin reports whether the session belongs to an admin
func (u *SessionUser) IsAdmin() bool {
	return u != nil && u.UserType == models.UserTypeAdmin
}

// generateJWTToken signs an HS256 token for user valid for the configured TTL
func (h *Handler) generateJWTToken(user models.User) (string, time.Time, error) {
	if h.auth.JWTSecret == "" {
		return "", time.Time{}, errAuthDisabled
	}
	now := h.now()
	expiresAt := now.Add(h.auth.TokenTTL)
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"email":      user.Email,
		"first_name": user.FirstName,
		"role":       string(user.UserType),
		"iat":        now.Unix(),
		"exp":        expiresAt.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.auth.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// parseJWTToken validates tokenString and returns the session user it carries
func (h *Handler) parseJWTToken(tokenString string) (*SessionUser, error) {
	if h.auth.JWTSecret == "" {
		return nil, errAuthDisabled
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(h.auth.JWTSecret), nil
	}, jwt.WithTimeFunc(h.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	// JSON numbers decode as float64
	id, ok := claims["user_id"].(float64)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}
	user := &SessionUser{ID: int(id)}
	user.Email, _ = claims["email"].(string)
	user.FirstName, _ = claims["first_name"].(string)
	if r, ok := claims["role"].(string); ok {
		user.UserType = models.UserType(r)
	}
	return user, nil
}

// bearerToken extracts the token from "Bearer <token>"
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return ""
	}
	return tokenParts[1]
}

// LoadSession resolves the signed-in user from the session cookie or a bearer
// token. Anonymous requests pass through untouched.
func (h *Handler) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		fromCookie := false
		if tokenString == "" {
			if v, err := c.Cookie(sessionCookieName); err == nil && v != "" {
				tokenString = v
				fromCookie = true
			}
		}
		if tokenString != "" {
			user, err := h.parseJWTToken(tokenString)
			if err == nil {
				c.Set(sessionUserKey, user)
				c.Set("user_id", user.ID)
				c.Set("email", user.Email)
				c.Set("role", string(user.UserType))
			} else if fromCookie {
				// stale or forged cookie
				h.clearSession(c)
			}
		}
		c.Next()
	}
}

// AuthMiddleware rejects requests without a valid session or bearer token
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.auth.JWTSecret == "" {
			c.JSON(http.StatusInternalServerError, models.ErrorResponse{
				Error:   "Server not configured",
				Message: "JWT secret missing",
			})
			c.Abort()
			return
		}
		if CurrentUser(c) == nil {
			c.JSON(http.StatusUnauthorized, models.ErrorResponse{
				Error:   "Authorization required",
				Message: "Please provide a valid authorization token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the signed-in user or nil
func CurrentUser(c *gin.Context) *SessionUser {
	v, ok := c.Get(sessionUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*SessionUser)
	return u
}

// authenticate checks email and password against the stored bcrypt hash
func (h *Handler) authenticate(c *gin.Context, email, password string) (*models.User, error) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}
	return user, nil
}

// Login handles JSON login and returns a bearer token
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
		})
		return
	}

	user, err := h.authenticate(c, req.Email, req.Password)
	if err != nil {
		if !isNotFound(err) && !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			_ = c.Error(err)
		}
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid email or password"})
		return
	}

	token, expiresAt, err := h.generateJWTToken(*user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to issue token",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *user,
	})
}

// Me returns the profile of the authenticated user
func (h *Handler) Me(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	user, err := h.store.GetUserByID(ctx, CurrentUser(c).ID)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "Failed to load user",
			Message: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, user)
}
