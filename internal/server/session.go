package server

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"time"

	"chirper/internal/cache"
	"chirper/internal/middleware"
	"chirper/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookieName = "chirper_session"
	csrfCookieName    = "chirper_csrf"
	csrfHeaderName    = "X-CSRF-Token"
	sessionTTL        = 7 * 24 * time.Hour
)

// generateSessionToken creates the signed session token for a user.
// The jti identifies this session for anti-forgery token storage.
func (s *Server) generateSessionToken(userID uint, username string) (token, jti string, err error) {
	if s.config.SessionSecret == "" {
		return "", "", fmt.Errorf("session secret not configured")
	}

	jti = uuid.New().String()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "chirper-api",
		"aud":      "chirper-client",
		"exp":      now.Add(sessionTTL).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      jti,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(s.config.SessionSecret))
	if err != nil {
		return "", "", err
	}
	return signed, jti, nil
}

// parseSessionToken validates a session token and extracts its identity claims.
func (s *Server) parseSessionToken(tokenString string) (userID uint, username, jti string, err error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(s.config.SessionSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, "", "", fmt.Errorf("invalid or expired session")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", "", fmt.Errorf("invalid session claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return 0, "", "", fmt.Errorf("invalid session subject")
	}
	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		return 0, "", "", fmt.Errorf("invalid user ID in session")
	}

	username, _ = claims["username"].(string)
	jti, _ = claims["jti"].(string)
	return uint(id), username, jti, nil
}

// beginSession issues the session cookie and the per-session anti-forgery
// token. The anti-forgery token is stored in Redis keyed by the session
// id and doubled into a readable cookie; it is also returned so API
// clients can pick it up from the response body.
func (s *Server) beginSession(c *fiber.Ctx, userID uint, username string) (csrfToken string, err error) {
	token, jti, err := s.generateSessionToken(userID, username)
	if err != nil {
		return "", err
	}

	csrfToken = uuid.New().String()
	cache.StoreCSRFToken(c.Context(), s.redis, jti, csrfToken)

	expires := time.Now().Add(sessionTTL)
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: true,
		SameSite: "Lax",
	})
	c.Cookie(&fiber.Cookie{
		Name:     csrfCookieName,
		Value:    csrfToken,
		Expires:  expires,
		Path:     "/",
		HTTPOnly: false,
		SameSite: "Lax",
	})
	return csrfToken, nil
}

// endSession clears the session and anti-forgery cookies and drops the
// stored anti-forgery token.
func (s *Server) endSession(c *fiber.Ctx, jti string) {
	if jti != "" {
		cache.DropCSRFToken(c.Context(), s.redis, jti)
	}
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{Name: sessionCookieName, Value: "", Expires: expired, Path: "/", HTTPOnly: true, SameSite: "Lax"})
	c.Cookie(&fiber.Cookie{Name: csrfCookieName, Value: "", Expires: expired, Path: "/", SameSite: "Lax"})
}

// sessionTokenFromRequest pulls the session token from the cookie, or
// from a Bearer Authorization header for API clients.
func sessionTokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(sessionCookieName); token != "" {
		return token
	}
	const prefix = "Bearer "
	auth := c.Get("Authorization")
	if len(auth) > len(prefix) && auth[:len(prefix)] == prefix {
		return auth[len(prefix):]
	}
	return ""
}

// SessionRequired rejects anonymous callers. Every failure mode — no
// token, bad signature, expired session — gets the same notice so the
// response never leaks whether the underlying resource exists.
func (s *Server) SessionRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionTokenFromRequest(c)
		if token == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access unauthorized."))
		}

		userID, username, jti, err := s.parseSessionToken(token)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Access unauthorized."))
		}

		c.Locals("userID", userID)
		c.Locals("username", username)
		c.Locals("sessionID", jti)
		// Sync to UserContext for logging and downstream services
		ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// SessionOptional populates the caller's identity when a valid session
// is present and continues anonymously otherwise.
func (s *Server) SessionOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := sessionTokenFromRequest(c)
		if token != "" {
			if userID, username, jti, err := s.parseSessionToken(token); err == nil {
				c.Locals("userID", userID)
				c.Locals("username", username)
				c.Locals("sessionID", jti)
				ctx := context.WithValue(c.UserContext(), middleware.UserIDKey, userID)
				c.SetUserContext(ctx)
			}
		}
		return c.Next()
	}
}

// CSRFRequired gates mutating form-style submissions. It must run after
// SessionRequired. The submitted token is checked against the stored
// per-session token; without Redis it degrades to a double-submit cookie
// comparison. A failed check is a generic rejection, distinct from the
// unauthorized class.
func (s *Server) CSRFRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		submitted := c.Get(csrfHeaderName)
		if submitted == "" {
			submitted = c.FormValue("csrf_token")
		}
		if submitted == "" {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Request could not be verified"))
		}

		jti, _ := c.Locals("sessionID").(string)
		expected, ok := cache.LookupCSRFToken(c.Context(), s.redis, jti)
		if !ok {
			expected = c.Cookies(csrfCookieName)
		}
		if expected == "" ||
			subtle.ConstantTimeCompare([]byte(submitted), []byte(expected)) != 1 {
			return models.RespondWithError(c, fiber.StatusForbidden,
				models.NewForbiddenError("Request could not be verified"))
		}

		return c.Next()
	}
}
