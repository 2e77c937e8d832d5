package utils

import (
	"errors"
	"strings"
	"time"

	"scrooge/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the decoded identity of an authenticated member. It can
// only be obtained through ParseToken, so holding one implies the token
// already passed signature and expiry checks.
type TokenClaims struct {
	Email    string
	MemberID uint
}

func GenerateToken(email string, memberID uint, cfg *config.Config) (string, error) {
	claims := jwt.MapClaims{
		"sub":       email,
		"member_id": memberID,
		"exp":       time.Now().Add(time.Hour * 72).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractBearerToken strips the "Bearer " prefix from an Authorization
// header value. Returns "" when the prefix is missing, which then fails
// ParseToken uniformly.
func ExtractBearerToken(header string) string {
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// ParseToken validates a raw token string and returns its typed claims.
// There is no way to read claims from a token that failed validation.
func ParseToken(tokenString string, cfg *config.Config) (*TokenClaims, error) {
	if tokenString == "" {
		return nil, ErrInvalidToken
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	email, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	memberIDFloat, ok := claims["member_id"].(float64)
	if !ok {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{Email: email, MemberID: uint(memberIDFloat)}, nil
}

// AuthenticateRequest runs the full header-to-claims pipeline for a
// request: prefix strip, then guarded decode.
func AuthenticateRequest(c *fiber.Ctx, cfg *config.Config) (*TokenClaims, error) {
	return ParseToken(ExtractBearerToken(c.Get("Authorization")), cfg)
}
