package utils

import (
	"clinic-booking-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// AccessTokenClaims is the payload the clinic backend signs into user_access_token.
type AccessTokenClaims struct {
	UserID   int
	Username string
	Role     string
}

// ParseAccessToken verifies an HS256 access token and requires a subject
// and the "access" token name.
func ParseAccessToken(tokenString, secret string) (*AccessTokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if name, _ := claims[constvars.JWTClaimName].(string); name != constvars.JWTTokenTypeAccess {
		return nil, errors.New("token type mismatch")
	}

	subject, _ := claims[constvars.JWTClaimSubject].(string)
	if subject == "" {
		return nil, errors.New("token missing sub")
	}
	userID, err := strconv.Atoi(subject)
	if err != nil {
		return nil, fmt.Errorf("token sub is not numeric: %w", err)
	}

	username, _ := claims["username"].(string)
	role, _ := claims["role"].(string)
	return &AccessTokenClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
	}, nil
}

// ParseDate parses a YYYY-MM-DD calendar date in the local timezone.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(constvars.DateLayout, value, time.Local)
}
