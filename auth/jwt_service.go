package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// jwtKey is replaced at startup via SetSigningKey; the default only exists
// so a dev instance runs without configuration.
var jwtKey = []byte("primex_taskmanager_dev_key_do_not_use_in_production")

// SetSigningKey installs the HMAC secret used to sign and verify tokens.
func SetSigningKey(key string) {
	if key != "" {
		jwtKey = []byte(key)
	}
}

// Claims is the JWT payload: standard claims plus the account identity and
// role checked by the middleware.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken creates a new JWT for the user, valid for 24 hours.
func GenerateToken(userID int64, username, role string) (string, time.Time, error) {
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			Issuer:    "primex_taskmanager",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(jwtKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("could not sign token: %w", err)
	}

	return tokenString, expirationTime, nil
}

// ValidateToken verifies a JWT and returns its claims when valid.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtKey, nil
	})

	if err != nil {
		if ve, ok := err.(*jwt.ValidationError); ok {
			if ve.Errors&jwt.ValidationErrorMalformed != 0 {
				return nil, fmt.Errorf("token is malformed")
			} else if ve.Errors&(jwt.ValidationErrorExpired|jwt.ValidationErrorNotValidYet) != 0 {
				return nil, fmt.Errorf("token is expired or not active yet")
			}
		}
		return nil, fmt.Errorf("couldn't handle this token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("token is invalid")
	}

	return claims, nil
}
