package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role yang dikenal oleh dashboard.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
	RoleNurse = "nurse"
)

var ErrMissingSecret = errors.New("JWT secret key is missing")

// Claims issued by the hospital login service. This service only validates them.
type Claims struct {
	IDKaryawan string `json:"id_karyawan"`
	Role       string `json:"role"`
	Username   string `json:"username"`
	jwt.RegisteredClaims
}

// GenerateJWTToken signs claims with HS256. Used by tooling and tests; tokens
// in production come from the login service sharing the same secret.
func GenerateJWTToken(secret, idKaryawan, role, username string, exp time.Time) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}

	claims := Claims{
		IDKaryawan: idKaryawan,
		Role:       role,
		Username:   username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateJWTToken memvalidasi token JWT dan mengembalikan klaim.
func ValidateJWTToken(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
