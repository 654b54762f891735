package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_RoundTrip(t *testing.T) {
	tok, err := GenerateJWTToken("s3cret", "12", RoleNurse, "suster.ani", time.Now().Add(time.Hour))
	require.NoError(t, err)

	claims, err := ValidateJWTToken("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "12", claims.IDKaryawan)
	assert.Equal(t, RoleNurse, claims.Role)
	assert.Equal(t, "suster.ani", claims.Username)
}

func TestJWT_WrongSecretAndExpired(t *testing.T) {
	tok, err := GenerateJWTToken("s3cret", "12", RoleAdmin, "admin", time.Now().Add(time.Hour))
	require.NoError(t, err)
	_, err = ValidateJWTToken("other", tok)
	assert.Error(t, err)

	expired, err := GenerateJWTToken("s3cret", "12", RoleAdmin, "admin", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = ValidateJWTToken("s3cret", expired)
	assert.Error(t, err)
}

func TestJWT_MissingSecret(t *testing.T) {
	_, err := GenerateJWTToken("", "1", RoleAdmin, "admin", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrMissingSecret)
	_, err = ValidateJWTToken("", "x.y.z")
	assert.ErrorIs(t, err, ErrMissingSecret)
}
