package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)

	return NewAuthService(string(hash), "test-secret", time.Hour)
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Login("correct horse")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "device", claims["sub"])
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login("battery staple")
	assert.ErrorIs(t, err, ErrInvalidPassword)
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.VerifyJWT("not.a.token")
	assert.Error(t, err)
}

func TestVerifyJWTRejectsWrongSecret(t *testing.T) {
	svc := newTestAuthService(t)

	token, err := svc.Login("correct horse")
	require.NoError(t, err)

	other := NewAuthService(svc.passwordHash, "other-secret", time.Hour)
	_, err = other.VerifyJWT(token)
	assert.Error(t, err)
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)

	svc := NewAuthService(string(hash), "test-secret", -time.Minute)
	token, err := svc.Login("pw")
	require.NoError(t, err)

	_, err = svc.VerifyJWT(token)
	assert.Error(t, err)
}
