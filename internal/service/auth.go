package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidPassword = errors.New("invalid password")

// AuthService implements the single-user device auth: the configured password
// (stored as a bcrypt hash) is exchanged for a signed session token.
type AuthService struct {
	passwordHash string
	jwtSecret    string
	jwtExpiry    time.Duration
}

func NewAuthService(passwordHash, jwtSecret string, jwtExpiry time.Duration) *AuthService {
	return &AuthService{
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
	}
}

// Login verifies the device password and returns a session JWT.
func (s *AuthService) Login(password string) (string, error) {
	err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password))
	if err != nil {
		return "", ErrInvalidPassword
	}

	return s.GenerateJWT()
}

func (s *AuthService) GenerateJWT() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": "device",
		"exp": now.Add(s.jwtExpiry).Unix(),
		"iat": now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func (s *AuthService) VerifyJWT(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
