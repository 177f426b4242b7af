// Package auth issues and verifies admin console tokens. Passwords are
// stored as bcrypt hashes; sessions are stateless JWTs signed with a
// shared secret.
package auth

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"speed-trivia-service/internal/app"
	"speed-trivia-service/internal/domain"
)

type Authenticator struct {
	operators app.OperatorStore
	secret    []byte
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthenticator(operators app.OperatorStore, secret string, tokenTTL time.Duration) *Authenticator {
	return &Authenticator{
		operators: operators,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		now:       time.Now,
	}
}

// SignIn checks the credentials and returns a signed token. Unknown email
// and wrong password both come back as ErrInvalidCredentials so the login
// endpoint cannot be used to probe for accounts.
func (a *Authenticator) SignIn(ctx context.Context, email, password string) (string, error) {
	op, err := a.operators.OperatorByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrOperatorNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("look up operator: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	now := a.now()
	claims := jwt.RegisteredClaims{
		Subject:   op.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}

// Subject verifies a token and returns the operator email it was issued to.
func (a *Authenticator) Subject(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return a.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(func() time.Time { return a.now() }),
	)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.ErrInvalidCredentials
	}
	return claims.Subject, nil
}

// RandomSecret generates an ephemeral signing key for deployments that
// have not configured one. Tokens die with the process.
func RandomSecret() string {
	buf := make([]byte, 32)
	if _, err := cryptorand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// HashPassword wraps bcrypt at the default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
