package service

import (
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/crypto/bcrypt"

	"github.com/templateshop/storefront/internal/clock"
)

var (
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrInvalidToken      = errors.New("invalid token")
	ErrAccessLocked      = errors.New("access locked after repeated failed attempts")
)

const (
	maxLoginAttempts = 5
	lockDuration     = 5 * time.Minute
)

// AuthService is the admin login gate: a single operator access code
// exchanged for a signed session token. It is a convenience gate for the
// admin panel, not a security boundary.
type AuthService interface {
	Login(code string) (string, error)
	ValidateToken(token string) error
	RemainingLockTime() time.Duration
}

type authService struct {
	codeHash   []byte
	secretKey  []byte
	sessionTTL time.Duration
	clk        clock.Clock
	logger     hclog.Logger

	mutex     sync.Mutex
	attempts  int
	lockUntil time.Time
}

// NewAuthService hashes the configured access code at startup so the plain
// code is never kept in memory past wiring.
func NewAuthService(accessCode, secretKey string, sessionTTL time.Duration, clk clock.Clock, logger hclog.Logger) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(accessCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &authService{
		codeHash:   hash,
		secretKey:  []byte(secretKey),
		sessionTTL: sessionTTL,
		clk:        clk,
		logger:     logger,
	}, nil
}

func (s *authService) Login(code string) (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := s.clk.Now()
	if now.Before(s.lockUntil) {
		s.logger.Warn("Login attempt while locked", "remaining", s.lockUntil.Sub(now))
		return "", ErrAccessLocked
	}

	if err := bcrypt.CompareHashAndPassword(s.codeHash, []byte(code)); err != nil {
		s.attempts++
		s.logger.Warn("Failed login attempt", "attempts", s.attempts)
		if s.attempts >= maxLoginAttempts {
			s.lockUntil = now.Add(lockDuration)
			s.attempts = 0
			return "", ErrAccessLocked
		}
		return "", ErrInvalidAccessCode
	}

	s.attempts = 0
	s.lockUntil = time.Time{}

	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", err
	}

	s.logger.Info("Admin login", "session_ttl", s.sessionTTL)
	return signed, nil
}

func (s *authService) ValidateToken(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secretKey, nil
	}, jwt.WithTimeFunc(s.clk.Now))

	if err != nil || !token.Valid {
		return ErrInvalidToken
	}
	return nil
}

func (s *authService) RemainingLockTime() time.Duration {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	remaining := s.lockUntil.Sub(s.clk.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}
