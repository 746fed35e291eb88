package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ArowuTest/spin-wheel-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/slog"
)

// bcrypt only looks at the first 72 bytes
const maxCodeBytes = 72

// Compile-time check to ensure AuthServiceImpl implements AuthService
var _ AuthService = (*AuthServiceImpl)(nil)

// AuthConfig is what the authenticator needs at startup
type AuthConfig struct {
	AdminCode     string
	SessionSecret string
	SessionTTL    time.Duration
	// Now defaults to time.Now
	Now func() time.Time
}

// AuthServiceImpl signs admin sessions as "<issuedAtMillis>.<hex hmac-sha256>".
// The MAC covers "<adminCode>:<issuedAtMillis>", so a token dies both when its
// TTL passes and when the admin code or secret is rotated. Nothing is stored
// server side; logging out only clears the caller's cookie.
type AuthServiceImpl struct {
	code     string
	codeHash []byte
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// NewAuthService creates a new AuthServiceImpl
func NewAuthService(cfg AuthConfig) (*AuthServiceImpl, error) {
	if cfg.AdminCode == "" || len(cfg.AdminCode) > maxCodeBytes {
		return nil, fmt.Errorf("admin code must be between 1 and %d bytes", maxCodeBytes)
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("session secret must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, errors.New("session TTL must be positive")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminCode), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin code: %w", err)
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &AuthServiceImpl{
		code:     cfg.AdminCode,
		codeHash: hash,
		secret:   []byte(cfg.SessionSecret),
		ttl:      cfg.SessionTTL,
		now:      now,
	}, nil
}

// IssueToken checks code and returns a session signed for the current millisecond
func (s *AuthServiceImpl) IssueToken(code string) (*models.AdminSession, error) {
	if len(code) > maxCodeBytes || bcrypt.CompareHashAndPassword(s.codeHash, []byte(code)) != nil {
		slog.Warn("Admin login rejected")
		return nil, ErrInvalidCredentials
	}

	iat := s.now().UnixMilli()
	return &models.AdminSession{
		Token:    strconv.FormatInt(iat, 10) + "." + s.sign(iat),
		IssuedAt: time.UnixMilli(iat),
		TTL:      s.ttl,
	}, nil
}

// VerifyToken reports whether token was issued by this server within the TTL
func (s *AuthServiceImpl) VerifyToken(token string) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Session verification panicked", "panic", r)
			ok = false
		}
	}()

	iatStr, sig, found := strings.Cut(token, ".")
	if !found || iatStr == "" || sig == "" {
		return false
	}
	iat, err := strconv.ParseInt(iatStr, 10, 64)
	if err != nil || iat <= 0 {
		return false
	}
	if s.now().UnixMilli()-iat > s.ttl.Milliseconds() {
		return false
	}
	return hmac.Equal([]byte(sig), []byte(s.sign(iat)))
}

// SessionTTL returns the lifetime of issued tokens
func (s *AuthServiceImpl) SessionTTL() time.Duration {
	return s.ttl
}

func (s *AuthServiceImpl) sign(iat int64) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(s.code + ":" + strconv.FormatInt(iat, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
