package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

// AuthClaims is the payload of every token the service issues. Session
// tokens carry UserID, tickets carry MobileNumber and VerificationCode,
// verified tokens carry MobileNumber and Verified.
type AuthClaims struct {
	UserID           uint   `json:"userId,omitempty"`
	MobileNumber     string `json:"mobileNumber,omitempty"`
	VerificationCode string `json:"verificationCode,omitempty"`
	Verified         bool   `json:"verified,omitempty"`
	jwt.RegisteredClaims
}

// TokenTTL sets the lifetime of each token kind.
type TokenTTL struct {
	Session  time.Duration
	Ticket   time.Duration
	Verified time.Duration
}

type JWTService struct {
	secretKey []byte
	ttl       TokenTTL
	now       func() time.Time
}

func NewJWTService(secretKey string, ttl TokenTTL) (*JWTService, error) {
	if secretKey == "" {
		return nil, ErrEmptySecret
	}
	return &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// WithClock replaces the time source used for issuing and validating.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Sign issues an HS256 token for claims that expires after ttl.
func (s *JWTService) Sign(claims AuthClaims, ttl time.Duration) (string, error) {
	issuedAt := s.now()
	claims.IssuedAt = jwt.NewNumericDate(issuedAt)
	claims.ExpiresAt = jwt.NewNumericDate(issuedAt.Add(ttl))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, algorithm and expiry of tokenString. The
// returned error keeps the jwt library cause for logging.
func (s *JWTService) Verify(tokenString string) (*AuthClaims, error) {
	claims := &AuthClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			return s.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

func (s *JWTService) IssueSessionToken(userID uint) (string, error) {
	return s.Sign(AuthClaims{UserID: userID}, s.ttl.Session)
}

func (s *JWTService) IssueTicket(mobile, code string) (string, error) {
	return s.Sign(AuthClaims{MobileNumber: mobile, VerificationCode: code}, s.ttl.Ticket)
}

func (s *JWTService) IssueVerifiedToken(mobile string) (string, error) {
	return s.Sign(AuthClaims{MobileNumber: mobile, Verified: true}, s.ttl.Verified)
}

// VerifyFailureReason classifies a Verify error for logs only.
func VerifyFailureReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "bad_signature"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	default:
		return "invalid"
	}
}
