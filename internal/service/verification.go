package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	apperrors "github.com/Payphone-Digital/carrental/internal/errors"
	"github.com/Payphone-Digital/carrental/internal/model"
	ctxutil "github.com/Payphone-Digital/carrental/pkg/context"
	"github.com/Payphone-Digital/carrental/pkg/logger"
	"github.com/Payphone-Digital/carrental/pkg/validation"
	"gorm.io/gorm"
)

// CodeGenerator produces a numeric one-time code of the given length.
type CodeGenerator func(length int) (string, error)

// RandomCode draws a uniformly distributed, zero-padded numeric code from
// crypto/rand.
func RandomCode(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

type VerificationService struct {
	store      VerificationStore
	tokens     *JWTService
	notifier   SMSNotifier
	codeTTL    time.Duration
	codeLength int
	generate   CodeGenerator
	now        func() time.Time
}

func NewVerificationService(store VerificationStore, tokens *JWTService, notifier SMSNotifier, codeTTL time.Duration, codeLength int) *VerificationService {
	return &VerificationService{
		store:      store,
		tokens:     tokens,
		notifier:   notifier,
		codeTTL:    codeTTL,
		codeLength: codeLength,
		generate:   RandomCode,
		now:        time.Now,
	}
}

// WithClock replaces the time source used for ledger expiry.
func (s *VerificationService) WithClock(now func() time.Time) *VerificationService {
	s.now = now
	return s
}

func (s *VerificationService) WithGenerator(g CodeGenerator) *VerificationService {
	s.generate = g
	return s
}

// SendCode records a fresh code for mobile, hands it to the notifier and
// returns a ticket binding the number to the code.
func (s *VerificationService) SendCode(ctx context.Context, mobile string) (string, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "SendCode")

	if !validation.IsValidMobile(mobile) {
		logger.WarnWithContext(ctx, "Rejected verification request").
			Mobile("mobile_number", mobile).
			Log()
		return "", apperrors.ErrInvalidPhoneFormat
	}

	code, err := s.generate(s.codeLength)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to generate verification code").
			Err(err).
			Log()
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	record := &model.PhoneVerification{
		MobileNumber:     mobile,
		VerificationCode: code,
		ExpiresAt:        s.now().UTC().Add(s.codeTTL),
	}
	if err := s.store.Create(ctx, record); err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.notifier.SendVerificationCode(ctx, mobile, code); err != nil {
		logger.ErrorWithContext(ctx, "Failed to deliver verification code").
			Mobile("mobile_number", mobile).
			Err(err).
			Log()
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	ticket, err := s.tokens.IssueTicket(mobile, code)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Verification code issued").
		Mobile("mobile_number", mobile).
		Uint("verification_id", record.ID).
		Log()

	return ticket, nil
}

// VerifyPhone consumes the code named by ticket and returns a verified
// token for its phone number. A code can be consumed only once.
func (s *VerificationService) VerifyPhone(ctx context.Context, ticket, code string) (string, error) {
	ctx = ctxutil.WithOperation(ctx, "service", "VerifyPhone")

	if ticket == "" || code == "" {
		return "", apperrors.ErrVerificationInputRequired
	}

	claims, err := s.tokens.Verify(ticket)
	if err != nil {
		logger.WarnWithContext(ctx, "Verification ticket rejected").
			String("reason", VerifyFailureReason(err)).
			Log()
		return "", apperrors.WrapError(apperrors.ErrInvalidToken, err)
	}
	if claims.MobileNumber == "" || claims.VerificationCode == "" {
		logger.WarnWithContext(ctx, "Verification ticket missing claims").Log()
		return "", apperrors.ErrInvalidToken
	}

	if subtle.ConstantTimeCompare([]byte(claims.VerificationCode), []byte(code)) != 1 {
		logger.WarnWithContext(ctx, "Verification code mismatch").
			Mobile("mobile_number", claims.MobileNumber).
			Log()
		return "", apperrors.ErrCodeMismatch
	}

	record, err := s.store.FindLatestValid(ctx, claims.MobileNumber, code, s.now().UTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrCodeExpiredOrUsed
		}
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	consumed, err := s.store.MarkUsed(ctx, record.ID)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	if !consumed {
		logger.WarnWithContext(ctx, "Verification code consumed concurrently").
			Uint("verification_id", record.ID).
			Log()
		return "", apperrors.ErrCodeExpiredOrUsed
	}

	token, err := s.tokens.IssueVerifiedToken(claims.MobileNumber)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	logger.InfoWithContext(ctx, "Phone number verified").
		Mobile("mobile_number", claims.MobileNumber).
		Log()

	return token, nil
}
