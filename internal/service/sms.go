package service

import (
	"context"

	"github.com/Payphone-Digital/carrental/pkg/logger"
)

// SMSNotifier delivers verification codes to a phone.
type SMSNotifier interface {
	SendVerificationCode(ctx context.Context, mobile, code string) error
}

// LogSMSNotifier stands in for a real SMS gateway: it only logs the code at
// debug level, with the number masked.
type LogSMSNotifier struct{}

func NewLogSMSNotifier() *LogSMSNotifier {
	return &LogSMSNotifier{}
}

func (n *LogSMSNotifier) SendVerificationCode(ctx context.Context, mobile, code string) error {
	logger.DebugWithContext(ctx, "SMS delivery stubbed").
		Mobile("mobile_number", mobile).
		String("verification_code", code).
		Log()
	return nil
}
