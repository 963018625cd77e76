package service

import "context"

// MailService defines the interface for delivering the transactional emails
// the credential flows produce. Implementations render the templates and talk
// to an SMTP relay or hosted mail API; failures are reported to the caller,
// which decides whether they are fatal.
type MailService interface {
	// SendVerificationEmail delivers the email-verification message with the
	// given link. The link embeds the unhashed temporary token.
	SendVerificationEmail(ctx context.Context, to, username, verificationURL string) error

	// SendPasswordResetEmail delivers the password-reset message with the
	// given link.
	SendPasswordResetEmail(ctx context.Context, to, username, resetURL string) error
}
