package auth

import (
	"errors"
	"fmt"
	"net/smtp"

	"folkify/config"

	"github.com/rs/zerolog/log"
)

var errNoSMTP = errors.New("smtp not configured")

// sendResetEmail is swapped in tests.
var sendResetEmail = SendPasswordResetEmail

// SendPasswordResetEmail mails the reset link. Without SMTP settings the
// link is logged so local setups still work.
func SendPasswordResetEmail(to string, link string) error {
	if config.SMTP_HOST == "" || config.SMTP_FROM == "" {
		log.Info().Str("to", to).Str("link", link).Msg("password reset link (smtp not configured)")
		return errNoSMTP
	}

	auth := smtp.PlainAuth("", config.SMTP_FROM, config.SMTP_PASSWORD, config.SMTP_HOST)

	subject := "Reset your Folkify password"
	body := fmt.Sprintf("Use the following link to choose a new password. It expires in one hour.\n\n%s", link)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + config.SMTP_FROM + "\r\n" +
		"To: " + to + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	if err := smtp.SendMail(config.SMTP_HOST+":"+config.SMTP_PORT, auth, config.SMTP_FROM, []string{to}, message); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}
