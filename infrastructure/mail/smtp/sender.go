// ABOUTME: SMTP sender that emails EPUB files to Kindle addresses
// ABOUTME: Builds the multipart MIME message Amazon's converter expects

package smtp

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"

	"kindle-press-api/core/interfaces"
)

// conversionSubject asks Amazon to convert the attachment for the
// device instead of storing it verbatim.
const conversionSubject = "Convert"

// mimeBoundary separates the text part from the attachment. Fixed
// rather than random: the message never embeds user content outside
// base64-encoded parts.
const mimeBoundary = "kindle-press-boundary"

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Sender implements the KindleSender interface over SMTP
type Sender struct {
	config Config
	logger interfaces.Logger

	// send is swappable for tests; defaults to smtp.SendMail.
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSender creates a new SMTP sender
func NewSender(cfg Config, logger interfaces.Logger) *Sender {
	return &Sender{
		config: cfg,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// Send emails the e-book at bookPath to the given Kindle address.
func (s *Sender) Send(ctx context.Context, to string, bookPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := os.ReadFile(bookPath)
	if err != nil {
		return fmt.Errorf("failed to read e-book: %w", err)
	}

	msg := buildMessage(s.config.From, to, filepath.Base(bookPath), data)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if err := s.send(addr, auth, s.config.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send e-book: %w", err)
	}

	s.logger.Info("Sent e-book", map[string]interface{}{
		"to":   to,
		"book": filepath.Base(bookPath),
		"size": len(data),
	})
	return nil
}

// buildMessage assembles a multipart MIME message with the e-book as a
// base64-encoded attachment.
func buildMessage(from, to, filename string, attachment []byte) []byte {
	var sb strings.Builder

	sb.WriteString("From: " + from + "\r\n")
	sb.WriteString("To: " + to + "\r\n")
	sb.WriteString("Subject: " + conversionSubject + "\r\n")
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: multipart/mixed; boundary=" + mimeBoundary + "\r\n")
	sb.WriteString("\r\n")

	sb.WriteString("--" + mimeBoundary + "\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	sb.WriteString("\r\n")
	sb.WriteString("Attached: " + filename + "\r\n")
	sb.WriteString("\r\n")

	sb.WriteString("--" + mimeBoundary + "\r\n")
	sb.WriteString("Content-Type: application/epub+zip; name=\"" + filename + "\"\r\n")
	sb.WriteString("Content-Transfer-Encoding: base64\r\n")
	sb.WriteString("Content-Disposition: attachment; filename=\"" + filename + "\"\r\n")
	sb.WriteString("\r\n")

	encoded := base64.StdEncoding.EncodeToString(attachment)
	// RFC 2045 caps encoded lines at 76 characters.
	for len(encoded) > 76 {
		sb.WriteString(encoded[:76] + "\r\n")
		encoded = encoded[76:]
	}
	sb.WriteString(encoded + "\r\n")
	sb.WriteString("\r\n--" + mimeBoundary + "--\r\n")

	return []byte(sb.String())
}
