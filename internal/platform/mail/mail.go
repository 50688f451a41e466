// Copyright (c) 2026 Millearnia. All rights reserved.
// Author: steph2pro@millearnia.dev

/*
Package mail provides outbound transactional email delivery over SMTP.

It is intentionally narrow: the platform only sends short plain-text messages
(one-time password codes for account recovery), so a full templating or
queueing layer is not warranted here.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
)

// SMTPMailer sends plain-text emails through an authenticated SMTP relay.
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	logger   *slog.Logger
}

// NewSMTPMailer constructs a mailer bound to a single SMTP relay.
//
// # Parameters
//   - host, port: SMTP relay endpoint.
//   - username, password: PLAIN auth credentials (empty username disables auth).
//   - from: RFC 5322 From header value, e.g. "Millearnia <no-reply@millearnia.app>".
func NewSMTPMailer(host string, port int, username, password, from string, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		logger:   logger,
	}
}

// Send delivers a plain-text email to a single recipient.
//
// The context is consulted before dialing; net/smtp itself does not support
// cancellation mid-transfer.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("mail: context cancelled before send: %w", err)
	}

	message := buildMessage(m.from, to, subject, body)
	address := fmt.Sprintf("%s:%d", m.host, m.port)

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := smtp.SendMail(address, auth, envelopeAddress(m.from), []string{to}, message); err != nil {
		return fmt.Errorf("mail: failed to send to %s: %w", to, err)
	}

	m.logger.InfoContext(ctx, "mail_sent",
		slog.String("to", to),
		slog.String("subject", subject),
	)

	return nil
}

// buildMessage assembles a minimal RFC 5322 plain-text message.
func buildMessage(from, to, subject, body string) []byte {
	var builder strings.Builder
	builder.WriteString("From: " + from + "\r\n")
	builder.WriteString("To: " + to + "\r\n")
	builder.WriteString("Subject: " + subject + "\r\n")
	builder.WriteString("MIME-Version: 1.0\r\n")
	builder.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	builder.WriteString("\r\n")
	builder.WriteString(body)
	builder.WriteString("\r\n")
	return []byte(builder.String())
}

// envelopeAddress extracts the bare address from a "Name <addr>" From header.
func envelopeAddress(from string) string {
	start := strings.LastIndex(from, "<")
	end := strings.LastIndex(from, ">")
	if start >= 0 && end > start {
		return from[start+1 : end]
	}
	return from
}
