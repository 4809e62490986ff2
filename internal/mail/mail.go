// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mail sends the report notification email. Delivery runs after
// the report artifacts are on disk; a delivery failure is reported to the
// caller but never discards the already-produced report.
package mail

import (
	"context"
	"fmt"
	"os"

	gomail "github.com/wneessen/go-mail"

	"github.com/gogojjh/everyday-my-arxiv/pkg/types"
)

// Notifier sends report notifications over SMTP.
type Notifier struct {
	cfg  types.EmailConfig
	send func(ctx context.Context, msg *gomail.Msg) error
}

// NewNotifier builds a Notifier from validated email configuration.
func NewNotifier(cfg types.EmailConfig) *Notifier {
	n := &Notifier{cfg: cfg}
	n.send = func(ctx context.Context, msg *gomail.Msg) error {
		client, err := gomail.NewClient(cfg.SMTPHost,
			gomail.WithPort(cfg.SMTPPort),
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Sender),
			gomail.WithPassword(cfg.Password),
			gomail.WithTLSPolicy(gomail.TLSMandatory),
		)
		if err != nil {
			return fmt.Errorf("creating SMTP client: %w", err)
		}
		return client.DialAndSendWithContext(ctx, msg)
	}
	return n
}

// SendReport sends the notification for a saved report. The plain-text
// body carries the executive summary and, when configured, the full
// Markdown report; when an HTML artifact exists it is attached as the
// HTML alternative.
func (n *Notifier) SendReport(ctx context.Context, date string, paperCount int, summary, mdPath, htmlPath string) error {
	if !n.cfg.Enabled {
		return nil
	}

	msg, err := n.buildMessage(date, paperCount, summary, mdPath, htmlPath)
	if err != nil {
		return err
	}
	if err := n.send(ctx, msg); err != nil {
		return fmt.Errorf("sending report email: %w", err)
	}
	return nil
}

// buildMessage assembles the multipart message.
func (n *Notifier) buildMessage(date string, paperCount int, summary, mdPath, htmlPath string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(n.cfg.Sender); err != nil {
		return nil, fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(n.cfg.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient address: %w", err)
	}

	subject := fmt.Sprintf("arXiv Papers Report for %s - %d papers", date, paperCount)
	if n.cfg.SubjectPrefix != "" {
		subject = n.cfg.SubjectPrefix + " " + subject
	}
	msg.Subject(subject)

	text := summary
	if n.cfg.IncludeFullReport && mdPath != "" {
		// A missing report file degrades to the summary-only body.
		if full, err := os.ReadFile(mdPath); err == nil {
			text += "\n\n--- FULL REPORT ---\n\n" + string(full)
		}
	}
	msg.SetBodyString(gomail.TypeTextPlain, text)

	if htmlPath != "" {
		if html, err := os.ReadFile(htmlPath); err == nil {
			msg.AddAlternativeString(gomail.TypeTextHTML, string(html))
		}
	}

	return msg, nil
}
