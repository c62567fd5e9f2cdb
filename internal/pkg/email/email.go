package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/staffhub-hr/timeoff-backend-go/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	Send(to, subject, htmlBody string) error
	RenderApprovalRequest(requesterName, requestType, startDate, endDate string) (subject, body string, err error)
	RenderDecision(requesterName, requestType, startDate, endDate string, approved bool) (subject, body string, err error)
	RenderOutOfOffice(requesterName, startDate, endDate string) (subject, body string, err error)
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type requestEmailData struct {
	RequesterName string
	RequestType   string
	StartDate     string
	EndDate       string
	Approved      bool
}

// RenderApprovalRequest renders the email sent to an approver when a new
// request lands in their queue.
func (s *emailServiceImpl) RenderApprovalRequest(requesterName, requestType, startDate, endDate string) (string, string, error) {
	data := requestEmailData{
		RequesterName: requesterName,
		RequestType:   requestType,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "approval_request.html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Time-off request from %s awaits your approval", requesterName)
	return subject, body.String(), nil
}

// RenderDecision renders the email sent to each approver once a request
// reaches a final status.
func (s *emailServiceImpl) RenderDecision(requesterName, requestType, startDate, endDate string, approved bool) (string, string, error) {
	data := requestEmailData{
		RequesterName: requesterName,
		RequestType:   requestType,
		StartDate:     startDate,
		EndDate:       endDate,
		Approved:      approved,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "decision.html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Time-off request %s - %s was approved", startDate, endDate)
	if !approved {
		subject = fmt.Sprintf("Time-off request %s - %s was rejected", startDate, endDate)
	}
	return subject, body.String(), nil
}

// RenderOutOfOffice renders the email telling a leader's reports that their
// lead will be away.
func (s *emailServiceImpl) RenderOutOfOffice(requesterName, startDate, endDate string) (string, string, error) {
	data := requestEmailData{
		RequesterName: requesterName,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "out_of_office.html", data); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("%s will be out of office", requesterName)
	return subject, body.String(), nil
}

func (s *emailServiceImpl) Send(to, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", to)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, []string{to}, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
