package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"
	"go.uber.org/zap"

	"productivity-hub/internal/config"
	"productivity-hub/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error
	SendReminderDigest(ctx context.Context, toEmail, fullName string, reminders []domain.Notification) error
}

// Sender is the part of the resend client the service needs.
type Sender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type service struct {
	sender Sender
	config *config.Config
	log    *zap.Logger
}

// NewService returns a service that logs and drops mail when no Resend key
// is configured.
func NewService(cfg *config.Config, log *zap.Logger) Service {
	var sender Sender
	if cfg.ResendAPIKey != "" {
		sender = resend.NewClient(cfg.ResendAPIKey).Emails
	}
	return NewServiceWithSender(sender, cfg, log)
}

func NewServiceWithSender(sender Sender, cfg *config.Config, log *zap.Logger) Service {
	return &service{
		sender: sender,
		config: cfg,
		log:    log,
	}
}

func render(templateName string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+templateName)
	if err != nil {
		return "", fmt.Errorf("failed to parse email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, "layout", data); err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func (s *service) sendEmail(ctx context.Context, toEmail, subject, templateName string, data interface{}) error {
	html, err := render(templateName, data)
	if err != nil {
		return err
	}

	if s.sender == nil {
		s.log.Debug("email delivery disabled", zap.String("to", toEmail), zap.String("subject", subject))
		return nil
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Productivity Hub <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    html,
		Subject: subject,
	}

	_, err = s.sender.SendWithContext(ctx, params)
	return err
}

func (s *service) baseURL() string {
	return fmt.Sprintf("https://%s", s.config.Domain)
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, fullName string) error {
	data := struct {
		Title  string
		Domain string
		Name   string
		Link   string
	}{
		Title:  "Welcome to Productivity Hub",
		Domain: s.config.Domain,
		Name:   fullName,
		Link:   s.baseURL() + "/",
	}
	return s.sendEmail(ctx, toEmail, "Welcome to Productivity Hub!", "welcome.html", data)
}

type digestItem struct {
	Message string
	Link    string
}

func (s *service) SendReminderDigest(ctx context.Context, toEmail, fullName string, reminders []domain.Notification) error {
	if len(reminders) == 0 {
		return nil
	}

	items := make([]digestItem, 0, len(reminders))
	for _, n := range reminders {
		item := digestItem{Message: n.Message}
		if n.Link != nil {
			item.Link = *n.Link
		}
		items = append(items, item)
	}

	data := struct {
		Title   string
		Domain  string
		Name    string
		BaseURL string
		Items   []digestItem
	}{
		Title:   "You have unfinished work",
		Domain:  s.config.Domain,
		Name:    fullName,
		BaseURL: s.baseURL(),
		Items:   items,
	}

	subject := fmt.Sprintf("%d item(s) still need your attention", len(items))
	return s.sendEmail(ctx, toEmail, subject, "reminder_digest.html", data)
}
