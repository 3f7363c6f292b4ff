package services

import (
	"bytes"
	"fmt"
	"log"
	"net/smtp"
	"text/template"
	"time"

	"gorm.io/gorm"

	"talenthub-backend/config"
	"talenthub-backend/models"
)

// NotificationService renders stored email templates and delivers them over
// SMTP, logging every attempt.
type NotificationService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewNotificationService(db *gorm.DB, cfg *config.Config) *NotificationService {
	return &NotificationService{db: db, cfg: cfg}
}

// Send renders the named template with data and mails it to recipient in
// the background. Missing or disabled templates are skipped silently.
func (s *NotificationService) Send(templateName, recipient string, data interface{}) {
	if recipient == "" {
		return
	}

	var tpl models.EmailTemplate
	if err := s.db.Where("name = ? AND enabled = ?", templateName, true).First(&tpl).Error; err != nil {
		log.Printf("notification template %s unavailable: %v", templateName, err)
		return
	}

	go s.deliver(&tpl, recipient, data)
}

func (s *NotificationService) deliver(tpl *models.EmailTemplate, recipient string, data interface{}) {
	subject, serr := renderTemplate(tpl.Name+"_subject", tpl.Subject, data)
	body, berr := renderTemplate(tpl.Name+"_body", tpl.Body, data)

	var err error
	switch {
	case serr != nil:
		err = serr
	case berr != nil:
		err = berr
	default:
		err = s.sendMail(recipient, subject, body)
	}

	entry := models.EmailLog{
		Template:  tpl.Name,
		Recipient: recipient,
		Subject:   subject,
		SentAt:    time.Now(),
	}
	if err != nil {
		entry.Status = "failed"
		entry.Error = err.Error()
		log.Printf("failed to send %s to %s: %v", tpl.Name, recipient, err)
	} else {
		entry.Status = "success"
	}

	if dbErr := s.db.Create(&entry).Error; dbErr != nil {
		log.Printf("failed to record email log: %v", dbErr)
	}
}

func renderTemplate(name, text string, data interface{}) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	return buf.String(), nil
}

func (s *NotificationService) sendMail(recipient, subject, body string) error {
	if s.cfg.SMTPHost == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}

	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.cfg.SMTPFrom, recipient, subject, body))

	addr := s.cfg.SMTPHost + ":" + s.cfg.SMTPPort
	var auth smtp.Auth
	if s.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPass, s.cfg.SMTPHost)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.SMTPFrom, []string{recipient}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

// GetLogs lists delivery attempts, newest first.
func (s *NotificationService) GetLogs(offset, limit int) ([]models.EmailLog, int64, error) {
	var logs []models.EmailLog
	var total int64

	query := s.db.Model(&models.EmailLog{})
	query.Count(&total)

	err := query.Offset(offset).Limit(limit).Order("sent_at DESC").Find(&logs).Error
	return logs, total, err
}
