package email

import (
	"fmt"
	"net/smtp"

	"github.com/Dan9191/mortgage-service/internal/config"
	"github.com/Dan9191/mortgage-service/internal/models"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
	send   func(e *email.Email) error
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	s := &Sender{
		cfg:    cfg,
		logger: logger,
	}
	s.send = s.sendSMTP
	return s
}

// Enabled reports whether an SMTP host is configured
func (s *Sender) Enabled() bool {
	return s.cfg.SMTPHost != ""
}

// SendLeadNotification emails a newly captured lead to the agent inbox
func (s *Sender) SendLeadNotification(lead *models.Lead) error {
	if !s.Enabled() {
		s.logger.Debugf("SMTP not configured, skipping notification for lead %d", lead.ID)
		return nil
	}

	e := s.buildLeadEmail(lead)
	if err := s.send(e); err != nil {
		s.logger.Errorf("Failed to send lead notification to %s: %v", s.cfg.AgentEmail, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", s.cfg.AgentEmail, e.Subject)
	return nil
}

func (s *Sender) buildLeadEmail(lead *models.Lead) *email.Email {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{s.cfg.AgentEmail}
	e.ReplyTo = []string{lead.Email}
	e.Subject = fmt.Sprintf("New lead from %s: %s", lead.Source, lead.Name)

	body := fmt.Sprintf(
		"A new lead was captured on %s.\n\n"+
			"Name:   %s\n"+
			"Email:  %s\n"+
			"Phone:  %s\n"+
			"Source: %s\n",
		lead.CreatedAt.Format("2006-01-02 15:04:05"), lead.Name, lead.Email, lead.Phone, lead.Source,
	)
	if lead.Notes != "" {
		body += "\nNotes:\n" + lead.Notes + "\n"
	}
	e.Text = []byte(body)
	return e
}

func (s *Sender) sendSMTP(e *email.Email) error {
	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	var auth smtp.Auth
	if s.cfg.SMTPUsername != "" {
		auth = smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	}
	return e.Send(addr, auth)
}
