package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// EmailService defines the interface for email operations
type EmailService interface {
	SendApprovalRequest(toEmail, resourceType, title string) error
	SendApprovalOutcome(toEmail, resourceType, title string, approved bool) error
	SendRegistrationNotice(toEmail, eventTitle string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // Base URL for the application
}

// EmailServiceImpl implements EmailService
type EmailServiceImpl struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(config SMTPConfig, logger zerolog.Logger) EmailService {
	return &EmailServiceImpl{
		config: config,
		logger: logger,
	}
}

// configured reports whether SMTP credentials are present. Without them the
// mailer logs instead of sending, so development setups work offline.
func (s *EmailServiceImpl) configured() bool {
	return s.config.Username != "" && s.config.Password != ""
}

// SendApprovalRequest notifies a staff member that a resource awaits review.
func (s *EmailServiceImpl) SendApprovalRequest(toEmail, resourceType, title string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resourceType", resourceType).
			Str("title", title).
			Msg("SMTP credentials not configured - approval request email not sent")
		return nil
	}
	subject := fmt.Sprintf("CampusHub: %s pending approval", resourceType)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Approval needed</h2>
				<p>A new %s titled <strong>%s</strong> is waiting for review.</p>
				<p>You can approve or reject it from the portal:</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Open CampusHub</a>
				</div>
				<p>Best regards,<br>The CampusHub Team</p>
			</div>
		</body>
		</html>
	`, resourceType, title, s.config.BaseURL)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendApprovalOutcome notifies the resource owner of the review result.
func (s *EmailServiceImpl) SendApprovalOutcome(toEmail, resourceType, title string, approved bool) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("resourceType", resourceType).
			Bool("approved", approved).
			Msg("SMTP credentials not configured - outcome email not sent")
		return nil
	}

	outcome := "approved"
	detail := "It is now visible to the campus community."
	if !approved {
		outcome = "rejected"
		detail = "It has been removed; you may submit a revised version."
	}
	subject := fmt.Sprintf("CampusHub: your %s was %s", resourceType, outcome)

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Your %s was %s</h2>
				<p><strong>%s</strong></p>
				<p>%s</p>
				<p>Best regards,<br>The CampusHub Team</p>
			</div>
		</body>
		</html>
	`, resourceType, outcome, title, detail)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// SendRegistrationNotice notifies an event organizer of a new registration.
func (s *EmailServiceImpl) SendRegistrationNotice(toEmail, eventTitle string) error {
	if !s.configured() {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("eventTitle", eventTitle).
			Msg("SMTP credentials not configured - registration notice not sent")
		return nil
	}
	subject := "CampusHub: new registration for your event"

	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New registration</h2>
				<p>Someone registered for your event <strong>%s</strong>.</p>
				<p>Best regards,<br>The CampusHub Team</p>
			</div>
		</body>
		</html>
	`, eventTitle)

	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail sends an HTML email
func (s *EmailServiceImpl) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	// Set up authentication information
	auth := smtp.PlainAuth(
		"",
		s.config.Username,
		s.config.Password,
		s.config.Host,
	)

	// Set up email headers
	headers := make(map[string]string)
	headers["From"] = fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	headers["To"] = toEmail
	headers["Subject"] = subject
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=UTF-8"

	// Construct message
	message := ""
	for key, value := range headers {
		message += fmt.Sprintf("%s: %s\r\n", key, value)
	}
	message += "\r\n" + htmlBody

	serverAddress := s.config.Host + ":" + strconv.Itoa(s.config.Port)

	// Use TLS if configured
	if s.config.UseTLS {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         s.config.Host,
		}

		// Connect to the SMTP server with TLS
		conn, err := tls.Dial("tcp", serverAddress, tlsConfig)
		if err != nil {
			s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to connect to SMTP server")
			return fmt.Errorf("failed to connect to SMTP server: %w", err)
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.config.Host)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to create SMTP client")
			return fmt.Errorf("failed to create SMTP client: %w", err)
		}
		defer client.Quit()

		// Authenticate
		if err = client.Auth(auth); err != nil {
			s.logger.Error().Err(err).Msg("SMTP authentication failed")
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}

		// Set the sender and recipient
		if err = client.Mail(s.config.FromEmail); err != nil {
			return fmt.Errorf("failed to set sender: %w", err)
		}
		if err = client.Rcpt(toEmail); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}

		// Send the email body
		w, err := client.Data()
		if err != nil {
			return fmt.Errorf("failed to get data writer: %w", err)
		}
		_, err = w.Write([]byte(message))
		if err != nil {
			return fmt.Errorf("failed to write email message: %w", err)
		}
		err = w.Close()
		if err != nil {
			return fmt.Errorf("failed to close data writer: %w", err)
		}

		return nil
	}

	// Simple SMTP without TLS
	err := smtp.SendMail(
		serverAddress,
		auth,
		s.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		s.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
