package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"net/url"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
	FrontendURL  string
	AppName      string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// SendPasswordResetEmail sends a password reset email
func (s *EmailService) SendPasswordResetEmail(toEmail, token string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderActionEmail(actionEmailData{
		Email:      toEmail,
		ActionURL:  resetURL,
		AppName:    s.appName(),
		Title:      "Reset Your Password",
		Intro:      "We received a request to reset the password for the account associated with",
		ButtonText: "Reset Password",
		Expiry:     "1 hour",
		Ignore:     "If you didn't request this password reset, you can safely ignore this email. Your password will remain unchanged.",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Reset Your Password - %s", s.appName())
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

// SendVerificationEmail sends an email address verification link
func (s *EmailService) SendVerificationEmail(toEmail, token string) error {
	verifyURL := fmt.Sprintf("%s/verify-email?token=%s&email=%s",
		s.config.FrontendURL,
		url.QueryEscape(token),
		url.QueryEscape(toEmail),
	)

	htmlContent, err := s.renderActionEmail(actionEmailData{
		Email:      toEmail,
		ActionURL:  verifyURL,
		AppName:    s.appName(),
		Title:      "Verify Your Email",
		Intro:      "Welcome! Please confirm that this terminal account belongs to",
		ButtonText: "Verify Email",
		Expiry:     "24 hours",
		Ignore:     "If you did not create this account, you can safely ignore this email.",
	})
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Verify Your Email - %s", s.appName())
	return s.sendEmail(toEmail, s.buildHTMLEmail(toEmail, subject, htmlContent))
}

func (s *EmailService) appName() string {
	if s.config.AppName != "" {
		return s.config.AppName
	}
	return "Revenue Terminal"
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

type actionEmailData struct {
	Email      string
	ActionURL  string
	AppName    string
	Title      string
	Intro      string
	ButtonText string
	Expiry     string
	Ignore     string
}

// renderActionEmail renders the shared call-to-action email template
func (s *EmailService) renderActionEmail(data actionEmailData) (string, error) {
	tmpl, err := template.New("action_email").Parse(actionEmailTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// actionEmailTemplate is the HTML template shared by reset and verification emails
const actionEmailTemplate = `
<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f7fa;">
    <table role="presentation" style="width: 100%; border-collapse: collapse;">
        <tr>
            <td style="padding: 40px 0;">
                <table role="presentation" style="max-width: 600px; margin: 0 auto; background-color: #ffffff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0, 0, 0, 0.1);">
                    <!-- Header -->
                    <tr>
                        <td style="background: linear-gradient(135deg, #1c3d5a 0%, #2a9d8f 100%); padding: 40px 30px; text-align: center;">
                            <h1 style="color: #ffffff; margin: 0; font-size: 28px; font-weight: 600;">{{.AppName}}</h1>
                        </td>
                    </tr>

                    <!-- Content -->
                    <tr>
                        <td style="padding: 40px 30px;">
                            <h2 style="color: #1a1a2e; margin: 0 0 20px 0; font-size: 24px; font-weight: 600;">{{.Title}}</h2>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                Hello,
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 20px 0;">
                                {{.Intro}} <strong>{{.Email}}</strong>.
                            </p>

                            <p style="color: #4a5568; font-size: 16px; line-height: 1.6; margin: 0 0 30px 0;">
                                Click the button below to continue. This link will expire in <strong>{{.Expiry}}</strong>.
                            </p>

                            <!-- CTA Button -->
                            <table role="presentation" style="margin: 0 auto 30px auto;">
                                <tr>
                                    <td style="background: linear-gradient(135deg, #1c3d5a 0%, #2a9d8f 100%); border-radius: 8px;">
                                        <a href="{{.ActionURL}}" style="display: inline-block; padding: 16px 32px; color: #ffffff; text-decoration: none; font-size: 16px; font-weight: 600;">
                                            {{.ButtonText}}
                                        </a>
                                    </td>
                                </tr>
                            </table>

                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0 0 20px 0;">
                                {{.Ignore}}
                            </p>

                            <p style="color: #718096; font-size: 14px; line-height: 1.6; margin: 0;">
                                If the button above doesn't work, copy and paste this link into your browser:
                            </p>
                            <p style="color: #2a9d8f; font-size: 14px; line-height: 1.6; margin: 10px 0 0 0; word-break: break-all;">
                                <a href="{{.ActionURL}}" style="color: #2a9d8f;">{{.ActionURL}}</a>
                            </p>
                        </td>
                    </tr>

                    <!-- Footer -->
                    <tr>
                        <td style="background-color: #f8fafc; padding: 30px; text-align: center; border-top: 1px solid #e2e8f0;">
                            <p style="color: #a0aec0; font-size: 14px; margin: 0 0 10px 0;">
                                This email was sent by {{.AppName}}
                            </p>
                            <p style="color: #cbd5e0; font-size: 12px; margin: 0;">
                                © 2026 {{.AppName}}. All rights reserved.
                            </p>
                        </td>
                    </tr>
                </table>
            </td>
        </tr>
    </table>
</body>
</html>
`
