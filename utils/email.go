package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"time"
)

// Email templates. Kept inline; there are only two of them.
var welcomeTemplate = template.Must(template.New("welcome-free-trial").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Welcome to SocietyPro!</h1>
  <p>Hello {{.Name}},</p>
  <p>Thank you for starting your 14-day free trial with SocietyPro!</p>
  <p><strong>Your trial ends on:</strong> {{.TrialEndsAt.Format "02 Jan 2006"}}</p>
  <p>Please verify your email address to get started:</p>
  <p><a href="{{.VerificationLink}}">Verify Email Address</a></p>
  <p>Need help? Reply to this email or contact our support team.</p>
</body>
</html>`))

var resendTemplate = template.Must(template.New("resend-verification").Parse(`
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h1>Verify Your Email</h1>
  <p>Hello {{.Name}},</p>
  <p>We received a request to verify your email address for your SocietyPro account.</p>
  <p><a href="{{.VerificationLink}}">Verify Email Address</a></p>
  <p>If you didn't request this verification, you can safely ignore this email.</p>
</body>
</html>`))

// EmailContext feeds the trial onboarding templates.
type EmailContext struct {
	Name             string
	VerificationLink string
	TrialEndsAt      time.Time
}

// SendWelcomeEmail sends the free trial onboarding mail with the
// verification link.
func SendWelcomeEmail(to string, ctx EmailContext) error {
	return send(to, "Welcome to SocietyPro - Verify Your Email", welcomeTemplate, ctx)
}

// SendVerificationEmail re-sends the verification link.
func SendVerificationEmail(to string, ctx EmailContext) error {
	return send(to, "Verify Your Email - SocietyPro", resendTemplate, ctx)
}

func send(to, subject string, tmpl *template.Template, ctx EmailContext) error {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")
	if host == "" {
		return fmt.Errorf("SMTP_HOST is not configured")
	}
	if port == "" {
		port = "587"
	}
	if from == "" {
		from = "noreply@societypro.com"
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, ctx); err != nil {
		return err
	}

	msg := bytes.Buffer{}
	fmt.Fprintf(&msg, "From: %s\r\n", from)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	msg.Write(body.Bytes())

	auth := smtp.PlainAuth("", user, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg.Bytes())
}
