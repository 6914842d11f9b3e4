package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"seva/config"
	"seva/models"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping email:", subject)
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Seva Portal <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	return nil
}

// SendDocumentStatusEmail notifies the user when an uploaded document
// did not verify, with the reason and the remediation path.
func SendDocumentStatusEmail(to, docName string, status models.DocumentStatus, reason string) error {
	var advice string
	switch status {
	case models.DocumentExtractionFailed:
		advice = "We could not read the uploaded file. Please upload a clearer copy."
	case models.DocumentMismatch:
		advice = "The document details did not match your profile. You can re-upload or correct the details manually."
	default:
		return nil
	}

	body := getEmailTemplate("Document Verification Update", fmt.Sprintf(
		`<h2>Your document "%s" needs attention</h2>
		<div class="info-box">%s</div>
		<p>%s</p>`,
		docName, reason, advice,
	))

	return SendEmail([]string{to}, fmt.Sprintf("Document %q: %s", docName, status), body)
}

// HTML wrapper shared by all outgoing mails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #00324D; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #00324D; line-height: 1.6; }
			.content h2 { color: #00324D; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #6db5d7; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>%s</h1>
			</div>
			<div class="content">
				%s
			</div>
			<div class="footer">
				This is an automated message from the Seva citizen services portal.
			</div>
		</div>
	</body>
	</html>`, title, bodyContent)
}
