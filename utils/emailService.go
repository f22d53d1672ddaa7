package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Lilia Courses <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
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
			.header { background-color: #1C1B33; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1C1B33; line-height: 1.6; }
			.content h2 { color: #1C1B33; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #d7b56d; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #d7b56d; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>LILIA COURSES</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Lilia Courses. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Lilia Courses"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Lilia Courses</strong>! Your account has been successfully created.</p>
		<p>The first lesson of every course is free. Log in and start learning.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Course invite after a paid order. Synchronous: the invite sweep needs
// the error to decide whether to mark the order.
func SendOrderInviteEmail(email, name string) error {
	subject := "Your course access is ready"
	loginURL := config.AppConfig.SiteURL + "/login"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Thank you for your purchase! Your payment has been confirmed and your course access is ready.</p>
		<div class="info-box">
			Sign in with this email address to start the course.
		</div>
		<a class="btn" href="%s">Open the course</a>
	`, name, loginURL)

	return SendEmail([]string{email}, subject, getEmailTemplate("Payment Confirmed", body))
}

// 3. Admin granted access directly
func SendEntitlementGrantedEmail(email, name, courseTitle string) {
	subject := "Course access granted: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have been given access to <strong>%s</strong>.</p>
		<p>Log in to start the course.</p>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Access Granted", body))
}
