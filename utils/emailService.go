package utils

import (
	"fmt"
	"lms/config"
	"net/smtp"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	if config.AppConfig.MailApiURL != "" {
		return sendViaMailApi(to, subject, htmlBody)
	}
	return sendViaSmtp(to, subject, htmlBody)
}

func sendViaSmtp(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Online Academy <%s>\r\n", from)
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

// sendViaMailApi posts the message to a transactional mail HTTP API
func sendViaMailApi(to []string, subject string, htmlBody string) error {
	client := resty.New()

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Bearer "+config.AppConfig.MailApiKey).
		SetBody(map[string]interface{}{
			"from":    config.AppConfig.EmailSender,
			"to":      to,
			"subject": subject,
			"html":    htmlBody,
		}).
		Post(config.AppConfig.MailApiURL)

	if err != nil {
		fmt.Println("Error sending email via mail API:", err)
		return err
	}
	if resp.StatusCode() >= 300 {
		return fmt.Errorf("mail API returned status %d", resp.StatusCode())
	}
	return nil
}

// HTML wrapper shared by all learner emails
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #3FA796; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3FA796; margin: 20px 0; }
			.decision-badge { display: inline-block; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; color: white; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ONLINE ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Online Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---
// Every trigger respects the global notification toggle and sends in the
// background; a failed send only logs.

// 1. Project review decision
func SendProjectReviewedEmail(email, name, lessonTitle, decision, feedback string) {
	if !config.AppConfig.NotificationsEnabled {
		return
	}

	decisionColor := "#DC3545" // rejected
	if decision == "approved" {
		decisionColor = "#28A745"
	}

	subject := fmt.Sprintf("Your project was %s: %s", decision, lessonTitle)
	feedbackBlock := ""
	if feedback != "" {
		feedbackBlock = fmt.Sprintf(`
		<div style="margin: 20px 0; padding: 15px; border: 1px solid #E0E0E0; border-radius: 5px;">
			<em>"%s"</em>
		</div>`, feedback)
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your project submission for <strong>%s</strong> has been reviewed.</p>
		<div style="margin-bottom: 10px;">
			<span class="decision-badge" style="background-color: %s;">%s</span>
		</div>
		%s
		<p>Login to your dashboard to view full details.</p>
	`, name, lessonTitle, decisionColor, strings.ToUpper(decision), feedbackBlock)

	go SendEmail([]string{email}, subject, getEmailTemplate("Project Reviewed", body))
}

// 2. Quiz graded after review
func SendQuizGradedEmail(email, name, lessonTitle string, score, total float64, feedback string) {
	if !config.AppConfig.NotificationsEnabled {
		return
	}

	subject := "Quiz graded: " + lessonTitle
	feedbackBlock := ""
	if feedback != "" {
		feedbackBlock = fmt.Sprintf(`
		<div style="margin: 20px 0; padding: 15px; background: #E8F0FE; border-radius: 4px;">
			<em>"%s"</em>
		</div>`, feedback)
	}

	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your quiz <strong>%s</strong> has been reviewed and graded.</p>
		<div class="info-box">
			<strong>Score:</strong> %.1f / %.1f
		</div>
		%s
		<p>Your course grade has been updated on your dashboard.</p>
	`, name, lessonTitle, score, total, feedbackBlock)

	go SendEmail([]string{email}, subject, getEmailTemplate("Quiz Graded", body))
}

// 3. Certificate issued
func SendCertificateIssuedEmail(email, name, courseTitle, certificateNumber string) {
	if !config.AppConfig.NotificationsEnabled {
		return
	}

	subject := "Certificate issued: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have passed <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Certificate number:</strong> %s
		</div>
		<a href="#" class="btn">View Certificate</a>
	`, name, courseTitle, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Congratulations!", body))
}

// 4. Pending review digest (to reviewers)
func SendPendingReviewDigestEmail(email, name string, pendingProjects, pendingQuizzes, newSinceYesterday int) {
	if !config.AppConfig.NotificationsEnabled {
		return
	}

	subject := fmt.Sprintf("Review queue: %d submissions waiting", pendingProjects+pendingQuizzes)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Here is today's review queue.</p>
		<div class="info-box">
			<ul style="list-style: none; padding: 0; margin: 0;">
				<li style="margin-bottom: 8px;"><strong>Project submissions:</strong> %d</li>
				<li style="margin-bottom: 8px;"><strong>Quiz submissions:</strong> %d</li>
				<li><strong>New since yesterday:</strong> %d</li>
			</ul>
		</div>
		<p>Learners cannot complete their courses until these are reviewed.</p>
	`, name, pendingProjects, pendingQuizzes, newSinceYesterday)

	go SendEmail([]string{email}, subject, getEmailTemplate("Pending Reviews", body))
}
