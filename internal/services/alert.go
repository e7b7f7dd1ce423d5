package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/smtp"
	"strings"

	"go.uber.org/zap"
)

type SlackWebhookRequest struct {
	Username  string `json:"username"`
	IconEmoji string `json:"icon_emoji,omitempty"`
	Text      string `json:"text"`
}

const slackUsername = "donelist"

// Notifier fans unhandled failures out to Slack and email. Delivery is
// best effort: a failed alert is logged and dropped, never propagated.
type Notifier struct {
	SlackWebhookURL string
	EmailAddress    string
	SMTPAddr        string
	SMTPFrom        string

	logger *zap.Logger
}

func NewNotifier(slackWebhookURL, emailAddress, smtpAddr, smtpFrom string, logger *zap.Logger) *Notifier {
	return &Notifier{
		SlackWebhookURL: slackWebhookURL,
		EmailAddress:    emailAddress,
		SMTPAddr:        smtpAddr,
		SMTPFrom:        smtpFrom,
		logger:          logger,
	}
}

func (n *Notifier) NotifyError(message string) {
	if n.SlackWebhookURL != "" {
		if err := n.sendSlack(message); err != nil {
			n.logger.Error("failed to send Slack alert", zap.Error(err))
		}
	}

	if n.EmailAddress != "" && n.SMTPAddr != "" {
		if err := n.sendEmail(message); err != nil {
			n.logger.Error("failed to send email alert", zap.Error(err))
		}
	}
}

func (n *Notifier) sendSlack(message string) error {
	payload := SlackWebhookRequest{
		Username:  slackUsername,
		IconEmoji: ":rotating_light:",
		Text:      message,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal Slack payload: %w", err)
	}

	resp, err := http.Post(n.SlackWebhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send Slack webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("Slack webhook returned status %d", resp.StatusCode)
	}

	return nil
}

func (n *Notifier) sendEmail(message string) error {
	msg := strings.Join([]string{
		"From: " + n.SMTPFrom,
		"To: " + n.EmailAddress,
		"Subject: donelist error alert",
		"",
		message,
	}, "\r\n")

	return smtp.SendMail(n.SMTPAddr, nil, n.SMTPFrom, []string{n.EmailAddress}, []byte(msg))
}
