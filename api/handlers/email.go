package handlers

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	templates "github.com/shopsync/shopsync-api/templates/html"
)

// sendCheckInEmail emails the customer their tracking link after check-in.
// Email is best-effort on top of the SMS: a missing sendgrid key or a
// carrier rejection is logged and swallowed.
func (v Vehicle) sendCheckInEmail(email, customerName, portalURL string) {
	if v.Config.SendgridAPIKey == "" {
		zap.S().Debug("sendgrid not configured, skipping check-in email")
		return
	}

	from := mail.NewEmail("Summit Trucks", "no-reply@summittrucks.com")
	subject := "Your vehicle has been checked in"
	to := mail.NewEmail(customerName, email)
	plainTextContent := fmt.Sprintf("Hi %s, your vehicle has been checked in at Summit Trucks. Track its progress here: %s", customerName, portalURL)
	htmlContent := templates.RenderGenericEmail(subject, plainTextContent)
	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(v.Config.SendgridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		zap.S().Warnw("failed to send check-in email", "to", email, "error", err)
		return
	}
	if response.StatusCode >= 400 {
		zap.S().Warnw("sendgrid rejected check-in email", "to", email, "status", response.StatusCode)
		return
	}
	zap.S().Debugw("check-in email sent", "to", email)
}
