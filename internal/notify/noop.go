package notify

import (
	"context"
	"strings"

	"github.com/jonesrussell/lead-intake/internal/logger"
)

// NoopNotifier substitutes for Gmail when email credentials are absent. It
// logs what would have been sent and reports success.
type NoopNotifier struct {
	logger logger.Logger
}

func NewNoopNotifier(log logger.Logger) *NoopNotifier {
	return &NoopNotifier{logger: log}
}

func (n *NoopNotifier) SendNotification(_ context.Context, notification Notification) bool {
	n.logger.Info("Email disabled, skipping sales notification",
		logger.String("lead_id", notification.LeadID),
		logger.String("company", notification.Company),
		logger.String("priority_band", notification.PriorityBand),
		logger.String("products", strings.Join(notification.ProductTypes, ", ")),
		logger.Strings("admin_emails", notification.AdminEmails),
	)
	return true
}

func (n *NoopNotifier) SendLeadConfirmation(_ context.Context, confirmation Confirmation) bool {
	n.logger.Info("Email disabled, skipping lead confirmation",
		logger.String("lead_id", confirmation.LeadID),
		logger.String("to", confirmation.ToEmail),
	)
	return true
}
