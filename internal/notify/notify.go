// Package notify builds and delivers the transactional emails for a lead:
// the sales notification and the submitter confirmation. Both operations are
// best-effort; failures are logged by the caller and never abort intake.
package notify

import "context"

// Notification carries the fields of the sales/admin notification email.
type Notification struct {
	LeadID       string
	Company      string
	ContactName  string
	Email        string
	ProductTypes []string
	Summary      string
	PriorityBand string
	AdminEmails  []string
}

// Confirmation carries the fields of the submitter confirmation email.
type Confirmation struct {
	ToEmail     string
	ContactName string
	Company     string
	Summary     string
	LeadID      string
	SalesEmail  string
}

// Notifier delivers lead emails. Both methods report overall success;
// SendNotification succeeds only if delivery succeeded for every resolved
// recipient.
type Notifier interface {
	SendNotification(ctx context.Context, n Notification) bool
	SendLeadConfirmation(ctx context.Context, c Confirmation) bool
}
