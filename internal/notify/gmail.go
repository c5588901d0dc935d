package notify

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/jonesrussell/lead-intake/internal/logger"
)

// GmailNotifier sends email through the Gmail API using a service account
// with domain-wide delegation: the account impersonates fromEmail, which
// must be a real mailbox in the Workspace domain.
type GmailNotifier struct {
	svc               *gmail.Service
	notificationEmail string
	fromEmail         string
	logger            logger.Logger

	// deliver performs one raw send; it defaults to the Gmail API call.
	deliver func(ctx context.Context, to, subject, htmlBody, textBody, replyTo string) error
}

func NewGmailNotifier(ctx context.Context, credentialsJSON []byte, notificationEmail, fromEmail string, log logger.Logger) (*GmailNotifier, error) {
	conf, err := google.JWTConfigFromJSON(credentialsJSON, gmail.GmailSendScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account credentials: %w", err)
	}
	conf.Subject = fromEmail

	svc, err := gmail.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}

	g := &GmailNotifier{
		svc:               svc,
		notificationEmail: notificationEmail,
		fromEmail:         fromEmail,
		logger:            log,
	}
	g.deliver = g.apiSend
	return g, nil
}

// SendNotification delivers the lead notification to the primary sales
// address plus any admin addresses, deduplicated, with the submitter's email
// as reply-to. Every recipient is attempted even after a failure; the result
// is the AND of per-recipient results.
func (g *GmailNotifier) SendNotification(ctx context.Context, n Notification) bool {
	subject, htmlBody, textBody, err := renderNotification(n)
	if err != nil {
		g.logger.Error("Failed to render notification email",
			logger.String("lead_id", n.LeadID),
			logger.Error(err),
		)
		return false
	}

	ok := true
	for _, to := range recipients(g.notificationEmail, n.AdminEmails) {
		if err := g.deliver(ctx, to, subject, htmlBody, textBody, n.Email); err != nil {
			g.logger.Error("Failed to send notification email",
				logger.String("lead_id", n.LeadID),
				logger.String("to", to),
				logger.Error(err),
			)
			ok = false
		}
	}
	return ok
}

// SendLeadConfirmation delivers the confirmation to the submitter with the
// sales address as reply-to.
func (g *GmailNotifier) SendLeadConfirmation(ctx context.Context, c Confirmation) bool {
	subject, htmlBody, textBody, err := renderConfirmation(c)
	if err != nil {
		g.logger.Error("Failed to render confirmation email",
			logger.String("lead_id", c.LeadID),
			logger.Error(err),
		)
		return false
	}

	if err := g.deliver(ctx, c.ToEmail, subject, htmlBody, textBody, c.SalesEmail); err != nil {
		g.logger.Error("Failed to send confirmation email",
			logger.String("lead_id", c.LeadID),
			logger.String("to", c.ToEmail),
			logger.Error(err),
		)
		return false
	}
	return true
}

func (g *GmailNotifier) apiSend(ctx context.Context, to, subject, htmlBody, textBody, replyTo string) error {
	raw, err := buildMessage(g.fromEmail, to, subject, replyTo, textBody, htmlBody)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	msg := &gmail.Message{Raw: base64.URLEncoding.EncodeToString(raw)}
	if _, err := g.svc.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		// invalid_grant here usually means domain-wide delegation is not
		// configured for the service account, or fromEmail is not a real
		// mailbox in the domain.
		return fmt.Errorf("gmail send: %w", err)
	}
	return nil
}

// recipients returns the primary address followed by admin addresses,
// dropping empties and duplicates while preserving order.
func recipients(primary string, admins []string) []string {
	out := make([]string, 0, 1+len(admins))
	seen := make(map[string]bool)

	if primary != "" {
		out = append(out, primary)
		seen[primary] = true
	}
	for _, a := range admins {
		if a == "" || seen[a] {
			continue
		}
		out = append(out, a)
		seen[a] = true
	}
	return out
}
