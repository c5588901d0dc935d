package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/lead-intake/internal/testhelpers"
)

func newFanoutNotifier(deliver func(ctx context.Context, to, subject, htmlBody, textBody, replyTo string) error) *GmailNotifier {
	return &GmailNotifier{
		notificationEmail: "sales@ebottles.com",
		fromEmail:         "noreply@ebottles.com",
		logger:            testhelpers.NewTestLogger(),
		deliver:           deliver,
	}
}

func sampleNotification() Notification {
	return Notification{
		LeadID:       "LEAD-AB12CD34",
		Company:      "Acme Brands",
		ContactName:  "Jane Doe",
		Email:        "jane@acme.com",
		ProductTypes: []string{"child-resistant jars"},
		Summary:      "Needs 500k CR jars.",
		PriorityBand: "high",
		AdminEmails:  []string{"ops@ebottles.com", "owner@ebottles.com"},
	}
}

func TestSendNotification_AllRecipientsSucceed(t *testing.T) {
	var sent []string
	g := newFanoutNotifier(func(_ context.Context, to, _, _, _, replyTo string) error {
		sent = append(sent, to)
		assert.Equal(t, "jane@acme.com", replyTo)
		return nil
	})

	ok := g.SendNotification(context.Background(), sampleNotification())

	assert.True(t, ok)
	assert.Equal(t, []string{"sales@ebottles.com", "ops@ebottles.com", "owner@ebottles.com"}, sent)
}

func TestSendNotification_OneFailureFailsAllButAttemptsEveryRecipient(t *testing.T) {
	var sent []string
	g := newFanoutNotifier(func(_ context.Context, to, _, _, _, _ string) error {
		sent = append(sent, to)
		if to == "ops@ebottles.com" {
			return errors.New("gmail send: 550 mailbox unavailable")
		}
		return nil
	})

	ok := g.SendNotification(context.Background(), sampleNotification())

	assert.False(t, ok)
	// The failure does not short-circuit the remaining recipients.
	assert.Equal(t, []string{"sales@ebottles.com", "ops@ebottles.com", "owner@ebottles.com"}, sent)
}

func TestSendLeadConfirmation_RepliesToSales(t *testing.T) {
	var gotTo, gotReplyTo string
	g := newFanoutNotifier(func(_ context.Context, to, _, _, _, replyTo string) error {
		gotTo = to
		gotReplyTo = replyTo
		return nil
	})

	ok := g.SendLeadConfirmation(context.Background(), Confirmation{
		ToEmail:     "jane@acme.com",
		ContactName: "Jane Doe",
		Company:     "Acme Brands",
		Summary:     "Needs 500k CR jars.",
		LeadID:      "LEAD-AB12CD34",
		SalesEmail:  "sales@ebottles.com",
	})

	require.True(t, ok)
	assert.Equal(t, "jane@acme.com", gotTo)
	assert.Equal(t, "sales@ebottles.com", gotReplyTo)
}

func TestSendLeadConfirmation_DeliveryFailure(t *testing.T) {
	g := newFanoutNotifier(func(_ context.Context, _, _, _, _, _ string) error {
		return errors.New("gmail send: invalid_grant")
	})

	ok := g.SendLeadConfirmation(context.Background(), Confirmation{
		ToEmail:    "jane@acme.com",
		SalesEmail: "sales@ebottles.com",
	})

	assert.False(t, ok)
}
