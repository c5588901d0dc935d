package notify

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

type notificationData struct {
	LeadID        string
	Company       string
	ContactName   string
	Email         string
	Products      string
	Summary       string
	Priority      string
	PriorityEmoji string
}

type confirmationData struct {
	GreetingName string
	Summary      string
	LeadID       string
	SalesEmail   string
}

var priorityEmoji = map[string]string{
	"high":   "\U0001F534",
	"medium": "\U0001F7E1",
	"low":    "\U0001F7E2",
}

var notificationHTML = htmltemplate.Must(htmltemplate.New("notification").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #0d7377; margin-bottom: 20px;">{{.PriorityEmoji}} New Lead: {{.Company}}</h2>
    <div style="background: #f0f7f7; padding: 15px; border-radius: 8px; margin-bottom: 20px; border-left: 4px solid #0d7377;">
      <h3 style="margin-top: 0; color: #1a4f5c;">AI Summary</h3>
      <p style="margin-bottom: 0;">{{.Summary}}</p>
    </div>
    <table style="width: 100%; border-collapse: collapse; margin-bottom: 20px;">
      <tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Lead ID:</strong></td><td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.LeadID}}</td></tr>
      <tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Contact:</strong></td><td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.ContactName}}</td></tr>
      <tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Email:</strong></td><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><a href="mailto:{{.Email}}" style="color: #0d7377;">{{.Email}}</a></td></tr>
      <tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Company:</strong></td><td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.Company}}</td></tr>
      <tr><td style="padding: 8px 0; border-bottom: 1px solid #eee;"><strong>Products:</strong></td><td style="padding: 8px 0; border-bottom: 1px solid #eee;">{{.Products}}</td></tr>
      <tr><td style="padding: 8px 0;"><strong>Priority:</strong></td><td style="padding: 8px 0;">{{.Priority}}</td></tr>
    </table>
    <p style="color: #666; font-size: 14px;">This lead was captured via the AI Intake Widget.</p>
  </div>
</body>
</html>`))

var notificationText = texttemplate.Must(texttemplate.New("notification").Parse(`New Lead: {{.Company}}
Priority: {{.Priority}} {{.PriorityEmoji}}

AI SUMMARY
{{.Summary}}

DETAILS
- Lead ID: {{.LeadID}}
- Contact: {{.ContactName}}
- Email: {{.Email}}
- Company: {{.Company}}
- Products: {{.Products}}`))

var confirmationHTML = htmltemplate.Must(htmltemplate.New("confirmation").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #0d7377; margin-bottom: 10px;">Thanks, {{.GreetingName}} - we've got your request.</h2>
    <p style="margin-top: 0; color: #444;">Our team is reviewing your packaging needs and will follow up within one business day.</p>
    <div style="background: #f0f7f7; padding: 15px; border-radius: 8px; margin: 18px 0; border-left: 4px solid #0d7377;">
      <h3 style="margin-top: 0; color: #1a4f5c;">What we understood</h3>
      <p style="margin-bottom: 0;">{{.Summary}}</p>
    </div>
    <p style="color: #666; font-size: 14px;">
      Reference ID: <strong>{{.LeadID}}</strong><br/>
      If you have anything to add, just reply to this email or contact us at
      <a href="mailto:{{.SalesEmail}}" style="color: #0d7377;">{{.SalesEmail}}</a>.
    </p>
  </div>
</body>
</html>`))

var confirmationText = texttemplate.Must(texttemplate.New("confirmation").Parse(`Thanks, {{.GreetingName}} - we've got your request.

Our team is reviewing your packaging needs and will follow up within one business day.

WHAT WE UNDERSTOOD
{{.Summary}}

Reference ID: {{.LeadID}}
Reply to this email or contact {{.SalesEmail}}.`))

func renderNotification(n Notification) (subject, htmlBody, textBody string, err error) {
	products := strings.Join(n.ProductTypes, ", ")
	if products == "" {
		products = "General Inquiry"
	}

	emoji, ok := priorityEmoji[n.PriorityBand]
	if !ok {
		emoji = "⚪"
	}

	data := notificationData{
		LeadID:        n.LeadID,
		Company:       n.Company,
		ContactName:   n.ContactName,
		Email:         n.Email,
		Products:      products,
		Summary:       n.Summary,
		Priority:      strings.ToUpper(n.PriorityBand),
		PriorityEmoji: emoji,
	}

	subject = fmt.Sprintf("[New AI Lead] %s - %s", n.Company, products)
	htmlBody, textBody, err = renderBodies(notificationHTML, notificationText, data)
	return subject, htmlBody, textBody, err
}

func renderConfirmation(c Confirmation) (subject, htmlBody, textBody string, err error) {
	data := confirmationData{
		GreetingName: firstName(c.ContactName),
		Summary:      c.Summary,
		LeadID:       c.LeadID,
		SalesEmail:   c.SalesEmail,
	}

	subject = fmt.Sprintf("We received your packaging request - %s", c.Company)
	htmlBody, textBody, err = renderBodies(confirmationHTML, confirmationText, data)
	return subject, htmlBody, textBody, err
}

func renderBodies(htmlTmpl *htmltemplate.Template, textTmpl *texttemplate.Template, data any) (string, string, error) {
	var htmlBuf bytes.Buffer
	if err := htmlTmpl.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("render html body: %w", err)
	}

	var textBuf bytes.Buffer
	if err := textTmpl.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("render text body: %w", err)
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// firstName returns the first word of a contact name for the greeting,
// or "there" when the name is blank.
func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "there"
	}
	return fields[0]
}
