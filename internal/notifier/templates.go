package notifier

import (
	"fmt"

	"github.com/agrilink/agrilink/internal/model"
)

// Template is one status-keyed notification mail. Body paragraphs end
// with the public tracking page URL, injected at render time.
type Template struct {
	Subject string
	Body    string
}

var statusTemplates = map[string]Template{
	string(model.StatusFirstMileReceiveScan): {
		Subject: "Your Package Has Been Received at First Mile",
		Body: "<p>Your delivery order has been received and is being processed at the origin facility.</p>\n" +
			"<p>We’ll update you with the next steps soon. %s</p>",
	},
	string(model.StatusReceivedInFacility): {
		Subject: "Package Arrived at Sorting Facility",
		Body: "<p>Your package has successfully reached our sorting facility.</p>\n" +
			"<p>We are preparing it for the next phase of delivery. %s</p>",
	},
	string(model.StatusOutForDelivery): {
		Subject: "Out for Delivery - Your Package is on the Way!",
		Body: "<p>Exciting news! Your package is out for delivery and will arrive soon.</p>\n" +
			"<p>Please keep your contact number available for the delivery personnel. %s</p>",
	},
	string(model.StatusDelivered): {
		Subject: "Delivery Complete - Thank You!",
		Body: "<p>Your package has been successfully delivered.</p>\n" +
			"<p>Thank you for choosing our service. We hope to serve you again soon! %s</p>",
	},
	model.NotificationStatusDefault: {
		Subject: "Your Delivery Order Has Been Submitted",
		Body: "<p>Your delivery order has been successfully created.</p>\n" +
			"<p>You can track the status of your package using your Order ID. %s</p>",
	},
}

// TemplateFor selects the template for a status. Lookup is exact; any
// unknown or empty status falls back to the default order-created mail.
func TemplateFor(status string) Template {
	if t, ok := statusTemplates[status]; ok {
		return t
	}
	return statusTemplates[model.NotificationStatusDefault]
}

// RenderHTML builds the full mail body around the selected template.
func RenderHTML(t Template, orderID, trackingURL string) string {
	return fmt.Sprintf("<h3>Delivery Order #%s</h3>\n%s\n<br/>\n<p>Best regards,<br/>Logistics Team</p>",
		orderID, fmt.Sprintf(t.Body, trackingURL))
}
