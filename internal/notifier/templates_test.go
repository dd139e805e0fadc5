package notifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrilink/agrilink/internal/model"
)

func TestTemplateFor(t *testing.T) {
	t.Run("each status has its own mail", func(t *testing.T) {
		subjects := map[string]string{
			string(model.StatusFirstMileReceiveScan): "Your Package Has Been Received at First Mile",
			string(model.StatusReceivedInFacility):   "Package Arrived at Sorting Facility",
			string(model.StatusOutForDelivery):       "Out for Delivery - Your Package is on the Way!",
			string(model.StatusDelivered):            "Delivery Complete - Thank You!",
		}

		for status, subject := range subjects {
			assert.Equal(t, subject, TemplateFor(status).Subject, "status %q", status)
		}
	})

	t.Run("order creation uses the default mail", func(t *testing.T) {
		tmpl := TemplateFor(model.NotificationStatusDefault)
		assert.Equal(t, "Your Delivery Order Has Been Submitted", tmpl.Subject)
	})

	t.Run("unknown status falls back to default", func(t *testing.T) {
		tmpl := TemplateFor("SHIPPED")
		assert.Equal(t, "Your Delivery Order Has Been Submitted", tmpl.Subject)
	})

	t.Run("lookup is case sensitive", func(t *testing.T) {
		tmpl := TemplateFor("delivered")
		assert.Equal(t, "Your Delivery Order Has Been Submitted", tmpl.Subject)
	})

	t.Run("empty status falls back to default", func(t *testing.T) {
		tmpl := TemplateFor("")
		assert.Equal(t, "Your Delivery Order Has Been Submitted", tmpl.Subject)
	})
}

func TestRenderHTML(t *testing.T) {
	tmpl := TemplateFor(string(model.StatusDelivered))
	html := RenderHTML(tmpl, "ORD-1001", "http://localhost:5173/tracking")

	assert.Contains(t, html, "<h3>Delivery Order #ORD-1001</h3>")
	assert.Contains(t, html, "Your package has been successfully delivered.")
	assert.Contains(t, html, "http://localhost:5173/tracking")
	assert.Contains(t, html, "<p>Best regards,<br/>Logistics Team</p>")
}
