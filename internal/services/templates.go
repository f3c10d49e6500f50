package services

import (
	"fmt"
	"html"
	"strings"

	"github.com/amrutdhara/orderbot/internal/models"
)

// TemplateConfig describes one notification template
type TemplateConfig struct {
	Description string
	Parameters  []string
	Body        string // {{name}} placeholders
}

// NotificationTemplates maps template names to their bodies
var NotificationTemplates = map[string]TemplateConfig{
	"admin_new_order_sms": {
		Description: "Alert to the business owner when an order is placed",
		Parameters:  []string{"order_id", "bottle_type", "quantity", "delivery_date", "address"},
		Body:        "🔔 New Order Alert!\n\nOrder ID: {{order_id}}\nBottle: {{bottle_type}}\nQty: {{quantity}}\nDate: {{delivery_date}}\nAddress: {{address}}...",
	},
	"customer_order_whatsapp": {
		Description: "Order confirmation sent to the customer's WhatsApp",
		Parameters:  []string{"name", "order_id", "bottle_type", "quantity", "delivery_date"},
		Body:        "✅ Hi {{name}}, your order {{order_id}}... is confirmed!\n\n🍾 {{quantity}}x {{bottle_type}}\n📅 Delivery: {{delivery_date}}\n\nThank you for choosing {{brand}}.",
	},
	"customer_order_email_subject": {
		Description: "Subject line of the confirmation email",
		Parameters:  []string{"order_id"},
		Body:        "{{brand}} - Order Confirmation #{{order_id}}",
	},
	"customer_order_email_text": {
		Description: "Plain text confirmation email",
		Parameters:  []string{"order_id", "bottle_type", "quantity", "address", "delivery_date", "status"},
		Body: `Thank you for your order!

Order ID: {{order_id}}
Bottle Type: {{bottle_type}}
Quantity: {{quantity}} bottles
Delivery Address: {{address}}
Preferred Delivery Date: {{delivery_date}}
Status: {{status}}

We will contact you before delivery.

{{brand}}`,
	},
	"customer_order_email_html": {
		Description: "HTML confirmation email",
		Parameters:  []string{"order_id", "bottle_type", "quantity", "address", "delivery_date", "status"},
		Body: `<h2>Thank you for your order!</h2>
<table>
<tr><td><strong>Order ID</strong></td><td>{{order_id}}</td></tr>
<tr><td><strong>Bottle Type</strong></td><td>{{bottle_type}}</td></tr>
<tr><td><strong>Quantity</strong></td><td>{{quantity}} bottles</td></tr>
<tr><td><strong>Delivery Address</strong></td><td>{{address}}</td></tr>
<tr><td><strong>Preferred Delivery Date</strong></td><td>{{delivery_date}}</td></tr>
<tr><td><strong>Status</strong></td><td>{{status}}</td></tr>
</table>
<p>We will contact you before delivery.</p>
<p>{{brand}}</p>`,
	},
}

const adminAddressPreview = 50

// RenderTemplate fills a template's placeholders. Every declared parameter must be present.
func RenderTemplate(templateName string, params map[string]string) (string, error) {
	tmpl, exists := NotificationTemplates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	for _, param := range tmpl.Parameters {
		if _, ok := params[param]; !ok {
			return "", fmt.Errorf("missing parameter %s for template %s", param, templateName)
		}
	}

	pairs := make([]string, 0, len(params)*2)
	for key, value := range params {
		pairs = append(pairs, "{{"+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl.Body), nil
}

// GetTemplateInfo returns information about a template
func GetTemplateInfo(templateName string) (*TemplateConfig, error) {
	tmpl, exists := NotificationTemplates[templateName]
	if !exists {
		return nil, fmt.Errorf("template %s not found", templateName)
	}
	return &tmpl, nil
}

// orderParams builds the placeholder values shared by the order templates
func orderParams(order *models.Order, brand string) map[string]string {
	return map[string]string{
		"order_id":      order.ShortID(),
		"bottle_type":   order.BottleType,
		"quantity":      fmt.Sprintf("%d", order.Quantity),
		"address":       order.DeliveryAddress,
		"delivery_date": order.PreferredDeliveryDate.Format(models.DeliveryDateLayout),
		"status":        order.OrderStatus,
		"brand":         brand,
	}
}

// adminParams truncates the address to keep the SMS short
func adminParams(order *models.Order, brand string) map[string]string {
	params := orderParams(order, brand)
	address := []rune(order.DeliveryAddress)
	if len(address) > adminAddressPreview {
		address = address[:adminAddressPreview]
	}
	params["address"] = string(address)
	return params
}

// htmlParams escapes every value for the HTML email body
func htmlParams(params map[string]string) map[string]string {
	escaped := make(map[string]string, len(params))
	for key, value := range params {
		escaped[key] = html.EscapeString(value)
	}
	return escaped
}
