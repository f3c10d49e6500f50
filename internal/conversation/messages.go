package conversation

import (
	"fmt"
	"strings"
	"time"

	"github.com/amrutdhara/orderbot/internal/models"
)

const displayDateLayout = "02 Jan 2006"

const (
	msgInvalidEmail   = "❌ Invalid email format. Please enter a valid email address:"
	msgAskPassword    = "Please enter your password:"
	msgSessionExpired = "❌ Session expired. Please start again."

	msgInvalidMenuOption = "❌ Invalid option. Please reply with a number between 1-4."
	msgAskOrderID        = "Please enter the Order ID you want to view:\n\n💡 Type \"menu\" to return to main menu"

	msgInvalidBottle        = "❌ Invalid selection. Please reply with 1 for 200ml, 2 for 300ml, or 3 for 500ml:"
	msgInvalidQuantity      = "❌ Invalid quantity. Please enter a positive number:"
	msgQuantityTooLarge     = "❌ Quantity too large. Please contact our support team for bulk orders exceeding 1000 bottles."
	msgAddressTooShort      = "❌ Address is too short. Please provide a complete delivery address:"
	msgInvalidDateFormat    = "❌ Invalid date format. Please use YYYY-MM-DD format (e.g., 2025-12-25):"
	msgDateTooSoon          = "❌ Delivery date must be at least 1 day in advance. Please enter a valid future date:"
	msgConfirmPrompt        = "Please reply with YES to confirm or NO to cancel:"
	msgOrderCancelled       = "❌ Order cancelled.\n\nType \"menu\" to return to the main menu."
	msgOrderSessionExpired  = "❌ Your order session expired before confirmation. Please start a new order."
	msgNoOrders             = "📋 You have no orders yet.\n\nType \"menu\" to return to the main menu."
	msgEmptyOrderID         = "❌ Please provide a valid Order ID."
	msgOrderNotFound        = "❌ Order not found or you don't have permission to view it.\n\nPlease check the Order ID and try again.\n\nType \"menu\" to return to the main menu."
	msgProcessingFailed     = "❌ An error occurred while processing your request. Please try again or contact support."
	msgReturnToMenuReminder = "💡 Type 'menu' to cancel and return to main menu"
)

var menuButtons = []MenuButton{
	{Icon: "1️⃣", Text: "Place New Order", Value: "1"},
	{Icon: "2️⃣", Text: "View Order History", Value: "2"},
	{Icon: "3️⃣", Text: "View Order Details", Value: "3"},
	{Icon: "4️⃣", Text: "Help / Support", Value: "4"},
}

const bottleImageURL = "/images/bottle.svg"

var bottleImages = []Image{
	{URL: bottleImageURL, Caption: "1. 200ml Bottle", Type: models.Bottle200ml},
	{URL: bottleImageURL, Caption: "2. 300ml Bottle", Type: models.Bottle300ml},
	{URL: bottleImageURL, Caption: "3. 500ml Bottle", Type: models.Bottle500ml},
}

func welcomeMessage(botName string) string {
	return fmt.Sprintf("Welcome to %s! 🌊\n\nPlease enter your registered email address:", botName)
}

func authFailedMessage(err error) string {
	return fmt.Sprintf("❌ Authentication failed: %s\n\nPlease try again.", err)
}

func authSuccessMessage(email string) string {
	return fmt.Sprintf("✅ Authentication successful!\n\nWelcome back, %s!\n\n📋 Type 'menu' anytime to see available options.", email)
}

func mainMenuMessage() string {
	return `📋 *Main Menu*

Please select an option:

1️⃣ Place New Order
2️⃣ View Order History
3️⃣ View Order Details
4️⃣ Help / Support

Reply with the number of your choice (1-4)

💡 You can type 'menu' anytime during your order to return here.`
}

func helpMessage(supportContact, supportEmail string) string {
	return fmt.Sprintf(`🆘 *Help & Support*

For assistance with:
• Order placement
• Delivery queries
• Account issues
• Billing questions

📞 Contact Amrut-Dhara Support Team:
%s

📧 Email: %s

Business Hours: Mon-Sat, 9 AM - 6 PM

💡 Type 'menu' to return to the main menu.`, supportContact, supportEmail)
}

func bottleOptionsMessage() string {
	return "📦 *New Order*\n\nPlease select bottle type:\n\n• 1. 200ml Bottle\n• 2. 300ml Bottle\n• 3. 500ml Bottle\n\nReply with 1, 2, or 3\n\n💡 Type 'menu' anytime to go back"
}

func bottleSelectedMessage(bottleType string) string {
	return fmt.Sprintf("✅ Selected: %s\n\nPlease enter the quantity (number of bottles):\n\n%s", bottleType, msgReturnToMenuReminder)
}

func quantityAcceptedMessage(quantity int) string {
	return fmt.Sprintf("✅ Quantity: %d bottles\n\nPlease enter the delivery address:\n\n%s", quantity, msgReturnToMenuReminder)
}

func addressAcceptedMessage(minDate time.Time) string {
	return fmt.Sprintf("✅ Address saved\n\nPlease enter preferred delivery date (YYYY-MM-DD format):\n\nExample: %s\nNote: Minimum 1 day advance notice required.\n\n%s",
		minDate.Format(models.DeliveryDateLayout), msgReturnToMenuReminder)
}

func orderSummaryMessage(bottleType, quantity, address, date string) string {
	return fmt.Sprintf(`📋 *Order Summary*

🍾 Bottle Type: %s
📦 Quantity: %s bottles
📍 Delivery Address: %s
📅 Delivery Date: %s

Do you want to confirm this order?

Reply 'YES' to confirm or 'NO' to cancel:`, bottleType, quantity, address, date)
}

func orderFailedMessage(err error) string {
	return fmt.Sprintf("❌ Failed to create order: %s\n\nPlease try again or contact support.", err)
}

func orderPlacedMessage(order *models.Order, email string) string {
	return fmt.Sprintf("✅ *Order Placed Successfully!*\n\n📋 Order ID: %s...\n📧 Confirmation sent to: %s\n\nYour order has been received and will be processed shortly. You will receive updates via email.\n\n💡 Type \"menu\" to return to the main menu.",
		order.ShortID(), email)
}

func historyFailedMessage(err error) string {
	return fmt.Sprintf("❌ Failed to fetch order history: %s", err)
}

func orderHistoryMessage(orders []*models.Order) string {
	var b strings.Builder
	b.WriteString("📋 *Your Recent Orders*\n\n")

	for i, order := range orders {
		fmt.Fprintf(&b, "%d. Order ID: %s...\n", i+1, order.ShortID())
		fmt.Fprintf(&b, "   📅 Date: %s\n", order.CreatedAt.Format(displayDateLayout))
		fmt.Fprintf(&b, "   %s Status: %s\n", statusEmoji(order.OrderStatus), order.OrderStatus)
		fmt.Fprintf(&b, "   🍾 %dx %s\n\n", order.Quantity, order.BottleType)
	}

	b.WriteString("To view details of a specific order, select option 3 from the main menu.\n\n")
	b.WriteString("💡 Type \"menu\" to return to the main menu.")
	return b.String()
}

func orderDetailsMessage(order *models.Order) string {
	return fmt.Sprintf(`📋 *Order Details*

🆔 Order ID: %s
📅 Order Date: %s
%s Status: %s

🍾 Bottle Type: %s
📦 Quantity: %d bottles
📍 Delivery Address: %s
🚚 Preferred Delivery Date: %s

Type "menu" to return to the main menu.`,
		order.ID,
		order.CreatedAt.Format(displayDateLayout),
		statusEmoji(order.OrderStatus), order.OrderStatus,
		order.BottleType,
		order.Quantity,
		order.DeliveryAddress,
		order.PreferredDeliveryDate.Format(displayDateLayout),
	)
}

func statusEmoji(status string) string {
	switch status {
	case models.OrderStatusPending:
		return "⏳"
	case models.OrderStatusConfirmed:
		return "✅"
	case models.OrderStatusDelivered:
		return "📦"
	default:
		return "📋"
	}
}
