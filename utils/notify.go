package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/go-resty/resty/v2"
)

// OrderNotification is the summary posted to the fulfillment webhook and
// mailed to the buyer after a successful checkout.
type OrderNotification struct {
	OrderIds       map[string]string `json:"orderIds"`
	IdempotencyKey string            `json:"idempotencyKey"`
	UserEmail      string            `json:"userEmail"`
	Total          float64           `json:"total"`
}

// SendOrderWebhook posts the notification to ORDER_WEBHOOK_URL. A missing
// URL disables the webhook; failures are logged only.
func SendOrderWebhook(notification OrderNotification) {
	webhookURL := os.Getenv("ORDER_WEBHOOK_URL")
	if webhookURL == "" {
		return
	}

	resp, err := resty.New().SetTimeout(10 * time.Second).
		R().
		SetHeader("Content-Type", "application/json").
		SetBody(notification).
		Post(webhookURL)

	if err != nil {
		log.Printf("Order webhook error: %v", err)
		return
	}
	if resp.StatusCode() >= 300 {
		log.Printf("Order webhook returned status %d: %s", resp.StatusCode(), resp.Body())
	}
}

// SendOrderConfirmationEmail mails the buyer a summary of the orders placed
// in one checkout. Anonymous checkouts have no address to mail to.
func SendOrderConfirmationEmail(notification OrderNotification) {
	if notification.UserEmail == "" || notification.UserEmail == "anonymous" {
		return
	}

	emailData := struct {
		OrderCount int
		Total      string
		LogoURL    string
	}{
		OrderCount: len(notification.OrderIds),
		Total:      fmt.Sprintf("%.2f", notification.Total),
		LogoURL:    os.Getenv("FRONTEND_URL") + "/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	if err := SendEmail(notification.UserEmail, "Your Sokoni Order Confirmation", emailData, templatePath); err != nil {
		log.Println("Error sending order confirmation email:", err)
	}
}
