package email

import "fmt"

// OrderConfirmationDetails fills the subscription confirmation email.
type OrderConfirmationDetails struct {
	PlanName         string
	SizeML           int
	MixFruits        int
	MixSprouts       int
	PricePerDelivery float64
	StartDate        string
	Address          string
}

// BuildOrderConfirmation renders the subscription confirmation email body.
func BuildOrderConfirmation(d *OrderConfirmationDetails) (subject, body string) {
	subject = "Order Confirmation - HealthyBowl"
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #2d5016;">Welcome to HealthyBowl!</h1>
  <p>Thank you for subscribing to our fresh fruits and sprouts delivery service!</p>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <h2 style="color: #2d5016; margin-top: 0;">Subscription Details</h2>
    <p><strong>Plan:</strong> %s</p>
    <p><strong>Box Size:</strong> %dml</p>
    <p><strong>Mix per delivery:</strong> %d fruits + %d sprouts</p>
    <p><strong>Price per delivery:</strong> &#8377;%.0f</p>
    <p><strong>Start Date:</strong> %s</p>
    <p><strong>Delivery Address:</strong> %s</p>
  </div>
  <p>Your first delivery will be scheduled according to your plan. You can manage your subscription from your dashboard.</p>
  <p>Questions? Reply to this email or contact us at support@healthybowl.com</p>
  <p>Best regards,<br>The HealthyBowl Team</p>
</div>`,
		d.PlanName, d.SizeML, d.MixFruits, d.MixSprouts, d.PricePerDelivery, d.StartDate, d.Address)
	return subject, body
}

// DeliveryReminderDetails fills the day-before delivery reminder.
type DeliveryReminderDetails struct {
	Date    string
	Time    string
	Address string
	Items   string
}

// BuildDeliveryReminder renders the delivery reminder email body.
func BuildDeliveryReminder(d *DeliveryReminderDetails) (subject, body string) {
	subject = "Delivery Reminder - Tomorrow"
	body = fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h1 style="color: #2d5016;">Your delivery is coming tomorrow!</h1>
  <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
    <p><strong>Date:</strong> %s</p>
    <p><strong>Time:</strong> %s</p>
    <p><strong>Address:</strong> %s</p>
    <p><strong>Items:</strong> %s</p>
  </div>
  <p>Please keep your phone handy; our delivery partner may call on arrival.</p>
  <p>Best regards,<br>The HealthyBowl Team</p>
</div>`,
		d.Date, d.Time, d.Address, d.Items)
	return subject, body
}
