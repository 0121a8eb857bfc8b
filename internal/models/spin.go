package models

import "time"

// Service categories a wheel segment can award a discount on.
const (
	DomainChatbots       = "Chatbots"
	DomainWebsites       = "Websites"
	DomainMobileApps     = "Mobile Apps"
	DomainCustomSoftware = "Custom Software"
)

// SpinRecord is one admitted wheel spin. Email is the natural key: at most
// one record may exist per email address. Records are append-only; they are
// never updated or deleted after creation.
type SpinRecord struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"` // stored exactly as submitted; normalized only for SMS delivery
	Domain     string    `json:"domain"`
	Discount   int       `json:"discount"`
	CouponCode string    `json:"couponCode"`
	CreatedAt  time.Time `json:"createdAt"`
}
