package model

import "fmt"

// Booking document fields.
const (
	BookingEmail         = "email"
	BookingName          = "name"
	BookingPrice         = "price"
	BookingPaid          = "paid"
	BookingTransactionID = "transactionId"
)

// BookingNotice is returned instead of an insert result when the requester
// already holds a booking on the same item.
type BookingNotice struct {
	Acknowledged bool   `json:"acknowledged"`
	Message      string `json:"message"`
}

// NewBookingNotice builds the duplicate-booking response for an item name.
func NewBookingNotice(name string) BookingNotice {
	return BookingNotice{
		Acknowledged: false,
		Message:      fmt.Sprintf("You already have a booking on %s", name),
	}
}

// PaymentIntentRequest is the body of POST /create-payment-intent.
type PaymentIntentRequest struct {
	Price *float64 `json:"price"`
}

// PaymentIntentResponse carries the secret a client needs to complete payment.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
