package model

// Payment document fields.
const (
	PaymentBookingID     = "bookingId"
	PaymentProductID     = "productId"
	PaymentTransactionID = "transactionId"
	PaymentPrice         = "price"
)

// CategoryName is the only projected category field.
const CategoryName = "name"
