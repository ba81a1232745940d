package model

// Document is a stored record. Listing fields are opaque, so documents stay
// schemaless; the identifier is exposed under IDField.
type Document map[string]any

// Filter is an exact-match conjunction over document fields.
type Filter map[string]any

// IDField is the key under which a document's identifier is exposed.
const IDField = "_id"

// Collection names.
const (
	CollectionProducts          = "products"
	CollectionProductCategories = "productCategories"
	CollectionBookings          = "bookings"
	CollectionUsers             = "users"
	CollectionPayments          = "payments"
)

// String returns the string value stored at key, or "" when absent or not a string.
func (d Document) String(key string) string {
	s, _ := d[key].(string)
	return s
}

// ID returns the document identifier.
func (d Document) ID() string {
	return d.String(IDField)
}

// Clone returns a shallow copy.
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
