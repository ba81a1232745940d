package model

// Product document fields.
const (
	ProductEmail      = "email"
	ProductCategory   = "product_category"
	ProductSellStatus = "sellStatus"
	ProductAdvertised = "isAdvertised"
)

// Sell statuses.
const (
	SellStatusAvailable = "available"
	SellStatusSold      = "sold"
)

// NewListing applies the creation defaults to a product body. Whatever the
// client sent for status or advertising is overwritten.
func NewListing(body Document) Document {
	doc := body.Clone()
	delete(doc, IDField)
	doc[ProductSellStatus] = SellStatusAvailable
	doc[ProductAdvertised] = false
	return doc
}

// AdvertisedFilter selects a seller's advertised listings that can still be bought.
func AdvertisedFilter(email string) Filter {
	return Filter{
		ProductEmail:      email,
		ProductAdvertised: true,
		ProductSellStatus: SellStatusAvailable,
	}
}
