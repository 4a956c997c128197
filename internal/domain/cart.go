package domain

import "time"

// Cart-related domain errors.
var (
	ErrCartItemNotFound = &Error{Code: ENOTFOUND, Message: "Cart item not found"}
	ErrInvalidQuantity  = &Error{Code: EINVALID, Message: "Quantity must be greater than 0"}
	ErrAuthRequired     = &Error{Code: EUNAUTHORIZED, Message: "Sign in to modify your cart"}
)

// CartItem represents a cart line item with a product snapshot.
// LineID is the server-issued surrogate key for the line; legacy snapshots
// may omit it, in which case ProductID identifies the line.
type CartItem struct {
	LineID              string `json:"_id"`
	ProductID           string `json:"productId"`
	ProductName         string `json:"productName"`
	UnitPrice           int64  `json:"unitPrice"`
	ImageURL            string `json:"imageUrl,omitempty"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Key returns the identity used to address this line.
// Falls back to the catalog product ID for legacy snapshots without a
// surrogate line key.
func (i CartItem) Key() string {
	if i.LineID != "" {
		return i.LineID
	}
	return i.ProductID
}

// LineSubtotal is the line's contribution to the cart total.
func (i CartItem) LineSubtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// Cart is the client-visible mirror of a user's in-progress selection.
// It is wholly replaced on every successful sync; totals are always
// recomputed from the current items and never cached independently.
type Cart struct {
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// TotalItems returns the sum of all line quantities.
func (c Cart) TotalItems() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// TotalAmount returns the sum of all line subtotals in minor currency units.
func (c Cart) TotalAmount() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineSubtotal()
	}
	return total
}

// Find returns the item addressed by id, resolving by surrogate line key
// first and falling back to the catalog product ID. The fallback is a
// compatibility rule for snapshots created before line keys existed.
func (c Cart) Find(id string) (CartItem, bool) {
	for _, item := range c.Items {
		if item.LineID != "" && item.LineID == id {
			return item, true
		}
	}
	for _, item := range c.Items {
		if item.ProductID == id {
			return item, true
		}
	}
	return CartItem{}, false
}
