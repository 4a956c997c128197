package remote

import (
	"context"
	"net/url"

	"github.com/tavolohq/tavolo/internal/domain"
)

// MutationResult carries a cart mutation response. Items is nil when the
// collaborator did not echo the resulting collection; callers then fall
// back to a full refresh.
type MutationResult struct {
	Success bool
	Items   []domain.CartItem
}

type cartResponse struct {
	Success bool               `json:"success"`
	Items   *[]domain.CartItem `json:"items"`
	Message string             `json:"message"`
}

func (r cartResponse) result() MutationResult {
	result := MutationResult{Success: r.Success}
	if r.Items != nil {
		result.Items = *r.Items
		if result.Items == nil {
			result.Items = []domain.CartItem{}
		}
	}
	return result
}

// hasItems reports whether the response carried the item collection,
// distinguishing "items: []" from an absent field.
func (r cartResponse) hasItems() bool {
	return r.Items != nil
}

// CartClient talks to the remote cart service.
type CartClient struct {
	client *Client
}

// NewCartClient wraps a collaborator client for cart operations.
func NewCartClient(client *Client) *CartClient {
	return &CartClient{client: client}
}

type cartItemPayload struct {
	ProductID           string `json:"productId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions,omitempty"`
}

// Fetch retrieves the authoritative cart contents.
func (c *CartClient) Fetch(ctx context.Context) ([]domain.CartItem, error) {
	var resp cartResponse
	if err := c.client.do(ctx, "GET", "/cart", nil, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.hasItems() {
		return []domain.CartItem{}, nil
	}
	return resp.result().Items, nil
}

// Add puts a product into the cart.
func (c *CartClient) Add(ctx context.Context, productID string, quantity int, instructions string) (MutationResult, bool, error) {
	payload := cartItemPayload{ProductID: productID, Quantity: quantity, SpecialInstructions: instructions}
	var resp cartResponse
	if err := c.client.do(ctx, "POST", "/cart/add", nil, payload, &resp); err != nil {
		return MutationResult{}, false, err
	}
	return resp.result(), resp.hasItems(), nil
}

// Update changes a line's quantity and instructions.
func (c *CartClient) Update(ctx context.Context, productID string, quantity int, instructions string) (MutationResult, bool, error) {
	payload := cartItemPayload{ProductID: productID, Quantity: quantity, SpecialInstructions: instructions}
	var resp cartResponse
	if err := c.client.do(ctx, "PUT", "/cart/update", nil, payload, &resp); err != nil {
		return MutationResult{}, false, err
	}
	return resp.result(), resp.hasItems(), nil
}

// Remove deletes a line from the cart.
func (c *CartClient) Remove(ctx context.Context, productID string) (MutationResult, bool, error) {
	var resp cartResponse
	if err := c.client.do(ctx, "DELETE", "/cart/remove/"+url.PathEscape(productID), nil, nil, &resp); err != nil {
		return MutationResult{}, false, err
	}
	return resp.result(), resp.hasItems(), nil
}

// Clear empties the cart.
func (c *CartClient) Clear(ctx context.Context) error {
	var resp cartResponse
	return c.client.do(ctx, "DELETE", "/cart/clear", nil, nil, &resp)
}
