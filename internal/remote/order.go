package remote

import (
	"context"
	"net/url"

	"github.com/tavolohq/tavolo/internal/domain"
)

// OrderClient talks to the remote order service.
type OrderClient struct {
	client *Client
}

// NewOrderClient wraps a collaborator client for order operations.
func NewOrderClient(client *Client) *OrderClient {
	return &OrderClient{client: client}
}

type orderResponse struct {
	Success bool         `json:"success"`
	Order   domain.Order `json:"order"`
	Message string       `json:"message"`
}

type feedbackPayload struct {
	Feedback string `json:"feedback,omitempty"`
}

type statusPayload struct {
	Status domain.OrderStatus `json:"status"`
}

// Get retrieves one order.
func (c *OrderClient) Get(ctx context.Context, orderID string) (domain.Order, error) {
	var resp orderResponse
	if err := c.client.do(ctx, "GET", "/orders/"+url.PathEscape(orderID), nil, nil, &resp); err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}

// Cancel requests cancellation through the dedicated endpoint.
func (c *OrderClient) Cancel(ctx context.Context, orderID, feedback string) (domain.Order, error) {
	var resp orderResponse
	err := c.client.do(ctx, "PATCH", "/orders/"+url.PathEscape(orderID)+"/cancel", nil, feedbackPayload{Feedback: feedback}, &resp)
	if err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}

// UpdateStatus requests a status change through the generic endpoint.
// Used as the fallback path when a dedicated endpoint declines.
func (c *OrderClient) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) (domain.Order, error) {
	var resp orderResponse
	err := c.client.do(ctx, "PATCH", "/orders/"+url.PathEscape(orderID)+"/status", nil, statusPayload{Status: status}, &resp)
	if err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}

// ConfirmDelivery acknowledges receipt through the dedicated endpoint.
func (c *OrderClient) ConfirmDelivery(ctx context.Context, orderID, feedback string) (domain.Order, error) {
	var resp orderResponse
	err := c.client.do(ctx, "PATCH", "/orders/"+url.PathEscape(orderID)+"/confirm-delivery", nil, feedbackPayload{Feedback: feedback}, &resp)
	if err != nil {
		return domain.Order{}, err
	}
	return resp.Order, nil
}
