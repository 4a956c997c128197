package remote

import (
	"context"
	"net/url"

	"github.com/tavolohq/tavolo/internal/domain"
)

// PromotionClient talks to the remote promotion service.
type PromotionClient struct {
	client *Client
}

// NewPromotionClient wraps a collaborator client for promotion reads.
func NewPromotionClient(client *Client) *PromotionClient {
	return &PromotionClient{client: client}
}

type promotionResponse struct {
	Success    bool               `json:"success"`
	Promotions []domain.Promotion `json:"promotions"`
}

// ListActive fetches the currently redeemable promotions.
func (c *PromotionClient) ListActive(ctx context.Context) ([]domain.Promotion, error) {
	query := url.Values{}
	query.Set("isActive", "true")
	query.Set("status", "active")

	var resp promotionResponse
	if err := c.client.do(ctx, "GET", "/promotions", query, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Promotions, nil
}
