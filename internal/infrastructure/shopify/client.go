// Package shopify fetches product feeds from Shopify storefronts.
// Every storefront publishes its catalog at products.json, paged.
package shopify

import (
	"context"
	"fmt"

	"github.com/chicpic/backend/internal/application/ingest"
	"github.com/chicpic/backend/internal/infrastructure/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client pulls full product feeds from Shopify storefronts
type Client struct {
	http     *resty.Client
	pageSize int
	log      *zap.Logger
}

var _ ingest.FetchClient = (*Client)(nil)

// NewClient creates a storefront client with the configured timeout,
// retry and paging behavior.
func NewClient(cfg config.FetchConfig, log *zap.Logger) *Client {
	http := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(cfg.RetryWait).
		SetHeader("User-Agent", cfg.UserAgent)

	return &Client{
		http:     http,
		pageSize: cfg.PageSize,
		log:      log.Named("shopify"),
	}
}

type productsResponse struct {
	Products []ingest.RawProduct `json:"products"`
}

// FetchProducts pages through a storefront's product feed until a page
// comes back empty, returning every listing.
func (c *Client) FetchProducts(ctx context.Context, website string) ([]ingest.RawProduct, error) {
	var all []ingest.RawProduct

	for page := 1; ; page++ {
		url := fmt.Sprintf("%sproducts.json?limit=%d&page=%d", website, c.pageSize, page)

		var payload productsResponse
		resp, err := c.http.R().
			SetContext(ctx).
			SetResult(&payload).
			Get(url)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
		}
		if resp.IsError() {
			return nil, fmt.Errorf("fetch %s returned status %d", url, resp.StatusCode())
		}

		if len(payload.Products) == 0 {
			break
		}

		c.log.Debug("Fetched product page",
			zap.String("website", website),
			zap.Int("page", page),
			zap.Int("count", len(payload.Products)),
		)
		all = append(all, payload.Products...)
	}

	return all, nil
}
