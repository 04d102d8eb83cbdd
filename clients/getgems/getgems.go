package getgems

import (
	"context"
	"fmt"
	"strconv"

	"github.com/go-resty/resty/v2"
)

// Client talks to the getgems public API. Used as a fallback when
// Tonnel has no data for a gift.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

type NFT struct {
	Address string  `json:"address"`
	Name    string  `json:"name"`
	Model   string  `json:"model,omitempty"`
	Image   string  `json:"image"`
	Price   float64 `json:"price"`
}

type searchResponse struct {
	Items []NFT `json:"items"`
}

type nftResponse struct {
	Item *NFT `json:"item"`
}

// FloorPrice returns the cheapest on-sale item matching the gift name,
// or nil when nothing is on sale.
func (c *Client) FloorPrice(ctx context.Context, name string) (*NFT, error) {
	var out searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"name":  name,
			"sort":  "price_asc",
			"limit": strconv.Itoa(1),
		}).
		SetResult(&out).
		Get("/public-api/v1/nfts/on-sale")
	if err != nil {
		return nil, fmt.Errorf("getgems on-sale: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("getgems on-sale: %s", resp.Status())
	}
	if len(out.Items) == 0 {
		return nil, nil
	}
	return &out.Items[0], nil
}

// NFTByAddress returns metadata for a single NFT item.
func (c *Client) NFTByAddress(ctx context.Context, addr string) (*NFT, error) {
	var out nftResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/public-api/v1/nft/" + addr)
	if err != nil {
		return nil, fmt.Errorf("getgems nft: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("getgems nft: %s", resp.Status())
	}
	return out.Item, nil
}
