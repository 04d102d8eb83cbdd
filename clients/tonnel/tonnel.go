package tonnel

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// Client talks to the Tonnel marketplace API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL string) *Client {
	return &Client{http: resty.New().SetBaseURL(baseURL)}
}

// Listing is a gift listed on the marketplace.
type Listing struct {
	GiftNum int     `json:"gift_num"`
	Name    string  `json:"name"`
	Model   string  `json:"model"`
	Address string  `json:"export_at,omitempty"`
	Price   float64 `json:"price"`
	Asset   string  `json:"asset"`
	Image   string  `json:"image,omitempty"`
}

// Filter narrows a page query. Zero fields are omitted from the request.
type Filter struct {
	Name    string
	Model   string
	Address string
	Page    int
	Limit   int
}

type pageRequest struct {
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
	Sort   string `json:"sort"`
	Filter string `json:"filter"`
}

// SearchGifts returns listings matching the filter, cheapest first.
func (c *Client) SearchGifts(ctx context.Context, f Filter) ([]Listing, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 30
	}

	filter := map[string]interface{}{
		"price": map[string]bool{"$exists": true},
		"asset": "TON",
	}
	if f.Name != "" {
		filter["gift_name"] = f.Name
	}
	if f.Model != "" {
		filter["model"] = f.Model
	}
	if f.Address != "" {
		filter["export_at"] = f.Address
	}
	rawFilter, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("tonnel filter: %w", err)
	}

	var out []Listing
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(pageRequest{
			Page:   f.Page,
			Limit:  f.Limit,
			Sort:   `{"price":1,"gift_id":-1}`,
			Filter: string(rawFilter),
		}).
		SetResult(&out).
		Post("/api/pageGifts")
	if err != nil {
		return nil, fmt.Errorf("tonnel pageGifts: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tonnel pageGifts: %s", resp.Status())
	}
	return out, nil
}

// FloorPrice returns the cheapest listing for the gift name, or nil
// when nothing is listed.
func (c *Client) FloorPrice(ctx context.Context, name string) (*Listing, error) {
	listings, err := c.SearchGifts(ctx, Filter{Name: name, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}

// GiftByAddress looks a gift up by its NFT item address.
func (c *Client) GiftByAddress(ctx context.Context, addr string) (*Listing, error) {
	listings, err := c.SearchGifts(ctx, Filter{Address: addr, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, nil
	}
	return &listings[0], nil
}
