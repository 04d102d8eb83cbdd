package service

import (
	"context"
	"errors"

	"giftvault/clients/tonnel"
)

// ErrNoListing is returned when neither marketplace knows the gift.
var ErrNoListing = errors.New("no listing found")

const (
	sourceTonnel  = "tonnel"
	sourceGetgems = "getgems"
)

func (srv *GiftService) SearchMarket(ctx context.Context, f tonnel.Filter) ([]tonnel.Listing, error) {
	return srv.tonnel.SearchGifts(ctx, f)
}

// FloorPrice asks Tonnel first and falls back to getgems when Tonnel
// errors out or has nothing listed.
func (srv *GiftService) FloorPrice(ctx context.Context, name string) (*Quote, error) {
	listing, err := srv.tonnel.FloorPrice(ctx, name)
	if err == nil && listing != nil {
		return &Quote{
			Name:    listing.Name,
			Model:   listing.Model,
			Address: listing.Address,
			Image:   listing.Image,
			Price:   listing.Price,
			Source:  sourceTonnel,
		}, nil
	}

	nft, ggErr := srv.getgems.FloorPrice(ctx, name)
	if ggErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, ggErr
	}
	if nft == nil {
		return nil, ErrNoListing
	}
	return &Quote{
		Name:    nft.Name,
		Model:   nft.Model,
		Address: nft.Address,
		Image:   nft.Image,
		Price:   nft.Price,
		Source:  sourceGetgems,
	}, nil
}

// ResolveNFT fetches metadata and price for a single NFT item,
// Tonnel first with a getgems fallback.
func (srv *GiftService) ResolveNFT(ctx context.Context, addr string) (*Quote, error) {
	listing, err := srv.tonnel.GiftByAddress(ctx, addr)
	if err == nil && listing != nil {
		return &Quote{
			Name:    listing.Name,
			Model:   listing.Model,
			Address: addr,
			Image:   listing.Image,
			Price:   listing.Price,
			Source:  sourceTonnel,
		}, nil
	}

	nft, ggErr := srv.getgems.NFTByAddress(ctx, addr)
	if ggErr != nil {
		if err != nil {
			return nil, err
		}
		return nil, ggErr
	}
	if nft == nil {
		return nil, ErrNoListing
	}
	return &Quote{
		Name:    nft.Name,
		Model:   nft.Model,
		Address: addr,
		Image:   nft.Image,
		Price:   nft.Price,
		Source:  sourceGetgems,
	}, nil
}
