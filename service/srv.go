package service

import (
	"context"

	"giftvault/cfg"
	"giftvault/clients/getgems"
	"giftvault/clients/tonnel"
	"giftvault/repo"
	"giftvault/repo/models"
)

type TonnelAPI interface {
	SearchGifts(ctx context.Context, f tonnel.Filter) ([]tonnel.Listing, error)
	FloorPrice(ctx context.Context, name string) (*tonnel.Listing, error)
	GiftByAddress(ctx context.Context, addr string) (*tonnel.Listing, error)
}

type GetgemsAPI interface {
	FloorPrice(ctx context.Context, name string) (*getgems.NFT, error)
	NFTByAddress(ctx context.Context, addr string) (*getgems.NFT, error)
}

// Quote is marketplace data reshaped to one type regardless of source.
type Quote struct {
	Name    string  `json:"name"`
	Model   string  `json:"model,omitempty"`
	Address string  `json:"address,omitempty"`
	Image   string  `json:"image,omitempty"`
	Price   float64 `json:"price"`
	Source  string  `json:"source"`
}

type IGiftService interface {
	GetOrCreateUser(ctx context.Context, id, username string) (*models.User, error)
	LinkWallet(ctx context.Context, id, wallet string) (*models.User, error)
	UserByWallet(ctx context.Context, wallet string) (*models.User, error)
	ListGifts(ctx context.Context, id string) (map[string]models.Gift, error)
	CreditGift(ctx context.Context, id string, gift *models.Gift) (string, error)
	WithdrawGift(ctx context.Context, id, giftID string) error
	SearchMarket(ctx context.Context, f tonnel.Filter) ([]tonnel.Listing, error)
	FloorPrice(ctx context.Context, name string) (*Quote, error)
	ResolveNFT(ctx context.Context, addr string) (*Quote, error)
}

type GiftService struct {
	repo    repo.IRepo
	config  *cfg.Config
	tonnel  TonnelAPI
	getgems GetgemsAPI
}

func NewGiftService(config *cfg.Config, repo repo.IRepo, tonnelAPI TonnelAPI, getgemsAPI GetgemsAPI) IGiftService {
	return &GiftService{
		repo:    repo,
		config:  config,
		tonnel:  tonnelAPI,
		getgems: getgemsAPI,
	}
}
