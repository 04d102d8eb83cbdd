package repo

import (
	"context"
	"errors"

	"giftvault/repo/models"
)

// ErrNotFound is returned when the requested node does not exist.
var ErrNotFound = errors.New("not found")

type IRepo interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	SaveUser(ctx context.Context, user *models.User) error
	FindUserByWallet(ctx context.Context, wallet string) (*models.User, error)
	ListGifts(ctx context.Context, userID string) (map[string]models.Gift, error)
	GetGift(ctx context.Context, userID, giftID string) (*models.Gift, error)
	AddGift(ctx context.Context, userID string, gift *models.Gift) (string, error)
	DeleteGift(ctx context.Context, userID, giftID string) error
}
