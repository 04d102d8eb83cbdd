package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"giftvault/repo"
	"giftvault/repo/models"
	"giftvault/tonaddr"
)

// ErrInvalidWallet is returned when a wallet string cannot be parsed
// as a TON address.
var ErrInvalidWallet = errors.New("invalid wallet address")

func (srv *GiftService) GetOrCreateUser(ctx context.Context, id, username string) (*models.User, error) {
	user, err := srv.repo.GetUser(ctx, id)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	user = &models.User{
		ID:        id,
		Username:  username,
		CreatedAt: time.Now().Unix(),
	}
	if err := srv.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (srv *GiftService) LinkWallet(ctx context.Context, id, wallet string) (*models.User, error) {
	normalized, err := tonaddr.Normalize(wallet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWallet, wallet)
	}

	user, err := srv.GetOrCreateUser(ctx, id, "")
	if err != nil {
		return nil, err
	}
	user.Wallet = normalized
	if err := srv.repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (srv *GiftService) UserByWallet(ctx context.Context, wallet string) (*models.User, error) {
	normalized, err := tonaddr.Normalize(wallet)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidWallet, wallet)
	}
	return srv.repo.FindUserByWallet(ctx, normalized)
}

func (srv *GiftService) ListGifts(ctx context.Context, id string) (map[string]models.Gift, error) {
	return srv.repo.ListGifts(ctx, id)
}

func (srv *GiftService) CreditGift(ctx context.Context, id string, gift *models.Gift) (string, error) {
	if gift.Name == "" {
		return "", errors.New("gift name is required")
	}
	if gift.Source == "" {
		gift.Source = models.GiftSourceManual
	}
	if gift.ReceivedAt == 0 {
		gift.ReceivedAt = time.Now().Unix()
	}
	// Make sure the owner node exists before hanging gifts under it.
	if _, err := srv.GetOrCreateUser(ctx, id, ""); err != nil {
		return "", err
	}
	return srv.repo.AddGift(ctx, id, gift)
}

func (srv *GiftService) WithdrawGift(ctx context.Context, id, giftID string) error {
	if _, err := srv.repo.GetGift(ctx, id, giftID); err != nil {
		return err
	}
	return srv.repo.DeleteGift(ctx, id, giftID)
}
