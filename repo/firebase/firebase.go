package firebase

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"

	"giftvault/repo"
	"giftvault/repo/models"
)

type giftVaultRepo struct {
	db *db.Client
}

func NewGiftVaultFirebaseRepo(client *db.Client) repo.IRepo {
	return &giftVaultRepo{db: client}
}

func (r *giftVaultRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.NewRef("users/"+id).Get(ctx, &user); err != nil {
		return nil, fmt.Errorf("get user %s: %w", id, err)
	}
	// RTDB returns a zero value for missing nodes instead of an error.
	if user.ID == "" {
		return nil, repo.ErrNotFound
	}
	return &user, nil
}

func (r *giftVaultRepo) SaveUser(ctx context.Context, user *models.User) error {
	if err := r.db.NewRef("users/"+user.ID).Set(ctx, user); err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}
	return nil
}

func (r *giftVaultRepo) FindUserByWallet(ctx context.Context, wallet string) (*models.User, error) {
	q := r.db.NewRef("users").OrderByChild("wallet").EqualTo(wallet).LimitToFirst(1)
	nodes, err := q.GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("query users by wallet: %w", err)
	}
	if len(nodes) == 0 {
		return nil, repo.ErrNotFound
	}
	var user models.User
	if err := nodes[0].Unmarshal(&user); err != nil {
		return nil, fmt.Errorf("decode user node: %w", err)
	}
	return &user, nil
}

func (r *giftVaultRepo) ListGifts(ctx context.Context, userID string) (map[string]models.Gift, error) {
	var gifts map[string]models.Gift
	if err := r.db.NewRef(giftsPath(userID)).Get(ctx, &gifts); err != nil {
		return nil, fmt.Errorf("list gifts of %s: %w", userID, err)
	}
	if gifts == nil {
		gifts = map[string]models.Gift{}
	}
	return gifts, nil
}

func (r *giftVaultRepo) GetGift(ctx context.Context, userID, giftID string) (*models.Gift, error) {
	var gift models.Gift
	if err := r.db.NewRef(giftsPath(userID)+"/"+giftID).Get(ctx, &gift); err != nil {
		return nil, fmt.Errorf("get gift %s: %w", giftID, err)
	}
	if gift.Name == "" && gift.Address == "" {
		return nil, repo.ErrNotFound
	}
	return &gift, nil
}

func (r *giftVaultRepo) AddGift(ctx context.Context, userID string, gift *models.Gift) (string, error) {
	ref, err := r.db.NewRef(giftsPath(userID)).Push(ctx, gift)
	if err != nil {
		return "", fmt.Errorf("push gift for %s: %w", userID, err)
	}
	return ref.Key, nil
}

func (r *giftVaultRepo) DeleteGift(ctx context.Context, userID, giftID string) error {
	if err := r.db.NewRef(giftsPath(userID) + "/" + giftID).Delete(ctx); err != nil {
		return fmt.Errorf("delete gift %s: %w", giftID, err)
	}
	return nil
}

func giftsPath(userID string) string {
	return "users/" + userID + "/gifts"
}
