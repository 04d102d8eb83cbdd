package entity

import "giftvault/repo/models"

type LinkWalletRequest struct {
	Wallet string `json:"wallet" binding:"required"`
}

type CreditGiftRequest struct {
	Name    string  `json:"name" binding:"required"`
	Model   string  `json:"model"`
	Address string  `json:"address"`
	Price   float64 `json:"price"`
	Image   string  `json:"image"`
}

type GiftResponse struct {
	ID string `json:"id"`
	models.Gift
}

type GiftListResponse struct {
	Gifts []GiftResponse `json:"gifts"`
}

type CreditGiftResponse struct {
	ID string `json:"id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
