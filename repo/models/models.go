package models

// User is a node under users/{id} in the realtime database.
type User struct {
	ID        string  `json:"id,omitempty"`
	Username  string  `json:"username,omitempty"`
	Wallet    string  `json:"wallet,omitempty"`
	Balance   float64 `json:"balance"`
	CreatedAt int64   `json:"created_at,omitempty"`
}

// Gift is a node under users/{id}/gifts/{key}. Keys are push IDs.
type Gift struct {
	Name       string  `json:"name,omitempty"`
	Model      string  `json:"model,omitempty"`
	Address    string  `json:"address,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Image      string  `json:"image,omitempty"`
	Source     string  `json:"source,omitempty"`
	TxHash     string  `json:"tx_hash,omitempty"`
	ReceivedAt int64   `json:"received_at,omitempty"`
}

const (
	GiftSourceDeposit = "deposit"
	GiftSourceManual  = "manual"
)
