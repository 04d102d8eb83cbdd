package toncenter

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

// Client talks to the TON Center v3 REST API.
type Client struct {
	http *resty.Client
}

func NewClient(baseURL, apiKey string) *Client {
	c := resty.New().SetBaseURL(baseURL)
	if apiKey != "" {
		c.SetHeader("X-API-Key", apiKey)
	}
	return &Client{http: c}
}

type MessageContent struct {
	Body string `json:"body"`
}

type Message struct {
	Hash           string          `json:"hash"`
	Source         string          `json:"source"`
	Destination    string          `json:"destination"`
	Opcode         string          `json:"opcode"`
	MessageContent *MessageContent `json:"message_content"`
}

type Transaction struct {
	Hash    string    `json:"hash"`
	Now     int64     `json:"now"`
	InMsg   *Message  `json:"in_msg"`
	OutMsgs []Message `json:"out_msgs"`
}

type transactionsResponse struct {
	Transactions []Transaction `json:"transactions"`
}

// GetTransactions returns the latest transactions of the account, newest first.
func (c *Client) GetTransactions(ctx context.Context, account string, limit int) ([]Transaction, error) {
	var out transactionsResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"account": account,
			"limit":   strconv.Itoa(limit),
			"sort":    "desc",
		}).
		SetResult(&out).
		Get("/transactions")
	if err != nil {
		return nil, fmt.Errorf("toncenter transactions: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("toncenter transactions: %s", resp.Status())
	}
	return out.Transactions, nil
}

// OpcodeUint returns the message opcode as an integer, or 0 when absent.
func (m *Message) OpcodeUint() uint32 {
	if m == nil || m.Opcode == "" {
		return 0
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(m.Opcode, "0x"), 16, 32)
	if err != nil {
		return 0
	}
	return uint32(v)
}
