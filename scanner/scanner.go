package scanner

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tvm/cell"

	"giftvault/cfg"
	"giftvault/clients/toncenter"
	"giftvault/repo"
	"giftvault/repo/models"
	"giftvault/service"
	"giftvault/tonaddr"
)

// NFT standard opcodes (TEP-62).
const (
	OpTransfer          = 0x5fcc3d14
	OpOwnershipAssigned = 0x05138d91
)

const cleanupInterval = 24 * time.Hour

type TxSource interface {
	GetTransactions(ctx context.Context, account string, limit int) ([]toncenter.Transaction, error)
}

type Notifier interface {
	NotifyDeposit(chatID int64, gift *models.Gift) error
}

// Scanner polls TON Center for transactions of the deposit address and
// credits detected NFT transfers to the owning user.
type Scanner struct {
	config   *cfg.Config
	txs      TxSource
	seen     SeenStore
	svc      service.IGiftService
	notifier Notifier
	deposit  *address.Address
	logger   zerolog.Logger
}

func New(config *cfg.Config, txs TxSource, seen SeenStore, svc service.IGiftService, notifier Notifier, logger zerolog.Logger) (*Scanner, error) {
	deposit, err := tonaddr.ParseAny(config.DepositAddress)
	if err != nil {
		return nil, fmt.Errorf("deposit address: %w", err)
	}
	return &Scanner{
		config:   config,
		txs:      txs,
		seen:     seen,
		svc:      svc,
		notifier: notifier,
		deposit:  deposit,
		logger:   logger,
	}, nil
}

// Run polls until ctx is cancelled. The seen set is cleared once daily.
func (s *Scanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.config.ScanInterval)
	defer ticker.Stop()
	cleanup := time.NewTicker(cleanupInterval)
	defer cleanup.Stop()

	s.logger.Info().
		Str("deposit", s.deposit.String()).
		Dur("interval", s.config.ScanInterval).
		Msg("Deposit scanner started")

	s.ScanOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("Deposit scanner stopped")
			return
		case <-cleanup.C:
			if err := s.seen.Clear(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("Failed to clear seen set")
			} else {
				s.logger.Info().Msg("Cleared seen set")
			}
		case <-ticker.C:
			s.ScanOnce(ctx)
		}
	}
}

// ScanOnce fetches the latest transactions and processes unseen ones.
// Each transaction gets a single attempt; failures are logged and the
// hash is marked seen either way.
func (s *Scanner) ScanOnce(ctx context.Context) {
	txs, err := s.txs.GetTransactions(ctx, s.deposit.String(), s.config.ScanTxLimit)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to fetch transactions")
		return
	}

	for i := range txs {
		tx := &txs[i]
		seen, err := s.seen.Seen(ctx, tx.Hash)
		if err != nil {
			s.logger.Warn().Err(err).Str("tx", tx.Hash).Msg("Seen check failed")
			continue
		}
		if seen {
			continue
		}

		if err := s.processTx(ctx, tx); err != nil {
			s.logger.Warn().Err(err).Str("tx", tx.Hash).Msg("Failed to process transaction")
		}
		if err := s.seen.Mark(ctx, tx.Hash); err != nil {
			s.logger.Warn().Err(err).Str("tx", tx.Hash).Msg("Failed to mark transaction seen")
		}
	}
}

func (s *Scanner) processTx(ctx context.Context, tx *toncenter.Transaction) error {
	msg := s.matchTransfer(tx)
	if msg == nil {
		return nil
	}
	logger := s.logger.With().Str("tx", tx.Hash).Logger()

	sender, err := transferSender(msg)
	if err != nil {
		return fmt.Errorf("transfer sender: %w", err)
	}

	user, err := s.svc.UserByWallet(ctx, sender.String())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			logger.Debug().Str("wallet", sender.String()).Msg("Deposit from unknown wallet")
			return nil
		}
		return err
	}

	nftAddr, err := tonaddr.Normalize(msg.Source)
	if err != nil {
		return fmt.Errorf("nft address: %w", err)
	}

	gift := &models.Gift{
		Name:       "Unknown Gift",
		Address:    nftAddr,
		Source:     models.GiftSourceDeposit,
		TxHash:     tx.Hash,
		ReceivedAt: tx.Now,
	}
	quote, err := s.svc.ResolveNFT(ctx, nftAddr)
	if err != nil {
		logger.Warn().Err(err).Str("nft", nftAddr).Msg("Failed to resolve NFT metadata")
	} else {
		gift.Name = quote.Name
		gift.Model = quote.Model
		gift.Image = quote.Image
		gift.Price = quote.Price
	}

	giftID, err := s.svc.CreditGift(ctx, user.ID, gift)
	if err != nil {
		return fmt.Errorf("credit gift: %w", err)
	}
	logger.Info().
		Str("user", user.ID).
		Str("gift", giftID).
		Str("nft", nftAddr).
		Msg("Credited deposited gift")

	// Notification is best effort.
	if chatID, err := strconv.ParseInt(user.ID, 10, 64); err == nil {
		if err := s.notifier.NotifyDeposit(chatID, gift); err != nil {
			logger.Warn().Err(err).Msg("Failed to send notification")
		}
	}
	return nil
}

// matchTransfer finds a message addressed to the deposit wallet that
// carries an NFT transfer opcode.
func (s *Scanner) matchTransfer(tx *toncenter.Transaction) *toncenter.Message {
	candidates := make([]*toncenter.Message, 0, len(tx.OutMsgs)+1)
	if tx.InMsg != nil {
		candidates = append(candidates, tx.InMsg)
	}
	for i := range tx.OutMsgs {
		candidates = append(candidates, &tx.OutMsgs[i])
	}

	for _, msg := range candidates {
		op := msg.OpcodeUint()
		if op != OpOwnershipAssigned && op != OpTransfer {
			continue
		}
		if !tonaddr.Equal(msg.Destination, s.deposit.String()) {
			continue
		}
		return msg
	}
	return nil
}

// transferSender pulls the sender wallet out of the message body:
// prev_owner for ownership_assigned, response_destination for transfer.
func transferSender(msg *toncenter.Message) (*address.Address, error) {
	if msg.MessageContent == nil || msg.MessageContent.Body == "" {
		return nil, errors.New("empty message body")
	}
	raw, err := base64.StdEncoding.DecodeString(msg.MessageContent.Body)
	if err != nil {
		return nil, fmt.Errorf("body base64: %w", err)
	}
	body, err := cell.FromBOC(raw)
	if err != nil {
		return nil, fmt.Errorf("body boc: %w", err)
	}

	slice := body.BeginParse()
	op, err := slice.LoadUInt(32)
	if err != nil {
		return nil, fmt.Errorf("load opcode: %w", err)
	}
	if _, err := slice.LoadUInt(64); err != nil { // query_id
		return nil, fmt.Errorf("load query_id: %w", err)
	}

	switch op {
	case OpOwnershipAssigned:
		addr, err := slice.LoadAddr()
		if err != nil {
			return nil, fmt.Errorf("load prev_owner: %w", err)
		}
		return addr, nil
	case OpTransfer:
		if _, err := slice.LoadAddr(); err != nil { // new_owner
			return nil, fmt.Errorf("load new_owner: %w", err)
		}
		addr, err := slice.LoadAddr()
		if err != nil {
			return nil, fmt.Errorf("load response_destination: %w", err)
		}
		return addr, nil
	default:
		return nil, fmt.Errorf("unexpected opcode 0x%08x", op)
	}
}
