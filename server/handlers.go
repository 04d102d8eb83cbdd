package server

import (
	"errors"
	"net/http"
	"sort"
	"strconv"

	"github.com/gin-gonic/gin"

	"giftvault/clients/tonnel"
	"giftvault/repo"
	"giftvault/repo/models"
	"giftvault/server/entity"
	"giftvault/service"
)

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.svc.GetOrCreateUser(c.Request.Context(), c.Param("id"), c.Query("username"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleLinkWallet(c *gin.Context) {
	var req entity.LinkWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
		return
	}
	user, err := s.svc.LinkWallet(c.Request.Context(), c.Param("id"), req.Wallet)
	if err != nil {
		if errors.Is(err, service.ErrInvalidWallet) {
			c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: err.Error()})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (s *Server) handleListGifts(c *gin.Context) {
	gifts, err := s.svc.ListGifts(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}

	resp := entity.GiftListResponse{Gifts: make([]entity.GiftResponse, 0, len(gifts))}
	for id, gift := range gifts {
		resp.Gifts = append(resp.Gifts, entity.GiftResponse{ID: id, Gift: gift})
	}
	// Push IDs are chronological, so this is oldest first.
	sort.Slice(resp.Gifts, func(i, j int) bool { return resp.Gifts[i].ID < resp.Gifts[j].ID })
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCreditGift(c *gin.Context) {
	var req entity.CreditGiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.ErrorResponse{Error: "invalid request body"})
		return
	}
	gift := &models.Gift{
		Name:    req.Name,
		Model:   req.Model,
		Address: req.Address,
		Price:   req.Price,
		Image:   req.Image,
		Source:  models.GiftSourceManual,
	}
	id, err := s.svc.CreditGift(c.Request.Context(), c.Param("id"), gift)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, entity.CreditGiftResponse{ID: id})
}

func (s *Server) handleWithdrawGift(c *gin.Context) {
	err := s.svc.WithdrawGift(c.Request.Context(), c.Param("id"), c.Param("giftId"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "gift not found"})
			return
		}
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleSearchMarket(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	limit, _ := strconv.Atoi(c.Query("limit"))
	listings, err := s.svc.SearchMarket(c.Request.Context(), tonnel.Filter{
		Name:  c.Query("name"),
		Model: c.Query("model"),
		Page:  page,
		Limit: limit,
	})
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"listings": listings})
}

func (s *Server) handleFloorPrice(c *gin.Context) {
	quote, err := s.svc.FloorPrice(c.Request.Context(), c.Param("name"))
	if err != nil {
		if errors.Is(err, service.ErrNoListing) {
			c.JSON(http.StatusNotFound, entity.ErrorResponse{Error: "no listing found"})
			return
		}
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, quote)
}

func (s *Server) fail(c *gin.Context, err error) {
	s.logger.Warn().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	c.JSON(http.StatusInternalServerError, entity.ErrorResponse{Error: "internal error"})
}
