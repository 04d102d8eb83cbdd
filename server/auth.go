package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"giftvault/server/entity"
)

const initDataHeader = "X-Telegram-Init-Data"

var (
	errInitDataHash  = errors.New("init data hash mismatch")
	errInitDataStale = errors.New("init data is stale")
)

// ValidateInitData checks the Telegram WebApp initData signature
// (HMAC-SHA256 keyed off the bot token) and the auth_date age.
func ValidateInitData(initData, botToken string, maxAge time.Duration) error {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return err
	}
	gotHash := values.Get("hash")
	if gotHash == "" {
		return errInitDataHash
	}
	values.Del("hash")

	pairs := make([]string, 0, len(values))
	for k := range values {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	sort.Strings(pairs)
	checkString := strings.Join(pairs, "\n")

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(checkString))
	expected := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(gotHash)) {
		return errInitDataHash
	}

	if maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return errInitDataStale
		}
		if time.Since(time.Unix(authDate, 0)) > maxAge {
			return errInitDataStale
		}
	}
	return nil
}

// initDataAuth guards mutating endpoints. Disabled when no bot token
// is configured, so local development works without Telegram.
func (s *Server) initDataAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.config.TelegramBotToken == "" {
			c.Next()
			return
		}
		if err := ValidateInitData(c.GetHeader(initDataHeader), s.config.TelegramBotToken, s.config.InitDataMaxAge); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, entity.ErrorResponse{Error: "invalid init data"})
			return
		}
		c.Next()
	}
}
