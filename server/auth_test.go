package server

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testBotToken = "123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11"

func signInitData(values url.Values, botToken string) string {
	pairs := make([]string, 0, len(values))
	for k := range values {
		pairs = append(pairs, k+"="+values.Get(k))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(botToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}

func buildInitData(botToken string, authDate time.Time) string {
	values := url.Values{}
	values.Set("auth_date", fmt.Sprintf("%d", authDate.Unix()))
	values.Set("query_id", "AAHdF6IQAAAAAN0XohDhrOrc")
	values.Set("user", `{"id":42,"first_name":"Alice","username":"alice"}`)
	values.Set("hash", signInitData(values, botToken))
	return values.Encode()
}

func TestValidateInitData(t *testing.T) {
	initData := buildInitData(testBotToken, time.Now())
	require.NoError(t, ValidateInitData(initData, testBotToken, 24*time.Hour))
}

func TestValidateInitDataWrongToken(t *testing.T) {
	initData := buildInitData(testBotToken, time.Now())
	assert.ErrorIs(t, ValidateInitData(initData, "other-token", 24*time.Hour), errInitDataHash)
}

func TestValidateInitDataTampered(t *testing.T) {
	initData := buildInitData(testBotToken, time.Now())
	tampered := strings.Replace(initData, "alice", "mallory", 1)
	assert.ErrorIs(t, ValidateInitData(tampered, testBotToken, 24*time.Hour), errInitDataHash)
}

func TestValidateInitDataStale(t *testing.T) {
	initData := buildInitData(testBotToken, time.Now().Add(-48*time.Hour))
	assert.ErrorIs(t, ValidateInitData(initData, testBotToken, 24*time.Hour), errInitDataStale)
}

func TestValidateInitDataMissingHash(t *testing.T) {
	assert.ErrorIs(t, ValidateInitData("auth_date=1", testBotToken, 0), errInitDataHash)
}
