package tonaddr

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawAddr = "0:0000000000000000000000000000000000000000000000000000000000000001"

func TestNormalizeRoundTrip(t *testing.T) {
	friendly, err := Normalize(rawAddr)
	require.NoError(t, err)
	assert.NotEqual(t, rawAddr, friendly)

	again, err := Normalize(friendly)
	require.NoError(t, err)
	assert.Equal(t, friendly, again)
}

func TestEqualAcrossForms(t *testing.T) {
	friendly, err := Normalize(rawAddr)
	require.NoError(t, err)

	assert.True(t, Equal(rawAddr, friendly))
	assert.True(t, Equal(friendly, friendly))

	other := fmt.Sprintf("0:%064x", 2)
	assert.False(t, Equal(rawAddr, other))
	assert.False(t, Equal("garbage", friendly))
}

func TestParseAnyInvalid(t *testing.T) {
	_, err := ParseAny("not-an-address")
	assert.Error(t, err)
}
