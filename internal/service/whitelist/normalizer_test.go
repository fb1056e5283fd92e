package whitelist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSymbols(t *testing.T) {
	out := NormalizeSymbols([]string{" btc/usdt ", "eth:perp", "btcup", "BTC/USDT", "", "  "}, "USDT")

	assert.Equal(t, []string{"BTC/USDT", "BTCUP/USDT", "ETH/USDT"}, out)
}

func TestNormalizeSymbolsQuote(t *testing.T) {
	out := NormalizeSymbols([]string{"btc", "eth/btc"}, "BUSD")

	assert.Equal(t, []string{"BTC/BUSD", "ETH/BTC"}, out)
}

func TestNormalizeSymbolsStripsExchangeSuffix(t *testing.T) {
	out := NormalizeSymbols([]string{"sol/usdt:usdt", "doge:binance:spot"}, "USDT")

	assert.Equal(t, []string{"DOGE/USDT", "SOL/USDT"}, out)
}

func TestNormalizeSymbolsIdempotent(t *testing.T) {
	normalized := NormalizeSymbols([]string{"btc", "ETH/usdt", "sol:perp", "btc"}, "USDT")
	again := NormalizeSymbols(normalized, "USDT")

	assert.Equal(t, normalized, again)
}

func TestNormalizeSymbolsEmptyInput(t *testing.T) {
	assert.Empty(t, NormalizeSymbols(nil, "USDT"))
	assert.Empty(t, NormalizeSymbols([]string{"", "   "}, "USDT"))
}
