package whitelist

import (
	"strings"

	"github.com/krobus00/pairsync-service/internal/constant"
)

// ToTradingPair converts a normalized spot symbol into the engine's contract
// notation BASE/QUOTE:SETTLE. Symbols already carrying a settle suffix pass
// through unchanged; a bare token degenerates to SYMBOL/USDT:USDT.
func ToTradingPair(symbol string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if strings.Contains(s, ":") {
		return s
	}
	if base, quote, found := strings.Cut(s, "/"); found {
		return base + "/" + quote + ":" + quote
	}

	return s + "/" + constant.DefaultQuoteCurrency + ":" + constant.DefaultQuoteCurrency
}
