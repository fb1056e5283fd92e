package entity

import (
	"strings"

	"github.com/krobus00/pairsync-service/internal/constant"
)

// Profile is an entitlement record owned by the profile registry, read-only here.
type Profile struct {
	Name                     string   `json:"name"`
	Targets                  []string `json:"targets"`
	TargetsAPIURL            string   `json:"targets_api_url"`
	TargetsAPIOverride       bool     `json:"targets_api_override"`
	TargetsAPIQuote          string   `json:"targets_api_quote"`
	TargetsAPITimeoutSeconds int      `json:"targets_api_timeout_seconds"`
}

// Quote returns the profile's default quote currency, falling back to USDT.
func (p Profile) Quote() string {
	quote := strings.ToUpper(strings.TrimSpace(p.TargetsAPIQuote))
	if quote == "" {
		return constant.DefaultQuoteCurrency
	}

	return quote
}
