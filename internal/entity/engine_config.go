package entity

import (
	"github.com/krobus00/pairsync-service/internal/util"
)

// EngineConfigDocument is the trading engine's persisted configuration. Only
// exchange.pair_whitelist is ever mutated; everything else round-trips
// byte-for-byte-equivalent, including member order.
type EngineConfigDocument struct {
	doc *util.JSONDocument
}

func ParseEngineConfigDocument(data []byte) (*EngineConfigDocument, error) {
	doc, err := util.ParseJSONDocument(data)
	if err != nil {
		return nil, err
	}

	return &EngineConfigDocument{doc: doc}, nil
}

// PairWhitelist returns the currently persisted whitelist. A missing or
// malformed entry reads as empty, which forces a rewrite on the next diff.
func (c *EngineConfigDocument) PairWhitelist() []string {
	pairs, ok := c.doc.StringSliceAt("exchange", "pair_whitelist")
	if !ok {
		return nil
	}

	return pairs
}

func (c *EngineConfigDocument) SetPairWhitelist(pairs []string) error {
	return c.doc.SetStringSlice(pairs, "exchange", "pair_whitelist")
}

// APIServerCredentials returns the engine API credentials embedded in the
// config document. Either value may be empty.
func (c *EngineConfigDocument) APIServerCredentials() (string, string) {
	username, _ := c.doc.StringAt("api_server", "username")
	password, _ := c.doc.StringAt("api_server", "password")

	return username, password
}

func (c *EngineConfigDocument) Encode() []byte {
	return c.doc.Encode()
}
