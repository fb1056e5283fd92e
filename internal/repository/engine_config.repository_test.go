package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/krobus00/pairsync-service/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineConfigRepositoryLoadSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine-config.json")
	content := `{
    "exchange": {
        "name": "binance",
        "pair_whitelist": [
            "BTC/USDT:USDT"
        ]
    }
}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	repo := NewEngineConfigRepository(path)

	doc, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC/USDT:USDT"}, doc.PairWhitelist())

	require.NoError(t, doc.SetPairWhitelist([]string{"BTC/USDT:USDT", "ETH/USDT:USDT"}))
	require.NoError(t, repo.Save(doc))

	reloaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"BTC/USDT:USDT", "ETH/USDT:USDT"}, reloaded.PairWhitelist())

	// no temp files left behind after the rename
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

func TestEngineConfigRepositoryLoadMissingFile(t *testing.T) {
	repo := NewEngineConfigRepository(filepath.Join(t.TempDir(), "missing.json"))

	_, err := repo.Load()

	var configErr *entity.ConfigIOError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "read", configErr.Op)
}

func TestEngineConfigRepositoryLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine-config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"exchange": `), 0o644))

	repo := NewEngineConfigRepository(path)

	_, err := repo.Load()

	var configErr *entity.ConfigIOError
	require.ErrorAs(t, err, &configErr)
	assert.Equal(t, "parse", configErr.Op)
}
