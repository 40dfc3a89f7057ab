package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Chemberlein/ADA-Cosmos/engine/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	require.Len(t, ds.Ranked, 12)
	assert.Equal(t, "SNEK", ds.Ranked[0].Ticker)
	for i := 1; i < len(ds.Ranked); i++ {
		assert.GreaterOrEqual(t, ds.Ranked[i-1].SizeMetric, ds.Ranked[i].SizeMetric, "ranked order")
	}

	require.NotNil(t, ds.Hub)
	assert.Equal(t, "ADA", ds.Hub.Symbol)
	assert.InDelta(t, 0.4521, ds.Hub.Price, 1e-9)
	assert.Equal(t, int64(61342), ds.Hub.ActiveCount)

	require.NotNil(t, ds.Explorer)
	assert.True(t, ds.Explorer.Valid())
}

func TestDefault_BuildsLayout(t *testing.T) {
	ds, err := Default()
	require.NoError(t, err)

	l, err := layout.Build(ds.Ranked, ds.Hub, ds.Explorer)
	require.NoError(t, err)
	assert.Len(t, l.Ranked, 12)
	assert.NotNil(t, l.Hub)
	assert.NotNil(t, l.Explorer)
}

func TestLoad_File(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)

	require.Len(t, ds.Ranked, 2)
	assert.Equal(t, "token-a", ds.Ranked[0].ID)
	assert.Equal(t, "AAA", ds.Ranked[0].Ticker)
	assert.Equal(t, 1000.0, ds.Ranked[0].SizeMetric)
	assert.Equal(t, 10, ds.Ranked[0].Holders)
	assert.Equal(t, "abc", ds.Ranked[0].Metadata["policy"])

	// missing ticker falls back to the id
	assert.Equal(t, "token-b", ds.Ranked[1].Ticker)

	require.NotNil(t, ds.Hub)
	assert.Equal(t, "TEST", ds.Hub.Symbol)
	assert.Nil(t, ds.Explorer)
}

func TestLoad_EmptyPathUsesDefault(t *testing.T) {
	ds, err := Load("")
	require.NoError(t, err)
	assert.Len(t, ds.Ranked, 12)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDecode_Errors(t *testing.T) {
	t.Run("empty id", func(t *testing.T) {
		_, err := Decode(strings.NewReader("tokens:\n  - ticker: X\n"))
		assert.ErrorIs(t, err, ErrEmptyID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Decode(strings.NewReader("tokens: []\nplanets: 3\n"))
		assert.ErrorContains(t, err, "decode dataset")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := Decode(strings.NewReader("tokens: [\n"))
		assert.Error(t, err)
	})
}

func TestDecode_EmptyDocument(t *testing.T) {
	ds, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, ds.Ranked)
	assert.Nil(t, ds.Hub)
	assert.Nil(t, ds.Explorer)
}

func TestWithExplorerAddress(t *testing.T) {
	ds, err := Load(filepath.Join("testdata", "small.yaml"))
	require.NoError(t, err)

	same := ds.WithExplorerAddress("")
	assert.Same(t, ds, same)

	withExplorer := ds.WithExplorerAddress("addr1override")
	require.NotNil(t, withExplorer.Explorer)
	assert.Equal(t, "addr1override", withExplorer.Explorer.Address)
	assert.True(t, withExplorer.Explorer.Valid())
	assert.Nil(t, ds.Explorer, "original left untouched")

	def, err := Default()
	require.NoError(t, err)
	over := def.WithExplorerAddress("addr1other")
	assert.Equal(t, "addr1other", over.Explorer.Address)
	assert.Equal(t, def.Explorer.Payload, over.Explorer.Payload)
}
