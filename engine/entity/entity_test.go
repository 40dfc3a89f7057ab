package entity

import (
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankedPositionOnOrbit(t *testing.T) {
	r := NewRanked(RankedInput{ID: "abc", Ticker: "ABC", SizeMetric: 42}, 0, 10, 90, math32.Pi/2)

	p := r.Position()
	assert.InDelta(t, 0, p[0], 1e-3)
	assert.Equal(t, float32(0), p[1])
	assert.InDelta(t, 90, p[2], 1e-3)
	assert.Equal(t, KindRanked, r.Kind())
	assert.Equal(t, 42.0, r.MarketCap)
}

func TestRankedCopiesMetadata(t *testing.T) {
	meta := map[string]any{"policy": "p1"}
	r := NewRanked(RankedInput{ID: "abc", Metadata: meta}, 0, 1, 90, 0)
	r.Metadata["policy"] = "changed"
	assert.Equal(t, "p1", meta["policy"])
}

func TestHubDefaults(t *testing.T) {
	h := NewHub(HubData{Price: 0.5})
	assert.Equal(t, HubID, h.ID())
	assert.Equal(t, DefaultHubSymbol, h.Data.Symbol)
	assert.Equal(t, HubSize, h.SizeMetric())
	assert.Equal(t, float32(0), h.Position().Len())
}

func TestExplorerAdvanceMovesOnlyXZ(t *testing.T) {
	e := NewExplorer(ExplorerInput{Address: "addr1", Payload: struct{}{}}, 2, 0)
	require.Equal(t, "explorer-addr1", e.ID())

	before := e.Position()
	e.Advance(500 * time.Millisecond)
	after := e.Position()

	assert.InDelta(t, 1.5, e.Angle(), 1e-5)
	assert.NotEqual(t, before, after)
	assert.Equal(t, float32(0), after[1])
	assert.InDelta(t, 2, after.Len(), 1e-4)
}

func TestExplorerInputValid(t *testing.T) {
	var nilInput *ExplorerInput
	assert.False(t, nilInput.Valid())
	assert.False(t, (&ExplorerInput{Address: "a"}).Valid())
	assert.False(t, (&ExplorerInput{Payload: 1}).Valid())
	assert.True(t, (&ExplorerInput{Address: "a", Payload: 1}).Valid())
}

func TestSameID(t *testing.T) {
	h := NewHub(HubData{})
	assert.True(t, SameID(h, NewHub(HubData{Symbol: "X"})))
	assert.False(t, SameID(h, nil))
	assert.False(t, SameID(nil, nil))
}
