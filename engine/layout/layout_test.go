package layout

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Chemberlein/ADA-Cosmos/engine/entity"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedInputs(n int) []entity.RankedInput {
	out := make([]entity.RankedInput, n)
	for i := range out {
		out[i] = entity.RankedInput{
			ID:         fmt.Sprintf("token%d", i),
			Ticker:     fmt.Sprintf("T%d", i),
			SizeMetric: float64(1000 * (n - i)),
		}
	}
	return out
}

func seeded() BuilderOption {
	return WithRand(rand.New(rand.NewSource(7)))
}

func TestBuildAssignsRingRadii(t *testing.T) {
	l, err := Build(rankedInputs(10), nil, nil, WithRingGap(30), WithBaseOffset(3), seeded())
	require.NoError(t, err)
	require.Len(t, l.Ranked, 10)

	assert.Equal(t, float32(90), l.Ranked[0].OrbitRadius)
	assert.Equal(t, float32(360), l.Ranked[9].OrbitRadius)
	for i, r := range l.Ranked {
		assert.Equal(t, (3+float32(i))*30, r.OrbitRadius)
		p := r.Position()
		assert.Equal(t, float32(0), p[1])
		assert.InDelta(t, r.OrbitRadius, math32.Hypot(p[0], p[2]), 1e-2)
		assert.GreaterOrEqual(t, r.Angle, float32(0))
		assert.Less(t, r.Angle, 2*math32.Pi)
	}
}

func TestBuildNormalizesSize(t *testing.T) {
	l, err := Build(rankedInputs(4), nil, nil, seeded())
	require.NoError(t, err)

	assert.Equal(t, DefaultMaxNodeSize, l.Ranked[0].Size)
	assert.InDelta(t, 250, l.Ranked[3].Size, 1e-3)
}

func TestBuildZeroMetricsGiveZeroSize(t *testing.T) {
	in := []entity.RankedInput{{ID: "a"}, {ID: "b"}}
	l, err := Build(in, nil, nil, seeded())
	require.NoError(t, err)
	for _, r := range l.Ranked {
		assert.Equal(t, float32(0), r.Size)
	}
}

func TestBuildWithoutHubHasNoHub(t *testing.T) {
	l, err := Build(rankedInputs(3), nil, nil, seeded())
	require.NoError(t, err)

	assert.Nil(t, l.Hub)
	for _, n := range l.Nodes() {
		assert.NotEqual(t, entity.KindHub, n.Kind())
	}
	assert.Len(t, l.Nodes(), 3)
}

func TestBuildAppendsHubAndExplorer(t *testing.T) {
	hub := &entity.HubData{Price: 0.42}
	exp := &entity.ExplorerInput{Address: "addr_test1", Payload: map[string]any{"balance": 1}}

	l, err := Build(rankedInputs(2), hub, exp, seeded())
	require.NoError(t, err)

	nodes := l.Nodes()
	require.Len(t, nodes, 4)
	assert.Equal(t, entity.KindRanked, nodes[0].Kind())
	assert.Equal(t, entity.KindRanked, nodes[1].Kind())
	assert.Equal(t, entity.HubID, nodes[2].ID())
	assert.Equal(t, "explorer-addr_test1", nodes[3].ID())

	assert.InDelta(t, DefaultExplorerRadius, l.Explorer.Position().Len(), 1e-4)
	assert.Same(t, l.Hub, l.Find(entity.HubID))
	assert.Nil(t, l.Find("nope"))
}

func TestBuildSkipsIncompleteExplorer(t *testing.T) {
	l, err := Build(nil, nil, &entity.ExplorerInput{Address: "addr"}, seeded())
	require.NoError(t, err)
	assert.Nil(t, l.Explorer)
	assert.Empty(t, l.Nodes())
}

func TestBuildRejectsDuplicateAndEmptyIDs(t *testing.T) {
	in := rankedInputs(3)
	in[2].ID = in[0].ID
	_, err := Build(in, nil, nil, seeded())
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Build([]entity.RankedInput{{ID: entity.HubID}}, &entity.HubData{}, nil, seeded())
	assert.ErrorIs(t, err, ErrDuplicateID)

	_, err = Build([]entity.RankedInput{{ID: ""}}, nil, nil, seeded())
	assert.ErrorIs(t, err, ErrEmptyID)
}

func TestBuildDoesNotMutateInputs(t *testing.T) {
	in := rankedInputs(3)
	in[0].Metadata = map[string]any{"k": "v"}
	snapshot := fmt.Sprintf("%v", in)

	_, err := Build(in, nil, nil, seeded())
	require.NoError(t, err)
	assert.Equal(t, snapshot, fmt.Sprintf("%v", in))
}

func TestBuildIsDeterministicForSeed(t *testing.T) {
	a, err := Build(rankedInputs(5), nil, nil, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	b, err := Build(rankedInputs(5), nil, nil, WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)
	for i := range a.Ranked {
		assert.Equal(t, a.Ranked[i].Position(), b.Ranked[i].Position())
	}
}

func TestExtent(t *testing.T) {
	l, err := Build(rankedInputs(4), nil, nil, seeded())
	require.NoError(t, err)
	assert.InDelta(t, 6*DefaultRingGap, l.Extent(), 1e-2)
}
