package tiles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanSquareTargets(t *testing.T) {
	t.Run("grows in place when all growth directions cost the same", func(t *testing.T) {
		cells := rect(0, 0, 2, 2)
		targets, err := PlanSquareTargets(cells, Square{TopLeft: Cell{0, 0}, Size: 2}, 2)
		require.NoError(t, err)

		assert.ElementsMatch(t, []Cell{{2, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}, targets.AtLevel(1))
		assert.ElementsMatch(t, []Cell{{3, 0}, {3, 1}, {3, 2}, {0, 3}, {1, 3}, {2, 3}, {3, 3}}, targets.AtLevel(2))
		assert.Len(t, targets, 12)
	})

	t.Run("left shift beats diagonal on equal cost", func(t *testing.T) {
		cells := rect(1, 1, 2, 2).Union(NewCoverageSet(Cell{0, 1}, Cell{0, 2}))
		targets, err := PlanSquareTargets(cells, Square{TopLeft: Cell{1, 1}, Size: 2}, 1)
		require.NoError(t, err)
		assert.Equal(t, TargetMap{{0, 3}: 1, {1, 3}: 1, {2, 3}: 1}, targets)
	})

	t.Run("follows the cheapest direction", func(t *testing.T) {
		// covered area above the square makes growing up free
		cells := rect(0, 0, 3, 3)
		targets, err := PlanSquareTargets(cells, Square{TopLeft: Cell{1, 1}, Size: 2}, 1)
		require.NoError(t, err)
		assert.Empty(t, targets)
	})

	t.Run("targets keep their first level", func(t *testing.T) {
		cells := rect(0, 0, 2, 2)
		targets, err := PlanSquareTargets(cells, Square{TopLeft: Cell{0, 0}, Size: 2}, 4)
		require.NoError(t, err)
		assertMonotonic(t, targets, 4)
		for _, c := range targets.AtLevel(1) {
			l, _ := targets.Level(c)
			assert.Equal(t, 1, l)
		}
		for c := range targets {
			assert.False(t, cells.Has(c))
		}
	})

	t.Run("is deterministic", func(t *testing.T) {
		cells := rect(0, 0, 4, 3).Union(rect(-3, 1, 2, 2))
		sq := Square{TopLeft: Cell{0, 0}, Size: 3}
		a, err := PlanSquareTargets(cells, sq, 3)
		require.NoError(t, err)
		b, err := PlanSquareTargets(cells, sq, 3)
		require.NoError(t, err)

		ja, _ := a.MarshalJSON()
		jb, _ := b.MarshalJSON()
		assert.Equal(t, string(ja), string(jb))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		_, err := PlanSquareTargets(rect(0, 0, 2, 2), Square{Size: 2}, 0)
		assert.ErrorIs(t, err, ErrInvalidDepth)

		_, err = PlanSquareTargets(rect(0, 0, 2, 2), Square{}, 1)
		assert.ErrorIs(t, err, ErrInvalidSquare)
	})
}

func TestPlanFrontierTargets(t *testing.T) {
	t.Run("single cell grows in diamonds", func(t *testing.T) {
		targets, err := PlanFrontierTargets(NewCoverageSet(Cell{0, 0}), NewCoverageSet(), 2)
		require.NoError(t, err)

		assert.ElementsMatch(t, []Cell{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}, targets.AtLevel(1))
		assert.ElementsMatch(t, []Cell{
			{-2, 0}, {2, 0}, {0, -2}, {0, 2},
			{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
		}, targets.AtLevel(2))
		assertMonotonic(t, targets, 2)
	})

	t.Run("filling cells count as covered", func(t *testing.T) {
		ring := rect(0, 0, 3, 3)
		ring.Remove(Cell{1, 1})
		targets, err := PlanFrontierTargets(ring, NewCoverageSet(Cell{1, 1}), 1)
		require.NoError(t, err)

		_, targeted := targets.Level(Cell{1, 1})
		assert.False(t, targeted)
		assert.Len(t, targets, 12)
	})

	t.Run("empty cluster stops immediately", func(t *testing.T) {
		targets, err := PlanFrontierTargets(NewCoverageSet(), NewCoverageSet(), 5)
		require.NoError(t, err)
		assert.Empty(t, targets)
	})

	t.Run("rejects bad depth", func(t *testing.T) {
		_, err := PlanFrontierTargets(NewCoverageSet(Cell{0, 0}), nil, -1)
		assert.ErrorIs(t, err, ErrInvalidDepth)
	})
}

// assertMonotonic checks that levels stay within [1, depth] and that every
// level below the deepest one present is populated.
func assertMonotonic(t *testing.T, targets TargetMap, depth int) {
	t.Helper()
	max := targets.MaxLevel()
	assert.LessOrEqual(t, max, depth)
	for level := 1; level <= max; level++ {
		assert.NotEmpty(t, targets.AtLevel(level), "level %d empty", level)
	}
	total := 0
	for level := 1; level <= max; level++ {
		total += len(targets.AtLevel(level))
	}
	assert.Equal(t, len(targets), total)
}
