package audio

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vodila/vodila/internal/cards"
)

func audioCard(id int) cards.Card {
	return cards.Card{ID: id, HasAudio: true, AudioURL: "/audio/rule.wav"}
}

func loadedQueue(t *testing.T, list ...cards.Card) *Queue {
	t.Helper()
	q := NewQueue(rand.New(rand.NewPCG(1, 2)))
	gen := q.BeginLoad()
	require.True(t, q.Loaded(gen, list))
	return q
}

func TestLoaded_FiltersPlayable(t *testing.T) {
	q := loadedQueue(t,
		audioCard(1),
		cards.Card{ID: 2, HasAudio: true},
		cards.Card{ID: 3, AudioURL: "/a.wav"},
		audioCard(4),
	)

	assert.Equal(t, StatusReady, q.Status())
	assert.Equal(t, []int{1, 4}, ids(q.Playable()))
	assert.Equal(t, 2, q.Unplayable())
}

func TestStatuses(t *testing.T) {
	q := NewQueue(nil)
	assert.Equal(t, StatusIdle, q.Status())

	gen := q.BeginLoad()
	assert.Equal(t, StatusLoading, q.Status())
	require.True(t, q.Failed(gen, errors.New("HTTP 502")))
	assert.Equal(t, StatusFailed, q.Status())
	assert.Error(t, q.Err())

	gen = q.BeginLoad()
	assert.NoError(t, q.Err())
	require.True(t, q.Loaded(gen, []cards.Card{{ID: 1}}))
	assert.Equal(t, StatusEmpty, q.Status())
	assert.Equal(t, 1, q.Unplayable())
}

func TestLoaded_StaleGeneration(t *testing.T) {
	q := NewQueue(nil)
	old := q.BeginLoad()
	newer := q.BeginLoad()

	assert.False(t, q.Loaded(old, []cards.Card{audioCard(1)}))
	assert.False(t, q.Failed(old, errors.New("late")))
	assert.Equal(t, StatusLoading, q.Status())
	assert.True(t, q.Loaded(newer, []cards.Card{audioCard(2)}))
}

func TestSingle_NoAdvance(t *testing.T) {
	q := loadedQueue(t, audioCard(1), audioCard(2))
	c, ok := q.Select(0)
	require.True(t, ok)
	assert.Equal(t, 1, c.ID)

	_, ok = q.TrackEnded()
	assert.False(t, ok)
	_, idx, _ := q.Current()
	assert.Equal(t, 0, idx)

	_, ok = q.Select(5)
	assert.False(t, ok)
}

func TestSequential_StopsAtEnd(t *testing.T) {
	q := loadedQueue(t, audioCard(1), audioCard(2), audioCard(3))
	c, ok := q.StartSequential(0)
	require.True(t, ok)
	assert.Equal(t, 1, c.ID)

	c, ok = q.TrackEnded()
	require.True(t, ok)
	assert.Equal(t, 2, c.ID)
	c, ok = q.TrackEnded()
	require.True(t, ok)
	assert.Equal(t, 3, c.ID)

	_, ok = q.TrackEnded()
	assert.False(t, ok, "must not wrap to the first track")
	assert.Equal(t, ModeSingle, q.Mode())
	_, idx, _ := q.Current()
	assert.Equal(t, 2, idx)
}

func TestShuffle_PlaysEveryTrackOnce(t *testing.T) {
	list := []cards.Card{audioCard(1), audioCard(2), audioCard(3), audioCard(4), audioCard(5)}
	q := loadedQueue(t, list...)

	first, ok := q.StartShuffle(2)
	require.True(t, ok)
	assert.Equal(t, 3, first.ID)

	played := []int{first.ID}
	for {
		c, ok := q.TrackEnded()
		if !ok {
			break
		}
		played = append(played, c.ID)
	}
	slices.Sort(played)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, played)
	assert.Equal(t, ModeSingle, q.Mode())

	order, pos := q.ShuffleOrder()
	assert.Nil(t, order)
	assert.Equal(t, -1, pos)
}

func TestSetModeSingle_ClearsShuffle(t *testing.T) {
	q := loadedQueue(t, audioCard(1), audioCard(2), audioCard(3))
	_, ok := q.StartShuffle(-1)
	require.True(t, ok)
	order, pos := q.ShuffleOrder()
	assert.Len(t, order, 3)
	assert.Equal(t, 0, pos)

	q.SetMode(ModeSingle)
	order, pos = q.ShuffleOrder()
	assert.Empty(t, order)
	assert.Equal(t, -1, pos)
	_, ok = q.TrackEnded()
	assert.False(t, ok)
}

func TestStartShuffle_Empty(t *testing.T) {
	q := loadedQueue(t, cards.Card{ID: 1})
	_, ok := q.StartShuffle(0)
	assert.False(t, ok)
}

func TestBuildShuffle_Permutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 7))
	for n := 0; n <= 12; n++ {
		for _, start := range []int{-1, 0, n / 2, n - 1, n} {
			order := BuildShuffle(n, start, rng)
			require.Len(t, order, n)

			sorted := slices.Clone(order)
			slices.Sort(sorted)
			for i, v := range sorted {
				assert.Equal(t, i, v)
			}
			if start >= 0 && start < n {
				assert.Equal(t, start, order[0])
			}
		}
	}
}

func TestBuildShuffle_PinnedStartLeavesRestUniform(t *testing.T) {
	// With n=3 and start=0 the remaining two indexes should follow each
	// other in either order about equally often.
	rng := rand.New(rand.NewPCG(3, 4))
	counts := map[[2]int]int{}
	const runs = 6000
	for range runs {
		order := BuildShuffle(3, 0, rng)
		counts[[2]int{order[1], order[2]}]++
	}
	require.Len(t, counts, 2)
	for _, c := range counts {
		assert.InDelta(t, runs/2, c, runs*0.05)
	}
}

func ids(list []cards.Card) []int {
	out := make([]int, len(list))
	for i, c := range list {
		out[i] = c.ID
	}
	return out
}
