package fixtures

import (
	"testing"

	"epl-api/packages/core/models"

	"github.com/stretchr/testify/assert"
)

func TestRoundRobin(t *testing.T) {
	teams := []models.Team{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}, {ID: 5}, {ID: 6}}
	rounds := roundRobin(teams)
	assert.Len(t, rounds, 10)

	pairs := map[[2]uint]int{}
	for r, round := range rounds {
		playing := map[uint]bool{}
		for _, p := range round {
			assert.NotEqual(t, p[0], p[1])
			assert.False(t, playing[p[0]] || playing[p[1]], "round %d schedules a team twice", r)
			playing[p[0]], playing[p[1]] = true, true
			pairs[p]++
		}
		assert.Len(t, round, 3)
	}
	// every ordered pairing exactly once: home and away against each opponent
	assert.Len(t, pairs, 30)
	for p, n := range pairs {
		assert.Equal(t, 1, n, "%v", p)
	}
}

func TestRoundRobinOddTeams(t *testing.T) {
	rounds := roundRobin([]models.Team{{ID: 1}, {ID: 2}, {ID: 3}})
	assert.Len(t, rounds, 6)
	for _, round := range rounds {
		assert.Len(t, round, 1, "one team rests each round")
	}
}

func TestPositionFor(t *testing.T) {
	assert.Equal(t, "Goalkeeper", positionFor(1))
	assert.Equal(t, "Defender", positionFor(4))
	assert.Equal(t, "Midfielder", positionFor(7))
	assert.Equal(t, "Forward", positionFor(11))
}
