package memory

import (
	"context"
	"testing"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCrud(t *testing.T) {
	ctx := context.Background()
	s := NewTeamStore()

	a := models.Team{Name: "Arsenal"}
	require.NoError(t, s.Create(ctx, &a))
	assert.Equal(t, uint(1), a.ID)

	dup := models.Team{Name: "ARSENAL"}
	assert.ErrorIs(t, s.Create(ctx, &dup), repository.ErrDuplicate)

	b := models.Team{Name: "Brentford"}
	require.NoError(t, s.Create(ctx, &b))

	b.Name = "arsenal"
	assert.ErrorIs(t, s.Save(ctx, &b), repository.ErrDuplicate)
	b.Name = "Brentford FC"
	require.NoError(t, s.Save(ctx, &b))

	got, err := s.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Brentford FC", got.Name)
	got.Name = "mutated"
	again, _ := s.GetByID(ctx, b.ID)
	assert.Equal(t, "Brentford FC", again.Name, "callers get copies")

	all, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)

	require.NoError(t, s.Delete(ctx, a.ID))
	assert.ErrorIs(t, s.Delete(ctx, a.ID), repository.ErrNotFound)
	_, err = s.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.Save(ctx, &models.Team{ID: 99, Name: "ghost"}), repository.ErrNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestMatchStoreSaveVersioned(t *testing.T) {
	ctx := context.Background()
	s := NewMatchStore()
	m := models.Match{
		HomeTeamID: 1, AwayTeamID: 2,
		MatchDate: time.Date(2025, 8, 16, 0, 0, 0, 0, time.UTC), MatchTime: "15:00",
		Status: models.StatusUpcoming, Version: 1,
	}
	require.NoError(t, s.Create(ctx, &m))

	first, _ := s.GetByID(ctx, m.ID)
	second, _ := s.GetByID(ctx, m.ID)

	first.Status = models.StatusLive
	ok, err := s.SaveVersioned(ctx, first)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, first.Version)

	second.Status = models.StatusFinished
	ok, err = s.SaveVersioned(ctx, second)
	require.NoError(t, err)
	assert.False(t, ok, "stale version loses")

	stored, _ := s.GetByID(ctx, m.ID)
	assert.Equal(t, models.StatusLive, stored.Status)

	stored.Status = models.StatusFinished
	stored.IsFinished = true
	_, err = s.SaveVersioned(ctx, stored)
	require.NoError(t, err)
	pending, err := s.ListUnfinished(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}
