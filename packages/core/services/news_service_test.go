package services

import (
	"context"
	"testing"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository/memory"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newsRequest(title string, published time.Time) models.NewsRequest {
	return models.NewsRequest{
		Title:         title,
		SubTitle:      "sub",
		Body:          "body of " + title,
		PublishedDate: published,
		ExpireDate:    published.Add(30 * 24 * time.Hour),
	}
}

func TestCreateNews(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(testNow)
	svc := NewNewsService(memory.NewNewsStore(), clock)

	req := newsRequest("Derby day", time.Time{})
	req.ExpireDate = testNow.Add(time.Hour)
	got, err := svc.CreateNews(ctx, 7, req)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.True(t, got.IsActive)
	assert.True(t, got.PublishedDate.Equal(testNow), "publish date defaults to now")

	_, err = svc.CreateNews(ctx, 7, newsRequest("Derby day", testNow))
	assert.ErrorIs(t, err, ErrConflict)

	bad := newsRequest("Expired already", testNow)
	bad.ExpireDate = testNow.Add(-time.Hour)
	_, err = svc.CreateNews(ctx, 7, bad)
	assert.ErrorIs(t, err, ErrBadRequest)

	noExpiry := newsRequest("Forever", testNow)
	noExpiry.ExpireDate = time.Time{}
	_, err = svc.CreateNews(ctx, 7, noExpiry)
	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestUpdateNewsAuthorOnly(t *testing.T) {
	ctx := context.Background()
	svc := NewNewsService(memory.NewNewsStore(), clockwork.NewFakeClockAt(testNow))
	n, err := svc.CreateNews(ctx, 1, newsRequest("Title race", testNow))
	require.NoError(t, err)

	_, err = svc.UpdateNews(ctx, 2, n.ID, newsRequest("Hijacked", testNow))
	assert.ErrorIs(t, err, ErrForbidden)

	got, err := svc.UpdateNews(ctx, 1, n.ID, newsRequest("Title race tightens", testNow))
	require.NoError(t, err)
	assert.Equal(t, "Title race tightens", got.Title)

	_, err = svc.UpdateNews(ctx, 1, 99, newsRequest("x", testNow))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeleteNews(ctx, n.ID))
	assert.ErrorIs(t, svc.DeleteNews(ctx, n.ID), ErrNotFound)
}

func TestGetAndSearchNews(t *testing.T) {
	ctx := context.Background()
	clock := clockwork.NewFakeClockAt(testNow)
	svc := NewNewsService(memory.NewNewsStore(), clock)

	_, err := svc.CreateNews(ctx, 1, newsRequest("Old story", testNow.Add(-60*24*time.Hour)))
	require.NoError(t, err)
	_, err = svc.CreateNews(ctx, 1, newsRequest("Fresh story", testNow.Add(-time.Hour)))
	require.NoError(t, err)
	hidden := newsRequest("Hidden story", testNow.Add(-2*time.Hour))
	hidden.IsActive = ptr(false)
	_, err = svc.CreateNews(ctx, 1, hidden)
	require.NoError(t, err)

	all, err := svc.GetNews(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Fresh story", all[0].Title)
	assert.Equal(t, "Old story", all[2].Title)

	active, err := svc.GetNews(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 1, "the old story expired and the hidden one is inactive")
	assert.Equal(t, "Fresh story", active[0].Title)

	found, err := svc.SearchNews(ctx, "STORY")
	require.NoError(t, err)
	assert.Len(t, found, 3)

	_, err = svc.SearchNews(ctx, "transfer")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.SearchNews(ctx, " ")
	assert.ErrorIs(t, err, ErrBadRequest)
}
