package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"

	"github.com/jonboulle/clockwork"
)

type NewsService struct {
	news  repository.Store[models.News]
	clock clockwork.Clock
}

func NewNewsService(news repository.Store[models.News], clock clockwork.Clock) *NewsService {
	return &NewsService{news: news, clock: clock}
}

func newestFirst(items []models.News) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].PublishedDate.After(items[j].PublishedDate)
	})
}

// GetNews lists articles newest first. activeOnly drops inactive or expired ones.
func (s *NewsService) GetNews(ctx context.Context, activeOnly bool) ([]models.News, error) {
	all, err := s.news.List(ctx)
	if err != nil {
		return nil, err
	}
	if activeOnly {
		now := s.clock.Now()
		live := all[:0]
		for _, n := range all {
			if n.IsActive && n.ExpireDate.After(now) {
				live = append(live, n)
			}
		}
		all = live
	}
	newestFirst(all)
	return all, nil
}

func (s *NewsService) GetNewsItem(ctx context.Context, id uint) (*models.News, error) {
	n, err := s.news.GetByID(ctx, id)
	return n, storeErr(err, "news")
}

// SearchNews matches title, subtitle and body. An empty result is NotFound.
func (s *NewsService) SearchNews(ctx context.Context, query string) ([]models.News, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, badRequest("query is required")
	}
	all, err := s.news.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.News, 0)
	for _, n := range all {
		if containsFold(n.Title, query) || containsFold(n.SubTitle, query) || containsFold(n.Body, query) {
			out = append(out, n)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no news matches %q", ErrNotFound, query)
	}
	newestFirst(out)
	return out, nil
}

func (s *NewsService) fill(n *models.News, req models.NewsRequest) error {
	published := req.PublishedDate
	if published.IsZero() {
		published = s.clock.Now()
	}
	if req.ExpireDate.IsZero() {
		return badRequest("expire_date is required")
	}
	if !req.ExpireDate.After(published) {
		return badRequest("expire_date must be after published_date")
	}
	n.Title = strings.TrimSpace(req.Title)
	n.SubTitle = req.SubTitle
	n.Body = req.Body
	n.Image = req.Image
	n.VideoLink = req.VideoLink
	n.PublishedDate = published
	n.ExpireDate = req.ExpireDate
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}
	if n.Title == "" {
		return badRequest("title is required")
	}
	return nil
}

// CreateNews records authorID as the article's author.
func (s *NewsService) CreateNews(ctx context.Context, authorID uint, req models.NewsRequest) (*models.News, error) {
	n := &models.News{UserID: authorID, IsActive: true}
	if err := s.fill(n, req); err != nil {
		return nil, err
	}
	if err := s.news.Create(ctx, n); err != nil {
		return nil, storeErr(err, "news titled "+n.Title)
	}
	return s.GetNewsItem(ctx, n.ID)
}

// UpdateNews is restricted to the article's author.
func (s *NewsService) UpdateNews(ctx context.Context, callerID, id uint, req models.NewsRequest) (*models.News, error) {
	n, err := s.news.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, "news")
	}
	if n.UserID != callerID {
		return nil, fmt.Errorf("%w: only the author can edit this article", ErrForbidden)
	}
	if err := s.fill(n, req); err != nil {
		return nil, err
	}
	n.Author = nil
	if err := s.news.Save(ctx, n); err != nil {
		return nil, storeErr(err, "news titled "+n.Title)
	}
	return s.GetNewsItem(ctx, id)
}

func (s *NewsService) DeleteNews(ctx context.Context, id uint) error {
	return storeErr(s.news.Delete(ctx, id), "news")
}
