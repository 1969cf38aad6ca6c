package services

import (
	"context"
	"fmt"
	"time"

	"epl-api/packages/core/models"
	"epl-api/packages/core/repository"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// MatchStore is the match persistence the lifecycle and match services need.
type MatchStore interface {
	repository.Store[models.Match]
	ListUnfinished(ctx context.Context) ([]models.Match, error)
	SaveVersioned(ctx context.Context, m *models.Match) (bool, error)
}

// ResolveStatus derives a match status from the wall clock. Finished is terminal,
// and a match is live for the whole closed interval [kickoff, kickoff+d].
func ResolveStatus(kickoff, now time.Time, current models.MatchStatus, d time.Duration) models.MatchStatus {
	if current == models.StatusFinished {
		return models.StatusFinished
	}
	switch {
	case kickoff.Add(d).Before(now):
		return models.StatusFinished
	case !now.Before(kickoff):
		return models.StatusLive
	}
	return models.StatusUpcoming
}

type LifecycleResolver struct {
	matches  MatchStore
	clock    clockwork.Clock
	duration time.Duration
	loc      *time.Location
}

func NewLifecycleResolver(matches MatchStore, clock clockwork.Clock, duration time.Duration, loc *time.Location) *LifecycleResolver {
	if loc == nil {
		loc = time.UTC
	}
	return &LifecycleResolver{
		matches:  matches,
		clock:    clock,
		duration: duration,
		loc:      loc,
	}
}

func (r *LifecycleResolver) Now() time.Time {
	return r.clock.Now().In(r.loc)
}

func (r *LifecycleResolver) Location() *time.Location {
	return r.loc
}

// resolve updates m in memory and reports whether its status changed.
func (r *LifecycleResolver) resolve(m *models.Match) (bool, error) {
	if m.IsFinished && m.Status != models.StatusFinished {
		m.Status = models.StatusFinished
		return true, nil
	}
	kickoff, err := m.Kickoff(r.loc)
	if err != nil {
		return false, err
	}
	next := ResolveStatus(kickoff, r.Now(), m.Status, r.duration)
	if next == m.Status {
		return false, nil
	}
	m.Status = next
	m.IsFinished = next == models.StatusFinished
	return true, nil
}

// Sweep persists every pending status transition and returns how many were written.
func (r *LifecycleResolver) Sweep(ctx context.Context) (int, error) {
	pending, err := r.matches.ListUnfinished(ctx)
	if err != nil {
		return 0, fmt.Errorf("listing unfinished matches: %w", err)
	}

	written := 0
	for i := range pending {
		m := &pending[i]
		from := m.Status
		changed, err := r.resolve(m)
		if err != nil {
			log.Warn().Err(err).Uint("match_id", m.ID).Msg("skipping match with unreadable kickoff")
			continue
		}
		if !changed {
			continue
		}
		ok, err := r.matches.SaveVersioned(ctx, m)
		if err != nil {
			return written, fmt.Errorf("saving match %d: %w", m.ID, err)
		}
		if !ok {
			log.Debug().Uint("match_id", m.ID).Msg("match changed concurrently, transition skipped")
			continue
		}
		written++
		log.Info().
			Uint("match_id", m.ID).
			Str("from", string(from)).
			Str("to", string(m.Status)).
			Msg("match status transition")
	}
	return written, nil
}

// Refresh re-resolves a single match before a status-gated mutation. On a lost
// race it reloads the row and tries once more.
func (r *LifecycleResolver) Refresh(ctx context.Context, m *models.Match) error {
	for attempt := 0; attempt < 2; attempt++ {
		changed, err := r.resolve(m)
		if err != nil {
			return err
		}
		if !changed {
			return nil
		}
		ok, err := r.matches.SaveVersioned(ctx, m)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
		fresh, err := r.matches.GetByID(ctx, m.ID)
		if err != nil {
			return storeErr(err, "match")
		}
		*m = *fresh
	}
	return fmt.Errorf("%w: match %d is being modified concurrently", ErrConflict, m.ID)
}
