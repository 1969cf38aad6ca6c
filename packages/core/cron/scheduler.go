package cron

import (
	"fmt"
	"sync"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

type job struct {
	name string
	spec string
	fn   func()
}

// Scheduler runs named jobs on six-field (seconds first) cron specs.
type Scheduler struct {
	cron *cron.Cron
	mu   sync.Mutex
	jobs []job
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}

func NewScheduler() *Scheduler {
	logger := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
}

// Register adds a job. An empty spec disables it.
func (s *Scheduler) Register(name, spec string, fn func()) error {
	if spec == "" {
		log.Info().Str("job", name).Msg("cron job disabled")
		return nil
	}
	j := job{name: name, spec: spec, fn: fn}
	if _, err := s.cron.AddFunc(spec, func() { s.run(j) }); err != nil {
		return fmt.Errorf("scheduling %s (%q): %w", name, spec, err)
	}
	s.mu.Lock()
	s.jobs = append(s.jobs, j)
	s.mu.Unlock()
	return nil
}

func (s *Scheduler) run(j job) {
	log.Debug().Str("job", j.name).Msg("running cron job")
	j.fn()
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	n := len(s.jobs)
	s.mu.Unlock()
	log.Info().Int("jobs", n).Msg("cron scheduler started")
	s.cron.Start()
}

// Stop waits for running jobs to return.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("cron scheduler stopped")
}

// RunNow triggers a registered job synchronously.
func (s *Scheduler) RunNow(name string) bool {
	s.mu.Lock()
	var found *job
	for i := range s.jobs {
		if s.jobs[i].name == name {
			j := s.jobs[i]
			found = &j
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return false
	}
	s.run(*found)
	return true
}
