package poller

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"time"

	"json2sql/internal/db"
	"json2sql/internal/eapi"
	"json2sql/internal/logger"
	"json2sql/internal/models"
)

// CounterSource returns error counters for the connected interfaces.
type CounterSource interface {
	ConnectedInterfacesCounters(ctx context.Context) (map[string]eapi.Counters, error)
}

// Shutter administratively disables an interface.
type Shutter interface {
	TurnOffInterface(ctx context.Context, name string) error
}

// Notifier reports interface degradation, normally to syslog.
type Notifier interface {
	Notify(msg string) error
}

type Poller struct {
	Source   CounterSource
	Store    *db.AristaDB
	Shutter  Shutter  // nil disables shutdown
	Notifier Notifier // may be nil

	Interval  time.Duration
	Threshold int

	Now func() time.Time
}

func (p *Poller) now() time.Time {
	if p.Now != nil {
		return p.Now().UTC()
	}
	return time.Now().UTC()
}

func (p *Poller) notify(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Print(msg)
	if p.Notifier == nil {
		return
	}
	if err := p.Notifier.Notify(msg); err != nil {
		log.Printf("notify failed: %v", err)
	}
}

// advance folds a new reading into the tracking state and reports whether
// the reading counts as an error poll. A streak only spans polls in which
// the interface was reported every time: a first reading, or one after the
// interface was missing, only sets the baseline. A counter that went
// backwards was reset on the switch and also only re-baselines.
func advance(state *models.InterfaceState, c eapi.Counters, seen bool) bool {
	continuous := seen && !state.Absent
	errored := false
	if continuous {
		reset := c.FCS < state.LastFCS || c.Symbol < state.LastSymbol
		errored = !reset && (c.FCS > state.LastFCS || c.Symbol > state.LastSymbol)
	}
	if errored {
		state.ConsecutiveErrors++
	} else {
		state.ConsecutiveErrors = 0
	}
	if seen && state.Absent {
		// left the connected list and came back, so it was brought up again
		state.Disabled = false
	}
	state.Absent = false
	state.LastFCS = c.FCS
	state.LastSymbol = c.Symbol
	return errored
}

// PollOnce reads the counters once, stores a sample per interface and acts
// on interfaces that crossed the error threshold. The samples and states of
// one poll are written in a single transaction.
func (p *Poller) PollOnce(ctx context.Context) error {
	counters, err := p.Source.ConnectedInterfacesCounters(ctx)
	if err != nil {
		return fmt.Errorf("read counters: %w", err)
	}
	states, err := p.Store.LoadStates()
	if err != nil {
		return fmt.Errorf("load states: %w", err)
	}

	names := make([]string, 0, len(counters))
	for name := range counters {
		names = append(names, name)
	}
	sort.Strings(names)

	polledAt := p.now()
	samples := make([]models.ErrorSample, 0, len(names))
	var changed []models.InterfaceState
	var errs []error

	for _, name := range names {
		c := counters[name]
		samples = append(samples, models.ErrorSample{Interface: name, FCS: c.FCS, Symbol: c.Symbol, PolledAt: polledAt})

		state, seen := states[name]
		state.Interface = name
		if advance(&state, c, seen) {
			logger.Debugf("%s: errors increased (fcs=%d symbol=%d), %d consecutive", name, c.FCS, c.Symbol, state.ConsecutiveErrors)
		}

		if p.Threshold > 0 && state.ConsecutiveErrors >= p.Threshold {
			if state.ConsecutiveErrors == p.Threshold {
				p.notify("interface %s degraded: errors increased for %d consecutive polls (fcs=%d symbol=%d)",
					name, state.ConsecutiveErrors, c.FCS, c.Symbol)
			}
			if p.Shutter != nil && !state.Disabled {
				if err := p.Shutter.TurnOffInterface(ctx, name); err != nil {
					errs = append(errs, fmt.Errorf("shutdown %s: %w", name, err))
				} else {
					state.Disabled = true
					p.notify("interface %s shut down after %d consecutive error polls", name, state.ConsecutiveErrors)
				}
			}
		}
		changed = append(changed, state)
	}

	for name, state := range states {
		if _, ok := counters[name]; ok || state.Absent {
			continue
		}
		state.Absent = true
		state.ConsecutiveErrors = 0
		changed = append(changed, state)
	}

	err = p.Store.Transaction(func(tx *db.AristaDB) error {
		for i := range samples {
			if err := tx.InsertRow(&samples[i], db.SamplesTable); err != nil {
				return fmt.Errorf("insert sample %s: %w", samples[i].Interface, err)
			}
		}
		for i := range changed {
			if err := tx.SaveState(&changed[i]); err != nil {
				return fmt.Errorf("save state %s: %w", changed[i].Interface, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Debugf("poll stored %d samples", len(samples))
	return errors.Join(errs...)
}

// Run polls immediately and then every Interval until ctx is cancelled.
// Failed polls are logged and do not stop the loop.
func (p *Poller) Run(ctx context.Context) error {
	if p.Interval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", p.Interval)
	}

	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	for {
		if err := p.PollOnce(ctx); err != nil {
			log.Printf("poll failed: %v", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
