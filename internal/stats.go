package internal

import (
	"maps"
	"time"
)

// A single goroutine owns the snapshot; the router publishes events and
// moves on. The maps are capped so an adversarial stream of unique domains
// cannot grow memory without bound.
const (
	maxTopDomains   = 10
	maxTopCountries = 5
)

// publish hands one event to the stats aggregator without blocking: when
// the channel is full the event is dropped, never stalling the record loop.
func (a *App) publish(ev StatEvent) {
	if a.StatChan == nil {
		return
	}
	select {
	case a.StatChan <- ev:
	default:
	}
}

// StartStatsAggregator launches the goroutine that owns the stats snapshot.
// It returns a channel that is closed once StatChan has been closed and
// fully drained.
func (a *App) StartStatsAggregator() <-chan struct{} {
	a.Stats = &StatsSnapshot{
		Timestamp:    time.Now(),
		TopDomains:   make(map[string]int64),
		TopCountries: make(map[string]int64),
	}

	start := time.Now()
	done := make(chan struct{})

	go func() {
		defer close(done)
		for ev := range a.StatChan {
			a.applyEvent(ev, start)
		}
	}()

	return done
}

func (a *App) applyEvent(ev StatEvent, start time.Time) {
	a.StatsMu.Lock()
	defer a.StatsMu.Unlock()

	a.Stats.TotalRecords++

	switch ev.Outcome {
	case OutcomeRouted:
		a.Stats.RoutedRecords++
	case OutcomeNoDomain:
		a.Stats.NoDomainSkips++
	case OutcomeBadTimestamp:
		a.Stats.BadTimestamps++
	case OutcomeWriteError:
		a.Stats.WriteErrors++
	}

	if ev.Outcome == OutcomeRouted && ev.Domain != "" {
		if len(a.Stats.TopDomains) < maxTopDomains || a.Stats.TopDomains[ev.Domain] > 0 {
			a.Stats.TopDomains[ev.Domain]++
		}

		if country := a.lookupCountry(ev.SourceIp); country != "" {
			if len(a.Stats.TopCountries) < maxTopCountries || a.Stats.TopCountries[country] > 0 {
				a.Stats.TopCountries[country]++
			}
		}
	}

	if elapsed := time.Since(start).Seconds(); elapsed > 0 {
		a.Stats.RecordsPerSecond = float64(a.Stats.TotalRecords) / elapsed
	}
	a.Stats.Timestamp = time.Now()
}

// SnapshotStats returns a deep copy of the current snapshot, safe to hold
// while the aggregator keeps counting.
func (a *App) SnapshotStats() *StatsSnapshot {
	a.StatsMu.RLock()
	defer a.StatsMu.RUnlock()

	if a.Stats == nil {
		return &StatsSnapshot{}
	}

	snapshot := *a.Stats

	snapshot.TopDomains = make(map[string]int64)
	maps.Copy(snapshot.TopDomains, a.Stats.TopDomains)

	snapshot.TopCountries = make(map[string]int64)
	maps.Copy(snapshot.TopCountries, a.Stats.TopCountries)

	return &snapshot
}
