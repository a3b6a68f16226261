package internal

import (
	"sync"
	"time"

	ip2 "github.com/ip2location/ip2location-go"
	"github.com/sirupsen/logrus"
)

// App wires the stream driver, the router and the optional stats pipeline
// together. One App per process; configuration is immutable after startup.
type App struct {
	Config   *Config
	Log      *logrus.Logger
	GeoDb    *ip2.DB
	StatChan chan StatEvent
	Stats    *StatsSnapshot
	StatsMu  sync.RWMutex // protects Stats
}

// Timestamp holds the calendar fields decoded from a log entry's bracketed
// date signature. Only Year and Month drive the destination path; the rest
// are parsed and kept for extensions.
type Timestamp struct {
	Day    int
	Month  int // 1-12
	Year   int
	Hour   int
	Minute int
	Second int
	Offset int // raw signed decimal, e.g. "+0230" -> 230
}

// Outcome classifies what happened to one input record.
type Outcome int

const (
	OutcomeRouted Outcome = iota
	OutcomeNoDomain
	OutcomeBadTimestamp
	OutcomeWriteError
)

// StatEvent is published once per processed record.
type StatEvent struct {
	Outcome  Outcome
	Domain   string // full tenant identifier, empty when unusable
	SourceIp string // first payload field, best effort
}

// StatsSnapshot is the aggregator's view of the stream so far.
type StatsSnapshot struct {
	Timestamp        time.Time        `json:"timestamp"`
	TotalRecords     int64            `json:"total_records"`
	RoutedRecords    int64            `json:"routed_records"`
	NoDomainSkips    int64            `json:"no_domain_skips"`
	BadTimestamps    int64            `json:"bad_timestamps"`
	WriteErrors      int64            `json:"write_errors"`
	RecordsPerSecond float64          `json:"records_per_second"`
	TopDomains       map[string]int64 `json:"top_domains"`
	TopCountries     map[string]int64 `json:"top_countries"`
}
