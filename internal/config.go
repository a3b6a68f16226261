package internal

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	RootPrefix       string
	Suffix           string
	StatsDbPath      string
	GeoDbPath        string
	StatChanSize     int
	SnapChanSize     int
	SnapshotInterval time.Duration
}

func LoadConfig() *Config {
	return &Config{
		RootPrefix:       getEnv("LOGSPLIT_ROOT", "/home/httpd"),
		Suffix:           "",
		StatsDbPath:      getEnv("LOGSPLIT_STATS_DB", ""),
		GeoDbPath:        getEnv("LOGSPLIT_GEO_DB", ""),
		StatChanSize:     getEnvInt("LOGSPLIT_STAT_CHAN_SIZE", 1000),
		SnapChanSize:     getEnvInt("LOGSPLIT_SNAP_CHAN_SIZE", 10),
		SnapshotInterval: getEnvDuration("LOGSPLIT_SNAPSHOT_INTERVAL", 1*time.Minute),
	}
}

// SuffixFromArg derives the destination-directory suffix from the optional
// startup argument: the leading run of lowercase ASCII letters, prefixed
// with ".". An empty run yields an empty suffix.
func SuffixFromArg(arg string) string {
	end := 0
	for end < len(arg) && arg[end] >= 'a' && arg[end] <= 'z' {
		end++
	}
	if end == 0 {
		return ""
	}
	return "." + arg[:end]
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
