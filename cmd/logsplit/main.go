package main

import (
	"fmt"
	"os"
	"sync"

	ip2 "github.com/ip2location/ip2location-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"logsplit/internal"
)

var (
	rootDir     string
	statsDbPath string
	geoDbPath   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "logsplit [suffix]",
	Short: "Split a combined virtual-host access log into per-domain monthly logs",
	Long: "Logsplit reads a multi-host access log on stdin, one record per line, and appends\n" +
		"each record to <root>/<second-level-domain>/logs/<YYYY>-<MM><suffix>/<virtual-host>.\n" +
		"The optional suffix argument keeps only its leading run of lowercase letters.",
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&rootDir, "root", "", "destination tree root (default $LOGSPLIT_ROOT or /home/httpd)")
	rootCmd.Flags().StringVar(&statsDbPath, "stats-db", "", "sqlite file receiving periodic stats snapshots")
	rootCmd.Flags().StringVar(&geoDbPath, "geoip-db", "", "IP2Location BIN database for per-country stats")
}

func run(_ *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := internal.LoadConfig()
	if rootDir != "" {
		cfg.RootPrefix = rootDir
	}
	if statsDbPath != "" {
		cfg.StatsDbPath = statsDbPath
	}
	if geoDbPath != "" {
		cfg.GeoDbPath = geoDbPath
	}
	if len(args) > 0 {
		cfg.Suffix = internal.SuffixFromArg(args[0])
	}

	app := &internal.App{
		Config:   cfg,
		Log:      log,
		StatChan: make(chan internal.StatEvent, cfg.StatChanSize),
	}

	if cfg.GeoDbPath != "" {
		db, err := ip2.OpenDB(cfg.GeoDbPath)
		if err != nil {
			log.WithError(err).Error("could not open geo database")
			return fmt.Errorf("open geo database %s: %w", cfg.GeoDbPath, err)
		}
		defer db.Close()
		app.GeoDb = db
	}

	aggDone := app.StartStatsAggregator()

	var writerWg sync.WaitGroup
	writerDone := make(chan struct{})
	if cfg.StatsDbPath != "" {
		writerWg.Add(1)
		go func() {
			defer writerWg.Done()
			app.StartSnapshotWriter(writerDone)
		}()
	}

	app.Run(os.Stdin)

	close(app.StatChan)
	<-aggDone
	close(writerDone)
	writerWg.Wait()

	return nil
}
