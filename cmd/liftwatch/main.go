package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/powderlines/liftwatch/internal/config"
	"github.com/powderlines/liftwatch/internal/datastore"
	"github.com/powderlines/liftwatch/internal/feed"
	"github.com/powderlines/liftwatch/internal/logger"
	"github.com/powderlines/liftwatch/internal/monitor"
	"github.com/powderlines/liftwatch/internal/notifier"
	"github.com/powderlines/liftwatch/internal/scheduler"
	"github.com/powderlines/liftwatch/internal/timezone"
	"github.com/rs/zerolog"
)

func main() {
	configFile := flag.String("config", "", "Path to the YAML/JSON configuration file. If not set, searches default locations.")
	configFileAlias := flag.String("c", "", "Alias for -config")

	modeFlag := flag.String("mode", "", "Mode to run: poll or publish")
	modeFlagAlias := flag.String("m", "", "Alias for -mode")
	flag.Parse()

	if *configFile == "" && *configFileAlias != "" {
		*configFile = *configFileAlias
	}
	if *modeFlag == "" && *modeFlagAlias != "" {
		*modeFlag = *modeFlagAlias
	}

	if *modeFlag != "poll" && *modeFlag != "publish" {
		log.Fatalln("[FATAL] -mode argument is required (poll or publish)")
	}

	gCfg, err := config.LoadGlobalConfig(*configFile)
	if err != nil {
		log.Fatalf("[FATAL] Could not load config using path '%s': %v", *configFile, err)
	}
	if err := config.ValidateConfig(gCfg); err != nil {
		log.Fatalf("[FATAL] Invalid configuration: %v", err)
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		log.Fatalf("[FATAL] Could not initialize logger: %v", err)
	}

	ctx := context.Background()
	switch *modeFlag {
	case "poll":
		runPoll(ctx, gCfg, zLogger)
	case "publish":
		runPublish(ctx, gCfg, zLogger)
	}
}

func runPoll(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) {
	resolver, err := timezone.NewResolver(gCfg.ScheduleConfig.Timezone)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not load the configured timezone")
	}

	gate, err := scheduler.NewGate(gCfg.ScheduleConfig, resolver, zLogger)
	if err != nil {
		zLogger.Fatal().Err(err).Msg("Could not build the schedule gate")
	}

	var journal *scheduler.Journal
	if gCfg.ScheduleConfig.JournalDBPath != "" {
		journal, err = scheduler.NewJournal(gCfg.ScheduleConfig.JournalDBPath, zLogger)
		if err != nil {
			// Journaling is observational; a broken journal must not stop polls.
			zLogger.Warn().Err(err).Msg("Poll journal unavailable, continuing without it")
			journal = nil
		} else {
			defer journal.Close()
		}
	}

	history := datastore.NewHistoryStore(gCfg.StorageConfig, gCfg.ScheduleConfig.Timezone, zLogger)
	events := datastore.NewEventStore(gCfg.StorageConfig.EventDir, zLogger)
	client := feed.NewClient(gCfg.FeedConfig, zLogger)

	runner := monitor.NewRunner(gCfg, resolver, gate, journal, client, history, events, zLogger)
	outcome, err := runner.RunOnce(ctx)
	if err != nil {
		zLogger.Error().Err(err).Msg("Poll failed")
		os.Exit(1)
	}

	zLogger.Info().
		Bool("polled", outcome.Polled).
		Bool("event_fired", outcome.EventFired).
		Str("reason", outcome.Reason).
		Msg("Done")
}

func runPublish(ctx context.Context, gCfg *config.GlobalConfig, zLogger zerolog.Logger) {
	events := datastore.NewEventStore(gCfg.StorageConfig.EventDir, zLogger)
	ig := notifier.NewInstagramNotifier(gCfg.NotificationConfig, events, zLogger)

	if err := ig.PublishLatest(ctx); err != nil {
		zLogger.Error().Err(err).Msg("Publish failed")
		os.Exit(1)
	}
}
