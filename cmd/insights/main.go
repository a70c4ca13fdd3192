package main

import (
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"

	"github.com/Sunilyadav03/Shopify-Insights/internal/config"
	"github.com/Sunilyadav03/Shopify-Insights/internal/feed"
	"github.com/Sunilyadav03/Shopify-Insights/internal/pipeline"
	"github.com/Sunilyadav03/Shopify-Insights/internal/report"
	"github.com/Sunilyadav03/Shopify-Insights/internal/sink"
)

const defaultConfigPath = "config.json"

var log = logging.MustGetLogger("log")

// InitLogger Receives the log level to be set in go-logging as a string. This method
// parses the string and set the level to the logger. If the level string is not
// valid an error is returned
func InitLogger(logLevel string) error {
	baseBackend := logging.NewLogBackend(os.Stdout, "", 0)
	format := logging.MustStringFormatter(
		`%{time:2006-01-02 15:04:05} %{level:.5s}     %{message}`,
	)
	backendFormatter := logging.NewBackendFormatter(baseBackend, format)

	backendLeveled := logging.AddModuleLevel(backendFormatter)
	logLevelCode, err := logging.LogLevel(logLevel)
	if err != nil {
		return err
	}
	backendLeveled.SetLevel(logLevelCode, "")

	logging.SetBackend(backendLeveled)
	return nil
}

func main() {
	configPath := defaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	if err := InitLogger(cfg.LogLevel); err != nil {
		log.Fatalf("%s", err)
	}

	log.Debugf("Config: %+v", cfg)

	source, err := buildSource(cfg)
	if err != nil {
		log.Fatalf("Failed to open export source: %v", err)
	}

	builder, err := buildReport(cfg)
	if err != nil {
		log.Fatalf("Failed to set up report: %v", err)
	}

	sinks, err := buildSinks(cfg)
	if err != nil {
		log.Fatalf("Failed to set up outputs: %v", err)
	}

	table, err := pipeline.New(source, builder, sinks).Run()
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	log.Infof("Report %s finished: %d rows (run %s)", table.Name, len(table.Rows), table.Stats.RunID)
	log.Infof("Skipped input: %d malformed lines, %d orphaned children, %d skipped children",
		table.Stats.MalformedLines, table.Stats.OrphanedChildren, table.Stats.SkippedChildren)
}

func buildSource(cfg *config.Config) (feed.LineSource, error) {
	switch cfg.Source {
	case config.SourceFile:
		return feed.NewFileSource(cfg.Input)
	case config.SourceQueue:
		consumer, err := feed.NewConsumer(cfg.InputName+"_insights", cfg.InputName, cfg.MiddlewareAddress)
		if err != nil {
			return nil, err
		}
		return feed.NewQueueSource(consumer), nil
	}
	return nil, fmt.Errorf("unknown source %q", cfg.Source)
}

func buildReport(cfg *config.Config) (report.Builder, error) {
	var opts report.Options

	if cfg.ThresholdsFile != "" {
		t, err := config.LoadThresholds(cfg.ThresholdsFile)
		if err != nil {
			return nil, err
		}
		opts.Thresholds = t
	}

	if cfg.ReferenceDate != "" {
		ref, err := time.Parse(time.RFC3339, cfg.ReferenceDate)
		if err != nil {
			ref, err = time.Parse("2006-01-02", cfg.ReferenceDate)
		}
		if err != nil {
			return nil, fmt.Errorf("invalid reference-date %q", cfg.ReferenceDate)
		}
		opts.ReferenceDate = ref
	}

	return report.NewBuilder(cfg.Report, opts)
}

func buildSinks(cfg *config.Config) ([]sink.Sink, error) {
	var sinks []sink.Sink
	if cfg.OutputCSV != "" {
		sinks = append(sinks, sink.NewCSVSink(cfg.OutputCSV))
	}
	if cfg.OutputDB != "" {
		sinks = append(sinks, sink.NewSQLiteSink(cfg.OutputDB))
	}
	if cfg.OutputName != "" {
		producer, err := feed.NewProducer(cfg.OutputName, cfg.MiddlewareAddress)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink.NewQueueSink(producer))
	}
	return sinks, nil
}
