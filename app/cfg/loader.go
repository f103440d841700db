package cfg

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Feed definition and output locations
	ConfigPath string `long:"config" env:"CONFIG_PATH" default:"feed.yml" description:"Path to the feed definition file"`
	OutputDir  string `long:"output-dir" env:"OUTPUT_DIR" default:"public" description:"Directory the feed document is published to"`
	FeedFile   string `long:"feed-file" env:"FEED_FILE" default:"funhalf.xml" description:"Feed document file name"`
	DBPath     string `long:"db-path" env:"DB_PATH" default:"data/fhrss.db" description:"Path to the run journal database"`

	// Provider configuration
	YtDlpPath    string `long:"yt-dlp-path" env:"YTDLP_PATH" default:"yt-dlp" description:"Path to the yt-dlp executable"`
	YtDlpTimeout int    `long:"yt-dlp-timeout" env:"YTDLP_TIMEOUT" default:"180" description:"Timeout for yt-dlp invocations in seconds"`

	// Run behavior
	Timezone   string `long:"timezone" env:"TZ" default:"America/Detroit" description:"Operating timezone for dates and timestamps"`
	CutoffTime string `long:"cutoff" env:"CUTOFF_TIME" default:"12:25" description:"Local time (HH:MM) before which a missing link ends the run quietly"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cutoffHour, cutoffMinute, err := parseCutoff(raw.CutoffTime)
	if err != nil {
		return nil, fmt.Errorf("invalid cutoff time %q: %w", raw.CutoffTime, err)
	}

	cfg := &Cfg{
		ConfigPath:   raw.ConfigPath,
		OutputDir:    raw.OutputDir,
		FeedFile:     raw.FeedFile,
		DBPath:       raw.DBPath,
		YtDlpPath:    raw.YtDlpPath,
		YtDlpTimeout: raw.YtDlpTimeout,
		Timezone:     raw.Timezone,
		CutoffTime:   raw.CutoffTime,
		CutoffHour:   cutoffHour,
		CutoffMinute: cutoffMinute,
		Debug:        raw.Debug,
		Version:      GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

func parseCutoff(value string) (int, int, error) {
	hourPart, minutePart, ok := strings.Cut(value, ":")
	if !ok {
		return 0, 0, fmt.Errorf("expected HH:MM")
	}
	hour, err := strconv.Atoi(hourPart)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour %q", hourPart)
	}
	minute, err := strconv.Atoi(minutePart)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute %q", minutePart)
	}
	return hour, minute, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
