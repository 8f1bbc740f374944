// Command empdash renders the employee analytics dashboard to the terminal
// or as JSON/YAML.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/okian/empdash/internal/adapters/render"
	"github.com/okian/empdash/internal/adapters/repository"
	app "github.com/okian/empdash/internal/app"
	"github.com/okian/empdash/internal/config"
	"github.com/okian/empdash/internal/domain/aggregate"
	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/internal/domain/enrich"
	"github.com/okian/empdash/internal/domain/report"
	"github.com/okian/empdash/pkg/logger"
	"github.com/okian/empdash/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		os.Stderr.WriteString("empdash: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// cliFlags holds flag values; only flags that were passed override config.
type cliFlags struct {
	configFile string
	tier       string
	cfg        *config.Config
}

func newFlagSet(stderr io.Writer) (*flag.FlagSet, *cliFlags) {
	fl := &cliFlags{cfg: config.New()}
	c := fl.cfg

	fs := flag.NewFlagSet("empdash", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&fl.configFile, "config", "", "YAML config file (overrides "+config.EnvConfig+")")
	fs.StringVar(&c.Dataset, "dataset", c.Dataset, "Employee dataset (.json, .yaml, .csv); empty uses the embedded sample")
	fs.IntVar(&c.CurrentYear, "year", c.CurrentYear, "Reference year for tenure (0: current year)")
	fs.StringVar(&c.TenurePolicy, "tenure-policy", c.TenurePolicy, "Same-year hires: clamp or reject")
	fs.StringVar(&c.View, "view", c.View, "Sections to show: all, grid or analytics")
	fs.StringVar(&c.Format, "format", c.Format, "Output format: table, json or yaml")
	fs.StringVar(&c.Theme, "theme", c.Theme, "Palette: light or dark")
	fs.BoolVar(&c.Color, "color", c.Color, "Colour tier bands with ANSI escapes")
	fs.IntVar(&c.PageSize, "page-size", c.PageSize, "Grid rows per page")
	fs.IntVar(&c.Page, "page", c.Page, "Grid page (1-based)")
	fs.IntVar(&c.TopN, "top", c.TopN, "Leaderboard size")
	fs.StringVar(&c.TopField, "top-field", c.TopField, "Leaderboard field (salary, performanceRating, projectsCompleted, efficiencyScore, promotionScore, costEfficiency)")
	fs.StringVar(&c.SortBy, "sort-by", c.SortBy, "Grid sort column (name, email, department, position, location, projectsCompleted, salary)")
	fs.BoolVar(&c.SortDesc, "sort-desc", c.SortDesc, "Sort the grid in descending order")
	fs.StringVar(&c.Department, "department", c.Department, "Only include this department")
	fs.StringVar(&fl.tier, "tier", "", "Only include this tier (Elite, Strong, Average, Low)")
	fs.BoolVar(&c.ActiveOnly, "active-only", c.ActiveOnly, "Only include active employees")
	fs.BoolVar(&c.Watch, "watch", c.Watch, "Re-render whenever the dataset file changes")
	fs.StringVar(&c.MetricsFile, "metrics-file", c.MetricsFile, "Write Prometheus metrics here on exit")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "Log format: text or json")
	return fs, fl
}

// applyFlags copies explicitly passed flags onto cfg.
func applyFlags(fs *flag.FlagSet, fl *cliFlags, cfg *config.Config) {
	src := fl.cfg
	setters := map[string]func(){
		"dataset":       func() { cfg.Dataset = src.Dataset },
		"year":          func() { cfg.CurrentYear = src.CurrentYear },
		"tenure-policy": func() { cfg.TenurePolicy = src.TenurePolicy },
		"view":          func() { cfg.View = src.View },
		"format":        func() { cfg.Format = src.Format },
		"theme":         func() { cfg.Theme = src.Theme },
		"color":         func() { cfg.Color = src.Color },
		"page-size":     func() { cfg.PageSize = src.PageSize },
		"page":          func() { cfg.Page = src.Page },
		"top":           func() { cfg.TopN = src.TopN },
		"top-field":     func() { cfg.TopField = src.TopField },
		"sort-by":       func() { cfg.SortBy = src.SortBy },
		"sort-desc":     func() { cfg.SortDesc = src.SortDesc },
		"department":    func() { cfg.Department = src.Department },
		"active-only":   func() { cfg.ActiveOnly = src.ActiveOnly },
		"watch":         func() { cfg.Watch = src.Watch },
		"metrics-file":  func() { cfg.MetricsFile = src.MetricsFile },
		"log-level":     func() { cfg.LogLevel = src.LogLevel },
		"log-format":    func() { cfg.LogFormat = src.LogFormat },
	}
	fs.Visit(func(f *flag.Flag) {
		if set, ok := setters[f.Name]; ok {
			set()
		}
	})
}

// buildQuery turns configuration into a dashboard query.
func buildQuery(cfg *config.Config, tier string) (report.Query, error) {
	view, err := report.ParseView(cfg.View)
	if err != nil {
		return report.Query{}, err
	}
	field, err := aggregate.FieldByName(cfg.TopField)
	if err != nil {
		return report.Query{}, err
	}
	sortBy, err := aggregate.ColumnByName(cfg.SortBy)
	if err != nil {
		return report.Query{}, err
	}
	filter := aggregate.Filter{Department: cfg.Department, ActiveOnly: cfg.ActiveOnly}
	if tier != "" {
		filter.Tier, err = parseTier(tier)
		if err != nil {
			return report.Query{}, err
		}
	}
	return report.Query{
		View:       view,
		Filter:     filter,
		Page:       cfg.Page,
		PageSize:   cfg.PageSize,
		TopN:       cfg.TopN,
		TopField:   field,
		Sort:       sortBy,
		Descending: cfg.SortDesc,
	}, nil
}

func parseTier(s string) (employee.Tier, error) {
	for _, t := range employee.Tiers() {
		if strings.EqualFold(string(t), strings.TrimSpace(s)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// run loads configuration, renders the dashboard once and, with watch
// enabled, again after every dataset change until ctx is cancelled.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Logs go to stderr so stdout carries only the dashboard.
	if err := logger.Init(logger.WithOutput(stderr)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	fs, fl := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	// Load configuration (defaults -> optional file -> env -> flags)
	cfg, err := config.Load(ctx, config.WithFile(fl.configFile))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFlags(fs, fl, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(stderr), logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Named("empdash")
	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	policy, err := enrich.ParseTenurePolicy(cfg.TenurePolicy)
	if err != nil {
		return err
	}
	query, err := buildQuery(cfg, fl.tier)
	if err != nil {
		return err
	}
	theme, err := render.ParseTheme(cfg.Theme)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	renderer, err := render.New(format, theme, render.WithColor(cfg.Color), render.WithIndent(true))
	if err != nil {
		return err
	}

	var svc *app.Service
	svc = app.New(
		app.WithLogger(log),
		app.WithDataset(cfg.Dataset),
		app.WithCurrentYear(cfg.CurrentYear),
		app.WithTenurePolicy(policy),
		app.WithReloadHook(func(ctx context.Context, _ *repository.Snapshot) {
			if err := svc.Render(ctx, stdout, renderer, query); err != nil {
				log.Error(ctx, "render after reload failed", logger.Error(err))
			}
		}),
	)
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}
	defer svc.Stop()

	if err := svc.Render(ctx, stdout, renderer, query); err != nil {
		return err
	}

	if cfg.Watch {
		log.Info(ctx, "watching dataset; press Ctrl+C to stop", logger.String("dataset", cfg.Dataset))
		if err := svc.Watch(ctx); err != nil {
			return err
		}
	}

	if cfg.MetricsFile != "" {
		if err := writeMetrics(cfg.MetricsFile); err != nil {
			return err
		}
		log.Info(ctx, "metrics written", logger.String("path", cfg.MetricsFile))
	}
	return nil
}

func writeMetrics(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	if err := metrics.WriteText(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
