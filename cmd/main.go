package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"cornscan/config"
	console "cornscan/internal/api"
	"cornscan/internal/container"
	"cornscan/internal/infrastructure/catalog"
	"cornscan/internal/infrastructure/imageio"
	"cornscan/internal/infrastructure/logging"
	"cornscan/internal/infrastructure/vision"
)

const (
	flagModel     = "model"
	flagNames     = "names"
	flagWhitelist = "whitelist"
	flagThreshold = "threshold"
	flagJSON      = "json"
	flagNoColor   = "no-color"
	flagLogLevel  = "log-level"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "cornscan",
		Usage:     "classify a corn leaf photo as MSV, MLN or healthy corn",
		ArgsUsage: "[IMAGE]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagModel, Usage: "path to the ONNX model weights (MODEL_PATH)"},
			&cli.StringFlag{Name: flagNames, Usage: "path to the YAML file with model class names (NAMES_PATH)"},
			&cli.StringFlag{Name: flagWhitelist, Usage: "path to a YAML whitelist of supported diseases (WHITELIST_PATH)"},
			&cli.Float64Flag{Name: flagThreshold, Usage: "minimum detection confidence (CONFIDENCE_THRESHOLD)"},
			&cli.BoolFlag{Name: flagJSON, Usage: "print the result as JSON"},
			&cli.BoolFlag{Name: flagNoColor, Usage: "disable colored output"},
			&cli.StringFlag{Name: flagLogLevel, Usage: "debug, info, warn or error (LOG_LEVEL)"},
		},
		Action: run,
	}
}

func run(c *cli.Context) (err error) {
	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "load config")
	}
	applyFlags(c, cfg)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}

	logger, err := logging.NewLogger("cornscan", cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	whitelist, err := catalog.LoadWhitelist(cfg.WhitelistPath)
	if err != nil {
		return err
	}

	// Модель грузится один раз; без неё работать нечем.
	model, err := vision.NewYOLODetector(vision.Options{
		ModelPath:    cfg.ModelPath,
		NamesPath:    cfg.NamesPath,
		InputSize:    cfg.InputSize,
		Confidence:   cfg.ModelConfidence,
		IoUThreshold: cfg.IoUThreshold,
		Letterbox:    cfg.Letterbox,
	}, logger)
	if err != nil {
		logger.Errorw("failed to load model", "model", cfg.ModelPath, "error", err)
		return errors.Wrap(err, "failed to load model")
	}
	logger.Infow("model loaded", "model", cfg.ModelPath, "whitelist", whitelist.Labels())

	appContainer := container.New(imageio.NewFileLoader(), model, whitelist, cfg.ConfidenceThreshold, logger)
	defer func() {
		err = multierr.Combine(err, appContainer.Close())
	}()

	view := console.NewConsole(c.App.Writer, c.Bool(flagJSON), c.Bool(flagNoColor))
	if err := view.PrintClasses(model.Classes()); err != nil {
		return err
	}

	path := c.Args().First()
	if path == "" {
		path = cfg.DefaultImage
	}

	outcome := appContainer.AnalysisService.AnalyzeImage(c.Context, path)
	return view.PrintOutcome(outcome)
}

// applyFlags переопределяет значения окружения явно заданными флагами.
func applyFlags(c *cli.Context, cfg *config.Config) {
	if c.IsSet(flagModel) {
		cfg.ModelPath = c.String(flagModel)
	}
	if c.IsSet(flagNames) {
		cfg.NamesPath = c.String(flagNames)
	}
	if c.IsSet(flagWhitelist) {
		cfg.WhitelistPath = c.String(flagWhitelist)
	}
	if c.IsSet(flagThreshold) {
		cfg.ConfidenceThreshold = c.Float64(flagThreshold)
	}
	if c.IsSet(flagLogLevel) {
		cfg.LogLevel = c.String(flagLogLevel)
	}
}
