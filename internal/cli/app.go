package cli

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/infra/catalogue"
	"github.com/aalvaropc/distmap/internal/infra/config"
	"github.com/aalvaropc/distmap/internal/infra/datadir"
	"github.com/aalvaropc/distmap/internal/infra/httpclient"
	"github.com/aalvaropc/distmap/internal/infra/logger"
	"github.com/aalvaropc/distmap/internal/infra/reference"
	"github.com/aalvaropc/distmap/internal/infra/svgmap"
	"github.com/aalvaropc/distmap/internal/ports"
	"github.com/aalvaropc/distmap/internal/usecase"
	"github.com/aalvaropc/distmap/internal/usecase/resolve"
)

type appCtx struct {
	dataDir string

	fetcher  ports.DistributionFetcher
	refs     ports.ReferenceLoader
	renderer ports.MapRenderer
}

func runGenerate(cmd *cobra.Command, f rootFlags, lookupEnv func(string) (string, bool)) error {
	stderr := cmd.ErrOrStderr()

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	cfg, cfgErr := loadConfig(wd, f, cmd.Flags().Changed, lookupEnv)

	log, _ := logger.WithRunID(logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: stderr,
	}))
	if cfgErr != nil {
		log.Error("invalid configuration", "error", cfgErr, "kind", domain.KindOf(cfgErr))
		return cfgErr
	}

	app, err := buildApp(cfg, wd, log, cmd.OutOrStdout())
	if err != nil {
		log.Error("data files unavailable", "error", err, "kind", domain.KindOf(err))
		return err
	}
	log.Debug("data directory", "path", app.dataDir)

	uc := usecase.NewGenerateMap(app.fetcher, app.refs, app.renderer,
		usecase.WithOutputDir(cfg.Paths.OutputDir),
		usecase.WithLogger(log),
		usecase.WithResolveOptions(
			resolve.WithAccentFolding(cfg.Resolver.FoldAccents),
			resolve.WithSuggestThreshold(cfg.Resolver.SuggestThreshold),
		),
	)

	res, err := uc.Execute(cmd.Context(), usecase.GenerateMapInput{
		OrganismID: f.id,
		Color:      cfg.Map.Color,
		OutPath:    f.out,
	})
	if err != nil {
		logFailure(log, f.id, res, err)
		return err
	}

	// The document itself went to stdout; keep it clean.
	if !f.quiet && f.out != svgmap.StdoutPath {
		printSummary(cmd.OutOrStdout(), DefaultTheme(), res)
	}
	return nil
}

// loadConfig applies defaults < config file < .env/environment < flags.
func loadConfig(wd string, f rootFlags, changed func(string) bool, lookupEnv func(string) (string, bool)) (domain.Config, error) {
	cfg, err := config.Load(config.Options{
		File:      f.configPath,
		Dir:       wd,
		LookupEnv: lookupEnv,
	})
	if err != nil {
		return cfg, err
	}

	values := map[string]string{}
	set := func(flag, key, value string) {
		if changed(flag) {
			values[key] = value
		}
	}
	set("color", config.EnvColor, f.color)
	set("data-dir", config.EnvDataDir, f.dataDir)
	set("base-url", config.EnvBaseURL, f.baseURL)
	set("timeout", config.EnvTimeout, f.timeout)
	set("fold-accents", config.EnvFoldAccents, strconv.FormatBool(f.foldAccents))
	set("log-level", config.EnvLogLevel, f.logLevel)
	set("log-format", config.EnvLogFormat, f.logFormat)

	return config.ApplyFlags(cfg, values)
}

func buildApp(cfg domain.Config, wd string, log *slog.Logger, stdout io.Writer) (*appCtx, error) {
	files := datadir.Files{
		Map:     cfg.Paths.MapFile,
		Codes:   cfg.Paths.CodesFile,
		Mapping: cfg.Paths.MappingFile,
	}

	dir, err := resolveDataDir(cfg.Paths.DataDir, wd, datadir.NewFinder(files))
	if err != nil {
		return nil, err
	}
	if err := datadir.Check(dir, files); err != nil {
		return nil, err
	}

	exec := httpclient.NewExecutor(httpclient.WithTimeout(cfg.Service.Timeout))

	return &appCtx{
		dataDir: dir,
		fetcher: catalogue.New(cfg.Service.BaseURL,
			catalogue.WithExecutor(exec),
			catalogue.WithLogger(log),
		),
		refs: reference.NewLoader(dir,
			reference.WithCodesFile(files.Codes),
			reference.WithMappingFile(files.Mapping),
		),
		renderer: svgmap.NewRenderer(dataPath(dir, files.Map), svgmap.WithStdout(stdout)),
	}, nil
}

func resolveDataDir(configured, wd string, locator ports.DataLocator) (string, error) {
	d := strings.TrimSpace(configured)
	if d != "" {
		abs, err := filepath.Abs(d)
		if err != nil {
			return "", &domain.OpError{
				Op:   "cli.data_dir",
				Kind: domain.KindInvalidConfig,
				Path: d,
				Err:  err,
			}
		}
		return abs, nil
	}
	return locator.FindDataDir(wd)
}

func dataPath(dir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

func logFailure(log *slog.Logger, organismID string, res usecase.GenerateMapResult, err error) {
	switch {
	case errors.Is(err, domain.ErrNoLocations):
		log.Error("no sampling locations recorded", "organism", res.OrganismName, "id", organismID)
	case isCatalogueError(err):
		log.Error("error downloading data from Catalogue of Life",
			"id", organismID,
			"error", err,
			"kind", domain.KindOf(err),
		)
	default:
		log.Error("map generation failed", "id", organismID, "error", err, "kind", domain.KindOf(err))
	}
}

func isCatalogueError(err error) bool {
	var oe *domain.OpError
	return errors.As(err, &oe) && strings.HasPrefix(oe.Op, "catalogue.")
}
