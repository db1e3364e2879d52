package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/distmap/internal/buildinfo"
)

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.LookupEnv)
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

type rootFlags struct {
	id          string
	color       string
	out         string
	dataDir     string
	configPath  string
	baseURL     string
	timeout     string
	foldAccents bool
	logLevel    string
	logFormat   string
	quiet       bool
}

func newRootCmd(lookupEnv func(string) (string, bool)) *cobra.Command {
	var f rootFlags

	cmd := &cobra.Command{
		Use:   "distmap --id <organism id>",
		Short: "Paint the known distribution of an organism on a world map",
		Long: "distmap downloads the distribution of an organism from the Catalogue of Life,\n" +
			"resolves the reported locations to ISO 3166 country codes and writes an SVG\n" +
			"world map with those countries filled in.",
		Version:      buildinfo.String(),
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// From here on failures are logged by runGenerate.
			cmd.SilenceErrors = true
			return runGenerate(cmd, f, lookupEnv)
		},
	}
	cmd.SetVersionTemplate("{{.Version}}\n")

	fl := cmd.Flags()
	fl.StringVar(&f.id, "id", "", "Catalogue of Life organism id (required)")
	fl.StringVar(&f.color, "color", "Green", "Fill color for countries where the organism occurs")
	fl.StringVarP(&f.out, "out", "o", "", "Output SVG path, - for stdout (default <organism_name>.svg)")
	fl.StringVar(&f.dataDir, "data-dir", "", "Directory holding map_world.svg, codes.txt and mapping_loc_country.json")
	fl.StringVar(&f.configPath, "config", "", "Config file (default ./distmap.yaml when present)")
	fl.StringVar(&f.baseURL, "base-url", "", "Catalogue of Life webservice base URL")
	fl.StringVar(&f.timeout, "timeout", "", "Request timeout, e.g. 30s (default none)")
	fl.BoolVar(&f.foldAccents, "fold-accents", false, "Retry unknown locations with accents removed")
	fl.StringVar(&f.logLevel, "log-level", "", "Log level: debug|info|warn|error")
	fl.StringVar(&f.logFormat, "log-format", "", "Log format: text|json")
	fl.BoolVarP(&f.quiet, "quiet", "q", false, "Do not print the summary")

	_ = cmd.MarkFlagRequired("id")
	return cmd
}
