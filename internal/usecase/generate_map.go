package usecase

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/distmap/internal/domain"
	"github.com/aalvaropc/distmap/internal/ports"
	"github.com/aalvaropc/distmap/internal/textnorm"
	"github.com/aalvaropc/distmap/internal/usecase/resolve"
)

type GenerateMapInput struct {
	OrganismID string
	Color      string
	// OutPath overrides the name-derived output file when set.
	OutPath string
}

type GenerateMapResult struct {
	OrganismName string
	OutPath      string
	Locations    int
	Countries    []string
	Unresolved   []domain.Unresolved
	Painted      []string
}

type GenerateMap struct {
	fetcher  ports.DistributionFetcher
	refs     ports.ReferenceLoader
	renderer ports.MapRenderer

	resolveOpts []resolve.Option
	outputDir   string
	logger      *slog.Logger
}

type GenerateMapOption func(*GenerateMap)

// WithResolveOptions is passed to the resolver built for each run.
func WithResolveOptions(opts ...resolve.Option) GenerateMapOption {
	return func(uc *GenerateMap) { uc.resolveOpts = append(uc.resolveOpts, opts...) }
}

// WithOutputDir is where name-derived output files go. Defaults to the working directory.
func WithOutputDir(dir string) GenerateMapOption {
	return func(uc *GenerateMap) { uc.outputDir = dir }
}

func WithLogger(l *slog.Logger) GenerateMapOption {
	return func(uc *GenerateMap) { uc.logger = l }
}

func NewGenerateMap(f ports.DistributionFetcher, rl ports.ReferenceLoader, mr ports.MapRenderer, opts ...GenerateMapOption) *GenerateMap {
	uc := &GenerateMap{
		fetcher:  f,
		refs:     rl,
		renderer: mr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Execute runs fetch, resolve and render for one organism. Nothing is
// written unless the organism has at least one recorded location.
func (uc *GenerateMap) Execute(ctx context.Context, in GenerateMapInput) (GenerateMapResult, error) {
	dist, err := uc.fetcher.Fetch(ctx, in.OrganismID)
	if err != nil {
		return GenerateMapResult{}, err
	}

	res := GenerateMapResult{
		OrganismName: dist.OrganismName,
		Locations:    len(dist.Locations),
	}
	if len(dist.Locations) == 0 {
		return res, &domain.OpError{
			Op:   "usecase.generate_map",
			Kind: domain.KindEmpty,
			Path: in.OrganismID,
			Err:  domain.ErrNoLocations,
		}
	}
	uc.logger.Debug("distribution fetched", "organism", dist.OrganismName, "locations", len(dist.Locations))

	codes, err := uc.refs.LoadCodes()
	if err != nil {
		return res, err
	}
	subs, err := uc.refs.LoadSubstitutions()
	if err != nil {
		return res, err
	}

	opts := append([]resolve.Option{resolve.WithLogger(uc.logger)}, uc.resolveOpts...)
	resolution := resolve.New(codes, subs, opts...).Resolve(dist.Locations)
	res.Countries = resolution.Countries.Sorted()
	res.Unresolved = resolution.Unresolved

	res.OutPath = in.OutPath
	if res.OutPath == "" {
		res.OutPath = filepath.Join(uc.outputDir, OutputFileName(dist.OrganismName))
	}

	painted, err := uc.renderer.Render(resolution.Countries, in.Color, res.OutPath)
	if err != nil {
		return res, err
	}
	res.Painted = painted

	uc.logger.Info("map written", "path", res.OutPath, "countries", len(res.Countries), "painted", len(painted))
	return res, nil
}

// OutputFileName derives the default file name from an organism name:
// lower-cased, spaces replaced by underscores, ".svg" appended.
func OutputFileName(organismName string) string {
	return strings.ReplaceAll(textnorm.Lower(organismName), " ", "_") + ".svg"
}
