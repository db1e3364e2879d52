package domain

import "time"

// Config represents the distmap configuration after defaults, the optional
// distmap.yaml, environment overrides and CLI flags have been applied.
type Config struct {
	Service  ServiceConfig
	Map      MapConfig
	Paths    PathsConfig
	Resolver ResolverConfig
	Logging  LoggingConfig
}

type ServiceConfig struct {
	BaseURL string
	// Timeout of zero means the request may block indefinitely.
	Timeout time.Duration
}

type MapConfig struct {
	Color string
}

type PathsConfig struct {
	DataDir     string
	MapFile     string
	CodesFile   string
	MappingFile string
	OutputDir   string
}

type ResolverConfig struct {
	FoldAccents      bool
	SuggestThreshold float64
}

type LoggingConfig struct {
	Level  string
	Format string
}

const DefaultBaseURL = "http://webservice.catalogueoflife.org/col/webservice"

// DefaultConfig provides sane defaults if distmap.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL: DefaultBaseURL,
		},
		Map: MapConfig{Color: "Green"},
		Paths: PathsConfig{
			MapFile:     "map_world.svg",
			CodesFile:   "codes.txt",
			MappingFile: "mapping_loc_country.json",
		},
		Resolver: ResolverConfig{
			SuggestThreshold: 0.75,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
