package config

type YAMLFile struct {
	Distmap YAMLConfig `yaml:"distmap"`
}

type YAMLConfig struct {
	Service  YAMLService  `yaml:"service"`
	Map      YAMLMap      `yaml:"map"`
	Paths    YAMLPaths    `yaml:"paths"`
	Resolver YAMLResolver `yaml:"resolver"`
	Logging  YAMLLogging  `yaml:"logging"`
}

type YAMLService struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type YAMLMap struct {
	Color string `yaml:"color"`
}

type YAMLPaths struct {
	DataDir     string `yaml:"data_dir"`
	MapFile     string `yaml:"map_file"`
	CodesFile   string `yaml:"codes_file"`
	MappingFile string `yaml:"mapping_file"`
	OutputDir   string `yaml:"output_dir"`
}

type YAMLResolver struct {
	FoldAccents      *bool    `yaml:"fold_accents"`
	SuggestThreshold *float64 `yaml:"suggest_threshold"`
}

type YAMLLogging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}
