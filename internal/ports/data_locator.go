package ports

// DataLocator finds the directory holding the bundled map and reference files.
type DataLocator interface {
	FindDataDir(startDir string) (string, error)
}
