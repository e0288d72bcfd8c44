package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the bestiary home directory.
	DefaultDirName = ".bestiary"

	// DatasetsDirName is the subdirectory for extracted datasets.
	DatasetsDirName = "datasets"

	// ReportsDirName is the subdirectory for extraction run reports.
	ReportsDirName = "reports"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the bestiary home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.bestiary).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DatasetsDir returns the directory extracted datasets are written to.
func (d *Dir) DatasetsDir() string {
	return filepath.Join(d.path, DatasetsDirName)
}

// DatasetPath returns the path for a named dataset file.
func (d *Dir) DatasetPath(name string) string {
	return filepath.Join(d.DatasetsDir(), fmt.Sprintf("%s.json", name))
}

// ReportsDir returns the directory extraction reports are written to.
func (d *Dir) ReportsDir() string {
	return filepath.Join(d.path, ReportsDirName)
}

// ReportPath returns the path for a run's report file.
func (d *Dir) ReportPath(runID string) string {
	return filepath.Join(d.ReportsDir(), fmt.Sprintf("report_%s.json", runID))
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	if err := os.MkdirAll(d.DatasetsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create datasets directory: %w", err)
	}
	if err := os.MkdirAll(d.ReportsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create reports directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
