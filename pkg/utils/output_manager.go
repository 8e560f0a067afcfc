package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// OutputManager handles output file organization and path management
type OutputManager struct {
	BaseOutputDir string
}

// NewOutputManager creates a new output manager
func NewOutputManager(baseOutputDir string) *OutputManager {
	return &OutputManager{
		BaseOutputDir: baseOutputDir,
	}
}

// ReportDir returns the directory holding a report's exports, creating it
// if needed.
func (om *OutputManager) ReportDir(reportID string) (string, error) {
	reportDir := filepath.Join(om.BaseOutputDir, filepath.Base(reportID))

	if err := os.MkdirAll(reportDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create report output directory: %w", err)
	}

	return reportDir, nil
}

// FilePath generates a full path for an export file of a report
func (om *OutputManager) FilePath(reportID, fileName string) (string, error) {
	reportDir, err := om.ReportDir(reportID)
	if err != nil {
		return "", err
	}

	// Clean the filename to remove any path separators
	return filepath.Join(reportDir, filepath.Base(fileName)), nil
}

// RemoveReport deletes every export of a report. A missing directory is not an error.
func (om *OutputManager) RemoveReport(reportID string) error {
	return os.RemoveAll(filepath.Join(om.BaseOutputDir, filepath.Base(reportID)))
}

// FileType determines the export type based on extension
func (om *OutputManager) FileType(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv":
		return "csv"
	case ".json":
		return "json"
	default:
		return "unknown"
	}
}

// FileSize returns the size of a file in bytes
func (om *OutputManager) FileSize(filePath string) (int64, error) {
	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return 0, err
	}
	return fileInfo.Size(), nil
}
