// =============================================================================
// UCaaS Import Generator - Output File Manager
// =============================================================================
//
// File-system plumbing for the generator: output directory handling, export
// file writing, and the per-run summary log. Kept outside internal/ because
// nothing here knows anything about workbooks or provisioning records.
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileManager writes export buffers and run logs under one output directory.
type FileManager struct {
	outputDir string
}

// NewFileManager creates a file manager rooted at the given directory.
func NewFileManager(outputDir string) *FileManager {
	return &FileManager{outputDir: outputDir}
}

// EnsureDirectories creates the output directory if it does not exist.
func (fm *FileManager) EnsureDirectories() error {
	if err := os.MkdirAll(fm.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", fm.outputDir, err)
	}
	return nil
}

// WriteExport writes one export buffer under the output directory and
// returns the full path.
func (fm *FileManager) WriteExport(fileName string, data []byte) (string, error) {
	path := filepath.Join(fm.outputDir, fileName)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// =============================================================================
// RUN SUMMARY
// =============================================================================

// RunSummary contains summary information about one generation run.
type RunSummary struct {
	RunID      string
	SourceFile string
	Customer   string
	Region     string
	StartTime  time.Time
	EndTime    time.Time

	UserRows      int
	EligibleRows  int
	RecordCounts  map[string]int
	CacheHits     int
	CacheRequests int

	OutputFiles []string
}

// WriteRunSummary writes a human-readable summary log named after the run
// ID and returns its path.
func (fm *FileManager) WriteRunSummary(summary RunSummary) (string, error) {
	logName := fmt.Sprintf("run_%s.log", summary.RunID)
	logPath := filepath.Join(fm.outputDir, logName)

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create summary log: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)

	fmt.Fprintf(w, "UCaaS Import Generator - Run Summary\n")
	fmt.Fprintf(w, "================================================================================\n\n")
	fmt.Fprintf(w, "Run Information:\n")
	fmt.Fprintf(w, "  Run ID:     %s\n", summary.RunID)
	fmt.Fprintf(w, "  Source:     %s\n", summary.SourceFile)
	fmt.Fprintf(w, "  Customer:   %s\n", summary.Customer)
	fmt.Fprintf(w, "  Region:     %s\n", summary.Region)
	fmt.Fprintf(w, "  Start Time: %s\n", summary.StartTime.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "  Duration:   %s\n\n", summary.EndTime.Sub(summary.StartTime).String())

	fmt.Fprintf(w, "Statistics:\n")
	fmt.Fprintf(w, "  User Rows:     %d\n", summary.UserRows)
	fmt.Fprintf(w, "  Eligible Rows: %d\n", summary.EligibleRows)
	for _, kind := range []string{
		"Business Group", "Number Block", "Department", "Subscriber",
		"Managed Device", "Intercom Range", "Hunt Group", "Hunt Group Pilot",
	} {
		if n, ok := summary.RecordCounts[kind]; ok {
			fmt.Fprintf(w, "  %-15s %d\n", kind+":", n)
		}
	}
	fmt.Fprintf(w, "  Rate-Center Cache: %d hits / %d requests\n\n",
		summary.CacheHits, summary.CacheRequests)

	if len(summary.OutputFiles) > 0 {
		fmt.Fprintf(w, "Output Files:\n")
		for _, f := range summary.OutputFiles {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}

	fmt.Fprintf(w, "\n================================================================================\n")
	fmt.Fprintf(w, "End of Summary\n")

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush summary log: %w", err)
	}

	return logPath, nil
}

// FileExists reports whether a path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
