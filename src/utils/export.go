package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ExportToFile creates outFile, along with its directory, and hands it to write.
func ExportToFile(outFile string, write func(io.Writer) error) error {
	if dir := filepath.Dir(outFile); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ExportToFile: failed to create %s: %w", dir, err)
		}
	}

	file, err := os.Create(outFile)
	if err != nil {
		return fmt.Errorf("ExportToFile: failed to create %s: %w", outFile, err)
	}

	if err := write(file); err != nil {
		file.Close()
		return fmt.Errorf("ExportToFile: failed to write %s: %w", outFile, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("ExportToFile: failed to close %s: %w", outFile, err)
	}

	return nil
}
