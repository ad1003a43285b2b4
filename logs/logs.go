package logs

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

var Output *os.File

// InitializeFileLogger redirects the standard logger to logs.txt in the given directory,
// so that log lines don't garble interactive output.
func InitializeFileLogger(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("couldn't create %s directory: %w", dir, err)
	}
	f, err := os.Create(filepath.Join(dir, "logs.txt"))
	if err != nil {
		return fmt.Errorf("couldn't create logs file: %w", err)
	}
	Output = f
	log.SetOutput(Output)
	return nil
}

func CloseLogger() {
	if Output == nil {
		return
	}
	log.SetOutput(os.Stderr)
	Output.Close()
	Output = nil
}
