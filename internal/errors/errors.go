package errors

import (
	"fmt"
	"io"
	"os"

	"github.com/julianstephens/workplan/internal/logger"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Report logs err and writes the formatted message to w
func Report(w io.Writer, err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(w, "%s\n", Format(err))
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		Report(os.Stderr, err)
		os.Exit(1)
	}
}
