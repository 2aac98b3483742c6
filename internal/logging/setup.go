package logging

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Setup configures the package-level logger everything else uses
func Setup(level, format string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var formatter log.Formatter
	switch format {
	case "", "text":
		formatter = log.TextFormatter
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	default:
		return fmt.Errorf("invalid log format %q", format)
	}

	log.SetOutput(os.Stderr)
	log.SetLevel(lvl)
	log.SetFormatter(formatter)
	log.SetReportTimestamp(true)
	log.SetTimeFormat(time.DateTime)

	return nil
}
