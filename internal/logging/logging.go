package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the application-wide logger. It starts with sane defaults so it
// is usable before Init runs (tests, early startup failures).
var Logger = logrus.New()

// Init configures the global logger from the given level and format.
func Init(level, format string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)

	if format == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	Logger.SetOutput(os.Stdout)
}
