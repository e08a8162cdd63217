// Package logging configures the process logger. Logs go to stderr only:
// stdout carries the protocol stream and must stay clean.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New creates a logger at the given level name. Unknown levels fall back
// to info.
func New(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}
