// Package logging points logrus at a file; the terminal belongs to the UI.
package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. An empty file discards
// output. The returned closer releases the file.
func Setup(file, level string) (io.Closer, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	if file == "" {
		log.SetOutput(io.Discard)
		return io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	log.SetOutput(f)
	return f, nil
}
