package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// New builds the process-wide logger: JSON in production so log aggregation
// can index dispatch fields, human-readable text everywhere else.
func New(environment string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if environment == "production" {
		log.SetFormatter(&logrus.JSONFormatter{})
		log.SetLevel(logrus.InfoLevel)
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		log.SetLevel(logrus.DebugLevel)
	}

	return log
}
