package csp

import "github.com/sirupsen/logrus"

// Log is the package-level structured logger: a single logrus.Logger
// shared across the package rather than a process-global logrus.StandardLogger() — callers embedding this
// package into a larger service can swap it out via SetLogger without
// fighting over the global logger's configuration.
var Log = logrus.New()

// SetLogger replaces the package-level logger, e.g. to route GAC trace
// output into a host application's own logging pipeline.
func SetLogger(l *logrus.Logger) {
	if l != nil {
		Log = l
	}
}

func init() {
	Log.SetLevel(logrus.WarnLevel)
}
