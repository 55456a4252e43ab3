package secbuf

import log "github.com/sirupsen/logrus"

var globalLogger = log.New()

// SetLogger overrides the package-level logger, letting callers route
// secbuf's mlock/munlock diagnostics into their own logging pipeline.
func SetLogger(l *log.Logger) { globalLogger = l }
