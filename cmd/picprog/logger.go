package main

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/moffa90/go-picprog/programmer"
)

// logrusLogger feeds the key-value logging of the library packages into
// logrus fields.
type logrusLogger struct {
	entry *logrus.Entry
}

func newLogger(l *logrus.Logger, component string) logrusLogger {
	return logrusLogger{entry: l.WithField("component", component)}
}

func (l logrusLogger) with(kv []interface{}) *logrus.Entry {
	if len(kv) == 0 {
		return l.entry
	}
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[fmt.Sprint(kv[i])] = kv[i+1]
	}
	if len(kv)%2 == 1 {
		fields["extra"] = kv[len(kv)-1]
	}
	return l.entry.WithFields(fields)
}

func (l logrusLogger) Debug(msg string, kv ...interface{}) { l.with(kv).Debug(msg) }
func (l logrusLogger) Info(msg string, kv ...interface{})  { l.with(kv).Info(msg) }
func (l logrusLogger) Warn(msg string, kv ...interface{})  { l.with(kv).Warn(msg) }
func (l logrusLogger) Error(msg string, kv ...interface{}) { l.with(kv).Error(msg) }

var _ programmer.Logger = logrusLogger{}

// configureLogging sets the level from the settings, --verbose and --quiet.
func configureLogging(l *logrus.Logger, level string, verbose, quiet bool) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	switch {
	case quiet:
		lvl = logrus.WarnLevel
	case verbose:
		lvl = logrus.DebugLevel
	}
	l.SetLevel(lvl)
	return nil
}

// progressReporter logs the start of every phase and each further tenth of
// it.
func progressReporter(l *logrus.Logger) programmer.ProgressCallback {
	var phase programmer.Phase
	var step int
	return func(p programmer.Progress) {
		if p.Phase != phase {
			phase, step = p.Phase, 0
			l.WithField("written", p.Written).Infof("%s", p.Phase)
			return
		}
		if s := int(p.Percentage) / 10; s > step {
			step = s
			l.WithFields(logrus.Fields{
				"written": p.Written,
				"elapsed": p.ElapsedTime.Round(time.Millisecond).String(),
			}).Infof("%s %3.0f%%", p.Phase, p.Percentage)
		}
	}
}
