package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/tnebes/sme/shmap"
)

// newLogger logs to stderr and, when file is set, appends to file as well.
func newLogger(level, file string) (*logrus.Logger, func(), error) {
	logLvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing log level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}

	if file != "" {
		f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		w = io.MultiWriter(os.Stderr, f)
		closeFn = func() { f.Close() }
	}

	log := &logrus.Logger{
		Out: w,
		Formatter: &logrus.TextFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
			FullTimestamp:   true,
			DisableSorting:  true,
		},
		Hooks: make(logrus.LevelHooks),
		Level: logLvl,
	}
	return log, closeFn, nil
}

// editorLogFunc maps the editor's numeric levels onto logrus levels.
func editorLogFunc(log logrus.FieldLogger) shmap.LogFunc {
	return func(level int, format string, param ...interface{}) {
		switch level {
		case 0:
			log.Infof(format, param...)
		case 1:
			log.Debugf(format, param...)
		default:
			log.WithField("level", level).Debugf(format, param...)
		}
	}
}
