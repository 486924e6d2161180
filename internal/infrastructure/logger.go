package infrastructure

import (
	"io"
	"strings"
	"sync"

	"github.com/krobus00/roostoo-tester/internal/config"
	"github.com/krobus00/roostoo-tester/internal/constant"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 20
	logFileMaxBackups = 2
	logFileMaxAgeDays = 10
)

// ConfigureLogger sets up the global logrus logger. When a log file is
// configured, entries go to a rotating file only so they do not interleave
// with the interactive menu.
func ConfigureLogger(env string, cfg config.LogConfig) error {
	logrus.SetReportCaller(cfg.ShowCaller)

	var formatter logrus.Formatter = &logrus.TextFormatter{}
	if env == constant.ProductionEnvironment {
		formatter = &logrus.JSONFormatter{}
	}
	logrus.SetFormatter(formatter)

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(logLevel)

	if file := strings.TrimSpace(cfg.File); file != "" {
		logrus.SetOutput(io.Discard)
		logrus.AddHook(newFileHook(file, formatter))
	}

	return nil
}

type fileHook struct {
	sync.Mutex
	rotate    *lumberjack.Logger
	formatter logrus.Formatter
}

func newFileHook(filename string, formatter logrus.Formatter) *fileHook {
	return &fileHook{
		rotate: &lumberjack.Logger{
			Filename:   filename,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
		},
		formatter: formatter,
	}
}

func (hook *fileHook) Fire(entry *logrus.Entry) error {
	hook.Lock()
	defer hook.Unlock()

	msg, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	_, err = hook.rotate.Write(msg)
	return err
}

func (hook *fileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}
