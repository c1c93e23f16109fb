package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/writer"
	"go.uber.org/multierr"
)

// LogFiles holds the files a logger writes to.
type LogFiles struct {
	Log   *os.File
	Debug *os.File
}

// Close closes both log files.
func (f *LogFiles) Close() error {
	var err error
	if er := f.Log.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close log file: %w", er))
	}
	if er := f.Debug.Close(); er != nil {
		err = multierr.Append(err, fmt.Errorf("failed to close debug log file: %w", er))
	}
	return err
}

// ensureDirExists ensures that a directory exists, and if it isn't present, it tries to create a new one.
func ensureDirExists(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return true, nil
	}

	if err := os.MkdirAll(path, 0700); err != nil {
		return false, err
	}
	return true, nil
}

// LogDir returns the directory relative log paths are resolved against:
// ~/.richpad, or the working directory when there is no home directory.
func LogDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", nil
	}

	dir := filepath.Join(homeDir, ".richpad")
	if _, err := ensureDirExists(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// SetupLogger points logger at the configured files: warnings and errors go
// to the log file, everything below to the debug log file. Relative paths are
// resolved against dir. Entries are written as JSON.
func SetupLogger(logger *logrus.Logger, cfg LoggingConfig, dir string) (*LogFiles, error) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	logPath, debugLogPath := cfg.File, cfg.DebugFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(dir, logPath)
	}
	if !filepath.IsAbs(debugLogPath) {
		debugLogPath = filepath.Join(dir, debugLogPath)
	}

	// Open the log file and create if it does not exist.
	logFile, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	// Create a separate log file for verbose logs.
	debugLogFile, err := os.OpenFile(debugLogPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) // skipcq: GSC-G302
	if err != nil {
		_ = logFile.Close()
		return nil, fmt.Errorf("failed to open debug log file: %w", err)
	}

	logger.SetLevel(level)
	logger.SetOutput(io.Discard)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.AddHook(&writer.Hook{
		Writer: logFile,
		LogLevels: []logrus.Level{
			logrus.WarnLevel,
			logrus.ErrorLevel,
			logrus.FatalLevel,
			logrus.PanicLevel,
		},
	})
	logger.AddHook(&writer.Hook{
		Writer: debugLogFile,
		LogLevels: []logrus.Level{
			logrus.TraceLevel,
			logrus.DebugLevel,
			logrus.InfoLevel,
		},
	})

	return &LogFiles{Log: logFile, Debug: debugLogFile}, nil
}
