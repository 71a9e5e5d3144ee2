package rpitop

import (
	"fmt"
	"os"
	"time"

	logger "github.com/multiversx/mx-chain-logger-go"
	"github.com/multiversx/mx-chain-logger-go/file"
)

const (
	defaultLogsPath      = "logs"
	logFilePrefix        = "rpitop"
	logFileLifeSpanInSec = 86400 // 24h
	logFileLifeSpanInMB  = 64
)

// FileLoggingHandler is the log file attached by AttachFileLogger
type FileLoggingHandler interface {
	ChangeFileLifeSpan(newDuration time.Duration, newSizeInMB uint64) error
	Close() error
	IsInterfaceNil() bool
}

// AttachFileLogger sets the log levels and, if required, attaches a log file
// under workingDir
func AttachFileLogger(logLevel string, saveLogFile bool, workingDir string) (FileLoggingHandler, error) {
	err := logger.SetLogLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("%w setting the log level", err)
	}
	if !saveLogFile {
		return nil, nil
	}

	logFile, err := file.NewFileLogging(file.ArgsFileLogging{
		WorkingDir:      workingDir,
		DefaultLogsPath: defaultLogsPath,
		LogFilePrefix:   logFilePrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("%w creating a log file", err)
	}

	err = logFile.ChangeFileLifeSpan(time.Second*time.Duration(logFileLifeSpanInSec), uint64(logFileLifeSpanInMB))
	if err != nil {
		_ = logFile.Close()
		return nil, err
	}

	return logFile, nil
}

// DetachConsoleLogger stops writing logs to stdout, which the terminal UI
// owns while it runs. The returned func restores it.
func DetachConsoleLogger() func() {
	err := logger.RemoveLogObserver(os.Stdout)
	if err != nil {
		return func() {}
	}
	return func() {
		_ = logger.AddLogObserver(os.Stdout, &logger.ConsoleFormatter{})
	}
}
