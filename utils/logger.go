package utils

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// LogWriter holds the log output file handle so it can be closed on shutdown.
type LogWriter struct {
	fileHandle *os.File
}

// InitLogger configures the standard logrus logger from Config.Logging and
// returns the log writer and the configured logger.
func InitLogger() (*LogWriter, logrus.FieldLogger) {
	logWriter := &LogWriter{}
	logger := logrus.StandardLogger()

	if Config.Logging.OutputLevel != "" {
		level, err := logrus.ParseLevel(Config.Logging.OutputLevel)
		if err != nil {
			logger.Errorf("invalid output log level %v, using default", Config.Logging.OutputLevel)
		} else {
			logger.SetLevel(level)
		}
	}

	output := io.Writer(os.Stdout)
	if Config.Logging.OutputStderr {
		output = os.Stderr
	}

	if Config.Logging.FilePath != "" {
		fileHandle, err := os.OpenFile(Config.Logging.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			logger.Errorf("error opening log file %v: %v", Config.Logging.FilePath, err)
		} else {
			logWriter.fileHandle = fileHandle
			output = io.MultiWriter(output, fileHandle)
		}
	}

	logger.SetOutput(output)

	return logWriter, logger
}

func (lw *LogWriter) Dispose() {
	if lw.fileHandle != nil {
		lw.fileHandle.Close()
		lw.fileHandle = nil
	}
}
