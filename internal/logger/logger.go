package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	OutputStderr = "stderr"
	OutputStdout = "stdout"
)

// Options select how the cli logs.
type Options struct {
	JSON  bool
	Debug bool
	// Output is stderr, stdout or a file path. Empty means stderr, which keeps
	// quiz prompts and match listings on stdout readable.
	Output string
}

// Config returns the zap config for opts. Console output drops timestamps
// because it shares the terminal with the quiz.
func Config(opts Options) zap.Config {
	level := zapcore.InfoLevel
	encoding := "console"

	if opts.JSON {
		encoding = "json"
	}

	if opts.Debug {
		level = zapcore.DebugLevel
	}

	output := strings.TrimSpace(opts.Output)
	if output == "" {
		output = OutputStderr
	}

	encoderConfig := zapcore.EncoderConfig{
		MessageKey: "step",

		LevelKey:    "level",
		EncodeLevel: zapcore.LowercaseLevelEncoder,

		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	}
	if opts.JSON || output != OutputStderr {
		encoderConfig.TimeKey = "time"
		encoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	}

	return zap.Config{
		Encoding:         encoding,
		Level:            zap.NewAtomicLevelAt(level),
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{OutputStderr},
		EncoderConfig:    encoderConfig,
	}
}

// New builds the cli logger.
func New(opts Options) (*zap.Logger, error) {
	logger, err := Config(opts).Build()
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	return logger, nil
}
