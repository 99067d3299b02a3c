package log

import (
	"io"
	"os"
	"strings"

	"github.com/go-ini/ini"
	"github.com/sirupsen/logrus"

	"github.com/xmh1011/go-varwidth/util"
)

// LoggerConfig 对应日志配置文件中的 [log] 段
type LoggerConfig struct {
	Level      string `ini:"level"`           // debug/info/warn/error
	Path       string `ini:"log_path"`        // 日志目录，为空时只输出到控制台
	MaxAge     int64  `ini:"log_max_age"`     // 保留天数
	RotateSize int64  `ini:"log_rotate_size"` // 单位：MB
	RotateTime int64  `ini:"log_rotate_time"` // 单位：小时
	FileFormat string `ini:"log_file_format"` // text/json
	TimeFormat string `ini:"log_time_format"`
}

const (
	defaultLogFilePrefix = "varwidth"
	defaultTimeFormat    = "2006-01-02 15:04:05"
	logSection           = "log"
)

var (
	logger *logrus.Logger

	// fileWriter 是当前挂在 logger 上的轮转文件，重新配置时需要关闭
	fileWriter *rotatingWriter

	levelMap = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
	}
)

func init() {
	logger = logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetOutput(os.Stdout)
}

// DefaultConfig 返回默认日志配置，日志目录为本包所在目录
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:      "info",
		Path:       util.GetCurrentDir(),
		FileFormat: "text",
		TimeFormat: defaultTimeFormat,
	}
}

// InitLogger 从 ini 配置文件初始化日志器，configPath 为空时保持默认设置。
func InitLogger(configPath string) error {
	if configPath == "" {
		return nil
	}

	cfg, err := ini.Load(configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := cfg.Section(logSection).MapTo(config); err != nil {
		return err
	}
	return Apply(config)
}

// Apply 按照 config 设置级别、格式和输出
func Apply(config *LoggerConfig) error {
	SetLevel(config.Level)

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = defaultTimeFormat
	}
	switch strings.ToLower(config.FileFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{TimestampFormat: timeFormat})
	default:
		logger.SetFormatter(&logrus.TextFormatter{
			TimestampFormat: timeFormat,
			FullTimestamp:   true,
		})
	}

	if config.Path == "" {
		logger.SetOutput(os.Stdout)
		return closeFileWriter(nil)
	}
	if err := os.MkdirAll(config.Path, 0755); err != nil {
		return err
	}

	w, err := newRotatingWriter(config, defaultLogFilePrefix)
	if err != nil {
		return err
	}
	logger.SetOutput(io.MultiWriter(w, os.Stdout))
	return closeFileWriter(w)
}

// closeFileWriter 关闭旧的轮转文件并记录新的
func closeFileWriter(next *rotatingWriter) error {
	prev := fileWriter
	fileWriter = next
	if prev == nil {
		return nil
	}
	return prev.Close()
}

// SetLevel 设置日志级别，无法识别的级别被忽略
func SetLevel(level string) {
	if l, ok := levelMap[strings.ToLower(level)]; ok {
		logger.SetLevel(l)
	}
}

// SetOutput 替换日志输出，主要用于测试
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

func Info(args ...any) {
	logger.Info(args...)
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
}

func Error(args ...any) {
	logger.Error(args...)
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
}

func Debug(args ...any) {
	logger.Debug(args...)
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
}

func Warn(args ...any) {
	logger.Warn(args...)
}

func Warnf(format string, args ...any) {
	logger.Warnf(format, args...)
}
