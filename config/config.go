package config

import (
	"github.com/go-ini/ini"

	"github.com/xmh1011/go-varwidth/log"
	"github.com/xmh1011/go-varwidth/util"
)

const (
	DefaultMaxBlockValues = 64 * 1024
	DefaultBenchCount     = 1000000
	DefaultBenchSeed      = 1
	DefaultBenchMaxWidth  = 8
)

// Conf 是进程级配置，Load 之前为零值，getter 会回退到默认值
var Conf Config

type ColumnConfig struct {
	MaxBlockValues int `ini:"max_block_values"` // 单个列块最多容纳的值个数
}

type BenchConfig struct {
	Count    int   `ini:"count"`     // 每轮编码的值个数
	Seed     int64 `ini:"seed"`      // 随机数种子
	MaxWidth int   `ini:"max_width"` // 随机宽度上限，取值 1~8
}

type Config struct {
	LogConfig string       `ini:"log_config"` // 日志配置文件路径
	Column    ColumnConfig `ini:"column"`
	Bench     BenchConfig  `ini:"bench"`
}

// Load 解析 ini 配置文件并覆盖 Conf。文件不存在时保留当前配置。
func Load(path string) error {
	if path == "" || !util.FileExists(path) {
		log.Warnf("[config] config file %q not found, using defaults", path)
		return nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		log.Errorf("[config] load %s failed: %s", path, err.Error())
		return err
	}

	var c Config
	if err := cfg.MapTo(&c); err != nil {
		log.Errorf("[config] parse %s failed: %s", path, err.Error())
		return err
	}
	Conf = c
	return nil
}

func GetMaxBlockValues() int {
	if Conf.Column.MaxBlockValues > 0 {
		return Conf.Column.MaxBlockValues
	}
	return DefaultMaxBlockValues
}

func GetBenchCount() int {
	if Conf.Bench.Count > 0 {
		return Conf.Bench.Count
	}
	return DefaultBenchCount
}

func GetBenchSeed() int64 {
	if Conf.Bench.Seed != 0 {
		return Conf.Bench.Seed
	}
	return DefaultBenchSeed
}

// GetBenchMaxWidth 越界的配置值回退到 8
func GetBenchMaxWidth() int {
	if w := Conf.Bench.MaxWidth; w >= 1 && w <= 8 {
		return w
	}
	return DefaultBenchMaxWidth
}

func GetLogConfigPath() string {
	return Conf.LogConfig
}
