package util

import (
	"os"
	"path/filepath"
	"runtime"
)

// GetCurrentDir 返回调用方源文件所在的目录
func GetCurrentDir() string {
	_, file, _, ok := runtime.Caller(1)
	if !ok {
		return "." // fallback
	}
	return filepath.Dir(file)
}

// FileExists 判断 path 是否存在且为普通文件
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
