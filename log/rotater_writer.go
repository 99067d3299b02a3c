package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// rotatingWriter 按大小或时间切割日志文件，并清理过期文件。
// logrus 会在多个 goroutine 中共用同一个 writer，因此需要加锁。
type rotatingWriter struct {
	mu sync.Mutex

	dir        string
	filePrefix string
	maxAge     time.Duration
	rotateSize int64 // bytes
	rotateTime time.Duration

	file       *os.File
	openedAt   time.Time
	bytesInUse int64
	seq        int
}

func newRotatingWriter(cfg *LoggerConfig, prefix string) (*rotatingWriter, error) {
	w := &rotatingWriter{
		dir:        cfg.Path,
		filePrefix: prefix,
		maxAge:     time.Duration(cfg.MaxAge) * 24 * time.Hour,
		rotateSize: cfg.RotateSize * 1024 * 1024,
		rotateTime: time.Duration(cfg.RotateTime) * time.Hour,
	}
	if err := w.rotate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *rotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shouldRotate(len(p)) {
		if err := w.rotate(); err != nil {
			return 0, err
		}
	}

	n, err := w.file.Write(p)
	w.bytesInUse += int64(n)
	return n, err
}

// Close 关闭当前日志文件
func (w *rotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	err := w.file.Close()
	w.file = nil
	return err
}

func (w *rotatingWriter) shouldRotate(incoming int) bool {
	if w.file == nil {
		return true
	}
	if w.rotateSize > 0 && w.bytesInUse+int64(incoming) > w.rotateSize {
		return true
	}
	return w.rotateTime > 0 && time.Since(w.openedAt) >= w.rotateTime
}

func (w *rotatingWriter) rotate() error {
	if w.file != nil {
		_ = w.file.Close()
	}

	name := w.nextFileName()
	file, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", name, err)
	}

	w.file = file
	w.openedAt = time.Now()
	w.bytesInUse = 0
	w.removeExpired()
	return nil
}

// nextFileName 形如 varwidth_20250402_150405_1.log，同一秒内多次切割用序号区分
func (w *rotatingWriter) nextFileName() string {
	w.seq++
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(w.dir, fmt.Sprintf("%s_%s_%d.log", w.filePrefix, stamp, w.seq))
}

func (w *rotatingWriter) removeExpired() {
	if w.maxAge <= 0 {
		return
	}

	entries, err := os.ReadDir(w.dir)
	if err != nil {
		return
	}

	cutoff := time.Now().Add(-w.maxAge)
	for _, e := range entries {
		if e.IsDir() || !isOwnLogFile(e.Name(), w.filePrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(filepath.Join(w.dir, e.Name()))
		}
	}
}

func isOwnLogFile(name, prefix string) bool {
	return filepath.Ext(name) == ".log" && strings.HasPrefix(name, prefix+"_")
}
