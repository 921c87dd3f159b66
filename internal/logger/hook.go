package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log bất đồng bộ để file I/O chậm không block request handling.
// Entry được đưa vào channel rồi một goroutine riêng format và ghi ra các writers.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.RWMutex
	closed  bool
	dropped atomic.Int64
}

// NewAsyncHook tạo async hook với danh sách writers.
// bufferSize: kích thước buffer cho log entries (mặc định 1000)
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.processEntries()

	return hook
}

// Levels trả về các log levels mà hook này xử lý
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire không block: channel đầy thì bỏ entry, hook đã đóng thì ghi trực tiếp
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		data, err := format(entry)
		if err != nil {
			return err
		}
		for _, writer := range h.writers {
			_, _ = writer.Write(data)
		}
		return nil
	}

	select {
	case h.entries <- cloneEntry(entry):
	default:
		h.dropped.Add(1)
	}
	return nil
}

// processEntries xử lý log entries trong goroutine riêng, có recover để không làm crash server
func (h *AsyncHook) processEntries() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					// Không dùng logger ở đây vì sẽ tạo vòng lặp
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] Logger goroutine panic recovered: %v\n", r)
					debug.PrintStack()
				}
			}()

			data, err := format(entry)
			if err != nil {
				return
			}
			for _, writer := range h.writers {
				_, _ = writer.Write(data)
			}
		}()
	}
}

// Close đóng hook và đợi tất cả entries được ghi xong
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	close(h.entries)
	h.mu.Unlock()

	h.wg.Wait()
	return nil
}

// Dropped số entry bị bỏ do buffer đầy
func (h *AsyncHook) Dropped() int64 {
	return h.dropped.Load()
}

// cloneEntry sao chép entry; Dup của logrus không giữ Level và Message
func cloneEntry(entry *logrus.Entry) *logrus.Entry {
	dup := entry.Dup()
	dup.Level = entry.Level
	dup.Message = entry.Message
	dup.Caller = entry.Caller
	return dup
}

func format(entry *logrus.Entry) ([]byte, error) {
	if entry.Logger != nil && entry.Logger.Formatter != nil {
		return entry.Logger.Formatter.Format(entry)
	}
	line, err := entry.String()
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}
