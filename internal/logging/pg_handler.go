package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/subscription-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	pgBatchSize     = 50
	pgFlushInterval = 5 * time.Second
)

// pgSink owns the buffer shared by a PGHandler and every handler derived from it.
type pgSink struct {
	db       *gorm.DB
	mu       sync.Mutex
	buffer   []models.SystemLog
	ticker   *time.Ticker
	done     chan struct{}
	stopped  chan struct{}
	stopOnce sync.Once
	closed   bool
}

// PGHandler is an slog.Handler that batches ERROR+ records into the system_logs table.
type PGHandler struct {
	sink   *pgSink
	attrs  []slog.Attr
	prefix string
}

func NewPGHandler(db *gorm.DB) *PGHandler {
	s := &pgSink{
		db:      db,
		buffer:  make([]models.SystemLog, 0, pgBatchSize),
		ticker:  time.NewTicker(pgFlushInterval),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.flushLoop()
	return &PGHandler{sink: s}
}

func (s *pgSink) flushLoop() {
	defer close(s.stopped)
	for {
		select {
		case <-s.ticker.C:
			s.flush()
		case <-s.done:
			s.flush()
			return
		}
	}
}

func (s *pgSink) flush() {
	s.mu.Lock()
	if len(s.buffer) == 0 {
		s.mu.Unlock()
		return
	}
	batch := s.buffer
	s.buffer = make([]models.SystemLog, 0, pgBatchSize)
	s.mu.Unlock()

	s.write(batch)
}

func (s *pgSink) write(batch []models.SystemLog) {
	if err := s.db.CreateInBatches(batch, pgBatchSize).Error; err != nil {
		// Logged at WARN so the failure does not loop back into this handler.
		slog.Warn("failed to flush system logs to DB", "error", err, "count", len(batch))
	}
}

// Stop flushes pending records and waits for the flush loop to exit.
// Records handled afterwards are written synchronously.
func (h *PGHandler) Stop() {
	h.sink.stopOnce.Do(func() {
		h.sink.mu.Lock()
		h.sink.closed = true
		h.sink.mu.Unlock()
		h.sink.ticker.Stop()
		close(h.sink.done)
	})
	<-h.sink.stopped
}

// Enabled only handles ERROR and above.
func (h *PGHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelError
}

func (h *PGHandler) Handle(_ context.Context, record slog.Record) error {
	entry := models.SystemLog{
		ID:        uuid.New(),
		Timestamp: record.Time,
		Level:     record.Level.String(),
		Message:   record.Message,
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	extra := make(map[string]any)
	for _, a := range h.attrs {
		applyAttr(&entry, extra, a)
	}
	record.Attrs(func(a slog.Attr) bool {
		a.Key = h.prefix + a.Key
		applyAttr(&entry, extra, a)
		return true
	})

	if len(extra) > 0 {
		if b, err := json.Marshal(extra); err == nil {
			entry.Extra = datatypes.JSON(b)
		}
	}

	h.sink.mu.Lock()
	if h.sink.closed {
		h.sink.mu.Unlock()
		h.sink.write([]models.SystemLog{entry})
		return nil
	}
	h.sink.buffer = append(h.sink.buffer, entry)
	needFlush := len(h.sink.buffer) >= pgBatchSize
	h.sink.mu.Unlock()

	if needFlush {
		go h.sink.flush()
	}
	return nil
}

// applyAttr maps well-known keys onto SystemLog columns; everything else lands in Extra.
func applyAttr(entry *models.SystemLog, extra map[string]any, a slog.Attr) {
	a.Value = a.Value.Resolve()
	switch a.Key {
	case "action":
		entry.Action = a.Value.String()
	case "request_id":
		entry.RequestID = a.Value.String()
	case "method":
		entry.Method = a.Value.String()
	case "path":
		entry.Path = a.Value.String()
	case "error":
		entry.Error = a.Value.String()
	default:
		if err, ok := a.Value.Any().(error); ok {
			extra[a.Key] = err.Error()
			return
		}
		extra[a.Key] = a.Value.Any()
	}
}

func (h *PGHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	if h.prefix != "" {
		prefixed := make([]slog.Attr, len(attrs))
		for i, a := range attrs {
			prefixed[i] = slog.Attr{Key: h.prefix + a.Key, Value: a.Value}
		}
		attrs = prefixed
	}
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &PGHandler{sink: h.sink, attrs: merged, prefix: h.prefix}
}

// WithGroup flattens grouped attributes into Extra as "group.key".
func (h *PGHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	return &PGHandler{sink: h.sink, attrs: h.attrs, prefix: h.prefix + name + "."}
}
