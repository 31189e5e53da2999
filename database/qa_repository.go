package database

import (
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Bounds for history queries
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 200
)

// QARepository handles database operations for QA logs
type QARepository struct {
	db *Database
}

// NewQARepository creates a new QA repository
func NewQARepository(db *Database) *QARepository {
	return &QARepository{db: db}
}

// InitSchema creates the qa_logs table
func (r *QARepository) InitSchema() error {
	if err := r.db.DB().AutoMigrate(&QALog{}); err != nil {
		return WrapDBError("InitSchema", err)
	}
	zap.S().Info("✅ qa_logs schema ready")
	return nil
}

// SaveQALog inserts a QA log entry
func (r *QARepository) SaveQALog(log *QALog) error {
	if log.Question == "" {
		return NewValidationError("question", "must not be empty")
	}
	if log.SpanEnd < log.SpanStart {
		return NewValidationErrorWithValue("span_end", "must not precede span_start", log.SpanEnd)
	}
	return WrapDBError("SaveQALog", r.db.DB().Create(log).Error)
}

// GetRecentQALogs returns the newest entries first
func (r *QARepository) GetRecentQALogs(limit int) ([]QALog, error) {
	limit = ClampHistoryLimit(limit)

	var logs []QALog
	err := r.db.DB().Order("created_at DESC").Order("id DESC").Limit(limit).Find(&logs).Error
	if err != nil {
		return nil, WrapDBError("GetRecentQALogs", err)
	}
	return logs, nil
}

// GetQALog returns one entry by ID
func (r *QARepository) GetQALog(id int64) (*QALog, error) {
	var log QALog
	err := r.db.DB().First(&log, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, NewNotFoundErrorWithID("qa log", id)
	}
	if err != nil {
		return nil, WrapDBError("GetQALog", err)
	}
	return &log, nil
}

// ClampHistoryLimit applies the default and maximum page size
func ClampHistoryLimit(limit int) int {
	if limit <= 0 {
		return defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		return maxHistoryLimit
	}
	return limit
}
