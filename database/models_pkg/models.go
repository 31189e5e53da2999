package models

import "time"

// QALog records one answered dashboard question.
//
// Key Fields:
//   - Question: the trimmed question as asked
//   - Answer: the answer span copied from the context
//   - SpanStart/SpanEnd: byte offsets of the span within the context
//   - Source: "llm" or "extractive"
//   - CacheHit: true when the answer was served from Redis
//   - CacheKey: hash of context + normalized question, groups repeated questions
type QALog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	SpanStart int       `gorm:"not null" json:"span_start"`
	SpanEnd   int       `gorm:"not null" json:"span_end"`
	Score     float64   `gorm:"type:decimal(6,4)" json:"score"`
	Source    string    `gorm:"size:16;not null" json:"source"`
	CacheHit  bool      `gorm:"not null;default:false" json:"cache_hit"`
	CacheKey  string    `gorm:"size:32;index" json:"cache_key"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for QALog
func (QALog) TableName() string {
	return "qa_logs"
}
