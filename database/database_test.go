package database

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"host=db port=5432 dbname=bank user=u password=p sslmode=disable",
		DSN("db", 5432, "bank", "u", "p"))
}

func TestClampHistoryLimit(t *testing.T) {
	assert.Equal(t, 20, ClampHistoryLimit(0))
	assert.Equal(t, 20, ClampHistoryLimit(-5))
	assert.Equal(t, 7, ClampHistoryLimit(7))
	assert.Equal(t, 200, ClampHistoryLimit(1000))
}

func TestSaveQALogValidatesBeforeTouchingDB(t *testing.T) {
	repo := &QARepository{} // validation runs before the db is used

	var vErr *ValidationError
	err := repo.SaveQALog(&QALog{})
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "question", vErr.Field)

	err = repo.SaveQALog(&QALog{Question: "q", SpanStart: 5, SpanEnd: 2})
	assert.True(t, errors.As(err, &vErr))
	assert.Equal(t, "span_end", vErr.Field)
}

func TestErrorTypes(t *testing.T) {
	base := errors.New("conn refused")
	wrapped := WrapDBError("SaveQALog", base)
	assert.ErrorIs(t, wrapped, base)
	assert.Equal(t, "database error in SaveQALog: conn refused", wrapped.Error())
	assert.Nil(t, WrapDBError("noop", nil))

	assert.Equal(t, "qa log not found: 42", NewNotFoundErrorWithID("qa log", int64(42)).Error())
	assert.Equal(t, "qa log not found", NewNotFoundError("qa log").Error())
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundErrorWithID("qa log", 1)))
	assert.True(t, IsNotFound(WrapDBError("GetQALog", NewNotFoundError("qa log"))))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestRepositoryUsesDatabaseHandle(t *testing.T) {
	db := &Database{}
	assert.Nil(t, db.DB())
	assert.Same(t, db, NewQARepository(db).db)
}
