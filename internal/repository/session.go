package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-records/internal/model"
)

// BeforeFlushHook 在事务内、写入前被调用，入参为本次待插入的全部新记录。
// 返回错误将回滚整批写入。
type BeforeFlushHook func(tx *gorm.DB, pending []any) error

// Session is a small unit of work: records are queued with Add and written together by
// Flush inside one transaction, after every BeforeFlushHook has accepted the batch.
// A Session is not safe for concurrent use.
type Session struct {
	db      *gorm.DB
	hooks   []BeforeFlushHook
	pending []any
}

// NewSession returns a Session with the author name uniqueness hook registered.
func NewSession(db *gorm.DB, hooks ...BeforeFlushHook) *Session {
	s := &Session{db: db}
	s.OnBeforeFlush(model.CheckAuthorNames)
	for _, h := range hooks {
		s.OnBeforeFlush(h)
	}
	return s
}

func (s *Session) OnBeforeFlush(h BeforeFlushHook) {
	s.hooks = append(s.hooks, h)
}

// Add queues new records. Each must be a pointer to a model struct.
func (s *Session) Add(records ...any) {
	s.pending = append(s.pending, records...)
}

func (s *Session) Pending() []any {
	out := make([]any, len(s.pending))
	copy(out, s.pending)
	return out
}

// Flush writes every pending record or none. On failure the pending list is kept so the
// caller can inspect it; on success it is cleared.
func (s *Session) Flush(ctx context.Context) error {
	if len(s.pending) == 0 {
		return nil
	}
	batch := s.Pending()
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, h := range s.hooks {
			if err := h(tx, batch); err != nil {
				return err
			}
		}
		for i, rec := range batch {
			if err := tx.Create(rec).Error; err != nil {
				if _, ok := rec.(*model.Author); ok {
					err = translateAuthorWrite(err)
				}
				if model.IsValidationError(err) {
					return err
				}
				return fmt.Errorf("flush record %d (%T): %w", i, rec, err)
			}
		}
		return nil
	})
	if err != nil {
		resetAssigned(batch)
		return err
	}
	s.pending = s.pending[:0]
	return nil
}

// resetAssigned undoes the primary keys and timestamps stamped by inserts that were rolled back.
func resetAssigned(batch []any) {
	for _, rec := range batch {
		switch r := rec.(type) {
		case *model.Author:
			r.ID, r.CreatedAt, r.UpdatedAt = 0, time.Time{}, time.Time{}
		case *model.Post:
			r.ID, r.CreatedAt, r.UpdatedAt = 0, time.Time{}, time.Time{}
		}
	}
}

// AutoMigrate 初始化表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.Author{}, &model.Post{}); err != nil {
		return fmt.Errorf("failed to migrate records: %w", err)
	}
	return nil
}
