package repository

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-records/internal/model"
)

var ErrNotFound = errors.New("record not found")

func notFound(kind string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %d: %w", kind, id, ErrNotFound)
	}
	return err
}

// translateAuthorWrite 将唯一索引冲突转换为校验错误（数据库约束是最终依据）
func translateAuthorWrite(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return model.DuplicateAuthorNameError()
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// drivers without TranslateError support
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
