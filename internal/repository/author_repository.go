package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-records/internal/model"
)

// AuthorRepository 作者仓储接口
type AuthorRepository interface {
	// Create 插入单个作者（经过 pre-flush 唯一性检查）
	Create(ctx context.Context, author *model.Author) error
	// CreateBatch 整批写入，任一失败则全部回滚
	CreateBatch(ctx context.Context, authors []*model.Author) error
	GetByID(ctx context.Context, id uint) (*model.Author, error)
	GetByName(ctx context.Context, name string) (*model.Author, error)
	// ExistsByName 精确匹配（区分大小写）
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context, offset, limit int) ([]*model.Author, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, author *model.Author) error
	Delete(ctx context.Context, id uint) error
}

type authorRepository struct {
	db *gorm.DB
}

func NewAuthorRepository(db *gorm.DB) AuthorRepository { return &authorRepository{db: db} }

func (r *authorRepository) Create(ctx context.Context, author *model.Author) error {
	s := NewSession(r.db)
	s.Add(author)
	return s.Flush(ctx)
}

func (r *authorRepository) CreateBatch(ctx context.Context, authors []*model.Author) error {
	s := NewSession(r.db)
	for _, a := range authors {
		s.Add(a)
	}
	return s.Flush(ctx)
}

func (r *authorRepository) GetByID(ctx context.Context, id uint) (*model.Author, error) {
	var a model.Author
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, notFound("author", id, err)
	}
	return &a, nil
}

func (r *authorRepository) GetByName(ctx context.Context, name string) (*model.Author, error) {
	var a model.Author
	err := r.db.WithContext(ctx).Where("name = ?", name).Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *authorRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.Author{}).
		Where("name = ?", name).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *authorRepository) List(ctx context.Context, offset, limit int) ([]*model.Author, error) {
	var res []*model.Author
	err := r.db.WithContext(ctx).Order("id").Offset(offset).Limit(limit).Find(&res).Error
	return res, err
}

func (r *authorRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Author{}).Count(&cnt).Error
	return cnt, err
}

func (r *authorRepository) Update(ctx context.Context, author *model.Author) error {
	return translateAuthorWrite(r.db.WithContext(ctx).Save(author).Error)
}

func (r *authorRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Author{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("author", id, gorm.ErrRecordNotFound)
	}
	return nil
}
