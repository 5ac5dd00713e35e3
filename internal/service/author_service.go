package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-records/internal/cache"
	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/repository"
	"github.com/d60-Lab/blog-records/pkg/logger"
)

type CreateAuthorInput struct {
	Name        string
	PhoneNumber *string
}

// UpdateAuthorInput 部分更新；Name 为 nil 表示不修改
type UpdateAuthorInput struct {
	Name        *string
	PhoneNumber Optional[string]
}

// AuthorService 作者服务
type AuthorService interface {
	Create(ctx context.Context, in CreateAuthorInput) (*model.Author, error)
	CreateBatch(ctx context.Context, in []CreateAuthorInput) ([]*model.Author, error)
	Get(ctx context.Context, id uint) (*model.Author, error)
	List(ctx context.Context, page, pageSize int) (*Page[*model.Author], error)
	Update(ctx context.Context, id uint, in UpdateAuthorInput) (*model.Author, error)
	Delete(ctx context.Context, id uint) error
}

type authorService struct {
	repo  repository.AuthorRepository
	cache *cache.RecordCache
}

func NewAuthorService(repo repository.AuthorRepository, c *cache.RecordCache) AuthorService {
	return &authorService{repo: repo, cache: c}
}

// ensureNameFree 构造前的唯一性预检（读后判断，非原子；flush 前还会再查一次）
func (s *authorService) ensureNameFree(ctx context.Context, name string) error {
	if name == "" {
		return nil
	}
	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		return fmt.Errorf("check author name: %w", err)
	}
	if exists {
		return model.DuplicateAuthorNameError()
	}
	return nil
}

func (s *authorService) build(ctx context.Context, in CreateAuthorInput) (*model.Author, error) {
	if err := s.ensureNameFree(ctx, in.Name); err != nil {
		return nil, err
	}
	return model.NewAuthor(in.Name, in.PhoneNumber)
}

func (s *authorService) Create(ctx context.Context, in CreateAuthorInput) (*model.Author, error) {
	ctx, span := tracer.Start(ctx, "AuthorService.Create")
	defer span.End()

	a, err := s.build(ctx, in)
	if err != nil {
		logger.Debug("author rejected", zap.String("name", in.Name), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		if model.IsValidationError(err) {
			logger.Warn("author rejected at flush", zap.String("name", a.Name), zap.Error(err))
		}
		return nil, err
	}
	logger.Info("author created", zap.Uint("id", a.ID))
	return a, nil
}

func (s *authorService) CreateBatch(ctx context.Context, in []CreateAuthorInput) ([]*model.Author, error) {
	ctx, span := tracer.Start(ctx, "AuthorService.CreateBatch")
	defer span.End()

	authors := make([]*model.Author, 0, len(in))
	for i, item := range in {
		a, err := s.build(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("author %d: %w", i, err)
		}
		authors = append(authors, a)
	}
	if err := s.repo.CreateBatch(ctx, authors); err != nil {
		return nil, err
	}
	logger.Info("author batch created", zap.Int("count", len(authors)))
	return authors, nil
}

func (s *authorService) Get(ctx context.Context, id uint) (*model.Author, error) {
	ctx, span := tracer.Start(ctx, "AuthorService.Get")
	defer span.End()

	if a, ok := s.cache.GetAuthor(ctx, id); ok {
		return a, nil
	}
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetAuthor(ctx, a)
	return a, nil
}

func (s *authorService) List(ctx context.Context, page, pageSize int) (*Page[*model.Author], error) {
	ctx, span := tracer.Start(ctx, "AuthorService.List")
	defer span.End()

	page, pageSize, offset := normalizePage(page, pageSize)
	items, err := s.repo.List(ctx, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &Page[*model.Author]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *authorService) Update(ctx context.Context, id uint, in UpdateAuthorInput) (*model.Author, error) {
	ctx, span := tracer.Start(ctx, "AuthorService.Update")
	defer span.End()

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != a.Name {
		if err := a.SetName(*in.Name); err != nil {
			return nil, err
		}
		if err := s.ensureNameFree(ctx, a.Name); err != nil {
			return nil, err
		}
	}
	if in.PhoneNumber.Set {
		if err := a.SetPhoneNumber(in.PhoneNumber.Value); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	s.cache.InvalidateAuthor(ctx, id)
	logger.Info("author updated", zap.Uint("id", id))
	return a, nil
}

func (s *authorService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "AuthorService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidateAuthor(ctx, id)
	logger.Info("author deleted", zap.Uint("id", id))
	return nil
}
