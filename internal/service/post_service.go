package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/blog-records/internal/cache"
	"github.com/d60-Lab/blog-records/internal/model"
	"github.com/d60-Lab/blog-records/internal/repository"
	"github.com/d60-Lab/blog-records/pkg/logger"
)

type CreatePostInput struct {
	Title    string
	Content  *string
	Summary  *string
	Category *string
}

// UpdatePostInput 部分更新；未 Set 的字段保持不变
type UpdatePostInput struct {
	Title    *string
	Content  Optional[string]
	Summary  Optional[string]
	Category Optional[string]
}

// PostService 文章服务
type PostService interface {
	Create(ctx context.Context, in CreatePostInput) (*model.Post, error)
	Get(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context, category string, page, pageSize int) (*Page[*model.Post], error)
	Update(ctx context.Context, id uint, in UpdatePostInput) (*model.Post, error)
	Delete(ctx context.Context, id uint) error
}

type postService struct {
	repo  repository.PostRepository
	cache *cache.RecordCache
}

func NewPostService(repo repository.PostRepository, c *cache.RecordCache) PostService {
	return &postService{repo: repo, cache: c}
}

func (s *postService) Create(ctx context.Context, in CreatePostInput) (*model.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Create")
	defer span.End()

	p, err := model.NewPost(in.Title, in.Content, in.Summary, in.Category)
	if err != nil {
		logger.Debug("post rejected", zap.String("title", in.Title), zap.Error(err))
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("post created", zap.Uint("id", p.ID))
	return p, nil
}

func (s *postService) Get(ctx context.Context, id uint) (*model.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Get")
	defer span.End()

	if p, ok := s.cache.GetPost(ctx, id); ok {
		return p, nil
	}
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetPost(ctx, p)
	return p, nil
}

// List 按分类过滤；category 必须为空或合法枚举值
func (s *postService) List(ctx context.Context, category string, page, pageSize int) (*Page[*model.Post], error) {
	ctx, span := tracer.Start(ctx, "PostService.List")
	defer span.End()

	if category != "" {
		if err := (&model.Post{}).SetCategory(&category); err != nil {
			return nil, err
		}
	}
	page, pageSize, offset := normalizePage(page, pageSize)
	filter := repository.PostFilter{Category: category}
	items, err := s.repo.List(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &Page[*model.Post]{Items: items, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *postService) Update(ctx context.Context, id uint, in UpdatePostInput) (*model.Post, error) {
	ctx, span := tracer.Start(ctx, "PostService.Update")
	defer span.End()

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		if err := p.SetTitle(*in.Title); err != nil {
			return nil, err
		}
	}
	if in.Content.Set {
		if err := p.SetContent(in.Content.Value); err != nil {
			return nil, err
		}
	}
	if in.Summary.Set {
		if err := p.SetSummary(in.Summary.Value); err != nil {
			return nil, err
		}
	}
	if in.Category.Set {
		if err := p.SetCategory(in.Category.Value); err != nil {
			return nil, err
		}
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	s.cache.InvalidatePost(ctx, id)
	logger.Info("post updated", zap.Uint("id", id))
	return p, nil
}

func (s *postService) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "PostService.Delete")
	defer span.End()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.InvalidatePost(ctx, id)
	logger.Info("post deleted", zap.Uint("id", id))
	return nil
}
