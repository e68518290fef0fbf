package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/cipco/cms-backend/internal/core/domain"
	"github.com/cipco/cms-backend/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ViewRecorder accepts blog view hits for asynchronous counting.
type ViewRecorder interface {
	Record(blogID string)
}

type BlogService struct {
	repo     ports.BlogRepository
	uploader ports.ImageUploader
	views    ViewRecorder
	log      zerolog.Logger
}

func NewBlogService(repo ports.BlogRepository, uploader ports.ImageUploader, views ViewRecorder, log zerolog.Logger) *BlogService {
	return &BlogService{repo: repo, uploader: uploader, views: views, log: log}
}

func (s *BlogService) ListPublished(ctx context.Context, in ports.ListBlogsInput) (*ports.ListBlogsResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return nil, fmt.Errorf("%w: page is out of range", domain.ErrInvalidInput)
	}

	blogs, total, err := s.repo.List(ctx, ports.BlogFilter{
		PublishedOnly: true,
		Search:        strings.TrimSpace(in.Search),
		Skip:          int64(page-1) * int64(limit),
		Limit:         int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("list published blogs: %w", err)
	}

	return &ports.ListBlogsResult{
		Blogs:       blogs,
		CurrentPage: page,
		TotalPages:  int((total + int64(limit) - 1) / int64(limit)),
		TotalBlogs:  total,
	}, nil
}

func (s *BlogService) GetPublished(ctx context.Context, id string) (*domain.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !blog.IsPublished {
		return nil, domain.ErrBlogNotFound
	}

	s.views.Record(blog.ID)
	blog.Views++
	return blog, nil
}

func (s *BlogService) Categories() []string {
	out := make([]string, len(domain.BlogCategories))
	copy(out, domain.BlogCategories)
	return out
}

func (s *BlogService) ListAll(ctx context.Context) ([]*domain.Blog, error) {
	blogs, _, err := s.repo.List(ctx, ports.BlogFilter{})
	return blogs, err
}

func (s *BlogService) Create(ctx context.Context, in ports.CreateBlogInput) (*domain.Blog, error) {
	blog := &domain.Blog{
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		Author:      strings.TrimSpace(in.Author),
		Category:    in.Category,
		Summary:     in.Summary,
		Tags:        cleanTags(in.Tags),
		IsPublished: in.IsPublished,
	}
	if blog.Author == "" {
		blog.Author = domain.DefaultBlogAuthor
	}
	if err := validateBlog(blog); err != nil {
		return nil, err
	}

	url, err := uploadImage(ctx, s.uploader, in.Image)
	if err != nil {
		s.log.Error().Err(err).Msg("blog image upload failed")
		return nil, err
	}
	blog.Image = url

	now := time.Now().UTC()
	blog.CreatedAt, blog.UpdatedAt = now, now

	created, err := s.repo.Create(ctx, blog)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("blog_id", created.ID).Bool("published", created.IsPublished).Msg("blog created")
	return created, nil
}

func (s *BlogService) Update(ctx context.Context, id string, in ports.UpdateBlogInput) (*domain.Blog, error) {
	blog, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		blog.Title = strings.TrimSpace(*in.Title)
	}
	if in.Content != nil {
		blog.Content = *in.Content
	}
	if in.Author != nil {
		blog.Author = strings.TrimSpace(*in.Author)
	}
	if in.Category != nil {
		blog.Category = *in.Category
	}
	if in.Summary != nil {
		blog.Summary = *in.Summary
	}
	if in.Tags != nil {
		blog.Tags = cleanTags(*in.Tags)
	}
	if in.IsPublished != nil {
		blog.IsPublished = *in.IsPublished
	}
	if err := validateBlog(blog); err != nil {
		return nil, err
	}

	if in.Image != nil {
		url, err := uploadImage(ctx, s.uploader, in.Image)
		if err != nil {
			s.log.Error().Err(err).Str("blog_id", id).Msg("blog image upload failed")
			return nil, err
		}
		if url != "" {
			blog.Image = url
		}
	}

	blog.UpdatedAt = time.Now().UTC()
	return s.repo.Update(ctx, blog)
}

func (s *BlogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validateBlog(b *domain.Blog) error {
	switch {
	case b.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case b.Content == "":
		return fmt.Errorf("%w: content is required", domain.ErrInvalidInput)
	case b.Summary == "":
		return fmt.Errorf("%w: summary is required", domain.ErrInvalidInput)
	case b.Author == "":
		return fmt.Errorf("%w: author cannot be empty", domain.ErrInvalidInput)
	case !domain.ValidCategory(b.Category):
		return fmt.Errorf("%w: category must be one of: %s", domain.ErrInvalidInput, strings.Join(domain.BlogCategories, ", "))
	}
	return nil
}

func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
