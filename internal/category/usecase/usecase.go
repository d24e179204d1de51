package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/category"
	"github.com/projectcnw/sales-backoffice/internal/category/dto"
	"github.com/projectcnw/sales-backoffice/internal/model"
)

type categoryUseCase struct {
	repo   category.Repository
	logger *zap.Logger
}

func NewCategoryUseCase(repo category.Repository, logger *zap.Logger) category.UseCase {
	return &categoryUseCase{repo: repo, logger: logger}
}

func (u *categoryUseCase) ListCategories(ctx context.Context) ([]dto.CategoryDTO, error) {
	categories, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CategoryDTO, 0, len(categories))
	for _, c := range categories {
		count, err := u.repo.CountProducts(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toDTO(&c, count))
	}
	return out, nil
}

func (u *categoryUseCase) GetCategory(ctx context.Context, id int) (*dto.CategoryDTO, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category")
	}
	count, err := u.repo.CountProducts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	d := toDTO(c, count)
	return &d, nil
}

func (u *categoryUseCase) CreateCategory(ctx context.Context, in *dto.CreateCategoryInput) (*dto.CategoryDTO, error) {
	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}
	existing, err := u.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.Validation("slug already in use")
	}

	now := time.Now()
	c := &model.Category{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Title:       strings.TrimSpace(in.Title),
		Slug:        slug,
		Description: in.Description,
		MetaTitle:   in.MetaTitle,
	}
	if err := u.repo.Insert(ctx, c); err != nil {
		return nil, err
	}

	u.logger.Info("category created", zap.Int("id", c.ID), zap.String("slug", c.Slug))
	d := toDTO(c, 0)
	return &d, nil
}

func (u *categoryUseCase) UpdateCategory(ctx context.Context, id int, in *dto.UpdateCategoryInput) (*dto.CategoryDTO, error) {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperr.NotFound("category")
	}

	slug := in.Slug
	if slug == "" {
		slug = Slugify(in.Title)
	}
	if slug != c.Slug {
		existing, err := u.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperr.Validation("slug already in use")
		}
	}

	c.Title = strings.TrimSpace(in.Title)
	c.Slug = slug
	c.Description = in.Description
	c.MetaTitle = in.MetaTitle
	if err := u.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	count, err := u.repo.CountProducts(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	d := toDTO(c, count)
	return &d, nil
}

func (u *categoryUseCase) DeleteCategory(ctx context.Context, id int) error {
	c, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return apperr.NotFound("category")
	}
	return u.repo.InTx(ctx, func(repo category.Repository) error {
		return repo.Delete(ctx, id)
	})
}

func toDTO(c *model.Category, productCount int) dto.CategoryDTO {
	return dto.CategoryDTO{
		ID:           c.ID,
		Title:        c.Title,
		Slug:         c.Slug,
		Description:  c.Description,
		MetaTitle:    c.MetaTitle,
		ProductCount: productCount,
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a category title.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = nonSlugChars.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
