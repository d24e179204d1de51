package usecase

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/projectcnw/sales-backoffice/internal/apperr"
	"github.com/projectcnw/sales-backoffice/internal/model"
	"github.com/projectcnw/sales-backoffice/internal/promotion"
	"github.com/projectcnw/sales-backoffice/internal/promotion/dto"
)

const dateLayout = "2006-01-02"

type promotionUseCase struct {
	repo   promotion.Repository
	logger *zap.Logger
}

func NewPromotionUseCase(repo promotion.Repository, logger *zap.Logger) promotion.UseCase {
	return &promotionUseCase{repo: repo, logger: logger}
}

func (u *promotionUseCase) ListPromotions(ctx context.Context) ([]dto.PromotionDTO, error) {
	promotions, err := u.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]dto.PromotionDTO, 0, len(promotions))
	for i := range promotions {
		d, err := u.withLinks(ctx, &promotions[i], now)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (u *promotionUseCase) GetPromotion(ctx context.Context, id int) (*dto.PromotionDTO, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("promotion")
	}
	return u.withLinks(ctx, p, time.Now())
}

func (u *promotionUseCase) CreatePromotion(ctx context.Context, in *dto.CreatePromotionInput) (*dto.PromotionDTO, error) {
	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	p := &model.Promotion{
		BaseModel:   model.BaseModel{CreatedAt: now, UpdatedAt: now},
		Title:       strings.TrimSpace(in.Title),
		Value:       in.Value,
		ValueType:   model.PromotionValueType(in.ValueType),
		PolicyApply: model.PromotionPolicyApply(in.PolicyApply),
		StartDate:   start,
		EndDate:     end,
		Description: in.Description,
	}
	if p.ValueType == model.PromotionValuePercent && p.Value > 100 {
		return nil, apperr.Validation("percent value must not exceed 100")
	}

	err = u.repo.InTx(ctx, func(repo promotion.Repository) error {
		if err := repo.Insert(ctx, p); err != nil {
			return err
		}
		if err := repo.ReplaceProducts(ctx, p.ID, in.ProductIds); err != nil {
			return err
		}
		return repo.ReplaceCategories(ctx, p.ID, in.CategoryIds)
	})
	if err != nil {
		return nil, err
	}

	u.logger.Info("promotion created", zap.Int("id", p.ID), zap.String("title", p.Title))
	return u.withLinks(ctx, p, now)
}

func (u *promotionUseCase) UpdatePromotion(ctx context.Context, id int, in *dto.UpdatePromotionInput) (*dto.PromotionDTO, error) {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperr.NotFound("promotion")
	}

	start, end, err := parseRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}
	if model.PromotionValueType(in.ValueType) == model.PromotionValuePercent && in.Value > 100 {
		return nil, apperr.Validation("percent value must not exceed 100")
	}

	p.Title = strings.TrimSpace(in.Title)
	p.Value = in.Value
	p.ValueType = model.PromotionValueType(in.ValueType)
	p.PolicyApply = model.PromotionPolicyApply(in.PolicyApply)
	p.StartDate = start
	p.EndDate = end
	p.Description = in.Description

	err = u.repo.InTx(ctx, func(repo promotion.Repository) error {
		if err := repo.Update(ctx, p); err != nil {
			return err
		}
		if err := repo.ReplaceProducts(ctx, p.ID, in.ProductIds); err != nil {
			return err
		}
		return repo.ReplaceCategories(ctx, p.ID, in.CategoryIds)
	})
	if err != nil {
		return nil, err
	}
	return u.withLinks(ctx, p, time.Now())
}

func (u *promotionUseCase) DeletePromotion(ctx context.Context, id int) error {
	p, err := u.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("promotion")
	}
	return u.repo.InTx(ctx, func(repo promotion.Repository) error {
		return repo.Delete(ctx, id)
	})
}

func (u *promotionUseCase) withLinks(ctx context.Context, p *model.Promotion, now time.Time) (*dto.PromotionDTO, error) {
	productIDs, err := u.repo.ProductIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	categoryIDs, err := u.repo.CategoryIDs(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	d := dto.FromModel(p, productIDs, categoryIDs, now)
	return &d, nil
}

func parseRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid start date")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, apperr.Validation("invalid end date")
	}
	// End is inclusive, covering the whole final day.
	end = end.Add(24*time.Hour - time.Nanosecond)
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperr.Validation("end date must not be before start date")
	}
	return start, end, nil
}
