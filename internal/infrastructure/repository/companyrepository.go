package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/mappers"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/models"
	"github.com/bizcompare/bizcompare/internal/shared/constants"
	"github.com/bizcompare/bizcompare/internal/shared/logger"
)

// allowedCompanyOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedCompanyOrderByFields = map[string]string{
	"rating":     "rating DESC",
	"reviews":    "review_count DESC",
	"name":       "name ASC",
	"price_low":  "avg_price ASC",
	"price_high": "avg_price DESC",
	"newest":     "created_at DESC",
}

// CompanyRepository implements the company repository interface. Reads go
// through the read-only handle, writes through the service handle.
type CompanyRepository struct {
	readDB  *gorm.DB
	writeDB *gorm.DB
	mapper  mappers.CompanyMapper
	logger  logger.Interface
}

// NewCompanyRepository creates a new company repository
func NewCompanyRepository(readDB, writeDB *gorm.DB, logger logger.Interface) company.Repository {
	return &CompanyRepository{
		readDB:  readDB,
		writeDB: writeDB,
		mapper:  mappers.NewCompanyMapper(),
		logger:  logger,
	}
}

// GetByID retrieves a company by ID with its industry and state joined.
// Returns (nil, nil) when the company does not exist.
func (r *CompanyRepository) GetByID(ctx context.Context, id uint) (*company.Company, error) {
	var model models.CompanyModel

	err := r.readDB.WithContext(ctx).
		Preload("Industry").
		Preload("State").
		First(&model, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get company by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySlug retrieves a company by its URL slug.
func (r *CompanyRepository) GetBySlug(ctx context.Context, slug string) (*company.Company, error) {
	var model models.CompanyModel

	err := r.readDB.WithContext(ctx).
		Preload("Industry").
		Preload("State").
		Where("slug = ?", strings.ToLower(slug)).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get company by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get company: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Search lists active companies matching the filter with a total count.
func (r *CompanyRepository) Search(ctx context.Context, filter company.SearchFilter) ([]*company.Company, int64, error) {
	query := r.readDB.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("companies.is_active = ?", true)

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("companies.name LIKE ? OR companies.description LIKE ?", pattern, pattern)
	}
	if filter.StateCode != "" {
		query = query.Where("companies.state_code = ?", strings.ToUpper(filter.StateCode))
	}
	if filter.IndustrySlug != "" {
		query = query.Joins("JOIN "+constants.TableIndustries+" ON industries.id = companies.industry_id").
			Where("industries.slug = ?", filter.IndustrySlug)
	}
	if filter.MinRating > 0 {
		query = query.Where("companies.rating >= ?", filter.MinRating)
	}
	if filter.VerifiedOnly {
		query = query.Where("companies.verified = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count companies", "error", err)
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	orderBy, ok := allowedCompanyOrderByFields[filter.SortBy]
	if !ok {
		orderBy = allowedCompanyOrderByFields["rating"]
	}

	page := filter.Page
	if page < 1 {
		page = constants.DefaultPage
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > constants.MaxPageSize {
		pageSize = constants.DefaultPageSize
	}

	var companyModels []*models.CompanyModel
	err := query.
		Preload("Industry").
		Preload("State").
		Order("companies." + orderBy).
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&companyModels).Error
	if err != nil {
		r.logger.Errorw("failed to search companies", "error", err)
		return nil, 0, fmt.Errorf("failed to search companies: %w", err)
	}

	entities, err := r.mapper.ToEntities(companyModels)
	if err != nil {
		return nil, 0, err
	}
	return entities, total, nil
}

// Create inserts a new company.
func (r *CompanyRepository) Create(ctx context.Context, entity *company.Company) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map company entity to model", "error", err)
		return fmt.Errorf("failed to map company entity: %w", err)
	}

	if err := r.writeDB.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create company", "slug", entity.Slug(), "error", err)
		return fmt.Errorf("failed to create company: %w", err)
	}

	entity.SetID(model.ID)

	r.logger.Infow("company created", "id", model.ID, "slug", model.Slug)
	return nil
}

// Update persists changes to an existing company.
func (r *CompanyRepository) Update(ctx context.Context, entity *company.Company) error {
	model, err := r.mapper.ToModel(entity)
	if err != nil {
		r.logger.Errorw("failed to map company entity to model", "error", err)
		return fmt.Errorf("failed to map company entity: %w", err)
	}

	result := r.writeDB.WithContext(ctx).
		Model(&models.CompanyModel{}).
		Where("id = ?", model.ID).
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update company", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update company: %w", result.Error)
	}

	r.logger.Infow("company updated", "id", model.ID, "slug", model.Slug)
	return nil
}
