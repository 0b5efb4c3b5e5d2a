package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/infrastructure/persistence/models"
)

// CompanyMapper handles the conversion between domain entities and persistence models
type CompanyMapper interface {
	// ToEntity converts a persistence model to a domain entity
	ToEntity(model *models.CompanyModel) (*company.Company, error)

	// ToModel converts a domain entity to a persistence model
	ToModel(entity *company.Company) (*models.CompanyModel, error)

	// ToEntities converts multiple persistence models to domain entities
	ToEntities(models []*models.CompanyModel) ([]*company.Company, error)
}

type companyMapper struct{}

// NewCompanyMapper creates a new company mapper
func NewCompanyMapper() CompanyMapper {
	return &companyMapper{}
}

func (m *companyMapper) ToEntity(model *models.CompanyModel) (*company.Company, error) {
	if model == nil {
		return nil, nil
	}

	var sources []string
	if len(model.DataSources) > 0 {
		if err := json.Unmarshal(model.DataSources, &sources); err != nil {
			return nil, fmt.Errorf("failed to unmarshal data sources: %w", err)
		}
	}

	entity := company.ReconstructCompany(
		model.ID,
		model.Slug, model.Name, model.LegalName,
		model.IndustryID,
		model.StateCode, model.City, model.Phone, model.Website, model.Email,
		model.Description, model.CEOName,
		model.EmployeeCount, model.YearFounded,
		model.AvgPrice, model.MinPrice, model.MaxPrice,
		model.PriceUnit,
		model.Rating,
		model.ReviewCount, model.TotalProjects,
		model.Verified, model.IsActive,
		model.DataQualityScore,
		sources,
		model.LastDataUpdate,
		model.CreatedAt, model.UpdatedAt,
	)

	if model.Industry != nil {
		entity.SetIndustry(&company.Industry{
			ID:   model.Industry.ID,
			Name: model.Industry.Name,
			Slug: model.Industry.Slug,
		})
	}
	if model.State != nil {
		entity.SetState(&company.State{
			Code:   model.State.Code,
			Name:   model.State.Name,
			Region: model.State.Region,
		})
	}

	return entity, nil
}

func (m *companyMapper) ToModel(entity *company.Company) (*models.CompanyModel, error) {
	if entity == nil {
		return nil, nil
	}

	var sources datatypes.JSON
	if len(entity.DataSources()) > 0 {
		raw, err := json.Marshal(entity.DataSources())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal data sources: %w", err)
		}
		sources = datatypes.JSON(raw)
	}

	return &models.CompanyModel{
		ID:               entity.ID(),
		Slug:             entity.Slug(),
		Name:             entity.Name(),
		LegalName:        entity.LegalName(),
		IndustryID:       entity.IndustryID(),
		StateCode:        entity.StateCode(),
		City:             entity.City(),
		Phone:            entity.Phone(),
		Website:          entity.Website(),
		Email:            entity.Email(),
		Description:      entity.Description(),
		CEOName:          entity.CEOName(),
		EmployeeCount:    entity.EmployeeCount(),
		YearFounded:      entity.YearFounded(),
		AvgPrice:         entity.AvgPrice(),
		MinPrice:         entity.MinPrice(),
		MaxPrice:         entity.MaxPrice(),
		PriceUnit:        entity.PriceUnit(),
		Rating:           entity.Rating(),
		ReviewCount:      entity.ReviewCount(),
		TotalProjects:    entity.TotalProjects(),
		Verified:         entity.Verified(),
		IsActive:         entity.IsActive(),
		DataQualityScore: entity.DataQualityScore(),
		DataSources:      sources,
		LastDataUpdate:   entity.LastDataUpdate(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *companyMapper) ToEntities(companyModels []*models.CompanyModel) ([]*company.Company, error) {
	if companyModels == nil {
		return nil, nil
	}

	entities := make([]*company.Company, 0, len(companyModels))
	for _, model := range companyModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		if entity != nil {
			entities = append(entities, entity)
		}
	}
	return entities, nil
}
