package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bizcompare/bizcompare/internal/shared/constants"
)

// CompanyModel represents the database persistence model for companies
// This is the anti-corruption layer between domain and database
type CompanyModel struct {
	ID               uint   `gorm:"primarykey"`
	Slug             string `gorm:"uniqueIndex;not null;size:255"`
	Name             string `gorm:"not null;size:255;index:idx_companies_name"`
	LegalName        string `gorm:"size:255"`
	IndustryID       uint   `gorm:"index:idx_companies_industry"`
	StateCode        string `gorm:"size:2;index:idx_companies_state"`
	City             string `gorm:"size:100"`
	Phone            string `gorm:"size:30"`
	Website          string `gorm:"size:500"`
	Email            string `gorm:"size:255"`
	Description      string `gorm:"type:text"`
	CEOName          string `gorm:"column:ceo_name;size:150"`
	EmployeeCount    int
	YearFounded      int
	AvgPrice         *float64
	MinPrice         *float64
	MaxPrice         *float64
	PriceUnit        string  `gorm:"size:30"`
	Rating           float64 `gorm:"index:idx_companies_rating"`
	ReviewCount      int
	TotalProjects    int
	Verified         bool `gorm:"default:false"`
	IsActive         bool `gorm:"default:true;index:idx_companies_active"`
	DataQualityScore int
	DataSources      datatypes.JSON
	LastDataUpdate   *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`

	Industry *IndustryModel `gorm:"foreignKey:IndustryID"`
	State    *StateModel    `gorm:"foreignKey:StateCode;references:Code"`
}

// TableName specifies the table name for GORM
func (CompanyModel) TableName() string {
	return constants.TableCompanies
}

// IndustryModel is the lookup table for industries.
type IndustryModel struct {
	ID   uint   `gorm:"primarykey"`
	Name string `gorm:"not null;size:150"`
	Slug string `gorm:"uniqueIndex;not null;size:150"`
}

func (IndustryModel) TableName() string {
	return constants.TableIndustries
}

// StateModel is the lookup table for US states.
type StateModel struct {
	Code   string `gorm:"primarykey;size:2"`
	Name   string `gorm:"not null;size:50"`
	Region string `gorm:"size:50"`
}

func (StateModel) TableName() string {
	return constants.TableStates
}
