package models

import (
	"time"

	"github.com/bizcompare/bizcompare/internal/shared/constants"
)

// CompanyRatingModel is one external rating feed row.
type CompanyRatingModel struct {
	ID          uint    `gorm:"primarykey"`
	CompanyID   uint    `gorm:"not null;index:idx_company_ratings_company"`
	Source      string  `gorm:"not null;size:50"`
	Rating      float64 `gorm:"not null"`
	MaxRating   float64 `gorm:"not null;default:5"`
	ReviewCount int     `gorm:"default:0"`
	FetchedAt   time.Time
	CreatedAt   time.Time
}

func (CompanyRatingModel) TableName() string {
	return constants.TableCompanyRatings
}

// CompanyExecutiveModel is a leadership record row.
type CompanyExecutiveModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index:idx_company_executives_company"`
	Name      string `gorm:"not null;size:150"`
	Title     string `gorm:"not null;size:150"`
	IsCurrent bool   `gorm:"default:true"`
	StartDate *time.Time
	EndDate   *time.Time
	CreatedAt time.Time
}

func (CompanyExecutiveModel) TableName() string {
	return constants.TableCompanyExecutives
}

// CompanyLicenseModel is a trade license row.
type CompanyLicenseModel struct {
	ID        uint   `gorm:"primarykey"`
	CompanyID uint   `gorm:"not null;index:idx_company_licenses_company"`
	Number    string `gorm:"not null;size:100"`
	State     string `gorm:"size:2"`
	Category  string `gorm:"size:100"`
	Status    string `gorm:"not null;size:30;index:idx_company_licenses_status"`
	IssuedAt  *time.Time
	ExpiresAt *time.Time
	CreatedAt time.Time
}

func (CompanyLicenseModel) TableName() string {
	return constants.TableCompanyLicenses
}

// CompanyFinancialModel is one fiscal year of reported figures.
type CompanyFinancialModel struct {
	ID            uint `gorm:"primarykey"`
	CompanyID     uint `gorm:"not null;index:idx_company_financials_company"`
	FiscalYear    int  `gorm:"not null"`
	Revenue       *float64
	NetIncome     *float64
	EmployeeCount int
	CreatedAt     time.Time
}

func (CompanyFinancialModel) TableName() string {
	return constants.TableCompanyFinancials
}

// CompanyLegalRecordModel is a court filing row.
type CompanyLegalRecordModel struct {
	ID          uint   `gorm:"primarykey"`
	CompanyID   uint   `gorm:"not null;index:idx_company_legal_company"`
	CaseNumber  string `gorm:"size:100"`
	Court       string `gorm:"size:150"`
	Status      string `gorm:"size:30"`
	FilingDate  time.Time
	Description string `gorm:"type:text"`
	CreatedAt   time.Time
}

func (CompanyLegalRecordModel) TableName() string {
	return constants.TableCompanyLegalRecords
}

// CompanySafetyRecordModel is a regulator inspection row.
type CompanySafetyRecordModel struct {
	ID             uint   `gorm:"primarykey"`
	CompanyID      uint   `gorm:"not null;index:idx_company_safety_company"`
	Agency         string `gorm:"size:50"`
	Status         string `gorm:"size:30;index:idx_company_safety_status"`
	InspectionDate time.Time
	ViolationCount int
	Description    string `gorm:"type:text"`
	CreatedAt      time.Time
}

func (CompanySafetyRecordModel) TableName() string {
	return constants.TableCompanySafetyRecords
}

// CompanyRelationshipModel links a parent company to a subsidiary.
type CompanyRelationshipModel struct {
	ID           uint   `gorm:"primarykey"`
	ParentID     uint   `gorm:"not null;index:idx_company_relationships_parent"`
	ChildID      uint   `gorm:"not null;index:idx_company_relationships_child"`
	RelationType string `gorm:"size:30;default:subsidiary"`
	OwnershipPct *float64
	CreatedAt    time.Time

	Parent *CompanyModel `gorm:"foreignKey:ParentID"`
	Child  *CompanyModel `gorm:"foreignKey:ChildID"`
}

func (CompanyRelationshipModel) TableName() string {
	return constants.TableCompanyRelationships
}

// PermitModel is a construction or operating permit row.
type PermitModel struct {
	ID           uint   `gorm:"primarykey"`
	CompanyID    uint   `gorm:"not null;index:idx_permits_company"`
	PermitNumber string `gorm:"size:100"`
	Category     string `gorm:"size:100"`
	Status       string `gorm:"size:30"`
	IssueDate    time.Time
	Valuation    *float64
	City         string `gorm:"size:100"`
	State        string `gorm:"size:2"`
	CreatedAt    time.Time
}

func (PermitModel) TableName() string {
	return constants.TablePermits
}

// ReviewModel is a user-submitted review row.
type ReviewModel struct {
	ID        uint    `gorm:"primarykey"`
	CompanyID uint    `gorm:"not null;index:idx_reviews_company"`
	Author    string  `gorm:"size:150"`
	Rating    float64 `gorm:"not null"`
	Title     string  `gorm:"size:255"`
	Content   string  `gorm:"type:text"`
	Source    string  `gorm:"size:50"`
	CreatedAt time.Time
}

func (ReviewModel) TableName() string {
	return constants.TableReviews
}
