package dto

import (
	"time"

	"github.com/bizcompare/bizcompare/internal/domain/company"
	"github.com/bizcompare/bizcompare/internal/domain/subscription"
)

// CompanyView is the fully assembled detail view before entitlement
// redaction. It is what the aggregator produces and what the view cache
// stores.
type CompanyView struct {
	ID               uint         `json:"id"`
	Slug             string       `json:"slug"`
	Name             string       `json:"name"`
	LegalName        string       `json:"legal_name,omitempty"`
	Industry         *IndustryDTO `json:"industry,omitempty"`
	State            *StateDTO    `json:"state,omitempty"`
	City             string       `json:"city,omitempty"`
	Phone            string       `json:"phone,omitempty"`
	Website          string       `json:"website,omitempty"`
	Email            string       `json:"email,omitempty"`
	DescriptionHTML  string       `json:"description_html,omitempty"`
	CEO              string       `json:"ceo,omitempty"`
	EmployeeCount    int          `json:"employee_count,omitempty"`
	YearFounded      int          `json:"year_founded,omitempty"`
	Pricing          *PricingDTO  `json:"pricing,omitempty"`
	PricingLocked    bool         `json:"pricing_locked"`
	ContactLocked    bool         `json:"contact_locked"`
	OverallRating    float64      `json:"overall_rating"`
	ReviewCount      int          `json:"review_count"`
	TotalProjects    int          `json:"total_projects"`
	Verified         bool         `json:"verified"`
	DataQualityScore int          `json:"data_quality_score"`
	DataSources      []string     `json:"data_sources,omitempty"`
	LastDataUpdate   *time.Time   `json:"last_data_update,omitempty"`

	RatingSources       []RatingSourceDTO `json:"rating_sources"`
	Executives          []ExecutiveDTO    `json:"executives"`
	Licenses            []LicenseDTO      `json:"licenses"`
	ActiveLicenses      int               `json:"active_licenses"`
	Financials          []FinancialDTO    `json:"financials"`
	LegalRecords        []LegalRecordDTO  `json:"legal_records"`
	HasLegalIssues      bool              `json:"has_legal_issues"`
	SafetyRecords       []SafetyRecordDTO `json:"safety_records"`
	HasSafetyViolations bool              `json:"has_safety_violations"`
	Parent              *CompanyRefDTO    `json:"parent,omitempty"`
	Subsidiaries        []CompanyRefDTO   `json:"subsidiaries"`
	Permits             []PermitDTO       `json:"permits"`
	Reviews             []ReviewDTO       `json:"reviews"`
}

type IndustryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type StateDTO struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

type PricingDTO struct {
	AvgPrice  *float64 `json:"avg_price,omitempty"`
	MinPrice  *float64 `json:"min_price,omitempty"`
	MaxPrice  *float64 `json:"max_price,omitempty"`
	PriceUnit string   `json:"price_unit,omitempty"`
}

type RatingSourceDTO struct {
	Source      string  `json:"source"`
	Rating      float64 `json:"rating"`
	MaxRating   float64 `json:"max_rating"`
	ReviewCount int     `json:"review_count"`
}

type ExecutiveDTO struct {
	Name      string     `json:"name"`
	Title     string     `json:"title"`
	StartDate *time.Time `json:"start_date,omitempty"`
}

type LicenseDTO struct {
	Number    string     `json:"number"`
	State     string     `json:"state,omitempty"`
	Category  string     `json:"category,omitempty"`
	Status    string     `json:"status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

type FinancialDTO struct {
	FiscalYear    int      `json:"fiscal_year"`
	Revenue       *float64 `json:"revenue,omitempty"`
	NetIncome     *float64 `json:"net_income,omitempty"`
	EmployeeCount int      `json:"employee_count,omitempty"`
}

type LegalRecordDTO struct {
	CaseNumber  string    `json:"case_number,omitempty"`
	Court       string    `json:"court,omitempty"`
	Status      string    `json:"status,omitempty"`
	FilingDate  time.Time `json:"filing_date"`
	Description string    `json:"description,omitempty"`
}

type SafetyRecordDTO struct {
	Agency         string    `json:"agency,omitempty"`
	Status         string    `json:"status,omitempty"`
	InspectionDate time.Time `json:"inspection_date"`
	ViolationCount int       `json:"violation_count"`
}

type CompanyRefDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type PermitDTO struct {
	PermitNumber string    `json:"permit_number,omitempty"`
	Category     string    `json:"category,omitempty"`
	Status       string    `json:"status,omitempty"`
	IssueDate    time.Time `json:"issue_date"`
	Valuation    *float64  `json:"valuation,omitempty"`
	City         string    `json:"city,omitempty"`
	State        string    `json:"state,omitempty"`
}

type ReviewDTO struct {
	Author    string    `json:"author,omitempty"`
	Rating    float64   `json:"rating"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content,omitempty"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Redact strips fields the caller's tier is not entitled to see. The view
// itself is tier-independent; redaction happens per request.
func (v CompanyView) Redact(limits subscription.Limits) CompanyView {
	if limits.PriceUnlocks == 0 {
		v.Pricing = nil
		v.PricingLocked = true
	}
	if !limits.ContactInfo {
		v.Phone = ""
		v.Email = ""
		v.ContactLocked = true
	}
	if !limits.HistoricalData {
		v.Financials = []FinancialDTO{}
	}
	if !limits.CompanyReports {
		// flags stay visible; detail rows are a paid feature
		v.LegalRecords = []LegalRecordDTO{}
		v.SafetyRecords = []SafetyRecordDTO{}
		v.Permits = []PermitDTO{}
	}
	return v
}

// ToExecutiveDTOs converts domain executives, keeping repository order.
func ToExecutiveDTOs(executives []company.Executive) []ExecutiveDTO {
	out := make([]ExecutiveDTO, 0, len(executives))
	for _, e := range executives {
		out = append(out, ExecutiveDTO{
			Name:      e.Name,
			Title:     e.Title,
			StartDate: e.StartDate,
		})
	}
	return out
}

func ToRatingSourceDTOs(sources []company.RatingSource) []RatingSourceDTO {
	out := make([]RatingSourceDTO, 0, len(sources))
	for _, s := range sources {
		out = append(out, RatingSourceDTO{
			Source:      s.Source,
			Rating:      s.Rating,
			MaxRating:   s.MaxRating,
			ReviewCount: s.ReviewCount,
		})
	}
	return out
}

func ToLicenseDTOs(licenses []company.License) []LicenseDTO {
	out := make([]LicenseDTO, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, LicenseDTO{
			Number:    l.Number,
			State:     l.State,
			Category:  l.Category,
			Status:    l.Status,
			ExpiresAt: l.ExpiresAt,
		})
	}
	return out
}

func ToFinancialDTOs(records []company.FinancialRecord) []FinancialDTO {
	out := make([]FinancialDTO, 0, len(records))
	for _, r := range records {
		out = append(out, FinancialDTO{
			FiscalYear:    r.FiscalYear,
			Revenue:       r.Revenue,
			NetIncome:     r.NetIncome,
			EmployeeCount: r.EmployeeCount,
		})
	}
	return out
}

func ToLegalRecordDTOs(records []company.LegalRecord) []LegalRecordDTO {
	out := make([]LegalRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, LegalRecordDTO{
			CaseNumber:  r.CaseNumber,
			Court:       r.Court,
			Status:      r.Status,
			FilingDate:  r.FilingDate,
			Description: r.Description,
		})
	}
	return out
}

func ToSafetyRecordDTOs(records []company.SafetyRecord) []SafetyRecordDTO {
	out := make([]SafetyRecordDTO, 0, len(records))
	for _, r := range records {
		out = append(out, SafetyRecordDTO{
			Agency:         r.Agency,
			Status:         r.Status,
			InspectionDate: r.InspectionDate,
			ViolationCount: r.ViolationCount,
		})
	}
	return out
}

func ToPermitDTOs(permits []company.Permit) []PermitDTO {
	out := make([]PermitDTO, 0, len(permits))
	for _, p := range permits {
		out = append(out, PermitDTO{
			PermitNumber: p.PermitNumber,
			Category:     p.Category,
			Status:       p.Status,
			IssueDate:    p.IssueDate,
			Valuation:    p.Valuation,
			City:         p.City,
			State:        p.State,
		})
	}
	return out
}

func ToReviewDTOs(reviews []company.Review) []ReviewDTO {
	out := make([]ReviewDTO, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, ReviewDTO{
			Author:    r.Author,
			Rating:    r.Rating,
			Title:     r.Title,
			Content:   r.Content,
			Source:    r.Source,
			CreatedAt: r.CreatedAt,
		})
	}
	return out
}
