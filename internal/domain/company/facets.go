package company

import "time"

// Facet rows are read models fetched alongside a company. They carry public
// fields because nothing enforces invariants on them; the source tables are
// populated by ingest pipelines, not by this service.

// RatingSource is one external rating feed for a company.
type RatingSource struct {
	Source      string
	Rating      float64
	MaxRating   float64
	ReviewCount int
	FetchedAt   time.Time
}

// Executive is a leadership record.
type Executive struct {
	ID        uint
	Name      string
	Title     string
	IsCurrent bool
	StartDate *time.Time
}

// License is a trade or professional license held by the company.
type License struct {
	Number    string
	State     string
	Category  string
	Status    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// FinancialRecord is one fiscal year of reported figures.
type FinancialRecord struct {
	FiscalYear    int
	Revenue       *float64
	NetIncome     *float64
	EmployeeCount int
}

// LegalRecord is a court filing involving the company.
type LegalRecord struct {
	CaseNumber  string
	Court       string
	Status      string
	FilingDate  time.Time
	Description string
}

// SafetyRecord is a regulator inspection outcome.
type SafetyRecord struct {
	Agency         string
	Status         string
	InspectionDate time.Time
	ViolationCount int
	Description    string
}

// Relationship links a parent company to a subsidiary.
type Relationship struct {
	ParentID     uint
	ParentName   string
	ChildID      uint
	ChildName    string
	RelationType string
	OwnershipPct *float64
}

// Permit is a construction or operating permit issued to the company.
type Permit struct {
	PermitNumber string
	Category     string
	Status       string
	IssueDate    time.Time
	Valuation    *float64
	City         string
	State        string
}

// Review is a user-submitted review of the company.
type Review struct {
	ID        uint
	Author    string
	Rating    float64
	Title     string
	Content   string
	Source    string
	CreatedAt time.Time
}

// CompanyRef is the minimal identity pair exposed for related companies.
type CompanyRef struct {
	ID   uint
	Name string
}
