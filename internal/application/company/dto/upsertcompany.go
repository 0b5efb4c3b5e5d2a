package dto

// UpsertCompanyCommand is the admin ingest payload. Records are keyed by
// slug: an existing slug updates the row, a new slug inserts one.
type UpsertCompanyCommand struct {
	Slug          string   `json:"slug" validate:"required,min=2,max=255"`
	Name          string   `json:"name" validate:"required,min=2,max=255"`
	LegalName     string   `json:"legal_name,omitempty"`
	IndustryID    uint     `json:"industry_id,omitempty"`
	StateCode     string   `json:"state_code,omitempty" validate:"omitempty,len=2"`
	City          string   `json:"city,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Website       string   `json:"website,omitempty" validate:"omitempty,url"`
	Email         string   `json:"email,omitempty" validate:"omitempty,email"`
	Description   string   `json:"description,omitempty"`
	CEOName       string   `json:"ceo_name,omitempty"`
	EmployeeCount int      `json:"employee_count,omitempty" validate:"omitempty,gte=0"`
	YearFounded   int      `json:"year_founded,omitempty" validate:"omitempty,gte=1700,lte=2100"`
	AvgPrice      *float64 `json:"avg_price,omitempty"`
	MinPrice      *float64 `json:"min_price,omitempty"`
	MaxPrice      *float64 `json:"max_price,omitempty"`
	PriceUnit     string   `json:"price_unit,omitempty"`
	Verified      bool     `json:"verified,omitempty"`
	DataSources   []string `json:"data_sources,omitempty"`
	QualityScore  int      `json:"quality_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// UpsertCompanyResult reports what the upsert did.
type UpsertCompanyResult struct {
	ID      uint   `json:"id"`
	Slug    string `json:"slug"`
	Created bool   `json:"created"`
}
