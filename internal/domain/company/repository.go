package company

import "context"

// SearchFilter narrows a directory search. Zero values mean "no filter".
type SearchFilter struct {
	Query        string
	StateCode    string
	IndustrySlug string
	MinRating    float64
	VerifiedOnly bool
	SortBy       string
	Page         int
	PageSize     int
}

// Repository persists companies.
type Repository interface {
	GetByID(ctx context.Context, id uint) (*Company, error)
	GetBySlug(ctx context.Context, slug string) (*Company, error)
	Search(ctx context.Context, filter SearchFilter) ([]*Company, int64, error)
	Create(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
}

// FacetRepository reads the per-company side tables consulted by the
// detail view. Implementations must honor the caller's context deadline.
type FacetRepository interface {
	ListRatingSources(ctx context.Context, companyID uint) ([]RatingSource, error)
	ListCurrentExecutives(ctx context.Context, companyID uint) ([]Executive, error)
	ListLicenses(ctx context.Context, companyID uint) ([]License, error)
	ListFinancials(ctx context.Context, companyID uint, limit int) ([]FinancialRecord, error)
	ListLegalRecords(ctx context.Context, companyID uint, limit int) ([]LegalRecord, error)
	ListSafetyRecords(ctx context.Context, companyID uint, limit int) ([]SafetyRecord, error)
	GetParent(ctx context.Context, companyID uint) (*Relationship, error)
	ListSubsidiaries(ctx context.Context, companyID uint) ([]Relationship, error)
	ListPermits(ctx context.Context, companyID uint, limit int) ([]Permit, error)
	ListReviews(ctx context.Context, companyID uint, limit int) ([]Review, error)
	CountActiveLicenses(ctx context.Context, companyID uint) (int64, error)
}
