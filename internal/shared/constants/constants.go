package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// HTTP Headers
	HeaderContentType      = "Content-Type"
	HeaderAuthorization    = "Authorization"
	HeaderXRequestID       = "X-Request-ID"
	HeaderXForwardedFor    = "X-Forwarded-For"
	HeaderBillingSignature = "Billing-Signature"

	// Content Types
	ContentTypeJSON = "application/json"
	ContentTypeForm = "application/x-www-form-urlencoded"

	// Context keys
	ContextKeySubscriber = "subscriber"
	ContextKeyAuthID     = "auth_id"
	ContextKeyRequestID  = "request_id"

	// Database table names
	TableCompanies            = "companies"
	TableIndustries           = "industries"
	TableStates               = "states"
	TableCompanyExecutives    = "company_executives"
	TableCompanyLicenses      = "company_licenses"
	TableCompanyRatings       = "company_ratings"
	TableCompanyFinancials    = "company_financials"
	TableCompanyLegalRecords  = "company_legal_records"
	TableCompanySafetyRecords = "company_safety_records"
	TableCompanyRelationships = "company_relationships"
	TablePermits              = "permits"
	TableReviews              = "reviews"
	TableSubscribers          = "subscribers"

	// Facet query caps for the company detail view
	FinancialHistoryLimit = 5
	LegalRecordLimit      = 10
	SafetyRecordLimit     = 10
	PermitLimit           = 20
	ReviewLimit           = 20

	// Error messages
	ErrMsgInternalServerError = "Internal server error occurred"
	ErrMsgResourceNotFound    = "Resource not found"
	ErrMsgUnauthorized        = "Unauthorized access"
	ErrMsgForbidden           = "Access forbidden"
	ErrMsgValidationFailed    = "Validation failed"
	ErrMsgConflict            = "Resource already exists"
)
