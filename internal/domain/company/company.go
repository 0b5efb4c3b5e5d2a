package company

import (
	"strings"
	"time"
)

// Company is the directory aggregate. Pricing fields are nullable because
// many source records carry no pricing at all.
type Company struct {
	id               uint
	slug             string
	name             string
	legalName        string
	industryID       uint
	stateCode        string
	city             string
	phone            string
	website          string
	email            string
	description      string
	ceoName          string
	employeeCount    int
	yearFounded      int
	avgPrice         *float64
	minPrice         *float64
	maxPrice         *float64
	priceUnit        string
	rating           float64
	reviewCount      int
	totalProjects    int
	verified         bool
	isActive         bool
	dataQualityScore int
	dataSources      []string
	lastDataUpdate   *time.Time
	createdAt        time.Time
	updatedAt        time.Time

	industry *Industry
	state    *State
}

func NewCompany(slug, name string, industryID uint, stateCode string) (*Company, error) {
	slug = strings.TrimSpace(strings.ToLower(slug))
	name = strings.TrimSpace(name)

	if slug == "" {
		return nil, ErrSlugRequired
	}
	if name == "" {
		return nil, ErrNameRequired
	}
	if stateCode != "" && len(stateCode) != 2 {
		return nil, ErrInvalidStateCode
	}

	now := time.Now()
	return &Company{
		slug:       slug,
		name:       name,
		industryID: industryID,
		stateCode:  strings.ToUpper(stateCode),
		isActive:   true,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructCompany rebuilds a company from persistence without invariant checks.
func ReconstructCompany(
	id uint,
	slug, name, legalName string,
	industryID uint,
	stateCode, city, phone, website, email, description, ceoName string,
	employeeCount, yearFounded int,
	avgPrice, minPrice, maxPrice *float64,
	priceUnit string,
	rating float64,
	reviewCount, totalProjects int,
	verified, isActive bool,
	dataQualityScore int,
	dataSources []string,
	lastDataUpdate *time.Time,
	createdAt, updatedAt time.Time,
) *Company {
	return &Company{
		id:               id,
		slug:             slug,
		name:             name,
		legalName:        legalName,
		industryID:       industryID,
		stateCode:        stateCode,
		city:             city,
		phone:            phone,
		website:          website,
		email:            email,
		description:      description,
		ceoName:          ceoName,
		employeeCount:    employeeCount,
		yearFounded:      yearFounded,
		avgPrice:         avgPrice,
		minPrice:         minPrice,
		maxPrice:         maxPrice,
		priceUnit:        priceUnit,
		rating:           rating,
		reviewCount:      reviewCount,
		totalProjects:    totalProjects,
		verified:         verified,
		isActive:         isActive,
		dataQualityScore: dataQualityScore,
		dataSources:      dataSources,
		lastDataUpdate:   lastDataUpdate,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

func (c *Company) ID() uint                   { return c.id }
func (c *Company) Slug() string               { return c.slug }
func (c *Company) Name() string               { return c.name }
func (c *Company) LegalName() string          { return c.legalName }
func (c *Company) IndustryID() uint           { return c.industryID }
func (c *Company) StateCode() string          { return c.stateCode }
func (c *Company) City() string               { return c.city }
func (c *Company) Phone() string              { return c.phone }
func (c *Company) Website() string            { return c.website }
func (c *Company) Email() string              { return c.email }
func (c *Company) Description() string        { return c.description }
func (c *Company) CEOName() string            { return c.ceoName }
func (c *Company) EmployeeCount() int         { return c.employeeCount }
func (c *Company) YearFounded() int           { return c.yearFounded }
func (c *Company) AvgPrice() *float64         { return c.avgPrice }
func (c *Company) MinPrice() *float64         { return c.minPrice }
func (c *Company) MaxPrice() *float64         { return c.maxPrice }
func (c *Company) PriceUnit() string          { return c.priceUnit }
func (c *Company) Rating() float64            { return c.rating }
func (c *Company) ReviewCount() int           { return c.reviewCount }
func (c *Company) TotalProjects() int         { return c.totalProjects }
func (c *Company) Verified() bool             { return c.verified }
func (c *Company) IsActive() bool             { return c.isActive }
func (c *Company) DataQualityScore() int      { return c.dataQualityScore }
func (c *Company) DataSources() []string      { return c.dataSources }
func (c *Company) LastDataUpdate() *time.Time { return c.lastDataUpdate }
func (c *Company) CreatedAt() time.Time       { return c.createdAt }
func (c *Company) UpdatedAt() time.Time       { return c.updatedAt }

func (c *Company) Industry() *Industry { return c.industry }
func (c *Company) State() *State       { return c.state }

func (c *Company) SetID(id uint)                  { c.id = id }
func (c *Company) SetIndustry(industry *Industry) { c.industry = industry }
func (c *Company) SetState(state *State)          { c.state = state }

// UpdateProfile replaces the descriptive fields wholesale. Used by the
// ingest upsert path where the incoming record is authoritative.
func (c *Company) UpdateProfile(legalName, city, phone, website, email, description, ceoName string, employeeCount, yearFounded int) {
	c.legalName = legalName
	c.city = city
	c.phone = phone
	c.website = website
	c.email = email
	c.description = description
	c.ceoName = ceoName
	c.employeeCount = employeeCount
	c.yearFounded = yearFounded
	c.updatedAt = time.Now()
}

func (c *Company) UpdatePricing(avgPrice, minPrice, maxPrice *float64, priceUnit string) {
	c.avgPrice = avgPrice
	c.minPrice = minPrice
	c.maxPrice = maxPrice
	c.priceUnit = priceUnit
	c.updatedAt = time.Now()
}

func (c *Company) UpdateReputation(rating float64, reviewCount, totalProjects int) {
	c.rating = rating
	c.reviewCount = reviewCount
	c.totalProjects = totalProjects
	c.updatedAt = time.Now()
}

func (c *Company) RecordDataUpdate(sources []string, qualityScore int, at time.Time) {
	c.dataSources = sources
	c.dataQualityScore = qualityScore
	c.lastDataUpdate = &at
	c.updatedAt = time.Now()
}

func (c *Company) MarkVerified() {
	c.verified = true
	c.updatedAt = time.Now()
}

func (c *Company) Deactivate() {
	c.isActive = false
	c.updatedAt = time.Now()
}

// Industry is a lookup row joined onto company reads.
type Industry struct {
	ID   uint
	Name string
	Slug string
}

// State is a lookup row joined onto company reads.
type State struct {
	Code   string
	Name   string
	Region string
}
