package domain

type Year = int

const (
	CategoryCore       = "core"
	CategoryDigitizing = "digitizing"
	CategoryAll        = "all"
)

const (
	TierInvestAggressively = "tier1-invest-aggressively"
	TierInvestAsAnchor     = "tier2-invest-as-anchor"
	TierInvestLater        = "tier3-invest-later"
)

const RuleStatusActive = "active"

type Vertical struct {
	ID             string   `db:"id" json:"id" validate:"required"`
	Name           string   `db:"name" json:"name" validate:"required"`
	Category       string   `db:"category" json:"category" validate:"required"`
	ParentID       *string  `db:"parent_id" json:"parent_id,omitempty"`
	PrimaryMetrics []string `db:"primary_metrics" json:"primary_metrics,omitempty"`
}

// InCategory reports whether v belongs to category; CategoryAll matches any.
func (v Vertical) InCategory(category string) bool {
	return category == CategoryAll || v.Category == category
}

type Geography struct {
	ID     string `db:"id" json:"id" validate:"required"`
	Name   string `db:"name" json:"name" validate:"required"`
	Tier   string `db:"tier" json:"tier"`
	Region string `db:"region" json:"region"`
	Type   string `db:"type" json:"type"`
}

type Factor struct {
	ID      string   `db:"id" json:"id" validate:"required,oneof=land labour capital organisation"`
	Name    string   `db:"name" json:"name" validate:"required"`
	Metrics []string `db:"metrics" json:"metrics"`
}

// Target is one fact row. A row with ParentTargetID set disaggregates its
// parent and never counts towards top-level totals.
type Target struct {
	ID             string  `db:"id" json:"id"`
	VerticalID     string  `db:"vertical_id" json:"vertical_id" validate:"required"`
	GeographyID    string  `db:"geography_id" json:"geography_id"`
	FactorID       *string `db:"factor_id" json:"factor_id,omitempty"`
	Metric         string  `db:"metric" json:"metric" validate:"required"`
	Value          Numeric `db:"value" json:"value"`
	Year           Year    `db:"year" json:"year" validate:"required"`
	ParentTargetID *string `db:"parent_target_id" json:"parent_target_id,omitempty"`
}

func (t Target) IsRoot() bool {
	return t.ParentTargetID == nil || *t.ParentTargetID == ""
}

// Key returns the value of the grouping field k.
func (t Target) Key(k GroupKey) string {
	switch k {
	case GroupByVertical:
		return t.VerticalID
	case GroupByGeography:
		return t.GeographyID
	}
	return ""
}

// WithKey returns a copy of t whose grouping field k is set to v.
func (t Target) WithKey(k GroupKey, v string) Target {
	switch k {
	case GroupByVertical:
		t.VerticalID = v
	case GroupByGeography:
		t.GeographyID = v
	}
	return t
}

type ConversionRatio struct {
	ID         string  `db:"id" json:"id"`
	VerticalID *string `db:"vertical_id" json:"vertical_id,omitempty"`
	FromMetric string  `db:"from_metric" json:"from_metric" validate:"required"`
	ToMetric   string  `db:"to_metric" json:"to_metric" validate:"required,nefield=FromMetric"`
	Ratio      float64 `db:"ratio" json:"ratio" validate:"gt=0"`
	// PerUnit is the unit of FromMetric the ratio is quoted against
	// (20 employees per usd_million); OutUnit is the unit of the result.
	PerUnit string `db:"per_unit" json:"per_unit"`
	OutUnit string `db:"out_unit" json:"out_unit"`
	Unit    string `db:"unit" json:"unit"`
	Source  string `db:"source" json:"source"`
}

func (r ConversionRatio) IsGlobal() bool {
	return r.VerticalID == nil || *r.VerticalID == ""
}

type ApportionmentRule struct {
	ID              string  `db:"id" json:"id"`
	FromGeographyID string  `db:"from_geography_id" json:"from_geography_id" validate:"required"`
	ToGeographyID   string  `db:"to_geography_id" json:"to_geography_id" validate:"required"`
	VerticalID      *string `db:"vertical_id" json:"vertical_id,omitempty"`
	Percentage      float64 `db:"percentage" json:"percentage" validate:"gte=0,lte=100"`
	Status          string  `db:"status" json:"status"`
	Basis           string  `db:"basis" json:"basis"`
	Confidence      string  `db:"confidence" json:"confidence"`
}

func (r ApportionmentRule) Active() bool {
	return r.Status == RuleStatusActive
}

type GeographyPremium struct {
	GeographyID string  `db:"geography_id" json:"geography_id" validate:"required"`
	Multiplier  float64 `db:"multiplier" json:"multiplier" validate:"gt=0"`
	Basis       string  `db:"basis" json:"basis"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}
