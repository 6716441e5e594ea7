package dto

import "github.com/ougirez/econdash/internal/domain"

// GeographyDashboardRow is one row of geography_dashboard_view: root target
// totals of a geography for a year, summed server side.
type GeographyDashboardRow struct {
	GeographyID   string         `db:"geography_id" json:"geography_id" validate:"required"`
	GeographyName string         `db:"geography_name" json:"geography_name"`
	Tier          string         `db:"tier" json:"tier"`
	Year          domain.Year    `db:"year" json:"year"`
	Revenue       domain.Numeric `db:"revenue" json:"revenue"`
	Employment    domain.Numeric `db:"employment" json:"employment"`
	Land          domain.Numeric `db:"land" json:"land"`
	Capital       domain.Numeric `db:"capital" json:"capital"`
	TargetCount   int            `db:"target_count" json:"target_count"`
}

// VerticalDistributionRow is one row of vertical_distribution_view.
type VerticalDistributionRow struct {
	VerticalID   string         `db:"vertical_id" json:"vertical_id" validate:"required"`
	VerticalName string         `db:"vertical_name" json:"vertical_name"`
	Category     string         `db:"category" json:"category"`
	Year         domain.Year    `db:"year" json:"year"`
	Revenue      domain.Numeric `db:"revenue" json:"revenue"`
	Employment   domain.Numeric `db:"employment" json:"employment"`
	Land         domain.Numeric `db:"land" json:"land"`
	Capital      domain.Numeric `db:"capital" json:"capital"`
	TargetCount  int            `db:"target_count" json:"target_count"`
}

func totals(revenue, employment, land, capital domain.Numeric) domain.Totals {
	return domain.Totals{
		domain.MetricRevenue:    revenue.Float64(),
		domain.MetricEmployment: employment.Float64(),
		domain.MetricLand:       land.Float64(),
		domain.MetricCapital:    capital.Float64(),
	}
}

func (r GeographyDashboardRow) Totals() domain.Totals {
	return totals(r.Revenue, r.Employment, r.Land, r.Capital)
}

func (r VerticalDistributionRow) Totals() domain.Totals {
	return totals(r.Revenue, r.Employment, r.Land, r.Capital)
}
