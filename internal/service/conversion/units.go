package conversion

import (
	"fmt"

	"github.com/ougirez/econdash/internal/domain"
	"github.com/ougirez/econdash/internal/pkg/constants"
)

type Unit string

const (
	USD        Unit = "usd"
	USDMillion Unit = "usd_million"
	USDBillion Unit = "usd_billion"

	Employees         Unit = "employees"
	EmployeesThousand Unit = "employees_thousand"

	Sqft    Unit = "sqft"
	Acre    Unit = "acre"
	Hectare Unit = "hectare"
)

type unitInfo struct {
	dimension string
	scale     float64
}

var units = map[Unit]unitInfo{
	USD:               {"currency", 1},
	USDMillion:        {"currency", 1e6},
	USDBillion:        {"currency", 1e9},
	Employees:         {"headcount", 1},
	EmployeesThousand: {"headcount", 1e3},
	Sqft:              {"area", 1},
	Acre:              {"area", 43560},
	Hectare:           {"area", 107639.104},
}

func (u Unit) Known() bool {
	_, ok := units[u]
	return ok
}

// Convert rescales v between two units of the same dimension.
func Convert(v float64, from, to Unit) (float64, error) {
	if from == to {
		return v, nil
	}

	fi, ok := units[from]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", constants.ErrUnitMismatch, from)
	}
	ti, ok := units[to]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q", constants.ErrUnitMismatch, to)
	}
	if fi.dimension != ti.dimension {
		return 0, fmt.Errorf("%w: %s is %s, %s is %s", constants.ErrUnitMismatch, from, fi.dimension, to, ti.dimension)
	}

	return v * (fi.scale / ti.scale), nil
}

type Quantity struct {
	Metric domain.Metric `json:"metric"`
	Value  float64       `json:"value"`
	Unit   Unit          `json:"unit"`
}

// MetricUnits records the unit each metric is stored in.
type MetricUnits map[domain.Metric]Unit

func DefaultMetricUnits() MetricUnits {
	return MetricUnits{
		domain.MetricRevenue:    USDBillion,
		domain.MetricEmployment: Employees,
		domain.MetricLand:       Acre,
		domain.MetricCapital:    USDMillion,
	}
}

// MetricUnitsFromConfig overrides DefaultMetricUnits; unknown units are
// rejected.
func MetricUnitsFromConfig(overrides map[string]string) (MetricUnits, error) {
	out := DefaultMetricUnits()
	for m, u := range overrides {
		unit := Unit(u)
		if !unit.Known() {
			return nil, fmt.Errorf("%w: unknown unit %q for metric %s", constants.ErrUnitMismatch, u, m)
		}
		out[domain.Metric(m)] = unit
	}
	return out, nil
}

func (mu MetricUnits) Of(m domain.Metric) Unit {
	return mu[m]
}
