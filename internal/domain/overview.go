package domain

type EntityRef struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Dimension Dimension `json:"dimension"`
}

type VerticalSummary struct {
	Vertical    Vertical `json:"vertical"`
	Totals      Totals   `json:"totals"`
	TargetCount int      `json:"target_count"`
}

type GeographySummary struct {
	Geography Geography `json:"geography"`
	Tier      string    `json:"tier"`
	Totals    Totals    `json:"totals"`
}

type TierGroup struct {
	Tier        string             `json:"tier"`
	Geographies []GeographySummary `json:"geographies"`
	Totals      Totals             `json:"totals"`
}

type BreakdownRow struct {
	Entity EntityRef `json:"entity"`
	Totals Totals    `json:"totals"`
}

// Derivation records one metric projected from another.
type Derivation struct {
	Metric  Metric  `json:"metric"`
	From    Metric  `json:"from"`
	Value   float64 `json:"value"`
	Unit    string  `json:"unit"`
	Ratio   float64 `json:"ratio"`
	Premium float64 `json:"premium,omitempty"`
	Source  string  `json:"source,omitempty"`
}

type EntityDetails struct {
	Entity EntityRef `json:"entity"`
	Year   Year      `json:"year"`
	// Category is set for verticals, Tier for geographies.
	Category    string         `json:"category,omitempty"`
	Tier        string         `json:"tier,omitempty"`
	Totals      Totals         `json:"totals"`
	Breakdown   []BreakdownRow `json:"breakdown"`
	Projected   Totals         `json:"projected"`
	Derivations []Derivation   `json:"derivations,omitempty"`
}

type ReferenceData struct {
	Verticals   []Vertical  `json:"verticals"`
	Geographies []Geography `json:"geographies"`
	Factors     []Factor    `json:"factors"`
}

type Allocation struct {
	From       EntityRef `json:"from"`
	To         EntityRef `json:"to"`
	Percentage float64   `json:"percentage"`
	Basis      string    `json:"basis,omitempty"`
	Confidence string    `json:"confidence,omitempty"`
	Totals     Totals    `json:"totals"`
}

type Apportionment struct {
	Vertical    EntityRef    `json:"vertical"`
	Year        Year         `json:"year"`
	Allocations []Allocation `json:"allocations"`
}

// ViewPayload is what the active tab of an AppState renders.
type ViewPayload struct {
	State       AppState           `json:"state"`
	Verticals   []VerticalSummary  `json:"verticals,omitempty"`
	Geographies []TierGroup        `json:"geographies,omitempty"`
	Factors     []Factor           `json:"factors,omitempty"`
	Reference   *ReferenceData     `json:"reference,omitempty"`
	Summary     *OverviewHeadlines `json:"summary,omitempty"`
}

// OverviewHeadlines are the state-wide numbers of the landing tab.
type OverviewHeadlines struct {
	Totals         Totals `json:"totals"`
	VerticalCount  int    `json:"vertical_count"`
	GeographyCount int    `json:"geography_count"`
}
