package domain

type Tab string

const (
	TabOverview    Tab = "overview"
	TabVerticals   Tab = "verticals"
	TabGeographies Tab = "geographies"
	TabFactors     Tab = "factors"
)

func (t Tab) Valid() bool {
	switch t {
	case TabOverview, TabVerticals, TabGeographies, TabFactors:
		return true
	}
	return false
}

// AppState is the whole navigation state of a dashboard session. Transitions
// return a new value and never mutate the receiver.
type AppState struct {
	Tab      Tab    `json:"tab"`
	Category string `json:"category"`
	Year     Year   `json:"year"`
}

func DefaultAppState(year Year) AppState {
	return AppState{Tab: TabOverview, Category: CategoryCore, Year: year}
}

func (s AppState) SwitchTab(tab Tab) (AppState, bool) {
	if !tab.Valid() {
		return s, false
	}
	s.Tab = tab
	return s, true
}

func (s AppState) SelectCategory(category string) (AppState, bool) {
	switch category {
	case CategoryCore, CategoryDigitizing, CategoryAll:
	default:
		return s, false
	}
	s.Category = category
	return s, true
}

func (s AppState) SelectYear(year Year) (AppState, bool) {
	if year <= 0 {
		return s, false
	}
	s.Year = year
	return s, true
}
