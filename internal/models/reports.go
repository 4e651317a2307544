package models

// Pillar identifiers for the four analysis domains.
const (
	PillarFinance    = "finance"
	PillarRisk       = "risk"
	PillarCompliance = "compliance"
	PillarMarket     = "market"
)

// Pillars lists the built-in pillar identifiers in dispatch order.
func Pillars() []string {
	return []string{PillarFinance, PillarRisk, PillarCompliance, PillarMarket}
}

// RiskLevel is a categorical risk rating used by the risk pillar and the
// aggregate risk rollup.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Report is the structured payload produced by a pillar agent. One concrete
// type exists per pillar so the decision engine can match exhaustively
// instead of probing string-keyed maps.
type Report interface {
	// Pillar returns the identifier of the pillar that produced this report.
	Pillar() string
}

// FinanceReport is the finance pillar's payload. Metrics holds the pillar's
// sub-metrics (revenue_potential, cost_efficiency, roi_projection,
// funding_requirement), each expected in [0,1].
type FinanceReport struct {
	Analysis   string             `json:"analysis"`
	Metrics    map[string]float64 `json:"metrics,omitempty"`
	Confidence float64            `json:"confidence"`
}

func (FinanceReport) Pillar() string { return PillarFinance }

// RiskReport is the risk pillar's payload. OverallRisk is oriented so that
// 1.0 means maximal risk; the decision engine inverts it when scoring.
type RiskReport struct {
	Analysis           string               `json:"analysis"`
	Categories         map[string]RiskLevel `json:"risk_categories,omitempty"`
	OverallRisk        float64              `json:"overall_risk_score"`
	MitigationPriority []string             `json:"mitigation_priority,omitempty"`
	Confidence         float64              `json:"confidence"`
}

func (RiskReport) Pillar() string { return PillarRisk }

// ComplianceReport is the compliance pillar's payload.
type ComplianceReport struct {
	Analysis           string             `json:"analysis"`
	AreaScores         map[string]float64 `json:"compliance_scores,omitempty"`
	Requirements       []string           `json:"regulatory_requirements,omitempty"`
	Gaps               []string           `json:"compliance_gaps,omitempty"`
	RecommendedActions []string           `json:"recommended_actions,omitempty"`
	OverallCompliance  float64            `json:"overall_compliance_score"`
	Confidence         float64            `json:"confidence"`
}

func (ComplianceReport) Pillar() string { return PillarCompliance }

// MarketMetrics holds the market pillar's categorical assessments.
type MarketMetrics struct {
	SizePotential        string `json:"market_size_potential"`
	CompetitiveIntensity string `json:"competitive_intensity"`
	GrowthOpportunity    string `json:"growth_opportunity"`
	EntryDifficulty      string `json:"market_entry_difficulty"`
	CustomerDemand       string `json:"customer_demand"`
}

// MarketReport is the market pillar's payload.
type MarketReport struct {
	Analysis      string        `json:"analysis"`
	Metrics       MarketMetrics `json:"market_metrics"`
	Segments      []string      `json:"market_segments,omitempty"`
	GrowthDrivers []string      `json:"growth_drivers,omitempty"`
	Challenges    []string      `json:"market_challenges,omitempty"`
	OverallScore  float64       `json:"overall_market_score"`
	Confidence    float64       `json:"confidence"`
}

func (MarketReport) Pillar() string { return PillarMarket }
