package pillars

import (
	"context"
	"fmt"
	"strings"

	"github.com/consilium-ai/consilium/internal/models"
)

// MarketParams tunes the market agent's attractiveness scoring.
type MarketParams struct {
	PositiveIndicators []string `mapstructure:"positive_indicators"`
	NegativeIndicators []string `mapstructure:"negative_indicators"`
	Confidence         float64  `mapstructure:"confidence"`
}

func defaultMarketParams() MarketParams {
	return MarketParams{
		PositiveIndicators: []string{"opportunity", "growth", "potential", "attractive", "promising"},
		NegativeIndicators: []string{"challenge", "difficult", "risk", "threat", "barrier"},
		Confidence:         0.87,
	}
}

var (
	largeMarketIndicators  = []string{"large market", "billion", "massive", "huge", "enormous", "significant market"}
	mediumMarketIndicators = []string{"medium market", "million", "moderate", "substantial", "growing market"}
	smallMarketIndicators  = []string{"small market", "niche", "limited", "narrow", "specialized"}

	highCompetitionIndicators   = []string{"intense competition", "highly competitive", "saturated", "many competitors"}
	mediumCompetitionIndicators = []string{"moderate competition", "some competitors", "competitive landscape"}
	lowCompetitionIndicators    = []string{"low competition", "few competitors", "emerging market", "blue ocean"}

	highBarrierIndicators   = []string{"high barriers", "difficult entry", "complex", "regulated", "capital intensive"}
	mediumBarrierIndicators = []string{"moderate barriers", "some challenges", "established players"}
	lowBarrierIndicators    = []string{"low barriers", "easy entry", "open market", "accessible"}

	growthIndicators  = []string{"growth", "expanding", "increasing", "rising", "growing", "opportunity"}
	declineIndicators = []string{"declining", "shrinking", "decreasing", "falling", "stagnant"}

	strongDemandIndicators = []string{"high demand", "strong demand", "increasing demand", "growing interest"}
	weakDemandIndicators   = []string{"low demand", "weak demand", "declining interest", "limited demand"}
)

// segmentTriggers, driverTriggers, and challengeTriggers label markets from
// scenario terms.
var segmentTriggers = []trigger{
	{"Young Adults/Digital Natives", []string{"young", "millennial", "gen z"}},
	{"Business/Enterprise", []string{"business", "enterprise", "b2b"}},
	{"Individual Consumers", []string{"consumer", "individual", "personal"}},
	{"Small and Medium Enterprises", []string{"small business", "sme", "startup"}},
}

var driverTriggers = []trigger{
	{"Technological Innovation", []string{"technology", "digital", "innovation"}},
	{"Market Demand", []string{"demand", "need", "requirement"}},
	{"Regulatory Changes", []string{"regulation", "policy", "government"}},
	{"Economic Growth", []string{"economic", "growth", "expansion"}},
}

var challengeTriggers = []trigger{
	{"Intense Competition", []string{"competition", "competitive"}},
	{"Regulatory Complexity", []string{"regulation", "compliance"}},
	{"Cost Pressures", []string{"cost", "expensive", "pricing"}},
	{"Technical Challenges", []string{"technology", "technical"}},
}

// MarketAgent rates market attractiveness from positive vs negative
// language plus categorical sizing, competition, and barrier assessments.
type MarketAgent struct {
	params MarketParams
}

func NewMarketAgent(params MarketParams) *MarketAgent {
	def := defaultMarketParams()
	if len(params.PositiveIndicators) == 0 {
		params.PositiveIndicators = def.PositiveIndicators
	}
	if len(params.NegativeIndicators) == 0 {
		params.NegativeIndicators = def.NegativeIndicators
	}
	if params.Confidence <= 0 {
		params.Confidence = def.Confidence
	}
	return &MarketAgent{params: params}
}

// demandLevel grades customer demand from the two signal tallies. With no
// demand language either way the grade stays neutral.
func demandLevel(strong, weak int) string {
	switch {
	case strong > weak:
		return "HIGH"
	case weak > strong:
		return "LOW"
	default:
		return "MEDIUM"
	}
}

func (a *MarketAgent) Name() string { return models.PillarMarket }

func (a *MarketAgent) Analyze(ctx context.Context, scenario string) Outcome {
	if err := ctx.Err(); err != nil {
		return Failure(err)
	}

	text := strings.ToLower(scenario)

	metrics := models.MarketMetrics{
		SizePotential:        gradeLevel(countPresent(text, largeMarketIndicators), countPresent(text, mediumMarketIndicators), countPresent(text, smallMarketIndicators), "LARGE", "MEDIUM", "SMALL"),
		CompetitiveIntensity: gradeLevel(countPresent(text, highCompetitionIndicators), countPresent(text, mediumCompetitionIndicators), countPresent(text, lowCompetitionIndicators), "HIGH", "MEDIUM", "LOW"),
		GrowthOpportunity:    fmt.Sprintf("%.2f", ratioScore(countOccurrences(text, growthIndicators), countOccurrences(text, declineIndicators))),
		EntryDifficulty:      gradeLevel(countPresent(text, highBarrierIndicators), countPresent(text, mediumBarrierIndicators), countPresent(text, lowBarrierIndicators), "HIGH", "MEDIUM", "LOW"),
		CustomerDemand:       demandLevel(countPresent(text, strongDemandIndicators), countPresent(text, weakDemandIndicators)),
	}

	overall := ratioScore(
		countOccurrences(text, a.params.PositiveIndicators),
		countOccurrences(text, a.params.NegativeIndicators),
	)

	return Success(models.MarketReport{
		Analysis:      fmt.Sprintf("Market screening: attractiveness %.2f, size %s, competition %s", overall, metrics.SizePotential, metrics.CompetitiveIntensity),
		Metrics:       metrics,
		Segments:      matchLabels(text, segmentTriggers, 3, []string{"General Market", "Early Adopters"}),
		GrowthDrivers: matchLabels(text, driverTriggers, 3, []string{"Market Expansion", "Customer Adoption"}),
		Challenges:    matchLabels(text, challengeTriggers, 3, []string{"Market Entry", "Customer Acquisition"}),
		OverallScore:  overall,
		Confidence:    a.params.Confidence,
	})
}
