package evaluation

import "fmt"

// GuardrailConfig sets the minimum quality a report must reach.
type GuardrailConfig struct {
	MinAccuracy  float64
	MinRecallAtK float64
	MinMRRAtK    float64
}

type Guardrails struct {
	config GuardrailConfig
}

func NewGuardrails(config GuardrailConfig) *Guardrails {
	return &Guardrails{config: config}
}

// Check returns one message per threshold the report falls below.
func (g *Guardrails) Check(report *Report) []string {
	var violations []string
	if report == nil {
		return []string{"no report"}
	}
	if report.Sentiment.Total > 0 && report.Sentiment.Accuracy < g.config.MinAccuracy {
		violations = append(violations, fmt.Sprintf("sentiment accuracy %.3f below %.3f", report.Sentiment.Accuracy, g.config.MinAccuracy))
	}
	if report.Ranking.TotalQueries > 0 {
		if report.Ranking.AvgRecallAtK < g.config.MinRecallAtK {
			violations = append(violations, fmt.Sprintf("ranking recall@%d %.3f below %.3f", report.Ranking.K, report.Ranking.AvgRecallAtK, g.config.MinRecallAtK))
		}
		if report.Ranking.AvgMRRAtK < g.config.MinMRRAtK {
			violations = append(violations, fmt.Sprintf("ranking mrr@%d %.3f below %.3f", report.Ranking.K, report.Ranking.AvgMRRAtK, g.config.MinMRRAtK))
		}
	}
	return violations
}

// Passed reports whether the report clears every threshold.
func (g *Guardrails) Passed(report *Report) bool {
	return len(g.Check(report)) == 0
}
