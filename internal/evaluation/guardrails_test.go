package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGuardrails_Check(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinAccuracy: 0.8, MinRecallAtK: 0.9, MinMRRAtK: 0.5})

	passing := &Report{
		Sentiment: SentimentReport{Total: 10, Accuracy: 0.9},
		Ranking:   RankingReport{TotalQueries: 4, K: 5, AvgRecallAtK: 1, AvgMRRAtK: 0.6},
	}
	assert.True(t, g.Passed(passing))

	failing := &Report{
		Sentiment: SentimentReport{Total: 10, Accuracy: 0.7},
		Ranking:   RankingReport{TotalQueries: 4, K: 5, AvgRecallAtK: 0.5, AvgMRRAtK: 0.4},
	}
	assert.Len(t, g.Check(failing), 3)
	assert.False(t, g.Passed(nil))
}

func TestGuardrails_IgnoreEmptySections(t *testing.T) {
	g := NewGuardrails(GuardrailConfig{MinAccuracy: 1, MinRecallAtK: 1, MinMRRAtK: 1})

	assert.Empty(t, g.Check(&Report{}))
}
