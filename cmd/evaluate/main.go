package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/localserve/backend/internal/application/services"
	"github.com/localserve/backend/internal/evaluation"
	"github.com/localserve/backend/internal/infrastructure/observability"
	"github.com/localserve/backend/pkg/config"
)

func main() {
	goldenPath := flag.String("golden", "config/golden_set.json", "path to the golden set")
	minAccuracy := flag.Float64("min-accuracy", 0.8, "minimum sentiment accuracy")
	minRecall := flag.Float64("min-recall", 0.8, "minimum average ranking recall@k")
	minMRR := flag.Float64("min-mrr", 0.7, "minimum average ranking mrr@k")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := observability.InitLogger("localserve-evaluate", cfg.Server.Env, cfg.Server.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	set, err := evaluation.LoadGoldenSet(*goldenPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *goldenPath).Msg("Failed to load golden set")
	}
	if err := evaluation.ValidateGoldenSet(set); err != nil {
		log.Fatal().Err(err).Msg("Golden set is invalid")
	}

	policy := services.DefaultRankingPolicy()
	policy.RatingWeight = cfg.Ranking.RatingWeight
	policy.AvailabilityWeight = cfg.Ranking.AvailabilityWeight
	policy.LocationWeight = cfg.Ranking.LocationWeight

	runner := evaluation.NewRunner(
		services.NewSentimentClassifier(services.WithThreshold(cfg.Ranking.SentimentThreshold)),
		services.NewServiceRankingServiceWithPolicy(policy),
	)
	report, err := runner.Run(context.Background(), set)
	if err != nil {
		log.Fatal().Err(err).Msg("Evaluation failed")
	}

	out, _ := json.MarshalIndent(report, "", "  ")
	fmt.Println(string(out))

	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MinAccuracy:  *minAccuracy,
		MinRecallAtK: *minRecall,
		MinMRRAtK:    *minMRR,
	})
	if violations := guardrails.Check(report); len(violations) > 0 {
		for _, v := range violations {
			log.Error().Str("violation", v).Msg("Quality guardrail failed")
		}
		os.Exit(1)
	}
	log.Info().
		Float64("accuracy", report.Sentiment.Accuracy).
		Float64("recall_at_k", report.Ranking.AvgRecallAtK).
		Float64("mrr_at_k", report.Ranking.AvgMRRAtK).
		Msg("Evaluation passed")
}
