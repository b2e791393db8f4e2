package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/evaluation"
)

func main() {
	goldenPath := "config/golden_cases.json"
	if len(os.Args) > 1 {
		goldenPath = os.Args[1]
	} else if _, err := os.Stat("backend/" + goldenPath); err == nil {
		goldenPath = "backend/" + goldenPath
	}

	cases, err := evaluation.LoadGoldenCases(goldenPath)
	if err != nil {
		log.Fatalf("Failed to load golden cases: %v", err)
	}
	if err := evaluation.ValidateGoldenCases(cases); err != nil {
		log.Fatalf("Invalid golden cases: %v", err)
	}

	// Golden cases reference the deterministic seed roster, so the
	// evaluation needs no directory connection.
	scoring := services.NewRiskScoringService()
	members := services.NewMemberSeedService(scoring).BuildRoster(services.DefaultSeedCount)

	filterService := services.NewRiskFilterService(services.NewTieredMemberMatcher())
	guardrails := evaluation.NewGuardrails(evaluation.GuardrailConfig{
		MaxEntries:   services.MaxFilterEntries,
		MinRiskScore: services.RiskScoreThreshold,
	})

	runner := evaluation.NewRunner(filterService, members, guardrails)
	summary, err := runner.Run(context.Background(), cases)
	if err != nil {
		log.Fatalf("Evaluation failed: %v", err)
	}

	out, _ := json.MarshalIndent(summary, "", "  ")
	fmt.Println(string(out))
}
