package evaluation

import (
	"context"
	"fmt"
	"time"

	"github.com/synchealth/wellness-backend/internal/application/services"
	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// Runner replays golden AI responses through the resolution pipeline
// and scores the resolved member ids against the expected ones.
type Runner struct {
	filterService *services.RiskFilterService
	members       []entities.Member
	guardrails    *Guardrails
}

func NewRunner(filterService *services.RiskFilterService, members []entities.Member, guardrails *Guardrails) *Runner {
	return &Runner{
		filterService: filterService,
		members:       members,
		guardrails:    guardrails,
	}
}

func (r *Runner) Run(ctx context.Context, cases []GoldenCase) (*EvalSummary, error) {
	summary := &EvalSummary{
		TotalCases:   len(cases),
		ByDifficulty: make(map[Difficulty]*DifficultySummary),
	}

	for _, gc := range cases {
		start := time.Now()
		filter := r.filterService.Resolve(ctx, gc.RawResponse, gc.Prompt, r.members)
		duration := time.Since(start)

		var resolvedIDs []string
		entryCount := 0
		if filter != nil {
			resolvedIDs = filter.MemberIDs()
			entryCount = len(filter.Entries)
		}

		if r.guardrails != nil {
			for _, fault := range r.guardrails.Check(filter) {
				summary.GuardrailFaults = append(summary.GuardrailFaults, fmt.Sprintf("%s: %s", gc.ID, fault))
			}
		}

		result := EvalResult{
			CaseID:      gc.ID,
			Prompt:      gc.Prompt,
			Difficulty:  gc.Difficulty,
			RecallAt10:  RecallAtK(gc.ExpectedMemberIDs, resolvedIDs, 10),
			MRRAt10:     MRRAtK(gc.ExpectedMemberIDs, resolvedIDs, 10),
			EntryCount:  entryCount,
			ResolvedIDs: resolvedIDs,
			Latency:     duration,
		}

		r.updateSummary(summary, result)
	}

	r.finalizeSummary(summary)
	return summary, nil
}

func (r *Runner) updateSummary(s *EvalSummary, res EvalResult) {
	s.AvgRecallAt10 += res.RecallAt10
	s.AvgMRRAt10 += res.MRRAt10
	s.AvgLatency += res.Latency
	if res.EntryCount > 0 {
		s.CasesWithFilter++
	}

	if _, ok := s.ByDifficulty[res.Difficulty]; !ok {
		s.ByDifficulty[res.Difficulty] = &DifficultySummary{}
	}
	ds := s.ByDifficulty[res.Difficulty]
	ds.Count++
	ds.AvgRecallAt10 += res.RecallAt10
	ds.AvgMRRAt10 += res.MRRAt10
}

func (r *Runner) finalizeSummary(s *EvalSummary) {
	if s.TotalCases > 0 {
		n := float64(s.TotalCases)
		s.AvgRecallAt10 /= n
		s.AvgMRRAt10 /= n
		s.AvgLatency /= time.Duration(s.TotalCases)
	}

	for _, ds := range s.ByDifficulty {
		if ds.Count > 0 {
			n := float64(ds.Count)
			ds.AvgRecallAt10 /= n
			ds.AvgMRRAt10 /= n
		}
	}
}
