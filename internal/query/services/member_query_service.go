package services

import (
	"sort"
	"strings"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
)

// MemberFilter holds the dashboard's member filtering criteria. All
// populated criteria combine with AND.
type MemberFilter struct {
	Query      string
	Department string
	Gender     string
	AgeMin     *int
	AgeMax     *int
	WeightMin  *float64
	WeightMax  *float64
}

// MemberQueryService handles read-only member filtering and ranking
type MemberQueryService struct{}

// NewMemberQueryService creates a new member query service
func NewMemberQueryService() *MemberQueryService {
	return &MemberQueryService{}
}

// Filter applies text and demographic criteria, then, when an AI risk
// filter is active, restricts the result to resolved members ordered
// by their filter score descending.
func (s *MemberQueryService) Filter(members []entities.Member, filter MemberFilter, aiFilter *entities.AIRiskFilter) []entities.Member {
	matched := make([]entities.Member, 0, len(members))
	for _, m := range members {
		if s.matches(m, filter) {
			matched = append(matched, m)
		}
	}

	if aiFilter == nil {
		return matched
	}

	return restrictToFilter(matched, aiFilter)
}

// Departments returns the sorted distinct department list
func (s *MemberQueryService) Departments(members []entities.Member) []string {
	seen := make(map[string]struct{})
	var departments []string
	for _, m := range members {
		if _, ok := seen[m.Department]; ok {
			continue
		}
		seen[m.Department] = struct{}{}
		departments = append(departments, m.Department)
	}
	sort.Strings(departments)
	return departments
}

func (s *MemberQueryService) matches(m entities.Member, filter MemberFilter) bool {
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		haystack := strings.ToLower(m.FullName + " " + m.Department + " " + string(m.OverallRisk))
		if !strings.Contains(haystack, q) {
			return false
		}
	}

	if filter.Department != "" && !strings.EqualFold(m.Department, filter.Department) {
		return false
	}
	if filter.Gender != "" && !strings.EqualFold(string(m.Gender), filter.Gender) {
		return false
	}
	if filter.AgeMin != nil && m.Age < *filter.AgeMin {
		return false
	}
	if filter.AgeMax != nil && m.Age > *filter.AgeMax {
		return false
	}
	if filter.WeightMin != nil && m.WeightKg < *filter.WeightMin {
		return false
	}
	if filter.WeightMax != nil && m.WeightKg > *filter.WeightMax {
		return false
	}

	return true
}

// restrictToFilter keeps only members the AI filter resolved and
// orders them by the filter's risk score descending.
func restrictToFilter(members []entities.Member, aiFilter *entities.AIRiskFilter) []entities.Member {
	scores := make(map[string]float64, len(aiFilter.Entries))
	for _, entry := range aiFilter.Entries {
		if entry.MemberID != "" {
			scores[entry.MemberID] = entry.RiskScore
		}
	}

	restricted := make([]entities.Member, 0, len(scores))
	for _, m := range members {
		if _, ok := scores[m.ID]; ok {
			restricted = append(restricted, m)
		}
	}

	sort.SliceStable(restricted, func(i, j int) bool {
		return scores[restricted[i].ID] > scores[restricted[j].ID]
	})

	return restricted
}
