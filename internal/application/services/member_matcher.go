package services

import (
	"strings"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/pkg/utils"
)

// TieredMemberMatcher resolves extracted employee names to registered
// members through three tiers, strongest first: exact case-insensitive
// match, substring containment in either direction, then token overlap
// of at least half the tokens.
type TieredMemberMatcher struct {
	minTokenOverlap float64
}

// NewTieredMemberMatcher creates a matcher with the default overlap threshold
func NewTieredMemberMatcher() *TieredMemberMatcher {
	return &TieredMemberMatcher{minTokenOverlap: 0.5}
}

// Match returns the best matching member, or nil when no tier qualifies
func (m *TieredMemberMatcher) Match(name string, members []entities.Member) *entities.Member {
	candidate := strings.TrimSpace(name)
	if candidate == "" {
		return nil
	}

	for i := range members {
		if strings.EqualFold(candidate, members[i].FullName) {
			return &members[i]
		}
	}

	lowered := strings.ToLower(candidate)
	for i := range members {
		memberName := strings.ToLower(members[i].FullName)
		if strings.Contains(memberName, lowered) || strings.Contains(lowered, memberName) {
			return &members[i]
		}
	}

	candidateTokens := utils.Tokenize(candidate)
	if len(candidateTokens) == 0 {
		return nil
	}

	var best *entities.Member
	bestScore := 0.0
	for i := range members {
		score := tokenOverlap(candidateTokens, utils.Tokenize(members[i].FullName))
		if score >= m.minTokenOverlap && score > bestScore {
			best = &members[i]
			bestScore = score
		}
	}
	return best
}

// tokenOverlap returns shared tokens over the larger token count.
// Zero shared tokens always scores zero.
func tokenOverlap(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}

	shared := 0
	for _, t := range b {
		if _, ok := set[t]; ok {
			shared++
		}
	}
	if shared == 0 {
		return 0
	}

	larger := len(a)
	if len(b) > larger {
		larger = len(b)
	}
	return float64(shared) / float64(larger)
}
