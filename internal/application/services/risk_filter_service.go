package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/synchealth/wellness-backend/internal/domain/entities"
	"github.com/synchealth/wellness-backend/internal/domain/providers"
	"github.com/synchealth/wellness-backend/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RiskScoreThreshold is the minimum percentage an entry must reach to
// appear in a risk filter.
const RiskScoreThreshold = 30.0

// MaxFilterEntries caps a risk filter at the ten highest scores
const MaxFilterEntries = 10

// Free-text line shapes, tried in order. Table rows and explicit
// "score:" lines go first so the generic dash separator cannot
// swallow them.
var (
	tableRowPattern      = regexp.MustCompile(`^\s*\|\s*([^|]+?)\s*\|[^|]*?(\d{1,3}(?:\.\d+)?)\s*%`)
	scoreLinePattern     = regexp.MustCompile(`(?i)^\s*(?:\d+[.)]\s*)?[-*•]?\s*(.+?)\s*(?:risk\s*)?score\s*[:=]\s*(\d{1,3}(?:\.\d+)?)\s*%`)
	dashLinePattern      = regexp.MustCompile(`^\s*(?:\d+[.)]\s*)?[-*•]?\s*(.+?)\s*[-–—:]\s*(\d{1,3}(?:\.\d+)?)\s*%`)
	parentheticalPattern = regexp.MustCompile(`^\s*(?:\d+[.)]\s*)?[-*•]?\s*(.+?)\s*\(\s*(\d{1,3}(?:\.\d+)?)\s*%\s*\)`)

	riskOfPattern    = regexp.MustCompile(`(?i)(?:risk\s+(?:of|for)|likely\s+to\s+(?:have|get|develop))\s+(.+?)(\?|\.|$)`)
	wordStartPattern = regexp.MustCompile(`\b[a-z]`)
)

var freeTextLinePatterns = []*regexp.Regexp{
	tableRowPattern,
	scoreLinePattern,
	dashLinePattern,
	parentheticalPattern,
}

// Column headers and filler words that are never employee names
var headerWords = map[string]bool{
	"name":         true,
	"employee":     true,
	"employees":    true,
	"employeename": true,
	"member":       true,
	"risk":         true,
	"riskscore":    true,
	"score":        true,
	"id":           true,
	"total":        true,
}

var knownDiseaseLabels = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`(?i)hypertension`), "Hypertension"},
	{regexp.MustCompile(`(?i)diabetes`), "Diabetes"},
	{regexp.MustCompile(`(?i)cardiovascular`), "Cardiovascular Disease"},
	{regexp.MustCompile(`(?i)heart\s*disease`), "Heart Disease"},
	{regexp.MustCompile(`(?i)stroke`), "Stroke"},
	{regexp.MustCompile(`(?i)obesity|obese`), "Obesity"},
	{regexp.MustCompile(`(?i)cholesterol`), "High Cholesterol"},
	{regexp.MustCompile(`(?i)kidney`), "Kidney Disease"},
	{regexp.MustCompile(`(?i)asthma`), "Asthma"},
	{regexp.MustCompile(`(?i)thyroid`), "Thyroid Disorder"},
}

// RiskFilterService reconciles AI analysis responses against the
// member registry, producing a ranked risk filter or nothing when the
// response carries no usable risk listing.
type RiskFilterService struct {
	matcher providers.MemberMatcher
}

// NewRiskFilterService creates a new risk filter service
func NewRiskFilterService(matcher providers.MemberMatcher) *RiskFilterService {
	return &RiskFilterService{matcher: matcher}
}

// Resolve converts a raw AI response into a risk filter. Returns nil
// when the response is conversational or no entry clears the threshold.
func (s *RiskFilterService) Resolve(ctx context.Context, raw, prompt string, members []entities.Member) *entities.AIRiskFilter {
	normalized := NormalizeAnalysisResponse(raw)

	if normalized.IsStructured() {
		filter := s.resolveStructured(normalized.Structured, prompt, members)
		recordFilterResolution(ctx, "structured", filter)
		return filter
	}

	if !ContainsRiskTable(normalized.Text) {
		recordFilterResolution(ctx, "message", nil)
		return nil
	}

	filter := s.resolveFreeText(normalized.Text, prompt, members)
	recordFilterResolution(ctx, "free_text", filter)
	return filter
}

// FormatForChat renders a raw AI response as a readable chat message
func (s *RiskFilterService) FormatForChat(raw string, members []entities.Member) string {
	normalized := NormalizeAnalysisResponse(raw)
	if !normalized.IsStructured() {
		return normalized.Text
	}

	scored := normalized.Structured.ScoredEmployees
	if len(scored) == 0 {
		return "I analysed your query but found no employees with significant risk scores."
	}

	lookup := buildMemberLookup(members)

	lines := []string{"Here are the employees identified with significant risk:", ""}
	for i, emp := range scored {
		name := emp.EmployeeID
		if member, ok := lookup[normalizeMemberID(emp.EmployeeID)]; ok {
			name = member.FullName
		}
		pct := int(math.Round(emp.RiskProbability * 100))
		lines = append(lines, fmt.Sprintf("%d. %s (%d%% risk)", i+1, name, pct))

		for j, ev := range emp.Evidence {
			if j >= 2 {
				break
			}
			lines = append(lines, "   - "+ev)
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func (s *RiskFilterService) resolveStructured(structured *entities.StructuredAnalysis, prompt string, members []entities.Member) *entities.AIRiskFilter {
	if len(structured.ScoredEmployees) == 0 {
		return nil
	}

	condition := structured.Condition
	if strings.TrimSpace(condition) == "" {
		condition = prompt
	}

	lookup := buildMemberLookup(members)

	var entries []entities.AIRiskEntry
	for _, scored := range structured.ScoredEmployees {
		// Probability arrives as 0..1; keep one decimal of percentage
		riskScore := math.Round(scored.RiskProbability*100*10) / 10
		if riskScore < RiskScoreThreshold {
			continue
		}

		entry := entities.AIRiskEntry{
			EmployeeID:   scored.EmployeeID,
			EmployeeName: scored.EmployeeID,
			RiskScore:    riskScore,
			Confidence:   scored.Confidence,
			Evidence:     scored.Evidence,
		}
		if entry.Confidence == "" {
			entry.Confidence = "unknown"
		}
		if member, ok := lookup[normalizeMemberID(scored.EmployeeID)]; ok {
			entry.MemberID = member.ID
			entry.EmployeeName = member.FullName
		}
		entries = append(entries, entry)
	}

	entries = rankAndCap(entries)
	if len(entries) == 0 {
		return nil
	}

	pretty, err := json.MarshalIndent(structured, "", "  ")
	if err != nil {
		pretty = []byte(structured.Condition)
	}

	return &entities.AIRiskFilter{
		Disease:     ExtractDiseaseName(condition),
		Entries:     entries,
		RawResponse: string(pretty),
	}
}

func (s *RiskFilterService) resolveFreeText(text, prompt string, members []entities.Member) *entities.AIRiskFilter {
	var entries []entities.AIRiskEntry

	for _, line := range strings.Split(text, "\n") {
		name, score, ok := extractLineEntry(line)
		if !ok || score < RiskScoreThreshold {
			continue
		}

		entry := entities.AIRiskEntry{
			EmployeeName: name,
			RiskScore:    score,
		}
		if member := s.matcher.Match(name, members); member != nil {
			entry.MemberID = member.ID
			entry.EmployeeName = member.FullName
		}
		entries = append(entries, entry)
	}

	entries = rankAndCap(entries)
	if len(entries) == 0 {
		return nil
	}

	return &entities.AIRiskFilter{
		Disease:     ExtractDiseaseName(prompt),
		Entries:     entries,
		RawResponse: text,
	}
}

// extractLineEntry pulls a candidate name and percentage from one line
func extractLineEntry(line string) (string, float64, bool) {
	for _, pattern := range freeTextLinePatterns {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}

		name := cleanCandidateName(match[1])
		if name == "" {
			return "", 0, false
		}

		score, err := strconv.ParseFloat(match[2], 64)
		if err != nil || score < 0 || score > 100 {
			return "", 0, false
		}

		return name, score, true
	}
	return "", 0, false
}

// cleanCandidateName strips list markers and markdown, rejecting
// header cells and fragments too short to be a name.
func cleanCandidateName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Trim(name, "*_`\"'")
	name = strings.TrimSpace(name)

	if len(name) < 2 {
		return ""
	}
	if headerWords[utils.NormalizeKey(name)] {
		return ""
	}
	return name
}

// ExtractDiseaseName derives a display label for the analysed
// condition, falling back to a generic label when nothing is
// recognized.
func ExtractDiseaseName(condition string) string {
	for _, known := range knownDiseaseLabels {
		if known.pattern.MatchString(condition) {
			return known.label
		}
	}

	if match := riskOfPattern.FindStringSubmatch(condition); match != nil {
		return strings.TrimSpace(wordStartPattern.ReplaceAllStringFunc(match[1], strings.ToUpper))
	}

	return "Health Risk"
}

func rankAndCap(entries []entities.AIRiskEntry) []entities.AIRiskEntry {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].RiskScore > entries[j].RiskScore
	})
	if len(entries) > MaxFilterEntries {
		entries = entries[:MaxFilterEntries]
	}
	return entries
}

func buildMemberLookup(members []entities.Member) map[string]*entities.Member {
	lookup := make(map[string]*entities.Member, len(members))
	for i := range members {
		lookup[normalizeMemberID(members[i].ID)] = &members[i]
	}
	return lookup
}

func normalizeMemberID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

var (
	filterMetricsOnce     sync.Once
	filterResolvedCounter metric.Int64Counter
)

func recordFilterResolution(ctx context.Context, mode string, filter *entities.AIRiskFilter) {
	filterMetricsOnce.Do(func() {
		meter := otel.Meter("github.com/synchealth/wellness-backend/riskfilter")
		counter, err := meter.Int64Counter(
			"ai.risk_filter.resolutions",
			metric.WithDescription("Number of AI responses resolved into risk filters"),
		)
		if err != nil {
			return
		}
		filterResolvedCounter = counter
	})
	if filterResolvedCounter == nil {
		return
	}

	entryCount := 0
	if filter != nil {
		entryCount = len(filter.Entries)
	}

	filterResolvedCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("resolution.mode", mode),
		attribute.Int("resolution.entries", entryCount),
	))
}
