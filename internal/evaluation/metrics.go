package evaluation

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func truncate(ids []string, k int) []string {
	if k < len(ids) {
		return ids[:k]
	}
	return ids
}

// RecallAtK reports what fraction of the relevant ids appear within the
// first k retrieved ids. Returns 0.0 when relevant is empty.
func RecallAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	found := 0
	for _, id := range truncate(retrieved, k) {
		if _, ok := relevantSet[id]; ok {
			found++
		}
	}

	return float64(found) / float64(len(relevant))
}

// MRRAtK reports the reciprocal rank of the first relevant id within
// the first k retrieved ids, or 0.0 when none of them is relevant.
func MRRAtK(relevant, retrieved []string, k int) float64 {
	if len(relevant) == 0 {
		return 0.0
	}

	relevantSet := toSet(relevant)
	for i, id := range truncate(retrieved, k) {
		if _, ok := relevantSet[id]; ok {
			return 1.0 / float64(i+1)
		}
	}

	return 0.0
}
