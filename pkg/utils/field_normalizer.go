package utils

import "strings"

// NormalizeKey collapses a header or label to lowercase alphanumerics
// so that "Blood Pressure", "blood_pressure" and "BloodPressure" all
// compare equal.
func NormalizeKey(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	for _, ch := range trimmed {
		if (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// NormalizeIdentifier converts a string to a normalized identifier
// (lowercase, runs of non-alphanumerics collapsed to single underscores)
func NormalizeIdentifier(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var out string
	lastUnderscore := false

	for _, ch := range trimmed {
		isAlphaNum := (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		if isAlphaNum {
			out += string(ch)
			lastUnderscore = false
		} else if !lastUnderscore {
			out += "_"
			lastUnderscore = true
		}
	}

	// Clean up leading/trailing underscores
	out = strings.Trim(out, "_")
	return out
}

// Slugify converts a name to a hyphenated lowercase slug, used to
// synthesize member ids and company email addresses.
func Slugify(value string) string {
	trimmed := strings.TrimSpace(strings.ToLower(value))
	if trimmed == "" {
		return ""
	}

	var out string
	lastHyphen := false

	for _, ch := range trimmed {
		isAlphaNum := (ch >= 'a' && ch <= 'z') || (ch >= '0' && ch <= '9')
		if isAlphaNum {
			out += string(ch)
			lastHyphen = false
		} else if !lastHyphen {
			out += "-"
			lastHyphen = true
		}
	}

	return strings.Trim(out, "-")
}

// TitleCase capitalizes each word, leaving small connecting words lowercase
func TitleCase(text string) string {
	if text == "" {
		return ""
	}

	words := strings.Fields(strings.ToLower(text))
	result := make([]string, len(words))

	for i, word := range words {
		if i > 0 && (word == "and" || word == "or" || word == "the" || word == "a" || word == "an" || word == "of" || word == "in" || word == "to" || word == "for") {
			result[i] = word
		} else if len(word) > 0 {
			result[i] = strings.ToUpper(word[:1]) + word[1:]
		} else {
			result[i] = word
		}
	}

	return strings.Join(result, " ")
}

// Tokenize splits a name into lowercase word tokens
func Tokenize(value string) []string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(value)))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		cleaned := NormalizeKey(f)
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}
