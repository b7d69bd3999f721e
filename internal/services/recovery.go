package services

import (
	"encoding/json"
	"regexp"
	"strings"

	"alfredoptarigan/ats-analyzer/internal/models"
)

// RecoveryOutcome tags how much of a completion survived recovery.
type RecoveryOutcome int

const (
	// OutcomeEmpty means no object could be recovered and every field holds its default.
	OutcomeEmpty RecoveryOutcome = iota
	// OutcomePartial means an object was parsed but at least one field was defaulted.
	OutcomePartial
	// OutcomeFull means every schema field was present and well typed.
	OutcomeFull
)

func (o RecoveryOutcome) String() string {
	switch o {
	case OutcomeFull:
		return "full"
	case OutcomePartial:
		return "partial"
	default:
		return "empty"
	}
}

const maxObjectCandidates = 16

var codeFencePattern = regexp.MustCompile("```[A-Za-z0-9_+-]*")

// RecoverScoreResult coerces a raw completion into a ScoreResult. It never fails;
// unrecoverable input yields DefaultScoreResult with OutcomeEmpty.
func RecoverScoreResult(raw string) (models.ScoreResult, RecoveryOutcome) {
	result := models.DefaultScoreResult()

	obj, ok := recoverObject(raw, ScoreSchemaKeys[0], ScoreSchemaKeys[len(ScoreSchemaKeys)-1])
	if !ok {
		return result, OutcomeEmpty
	}

	complete := true

	if name, ok := coerceIdentity(lookupField(obj, "name")); ok {
		result.Name = name
	} else {
		complete = false
	}

	if email, ok := coerceIdentity(lookupField(obj, "email")); ok {
		result.Email = email
	} else {
		complete = false
	}

	if score, ok := coerceScore(lookupField(obj, "jScore")); ok {
		result.JScore = score
	} else {
		complete = false
	}

	if score, ok := coerceScore(lookupField(obj, "gScore")); ok {
		result.GScore = score
	} else {
		complete = false
	}

	if complete {
		return result, OutcomeFull
	}
	return result, OutcomePartial
}

// RecoverDetailedReport coerces a raw completion into a DetailedReport. Each top-level
// section is decoded on its own so a malformed section only defaults itself.
func RecoverDetailedReport(raw string) (models.DetailedReport, RecoveryOutcome) {
	report := models.DefaultDetailedReport()

	obj, ok := recoverObject(raw, ReportSchemaKeys[0], ReportSchemaKeys[len(ReportSchemaKeys)-1])
	if !ok {
		return report, OutcomeEmpty
	}

	complete := true
	track := func(ok bool) {
		if !ok {
			complete = false
		}
	}

	if v, ok := coerceIdentity(lookupField(obj, "Job Title Match")); ok {
		report.JobTitleMatch = v
	} else {
		complete = false
	}

	if skills, ok := lookupField(obj, "Skills").(map[string]any); ok {
		if flags, ok := coerceFlags(lookupField(skills, "TechnicalSkills")); ok {
			report.Skills.TechnicalSkills = flags
		} else {
			complete = false
		}
		if flags, ok := coerceFlags(lookupField(skills, "SoftSkills")); ok {
			report.Skills.SoftSkills = flags
		} else {
			complete = false
		}
	} else {
		complete = false
	}

	track(decodeSlice(lookupField(obj, "Suggested Skills"), &report.SuggestedSkills))
	track(decodeSlice(lookupField(obj, "Matched Projects And Internships"), &report.MatchedProjects))
	track(decodeSlice(lookupField(obj, "Rephrased Projects And Internships"), &report.RephrasedProjects))
	track(decodeSlice(lookupField(obj, "Resume Improvement Suggestions"), &report.ImprovementSuggestions))
	track(decodeSlice(lookupField(obj, "Project Title Description Check"), &report.ProjectTitleChecks))

	if v, ok := lookupField(obj, "Grammatical Check").(string); ok {
		report.GrammaticalCheck = strings.TrimSpace(v)
	} else {
		complete = false
	}

	var tips models.RecruiterTips
	if decodeWeak(lookupField(obj, "Recruiter Tips"), &tips) {
		if tips.Suggestions != nil {
			report.RecruiterTips.Suggestions = tips.Suggestions
		}
		if tips.WordsToAvoid != nil {
			report.RecruiterTips.WordsToAvoid = tips.WordsToAvoid
		}
		report.RecruiterTips.WordCount = tips.WordCount
	} else {
		complete = false
	}

	if score, ok := coerceScore(lookupField(obj, "JScore")); ok {
		report.JScore = score
	} else {
		complete = false
	}

	if score, ok := coerceScore(lookupField(obj, "GScore")); ok {
		report.GScore = score
	} else {
		complete = false
	}

	if complete {
		return report, OutcomeFull
	}
	return report, OutcomePartial
}

// recoverObject runs the fallback chain and returns the first JSON object it can parse.
func recoverObject(raw, firstKey, lastKey string) (map[string]any, bool) {
	text := stripCodeFences(raw)
	if text == "" {
		return nil, false
	}

	if obj, ok := parseFirstObject(text); ok {
		return obj, true
	}

	if span, ok := extractBetweenMarkers(text, firstKey, lastKey); ok {
		if obj, ok := parseFirstObject(span); ok {
			return obj, true
		}
	}

	if candidate, ok := closeTruncatedObject(text); ok {
		if obj, ok := parseObject(candidate); ok {
			return obj, true
		}
	}

	return nil, false
}

func stripCodeFences(raw string) string {
	return strings.TrimSpace(codeFencePattern.ReplaceAllString(raw, ""))
}

// balancedObjectFrom finds the first '{' at or after from and returns the half-open
// range up to the brace that brings the depth back to zero. Braces inside string
// literals are ignored.
func balancedObjectFrom(s string, from int) (int, int, bool) {
	if from >= len(s) {
		return 0, 0, false
	}
	rel := strings.IndexByte(s[from:], '{')
	if rel < 0 {
		return 0, 0, false
	}
	start := from + rel

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return start, i + 1, true
			}
		}
	}

	return 0, 0, false
}

// parseFirstObject walks successive top-level balanced candidates so a stray brace
// in a prose preamble does not hide the real object behind it.
func parseFirstObject(text string) (map[string]any, bool) {
	from := 0
	for attempt := 0; attempt < maxObjectCandidates; attempt++ {
		start, end, ok := balancedObjectFrom(text, from)
		if !ok {
			return nil, false
		}
		if obj, ok := parseObject(text[start:end]); ok {
			return obj, true
		}
		// Nested objects of a failed candidate are fields, not the reply.
		from = end
	}
	return nil, false
}

// parseObject decodes candidate strictly, then once more after removing trailing commas.
func parseObject(candidate string) (map[string]any, bool) {
	if obj, ok := decodeObject(candidate); ok {
		return obj, true
	}
	return decodeObject(removeTrailingCommas(candidate))
}

func decodeObject(candidate string) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

// removeTrailingCommas drops commas that directly precede a closing brace or bracket,
// leaving string literals untouched.
func removeTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}

		if c == '"' {
			inString = true
		}

		if c == ',' {
			j := skipSpace(s, i+1)
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}

	return b.String()
}

// extractBetweenMarkers synthesises an object from the span that starts at the quoted
// firstKey and ends after the value of the quoted lastKey.
func extractBetweenMarkers(s, firstKey, lastKey string) (string, bool) {
	startMarker := `"` + firstKey + `"`
	endMarker := `"` + lastKey + `"`

	start := strings.Index(s, startMarker)
	if start < 0 {
		return "", false
	}

	rel := strings.Index(s[start:], endMarker)
	if rel < 0 {
		return "", false
	}

	end := scanValueEnd(s, start+rel+len(endMarker))
	body := strings.TrimRight(strings.TrimSpace(s[start:end]), ",")
	if body == "" {
		return "", false
	}

	return "{" + body + "}", true
}

// scanValueEnd skips the colon after a key and returns the index just past its value.
func scanValueEnd(s string, i int) int {
	i = skipSpace(s, i)
	if i < len(s) && s[i] == ':' {
		i++
	}
	i = skipSpace(s, i)
	if i >= len(s) {
		return len(s)
	}

	switch s[i] {
	case '"':
		escaped := false
		for j := i + 1; j < len(s); j++ {
			switch {
			case escaped:
				escaped = false
			case s[j] == '\\':
				escaped = true
			case s[j] == '"':
				return j + 1
			}
		}
		return len(s)
	case '{', '[':
		depth := 0
		inString := false
		escaped := false
		for j := i; j < len(s); j++ {
			c := s[j]
			if inString {
				switch {
				case escaped:
					escaped = false
				case c == '\\':
					escaped = true
				case c == '"':
					inString = false
				}
				continue
			}
			switch c {
			case '"':
				inString = true
			case '{', '[':
				depth++
			case '}', ']':
				depth--
				if depth == 0 {
					return j + 1
				}
			}
		}
		return len(s)
	default:
		j := i
		for j < len(s) && !strings.ContainsRune(",}] \t\r\n", rune(s[j])) {
			j++
		}
		return j
	}
}

// closeTruncatedObject repairs an object whose tail was cut off by closing any open
// string and brackets. When the last member is itself incomplete it is dropped and
// the repair is attempted once more.
func closeTruncatedObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	body := s[start:]

	for attempt := 0; attempt < 2; attempt++ {
		closed, ok := closeOpenBrackets(body)
		if !ok {
			return "", false
		}
		if _, ok := parseObject(closed); ok {
			return closed, true
		}

		cut := lastCommaOutsideString(body)
		if cut <= 0 {
			return "", false
		}
		body = body[:cut]
	}

	return "", false
}

// closeOpenBrackets appends whatever is needed to balance body. It reports false when
// body already closes its outermost object, since that is not a truncation.
func closeOpenBrackets(body string) (string, bool) {
	var stack []byte
	inString := false
	escaped := false

	for i := 0; i < len(body); i++ {
		c := body[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return "", false
			}
		}
	}

	if len(stack) == 0 {
		return "", false
	}

	out := body
	if inString {
		if escaped {
			out = out[:len(out)-1]
		}
		out += `"`
	}
	out = strings.TrimRight(out, " \t\r\n,")
	if strings.HasSuffix(out, ":") {
		out += "null"
	}
	for i := len(stack) - 1; i >= 0; i-- {
		out += string(stack[i])
	}

	return out, true
}

func lastCommaOutsideString(s string) int {
	last := -1
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			last = i
		}
	}
	return last
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}
