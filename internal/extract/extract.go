package extract

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/spigell/resume-scanner/internal/types"
)

// MaxMentions bounds every mention list produced by the extractor.
const MaxMentions = 5

const (
	contextWindow      = 100
	minProjectLength   = 20
	timeframeSeparator = ", "
)

var (
	specialChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:\-()]`)
	whitespace   = regexp.MustCompile(`\s+`)
	sentenceEnd  = regexp.MustCompile(`[.!?]+(\s+|$)`)

	degreePattern = regexp.MustCompile(`\b(bachelors?|masters?|phd|doctorate|diploma|certificate|b\.?tech|m\.?tech|mba|bba|bca|mca|b\.?sc|m\.?sc|b\.?com|m\.?com|b\.?a|m\.?a|undergraduate|postgraduate|graduate)\b`)

	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(19|20)\d{2}\b`),
		regexp.MustCompile(`\b(jan(uary)?|feb(ruary)?|mar(ch)?|apr(il)?|may|june?|july?|aug(ust)?|sep(t(ember)?)?|oct(ober)?|nov(ember)?|dec(ember)?)\b`),
		regexp.MustCompile(`\b\d{1,2}(\.\d+)?\s+(years?|months?)\b`),
	}
)

// CleanText lowercases raw resume text, replaces every character other than
// letters, digits, whitespace and ".,;:-()" with a space and collapses whitespace.
func CleanText(raw string) string {
	text := specialChars.ReplaceAllString(raw, " ")
	text = strings.ToLower(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Extractor finds skills and resume sections in cleaned text using lexical rules.
type Extractor struct {
	maxMentions int
}

func New() *Extractor {
	return &Extractor{maxMentions: MaxMentions}
}

// Extract expects text produced by CleanText. Lists keep the order of first
// occurrence in the text; mention lists are capped at MaxMentions.
func (e *Extractor) Extract(text string) *types.ResumeEntities {
	sentences := Sentences(text)

	return &types.ResumeEntities{
		TechnicalSkills: findTerms(text, technicalTerms),
		SoftSkills:      findTerms(text, softTerms),
		Education:       e.education(text),
		Experience:      e.experience(sentences),
		Projects:        e.projects(sentences),
		Achievements:    e.achievements(sentences),
	}
}

// Sentences splits text on sentence terminators followed by whitespace.
func Sentences(text string) []string {
	parts := sentenceEnd.Split(text, -1)
	sentences := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		sentences = append(sentences, part)
	}
	return sentences
}

func (e *Extractor) education(text string) []types.EducationMention {
	mentions := make([]types.EducationMention, 0)
	for _, loc := range degreePattern.FindAllStringIndex(text, e.maxMentions) {
		start, end := contextBounds(text, loc[0]-contextWindow, loc[1]+contextWindow)
		mentions = append(mentions, types.EducationMention{
			Degree:  displayDegree(text[loc[0]:loc[1]]),
			Context: strings.TrimSpace(text[start:end]),
		})
	}
	return mentions
}

func (e *Extractor) experience(sentences []string) []types.ExperienceMention {
	mentions := make([]types.ExperienceMention, 0)
	for _, sentence := range sentences {
		if len(mentions) == e.maxMentions {
			break
		}
		if !containsAny(sentence, experienceKeywords) {
			continue
		}
		times := timeTokens(sentence)
		if len(times) == 0 {
			continue
		}
		mentions = append(mentions, types.ExperienceMention{
			Description: sentence,
			Timeframe:   strings.Join(times, timeframeSeparator),
		})
	}
	return mentions
}

func (e *Extractor) projects(sentences []string) []string {
	projects := make([]string, 0)
	for _, sentence := range sentences {
		if len(projects) == e.maxMentions {
			break
		}
		if containsAny(sentence, projectKeywords) && utf8.RuneCountInString(sentence) > minProjectLength {
			projects = append(projects, sentence)
		}
	}
	return projects
}

func (e *Extractor) achievements(sentences []string) []string {
	achievements := make([]string, 0)
	for _, sentence := range sentences {
		if len(achievements) == e.maxMentions {
			break
		}
		if containsAny(sentence, achievementKeywords) {
			achievements = append(achievements, sentence)
		}
	}
	return achievements
}

func findTerms(text string, terms []term) []string {
	type hit struct {
		pos     int
		display string
	}

	hits := make([]hit, 0)
	for _, t := range terms {
		if pos := indexTerm(text, t.token); pos >= 0 {
			hits = append(hits, hit{pos: pos, display: t.display})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := make(map[string]bool, len(hits))
	found := make([]string, 0, len(hits))
	for _, h := range hits {
		if seen[h.display] {
			continue
		}
		seen[h.display] = true
		found = append(found, h.display)
	}
	return found
}

// indexTerm reports the first position of token in text. Single-character
// tokens only match as standalone words.
func indexTerm(text, token string) int {
	if utf8.RuneCountInString(token) > 1 {
		return strings.Index(text, token)
	}

	offset := 0
	for offset < len(text) {
		i := strings.Index(text[offset:], token)
		if i < 0 {
			return -1
		}
		pos := offset + i
		if isBoundary(text, pos-1) && isBoundary(text, pos+len(token)) {
			return pos
		}
		offset = pos + len(token)
	}
	return -1
}

func isBoundary(text string, i int) bool {
	if i < 0 || i >= len(text) {
		return true
	}
	c := text[i]
	return !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_' || c >= utf8.RuneSelf)
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

func timeTokens(sentence string) []string {
	type token struct {
		pos   int
		value string
	}

	found := make([]token, 0)
	for _, pattern := range timePatterns {
		for _, loc := range pattern.FindAllStringIndex(sentence, -1) {
			found = append(found, token{pos: loc[0], value: sentence[loc[0]:loc[1]]})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].pos < found[j].pos })

	seen := make(map[string]bool, len(found))
	values := make([]string, 0, len(found))
	for _, t := range found {
		if seen[t.value] {
			continue
		}
		seen[t.value] = true
		values = append(values, t.value)
	}
	return values
}

// contextBounds clamps [start, end) to text and widens it to rune boundaries.
func contextBounds(text string, start, end int) (int, int) {
	start = max(0, start)
	end = min(len(text), end)
	for start > 0 && !utf8.RuneStart(text[start]) {
		start--
	}
	for end < len(text) && !utf8.RuneStart(text[end]) {
		end++
	}
	return start, end
}

var degreeAcronyms = map[string]string{
	"phd": "PhD",
	"mba": "MBA",
	"bba": "BBA",
	"bca": "BCA",
	"mca": "MCA",
}

func displayDegree(degree string) string {
	if acronym, ok := degreeAcronyms[degree]; ok {
		return acronym
	}

	var b strings.Builder
	upper := true
	for _, r := range degree {
		if upper && r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		upper = r == '.'
		b.WriteRune(r)
	}
	return b.String()
}
