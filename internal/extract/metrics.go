package extract

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/spigell/resume-scanner/internal/types"
)

// DefaultKeyPhrases is the number of phrases returned when callers do not ask for a specific count.
const DefaultKeyPhrases = 10

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:[.'#+\-][\p{L}\p{N}_]+)*`)

// Metrics computes simple readability statistics over the text.
func Metrics(text string) types.TextMetrics {
	words := wordPattern.FindAllString(text, -1)
	sentences := Sentences(text)
	if len(words) == 0 || len(sentences) == 0 {
		return types.TextMetrics{}
	}

	letters := 0
	unique := make(map[string]bool)
	for _, word := range words {
		letters += len([]rune(word))
		if isAlpha(word) {
			unique[strings.ToLower(word)] = true
		}
	}

	return types.TextMetrics{
		TotalWords:          len(words),
		TotalSentences:      len(sentences),
		AvgWordsPerSentence: round(float64(len(words))/float64(len(sentences)), 2),
		AvgWordLength:       round(float64(letters)/float64(len(words)), 2),
		VocabularyDiversity: round(float64(len(unique))/float64(len(words)), 3),
	}
}

// KeyPhrases returns the n most frequent bigrams and trigrams of alphabetic,
// non-stopword tokens. Ties keep bigrams before trigrams and earlier phrases first.
func KeyPhrases(text string, n int) []string {
	if n <= 0 {
		n = DefaultKeyPhrases
	}

	words := make([]string, 0)
	for _, word := range strings.Fields(CleanText(text)) {
		word = strings.Trim(word, ".,;:-()")
		if word == "" || !isAlpha(word) || stopWords[word] {
			continue
		}
		words = append(words, word)
	}

	phrases := make([]string, 0, 2*len(words))
	for i := 0; i+1 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1])
	}
	for i := 0; i+2 < len(words); i++ {
		phrases = append(phrases, words[i]+" "+words[i+1]+" "+words[i+2])
	}

	counts := make(map[string]int, len(phrases))
	ordered := make([]string, 0, len(phrases))
	for _, phrase := range phrases {
		if counts[phrase] == 0 {
			ordered = append(ordered, phrase)
		}
		counts[phrase]++
	}

	sort.SliceStable(ordered, func(i, j int) bool { return counts[ordered[i]] > counts[ordered[j]] })

	if len(ordered) > n {
		ordered = ordered[:n]
	}
	return ordered
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func round(v float64, places int) float64 {
	pow := math.Pow(10, float64(places))
	return math.Round(v*pow) / pow
}
