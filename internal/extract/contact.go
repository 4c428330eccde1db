package extract

import (
	"regexp"
	"strings"

	"github.com/spigell/resume-scanner/internal/types"
)

var (
	emailPattern  = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\b\d{10}\b`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{10,14}`),
	}
	linkedinPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[^\s]+`)
	githubPattern   = regexp.MustCompile(`(?i)github\.com/[^\s]+`)
)

// ContactInfo finds the first email, phone number and profile URLs in raw
// (uncleaned) resume text.
func ContactInfo(raw string) types.ContactInfo {
	var info types.ContactInfo

	info.Email = emailPattern.FindString(raw)

	for _, pattern := range phonePatterns {
		if phone := pattern.FindString(raw); phone != "" {
			info.Phone = phone
			break
		}
	}

	if m := linkedinPattern.FindString(raw); m != "" {
		info.LinkedIn = "https://" + trimURL(m)
	}
	if m := githubPattern.FindString(raw); m != "" {
		info.GitHub = "https://" + trimURL(m)
	}

	return info
}

func trimURL(s string) string {
	return strings.TrimRight(s, ".,;:)]>\"'")
}
