package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/resume-scanner/internal/catalog"
	"github.com/spigell/resume-scanner/internal/types"
)

func testCommand(t *testing.T, register func(*pflag.FlagSet), args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	register(cmd.Flags())
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestListCatalogText(t *testing.T) {
	cmd := testCommand(t, catalogFlags, "--category", "data science")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, listCatalog(cmd, catalog.Default()))

	text := out.String()
	assert.Contains(t, text, "Data Scientist [Data Science]")
	assert.Contains(t, text, "Data Analyst [Data Science]")
	assert.NotContains(t, text, "Frontend Developer")
}

func TestListCatalogJSONSingleRole(t *testing.T) {
	cmd := testCommand(t, catalogFlags, "--role", "devops engineer", "-o", "json")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, listCatalog(cmd, catalog.Default()))

	var roles []types.JobRole
	require.NoError(t, json.Unmarshal(out.Bytes(), &roles))
	require.Len(t, roles, 1)
	assert.Equal(t, "DevOps Engineer", roles[0].Title)
}

func TestListCatalogUnknownRole(t *testing.T) {
	cmd := testCommand(t, catalogFlags, "--role", "astronaut")
	cmd.SetOut(&bytes.Buffer{})

	assert.ErrorIs(t, listCatalog(cmd, catalog.Default()), catalog.ErrUnknownRole)
}

func TestListCatalogCategories(t *testing.T) {
	cmd := testCommand(t, catalogFlags, "--categories")
	var out bytes.Buffer
	cmd.SetOut(&out)

	require.NoError(t, listCatalog(cmd, catalog.Default()))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 12)
	assert.Equal(t, "Web Development", lines[0])
	assert.Equal(t, "Data Science", lines[1])
	assert.Equal(t, "Testing", lines[11])

	cmd = testCommand(t, catalogFlags, "--categories", "-o", "json")
	out.Reset()
	cmd.SetOut(&out)

	require.NoError(t, listCatalog(cmd, catalog.Default()))

	var categories []string
	require.NoError(t, json.Unmarshal(out.Bytes(), &categories))
	assert.Equal(t, lines, categories)
}

func TestAnalyzeRequestMergesFileAndFlags(t *testing.T) {
	candidate := writeFile(t, "candidate.yaml", `
full_name: Jane Doe
email: jane@example.com
college: State University
cgpa: 8.4
experience_years: 3
repository: octocat
`)
	resume := writeFile(t, "cv.txt", "Python developer")

	cmd := testCommand(t, analyzeFlags,
		"--candidate", candidate,
		"--resume", resume,
		"--email", "jane.doe@example.com",
		"--linkedin", "https://linkedin.com/in/jane",
	)

	req, err := analyzeRequest(cmd)
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", req.Candidate.FullName)
	assert.Equal(t, "jane.doe@example.com", req.Candidate.Email)
	assert.Equal(t, "8.4", req.Candidate.CGPA)
	require.NotNil(t, req.Candidate.ExperienceYears)
	assert.Equal(t, 3.0, *req.Candidate.ExperienceYears)
	assert.Equal(t, types.Accounts{Repository: "octocat", Network: "https://linkedin.com/in/jane"}, req.Accounts)
	assert.Equal(t, []byte("Python developer"), req.Document)
	assert.Equal(t, "cv.txt", req.DocumentName)
}

func TestAnalyzeRequestRejectsUnknownKeys(t *testing.T) {
	candidate := writeFile(t, "candidate.yaml", "full_name: Jane\nfavourite_color: blue\n")
	cmd := testCommand(t, analyzeFlags, "--candidate", candidate)

	_, err := analyzeRequest(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "favourite_color")
}

func TestEvaluationFromFlag(t *testing.T) {
	cmd := testCommand(t, analyzeFlags)
	eval, err := evaluationFromFlag(cmd)
	require.NoError(t, err)
	assert.Nil(t, eval)

	path := writeFile(t, "hr.json", `{"group_discussion": 70, "aptitude": 65.5, "technical": 80, "academic": 90}`)
	cmd = testCommand(t, analyzeFlags, "--evaluation", path)
	eval, err = evaluationFromFlag(cmd)
	require.NoError(t, err)
	assert.Equal(t, &types.HumanEvaluation{GroupDiscussion: 70, Aptitude: 65.5, Technical: 80, Academic: 90}, eval)
}

func TestProfileFromFlags(t *testing.T) {
	path := writeFile(t, "profile.yaml", `
technical_skills: [Go, SQL]
experience_years: 2
education_level: Master
project_count: 3
`)
	cmd := testCommand(t, recommendFlags, "--profile", path, "--skills", "Go,Docker", "--projects", "5")

	profile, err := profileFromFlags(cmd)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Docker"}, profile.TechnicalSkills)
	assert.Equal(t, 2.0, profile.ExperienceYears)
	assert.Equal(t, types.EducationMaster, profile.EducationLevel)
	assert.Equal(t, 5, profile.ProjectCount)

	profile, err = profileFromFlags(testCommand(t, recommendFlags))
	require.NoError(t, err)
	assert.Equal(t, types.EducationBachelor, profile.EducationLevel)

	_, err = profileFromFlags(testCommand(t, recommendFlags, "--education", "kindergarten"))
	assert.Error(t, err)
}

func TestCollectEvaluation(t *testing.T) {
	original := promptScore
	defer func() { promptScore = original }()

	var asked []string
	promptScore = func(label string) (float64, error) {
		asked = append(asked, label)
		return 50, nil
	}

	cmd := testCommand(t, scoreFlags)
	eval, err := collectEvaluation(cmd, false)
	require.NoError(t, err)
	assert.Nil(t, eval)
	assert.Empty(t, asked)

	cmd = testCommand(t, scoreFlags, "--technical", "90")
	eval, err = collectEvaluation(cmd, true)
	require.NoError(t, err)
	assert.Equal(t, &types.HumanEvaluation{GroupDiscussion: 50, Aptitude: 50, Technical: 90, Academic: 50}, eval)
	assert.Equal(t, []string{"Group discussion score", "Aptitude test score", "Academic performance score"}, asked)

	promptScore = func(string) (float64, error) { return 0, errors.New("no tty") }
	_, err = collectEvaluation(testCommand(t, scoreFlags), true)
	assert.Error(t, err)
}

func TestValidateScore(t *testing.T) {
	for input, ok := range map[string]bool{"0": true, "100": true, " 55.5 ": true, "101": false, "-1": false, "abc": false} {
		err := validateScore(input)
		if ok {
			assert.NoError(t, err, input)
		} else {
			assert.Error(t, err, input)
		}
	}
}

func TestWriteJSONIndents(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, writeJSON(&out, map[string]int{"a": 1}))
	assert.True(t, strings.HasPrefix(out.String(), "{\n  \"a\": 1"))
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	versionCmd.Run(versionCmd, nil)

	assert.Contains(t, out.String(), "resume-scanner version: unknown")
	assert.Contains(t, out.String(), "job roles: 15")
}
