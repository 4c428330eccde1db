package scoring

import (
	"context"
	"fmt"
	"testing"

	"github.com/spigell/resume-scanner/internal/types"
)

func ptr(v float64) *float64 { return &v }

func entities(technical, soft, experience, projects, achievements int) types.ResumeEntities {
	e := types.ResumeEntities{}
	for i := 0; i < technical; i++ {
		e.TechnicalSkills = append(e.TechnicalSkills, fmt.Sprintf("skill-%d", i))
	}
	for i := 0; i < soft; i++ {
		e.SoftSkills = append(e.SoftSkills, fmt.Sprintf("soft-%d", i))
	}
	for i := 0; i < experience; i++ {
		e.Experience = append(e.Experience, types.ExperienceMention{Description: "worked", Timeframe: "2020"})
	}
	for i := 0; i < projects; i++ {
		e.Projects = append(e.Projects, "built a thing that matters")
	}
	for i := 0; i < achievements; i++ {
		e.Achievements = append(e.Achievements, "award")
	}
	return e
}

func TestComputeScenario(t *testing.T) {
	in := types.ResumeEntities{
		TechnicalSkills: []string{"Python", "JavaScript", "SQL"},
		SoftSkills:      []string{"Communication"},
		Experience:      make([]types.ExperienceMention, 2),
		Projects:        []string{"developed a scheduling system"},
	}

	got := Compute(in, ptr(8.0))
	want := types.ResumeScore{
		TechnicalSkills: 9,
		SoftSkills:      2,
		Experience:      8,
		Projects:        4,
		Achievements:    0,
		Education:       8,
		Overall:         31,
	}

	if got != want {
		t.Fatalf("unexpected score: got %+v, want %+v", got, want)
	}
}

func TestComputeCaps(t *testing.T) {
	got := Compute(entities(30, 30, 30, 30, 30), ptr(10))

	want := types.ResumeScore{
		TechnicalSkills: MaxTechnicalSkills,
		SoftSkills:      MaxSoftSkills,
		Experience:      MaxExperience,
		Projects:        MaxProjects,
		Achievements:    MaxAchievements,
		Education:       MaxEducation,
		Overall:         100,
	}
	if got != want {
		t.Fatalf("unexpected capped score: got %+v, want %+v", got, want)
	}
}

func TestComputeStaysWithinBounds(t *testing.T) {
	metrics := []*float64{nil, ptr(0), ptr(4.4), ptr(9.6), ptr(25), ptr(-3)}

	for n := 0; n <= 12; n++ {
		for _, metric := range metrics {
			s := Compute(entities(n, n, n, n, n), metric)

			checks := []struct {
				name  string
				value int
				limit int
			}{
				{"technical", s.TechnicalSkills, MaxTechnicalSkills},
				{"soft", s.SoftSkills, MaxSoftSkills},
				{"experience", s.Experience, MaxExperience},
				{"projects", s.Projects, MaxProjects},
				{"achievements", s.Achievements, MaxAchievements},
				{"education", s.Education, MaxEducation},
				{"overall", s.Overall, 100},
			}
			for _, c := range checks {
				if c.value < 0 || c.value > c.limit {
					t.Fatalf("n=%d: %s score %d outside [0, %d]", n, c.name, c.value, c.limit)
				}
			}
			if s.Overall != s.Sum() {
				t.Fatalf("overall %d does not match sum %d", s.Overall, s.Sum())
			}
		}
	}
}

func TestEducationScore(t *testing.T) {
	cases := []struct {
		name   string
		metric *float64
		want   int
	}{
		{name: "missing", metric: nil, want: DefaultEducationScore},
		{name: "whole", metric: ptr(8), want: 8},
		{name: "rounds half up", metric: ptr(8.5), want: 9},
		{name: "rounds down", metric: ptr(7.4), want: 7},
		{name: "zero", metric: ptr(0), want: 0},
		{name: "above scale", metric: ptr(12), want: MaxEducation},
		{name: "negative", metric: ptr(-1), want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EducationScore(tc.metric); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestParseSelfReportedMetric(t *testing.T) {
	cases := []struct {
		raw  string
		want *float64
	}{
		{raw: "8.4", want: ptr(8.4)},
		{raw: " 9,1 ", want: ptr(9.1)},
		{raw: "10", want: ptr(10)},
		{raw: "", want: nil},
		{raw: "n/a", want: nil},
		{raw: "11", want: nil},
		{raw: "-2", want: nil},
	}

	for _, tc := range cases {
		got := ParseSelfReportedMetric(tc.raw)
		switch {
		case tc.want == nil && got != nil:
			t.Fatalf("%q: expected nil, got %v", tc.raw, *got)
		case tc.want != nil && got == nil:
			t.Fatalf("%q: expected %v, got nil", tc.raw, *tc.want)
		case tc.want != nil && *got != *tc.want:
			t.Fatalf("%q: expected %v, got %v", tc.raw, *tc.want, *got)
		}
	}
}

func TestHeuristicIsIdempotent(t *testing.T) {
	in := Input{Entities: entities(4, 2, 1, 3, 1), SelfReportedMetric: ptr(7.2)}

	first, err := Heuristic{}.Score(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Heuristic{}.Score(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Score != second.Score {
		t.Fatalf("scores differ between calls: %+v vs %+v", first.Score, second.Score)
	}
	if first.Source != SourceHeuristic {
		t.Fatalf("unexpected source %q", first.Source)
	}
}
