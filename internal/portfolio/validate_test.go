package portfolio

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidateUniqueness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(*Portfolio)
		wantRule Rule
		wantIDs  []string
	}{
		{name: "unique", mutate: func(*Portfolio) {}},
		{
			name:     "duplicate project",
			mutate:   func(d *Portfolio) { d.Projects[1].ID = "prj-1" },
			wantRule: RuleDuplicateProjectID,
			wantIDs:  []string{"prj-1"},
		},
		{
			name:     "duplicate impact",
			mutate:   func(d *Portfolio) { d.Impacts[1].ID = "im-1" },
			wantRule: RuleDuplicateImpactID,
			wantIDs:  []string{"im-1"},
		},
		{
			name:     "duplicate problem",
			mutate:   func(d *Portfolio) { d.Projects[1].Problem.ID = "pb-1" },
			wantRule: RuleDuplicateProblemID,
			wantIDs:  []string{"pb-1"},
		},
		{
			name:     "duplicate solution",
			mutate:   func(d *Portfolio) { d.Projects[1].Solution.ID = "sl-1" },
			wantRule: RuleDuplicateSolutionID,
			wantIDs:  []string{"sl-1"},
		},
		{
			name: "projects checked before problems",
			mutate: func(d *Portfolio) {
				d.Projects[1].ID = "prj-1"
				d.Projects[1].Problem.ID = "pb-1"
			},
			wantRule: RuleDuplicateProjectID,
			wantIDs:  []string{"prj-1"},
		},
		{
			// ids only need to be unique within their own class
			name:   "problem id equal to project id",
			mutate: func(d *Portfolio) { d.Projects[0].Problem.ID = "prj-1" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := newDoc()
			tt.mutate(doc)

			err := ValidateUniqueness(doc)
			if tt.wantRule == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Rule != tt.wantRule {
				t.Errorf("Rule = %s, want %s", ve.Rule, tt.wantRule)
			}
			if !errors.Is(err, ErrDuplicateID) {
				t.Error("error does not unwrap to ErrDuplicateID")
			}
			if diff := cmp.Diff(tt.wantIDs, ve.Details.IDs); diff != "" {
				t.Errorf("Details.IDs mismatch (-want +got):\n%s", diff)
			}
			if ve.SourceFile != "acme.yaml" {
				t.Errorf("SourceFile = %q", ve.SourceFile)
			}
		})
	}
}

func TestFindDuplicates(t *testing.T) {
	t.Parallel()

	got := findDuplicates([]string{"a", "b", "a", "c", "b", "a"})
	if diff := cmp.Diff([]string{"a", "b"}, got); diff != "" {
		t.Errorf("findDuplicates mismatch (-want +got):\n%s", diff)
	}
	if got := findDuplicates([]string{"a", "b"}); len(got) != 0 {
		t.Errorf("findDuplicates = %v, want none", got)
	}
}

func TestValidateEdgeIntegrity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		edges        []Edge
		wantEndpoint string
		wantID       string
	}{
		{
			name: "all endpoints resolve",
			edges: []Edge{
				{From: "acme", To: "prj-2", Rel: RelOwns},
				{From: "sl-2", To: "im-2", Rel: RelDrives},
				{From: "pb-1", To: "sl-1", Rel: RelSolvedBy},
			},
		},
		{
			name:         "unknown from",
			edges:        []Edge{{From: "ghost", To: "prj-1", Rel: RelOwns}},
			wantEndpoint: "from",
			wantID:       "ghost",
		},
		{
			name:         "unknown to",
			edges:        []Edge{{From: "prj-1", To: "pb-9", Rel: RelHasProblem}},
			wantEndpoint: "to",
			wantID:       "pb-9",
		},
		{
			name: "first broken edge wins",
			edges: []Edge{
				{From: "acme", To: "prj-1", Rel: RelOwns},
				{From: "prj-1", To: "missing-a", Rel: RelHasSolution},
				{From: "missing-b", To: "prj-1", Rel: RelOwns},
			},
			wantEndpoint: "to",
			wantID:       "missing-a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := newDoc()
			doc.Edges = tt.edges

			err := ValidateEdgeIntegrity(doc)
			if tt.wantID == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			var ve *ValidationError
			if !errors.As(err, &ve) || ve.Rule != RuleBrokenEdge {
				t.Fatalf("expected BROKEN_EDGE, got %v", err)
			}
			if ve.Details.Endpoint != tt.wantEndpoint || ve.Details.ID != tt.wantID {
				t.Errorf("endpoint/id = %s/%s, want %s/%s",
					ve.Details.Endpoint, ve.Details.ID, tt.wantEndpoint, tt.wantID)
			}
			if ve.Details.Edge == nil {
				t.Fatal("Details.Edge not set")
			}
			if len(ve.Details.KnownIDs) == 0 {
				t.Error("Details.KnownIDs not set")
			}
		})
	}
}

func TestKnownIDs(t *testing.T) {
	t.Parallel()

	want := []string{"acme", "prj-1", "pb-1", "sl-1", "prj-2", "pb-2", "sl-2", "im-1", "im-2"}
	if diff := cmp.Diff(want, KnownIDs(newDoc())); diff != "" {
		t.Errorf("KnownIDs mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateDeepDive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		deepDive DeepDive
		index    ContentIndex
		wantRule Rule
	}{
		{name: "disabled", deepDive: DeepDive{Enabled: false, Slug: "nonexistent-file"}, index: fakeIndex{}},
		{name: "existing slug", deepDive: DeepDive{Enabled: true, Slug: "prj-1"}, index: fakeIndex{"prj-1": true}},
		{
			name:     "missing file",
			deepDive: DeepDive{Enabled: true, Slug: "nonexistent-file"},
			index:    fakeIndex{"prj-1": true},
			wantRule: RuleMissingMDXFile,
		},
		{
			name:     "blank slug",
			deepDive: DeepDive{Enabled: true, Slug: "  "},
			index:    fakeIndex{},
			wantRule: RuleMissingDeepDiveSlug,
		},
		{
			name:     "nil index",
			deepDive: DeepDive{Enabled: true, Slug: "prj-1"},
			wantRule: RuleMissingMDXFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := newDoc()
			doc.Projects[0].DeepDive = tt.deepDive

			err := ValidateDeepDive(doc, tt.index)
			got, _ := RuleOf(err)
			if got != tt.wantRule {
				t.Fatalf("rule = %q, want %q (err: %v)", got, tt.wantRule, err)
			}
			if tt.wantRule != "" {
				if !errors.Is(err, ErrDeepDive) {
					t.Error("error does not unwrap to ErrDeepDive")
				}
				var ve *ValidationError
				errors.As(err, &ve)
				if ve.Details.ProjectID != "prj-1" {
					t.Errorf("Details.ProjectID = %q, want prj-1", ve.Details.ProjectID)
				}
			}
		})
	}
}

func TestNormalizeToolList(t *testing.T) {
	t.Parallel()

	got := NormalizeToolList([]string{"AWS", " terraform ", "AWS", "  Python  ", "terraform"})
	want := []string{"aws", "terraform", "python"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NormalizeToolList mismatch (-want +got):\n%s", diff)
	}
}

func TestNormalizeTools(t *testing.T) {
	t.Parallel()

	doc := newDoc()
	doc.Projects[0].Solution.Tools = []string{"AWS", " aws ", "Terraform"}
	before := doc.Clone()

	once := NormalizeTools(doc)
	if diff := cmp.Diff([]string{"aws", "terraform"}, once.Projects[0].Solution.Tools); diff != "" {
		t.Errorf("normalized tools mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(before, doc); diff != "" {
		t.Errorf("input was mutated (-before +after):\n%s", diff)
	}

	twice := NormalizeTools(once)
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("normalization not idempotent (-once +twice):\n%s", diff)
	}
}

func TestValidateAndNormalize_Order(t *testing.T) {
	t.Parallel()

	// A document broken in several ways reports the earliest validator.
	doc := newDoc()
	doc.Projects[1].ID = "prj-1"
	doc.Edges = append(doc.Edges, Edge{From: "ghost", To: "prj-1", Rel: RelOwns})
	doc.Projects[0].DeepDive = DeepDive{Enabled: true, Slug: "missing"}

	_, err := ValidateAndNormalize(doc, fakeIndex{})
	if rule, _ := RuleOf(err); rule != RuleDuplicateProjectID {
		t.Fatalf("rule = %q, want %s", rule, RuleDuplicateProjectID)
	}

	doc.Projects[1].ID = "prj-2"
	_, err = ValidateAndNormalize(doc, fakeIndex{})
	if rule, _ := RuleOf(err); rule != RuleBrokenEdge {
		t.Fatalf("rule = %q, want %s", rule, RuleBrokenEdge)
	}

	doc.Edges = doc.Edges[:len(doc.Edges)-1]
	_, err = ValidateAndNormalize(doc, fakeIndex{})
	if rule, _ := RuleOf(err); rule != RuleMissingMDXFile {
		t.Fatalf("rule = %q, want %s", rule, RuleMissingMDXFile)
	}

	out, err := ValidateAndNormalize(doc, fakeIndex{"missing": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"aws"}, out.Projects[0].Solution.Tools); diff != "" {
		t.Errorf("tools mismatch (-want +got):\n%s", diff)
	}
}

func TestValidationError_Format(t *testing.T) {
	t.Parallel()

	err := NewError(RuleBrokenEdge, "acme.yaml", Details{}, "edge %s", "x")
	if got, want := err.Error(), "acme.yaml: [BROKEN_EDGE] edge x"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	noSource := NewError(RuleSchema, "", Details{}, "bad")
	if got, want := noSource.Error(), "[SCHEMA] bad"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if _, ok := RuleOf(errors.New("plain")); ok {
		t.Error("RuleOf should report false for a plain error")
	}
}
