package pipeline

import "testing"

func TestAssemble_JoinsContentAndSources(t *testing.T) {
	ps := []Passage{
		{Content: "first passage", SourceID: "a.txt"},
		{Content: "second passage", SourceID: "b.txt"},
	}

	result := Assemble(ps, Verdict{Kind: VerdictPass})

	want := "first passage\n\nsecond passage"
	if result.Context != want {
		t.Errorf("Context = %q, want %q", result.Context, want)
	}
	if len(result.Sources) != 2 || result.Sources[0] != "a.txt" || result.Sources[1] != "b.txt" {
		t.Errorf("Sources = %v", result.Sources)
	}
}

func TestAssemble_AbstainDropsAllContent(t *testing.T) {
	ps := []Passage{{Content: "secret deadline", SourceID: "a.txt"}}
	verdict := Verdict{Kind: VerdictAbstain, Advisory: "contact admissions"}

	result := Assemble(ps, verdict)

	if result.Context != "" {
		t.Errorf("Context = %q, want empty on abstain", result.Context)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources = %v, want none on abstain", result.Sources)
	}
	if result.Verdict != verdict {
		t.Errorf("Verdict = %+v, want %+v", result.Verdict, verdict)
	}
}

func TestAssemble_WarnKeepsContentAndAdvisory(t *testing.T) {
	ps := []Passage{{Content: "Round 1 closes soon", SourceID: "deadlines.txt"}}
	verdict := Verdict{Kind: VerdictWarn, Advisory: "confirm with admissions"}

	result := Assemble(ps, verdict)

	if result.Context != "Round 1 closes soon" {
		t.Errorf("Context = %q", result.Context)
	}
	if result.Verdict.Advisory != "confirm with admissions" {
		t.Errorf("Advisory = %q", result.Verdict.Advisory)
	}
}

func TestAssemble_EmptyPassages(t *testing.T) {
	result := Assemble(nil, Verdict{Kind: VerdictPass})
	if result.Context != "" {
		t.Errorf("Context = %q, want empty", result.Context)
	}
	if len(result.Sources) != 0 {
		t.Errorf("Sources = %v, want none", result.Sources)
	}
}
