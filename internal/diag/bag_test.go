package diag

import (
	"testing"

	"wgsla/internal/source"
)

func d(sev Severity, code Code, start, end uint32) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  code.String(),
		Primary:  source.Span{File: 1, Start: start, End: end},
	}
}

func TestBagSortOrdersBySpanThenSeverity(t *testing.T) {
	b := NewBag()
	b.Add(d(SevWarning, UnresolvedName, 40, 44))
	b.Add(d(SevError, TypeMismatch, 10, 12))
	b.Add(d(SevError, AssignTargetNotReference, 10, 12))
	b.Add(d(SevInfo, ParseError, 10, 12))
	b.Sort()

	items := b.Items()
	if items[0].Primary.Start != 10 {
		t.Fatalf("first diagnostic starts at %d, want 10", items[0].Primary.Start)
	}
	// Same span: errors before infos, then lower code first.
	if items[0].Severity != SevError || items[0].Code != AssignTargetNotReference {
		t.Fatalf("items[0] = %v/%v, want error/code-1", items[0].Severity, items[0].Code)
	}
	if items[1].Code != TypeMismatch {
		t.Fatalf("items[1].Code = %v, want TypeMismatch", items[1].Code)
	}
	if items[2].Severity != SevInfo {
		t.Fatalf("items[2].Severity = %v, want info", items[2].Severity)
	}
	if items[3].Code != UnresolvedName {
		t.Fatalf("items[3].Code = %v, want the later span last", items[3].Code)
	}
}

func TestBagMergeAndHasErrors(t *testing.T) {
	a := NewBag()
	a.Add(d(SevWarning, ParseError, 0, 1))
	if a.HasErrors() {
		t.Fatalf("warnings alone should not report HasErrors")
	}

	b := NewBag()
	b.Add(d(SevError, TypeMismatch, 5, 6))
	a.Merge(b)

	if a.Len() != 2 {
		t.Fatalf("merged Len = %d, want 2", a.Len())
	}
	if !a.HasErrors() {
		t.Fatalf("merged bag should report HasErrors")
	}

	a.Merge(nil)
	if a.Len() != 2 {
		t.Fatalf("merging nil changed Len to %d", a.Len())
	}
}
