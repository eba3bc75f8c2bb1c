package alloc

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestApplyDispatchesByKind(t *testing.T) {
	pct := Apply(sampleTree(), Edit{Kind: Percentage, TargetID: "phones", Amount: 10})
	if diff := cmp.Diff(ApplyPercentage(sampleTree(), "phones", 10), pct); diff != "" {
		t.Errorf("Percentage edit (-want +got):\n%s", diff)
	}

	abs := Apply(sampleTree(), Edit{Kind: Absolute, TargetID: "phones", Amount: 900})
	if diff := cmp.Diff(SetAbsoluteValue(sampleTree(), "phones", 900), abs); diff != "" {
		t.Errorf("Absolute edit (-want +got):\n%s", diff)
	}

	in := sampleTree()
	if diff := cmp.Diff(in, Apply(in, Edit{Kind: Kind(42), TargetID: "phones", Amount: 1})); diff != "" {
		t.Errorf("unknown kind changed the tree:\n%s", diff)
	}
}

func TestKindString(t *testing.T) {
	if Percentage.String() != "percentage" || Absolute.String() != "absolute" {
		t.Fatalf("got %q/%q", Percentage, Absolute)
	}
}

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"10", 10, true},
		{"  12.5 ", 12.5, true},
		{"-3", -3, true},
		{"+4", 4, true},
		{".5", 0.5, true},
		{"7.", 7, true},
		{"12abc", 12, true},
		{"1e2", 100, true},
		{"1e", 1, true},
		{"0x10", 0, false},
		{"0", 0, false},
		{"-0.0", 0, false},
		{"", 0, false},
		{"abc", 0, false},
		{".", 0, false},
		{"1e999", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseAmount(c.in)
		if ok != c.wantOK || got != c.want {
			t.Errorf("ParseAmount(%q) = %v, %v; want %v, %v", c.in, got, ok, c.want, c.wantOK)
		}
	}
}
