package llm

import (
	"strings"
	"testing"
)

func TestParseTaggedReassemblesHeader(t *testing.T) {
	response := `<NAME>JANE DOE</NAME>
<CONTACT>jane@example.com | +33 6 12 34 56 78</CONTACT>
<TITLE>Senior Backend Engineer</TITLE>
<SUMMARY>Engineer with ten years of experience.</SUMMARY>

PROFESSIONAL EXPERIENCE
• Led a platform team of 8 engineers`

	got := ParseTagged(response)

	wantPrefix := "JANE DOE\n\njane@example.com | +33 6 12 34 56 78\n\nSenior Backend Engineer\n\nPROFESSIONAL SUMMARY\nEngineer with ten years of experience."
	if !strings.HasPrefix(got, wantPrefix) {
		t.Fatalf("unexpected prefix:\n%s", got)
	}
	if !strings.Contains(got, "PROFESSIONAL EXPERIENCE") {
		t.Fatalf("body lost: %s", got)
	}
	if strings.Contains(got, "<NAME>") || strings.Contains(got, "</SUMMARY>") {
		t.Fatalf("tags leaked into output: %s", got)
	}
}

func TestParseTaggedDefaultsTitle(t *testing.T) {
	got := ParseTagged("<NAME>JANE DOE</NAME>\nsome body")
	if !strings.Contains(got, "Profil Professionnel") {
		t.Fatalf("expected default title, got:\n%s", got)
	}
}

func TestParseTaggedConvertsMarkdownBold(t *testing.T) {
	got := ParseTagged("Improved **latency** by 40%")
	if !strings.Contains(got, "<B>latency</B>") {
		t.Fatalf("expected markdown bold converted, got %q", got)
	}
	if strings.Contains(got, "**") {
		t.Fatalf("markdown stars left in output: %q", got)
	}
}

func TestParseTaggedUntaggedResponsePassesThrough(t *testing.T) {
	body := "JANE DOE\n\nPROFESSIONAL EXPERIENCE\n• Shipped things"
	got := ParseTagged(body)
	if !strings.Contains(got, "PROFESSIONAL EXPERIENCE") {
		t.Fatalf("body must survive: %q", got)
	}
	// Untagged responses still get the default title prepended.
	if !strings.HasPrefix(got, "Profil Professionnel") {
		t.Fatalf("expected default title first, got %q", got)
	}
}
