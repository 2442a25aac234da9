package compose

import "testing"

func TestSanitizeSuffix_Empty(t *testing.T) {
	if got := SanitizeSuffix(""); got != "" {
		t.Errorf("SanitizeSuffix(\"\") = %q, want \"\"", got)
	}
}

func TestSanitizeSuffix_SpacesToUnderscores(t *testing.T) {
	got := SanitizeSuffix("_catch trial")
	want := "_catch_trial"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_SlashReplaced(t *testing.T) {
	got := SanitizeSuffix("_session/2")
	want := "_session_2"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_RemovesQuotes(t *testing.T) {
	got := SanitizeSuffix(`_subject's "A"`)
	want := "_subjects_A"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_ShellMetacharacters(t *testing.T) {
	got := SanitizeSuffix("_trial$1?")
	want := "_trial_1"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_CollapsesUnderscoreRuns(t *testing.T) {
	got := SanitizeSuffix("_a  &  b")
	want := "_a_b"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_NormalizesNonASCII(t *testing.T) {
	// NFKD decomposition maps accented characters to ASCII
	got := SanitizeSuffix("_séance")
	want := "_seance"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}

func TestSanitizeSuffix_KeepsLeadingUnderscore(t *testing.T) {
	// The leading underscore is the separator between the component list
	// and the suffix, so it survives sanitization
	got := SanitizeSuffix("_pilot_")
	want := "_pilot"
	if got != want {
		t.Errorf("SanitizeSuffix() = %q, want %q", got, want)
	}
}
