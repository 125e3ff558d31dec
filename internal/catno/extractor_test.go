package catno

import "testing"

var groundTruth = []struct {
	catno string
	rule  string
}{
	{"KULP-3300", RulePrefixed},
	{"7C 034-34207", RuleEMI},
	{"POLL 117", RulePrefixed},
	{"SSL 10247", RulePrefixed},
	{"LPRO 51", RulePrefixed},
	{"HLP-10521-A", RulePrefixed},
	{"7C 138-35747", RuleEMI},
	{"2600831", RulePlain},
	{"6316 090", RuleSplit},
	{"PL 40164", RulePrefixed},
	{"KLP 8", RulePrefixed},
	{"MLPH 1622", RulePrefixed},
	{"BBRLP 108", RulePrefixed},
	{"468248 1", RuleSuffixed},
	{"HLP 10.533", RulePrefixed},
	{"MLP 15.555", RulePrefixed},
	{"LBLP 008", RulePrefixed},
	{"2379.007", RuleSplit},
	{"ARLP 101", RulePrefixed},
	{"ABLP-501", RulePrefixed},
	{"80 443 XU", RuleGrouped},
	{"SLP-3124", RulePrefixed},
	{"4E 048-35144", RuleEMI},
	{"PMES 572", RulePrefixed},
}

func TestExtractGroundTruthCorpus(t *testing.T) {
	for _, tc := range groundTruth {
		t.Run(tc.catno, func(t *testing.T) {
			text := "Stereo\n" + tc.catno + "\nMade in Sweden | Side A"
			m, ok := ExtractMatch(text)
			if !ok {
				t.Fatalf("no identifier extracted from %q", text)
			}
			if string(m.Identifier) != tc.catno {
				t.Fatalf("identifier = %q, want %q", m.Identifier, tc.catno)
			}
			if m.Rule != tc.rule {
				t.Fatalf("rule = %q, want %q", m.Rule, tc.rule)
			}
		})
	}
}

func TestExtractIgnoresSleeveYear(t *testing.T) {
	for _, tc := range groundTruth {
		t.Run(tc.catno, func(t *testing.T) {
			text := "Stereo\n" + tc.catno + "\nMade in Sweden 1986"
			got, ok := Extract(text)
			if !ok || string(got) != tc.catno {
				t.Fatalf("Extract(%q) = %q ok=%v, want %q", text, got, ok, tc.catno)
			}
		})
	}

	for _, tt := range []struct {
		text string
		want Identifier
	}{
		{"MLPH 1622 Printed in Sweden 1986", "MLPH 1622"},
		{"KULP-3300\nSide A\nMusic 1986", "KULP-3300"},
		{"Sonet 2001 SLP-3124", "SLP-3124"},
		{"Sweden I986 MLPH 1622", "MLPH 1622"},
	} {
		if got, ok := Extract(tt.text); !ok || got != tt.want {
			t.Fatalf("Extract(%q) = %q ok=%v, want %q", tt.text, got, ok, tt.want)
		}
	}
}

func TestExtractRepairsOCRNoise(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Identifier
	}{
		{"letter i for one", "mlph I622", "MLPH 1622"},
		{"letter o for zero", "KULP-33OO", "KULP-3300"},
		{"decimal group", "HLP 1O.533", "HLP 10.533"},
		{"typographic dash", "KULP–3300", "KULP-3300"},
		{"stray punctuation", "|'MLPH 1622'|", "MLPH 1622"},
		{"extra whitespace", "  7C   034-34207 \t", "7C 034-34207"},
		{"fullwidth digits", "MLPH １６２２", "MLPH 1622"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.text)
			if !ok {
				t.Fatalf("no identifier extracted from %q", tt.text)
			}
			if got != tt.want {
				t.Fatalf("Extract(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtractReturnsAbsence(t *testing.T) {
	for _, text := range []string{
		"",
		"   ",
		"Stereo Side A 33 RPM",
		"LP 1234",
		"LC 0309",
		"OIL LOL",
		"Lena Philipsson 1986",
		"Made in Sweden 1986",
	} {
		if got, ok := Extract(text); ok {
			t.Fatalf("Extract(%q) = %q, want absence", text, got)
		}
	}
}

func TestExtractPrefersLongestThenEarliest(t *testing.T) {
	got, ok := Extract("PL 40164 MLPH 1622")
	if !ok || got != "MLPH 1622" {
		t.Fatalf("longest match: got %q ok=%v", got, ok)
	}

	m, ok := ExtractMatch("KULP 3300 MLPH 1622")
	if !ok || m.Identifier != "KULP 3300" || m.Offset != 0 {
		t.Fatalf("earliest match: got %+v ok=%v", m, ok)
	}
}

func TestExtractSkipsRejectedCandidate(t *testing.T) {
	got, ok := Extract("Stereo OIL LPRO 51")
	if !ok || got != "LPRO 51" {
		t.Fatalf("got %q ok=%v, want LPRO 51", got, ok)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("  mlph \n 1622 "); got != "MLPH 1622" {
		t.Fatalf("Normalize = %q", got)
	}
	if !Normalize("   ").IsZero() {
		t.Fatal("expected blank input to normalize to the zero identifier")
	}
}
