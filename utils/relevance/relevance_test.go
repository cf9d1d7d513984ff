package relevance

import "testing"

func TestScorePriorityOrder(t *testing.T) {
	cases := []struct {
		name  string
		title string
		query string
		want  float64
	}{
		{"exact", "Batman", "batman", 100},
		{"exact mixed case", "The Batman", "the batman", 100},
		{"prefix", "Batman Begins", "batman", 90},
		{"substring", "The Batman", "batman", 70},
		{"word partial half", "Dark Knight Rises", "dark city", 30},
		{"no match", "Amelie", "batman", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.title, tc.query); got != tc.want {
				t.Fatalf("Score(%q, %q) = %v, want %v", tc.title, tc.query, got, tc.want)
			}
		})
	}
}

func TestScoreRange(t *testing.T) {
	pairs := [][2]string{
		{"Batman Begins", "bat"},
		{"", "query"},
		{"Some Title", ""},
		{"A Very Long Movie Title Indeed", "very long indeed"},
	}
	for _, p := range pairs {
		got := Score(p[0], p[1])
		if got < 0 || got > 100 {
			t.Fatalf("Score(%q, %q) = %v out of [0,100]", p[0], p[1], got)
		}
	}
}

func TestScoreSelfMatch(t *testing.T) {
	for _, title := range []string{"Inception", "THE MATRIX", "Léon: The Professional"} {
		if got := Score(title, title); got != 100 {
			t.Fatalf("Score(%q, %q) = %v, want 100", title, title, got)
		}
	}
}

func TestFastScoreSkipsWordTier(t *testing.T) {
	// Word-level partial matches score in the full mode only.
	if got := Score("Dark Knight", "dark city"); got == 0 {
		t.Fatal("full Score should credit word-level partial match")
	}
	if got := FastScore("Dark Knight", "dark city"); got != 0 {
		t.Fatalf("FastScore = %v, want 0 for word-level-only match", got)
	}
	// Exact / prefix / substring tiers are identical across modes.
	if got := FastScore("Batman Begins", "batman"); got != 90 {
		t.Fatalf("FastScore prefix = %v, want 90", got)
	}
}

func TestFastScoreRanksPrefixAboveSubstring(t *testing.T) {
	prefix := FastScore("Batman Begins", "batman")
	substring := FastScore("The Batman", "batman")
	if prefix <= substring {
		t.Fatalf("prefix score %v must exceed substring score %v", prefix, substring)
	}
}
