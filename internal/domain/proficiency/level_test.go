package proficiency

import "testing"

func TestLevelFor_Buckets(t *testing.T) {
	cases := []struct {
		p    float64
		want Level
	}{
		{0, LevelNovice},
		{20, LevelNovice},
		{21, LevelBeginner},
		{40, LevelBeginner},
		{41, LevelIntermediate},
		{55, LevelIntermediate},
		{56, LevelSkilled},
		{70, LevelSkilled},
		{71, LevelAdvanced},
		{85, LevelAdvanced},
		{86, LevelExpert},
		{95, LevelExpert},
		{96, LevelMaster},
		{100, LevelMaster},
	}
	for _, c := range cases {
		if got := LevelFor(c.p); got != c.want {
			t.Fatalf("LevelFor(%v) = %s, want %s", c.p, got, c.want)
		}
	}
}

func TestLevelFor_ClampsOutOfRange(t *testing.T) {
	if got := LevelFor(-10); got != LevelNovice {
		t.Fatalf("LevelFor(-10) = %s, want novice", got)
	}
	if got := LevelFor(250); got != LevelMaster {
		t.Fatalf("LevelFor(250) = %s, want master", got)
	}
}

func TestLevelFor_TotalOverRange(t *testing.T) {
	for p := 0; p <= 100; p++ {
		if LevelFor(float64(p)).Rank() < 0 {
			t.Fatalf("no level for %d", p)
		}
	}
}

func TestRank_Ordering(t *testing.T) {
	ordered := []Level{
		LevelNovice, LevelBeginner, LevelIntermediate, LevelSkilled,
		LevelAdvanced, LevelExpert, LevelMaster,
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Fatalf("%s should rank below %s", ordered[i-1], ordered[i])
		}
	}
}
