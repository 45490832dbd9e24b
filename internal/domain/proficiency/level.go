package proficiency

// Level is the discrete skill level derived from a proficiency percentage.
type Level string

const (
	LevelNovice       Level = "novice"
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelSkilled      Level = "skilled"
	LevelAdvanced     Level = "advanced"
	LevelExpert       Level = "expert"
	LevelMaster       Level = "master"
)

// Clamp bounds a proficiency percentage to [0, 100].
func Clamp(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// LevelFor maps a proficiency percentage to its level. The input is clamped
// first, so the mapping is total: every float maps to exactly one level.
func LevelFor(p float64) Level {
	p = Clamp(p)
	switch {
	case p <= 20:
		return LevelNovice
	case p <= 40:
		return LevelBeginner
	case p <= 55:
		return LevelIntermediate
	case p <= 70:
		return LevelSkilled
	case p <= 85:
		return LevelAdvanced
	case p <= 95:
		return LevelExpert
	default:
		return LevelMaster
	}
}

func (l Level) String() string {
	return string(l)
}

// Rank orders levels from Novice (0) to Master (6). Unknown levels rank -1.
func (l Level) Rank() int {
	switch l {
	case LevelNovice:
		return 0
	case LevelBeginner:
		return 1
	case LevelIntermediate:
		return 2
	case LevelSkilled:
		return 3
	case LevelAdvanced:
		return 4
	case LevelExpert:
		return 5
	case LevelMaster:
		return 6
	default:
		return -1
	}
}
