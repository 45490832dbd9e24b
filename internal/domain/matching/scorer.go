package matching

import (
	"math"
	"sort"

	"talentbridge/internal/domain/proficiency"

	"github.com/google/uuid"
)

// Composite score weights. These are fixed design constants; stored
// expectations depend on them, so they are not configurable.
const (
	skillWeight      = 0.6
	experienceWeight = 0.3
	resumeWeight     = 0.1

	experienceScoreWith    = 80.0
	experienceScoreWithout = 40.0
	resumeScoreWith        = 75.0
	resumeScoreWithout     = 50.0
)

// SkillProficiency is one ledger row as seen by the scorer.
type SkillProficiency struct {
	SkillID    uuid.UUID
	SkillName  string
	Percentage float64
	Level      proficiency.Level
}

// Requirement is one skill a job asks for.
type Requirement struct {
	SkillID   uuid.UUID
	SkillName string
}

// CandidateProfile is the read-only snapshot of a user the scorer works from.
type CandidateProfile struct {
	Skills        []SkillProficiency
	HasExperience bool
	HasResume     bool
}

type MatchedSkill struct {
	Skill       string
	Proficiency float64
	Level       proficiency.Level
}

type Result struct {
	FinalScore      float64
	SkillScore      float64
	MatchedSkills   []MatchedSkill
	MissingSkills   []string
	ExperienceScore float64
	ResumeScore     float64
}

// Score computes the composite compatibility score for one candidate-job
// pair. It is pure: given the same profile snapshot and requirements it
// always returns the same result, and permuting the requirement list does
// not change it (matched and missing skills come back sorted by name).
func Score(profile CandidateProfile, reqs []Requirement) Result {
	skillScore, matched, missing := scoreSkills(profile.Skills, reqs)

	expScore := experienceScoreWithout
	if profile.HasExperience {
		expScore = experienceScoreWith
	}
	resumeScore := resumeScoreWithout
	if profile.HasResume {
		resumeScore = resumeScoreWith
	}

	final := round2(skillWeight*skillScore + experienceWeight*expScore + resumeWeight*resumeScore)

	return Result{
		FinalScore:      final,
		SkillScore:      skillScore,
		MatchedSkills:   matched,
		MissingSkills:   missing,
		ExperienceScore: expScore,
		ResumeScore:     resumeScore,
	}
}

func scoreSkills(skills []SkillProficiency, reqs []Requirement) (float64, []MatchedSkill, []string) {
	matched := make([]MatchedSkill, 0, len(reqs))
	missing := make([]string, 0)

	if len(reqs) == 0 {
		return 100, matched, missing
	}

	bySkillID := make(map[uuid.UUID]SkillProficiency, len(skills))
	for _, s := range skills {
		if s.SkillID == uuid.Nil {
			continue
		}
		bySkillID[s.SkillID] = s
	}

	sum := 0.0
	for _, r := range reqs {
		s, ok := bySkillID[r.SkillID]
		if !ok {
			missing = append(missing, r.SkillName)
			continue
		}
		sum += s.Percentage
		matched = append(matched, MatchedSkill{
			Skill:       r.SkillName,
			Proficiency: s.Percentage,
			Level:       s.Level,
		})
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].Skill < matched[j].Skill })
	sort.Strings(missing)

	return round2(sum / float64(len(reqs))), matched, missing
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
