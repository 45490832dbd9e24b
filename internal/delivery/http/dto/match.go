package dto

type MatchedSkillResponse struct {
	Skill       string  `json:"skill"`
	Proficiency float64 `json:"proficiency"`
	Level       string  `json:"level"`
}

type MatchResultResponse struct {
	FinalScore      float64                `json:"final_score"`
	SkillScore      float64                `json:"skill_score"`
	ExperienceScore float64                `json:"experience_score"`
	ResumeScore     float64                `json:"resume_score"`
	MatchedSkills   []MatchedSkillResponse `json:"matched_skills"`
	MissingSkills   []string               `json:"missing_skills"`
}
