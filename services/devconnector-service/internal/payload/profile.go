package payload

import (
	"encoding/json"
	"errors"
	"strings"
)

// SkillList accepts either a comma separated string or an array of strings.
// Entries are trimmed and empty entries dropped.
type SkillList []string

func (s *SkillList) UnmarshalJSON(data []byte) error {
	var raw []string

	var csv string
	if err := json.Unmarshal(data, &csv); err == nil {
		raw = strings.Split(csv, ",")
	} else if err := json.Unmarshal(data, &raw); err != nil {
		return errors.New("skills must be a string or an array of strings")
	}

	var skills SkillList
	for _, skill := range raw {
		if skill = strings.TrimSpace(skill); skill != "" {
			skills = append(skills, skill)
		}
	}
	*s = skills

	return nil
}

type UpsertProfileRequest struct {
	Company        string    `json:"company"`
	Website        string    `json:"website"`
	Location       string    `json:"location"`
	Bio            string    `json:"bio"`
	Status         string    `json:"status"         validate:"required"`
	GithubUsername string    `json:"githubusername"`
	Skills         SkillList `json:"skills"         validate:"required,min=1"`
	YouTube        string    `json:"youtube"`
	Twitter        string    `json:"twitter"`
	Facebook       string    `json:"facebook"`
	LinkedIn       string    `json:"linkedin"`
	Instagram      string    `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title"       validate:"required"`
	Company     string `json:"company"     validate:"required"`
	Location    string `json:"location"`
	From        string `json:"from"        validate:"required,date"`
	To          string `json:"to"          validate:"omitempty,date"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school"       validate:"required"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy" validate:"required"`
	From         string `json:"from"         validate:"required,date"`
	To           string `json:"to"           validate:"omitempty,date"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}
