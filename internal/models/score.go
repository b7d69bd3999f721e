package models

const UnknownValue = "Unknown"

// ScoreRequest is one resume scored against one job description.
type ScoreRequest struct {
	ResumeText     string `json:"resumeText" validate:"required"`
	JobDescription string `json:"jobDescription" validate:"required"`
}

// ScoreResult is the minimal schema used for batch ranking.
type ScoreResult struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	JScore float64 `json:"jScore"`
	GScore float64 `json:"gScore"`
}

func DefaultScoreResult() ScoreResult {
	return ScoreResult{
		Name:  UnknownValue,
		Email: UnknownValue,
	}
}

type Skills struct {
	TechnicalSkills map[string]bool `json:"TechnicalSkills" mapstructure:"TechnicalSkills"`
	SoftSkills      map[string]bool `json:"SoftSkills" mapstructure:"SoftSkills"`
}

type MatchedProject struct {
	Project     string `json:"Project" mapstructure:"Project"`
	Description string `json:"Description" mapstructure:"Description"`
}

type RephrasedProject struct {
	Original  string   `json:"Original" mapstructure:"Original"`
	Rephrased []string `json:"Rephrased" mapstructure:"Rephrased"`
}

type ProjectTitleCheck struct {
	Project     string `json:"Project" mapstructure:"Project"`
	Status      string `json:"Status" mapstructure:"Status"`
	Explanation string `json:"Explanation" mapstructure:"Explanation"`
}

type RecruiterTips struct {
	Suggestions  []string          `json:"Suggestions" mapstructure:"Suggestions"`
	WordCount    string            `json:"Word Count" mapstructure:"Word Count"`
	WordsToAvoid map[string]string `json:"wordsToAvoid" mapstructure:"wordsToAvoid"`
}

// DetailedReport is the extended schema returned by the single-resume report path.
// Keys match the output format declared in the report prompt.
type DetailedReport struct {
	JobTitleMatch          string              `json:"Job Title Match"`
	Skills                 Skills              `json:"Skills"`
	SuggestedSkills        []string            `json:"Suggested Skills"`
	MatchedProjects        []MatchedProject    `json:"Matched Projects And Internships"`
	RephrasedProjects      []RephrasedProject  `json:"Rephrased Projects And Internships"`
	ImprovementSuggestions []string            `json:"Resume Improvement Suggestions"`
	GrammaticalCheck       string              `json:"Grammatical Check"`
	ProjectTitleChecks     []ProjectTitleCheck `json:"Project Title Description Check"`
	RecruiterTips          RecruiterTips       `json:"Recruiter Tips"`
	JScore                 float64             `json:"JScore"`
	GScore                 float64             `json:"GScore"`

	ValidationIssues []string `json:"validationIssues,omitempty"`
}

// DefaultDetailedReport returns a report with every collection initialised so it
// serialises as empty arrays and objects rather than null.
func DefaultDetailedReport() DetailedReport {
	return DetailedReport{
		JobTitleMatch: UnknownValue,
		Skills: Skills{
			TechnicalSkills: map[string]bool{},
			SoftSkills:      map[string]bool{},
		},
		SuggestedSkills:        []string{},
		MatchedProjects:        []MatchedProject{},
		RephrasedProjects:      []RephrasedProject{},
		ImprovementSuggestions: []string{},
		ProjectTitleChecks:     []ProjectTitleCheck{},
		RecruiterTips: RecruiterTips{
			Suggestions:  []string{},
			WordsToAvoid: map[string]string{},
		},
	}
}
