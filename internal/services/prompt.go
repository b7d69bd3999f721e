package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// Keys the score prompt asks for, in declaration order.
var ScoreSchemaKeys = []string{"name", "email", "jScore", "gScore"}

// Keys the report prompt asks for, in declaration order.
var ReportSchemaKeys = []string{
	"Job Title Match",
	"Skills",
	"Suggested Skills",
	"Matched Projects And Internships",
	"Rephrased Projects And Internships",
	"Resume Improvement Suggestions",
	"Grammatical Check",
	"Project Title Description Check",
	"Recruiter Tips",
	"JScore",
	"GScore",
}

// BuildScorePrompt creates the prompt for the minimal ATS score used in batch ranking.
func (pb *PromptBuilder) BuildScorePrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`I will provide you with two inputs:
- Resume Text: A candidate's resume in text format.
- Job Description (JD): A job listing or description that the candidate is applying to.

Your task is to **evaluate strictly** the resume based on the JD and return a concise JSON object.

Evaluation Guidelines:
1. Skills Matching - compare the technical and soft skills in the resume with the skills required by the JD, accounting for variations (e.g. "React.js" = "ReactJS").
2. Content Evaluation - penalize vague or unrelated experience, reward specific and quantified achievements.
3. Project Relevance - weigh projects and internships by how closely their stack and outcomes match the JD.
4. Quality Metrics - grammar, structure, formatting and action verb usage, independent of the JD.

Scoring Guidelines:
- jScore (0-100): JD alignment. 70-100 excellent match, 40-69 partial match, 0-39 poor match.
- gScore (0-100): general resume quality. 70-100 professional, 40-69 needs minor improvements, 0-39 major improvements needed.

Required Output Format (JSON only):
{
    "name": "Candidate's Name",
    "email": "Candidate's Email",
    "jScore": number,
    "gScore": number
}

Important:
- Provide only the JSON object, with no explanation or any other text
- Maintain exact key names as shown
- Scores must be plain numbers between 0 and 100

Below is the Resume Text: "%s"
Below is the Job Description: "%s"`, resumeText, jobDescription)
}

// BuildReportPrompt creates the prompt for the detailed single-resume evaluation report.
func (pb *PromptBuilder) BuildReportPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`Analyze the provided resume against the job description and generate a detailed evaluation report.

Input:
Resume Text: "%s"
Job Description: "%s"

Evaluation Guidelines:
1. Skills Matching
    - First extract ALL skills from resume (both technical and soft skills)
    - Then extract ALL required skills from job description
    - For each skill found in resume:
      * Check if it appears in job description
      * Note the context and proficiency level mentioned
      * Consider skill variations (e.g., "React.js" = "ReactJS")
      * Mark as true if found in job description, false if not
    - List all skills from resume regardless of job description match

2. Content Evaluation
- Identify gaps and irrelevant content
- Penalize vague or unrelated experiences
- Evaluate clarity and specificity of achievements
- Check for quantifiable results and impact

3. Project/Internship Analysis
- Match projects strictly based on JD relevance
- Evaluate technology stack alignment
- Check implementation context
- Verify outcome relevance

4. Resume Quality Metrics
- Grammar and professionalism (independent of JD)
- Structure and formatting
- Content organization
- Action verb usage
- Quantifiable achievements

5. Recruiter Tips
- Provide at least 5-7 detailed suggestions for improvement
- Include specific formatting recommendations and ATS optimization tips
- Suggest optimal word count range for each section
- Provide keyword placement strategies

6. Words to Avoid Analysis
- Identify at least 10 weak or overused words/phrases
- Provide a stronger alternative for each word
- Flag buzzwords and cliches

7. Suggested Skills Enhancement
- List at least 8-10 relevant technical skills from JD
- Include emerging technologies, certifications and relevant soft skills

8. Project Rephrasing
- Provide 3-4 alternative versions for each project
- Include quantifiable metrics and technical keywords from JD
- Improve action verb usage and result orientation

Scoring Guidelines:
- JScore (0-100): Strict evaluation of JD alignment
  70-100: Excellent match with specific skills and experience
  40-69: Partial match with some relevant experience
  0-39: Poor match with significant gaps

- GScore (0-100): Overall resume quality
  70-100: Professional, well-structured, clear achievements
  40-69: Decent structure, needs minor improvements
  0-39: Major improvements needed

Required Output Format (JSON only):
{
    "Job Title Match": "Matched/Not Matched",
    "Skills": {
        "TechnicalSkills": {"skill": boolean},
        "SoftSkills": {"skill": boolean}
    },
    "Suggested Skills": ["skill1", "skill2"],
    "Matched Projects And Internships": [
        {
            "Project": "title",
            "Description": "alignment explanation"
        }
    ],
    "Rephrased Projects And Internships": [
        {
            "Original": "text",
            "Rephrased": ["point1", "point2", "point3", "point4"]
        }
    ],
    "Resume Improvement Suggestions": ["suggestion1", "suggestion2"],
    "Grammatical Check": "detailed review",
    "Project Title Description Check": [
        {
            "Project": "title",
            "Status": "Matched/Not Matched",
            "Explanation": "consistency review"
        }
    ],
    "Recruiter Tips": {
        "Suggestions": ["tip1", "tip2", "tip3", "tip4", "tip5"],
        "Word Count": "detailed section-wise recommendation",
        "wordsToAvoid": {
            "word1": "stronger alternative",
            "word2": "stronger alternative"
        }
    },
    "JScore": number,
    "GScore": number
}

Important:
- Provide only the JSON response
- Maintain exact key names as shown
- Ensure all values are properly formatted
- No additional explanations or text outside JSON structure`, resumeText, jobDescription)
}
