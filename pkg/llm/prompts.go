package llm

import (
	"fmt"
	"strings"
)

// BuildTailoringPrompt asks for the resume JSON rewritten against a job description.
func BuildTailoringPrompt(resumeJSON []byte, jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(`Given the following resume (in JSON format) and the following job description, rewrite the resume JSON to better match the keywords, skills, and requirements in the job description.
Only output optimized JSON. Do not add explanations. Do not add any other text or comments. Keep the original formatting and structure of the resume. The output should be a similar length to the original resume.
Do not format the JSON, return the JSON as a raw string so that it can be parsed directly.
Make sure not to make up any information, only modify the resume to match the job description. You can change the ordering and add more detail, but do not claim I did anything I didn't do or have skills I don't have.
Remember that achievements should start with active verbs like 'Led', 'Built', etc and should show a clear impact, numerically if possible.
Each experience should never have more than five achievements.
Remember that you are optimizing for an ATS, so make sure to include the keywords from the job description in the resume in order to achieve 95%%+ ATS score.
DO NOT under any circumstances return anything other than a raw string of JSON.

RESUME JSON:
%s

JOB DESCRIPTION:
%s

OPTIMIZED RESUME JSON:
`, strings.TrimSpace(string(resumeJSON)), strings.TrimSpace(jobDescription))

	return prompt
}

// BuildCoverLetterPrompt asks for letter body paragraphs only. The salutation
// and closing are added by the renderer.
func BuildCoverLetterPrompt(resumeJSON []byte, jobDescription string) (prompt string) {
	prompt = fmt.Sprintf(`Given the following resume (in JSON format) and job description, write a compelling cover letter for the position.

The cover letter should:
1. Be professional and tailored to the specific company and role
2. Highlight relevant experience and skills from the resume that match the job requirements
3. Show enthusiasm for the company and position
4. Be concise but impactful (2-3 paragraphs)
5. Include specific examples of achievements that relate to the job description
6. Address the key requirements mentioned in the job description

RESUME JSON:
%s

JOB DESCRIPTION:
%s

Please provide the cover letter content in the following format:
- Opening paragraph (introduction and interest in the role)
- Body paragraph(s) (relevant experience and achievements)
- Closing paragraph (enthusiasm and call to action)
- Do not include Dear Hiring Team, or any other salutation, just start with the first paragraph.
- Do not include Sincerely, or any other closing, just end with the last paragraph.

Return only the cover letter content - no additional formatting or explanations.
`, strings.TrimSpace(string(resumeJSON)), strings.TrimSpace(jobDescription))

	return prompt
}
