package llm

import "fmt"

const systemPrompt = "You are an expert JSON generator. You must only output the requested JSON object."

func buildPrompt(resumeText, jobDescription string) string {
	return fmt.Sprintf(`You are a resume analyst who knows how Applicant Tracking Systems score candidates.

Compare the RESUME with the JOB DESCRIPTION and list concrete edits that raise the resume's keyword match and overall fit for the role.

Rules for the analysis:
1. If the resume shows at least 3 fewer years of experience than the job requires, add an "ADD" change in the "Summary" section that addresses the gap.
2. If 3 or more core technologies from the job description are missing from the resume, add an "ADD" change in the "Skills" section that names them.
3. Every required or preferred keyword from the job description must either already appear in the resume or be covered by a change.

Rules for the output:
1. Return one JSON object with the keys "summary" and "changes".
2. "summary" gives an estimated match percentage and the main gaps.
3. Each element of "changes" has the keys "type" (ADD, REVISE or REMOVE), "section", "targetText", "suggestedText" and "reason".
4. "targetText" is null for ADD and quotes the original snippet for REVISE and REMOVE.
5. "reason" names the keyword or requirement from the job description that the change addresses.

JOB DESCRIPTION:
"""%s"""

RESUME:
"""%s"""
`, jobDescription, resumeText)
}
