package llm

import (
	"strings"
	"testing"
)

func TestBuildTailoringPrompt(t *testing.T) {
	resumeJSON := []byte(`{"name":"Test User","experience":[]}` + "\n")
	jd := "We are looking for a Staff Engineer with Go experience at Acme Corp."

	prompt := BuildTailoringPrompt(resumeJSON, jd)

	if !strings.Contains(prompt, "RESUME JSON:\n{\"name\":\"Test User\",\"experience\":[]}\n\nJOB DESCRIPTION:\n"+jd) {
		t.Error("Prompt should embed the resume followed by the job description")
	}

	if !strings.HasSuffix(prompt, "OPTIMIZED RESUME JSON:\n") {
		t.Error("Prompt should end with the answer marker")
	}

	if !strings.Contains(prompt, "95%+ ATS score") {
		t.Error("Prompt should keep its literal percent sign")
	}

	if !strings.Contains(prompt, "never have more than five achievements") {
		t.Error("Prompt should cap achievements per experience")
	}

	if strings.Contains(prompt, "%!") {
		t.Error("Prompt contains a formatting error")
	}
}

func TestBuildCoverLetterPrompt(t *testing.T) {
	resumeJSON := []byte(`{"name":"Test User"}`)
	jd := "Platform team at Acme."

	prompt := BuildCoverLetterPrompt(resumeJSON, jd)

	if !strings.Contains(prompt, `{"name":"Test User"}`) {
		t.Error("Prompt should contain the resume")
	}

	if !strings.Contains(prompt, jd) {
		t.Error("Prompt should contain job description")
	}

	// Renderer supplies salutation and closing.
	if !strings.Contains(prompt, "Do not include Dear Hiring Team") {
		t.Error("Prompt should forbid a salutation")
	}

	if !strings.Contains(prompt, "Do not include Sincerely") {
		t.Error("Prompt should forbid a closing")
	}

	if strings.Contains(prompt, "%!") {
		t.Error("Prompt contains a formatting error")
	}
}
