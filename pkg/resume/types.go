package resume

// Record represents a complete resume.
type Record struct {
	Name       string       `json:"name" validate:"required"`
	Contact    Contact      `json:"contact"`
	Summary    string       `json:"summary,omitempty"`
	Experience []Experience `json:"experience" validate:"dive"`
	Projects   []Project    `json:"projects,omitempty"`
	Education  []Education  `json:"education,omitempty"`
	Skills     Skills       `json:"skills"`
}

// Contact represents contact information shown in the heading.
type Contact struct {
	Email     string `json:"email" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	LinkedIn  string `json:"linkedin" validate:"required"`
	Portfolio string `json:"portfolio,omitempty"`
}

// Experience represents a single position.
type Experience struct {
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Title        string   `json:"title" validate:"required"`
	Date         string   `json:"date" validate:"required"`
	Achievements []string `json:"achievements"`
}

// Project represents a side or academic project.
type Project struct {
	Name     string   `json:"name"`
	Subtitle string   `json:"subtitle,omitempty"`
	Date     string   `json:"date,omitempty"`
	Details  []string `json:"details"`
}

// Secondary returns the line shown under the project name.
func (p Project) Secondary() (line string) {
	line = p.Subtitle
	if line == "" {
		line = p.Date
	}
	return line
}

// Education represents a degree entry.
type Education struct {
	School             string   `json:"school"`
	Location           string   `json:"location"`
	Degree             string   `json:"degree"`
	GPA                string   `json:"gpa"`
	Year               string   `json:"year"`
	RelevantCoursework []string `json:"relevant_coursework,omitempty"`
}

// Skills represents the skill categories, rendered in field order.
type Skills struct {
	Languages            []string `json:"languages"`
	ToolsAndTechnologies []string `json:"tools_and_technologies"`
}
