package content

// Document is the résumé source consumed read-only by the terminal.
type Document struct {
	Name     string   `yaml:"name"`
	Username string   `yaml:"username"`
	Title    string   `yaml:"title"`
	Location string   `yaml:"location"`
	About    []string `yaml:"about"`
	Contact  Contact  `yaml:"contact"`

	Experience     []Role          `yaml:"experience"`
	Skills         []SkillGroup    `yaml:"skills"`
	Education      []Study         `yaml:"education"`
	Certifications []Certification `yaml:"certifications"`
	Projects       []Project       `yaml:"projects"`

	// Extra declares additional free-form commands (e.g. "blog").
	Extra []ExtraCommand `yaml:"extra"`
}

// Contact holds the ways to reach the person. Empty fields are omitted.
type Contact struct {
	Email    string `yaml:"email"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
	Website  string `yaml:"website"`
}

// Role is one position in the experience listing.
type Role struct {
	Organisation string   `yaml:"organisation"`
	Icon         string   `yaml:"icon"`
	Period       string   `yaml:"period"`
	Position     string   `yaml:"position"`
	Highlights   []string `yaml:"highlights"`
}

// SkillGroup is a titled list of rated skills.
type SkillGroup struct {
	Title string  `yaml:"title"`
	Icon  string  `yaml:"icon"`
	Items []Skill `yaml:"items"`
}

// Skill is a named proficiency from 0 to 100.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"`
}

// Study is an education entry.
type Study struct {
	Institution string `yaml:"institution"`
	Year        string `yaml:"year"`
	Award       string `yaml:"award"`
}

// Certification is a named certificate and the year it was obtained.
type Certification struct {
	Name string `yaml:"name"`
	Year string `yaml:"year"`
}

// Project is a personal project.
type Project struct {
	Name    string   `yaml:"name"`
	Summary string   `yaml:"summary"`
	Tech    []string `yaml:"tech"`
	URL     string   `yaml:"url"`
}

// ExtraCommand is a user-defined command with literal output.
type ExtraCommand struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Output      []string `yaml:"output"`
}
