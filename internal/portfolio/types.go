package portfolio

// ImpactType classifies an impact outcome.
type ImpactType string

// Impact types accepted by the schema.
const (
	ImpactReliability   ImpactType = "reliability"
	ImpactObservability ImpactType = "observability"
	ImpactScalability   ImpactType = "scalability"
	ImpactSecurity      ImpactType = "security"
)

// Rel is the relation carried by an Edge.
type Rel string

// Edge relations accepted by the schema.
const (
	RelOwns        Rel = "owns"
	RelHasProblem  Rel = "has_problem"
	RelHasSolution Rel = "has_solution"
	RelSolvedBy    Rel = "solved_by"
	RelDrives      Rel = "drives"
)

// PeopleScope describes the team a role covered.
type PeopleScope struct {
	TeamSize  *int   `yaml:"team_size,omitempty" json:"team_size,omitempty" validate:"omitempty,gte=0"`
	TeamModel string `yaml:"team_model,omitempty" json:"team_model,omitempty"`
}

// Company is the owner of one portfolio document. Its ID is a stable slug
// that is unique across every loaded document.
type Company struct {
	ID          string      `yaml:"id" json:"id" validate:"required,min=2"`
	Label       string      `yaml:"label" json:"label" validate:"required,min=2"`
	Role        string      `yaml:"role" json:"role" validate:"required,min=2"`
	Period      string      `yaml:"period" json:"period" validate:"required,min=2"`
	Tags        []string    `yaml:"tags" json:"tags"`
	PeopleScope PeopleScope `yaml:"people_scope" json:"people_scope"`
}

// Problem is the situation a project addressed.
type Problem struct {
	ID        string `yaml:"id" json:"id" validate:"required,min=2"`
	Statement string `yaml:"statement" json:"statement" validate:"required,min=10"`
}

// Solution is what a project did about its problem.
type Solution struct {
	ID        string   `yaml:"id" json:"id" validate:"required,min=2"`
	Statement string   `yaml:"statement" json:"statement" validate:"required,min=10"`
	Tools     []string `yaml:"tools" json:"tools" validate:"dive,min=2"`
}

// DeepDive advertises an optional long-form write-up for a project.
type DeepDive struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Slug    string `yaml:"slug,omitempty" json:"slug,omitempty"`
}

// Project is one unit of work owned by a company.
type Project struct {
	ID        string   `yaml:"id" json:"id" validate:"required,min=2"`
	Title     string   `yaml:"title" json:"title" validate:"required,min=4"`
	Summary   string   `yaml:"summary,omitempty" json:"summary,omitempty"`
	Themes    []string `yaml:"themes" json:"themes" validate:"dive,min=2"`
	Problem   Problem  `yaml:"problem" json:"problem"`
	Solution  Solution `yaml:"solution" json:"solution"`
	ImpactIDs []string `yaml:"impact_ids" json:"impact_ids" validate:"dive,min=2"`
	DeepDive  DeepDive `yaml:"deepDive" json:"deepDive"`
}

// Impact is a named outcome shared by reference across projects.
type Impact struct {
	ID      string     `yaml:"id" json:"id" validate:"required,min=2"`
	Label   string     `yaml:"label" json:"label" validate:"required,min=4"`
	Type    ImpactType `yaml:"type" json:"type" validate:"required,oneof=reliability observability scalability security"`
	Metrics []string   `yaml:"metrics" json:"metrics"`
}

// Edge links two entities declared in the same document.
type Edge struct {
	From string `yaml:"from" json:"from" validate:"required,min=2"`
	To   string `yaml:"to" json:"to" validate:"required,min=2"`
	Rel  Rel    `yaml:"rel" json:"rel" validate:"required,oneof=owns has_problem has_solution solved_by drives"`
}

// Portfolio is the aggregate root for one company document.
type Portfolio struct {
	Company  Company   `yaml:"company" json:"company"`
	Impacts  []Impact  `yaml:"impacts" json:"impacts" validate:"required,dive"`
	Projects []Project `yaml:"projects" json:"projects" validate:"required,dive"`
	Edges    []Edge    `yaml:"edges" json:"edges" validate:"required,dive"`

	// SourceFile is the document's file name, used in error reports.
	SourceFile string `yaml:"-" json:"-"`
}

// Clone returns a deep copy of p.
func (p *Portfolio) Clone() *Portfolio {
	out := *p
	out.Company.Tags = cloneStrings(p.Company.Tags)
	if p.Company.PeopleScope.TeamSize != nil {
		size := *p.Company.PeopleScope.TeamSize
		out.Company.PeopleScope.TeamSize = &size
	}
	out.Impacts = make([]Impact, len(p.Impacts))
	for i, imp := range p.Impacts {
		imp.Metrics = cloneStrings(imp.Metrics)
		out.Impacts[i] = imp
	}
	out.Projects = make([]Project, len(p.Projects))
	for i, proj := range p.Projects {
		out.Projects[i] = proj.clone()
	}
	out.Edges = append([]Edge{}, p.Edges...)
	return &out
}

func (p Project) clone() Project {
	p.Themes = cloneStrings(p.Themes)
	p.ImpactIDs = cloneStrings(p.ImpactIDs)
	p.Solution.Tools = cloneStrings(p.Solution.Tools)
	return p
}

// ProjectIDs returns the ids of p's projects in document order.
func (p *Portfolio) ProjectIDs() []string {
	ids := make([]string, len(p.Projects))
	for i, proj := range p.Projects {
		ids[i] = proj.ID
	}
	return ids
}

// applyDefaults replaces absent lists with empty ones so every parsed
// document has the same shape regardless of which optional keys it omits.
func (p *Portfolio) applyDefaults() {
	if p.Company.Tags == nil {
		p.Company.Tags = []string{}
	}
	for i := range p.Impacts {
		if p.Impacts[i].Metrics == nil {
			p.Impacts[i].Metrics = []string{}
		}
	}
	for i := range p.Projects {
		proj := &p.Projects[i]
		if proj.Themes == nil {
			proj.Themes = []string{}
		}
		if proj.ImpactIDs == nil {
			proj.ImpactIDs = []string{}
		}
		if proj.Solution.Tools == nil {
			proj.Solution.Tools = []string{}
		}
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
