package portfolio

// ToolCategory groups catalog tools.
type ToolCategory string

// Theme is one entry of the global theme vocabulary.
type Theme struct {
	ID    string `yaml:"id" json:"id" validate:"required"`
	Label string `yaml:"label" json:"label" validate:"required"`
}

// Tool is one entry of the global tool vocabulary.
type Tool struct {
	ID       string       `yaml:"id" json:"id" validate:"required"`
	Label    string       `yaml:"label" json:"label" validate:"required"`
	Category ToolCategory `yaml:"category" json:"category" validate:"required,oneof=cloud iac observability incident security language platform collaboration data integration other"`
}

// Catalog is the controlled vocabulary that project themes and solution
// tools are expected to draw from.
type Catalog struct {
	Themes []Theme `yaml:"themes" json:"themes" validate:"required,dive"`
	Tools  []Tool  `yaml:"tools" json:"tools" validate:"required,dive"`

	SourceFile string `yaml:"-" json:"-"`
}

// ToolIDs returns the set of tool ids in the catalog.
func (c *Catalog) ToolIDs() map[string]bool {
	ids := make(map[string]bool, len(c.Tools))
	for _, t := range c.Tools {
		ids[t.ID] = true
	}
	return ids
}

// ThemeIDs returns the set of theme ids in the catalog.
func (c *Catalog) ThemeIDs() map[string]bool {
	ids := make(map[string]bool, len(c.Themes))
	for _, t := range c.Themes {
		ids[t.ID] = true
	}
	return ids
}

// Hide lists ids excluded from the loaded output.
type Hide struct {
	Companies []string `yaml:"companies" json:"companies"`
	Lanes     []string `yaml:"lanes" json:"lanes"`
}

// OrderConfig pins the display order of companies and of the projects
// within each company, and hides selected ids.
type OrderConfig struct {
	Version   int                 `yaml:"version" json:"version" validate:"gte=1"`
	Companies []string            `yaml:"companies" json:"companies" validate:"dive,required"`
	Lanes     map[string][]string `yaml:"lanes" json:"lanes" validate:"dive,dive,required"`
	Hide      Hide                `yaml:"hide" json:"hide"`

	// SourceFile is empty for the default configuration.
	SourceFile string `yaml:"-" json:"-"`
}

// DefaultOrderConfig is the configuration used when no order file exists:
// discovery order, nothing hidden.
func DefaultOrderConfig() *OrderConfig {
	return &OrderConfig{
		Version:   1,
		Companies: []string{},
		Lanes:     map[string][]string{},
		Hide:      Hide{Companies: []string{}, Lanes: []string{}},
	}
}

func (c *OrderConfig) applyDefaults() {
	if c.Companies == nil {
		c.Companies = []string{}
	}
	if c.Lanes == nil {
		c.Lanes = map[string][]string{}
	}
	if c.Hide.Companies == nil {
		c.Hide.Companies = []string{}
	}
	if c.Hide.Lanes == nil {
		c.Hide.Lanes = []string{}
	}
}

// HiddenCompanies returns the hide.companies list as a set.
func (c *OrderConfig) HiddenCompanies() map[string]bool {
	return toSet(c.Hide.Companies)
}

// HiddenLanes returns the hide.lanes list as a set.
func (c *OrderConfig) HiddenLanes() map[string]bool {
	return toSet(c.Hide.Lanes)
}

func toSet(ids []string) map[string]bool {
	s := make(map[string]bool, len(ids))
	for _, id := range ids {
		s[id] = true
	}
	return s
}
