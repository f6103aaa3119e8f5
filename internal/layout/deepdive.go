package layout

import (
	"github.com/papapumpkin/starfolio/internal/content"
	"github.com/papapumpkin/starfolio/internal/portfolio"
)

// DeepDivePage is the render record for one long-form project write-up.
type DeepDivePage struct {
	Slug           string   `json:"slug"`
	CompanyID      string   `json:"companyId"`
	ProjectID      string   `json:"projectId,omitempty"`
	Title          string   `json:"title"`
	Themes         []string `json:"themes"`
	Tools          []string `json:"tools"`
	ImpactSnapshot []string `json:"impactSnapshot"`
	Body           string   `json:"content"`
}

// NewDeepDivePage combines a content document with the project that owns
// it. owner and proj may be nil for a document no visible project claims;
// the page then has no company and falls back to an empty title.
func NewDeepDivePage(doc *content.Document, owner *portfolio.Portfolio, proj *portfolio.Project) DeepDivePage {
	var companyID, projectID, fallback string
	if owner != nil {
		companyID = owner.Company.ID
	}
	if proj != nil {
		projectID = proj.ID
		fallback = proj.Title
	}
	fm := doc.Frontmatter.WithDefaults(fallback)
	return DeepDivePage{
		Slug:           doc.Slug,
		CompanyID:      companyID,
		ProjectID:      projectID,
		Title:          fm.Title,
		Themes:         fm.Themes,
		Tools:          fm.Tools,
		ImpactSnapshot: fm.ImpactSnapshot,
		Body:           doc.Body,
	}
}
