// Package readme renders the final README from a repository summary and the
// user's customization, through the generation service or a local template.
package readme

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Section identifiers, in their default order
const (
	SectionBasic        = "basic"
	SectionInstallation = "installation"
	SectionUsage        = "usage"
	SectionFeatures     = "features"
	SectionDevelopment  = "development"
	SectionContributing = "contributing"
	SectionLicense      = "license"
	SectionSupport      = "support"
)

// DefaultSectionOrder lists every section in the order used when none is configured
var DefaultSectionOrder = []string{
	SectionBasic, SectionInstallation, SectionUsage, SectionFeatures,
	SectionDevelopment, SectionContributing, SectionLicense, SectionSupport,
}

var sectionTitles = map[string]string{
	SectionInstallation: "Installation",
	SectionUsage:        "Usage",
	SectionFeatures:     "Features",
	SectionDevelopment:  "Development",
	SectionContributing: "Contributing",
	SectionLicense:      "License",
	SectionSupport:      "Support",
}

// Badge is an image link shown under the title
type Badge struct {
	Alt string `json:"alt" yaml:"alt"`
	URL string `json:"url" yaml:"url" validate:"required,url"`
}

// Author is credited at the end of the README
type Author struct {
	Name    string `json:"name,omitempty" yaml:"name"`
	GitHub  string `json:"github,omitempty" yaml:"github" validate:"omitempty,url"`
	Twitter string `json:"twitter,omitempty" yaml:"twitter" validate:"omitempty,url"`
	Website string `json:"website,omitempty" yaml:"website" validate:"omitempty,url"`
	Email   string `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
}

// BasicInfo overrides the header of the README
type BasicInfo struct {
	Title       string   `json:"title,omitempty" yaml:"title"`
	Description string   `json:"description,omitempty" yaml:"description"`
	Logo        string   `json:"logo,omitempty" yaml:"logo" validate:"omitempty,url"`
	Badges      []Badge  `json:"badges,omitempty" yaml:"badges" validate:"dive"`
	Tags        []string `json:"tags,omitempty" yaml:"tags"`
	Author      Author   `json:"author" yaml:"author"`
}

// Section customizes one README section. Sections are enabled unless
// Disabled is set; Content replaces the generated body.
type Section struct {
	Disabled bool   `json:"disabled,omitempty" yaml:"disabled"`
	Content  string `json:"content,omitempty" yaml:"content"`
}

// Styling toggles layout features
type Styling struct {
	HideTableOfContents bool `json:"hideTableOfContents,omitempty" yaml:"hide_table_of_contents"`
	NoAutoBadges        bool `json:"noAutoBadges,omitempty" yaml:"no_auto_badges"`
}

// Customization is the user's README preferences
type Customization struct {
	BasicInfo    BasicInfo          `json:"basicInfo" yaml:"basic_info"`
	SectionOrder []string           `json:"sectionOrder" yaml:"section_order" validate:"dive,oneof=basic installation usage features development contributing license support"`
	Sections     map[string]Section `json:"sections,omitempty" yaml:"sections" validate:"dive,keys,oneof=installation usage features development contributing license support,endkeys"`
	Styling      Styling            `json:"styling" yaml:"styling"`
}

// DefaultCustomization enables every section in DefaultSectionOrder
func DefaultCustomization() Customization {
	return Customization{
		SectionOrder: slices.Clone(DefaultSectionOrder),
		Sections:     map[string]Section{},
	}
}

// Section returns the settings of section id
func (c Customization) Section(id string) Section {
	return c.Sections[id]
}

// Order returns the configured section order, or DefaultSectionOrder
func (c Customization) Order() []string {
	if len(c.SectionOrder) == 0 {
		return DefaultSectionOrder
	}
	return c.SectionOrder
}

// Validate checks field formats and section names
func (c Customization) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid customization: %w", err)
	}
	return nil
}

// LoadCustomization reads a YAML customization file from fs, applies it over
// DefaultCustomization and validates the result
func LoadCustomization(fs afero.Fs, path string) (Customization, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return Customization{}, fmt.Errorf("read customization: %w", err)
	}

	c := DefaultCustomization()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Customization{}, fmt.Errorf("parse customization %s: %w", path, err)
	}
	if c.Sections == nil {
		c.Sections = map[string]Section{}
	}
	if err := c.Validate(); err != nil {
		return Customization{}, err
	}
	return c, nil
}
