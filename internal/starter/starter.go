// internal/starter/starter.go
//
// Starter templates for new sites.
//
// Context
// -------
// Each template is one YAML file under templates/ listing the pages a new
// site starts with.  A page lists components by type, optionally overriding
// content or style keys:
//
//	id: business
//	name: Business
//	pages:
//	  - slug: /
//	    title: Home
//	    components:
//	      - type: hero
//	        content: { title: "Your Business Name" }
//
// Components are built through document.Create so every page gets fresh
// ids and full registry defaults, then overrides are merged on top.
package starter

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/registry"
	"github.com/yanizio/sitebuilder/internal/routing"
)

// Blank is used when no template is named.
const Blank = "blank"

//go:embed templates/*.yaml
var templateFS embed.FS

// Template is one parsed starter.
type Template struct {
	ID          string     `yaml:"id" json:"id"`
	Name        string     `yaml:"name" json:"name"`
	Description string     `yaml:"description" json:"description"`
	Pages       []PageSpec `yaml:"pages" json:"-"`
}

// PageSpec describes one page of a template.
type PageSpec struct {
	Slug       string          `yaml:"slug"`
	Title      string          `yaml:"title"`
	Components []ComponentSpec `yaml:"components"`
}

// ComponentSpec is a component type plus overrides.
type ComponentSpec struct {
	Type    registry.ComponentType `yaml:"type"`
	Content map[string]any         `yaml:"content"`
	Style   map[string]any         `yaml:"style"`
}

// SeedPage is a ready-to-insert page.
type SeedPage struct {
	Slug  string
	Title string
	Body  document.Body
}

var (
	loadOnce  sync.Once
	templates map[string]*Template
	loadErr   error
)

func load() {
	templates = map[string]*Template{}
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		loadErr = err
		return
	}
	for _, e := range entries {
		raw, err := templateFS.ReadFile(path.Join("templates", e.Name()))
		if err != nil {
			loadErr = err
			return
		}
		var t Template
		if err := yaml.Unmarshal(raw, &t); err != nil {
			loadErr = fmt.Errorf("starter: %s: %w", e.Name(), err)
			return
		}
		for _, p := range t.Pages {
			for _, c := range p.Components {
				if !c.Type.Valid() {
					loadErr = fmt.Errorf("starter: %s: unknown component type %q", e.Name(), c.Type)
					return
				}
			}
		}
		templates[t.ID] = &t
	}
}

// List returns every template ordered by id, blank first.
func List() ([]*Template, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]*Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if (out[i].ID == Blank) != (out[j].ID == Blank) {
			return out[i].ID == Blank
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Get returns template id.  An empty id means Blank.
func Get(id string) (*Template, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	if id == "" {
		id = Blank
	}
	t, ok := templates[id]
	if !ok {
		return nil, fmt.Errorf("starter: unknown template %q", id)
	}
	return t, nil
}

// Seed builds the seed pages of t.  gen mints component ids; nil means
// the document default.
func (t *Template) Seed(gen document.IDGenerator) ([]SeedPage, error) {
	var opts []document.Option
	if gen != nil {
		opts = append(opts, document.WithIDGenerator(gen))
	}

	out := make([]SeedPage, 0, len(t.Pages))
	for _, p := range t.Pages {
		d := document.New(opts...)
		for _, spec := range p.Components {
			c, err := d.Create(spec.Type)
			if err != nil {
				return nil, err
			}
			if len(spec.Content) > 0 {
				d.UpdateContent(c.ID, spec.Content)
			}
			if len(spec.Style) > 0 {
				d.UpdateStyle(c.ID, spec.Style)
			}
		}
		out = append(out, SeedPage{
			Slug:  routing.NormalizePageSlug(p.Slug),
			Title: p.Title,
			Body:  d.Body(),
		})
	}
	return out, nil
}
