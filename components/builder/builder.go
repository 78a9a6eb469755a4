// components/builder/builder.go
//
// Page-builder HTTP component.
//
// Context
// -------
// Exposes one editor session per (site, page) over JSON, plus a websocket
// change feed.  Every route below /api/sites/{siteID}/editor requires a
// signed-in owner of the site; unsafe methods also require the CSRF header.
// The page is chosen with ?page=/slug and defaults to "/".
//
//	GET    /api/registry                        palette and style fields
//	GET    …/editor                             session snapshot
//	POST   …/editor/components                  add {type}
//	PATCH  …/editor/components/{id}/content     merge {patch}
//	PATCH  …/editor/components/{id}/style       merge {patch}
//	DELETE …/editor/components/{id}             delete
//	POST   …/editor/reorder                     {from, to}
//	PUT    …/editor/document                    host replace {components}
//	PUT    …/editor/selection                   {id}; "" clears
//	POST   …/editor/drag/{pickup|hover|nudge|drop|cancel}
//	PUT    …/editor/mode                        {mode: edit|preview}
//	GET    …/editor/panel[.html]                panel view or fragment
//	PUT    …/editor/panel/{content|style}/{key} {value}
//	POST   …/editor/panel/delete
//	GET    …/editor/preview[.html]              summaries or page
//	POST   …/editor/{save|publish|reload}
//	GET    …/editor/events                      websocket feed
//
// Errors map through httpx.Status; stale ids answer 200 with
// "changed": false.
package builder

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/acl"
	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/httpx"
	"github.com/yanizio/sitebuilder/internal/registry"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the editor API.
type Component struct {
	sessions *editor.Cache
	owners   acl.Checker
	csrf     *csrf.Tokens
	log      *zap.SugaredLogger
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "builder" }

// Init captures shared dependencies.
func (c *Component) Init(d component.Deps) error {
	c.sessions, c.owners, c.csrf = d.Sessions, d.Owners, d.CSRF
	c.log = d.Log
	if c.log == nil {
		c.log = zap.S()
	}
	return nil
}

// Routes registers the palette and editor endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Require)
		r.Get("/api/registry", c.palette)

		r.Route("/api/sites/{siteID}/editor", func(ed chi.Router) {
			ed.Use(acl.RequireSiteOwner(c.owners, "siteID"))
			ed.Get("/events", c.events) // websocket; origin-checked, no CSRF header

			ed.Group(func(ed chi.Router) {
				ed.Use(c.csrf.Protect)

				ed.Get("/", c.state)
				ed.Post("/components", c.add)
				ed.Patch("/components/{id}/content", c.updateContent)
				ed.Patch("/components/{id}/style", c.updateStyle)
				ed.Delete("/components/{id}", c.remove)
				ed.Post("/reorder", c.reorder)
				ed.Put("/document", c.replace)
				ed.Put("/selection", c.selectComponent)
				ed.Put("/mode", c.mode)

				ed.Post("/drag/pickup", c.pickUp)
				ed.Post("/drag/hover", c.hover)
				ed.Post("/drag/nudge", c.nudge)
				ed.Post("/drag/drop", c.drop)
				ed.Post("/drag/cancel", c.cancelDrag)

				ed.Get("/panel", c.panelView)
				ed.Get("/panel.html", c.panelHTML)
				ed.Put("/panel/content/{key}", c.panelContent)
				ed.Put("/panel/style/{key}", c.panelStyle)
				ed.Post("/panel/delete", c.panelDelete)

				ed.Get("/preview", c.preview)
				ed.Get("/preview.html", c.previewHTML)

				ed.Post("/save", c.save)
				ed.Post("/publish", c.publish)
				ed.Post("/reload", c.reload)
			})
		})
	})
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── helpers ──────────────────────────────────────*/

func key(r *http.Request) editor.Key {
	return editor.NewKey(chi.URLParam(r, "siteID"), r.URL.Query().Get("page"))
}

// session loads or reuses the editor for the request.  On failure the error
// response is already written.
func (c *Component) session(w http.ResponseWriter, r *http.Request) (*editor.Session, bool) {
	s, err := c.sessions.Get(r.Context(), key(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return nil, false
	}
	return s, true
}

// mutation is the body of every edit response.
type mutation struct {
	Changed bool            `json:"changed"`
	State   editor.Snapshot `json:"state"`
}

func (c *Component) reply(w http.ResponseWriter, r *http.Request, s *editor.Session, changed bool, err error) {
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, mutation{Changed: changed, State: s.State()})
}

/*──────────────────────────── palette ──────────────────────────────────────*/

type paletteResponse struct {
	Components  []*registry.Descriptor `json:"components"`
	StyleFields []registry.FieldSpec   `json:"styleFields"`
}

func (c *Component) palette(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, paletteResponse{
		Components:  registry.List(),
		StyleFields: registry.StyleFields,
	})
}
