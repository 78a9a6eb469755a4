// components/sites/sites.go
//
// Site dashboard component.
//
// Context
// -------
// Lists, provisions, publishes, and deletes the signed-in user's sites.
// Routes below /api/sites/{siteID} require ownership; unsafe methods
// require the CSRF header.
//
//	GET    /api/templates                     starter templates
//	GET    /api/sites                         caller's sites, newest first
//	POST   /api/sites                         provision {title, template}
//	GET    /api/sites/{siteID}                one site
//	DELETE /api/sites/{siteID}                site and all its pages
//	POST   /api/sites/{siteID}/publish
//	POST   /api/sites/{siteID}/unpublish
//	GET    /api/sites/{siteID}/pages          page summaries
//
// Notes
// -----
//   - Provisioning needs the SQL store.  With the Mongo backend Deps.Sites
//     is nil and every route here answers 501.
//   - Deleting a site drops its open editor sessions, unsaved edits
//     included.
package sites

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/sitebuilder/internal/acl"
	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/httpx"
	"github.com/yanizio/sitebuilder/internal/provision"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component serves the site dashboard API.
type Component struct {
	sites    *provision.Service
	sessions *editor.Cache
	owners   acl.Checker
	csrf     *csrf.Tokens
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "sites" }

// Init captures shared dependencies.
func (c *Component) Init(d component.Deps) error {
	c.sites, c.sessions, c.owners, c.csrf = d.Sites, d.Sessions, d.Owners, d.CSRF
	return nil
}

// Routes registers the dashboard endpoints.
func (c *Component) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(auth.Require, c.available, c.csrf.Protect)
		r.Get("/api/templates", c.templates)
		r.Get("/api/sites", c.list)
		r.Post("/api/sites", c.create)

		r.Group(func(r chi.Router) {
			r.Use(acl.RequireSiteOwner(c.owners, "siteID"))
			r.Get("/api/sites/{siteID}", c.get)
			r.Delete("/api/sites/{siteID}", c.remove)
			r.Post("/api/sites/{siteID}/publish", c.publish)
			r.Post("/api/sites/{siteID}/unpublish", c.unpublish)
			r.Get("/api/sites/{siteID}/pages", c.pages)
		})
	})
}

// Register component at program start.
func init() { component.Register(&Component{}) }

/*──────────────────────────── handlers ─────────────────────────────────────*/

func (c *Component) available(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.sites == nil {
			httpx.WriteJSON(w, http.StatusNotImplemented,
				httpx.Response{Error: "site management needs the sql storage backend"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Component) templates(w http.ResponseWriter, r *http.Request) {
	list, err := c.sites.Templates()
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (c *Component) list(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserID(r.Context())
	list, err := c.sites.List(r.Context(), uid)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}

func (c *Component) create(w http.ResponseWriter, r *http.Request) {
	var req provision.CreateRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	uid, _ := auth.UserID(r.Context())
	rec, err := c.sites.Create(r.Context(), uid, req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/sites/"+rec.ID)
	httpx.WriteJSON(w, http.StatusCreated, rec)
}

func (c *Component) get(w http.ResponseWriter, r *http.Request) {
	rec, err := c.sites.Get(r.Context(), chi.URLParam(r, "siteID"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, rec)
}

func (c *Component) remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "siteID")
	if err := c.sites.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if c.sessions != nil {
		c.sessions.DropSite(id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *Component) publish(w http.ResponseWriter, r *http.Request)   { c.setPublished(w, r, true) }
func (c *Component) unpublish(w http.ResponseWriter, r *http.Request) { c.setPublished(w, r, false) }

func (c *Component) setPublished(w http.ResponseWriter, r *http.Request, published bool) {
	id := chi.URLParam(r, "siteID")
	if err := c.sites.SetPublished(r.Context(), id, published); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	c.get(w, r)
}

func (c *Component) pages(w http.ResponseWriter, r *http.Request) {
	list, err := c.sites.Pages(r.Context(), chi.URLParam(r, "siteID"))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, list)
}
