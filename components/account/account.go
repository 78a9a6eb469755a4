// components/account/account.go
//
// Account component – who is signed in, and from where.
//
// Context
// -------
// The editor shell calls GET /api/account on start-up to pick its UI
// language and to warn mobile users that drag-and-drop works best on a
// desktop.  The client block comes from the request info attached by
// requestinfo.Enrich; geo fields stay empty when no GeoIP database is
// configured.
package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/component"
	"github.com/yanizio/sitebuilder/internal/httpx"
	"github.com/yanizio/sitebuilder/internal/requestinfo"
)

// compile-time assertion
var _ component.Component = (*Comp)(nil)

// Comp implements component.Component; no state needed.
type Comp struct{}

// Client summarizes the caller's browser and location.
type Client struct {
	Browser   string `json:"browser"`
	OS        string `json:"os"`
	Device    string `json:"device"`
	Language  string `json:"language,omitempty"`
	Country   string `json:"country,omitempty"`
	City      string `json:"city,omitempty"`
	Desktop   bool   `json:"desktop"`
	Automated bool   `json:"automated"`
}

type response struct {
	User   auth.User `json:"user"`
	Client Client    `json:"client"`
}

// Name returns the canonical component key.
func (c *Comp) Name() string { return "account" }

// Init is a no-op.
func (c *Comp) Init(component.Deps) error { return nil }

// Routes registers GET /api/account.
func (c *Comp) Routes(r chi.Router) {
	r.With(auth.Require).Get("/api/account", c.show)
}

func (c *Comp) show(w http.ResponseWriter, r *http.Request) {
	u, _ := auth.FromContext(r.Context())
	httpx.WriteJSON(w, http.StatusOK, response{User: u, Client: clientOf(r)})
}

func clientOf(r *http.Request) Client {
	ri := requestinfo.FromContext(r.Context())
	if ri == nil {
		return Client{}
	}
	return Client{
		Browser:   ri.UA.Browser,
		OS:        ri.UA.OS,
		Device:    ri.UA.Device,
		Language:  ri.UA.PrimaryLang,
		Country:   ri.Geo.CountryISO,
		City:      ri.Geo.City,
		Desktop:   ri.UA.Device == "Desktop",
		Automated: ri.UA.IsBot,
	}
}

// Register component at package init.
func init() {
	component.Register(&Comp{})
}
