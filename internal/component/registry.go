// internal/component/registry.go
//
// Component registry (cycle-free).
//
// Each concrete component lives under components/<name> and calls
// component.Register() in an init() function.  cmd/web builds one Deps
// value and hands it to MountAll, which calls Init(deps) on every
// component and then lets each register its routes on the shared router.
//
// Notes
// -----
//   - All() is sorted by name so route registration order is stable.
//   - Components share one chi tree, so each registers full paths inside
//     r.Group rather than mounting a sub-router at "/".  Two components
//     may then both serve under /api.
//   - Oxford commas, two spaces after periods.

package component

import (
	"fmt"
	"sort"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/sitebuilder/internal/acl"
	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/config"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/provision"
)

// Deps exposes shared resources to Components during Init.  Sites is nil
// when the storage backend cannot provision (Mongo).
type Deps struct {
	Config   *config.Config
	Gateway  persistence.Gateway
	Sessions *editor.Cache
	Sites    *provision.Service
	Owners   acl.Checker
	Cookies  *auth.Cookies
	CSRF     *csrf.Tokens
	Log      *zap.SugaredLogger
}

// Component contract.
//
// Routes registers BOTH page and API endpoints on the shared router, e.g:
//
//	r.Group(func(r chi.Router) {
//		r.Use(auth.Require)
//		r.Get("/auth/me", c.me)
//	})
type Component interface {
	Name() string
	Init(Deps) error
	Routes(r chi.Router)
}

var (
	mu       sync.RWMutex
	registry = map[string]Component{}
)

// Register is invoked from component init() functions.
func Register(c Component) {
	mu.Lock()
	registry[c.Name()] = c
	mu.Unlock()
}

// All returns every registered component ordered by name.
func All() []Component {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]Component, 0, len(registry))
	for _, c := range registry {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// MountAll initializes every registered component with d and registers its
// routes on r.  The first Init error aborts.
func MountAll(r chi.Router, d Deps) error {
	for _, c := range All() {
		if err := c.Init(d); err != nil {
			return fmt.Errorf("component %s: %w", c.Name(), err)
		}
		c.Routes(r)
		if d.Log != nil {
			d.Log.Debugw("component mounted", "component", c.Name())
		}
	}
	return nil
}
