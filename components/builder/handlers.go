// components/builder/handlers.go
package builder

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/sitebuilder/internal/auth"
	"github.com/yanizio/sitebuilder/internal/csrf"
	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/httpx"
	"github.com/yanizio/sitebuilder/internal/panel"
	"github.com/yanizio/sitebuilder/internal/registry"
)

/*──────────────────────────── request bodies ───────────────────────────────*/

type addRequest struct {
	Type registry.ComponentType `json:"type" validate:"required"`
}

type patchRequest struct {
	Patch map[string]any `json:"patch" validate:"required"`
}

type reorderRequest struct {
	From *int `json:"from" validate:"required"`
	To   *int `json:"to"   validate:"required"`
}

type replaceRequest struct {
	Components []document.Component `json:"components" validate:"required"`
}

type selectRequest struct {
	ID string `json:"id"`
}

type modeRequest struct {
	Mode editor.Mode `json:"mode" validate:"oneof=edit preview"`
}

type dragRequest struct {
	ID       string   `json:"id"`
	Fraction *float64 `json:"fraction" validate:"omitempty,gte=0,lte=1"`
	Delta    int      `json:"delta"`
}

type valueRequest struct {
	Value string `json:"value"`
}

/*──────────────────────────── document ─────────────────────────────────────*/

func (c *Component) state(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.State())
}

func (c *Component) add(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	comp, err := s.Add(req.Type)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, comp)
}

func (c *Component) updateContent(w http.ResponseWriter, r *http.Request) {
	c.patch(w, r, (*editor.Session).UpdateContent)
}

func (c *Component) updateStyle(w http.ResponseWriter, r *http.Request) {
	c.patch(w, r, (*editor.Session).UpdateStyle)
}

func (c *Component) patch(w http.ResponseWriter, r *http.Request,
	apply func(*editor.Session, string, map[string]any) (bool, error)) {
	var req patchRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := apply(s, chi.URLParam(r, "id"), req.Patch)
	c.reply(w, r, s, changed, err)
}

func (c *Component) remove(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := s.Delete(chi.URLParam(r, "id"))
	c.reply(w, r, s, changed, err)
}

func (c *Component) reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := s.Reorder(*req.From, *req.To)
	c.reply(w, r, s, changed, err)
}

func (c *Component) replace(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	err := s.ReplaceDocument(req.Components)
	c.reply(w, r, s, err == nil, err)
}

func (c *Component) selectComponent(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := s.Select(req.ID)
	c.reply(w, r, s, changed, err)
}

func (c *Component) mode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	c.reply(w, r, s, true, s.SetMode(req.Mode))
}

/*──────────────────────────── drag ─────────────────────────────────────────*/

func (c *Component) drag(w http.ResponseWriter, r *http.Request,
	step func(*editor.Session, dragRequest) (bool, error)) {
	var req dragRequest
	if r.ContentLength != 0 {
		if err := httpx.Decode(r, &req); err != nil {
			httpx.WriteError(w, r, err)
			return
		}
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := step(s, req)
	c.reply(w, r, s, changed, err)
}

func (c *Component) pickUp(w http.ResponseWriter, r *http.Request) {
	c.drag(w, r, func(s *editor.Session, req dragRequest) (bool, error) { return s.PickUp(req.ID) })
}

func (c *Component) hover(w http.ResponseWriter, r *http.Request) {
	c.drag(w, r, func(s *editor.Session, req dragRequest) (bool, error) {
		if req.Fraction != nil {
			return s.HoverAt(req.ID, *req.Fraction)
		}
		return s.Hover(req.ID)
	})
}

func (c *Component) nudge(w http.ResponseWriter, r *http.Request) {
	c.drag(w, r, func(s *editor.Session, req dragRequest) (bool, error) { return s.Nudge(req.Delta) })
}

func (c *Component) drop(w http.ResponseWriter, r *http.Request) {
	c.drag(w, r, func(s *editor.Session, _ dragRequest) (bool, error) { return s.Drop() })
}

func (c *Component) cancelDrag(w http.ResponseWriter, r *http.Request) {
	c.drag(w, r, func(s *editor.Session, _ dragRequest) (bool, error) {
		s.CancelDrag()
		return false, nil
	})
}

/*──────────────────────────── panel ────────────────────────────────────────*/

func (c *Component) panelView(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.Panel())
}

func (c *Component) panelHTML(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	opts := panel.RenderOptions{Action: r.URL.Path[:len(r.URL.Path)-len(".html")]}
	if uid, ok := auth.UserID(r.Context()); ok {
		if tok, err := c.csrf.Generate(uid); err == nil {
			opts.CSRFToken = tok
		}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set(csrf.Header, opts.CSRFToken)
	_, _ = w.Write([]byte(panel.RenderHTML(s.Panel(), opts)))
}

func (c *Component) panelContent(w http.ResponseWriter, r *http.Request) {
	c.panelField(w, r, (*editor.Session).PanelSetContent)
}

func (c *Component) panelStyle(w http.ResponseWriter, r *http.Request) {
	c.panelField(w, r, (*editor.Session).PanelSetStyle)
}

func (c *Component) panelField(w http.ResponseWriter, r *http.Request,
	set func(*editor.Session, string, string) (bool, error)) {
	var req valueRequest
	if err := httpx.Decode(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := set(s, chi.URLParam(r, "key"), req.Value)
	c.reply(w, r, s, changed, err)
}

func (c *Component) panelDelete(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	changed, err := s.PanelDelete()
	c.reply(w, r, s, changed, err)
}

/*──────────────────────────── preview ──────────────────────────────────────*/

func (c *Component) preview(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	httpx.WriteJSON(w, http.StatusOK, s.Preview())
}

func (c *Component) previewHTML(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	out, err := s.PreviewHTML()
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

/*──────────────────────────── persistence ──────────────────────────────────*/

func (c *Component) save(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	c.reply(w, r, s, true, s.Save(r.Context()))
}

func (c *Component) publish(w http.ResponseWriter, r *http.Request) {
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	c.reply(w, r, s, true, s.Publish(r.Context()))
}

// reload replaces the open document with the stored page.  When the load
// fails the session keeps its document and unsaved edits.
func (c *Component) reload(w http.ResponseWriter, r *http.Request) {
	if s, ok := c.sessions.Peek(key(r)); ok {
		c.reply(w, r, s, true, s.Load(r.Context()))
		return
	}
	s, ok := c.session(w, r)
	if !ok {
		return
	}
	c.reply(w, r, s, true, nil)
}
