// internal/panel/render.go
//
// HTML fragment for hosts that render the panel server-side.
//
// Context
// -------
// Output is plain markup with no framework classes.  Each input gets
// id="fld-{section}-{key}" and sits in <div class="form-field">.  Inputs post
// to {Action}/content/{key} or {Action}/style/{key}; the hidden csrf_token
// input lets a host attach the token to those requests.
package panel

import (
	"bytes"
	"html"
	"html/template"

	"github.com/yanizio/sitebuilder/internal/registry"
)

// RenderOptions tunes the fragment.
type RenderOptions struct {
	Action    string // base URL for field updates
	CSRFToken string
}

// RenderHTML renders v as an HTML fragment.
func RenderHTML(v View, opts RenderOptions) template.HTML {
	var buf bytes.Buffer
	if v.Empty {
		buf.WriteString(`<div class="builder-panel builder-panel--empty">` + "\n")
		buf.WriteString(`<p>Select a component to customize it.</p>` + "\n")
		buf.WriteString(`</div>`)
		return template.HTML(buf.String())
	}

	buf.WriteString(`<div class="builder-panel" data-component-id="` + html.EscapeString(v.ComponentID) + `">` + "\n")
	buf.WriteString(`<h3>` + html.EscapeString(v.Icon+" "+v.DisplayName) + `</h3>` + "\n")

	if len(v.Content) > 0 {
		buf.WriteString(`<fieldset class="panel-content"><legend>Content</legend>` + "\n")
		for _, f := range v.Content {
			writeField(&buf, "content", f, opts.Action)
		}
		buf.WriteString(`</fieldset>` + "\n")
	}

	buf.WriteString(`<fieldset class="panel-style"><legend>Style</legend>` + "\n")
	for _, f := range v.Style {
		writeField(&buf, "style", f, opts.Action)
	}
	buf.WriteString(`</fieldset>` + "\n")

	if opts.CSRFToken != "" {
		buf.WriteString(`<input type="hidden" name="csrf_token" value="` + html.EscapeString(opts.CSRFToken) + `">` + "\n")
	}
	buf.WriteString(`<button type="button" class="panel-delete" data-action="` +
		html.EscapeString(opts.Action+"/delete") + `">Delete Component</button>` + "\n")
	buf.WriteString(`</div>`)
	return template.HTML(buf.String())
}

func writeField(buf *bytes.Buffer, section string, f Field, action string) {
	id := "fld-" + section + "-" + html.EscapeString(f.Key)
	attrs := `id="` + id + `" name="` + html.EscapeString(f.Key) + `"` +
		` data-action="` + html.EscapeString(action+"/"+section+"/"+f.Key) + `"`

	buf.WriteString(`<div class="form-field">` + "\n")
	buf.WriteString(`<label for="` + id + `">` + html.EscapeString(f.Label) + `</label>` + "\n")

	switch f.Kind {
	case registry.KindLongText:
		buf.WriteString(`<textarea ` + attrs + ` rows="4">` + html.EscapeString(f.Value) + `</textarea>` + "\n")

	case registry.KindColor:
		buf.WriteString(`<input ` + attrs + ` type="color" value="` + html.EscapeString(f.Value) + `">` + "\n")

	case registry.KindSelect:
		buf.WriteString(`<select ` + attrs + `>` + "\n")
		buf.WriteString(`<option value="">Default</option>` + "\n")
		for _, opt := range f.Options {
			sel := ""
			if f.Value == opt {
				sel = ` selected`
			}
			buf.WriteString(`<option value="` + html.EscapeString(opt) + `"` + sel + `>` + html.EscapeString(opt) + `</option>` + "\n")
		}
		buf.WriteString(`</select>` + "\n")

	default: // text, list
		buf.WriteString(`<input ` + attrs + ` type="text" value="` + html.EscapeString(f.Value) + `"`)
		if f.Placeholder != "" {
			buf.WriteString(` placeholder="` + html.EscapeString(f.Placeholder) + `"`)
		}
		buf.WriteString(`>` + "\n")
	}
	buf.WriteString(`</div>` + "\n")
}
