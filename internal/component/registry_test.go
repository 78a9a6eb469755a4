package component

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stub struct {
	name string
	err  error
}

func (s stub) Name() string    { return s.name }
func (s stub) Init(Deps) error { return s.err }
func (s stub) Routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Get("/api/"+s.name, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(s.name))
		})
	})
}

func reset(t *testing.T) {
	mu.Lock()
	saved := registry
	registry = map[string]Component{}
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		registry = saved
		mu.Unlock()
	})
}

func TestAllSortedByName(t *testing.T) {
	reset(t)
	Register(stub{name: "zeta"})
	Register(stub{name: "alpha"})

	var names []string
	for _, c := range All() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"alpha", "zeta"}, names)
}

func TestMountAllSharesPrefix(t *testing.T) {
	reset(t)
	Register(stub{name: "one"})
	Register(stub{name: "two"})

	r := chi.NewRouter()
	require.NoError(t, MountAll(r, Deps{}))

	for _, name := range []string{"one", "two"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/"+name, nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, name, rec.Body.String())
	}
}

func TestMountAllInitError(t *testing.T) {
	reset(t)
	boom := errors.New("boom")
	Register(stub{name: "bad", err: boom})

	err := MountAll(chi.NewRouter(), Deps{})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "component bad")
}
