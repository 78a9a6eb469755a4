package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/sitebuilder/internal/document"
	"github.com/yanizio/sitebuilder/internal/editor"
	"github.com/yanizio/sitebuilder/internal/panel"
	"github.com/yanizio/sitebuilder/internal/persistence"
	"github.com/yanizio/sitebuilder/internal/provision"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{&document.IndexOutOfRangeError{Index: 5, Len: 2}, http.StatusBadRequest},
		{&document.DuplicateIDError{ID: "a"}, http.StatusBadRequest},
		{&panel.FieldError{Key: "color", Err: panel.ErrInvalidValue}, http.StatusUnprocessableEntity},
		{fmt.Errorf("load: %w", persistence.ErrNotFound), http.StatusNotFound},
		{editor.ErrReadOnly, http.StatusConflict},
		{&provision.LimitError{Limit: 3}, http.StatusConflict},
		{fmt.Errorf("save: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}
type createReq struct {
	Title string `json:"title" validate:"required"`
}

func TestDecode(t *testing.T) {
	var req createReq
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Cafe"}`))
	require.NoError(t, Decode(r, &req))
	assert.Equal(t, "Cafe", req.Title)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Cafe","x":1}`))
	assert.ErrorIs(t, Decode(r, &req), ErrBadRequest)

	r = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	err := Decode(r, &createReq{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, Status(err))

	rec := httptest.NewRecorder()
	WriteError(rec, r, err)
	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "required", body.Fields["title"])
}

func TestWriteErrorHidesInternals(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("dsn=secret"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret")
}
