package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/espd/espd-web/backend/go-services/internal/criteria"
	"github.com/espd/espd-web/backend/go-services/internal/espd"
	"github.com/espd/espd-web/backend/go-services/internal/espd/service"
	"github.com/espd/espd-web/backend/go-services/internal/export"
	"github.com/espd/espd-web/backend/go-services/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	g.ServeHTTP(w, req)
	return w
}

func newServer(t *testing.T, opts Options) (*gin.Engine, string) {
	t.Helper()
	g := gin.New()
	RegisterRoutes(g, service.NewMemoryService(), opts)

	w := do(g, http.MethodPost, "/api/espd", `{"procedureTitle":"Road works"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var cr map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cr))
	require.NotEmpty(t, cr["id"])
	return g, cr["id"]
}

func TestDocumentRoutes_CRUD(t *testing.T) {
	g, id := newServer(t, Options{})

	w := do(g, http.MethodGet, "/api/espd/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var d espd.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &d))
	assert.Equal(t, "Road works", d.ProcedureTitle)

	w = do(g, http.MethodPut, "/api/espd/"+id, `{"procedureTitle":"Bridge works","ojsNumber":"2024/S 001-000001"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/api/espd", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Bridge works", list[0]["procedureTitle"])

	w = do(g, http.MethodDelete, "/api/espd/"+id, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	assert.Equal(t, http.StatusNotFound, do(g, http.MethodGet, "/api/espd/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodDelete, "/api/espd/"+id, "").Code)
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPut, "/api/espd/"+id, `{}`).Code)
}

func TestDocumentRoutes_BadBody(t *testing.T) {
	g, id := newServer(t, Options{})

	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodPost, "/api/espd", `{not json`).Code)
	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodPut, "/api/espd/"+id, `{"criteria":{"noSuchField":{}}}`).Code)
}

func TestSweepRoutes(t *testing.T) {
	g, id := newServer(t, Options{})

	w := do(g, http.MethodGet, "/api/espd/"+id+"/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum espd.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.False(t, sum.AtLeastOneSelectionCriterionSelected)
	assert.True(t, sum.HasProcurementInformation)

	w = do(g, http.MethodPost, "/api/espd/"+id+"/selection/activate", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Touched  int          `json:"touched"`
		Failures []string     `json:"failures"`
		Summary  espd.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(criteria.Selection), resp.Touched)
	assert.Empty(t, resp.Failures)
	assert.True(t, resp.Summary.AtLeastOneSelectionCriterionSelected)
	assert.True(t, resp.Summary.AllSelectionCriteriaSelectedExceptAll)

	w = do(g, http.MethodPost, "/api/espd/"+id+"/exclusion/activate-eu", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/api/espd/"+id+"/criteria/"+criteria.NationalExclusionGrounds.Field, "")
	require.Equal(t, http.StatusOK, w.Code)
	var national map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &national))
	assert.Equal(t, false, national["exists"])

	w = do(g, http.MethodPost, "/api/espd/"+id+"/exclusion/activate", "")
	require.Equal(t, http.StatusOK, w.Code)
	w = do(g, http.MethodGet, "/api/espd/"+id+"/criteria/"+criteria.NationalExclusionGrounds.Field, "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &national))
	assert.Equal(t, true, national["exists"])

	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPost, "/api/espd/missing/selection/activate", "").Code)
}

func TestCriterionRoutes(t *testing.T) {
	g, id := newServer(t, Options{})
	base := "/api/espd/" + id + "/criteria/"

	w := do(g, http.MethodGet, base+"paymentTaxes", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	w = do(g, http.MethodPut, base+"paymentTaxes", `{"exists":true,"country":"BE"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, base+"paymentTaxes", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got espd.TaxesCriterion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.True(t, got.Exists)
	assert.Equal(t, "BE", got.Country)

	assert.Equal(t, http.StatusNoContent, do(g, http.MethodPut, base+"paymentTaxes", `null`).Code)

	// a null body with surrounding whitespace still clears the field
	require.Equal(t, http.StatusOK, do(g, http.MethodPut, base+"fraud", `{"exists":true}`).Code)
	assert.Equal(t, http.StatusNoContent, do(g, http.MethodPut, base+"fraud", " null\n").Code)
	w = do(g, http.MethodGet, base+"fraud", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "null", w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(g, http.MethodGet, base+"noSuchField", "").Code)
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPut, base+"noSuchField", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodPut, base+"fraud", `{"exists":"yes"}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodPut, base+"fraud", "").Code)
}

func TestCriteriaTaxonomyRoute(t *testing.T) {
	g := gin.New()
	RegisterRoutes(g, service.NewMemoryService(), Options{})

	w := do(g, http.MethodGet, "/api/criteria?set=selection", "")
	require.Equal(t, http.StatusOK, w.Code)
	var set []criteria.Criterion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.Len(t, set, len(criteria.Selection))
	assert.Equal(t, criteria.AllSelectionCriteriaSatisfied, set[0])

	w = do(g, http.MethodGet, "/api/criteria", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	assert.Len(t, set, len(criteria.All()))

	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodGet, "/api/criteria?set=award", "").Code)

	w = do(g, http.MethodGet, "/api/criteria?set=exclusion&variant=taxes", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &set))
	require.NotEmpty(t, set)
	for _, c := range set {
		assert.Equal(t, criteria.VariantTaxes, c.Variant)
	}
	assert.Equal(t, http.StatusBadRequest, do(g, http.MethodGet, "/api/criteria?variant=bogus", "").Code)
}

func TestCriterionByIDRoute(t *testing.T) {
	g := gin.New()
	RegisterRoutes(g, service.NewMemoryService(), Options{})

	w := do(g, http.MethodGet, "/api/criteria/"+criteria.NationalExclusionGrounds.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got criteria.Criterion
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, criteria.NationalExclusionGrounds, got)

	assert.Equal(t, http.StatusNotFound, do(g, http.MethodGet, "/api/criteria/CRITERION.NOPE", "").Code)
}

func TestProtectGuardsMutations(t *testing.T) {
	deny := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		c.Next()
	}
	g := gin.New()
	RegisterRoutes(g, service.NewMemoryService(), Options{Protect: []gin.HandlerFunc{deny}})

	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/api/espd", `{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, do(g, http.MethodPost, "/api/espd/x/selection/activate", "").Code)
	assert.Equal(t, http.StatusOK, do(g, http.MethodGet, "/api/espd", "").Code)
}

type fakeExporter struct {
	recs   []*export.Record
	bodies map[string]string
	err    error
}

func (f *fakeExporter) Export(_ context.Context, d *espd.Document) (*export.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	rec := &export.Record{ExportID: "exp-1", DocID: d.ID, Key: "espd/" + d.ID + "/exp-1.html", CreatedAt: time.Now()}
	f.recs = append(f.recs, rec)
	if f.bodies == nil {
		f.bodies = map[string]string{}
	}
	f.bodies[rec.ExportID] = "<h1>" + d.ProcedureTitle + "</h1>"
	return rec, nil
}

func (f *fakeExporter) Open(_ context.Context, docID, exportID string) (*export.Record, *storage.Object, error) {
	for _, r := range f.recs {
		if r.DocID == docID && r.ExportID == exportID {
			body := f.bodies[exportID]
			return r, &storage.Object{
				ReadCloser:  io.NopCloser(strings.NewReader(body)),
				Size:        int64(len(body)),
				ContentType: "text/html; charset=utf-8",
			}, nil
		}
	}
	return nil, nil, export.ErrNotFound
}

func (f *fakeExporter) History(_ context.Context, docID string) ([]*export.Record, error) {
	var out []*export.Record
	for _, r := range f.recs {
		if r.DocID == docID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestExportRoutes(t *testing.T) {
	exp := &fakeExporter{}
	g, id := newServer(t, Options{Exporter: exp})

	w := do(g, http.MethodPost, "/api/espd/"+id+"/export", "")
	require.Equal(t, http.StatusCreated, w.Code)
	var rec export.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, id, rec.DocID)

	w = do(g, http.MethodGet, "/api/espd/"+id+"/exports", "")
	require.Equal(t, http.StatusOK, w.Code)
	var recs []export.Record
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recs))
	assert.Len(t, recs, 1)

	w = do(g, http.MethodGet, "/api/espd/"+id+"/exports/"+rec.ExportID+"/content", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>Road works</h1>", w.Body.String())
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodGet, "/api/espd/"+id+"/exports/unknown/content", "").Code)

	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPost, "/api/espd/missing/export", "").Code)

	exp.err = errors.New("bucket unavailable")
	assert.Equal(t, http.StatusBadGateway, do(g, http.MethodPost, "/api/espd/"+id+"/export", "").Code)
}

func TestExportRoutesDisabledWithoutExporter(t *testing.T) {
	g, id := newServer(t, Options{})
	assert.Equal(t, http.StatusNotFound, do(g, http.MethodPost, "/api/espd/"+id+"/export", "").Code)
}
