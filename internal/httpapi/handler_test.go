package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a3tai/mcp-field-reports/internal/compose"
	"github.com/a3tai/mcp-field-reports/internal/layout"
	"github.com/a3tai/mcp-field-reports/internal/notify"
	"github.com/a3tai/mcp-field-reports/internal/render"
)

type failingRenderer struct{}

func (failingRenderer) Render(*layout.Artifact) ([]byte, error) {
	return nil, errors.New("out of paper")
}

func newTestRouter(t *testing.T, maxPayload int64) (http.Handler, *notify.Recorder) {
	t.Helper()
	notes := &notify.Recorder{}
	// The service's own sink is unused: every request brings its download sink.
	svc := compose.NewService(render.NewMeasurer(), render.NewRenderer("test", "test"), nil,
		compose.WithObserver(notes))
	return NewRouter(NewHandler(svc, maxPayload)), notes
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got), rec.Body.String())
	return got
}

const workOrderJSON = `{
	"einsatzort": "Bahnhofstr. 3",
	"rgEmpfaenger": "Stadtwerke",
	"artDerArbeit": "Pumpe eingebaut",
	"datum": "2024-03-15",
	"items": [{"beschreibung": "Pumpe", "einheitNetto": "500", "stundenStuck": "4"}]
}`

func TestWorkOrder_Download(t *testing.T) {
	h, notes := newTestRouter(t, 1<<20)

	rec := post(t, h, "/api/v1/work-orders", workOrderJSON)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=Leistungsauftrag_2024-03-15.pdf", rec.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF-"))

	all := notes.All()
	require.Len(t, all, 1)
	assert.Equal(t, notify.Success, all[0].Severity)
}

func TestDailyReport_Download(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)

	rec := post(t, h, "/api/v1/daily-reports", `{"auftraggeber":"Stadtwerke","ort":"Weißwasser","datum":"2024-03-15","artDerArbeit":"Spülung"}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "attachment; filename=Tagesbericht_2024-03-15.pdf", rec.Header().Get("Content-Disposition"))
}

func TestCompose_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		maxPayload int64
		wantStatus int
		check      func(t *testing.T, body map[string]any)
	}{
		{
			name:       "malformed body",
			path:       "/api/v1/work-orders",
			body:       `{"einsatzort":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "body too large",
			path:       "/api/v1/work-orders",
			body:       workOrderJSON,
			maxPayload: 32,
			wantStatus: http.StatusRequestEntityTooLarge,
		},
		{
			name:       "missing required fields",
			path:       "/api/v1/daily-reports",
			body:       `{"datum":"2024-03-15"}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, []any{"auftraggeber", "ort"}, body["fields"])
			},
		},
		{
			name:       "no populated line item",
			path:       "/api/v1/work-orders",
			body:       `{"einsatzort":"a","rgEmpfaenger":"b","artDerArbeit":"c","datum":"2024-03-15","items":[{"beschreibung":""}]}`,
			wantStatus: http.StatusUnprocessableEntity,
			check: func(t *testing.T, body map[string]any) {
				assert.Equal(t, "Fehler", body["title"])
				assert.Equal(t, "Bitte fügen Sie mindestens eine Leistungsposition hinzu.", body["message"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			maxPayload := tt.maxPayload
			if maxPayload == 0 {
				maxPayload = 1 << 20
			}
			h, _ := newTestRouter(t, maxPayload)

			rec := post(t, h, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			if tt.check != nil {
				tt.check(t, decodeBody(t, rec))
			}
		})
	}
}

func TestCompose_RenderFailure(t *testing.T) {
	notes := &notify.Recorder{}
	svc := compose.NewService(render.NewMeasurer(), failingRenderer{}, nil, compose.WithObserver(notes))
	h := NewRouter(NewHandler(svc, 1<<20))

	rec := post(t, h, "/api/v1/work-orders", workOrderJSON)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "document could not be created", decodeBody(t, rec)["error"])
	assert.Empty(t, notes.All())
}

func TestSignature(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)

	rec := post(t, h, "/api/v1/signatures", `{"events":[
		{"type":"mousedown","clientX":20,"clientY":40},
		{"type":"mousemove","clientX":80,"clientY":40},
		{"type":"mouseup"}
	]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["empty"])
	assert.True(t, strings.HasPrefix(body["payload"].(string), "data:image/png;base64,"))

	rec = post(t, h, "/api/v1/signatures", `{"events":[{"type":"mousemove","clientX":1,"clientY":1}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["empty"])

	rec = post(t, h, "/api/v1/signatures", `{"events":[{"type":"wheel"}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestRecovery(t *testing.T) {
	h := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal server error", decodeBody(t, rec)["error"])
}

func TestRecovery_AfterResponseStarted(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "header and body written",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("%PDF-1.3"))
				panic("boom")
			},
		},
		{
			name: "body written without explicit header",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/pdf")
				_, _ = w.Write([]byte("%PDF-1.3"))
				panic("boom")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Recovery(tt.handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
			assert.Equal(t, "%PDF-1.3", rec.Body.String())
		})
	}
}

func TestServer_Serve(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := NewServer(ln.Addr().String(), h)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	assert.NoError(t, <-done)
}
