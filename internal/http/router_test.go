package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bsatnami/Ai-Masterji/internal/genai"
	"github.com/bsatnami/Ai-Masterji/internal/http/handlers"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
	"github.com/bsatnami/Ai-Masterji/internal/poster"
	"github.com/bsatnami/Ai-Masterji/internal/storage"
	"github.com/bsatnami/Ai-Masterji/internal/studio"
)

// fakeGenAI stands in for the Gemini client. Structured calls are told apart
// by schema shape: the style analyzer asks for an object, the suggester for
// an array.
type fakeGenAI struct {
	mu         sync.Mutex
	synthCalls int
}

func (f *fakeGenAI) AnalyzeJSON(ctx context.Context, parts []genai.Part, schema *genai.Schema) ([]byte, error) {
	if schema != nil && schema.Type == "ARRAY" {
		return []byte(`["Neon skyline", "Soft pastel morning", "Bold retro print"]`), nil
	}
	return []byte(`{
		"palette": ["#101820", "#F2AA4C"],
		"lighting": "dramatic rim light",
		"composition": "centered hero shot",
		"textures": ["brushed metal"],
		"vibe": "Epic & Cinematic",
		"keywords": ["bold", "premium"]
	}`), nil
}

func (f *fakeGenAI) Synthesize(ctx context.Context, parts []genai.Part) ([]genai.Part, error) {
	f.mu.Lock()
	f.synthCalls++
	n := f.synthCalls
	f.mu.Unlock()
	return []genai.Part{
		genai.ImagePart("image/png", []byte{0x89, 0x50, 0x4E, 0x47}),
		genai.TextPart(fmt.Sprintf("Cinematic poster, revision %d", n)),
	}, nil
}

func newTestServer(t *testing.T) (*httptest.Server, *fakeGenAI, string) {
	t.Helper()

	client := &fakeGenAI{}
	logger := zerolog.Nop()
	session := studio.NewSession(
		poster.NewAnalyzer(client),
		poster.NewGenerator(client),
		poster.NewEditor(client),
		poster.NewSuggester(client, time.Minute, logger),
		logger,
	)

	exportDir := t.TempDir()
	store, err := storage.NewFileStore(exportDir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	cfg := &infra.Config{
		AllowedOrigins:  []string{"http://localhost:5173"},
		DefaultLocale:   "en",
		RateLimitPerMin: 1000,
	}
	srv := httptest.NewServer(NewRouter(handlers.NewApp(session, store, logger), cfg, logger))
	t.Cleanup(srv.Close)
	return srv, client, exportDir
}

func multipartBody(t *testing.T, field, filename, mime string, data []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", mime)
	part, err := mw.CreatePart(h)
	if err != nil {
		t.Fatalf("CreatePart: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func sendMultipart(t *testing.T, method, url, field, filename, mime string, data []byte) *http.Response {
	t.Helper()
	body, contentType := multipartBody(t, field, filename, mime, data)
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", contentType)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type posterItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Prompt   string `json:"prompt"`
	ImageURL string `json:"image_url"`
}

type libraryResponse struct {
	Items    []posterItem `json:"items"`
	ActiveID string       `json:"active_id"`
}

func fetchLibrary(t *testing.T, baseURL string) libraryResponse {
	t.Helper()
	resp, err := http.Get(baseURL + "/v1/posters")
	if err != nil {
		t.Fatalf("GET /v1/posters: %v", err)
	}
	var lib libraryResponse
	decodeJSON(t, resp, &lib)
	return lib
}

// uploadAssets pushes one product and one style image, then waits for the
// automatic first generation to land in the library.
func uploadAssets(t *testing.T, baseURL string) libraryResponse {
	t.Helper()

	resp := sendMultipart(t, http.MethodPost, baseURL+"/v1/assets/products", "images", "bottle.png", "image/png", []byte("product-bytes"))
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("product upload status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	resp = sendMultipart(t, http.MethodPut, baseURL+"/v1/assets/style", "image", "reference.jpg", "image/jpeg", []byte("style-bytes"))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("style upload status = %d", resp.StatusCode)
	}
	resp.Body.Close()

	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if lib := fetchLibrary(t, baseURL); len(lib.Items) > 0 {
			return lib
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("automatic generation never produced a poster")
	return libraryResponse{}
}

func TestHealth(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/healthz")
	if err != nil {
		t.Fatalf("GET /v1/healthz: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if body["status"] != "ok" {
		t.Fatalf("status body = %q, want ok", body["status"])
	}
}

func TestUploadFlowAutoGenerates(t *testing.T) {
	srv, _, _ := newTestServer(t)

	lib := uploadAssets(t, srv.URL)
	if len(lib.Items) != 1 {
		t.Fatalf("library size = %d, want 1", len(lib.Items))
	}
	if lib.ActiveID != lib.Items[0].ID {
		t.Fatalf("active_id = %q, want %q", lib.ActiveID, lib.Items[0].ID)
	}
	if !strings.HasPrefix(lib.Items[0].Prompt, "Cinematic poster") {
		t.Fatalf("prompt = %q, want master prompt from synthesis", lib.Items[0].Prompt)
	}
}

func TestGenerateWithoutAssets(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/v1/posters/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("POST generate: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestEditAppendsRevision(t *testing.T) {
	srv, _, _ := newTestServer(t)
	lib := uploadAssets(t, srv.URL)
	originalID := lib.Items[0].ID

	payload := strings.NewReader(`{"instruction": "Make the background red"}`)
	resp, err := http.Post(srv.URL+"/v1/posters/"+originalID+"/edit", "application/json", payload)
	if err != nil {
		t.Fatalf("POST edit: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("edit status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	var edited posterItem
	decodeJSON(t, resp, &edited)
	if edited.ID == originalID {
		t.Fatalf("edit reused the source id %q", originalID)
	}

	after := fetchLibrary(t, srv.URL)
	if len(after.Items) != 2 {
		t.Fatalf("library size = %d, want 2", len(after.Items))
	}
	if after.ActiveID != edited.ID {
		t.Fatalf("active_id = %q, want edited %q", after.ActiveID, edited.ID)
	}
}

func TestEditValidation(t *testing.T) {
	srv, _, _ := newTestServer(t)
	lib := uploadAssets(t, srv.URL)

	resp, err := http.Post(srv.URL+"/v1/posters/"+lib.Items[0].ID+"/edit", "application/json", strings.NewReader(`{"instruction": "  "}`))
	if err != nil {
		t.Fatalf("POST edit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("blank instruction status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}

	resp, err = http.Post(srv.URL+"/v1/posters/poster-missing/edit", "application/json", strings.NewReader(`{"instruction": "anything"}`))
	if err != nil {
		t.Fatalf("POST edit: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("unknown id status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestPosterImage(t *testing.T) {
	srv, _, _ := newTestServer(t)
	lib := uploadAssets(t, srv.URL)

	resp, err := http.Get(srv.URL + "/v1/posters/" + lib.Items[0].ID + "/image")
	if err != nil {
		t.Fatalf("GET image: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Fatalf("content type = %q, want image/png", ct)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if !bytes.Equal(data, []byte{0x89, 0x50, 0x4E, 0x47}) {
		t.Fatalf("image bytes = %v", data)
	}
}

func TestExportWritesFile(t *testing.T) {
	srv, _, exportDir := newTestServer(t)
	lib := uploadAssets(t, srv.URL)

	resp, err := http.Post(srv.URL+"/v1/posters/"+lib.Items[0].ID+"/export", "application/json", nil)
	if err != nil {
		t.Fatalf("POST export: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body map[string]string
	decodeJSON(t, resp, &body)
	if !strings.HasSuffix(body["filename"], ".png") {
		t.Fatalf("filename = %q, want .png suffix", body["filename"])
	}
	if strings.ContainsAny(body["filename"], " \t") {
		t.Fatalf("filename %q contains whitespace", body["filename"])
	}
	if _, err := os.Stat(filepath.Join(exportDir, body["filename"])); err != nil {
		t.Fatalf("exported file missing: %v", err)
	}
}

func TestSelectLoadsPrompt(t *testing.T) {
	srv, _, _ := newTestServer(t)
	lib := uploadAssets(t, srv.URL)
	originalID := lib.Items[0].ID

	resp, err := http.Post(srv.URL+"/v1/posters/"+originalID+"/edit", "application/json", strings.NewReader(`{"instruction": "Add a headline"}`))
	if err != nil {
		t.Fatalf("POST edit: %v", err)
	}
	resp.Body.Close()

	resp, err = http.Post(srv.URL+"/v1/posters/"+originalID+"/select", "application/json", nil)
	if err != nil {
		t.Fatalf("POST select: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("select status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	resp.Body.Close()

	resp, err = http.Get(srv.URL + "/v1/settings")
	if err != nil {
		t.Fatalf("GET settings: %v", err)
	}
	var settings struct {
		Settings struct {
			Prompt string `json:"prompt"`
		} `json:"settings"`
	}
	decodeJSON(t, resp, &settings)
	if !strings.HasPrefix(settings.Settings.Prompt, "Cinematic poster, revision 1") {
		t.Fatalf("prompt = %q, want the selected record's prompt", settings.Settings.Prompt)
	}
}

func TestUpdateSettings(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodPut, srv.URL+"/v1/settings", strings.NewReader(`{"aspect_ratio": "16:9", "lighting_style": "studio", "camera_perspective": "Close Up"}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT settings: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	var body struct {
		Settings struct {
			LightingStyle string `json:"lighting_style"`
		} `json:"settings"`
	}
	decodeJSON(t, resp, &body)
	if body.Settings.LightingStyle != "Studio" {
		t.Fatalf("lighting style = %q, want canonical Studio", body.Settings.LightingStyle)
	}

	req, err = http.NewRequest(http.MethodPut, srv.URL+"/v1/settings", strings.NewReader(`{"aspect_ratio": "2:1", "lighting_style": "Studio", "camera_perspective": "Close Up"}`))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT settings: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("invalid ratio status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}
}

func TestRejectNonImageUpload(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp := sendMultipart(t, http.MethodPost, srv.URL+"/v1/assets/products", "images", "notes.txt", "text/plain", []byte("hello"))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestSuggestionsEndpoint(t *testing.T) {
	srv, _, _ := newTestServer(t)
	uploadAssets(t, srv.URL)

	resp, err := http.Get(srv.URL + "/v1/suggestions")
	if err != nil {
		t.Fatalf("GET suggestions: %v", err)
	}
	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	decodeJSON(t, resp, &body)
	if len(body.Suggestions) != 3 {
		t.Fatalf("suggestions = %v, want three", body.Suggestions)
	}
}

func TestUITextLocale(t *testing.T) {
	srv, _, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/v1/ui-text", nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("X-Locale", "id")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET ui-text: %v", err)
	}
	var body struct {
		Locale string `json:"locale"`
	}
	decodeJSON(t, resp, &body)
	if body.Locale != "id" {
		t.Fatalf("locale = %q, want id", body.Locale)
	}
}
