package clipper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"mealplex/internal/planner"
	"mealplex/internal/storage"
)

type mockTextGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (m *mockTextGenerator) GenerateContent(ctx context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	return m.response, m.err
}

const recipePage = `<html>
<head><title>Best Dal Ever</title><style>body { color: red; }</style></head>
<body>
<nav>Home | Recipes | About</nav>
<script>trackVisitor();</script>
<h1>Best Dal Ever</h1>
<p>Ingredients: red lentils, turmeric, cumin seeds</p>
<p>Boil the lentils. Temper the spices. Combine.</p>
<footer>Copyright</footer>
</body>
</html>`

func newTestClipper(t *testing.T, gen *mockTextGenerator) (*Clipper, *planner.Store) {
	t.Helper()
	plannerStore := planner.NewStore(storage.NewMemoryGateway())
	plannerStore.Init(context.Background())
	return NewClipper(plannerStore, gen), plannerStore
}

func TestClipURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recipePage)
	}))
	defer server.Close()

	gen := &mockTextGenerator{
		response: `{"title": "Best Dal Ever", "ingredients": ["red lentils", "turmeric", "cumin seeds"], "steps": ["Boil the lentils.", "Temper the spices.", "Combine."]}`,
	}
	clipper, plannerStore := newTestClipper(t, gen)

	clipped, err := clipper.ClipURL(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if clipped.Name != "Best Dal Ever" {
		t.Errorf("Expected name 'Best Dal Ever', got %q", clipped.Name)
	}
	if len(clipped.Ingredients) != 3 {
		t.Errorf("Expected 3 ingredients, got %d", len(clipped.Ingredients))
	}
	if !strings.Contains(clipped.Instructions, "Temper the spices.") {
		t.Errorf("Expected instructions to contain step text, got %q", clipped.Instructions)
	}
	if clipped.SourceURL != server.URL {
		t.Errorf("Expected source url %q, got %q", server.URL, clipped.SourceURL)
	}
	if !strings.HasPrefix(clipped.ID, "custom-") {
		t.Errorf("Expected custom id, got %q", clipped.ID)
	}

	custom := plannerStore.CustomDishes()
	if len(custom) != 1 {
		t.Fatalf("Expected 1 custom dish registered, got %d", len(custom))
	}
}

func TestClipURLStripsPageChrome(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recipePage)
	}))
	defer server.Close()

	gen := &mockTextGenerator{
		response: `{"title": "Best Dal Ever", "ingredients": [], "steps": []}`,
	}
	clipper, _ := newTestClipper(t, gen)

	if _, err := clipper.ClipURL(context.Background(), server.URL); err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if strings.Contains(gen.lastPrompt, "trackVisitor") {
		t.Error("Expected script content to be stripped from prompt")
	}
	if strings.Contains(gen.lastPrompt, "color: red") {
		t.Error("Expected style content to be stripped from prompt")
	}
	if !strings.Contains(gen.lastPrompt, "red lentils") {
		t.Error("Expected page text to survive in prompt")
	}
}

func TestClipURLTruncatesLongPageOnRuneBoundary(t *testing.T) {
	// Multi-byte words push the page well past the content cap.
	body := strings.Repeat("あいうえお ", 4000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "<html><body><p>%s</p></body></html>", body)
	}))
	defer server.Close()

	gen := &mockTextGenerator{
		response: `{"title": "Long Page", "ingredients": [], "steps": []}`,
	}
	clipper, _ := newTestClipper(t, gen)

	if _, err := clipper.ClipURL(context.Background(), server.URL); err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}

	if len(gen.lastPrompt) >= len(body) {
		t.Errorf("Expected page text to be truncated, prompt is %d bytes", len(gen.lastPrompt))
	}
	if !utf8.ValidString(gen.lastPrompt) {
		t.Error("Expected prompt to remain valid UTF-8 after truncation")
	}
}

func TestClipURLBadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, recipePage)
	}))
	defer server.Close()

	gen := &mockTextGenerator{response: "sorry, I could not find a recipe"}
	clipper, _ := newTestClipper(t, gen)

	if _, err := clipper.ClipURL(context.Background(), server.URL); err == nil {
		t.Error("Expected error for unparseable extraction")
	}
}

func TestClipURLFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	gen := &mockTextGenerator{response: "{}"}
	clipper, _ := newTestClipper(t, gen)

	if _, err := clipper.ClipURL(context.Background(), server.URL); err == nil {
		t.Error("Expected error for 404 page")
	}
}
