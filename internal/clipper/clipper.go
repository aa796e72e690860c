// Package clipper imports recipes from web pages: fetch, strip the page down
// to text, have the LLM structure it, and register the result as a custom
// dish.
package clipper

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"mealplex/internal/dish"
	"mealplex/internal/llm"
	"mealplex/internal/planner"
)

// maxContentLength caps the text sent to the LLM.
const maxContentLength = 15000

// Clipper handles fetching and extracting recipes from URLs.
type Clipper struct {
	planner    *planner.Store
	textGen    llm.TextGenerator
	httpClient *http.Client
}

// ExtractedRecipe represents the data structured by the AI.
type ExtractedRecipe struct {
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
}

// NewClipper creates a new Clipper instance.
func NewClipper(plannerStore *planner.Store, textGen llm.TextGenerator) *Clipper {
	return &Clipper{
		planner: plannerStore,
		textGen: textGen,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// ClipURL fetches the URL, extracts the recipe using the LLM, and registers
// it as a custom dish.
func (c *Clipper) ClipURL(ctx context.Context, url string) (dish.Dish, error) {
	content, err := c.fetchAndCleanHTML(ctx, url)
	if err != nil {
		return dish.Dish{}, fmt.Errorf("failed to fetch content: %w", err)
	}

	prompt := fmt.Sprintf(`
You are a recipe extraction expert. Extract the recipe details from the following page text.
Return the result strictly as a JSON object with this structure:
{
  "title": "Recipe Title",
  "ingredients": ["item 1", "item 2", ...],
  "steps": ["Step 1 description", "Step 2 description", ...]
}

Page Content:
%s
`, content)

	llmResponse, err := c.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return dish.Dish{}, fmt.Errorf("ai extraction failed: %w", err)
	}

	var extracted ExtractedRecipe
	if err := json.Unmarshal([]byte(llmResponse), &extracted); err != nil {
		return dish.Dish{}, fmt.Errorf("failed to parse extracted recipe: %w. Response: %s", err, llmResponse)
	}
	if extracted.Title == "" {
		return dish.Dish{}, fmt.Errorf("no recipe title found at %s", url)
	}

	imported := c.planner.ImportDish(dish.Dish{
		Name:         extracted.Title,
		Ingredients:  extracted.Ingredients,
		Instructions: strings.Join(extracted.Steps, "\n"),
		SourceURL:    url,
	})
	return imported, nil
}

// fetchAndCleanHTML downloads the page and reduces it to plain text.
func (c *Clipper) fetchAndCleanHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch error: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to parse page: %w", err)
	}

	doc.Find("script, style, nav, footer, header, iframe").Remove()

	text := doc.Find("body").Text()
	// Collapse runs of whitespace left behind by removed markup.
	fields := strings.Fields(text)
	text = strings.Join(fields, " ")

	if len(text) > maxContentLength {
		cut := maxContentLength
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	return text, nil
}
