package lessondeck

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// layoutFixtures holds valid content for every layout.
var layoutFixtures = map[string]string{
	"hero-title":              `{"title": "Au marché", "subtitle": "Leçon 3", "imageUrl": "img/market.jpg", "imageAlt": "Stalls"}`,
	"framed-list":             `{"title": "Objectifs", "listItems": ["Saluer", "Demander un prix", "Remercier"]}`,
	"two-column-detail":       `{"title": "Comparer", "leftHtml": "<p>Avant</p>", "rightHtml": "<p>Après</p>"}`,
	"full-text":               `{"title": "Lire", "bodyMarkdown": "Un **texte** avec ==mots clés==."}`,
	"discussion-table":        `{"title": "Discuter", "prompts": ["Pourquoi ?", "Comment ?"]}`,
	"analysis-table":          `{"title": "Analyser", "headers": ["Mot", "Sens"], "rows": [["pomme", "apple"]]}`,
	"image-prompt":            `{"title": "Regarder", "promptHtml": "<p>Décrivez</p>"}`,
	"checklist":               `{"title": "Vérifier", "items": ["J'ai salué"]}`,
	"task-preparation":        `{"title": "Préparer", "taskHtml": "<p>Planifiez</p>", "timeMinutes": 10}`,
	"worksheet":               `{"title": "Pratiquer", "sections": [{"heading": "Partie 1", "lines": 2}]}`,
	"matching-task":           `{"title": "Associer", "pairs": [{"left": "chat", "right": "cat"}, {"left": "chien", "right": "dog"}]}`,
	"gap-fill":                `{"title": "Compléter", "text": "Je [[suis]] au [[marché]].", "showWordBank": true}`,
	"storyboard":              `{"title": "Raconter", "frameCount": 3}`,
	"audio-comprehension":     `{"title": "Écouter", "audioSrc": "audio/track1.mp3", "questions": ["Qui parle ?"]}`,
	"reporting-prompt":        `{"title": "Rapporter", "promptHtml": "<p>Racontez</p>", "sentenceStarters": ["J'ai vu"]}`,
	"feedback-columns":        `{"title": "Retour", "columns": [{"heading": "Bien", "items": ["clair"]}]}`,
	"three-column-reflection": `{"title": "Réfléchir", "columns": [{"heading": "Avant"}, {"heading": "Pendant"}, {"heading": "Après"}]}`,
	"image-matching":          `{"title": "Images", "items": [{"label": "pomme", "imageUrl": "https://img.example/apple.jpg"}]}`,
	"centered-text":           `{"text": "Pause"}`,
}

// slide builds one slide object.
func slide(layout, content string) string {
	return `{"layout": "` + layout + `", "content": ` + content + `}`
}

// deckJSON wraps slides in a valid deck envelope.
func deckJSON(slides ...string) []byte {
	return []byte(`{
  "id": "deck-001",
  "slug": "au-marche",
  "title": "Au marché",
  "language": "fr",
  "version": "1.0.0",
  "level": "A2",
  "slides": [` + strings.Join(slides, ",") + `]
}`)
}

// deckWith decodes deckJSON(slides...) into a map, applies edit and
// re-encodes it.
func deckWith(t *testing.T, edit func(map[string]any), slides ...string) []byte {
	t.Helper()

	var doc map[string]any
	if err := json.Unmarshal(deckJSON(slides...), &doc); err != nil {
		t.Fatalf("fixture: %v", err)
	}
	edit(doc)
	out, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("fixture: %v", err)
	}
	return out
}

// fullDeck has one slide per layout, in layout order.
func fullDeck() []byte {
	var slides []string
	for _, l := range Layouts() {
		slides = append(slides, slide(l.ID, layoutFixtures[l.ID]))
	}
	return deckJSON(slides...)
}

// fakeFinder is an ImageFinder backed by a map of normalized queries.
type fakeFinder struct {
	mu      sync.Mutex
	results map[string]*ImageCandidate
	calls   []string
	opts    []ImageOptions
}

func (f *fakeFinder) FetchImage(_ context.Context, query string, opts ImageOptions) *ImageCandidate {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, query)
	f.opts = append(f.opts, opts)
	return f.results[query]
}

func (f *fakeFinder) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func newTestRenderer(t *testing.T, opts ...Option) *Renderer {
	t.Helper()

	r, err := NewRenderer(opts...)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	return r
}

func mustRender(t *testing.T, r *Renderer, input Input) *Result {
	t.Helper()

	res, err := r.Render(context.Background(), input)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return res
}

func assertContains(t *testing.T, got string, wants ...string) {
	t.Helper()
	for _, want := range wants {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func assertExcludes(t *testing.T, got string, excludes ...string) {
	t.Helper()
	for _, exclude := range excludes {
		if strings.Contains(got, exclude) {
			t.Errorf("output should not contain %q", exclude)
		}
	}
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
