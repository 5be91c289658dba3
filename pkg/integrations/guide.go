package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/pokedex/pkg/data"
)

// GuidePage is one entry of the field guide. Sprite may be empty.
type GuidePage struct {
	Detail *data.Detail
	Sprite ImageData
}

// FieldGuide compiles details into an EPUB book, one section per entry.
type FieldGuide struct {
	outputDir string
}

func NewFieldGuide(outputDir string) *FieldGuide {
	if outputDir == "" {
		outputDir, _ = os.MkdirTemp("", "pokedex-guide-*")
	}
	return &FieldGuide{outputDir: outputDir}
}

func (g *FieldGuide) OutputDir() string {
	return g.outputDir
}

// Build writes title.epub into the output directory and returns its path.
// Pages are ordered by Pokédex number.
func (g *FieldGuide) Build(title string, pages []GuidePage) (string, error) {
	if len(pages) == 0 {
		return "", fmt.Errorf("no pages to compile")
	}
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	sorted := make([]GuidePage, 0, len(pages))
	for _, p := range pages {
		if p.Detail != nil {
			sorted = append(sorted, p)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Detail.Number < sorted[j].Detail.Number
	})

	e, err := epub.NewEpub(title)
	if err != nil {
		return "", fmt.Errorf("failed to create EPub: %w", err)
	}
	e.SetAuthor("Pokédex")
	e.SetDescription(fmt.Sprintf("%d favorite Pokémon", len(sorted)))
	e.SetLang("en")

	spriteDir, err := os.MkdirTemp("", "pokedex-sprites-*")
	if err != nil {
		return "", fmt.Errorf("failed to create sprite directory: %w", err)
	}
	defer os.RemoveAll(spriteDir)

	for _, page := range sorted {
		if err := g.addPage(e, spriteDir, page); err != nil {
			return "", fmt.Errorf("failed to add %s: %w", page.Detail.Name, err)
		}
	}

	outputPath := filepath.Join(g.outputDir, sanitizeFilename(title)+".epub")
	if err := e.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

func (g *FieldGuide) addPage(e *epub.Epub, spriteDir string, page GuidePage) error {
	d := page.Detail
	heading := fmt.Sprintf("#%03d %s", d.Number, d.Name)

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>%s</h1>\n", html.EscapeString(heading)))

	if len(page.Sprite.Content) > 0 {
		path := filepath.Join(spriteDir, fmt.Sprintf("%03d%s", d.Number, imageExt(page.Sprite.ContentType)))
		if err := os.WriteFile(path, page.Sprite.Content, 0644); err != nil {
			return fmt.Errorf("failed to stage sprite: %w", err)
		}
		internal, err := e.AddImage(path, "")
		if err != nil {
			return fmt.Errorf("failed to add sprite: %w", err)
		}
		body.WriteString(fmt.Sprintf(`<div class="sprite"><img src="%s" alt="%s"/></div>`+"\n",
			internal, html.EscapeString(d.Name)))
	}

	if d.Classification != "" {
		body.WriteString(fmt.Sprintf("<p><em>%s</em></p>\n", html.EscapeString(d.Classification)))
	}

	body.WriteString("<table>\n")
	row := func(label, value string) {
		if value == "" {
			return
		}
		body.WriteString(fmt.Sprintf("<tr><th>%s</th><td>%s</td></tr>\n",
			html.EscapeString(label), html.EscapeString(value)))
	}
	row("Types", strings.Join(d.Types, ", "))
	row("Resistant", strings.Join(d.Resistant, ", "))
	row("Weaknesses", strings.Join(d.Weaknesses, ", "))
	row("Height", formatRange(d.Height))
	row("Weight", formatRange(d.Weight))
	if d.MaxCP > 0 {
		row("Max CP", fmt.Sprint(d.MaxCP))
	}
	if d.MaxHP > 0 {
		row("Max HP", fmt.Sprint(d.MaxHP))
	}
	body.WriteString("</table>\n")

	if len(d.Evolutions) > 0 {
		body.WriteString("<h2>Evolutions</h2>\n<ul>\n")
		for _, evo := range d.Evolutions {
			body.WriteString(fmt.Sprintf("<li>#%03d %s</li>\n", evo.Number, html.EscapeString(evo.Name)))
		}
		body.WriteString("</ul>\n")
	}

	if _, err := e.AddSection(body.String(), heading, "", ""); err != nil {
		return fmt.Errorf("failed to add section: %w", err)
	}
	return nil
}

func formatRange(r data.Range) string {
	switch {
	case r.Minimum == "" && r.Maximum == "":
		return ""
	case r.Minimum == r.Maximum || r.Maximum == "":
		return r.Minimum
	case r.Minimum == "":
		return r.Maximum
	default:
		return r.Minimum + " – " + r.Maximum
	}
}

func imageExt(contentType string) string {
	switch strings.ToLower(strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])) {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".jpg"
	}
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "pokedex"
	}
	return result
}
