package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"sync"
	texttemplate "text/template"

	"github.com/yuin/goldmark"
)

// defaultLayout wraps rendered markdown when the filesystem carries no
// layout file.
const defaultLayout = `<!DOCTYPE html><html><body>{{.Content}}</body></html>`

// Renderer converts markdown templates with YAML frontmatter into HTML
// emails. Parsed templates are cached; rendering itself is cheap.
type Renderer struct {
	fs         fs.FS
	layoutPath string
	md         goldmark.Markdown

	mu     sync.RWMutex
	cache  map[string]*cachedTemplate
	layout *template.Template
}

type cachedTemplate struct {
	metadata map[string]any
	tmpl     *texttemplate.Template
}

// NewRenderer creates a renderer over the given filesystem. layoutPath
// names the HTML layout file; when empty or missing, a minimal built-in
// layout is used.
func NewRenderer(filesystem fs.FS, layoutPath string) *Renderer {
	return &Renderer{
		fs:         filesystem,
		layoutPath: layoutPath,
		md:         goldmark.New(),
		cache:      make(map[string]*cachedTemplate),
	}
}

// RenderResult carries the rendered HTML, the plain-text alternative,
// and the template's frontmatter metadata.
type RenderResult struct {
	Metadata map[string]any
	HTML     string
	Text     string
}

// Render executes the named markdown template with data, converts it to
// HTML and wraps it in the layout. The plain-text alternative is the
// processed markdown before HTML conversion.
func (r *Renderer) Render(templateName string, data any) (*RenderResult, error) {
	cached, err := r.getTemplate(templateName)
	if err != nil {
		return nil, err
	}

	var markdown bytes.Buffer
	if err := cached.tmpl.Execute(&markdown, data); err != nil {
		return nil, fmt.Errorf("%w: execute %s: %v", ErrRenderFailed, templateName, err)
	}

	var htmlBody bytes.Buffer
	if err := r.md.Convert(markdown.Bytes(), &htmlBody); err != nil {
		return nil, fmt.Errorf("%w: convert %s: %v", ErrRenderFailed, templateName, err)
	}

	layout, err := r.getLayout()
	if err != nil {
		return nil, err
	}

	var finalHTML bytes.Buffer
	err = layout.Execute(&finalHTML, map[string]any{
		"Content":  template.HTML(htmlBody.String()),
		"Metadata": cached.metadata,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: execute layout: %v", ErrRenderFailed, err)
	}

	return &RenderResult{
		Metadata: cached.metadata,
		HTML:     finalHTML.String(),
		Text:     markdown.String(),
	}, nil
}

func (r *Renderer) getTemplate(name string) (*cachedTemplate, error) {
	r.mu.RLock()
	cached, ok := r.cache[name]
	r.mu.RUnlock()
	if ok {
		return cached, nil
	}

	content, err := fs.ReadFile(r.fs, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	parsed, err := ParseTemplate(content)
	if err != nil {
		return nil, err
	}

	tmpl, err := texttemplate.New(name).Parse(parsed.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrRenderFailed, name, err)
	}

	cached = &cachedTemplate{metadata: parsed.Metadata, tmpl: tmpl}
	r.mu.Lock()
	r.cache[name] = cached
	r.mu.Unlock()
	return cached, nil
}

func (r *Renderer) getLayout() (*template.Template, error) {
	r.mu.RLock()
	layout := r.layout
	r.mu.RUnlock()
	if layout != nil {
		return layout, nil
	}

	source := defaultLayout
	if r.layoutPath != "" {
		if content, err := fs.ReadFile(r.fs, r.layoutPath); err == nil {
			source = string(content)
		}
	}

	layout, err := template.New("layout").Parse(source)
	if err != nil {
		return nil, fmt.Errorf("%w: parse layout: %v", ErrRenderFailed, err)
	}

	r.mu.Lock()
	r.layout = layout
	r.mu.Unlock()
	return layout, nil
}
