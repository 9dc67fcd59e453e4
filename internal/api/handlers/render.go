package handlers

import (
	"fmt"
	"html/template"
	"net/http"

	"github.com/ndelvaux/flickd/internal/models"
	"github.com/ndelvaux/flickd/internal/utils"
	"github.com/ndelvaux/flickd/web"
	"github.com/sirupsen/logrus"
)

var pageNames = []string{"home", "search", "movie", "watchlist", "reviews", "signin"}

// PageData is the envelope every page template receives
type PageData struct {
	Title string
	User  *models.User
	Toast string
	Data  interface{}
}

// Renderer renders the embedded page templates
type Renderer struct {
	pages  map[string]*template.Template
	logger *logrus.Logger
}

// NewRenderer parses all embedded page templates
func NewRenderer(logger *logrus.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"imageURL": utils.ImageURL,
		"deref":    func(f *float64) float64 { return *f },
		"halves": func() []float64 {
			var out []float64
			for v := models.RatingMin; v <= models.RatingMax; v += models.RatingStep {
				out = append(out, v)
			}
			return out
		},
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(
			web.Templates, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes a page. Template failures degrade to a 500.
func (re *Renderer) Render(w http.ResponseWriter, name string, data PageData) {
	t, ok := re.pages[name]
	if !ok {
		re.logger.WithField("page", name).Error("Unknown page template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, "layout.html", data); err != nil {
		re.logger.WithError(err).WithField("page", name).Error("Failed to render page")
	}
}
