package site

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"vipdining/config"
	"vipdining/docs"
	"vipdining/infras/otel"
	"vipdining/shared/constant"
	"vipdining/shared/logger"
	"vipdining/shared/timezone"
	"vipdining/transport/http/response"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

const (
	indexFile = "index.html"
)

var (
	testPage = template.Must(template.New("test").Parse(`<h1>{{.Name}} test page</h1>
<p>Server is running.</p>
<p>Time: {{.Time}}</p>
<p><a href="/">Back to the landing page</a></p>
<p><a href="/api/health">API health check</a></p>
`))

	missingIndexPage = template.Must(template.New("missing").Parse(`<h1>Failed to load page</h1>
<p>index.html could not be found</p>
<p>File path: {{.Path}}</p>
<p>Error: {{.Error}}</p>
`))
)

// APIIndex describes the public endpoints at GET /api.
type APIIndex struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
	Timestamp string            `json:"timestamp"`
}

// Handler serves the landing page, the API index, the Swagger UI and any other
// file under the public directory.
type Handler struct {
	cfg    *config.Config
	public http.FileSystem
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Handler {
	docs.SwaggerInfo.Title = cfg.App.Name
	docs.SwaggerInfo.Version = cfg.App.Version

	return Handler{
		cfg:    cfg,
		public: http.Dir(cfg.App.PublicDir),
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/", handler.Index)
	router.Get("/test", handler.TestPage)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
}

func (handler *Handler) APIRouter(router chi.Router) {
	router.Get("/", handler.APIIndex)
}

func (handler *Handler) Index(w http.ResponseWriter, r *http.Request) {
	indexPath := filepath.Join(handler.cfg.App.PublicDir, indexFile)

	page, err := os.ReadFile(indexPath)
	if err != nil {
		logger.FromContext(r.Context()).Error().Err(err).Str("path", indexPath).Msg("landing page missing")

		handler.render(w, http.StatusInternalServerError, missingIndexPage, map[string]string{
			"Path":  indexPath,
			"Error": err.Error(),
		})

		return
	}

	response.WithHTML(w, http.StatusOK, page)
}

func (handler *Handler) TestPage(w http.ResponseWriter, _ *http.Request) {
	handler.render(w, http.StatusOK, testPage, map[string]string{
		"Name": handler.cfg.App.Name,
		"Time": timezone.Now().Format(constant.DateFormat),
	})
}

// APIIndex lists the available endpoints.
// @Summary API index
// @Tags Site
// @Produce json
// @Success 200 {object} site.APIIndex
// @Router /api [get]
func (handler *Handler) APIIndex(w http.ResponseWriter, _ *http.Request) {
	response.WithJSON(w, http.StatusOK, APIIndex{
		Name:    handler.cfg.App.Name,
		Version: handler.cfg.App.Version,
		Endpoints: map[string]string{
			"GET /":                   "landing page",
			"GET /test":               "test page",
			"GET /api/health":         "service health check",
			"GET /api/vip-dining":     "list all reservations",
			"POST /api/vip-dining":    "create a reservation",
			"GET /api/vip-dining/:id": "get one reservation",
			"GET /swagger/index.html": "API documentation",
		},
		Timestamp: timezone.Now().Format(constant.DateFormat),
	})
}

// NotFound serves a matching file from the public directory, or the JSON 404 body.
func (handler *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet || r.Method == http.MethodHead {
		if handler.serveFile(w, r) {
			return
		}
	}

	logger.FromContext(r.Context()).Debug().Str("path", r.URL.Path).Msg("route not found")
	response.WithNotFound(w, r.URL.Path)
}

func (handler *Handler) serveFile(w http.ResponseWriter, r *http.Request) bool {
	file, err := handler.public.Open(path.Clean("/" + r.URL.Path))
	if err != nil {
		return false
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil || stat.IsDir() {
		return false
	}

	http.ServeContent(w, r, stat.Name(), stat.ModTime(), file)

	return true
}

func (handler *Handler) render(w http.ResponseWriter, code int, tmpl *template.Template, data any) {
	var buf bytes.Buffer

	if err := tmpl.Execute(&buf, data); err != nil {
		logger.ErrorWithStack(fmt.Errorf("rendering %s: %w", tmpl.Name(), err))
		response.WithHTML(w, http.StatusInternalServerError, []byte(constant.ResponseErrorInternal))

		return
	}

	response.WithHTML(w, code, buf.Bytes())
}
