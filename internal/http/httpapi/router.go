package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"fitted/internal/http/handlers"
	"fitted/internal/infra"
	"fitted/internal/middleware"
)

type RouterOptions struct {
	App             *handlers.App
	Logger          infra.Logger
	AllowedOrigins  []string
	RateLimitPerMin int
	PhotosDir       string
	ResultsDir      string
}

func NewRouter(opts RouterOptions) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.Logger(opts.Logger))
	r.Use(middleware.CORS(opts.AllowedOrigins))

	app := opts.App

	r.Get("/health", app.Health)
	r.Get("/user-photos", app.UserPhotos)
	r.Post("/upload-photo", app.UploadPhoto)

	// Generation endpoints are the expensive ones; only they get rate limited.
	r.Group(func(r chi.Router) {
		if opts.RateLimitPerMin > 0 {
			r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		}
		r.Post("/try-on", app.StartTryOn)
		r.Post("/chat", app.Chat)
	})

	fileServer(r, "/photos", opts.PhotosDir)
	fileServer(r, "/results", opts.ResultsDir)

	return r
}

func fileServer(r chi.Router, prefix, dir string) {
	fs := stdhttp.StripPrefix(prefix+"/", stdhttp.FileServer(stdhttp.Dir(dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
