package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/dreamnotes/internal/logging"
	"github.com/dmitrijs2005/dreamnotes/internal/server/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
)

// RouterOptions carries the collaborators and settings the router needs.
type RouterOptions struct {
	UserHandler *UserHandler
	NoteHandler *NoteHandler
	Logger      logging.Logger
	JWTSecret   []byte
	// Users backs the auth middleware's live account lookup.
	Users middleware.UserGetter
	// RequestLimitPerMinute caps requests per client IP on note endpoints.
	RequestLimitPerMinute int
}

// NewRouter constructs the HTTP handler serving the DreamNotes API.
//
// Routes:
//
//	GET  /                        → welcome message
//	POST /api/user/users          → UserHandler.Register
//	GET  /api/user/users/{id}     → UserHandler.GetByID
//	POST /api/user/token          → UserHandler.Login
//	POST   /api/notes             → NoteHandler.Create     (auth)
//	GET    /api/notes             → NoteHandler.List       (auth)
//	GET    /api/notes/tag/{tag}   → NoteHandler.ListByTag  (auth)
//	GET    /api/notes/{id}        → NoteHandler.Get        (auth)
//	PUT    /api/notes/{id}        → NoteHandler.Update     (auth)
//	DELETE /api/notes/{id}        → NoteHandler.Delete     (auth)
//
// All note routes sit behind the bearer-token resolver and a per-IP rate
// limit; requests with a JSON body must carry Content-Type: application/json.
func NewRouter(opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(opts.Logger))

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Welcome to the DreamNotesAPI.",
		})
	})

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Route("/user", func(r chi.Router) {
			r.Post("/users", opts.UserHandler.Register)
			r.Get("/users/{id}", opts.UserHandler.GetByID)
			r.Post("/token", opts.UserHandler.Login)
		})

		// Protected group: requires a valid bearer token
		r.Route("/notes", func(r chi.Router) {
			r.Use(httprate.LimitByIP(opts.RequestLimitPerMinute, time.Minute))
			r.Use(middleware.BearerAuth(opts.JWTSecret, opts.Users))

			r.Post("/", opts.NoteHandler.Create)
			r.Get("/", opts.NoteHandler.List)
			r.Get("/tag/{tag}", opts.NoteHandler.ListByTag)
			r.Get("/{id}", opts.NoteHandler.Get)
			r.Put("/{id}", opts.NoteHandler.Update)
			r.Delete("/{id}", opts.NoteHandler.Delete)
		})
	})

	return r
}
