package api

import (
	"net/http"

	"github.com/NeroQue/course-generator-backend/internal/api/handlers"
	"github.com/NeroQue/course-generator-backend/internal/services"
	"github.com/NeroQue/course-generator-backend/pkg/session"
)

// Options is everything the server needs wired in
type Options struct {
	Sessions *session.Store
	Auth     *services.AuthService
	Courses  *services.CourseService
	Chapters *services.ChapterService

	MaxChapters    int
	AllowedOrigins []string

	AuthFailClosed    bool
	AuthEnforceExpiry bool
}

// Server holds all the app components together
type Server struct {
	Router  *http.ServeMux // handles routing requests
	handler http.Handler   // router plus middleware

	Gate *AuthGate

	// handlers for different parts of the API
	AuthHandler    *handlers.AuthHandler
	CourseHandler  *handlers.CourseHandler
	ChapterHandler *handlers.ChapterHandler
}

// NewServer wires up all the dependencies and returns a ready-to-use server
func NewServer(opts Options) *Server {
	server := &Server{
		Router:         http.NewServeMux(),
		Gate:           NewAuthGate(opts.Sessions, opts.AuthFailClosed, opts.AuthEnforceExpiry),
		AuthHandler:    handlers.NewAuthHandler(opts.Auth),
		CourseHandler:  handlers.NewCourseHandler(opts.Courses, opts.MaxChapters),
		ChapterHandler: handlers.NewChapterHandler(opts.Chapters),
	}

	server.setupRoutes()

	// outermost first: cors, logging, recovery
	server.handler = CORS(opts.AllowedOrigins)(RequestLogger(Recover(server.Router)))
	return server
}

// setupRoutes maps all the endpoints to handler functions
func (s *Server) setupRoutes() {
	s.Router.HandleFunc("GET /health", s.HealthHandler)

	// sign-in and sessions
	s.Router.HandleFunc("GET /auth/google", s.AuthHandler.GoogleURL)
	s.Router.HandleFunc("POST /auth/google/callback", s.AuthHandler.GoogleCallback)
	s.Router.HandleFunc("POST /auth/verify", s.AuthHandler.Verify)
	s.Router.HandleFunc("POST /auth/logout", s.AuthHandler.Logout)
	s.Router.HandleFunc("GET /user/profile", s.AuthHandler.Profile)

	// generation - only courses sit behind the gate
	s.Router.Handle("POST /courses/generate", s.Gate.Wrap(http.HandlerFunc(s.CourseHandler.Generate)))
	s.Router.HandleFunc("POST /chapters/details", s.ChapterHandler.Details)
}

// ServeHTTP implements the http.Handler interface
// This allows the server to be used directly with http.ListenAndServe
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// HealthHandler is a simple liveness check
// This is kept at the server level as it doesn't require business logic
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	type responseData struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}

	handlers.SendJSON(w, http.StatusOK, responseData{
		Status:  "OK",
		Message: "Course generator backend is running",
	})
}
