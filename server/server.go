package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/clubapi"
	"github.com/Ming119/CSIE5210-Web-Team24-Final/server/database"
)

var (
	//go:embed static
	static embed.FS

	//go:embed templates/*.gohtml
	templates embed.FS
)

func New(cfg Config) (*Server, error) {
	var staticFS http.FileSystem
	var t func() *template.Template
	if cfg.Dev {
		root, err := os.OpenRoot("server/")
		if err != nil {
			return nil, fmt.Errorf("failed to open static directory: %w", err)
		}
		staticFS = http.FS(root.FS())
		t = func() *template.Template {
			return template.Must(template.New("templates").
				Funcs(templateFuncs).
				ParseFS(root.FS(), "templates/*.gohtml"))
		}
	} else {
		staticFS = http.FS(static)

		st := template.Must(template.New("templates").
			Funcs(templateFuncs).
			ParseFS(templates, "templates/*.gohtml"),
		)

		t = func() *template.Template {
			return st
		}
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	s := &Server{
		Cfg: cfg,
		server: &http.Server{
			Addr: cfg.Server.Addr,
		},
		HTTPClient: httpClient,
		Client:     clubapi.New(cfg.API, httpClient),
		DB:         db,
		StaticFS:   staticFS,
		Templates:  t,
	}

	if cfg.Dev {
		s.ReloadNotifier = NewReloadNotifier()
		s.devWatcherCancel = startDevWatcher("server/", s.ReloadNotifier)
	}

	return s, nil
}

type Server struct {
	Cfg              Config
	server           *http.Server
	HTTPClient       *http.Client
	Client           *clubapi.Client
	DB               *database.Database
	StaticFS         http.FileSystem
	Templates        func() *template.Template
	ReloadNotifier   *ReloadNotifier
	devWatcherCancel context.CancelFunc
}

func (s *Server) Start(handler http.Handler) {
	s.server.Handler = handler
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", slog.Any("err", err))
	}
}

func (s *Server) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.devWatcherCancel != nil {
		s.devWatcherCancel()
	}
	if s.ReloadNotifier != nil {
		s.ReloadNotifier.Close()
	}

	if err := s.server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("err", err))
	}
	if err := s.DB.Close(); err != nil {
		slog.Error("Database close failed", slog.Any("err", err))
	}
}
