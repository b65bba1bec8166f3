package main

import (
	"context"
	"net/http"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/imagestore"
	"bookcatalog/internal/reference"
	"bookcatalog/internal/user"

	"go.uber.org/zap"
)

const uploadsPrefix = "/uploads/books/"

type handlers struct {
	books      *book.HTTPHandler
	references map[reference.Kind]*reference.HTTPHandler
	auth       *auth.HTTPHandler
	users      *user.HTTPHandler
	uploads    *imagestore.HTTPHandler
	// uploadDir is served statically when non-empty.
	uploadDir string
	ready     func(ctx context.Context) error
}

func newHandlers(cfg *config.Config, st *storage, images imagestore.Store, uploadDir string) handlers {
	refSvc := reference.NewService(st.references)
	userSvc := user.NewService(st.users)

	refs := make(map[reference.Kind]*reference.HTTPHandler, len(reference.Kinds))
	for _, kind := range reference.Kinds {
		refs[kind] = reference.NewHTTPHandler(refSvc, kind)
	}

	return handlers{
		books:      book.NewHTTPHandler(book.NewService(st.books, refSvc)),
		references: refs,
		auth:       auth.NewHTTPHandler(auth.NewService(cfg.JWTSecret, cfg.JWTTTL, userSvc)),
		users:      user.NewHTTPHandler(userSvc),
		uploads:    imagestore.NewHTTPHandler(images, cfg.Upload.MaxBytes),
		uploadDir:  uploadDir,
		ready:      st.ready,
	}
}

var referencePaths = map[reference.Kind]string{
	reference.KindAuthor:    "/authors",
	reference.KindGenre:     "/genres",
	reference.KindPublisher: "/publishers",
}

func newRouter(ctx context.Context, cfg *config.Config, logger *zap.Logger, h handlers) http.Handler {
	requireAuth := httpx.AuthMiddleware(cfg.JWTSecret)
	protect := func(fn http.HandlerFunc) http.Handler { return requireAuth(fn) }
	authLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	api := http.NewServeMux()

	api.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	api.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		readyCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := h.ready(readyCtx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	api.Handle("POST /auth/register", authLimiter.Middleware(http.HandlerFunc(h.auth.Register)))
	api.Handle("POST /auth/login", authLimiter.Middleware(http.HandlerFunc(h.auth.Login)))
	api.Handle("GET /users/me", protect(h.users.GetCurrentUser))

	api.HandleFunc("GET /books", h.books.List)
	api.HandleFunc("GET /books/{id}", h.books.Get)
	api.Handle("POST /books", protect(h.books.Create))
	api.Handle("PUT /books/{id}", protect(h.books.Update))
	api.Handle("DELETE /books/{id}", protect(h.books.Delete))
	api.Handle("GET /books/export/csv", protect(h.books.ExportCSV))
	api.Handle("GET /books/export/xlsx", protect(h.books.ExportXLSX))

	for _, kind := range reference.Kinds {
		rh, base := h.references[kind], referencePaths[kind]
		api.HandleFunc("GET "+base, rh.List)
		api.HandleFunc("GET "+base+"/{id}", rh.Get)
		api.Handle("POST "+base, protect(rh.Create))
		api.Handle("PUT "+base+"/{id}", protect(rh.Update))
		api.Handle("DELETE "+base+"/{id}", protect(rh.Delete))
	}

	// Uploads carry their own, larger body limit.
	root := http.NewServeMux()
	root.Handle("POST /books/upload-image", protect(h.uploads.Upload))
	if h.uploadDir != "" {
		root.Handle("GET "+uploadsPrefix, http.StripPrefix(uploadsPrefix, http.FileServer(http.Dir(h.uploadDir))))
	}
	root.Handle("/", httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(api))

	return httpx.Chain(root,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware,
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORSOrigins),
	)
}
