package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"arcade/internal/api/handlers"
	"arcade/internal/api/httpx"
	"arcade/internal/api/validate"
	"arcade/internal/config"
	"arcade/internal/metrics"
	"arcade/internal/middleware"
	repo "arcade/internal/repository"
	"arcade/internal/services"
)

type RouterDeps struct {
	Cfg       config.Config
	PostSvc   *services.PostService
	PlayerSvc *services.PlayerService
	Auth      *handlers.AuthHandler
	AuthMW    *middleware.AuthMiddleware
}

func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/login", d.Auth.Login)
		r.Post("/auth/refresh", d.Auth.Refresh)

		// ---------- posts ----------
		r.Get("/posts/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			p, err := d.PostSvc.Get(r.Context(), id)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})

		r.Post("/posts/{id}/view", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			views, err := d.PostSvc.View(r.Context(), id)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]int64{"current_views": views})
		})

		// ---------- players ----------
		r.Get("/players/{id}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			p, err := d.PlayerSvc.Get(r.Context(), id)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, p)
		})

		r.Post("/players/{id}/upgrade", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			p, err := d.PlayerSvc.Upgrade(r.Context(), id)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, map[string]any{
				"player_id": p.ID,
				"money":     p.Money,
				"level":     p.Level,
			})
		})

		r.Get("/players/{id}/upgrades", func(w http.ResponseWriter, r *http.Request) {
			id, ok := pathID(w, r)
			if !ok {
				return
			}
			limit, offset := pagination(r)
			recs, err := d.PlayerSvc.History(r.Context(), id, limit, offset)
			if err != nil {
				writeDomainErr(w, err)
				return
			}
			httpx.WriteJSON(w, http.StatusOK, recs)
		})

		// ---------- admin ----------
		r.Route("/admin", func(r chi.Router) {
			r.Use(d.AuthMW.Auth, middleware.RequireRole("admin"))

			r.Post("/posts", func(w http.ResponseWriter, r *http.Request) {
				var req struct{ Title, Content string }
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
					return
				}
				var errs validate.Errs
				if ef := validate.Required("title", req.Title); ef != nil {
					errs = append(errs, *ef)
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
					return
				}
				p, err := d.PostSvc.Create(r.Context(), req.Title, req.Content)
				if err != nil {
					writeDomainErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, p)
			})

			r.Post("/players", func(w http.ResponseWriter, r *http.Request) {
				var req struct {
					Name  string `json:"name"`
					Money int64  `json:"money"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
					return
				}
				var errs validate.Errs
				if ef := validate.Required("name", req.Name); ef != nil {
					errs = append(errs, *ef)
				}
				if ef := validate.MinInt("money", req.Money, 0); ef != nil {
					errs = append(errs, *ef)
				}
				if len(errs) > 0 {
					httpx.WriteError(w, http.StatusBadRequest, "validation", errs.Error(), errs)
					return
				}
				p, err := d.PlayerSvc.Create(r.Context(), req.Name, req.Money)
				if err != nil {
					writeDomainErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusCreated, p)
			})

			r.Post("/players/{id}/grant", func(w http.ResponseWriter, r *http.Request) {
				id, ok := pathID(w, r)
				if !ok {
					return
				}
				var req struct {
					Amount int64 `json:"amount"`
				}
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid body", nil)
					return
				}
				if ef := validate.MinInt("amount", req.Amount, 1); ef != nil {
					httpx.WriteError(w, http.StatusBadRequest, "validation", ef.Msg, nil)
					return
				}
				p, err := d.PlayerSvc.Grant(r.Context(), id, req.Amount)
				if err != nil {
					writeDomainErr(w, err)
					return
				}
				httpx.WriteJSON(w, http.StatusOK, p)
			})
		})
	})

	return r
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		httpx.WriteError(w, http.StatusBadRequest, "bad_request", "invalid id", nil)
		return 0, false
	}
	return id, true
}

func pagination(r *http.Request) (limit, offset int) {
	limit, offset = 50, 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repo.ErrNotFound):
		httpx.WriteError(w, http.StatusNotFound, "not_found", "not found", nil)
	case errors.Is(err, repo.ErrInsufficientFunds):
		httpx.WriteError(w, http.StatusConflict, "insufficient_funds", "not enough money", nil)
	default:
		httpx.WriteError(w, http.StatusInternalServerError, "internal_error", err.Error(), nil)
	}
}
