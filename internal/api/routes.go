package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"clipforge/internal/effects"
	"clipforge/internal/media"
	"clipforge/internal/projects"
	"clipforge/internal/render"
)

// NewRouter builds the chi router with middleware and all routes attached.
func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/metrics", metricsHandler(cfg))

	r.Route("/api", func(r chi.Router) {
		r.Get("/effects", listEffectsHandler())
		r.Get("/formats", listFormatsHandler())

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", listProjectsHandler(cfg))
			r.Post("/", createProjectHandler(cfg))
			r.Get("/{id}", getProjectHandler(cfg))
			r.Get("/{id}/timeline", timelineHandler(cfg))
			r.Post("/{id}/render", submitRenderHandler(cfg))
			r.Post("/{id}/clips", addClipHandler(cfg))
			r.Put("/{id}/clips/{clipID}", updateClipHandler(cfg))
			r.Post("/{id}/clips/{clipID}/effects", addEffectHandler(cfg))
			r.Put("/{id}/clips/{clipID}/effects/{effectID}", updateEffectHandler(cfg))
		})

		r.Route("/render", func(r chi.Router) {
			r.Get("/", listJobsHandler(cfg))
			r.Get("/{jobID}", getJobHandler(cfg))
		})
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:  "ok",
			Version: Version,
			UptimeS: int64(time.Since(cfg.StartTime).Seconds()),
		})
	}
}

func metricsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cfg.Registry == nil {
			WriteError(w, http.StatusNotFound, "metrics disabled", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, cfg.Registry.Snapshot())
	}
}

func listEffectsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, effects.List())
	}
}

func listFormatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qualities := make([]QualityDescription, 0, len(media.Qualities))
		for _, quality := range media.Qualities {
			preset := media.PresetFor(quality)
			qualities = append(qualities, QualityDescription{
				Quality: quality,
				Codec:   preset.Codec,
				Bitrate: preset.Bitrate,
			})
		}
		WriteJSON(w, http.StatusOK, FormatsResponse{
			Output:    media.OutputFormats,
			Input:     media.InputFormats,
			Qualities: qualities,
		})
	}
}

func listProjectsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := cfg.Projects.ListProjects(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list projects", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, list)
	}
}

func createProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateProjectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		project, err := cfg.Projects.CreateProject(r.Context(), projects.CreateProjectParams{
			Name:        req.Name,
			Description: req.Description,
			Format:      req.Format,
			Quality:     req.Quality,
			FPS:         req.FPS,
			Width:       req.Width,
			Height:      req.Height,
		})
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusCreated, project)
	}
}

func getProjectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := cfg.Projects.GetProject(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, project)
	}
}

func timelineHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		timeline, err := cfg.Projects.Timeline(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, timeline)
	}
}

func addClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		clip, err := cfg.Projects.AddClip(r.Context(), chi.URLParam(r, "id"), projects.AddClipParams{
			FileName:  req.FileName,
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Duration:  req.Duration,
			Position:  req.Position,
			Track:     req.Track,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, clip)
	}
}

func updateClipHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateClipRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		clip, err := cfg.Projects.UpdateClip(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"), projects.UpdateClipParams{
			StartTime: req.StartTime,
			EndTime:   req.EndTime,
			Position:  req.Position,
			Track:     req.Track,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, clip)
	}
}

func addEffectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddEffectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		effect, err := cfg.Projects.AddEffect(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"), projects.AddEffectParams{
			Type:       req.Type,
			Name:       req.Name,
			Parameters: req.Parameters,
			Enabled:    req.Enabled,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusCreated, effect)
	}
}

func updateEffectHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateEffectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		effect, err := cfg.Projects.UpdateEffect(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "clipID"), chi.URLParam(r, "effectID"), projects.UpdateEffectParams{
			Parameters: req.Parameters,
			Enabled:    req.Enabled,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, effect)
	}
}

func submitRenderHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RenderRequest
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
				return
			}
		}
		job, err := cfg.Queue.CreateJob(r.Context(), chi.URLParam(r, "id"), render.SubmitOptions{
			Format:     req.Format,
			Resolution: req.Resolution,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusAccepted, RenderSubmitResponse{JobID: job.ID, Status: job.Status})
	}
}

func listJobsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobs, err := cfg.Queue.ListJobs(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to list jobs", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, jobs)
	}
}

func getJobHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		job, err := cfg.Queue.GetJob(r.Context(), chi.URLParam(r, "jobID"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		WriteJSON(w, http.StatusOK, job)
	}
}

// writeServiceError maps domain errors onto HTTP statuses. Anything the
// services reject that is not a missing reference is treated as bad input.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, projects.ErrNotFound),
		errors.Is(err, projects.ErrClipNotFound),
		errors.Is(err, projects.ErrEffectNotFound),
		errors.Is(err, render.ErrProjectNotFound),
		errors.Is(err, render.ErrJobNotFound):
		WriteError(w, http.StatusNotFound, err.Error(), "NOT_FOUND")
	default:
		WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
	}
}
