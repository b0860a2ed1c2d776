package http

import (
	"errors"
	"log/slog"
	"net/http"

	"barberia/internal/core"
	"barberia/internal/store"
)

const (
	servicesCacheKey   = "services"
	categoriesCacheKey = "categories"
)

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	if items, found := s.servicesCache.Get(servicesCacheKey); found {
		slog.DebugContext(r.Context(), "Services cache hit", "count", len(items))
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := s.store.ListServices(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Service list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list services")
		return
	}

	s.servicesCache.Set(servicesCacheKey, items)
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSaveService(w http.ResponseWriter, r *http.Request) {
	var svc core.Service
	if err := decodeBody(r, &svc); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	svc.Name = sanitizeInput(svc.Name)

	if err := svc.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.SaveService(r.Context(), svc)
	if err != nil {
		slog.ErrorContext(r.Context(), "Service save failed", "error", err, "name", svc.Name)
		writeError(w, http.StatusInternalServerError, "could not save service")
		return
	}
	svc.ID = id

	s.servicesCache.Invalidate(servicesCacheKey)
	writeJSON(w, http.StatusCreated, svc)
}

func (s *Server) handleDeleteService(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing service id")
		return
	}

	if err := s.store.DeleteService(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "service not found")
			return
		}
		slog.ErrorContext(r.Context(), "Service delete failed", "error", err, "service_id", id)
		writeError(w, http.StatusInternalServerError, "could not delete service")
		return
	}

	s.servicesCache.Invalidate(servicesCacheKey)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	if items, found := s.categoriesCache.Get(categoriesCacheKey); found {
		slog.DebugContext(r.Context(), "Categories cache hit", "count", len(items))
		writeJSON(w, http.StatusOK, items)
		return
	}

	items, err := s.store.ListCategories(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list categories")
		return
	}

	s.categoriesCache.Set(categoriesCacheKey, items)
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSaveCategory(w http.ResponseWriter, r *http.Request) {
	var cat core.ExpenseCategory
	if err := decodeBody(r, &cat); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	cat.Name = sanitizeInput(cat.Name)

	if err := cat.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	id, err := s.store.SaveCategory(r.Context(), cat)
	if err != nil {
		slog.ErrorContext(r.Context(), "Category save failed", "error", err, "name", cat.Name)
		writeError(w, http.StatusInternalServerError, "could not save category")
		return
	}
	cat.ID = id

	s.categoriesCache.Invalidate(categoriesCacheKey)
	writeJSON(w, http.StatusCreated, cat)
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category id")
		return
	}

	if err := s.store.DeleteCategory(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}
		slog.ErrorContext(r.Context(), "Category delete failed", "error", err, "category_id", id)
		writeError(w, http.StatusInternalServerError, "could not delete category")
		return
	}

	s.categoriesCache.Invalidate(categoriesCacheKey)
	w.WriteHeader(http.StatusNoContent)
}
