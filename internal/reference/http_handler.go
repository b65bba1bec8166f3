package reference

import (
	"net/http"

	"bookcatalog/internal/httpx"
)

// HTTPHandler serves the CRUD routes of one reference kind.
type HTTPHandler struct {
	svc  *Service
	kind Kind
}

func NewHTTPHandler(svc *Service, kind Kind) *HTTPHandler {
	return &HTTPHandler{svc: svc, kind: kind}
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// List handles GET /{kind}s
// @Summary List reference entities
// @Tags reference
// @Produce json
// @Success 200 {object} httpx.SuccessResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /authors [get]
// @Router /genres [get]
// @Router /publishers [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	entities, err := h.svc.List(r.Context(), h.kind)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if entities == nil {
		entities = []Entity{}
	}
	httpx.JSONSuccess(w, r, entities, map[string]any{"total": len(entities)})
}

// Get handles GET /{kind}s/{id}
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	e, err := h.svc.Get(r.Context(), h.kind, id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Create handles POST /{kind}s
// @Summary Create a reference entity
// @Tags reference
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 409 {object} httpx.ErrorResponse
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	e, err := h.svc.Create(r.Context(), h.kind, req.Name)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONCreated(w, r, e)
}

// Update handles PUT /{kind}s/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req nameRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	e, err := h.svc.Update(r.Context(), h.kind, id, req.Name)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, e, nil)
}

// Delete handles DELETE /{kind}s/{id}
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.svc.Delete(r.Context(), h.kind, id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.NoContent(w)
}
