package book

import (
	"bytes"
	"net/http"
	"strconv"

	"bookcatalog/internal/httpx"

	"go.uber.org/zap"
)

type HTTPHandler struct {
	service *Service
}

func NewHTTPHandler(service *Service) *HTTPHandler {
	return &HTTPHandler{service: service}
}

type createBookRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Price       *Price  `json:"price" validate:"required"`
	Available   *bool   `json:"available"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2048"`
	AuthorID    *int64  `json:"authorId" validate:"required,gt=0"`
	GenreID     *int64  `json:"genreId" validate:"required,gt=0"`
	PublisherID *int64  `json:"publisherId" validate:"required,gt=0"`
}

type updateBookRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Price       *Price  `json:"price"`
	Available   *bool   `json:"available"`
	ImageURL    *string `json:"imageUrl" validate:"omitempty,max=2048"`
	AuthorID    *int64  `json:"authorId" validate:"omitempty,gt=0"`
	GenreID     *int64  `json:"genreId" validate:"omitempty,gt=0"`
	PublisherID *int64  `json:"publisherId" validate:"omitempty,gt=0"`
}

// parseListParams reads the list/export query string. Unknown keys are
// ignored; malformed recognized keys are reported together.
func parseListParams(r *http.Request) (ListParams, error) {
	q := httpx.NewQueryParser(r.URL.Query())
	p := ListParams{
		Page:        q.MinInt("page", DefaultPage, 1),
		Limit:       q.Int("limit", DefaultLimit),
		SortBy:      q.OneOf("sortBy", SortKeys...),
		SortDir:     q.OneOf("sortDir", string(Asc), string(Desc)),
		AuthorID:    q.OptionalInt64("authorId"),
		PublisherID: q.OptionalInt64("publisherId"),
		GenreID:     q.OptionalInt64("genreId"),
		Available:   q.OptionalBool("available"),
		Search:      q.String("search"),
	}
	return p, q.Err()
}

// List handles GET /books
// @Summary List books
// @Description Filter, sort and paginate the catalog. limit is capped at 50.
// @Tags books
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param sortBy query string false "title, price or createdAt"
// @Param sortDir query string false "ASC or DESC"
// @Param authorId query int false "Author id"
// @Param publisherId query int false "Publisher id"
// @Param genreId query int false "Genre id"
// @Param available query bool false "Availability"
// @Param search query string false "Case-insensitive title substring"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 500 {object} httpx.ErrorResponse
// @Router /books [get]
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := parseListParams(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	page, err := h.service.List(r.Context(), params)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.JSONSuccess(w, r, page.Data, map[string]any{
		"page":        page.Page,
		"limit":       page.Limit,
		"total":       page.Total,
		"total_pages": page.TotalPages(),
	})
}

// Get handles GET /books/{id}
// @Summary Get a book
// @Tags books
// @Produce json
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [get]
func (h *HTTPHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Create handles POST /books
// @Summary Create a book
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 401 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books [post]
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Create(r.Context(), CreateInput{
		Title:       req.Title,
		Price:       *req.Price,
		Available:   req.Available,
		ImageURL:    req.ImageURL,
		AuthorID:    *req.AuthorID,
		GenreID:     *req.GenreID,
		PublisherID: *req.PublisherID,
	})
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	httpx.LoggerFrom(r.Context()).Info("book created", zap.Int64("book_id", b.ID))
	httpx.JSONCreated(w, r, b)
}

// Update handles PUT /books/{id}
// @Summary Update a book
// @Description Only the supplied fields change. An empty imageUrl clears the image.
// @Tags books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Book id"
// @Success 200 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [put]
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req updateBookRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	b, err := h.service.Update(r.Context(), id, UpdateInput(req))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.JSONSuccess(w, r, b, nil)
}

// Delete handles DELETE /books/{id}
// @Summary Soft-delete a book
// @Tags books
// @Security BearerAuth
// @Param id path int true "Book id"
// @Success 204
// @Failure 404 {object} httpx.ErrorResponse
// @Router /books/{id} [delete]
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := httpx.PathID(r, "id")
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.LoggerFrom(r.Context()).Info("book deleted", zap.Int64("book_id", id))
	httpx.NoContent(w)
}

// ExportCSV handles GET /books/export/csv
// @Summary Export books as CSV
// @Description Same filters and sort as the listing, without pagination.
// @Tags books
// @Produce text/csv
// @Security BearerAuth
// @Success 200 {string} string
// @Router /books/export/csv [get]
func (h *HTTPHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	books, ok := h.export(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="books.csv"`)
	w.WriteHeader(http.StatusOK)
	if err := WriteCSV(w, books); err != nil {
		httpx.LoggerFrom(r.Context()).Warn("csv export interrupted", zap.Error(err))
	}
}

// ExportXLSX handles GET /books/export/xlsx
// @Summary Export books as a spreadsheet
// @Tags books
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /books/export/xlsx [get]
func (h *HTTPHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	books, ok := h.export(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, books); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="books.xlsx"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func (h *HTTPHandler) export(w http.ResponseWriter, r *http.Request) ([]Book, bool) {
	params, err := parseListParams(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return nil, false
	}
	books, err := h.service.Export(r.Context(), params)
	if err != nil {
		httpx.WriteError(w, r, err)
		return nil, false
	}
	return books, true
}
