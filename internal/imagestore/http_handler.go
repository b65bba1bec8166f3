package imagestore

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"bookcatalog/internal/httpx"

	"go.uber.org/zap"
)

const (
	formField = "file"
	// multipartOverhead leaves room for boundaries and part headers.
	multipartOverhead = 64 << 10
	sniffLen          = 512
)

type HTTPHandler struct {
	store    Store
	maxBytes int64
	now      func() time.Time
}

func NewHTTPHandler(store Store, maxBytes int64) *HTTPHandler {
	return &HTTPHandler{store: store, maxBytes: maxBytes, now: time.Now}
}

type uploadResponse struct {
	URL *string `json:"url"`
}

// Upload handles POST /books/upload-image
// @Summary Upload a book cover
// @Description Store an image sent as multipart field "file" and return its URL
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Success 201 {object} httpx.SuccessResponse
// @Failure 400 {object} httpx.ErrorResponse
// @Failure 413 {object} httpx.ErrorResponse
// @Router /books/upload-image [post]
func (h *HTTPHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)

	file, header, err := r.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
			httpx.JSONCreated(w, r, uploadResponse{})
		case errors.As(err, &tooLarge):
			h.writeError(w, r, ErrTooLarge)
		default:
			httpx.JSONError(w, r, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid multipart body", nil)
		}
		return
	}
	defer file.Close()

	url, err := h.save(r, file, header)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	httpx.LoggerFrom(r.Context()).Info("image uploaded", zap.String("url", url), zap.Int64("size", header.Size))
	httpx.JSONCreated(w, r, uploadResponse{URL: &url})
}

func (h *HTTPHandler) save(r *http.Request, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header.Size > h.maxBytes {
		return "", ErrTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	contentType := http.DetectContentType(head[:n])
	if _, ok := allowedTypes[contentType]; !ok {
		return "", ErrUnsupportedType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	name := NewName(h.now(), header.Filename, contentType)
	return h.store.Save(r.Context(), name, contentType, file, header.Size)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, ErrTooLarge) {
		httpx.JSONError(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", ErrTooLarge.Error(), nil)
		return
	}
	httpx.WriteError(w, r, err)
}
