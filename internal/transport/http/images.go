package http

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"

	"github.com/templateshop/storefront/internal/files"
)

// ImageHandler serves and accepts product preview images.
type ImageHandler struct {
	logger hclog.Logger
	store  files.Storage
}

func NewImageHandler(log hclog.Logger, store files.Storage) *ImageHandler {
	return &ImageHandler{logger: log, store: store}
}

// Upload handles POST /images/{id}/{filename} with the raw image as the
// request body.
func (h *ImageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, fn := vars["id"], vars["filename"]
	if id == "" || fn == "" {
		http.Error(w, "Invalid image path, expected /images/[product id]/[filename]", http.StatusBadRequest)
		return
	}

	h.logger.Info("Handle image upload", "id", id, "filename", fn)
	h.saveImage(id, fn, w, r.Body)
}

// UploadMultipart handles POST /images with multipart form data, the shape
// produced by the admin panel's drag and drop upload.
func (h *ImageHandler) UploadMultipart(w http.ResponseWriter, r *http.Request) {
	err := r.ParseMultipartForm(128 * 1024)
	if err != nil {
		h.logger.Error("Unable to parse multipart form", "error", err)
		http.Error(w, "Unable to parse form", http.StatusBadRequest)
		return
	}

	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Missing 'id' in form data", http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.logger.Error("Unable to get file from form data", "error", err)
		http.Error(w, "Unable to get file from form data", http.StatusBadRequest)
		return
	}
	defer file.Close()

	h.logger.Info("Handle multipart image upload", "id", id, "filename", fileHeader.Filename)
	h.saveImage(id, fileHeader.Filename, w, file)
}

// GetImage handles GET /images/{id}/{filename}
func (h *ImageHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, fn := vars["id"], vars["filename"]

	fp := filepath.Join(id, fn)
	file, err := h.store.Get(fp)
	if err != nil {
		h.logger.Error("Unable to get the image", "id", id, "filename", fn, "error", err)
		http.Error(w, "Image not found", http.StatusNotFound)
		return
	}
	defer file.Close()

	contentType, err := sniffContentType(file)
	if err != nil {
		h.logger.Error("Unable to detect content type", "error", err)
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)

	if _, err := io.Copy(w, file); err != nil {
		h.logger.Error("Unable to write image to response", "error", err)
	}
}

func (h *ImageHandler) saveImage(id, fn string, w http.ResponseWriter, contents io.Reader) {
	fp := filepath.Join(id, fn)
	err := h.store.Save(fp, contents)
	if err != nil {
		if errors.Is(err, files.ErrUnsupportedImageType) {
			http.Error(w, err.Error(), http.StatusUnsupportedMediaType)
			return
		}
		h.logger.Error("Unable to save the image", "error", err)
		http.Error(w, "Unable to save the image", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}

// sniffContentType determines the MIME type from the image bytes.
func sniffContentType(file *os.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	return http.DetectContentType(buf[:n]), nil
}
