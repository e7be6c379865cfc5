package book

import (
	"errors"
	"net/http"

	"bookstore/internal/httpx"
)

// Renderer renders a named page with a data bag.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// Page names used by the handler.
const (
	pageIndex  = "index"
	pageNew    = "new-book"
	pageUpdate = "update-book"
)

const (
	msgNotFound    = "Can't find book"
	msgServerError = "Server error"
)

// page is the data bag handed to the renderer. Form holds the values shown in
// the book form inputs.
type page struct {
	Title  string
	Books  []Book
	Book   Book
	Form   Fields
	Errors []FieldError
}

type HTTPHandler struct {
	service *Service
	view    Renderer
	errors  httpx.ErrorRenderer
}

func NewHTTPHandler(service *Service, view Renderer, errors httpx.ErrorRenderer) *HTTPHandler {
	return &HTTPHandler{service: service, view: view, errors: errors}
}

// Register mounts the book routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /{$}", h.handle(h.Root))
	mux.Handle("GET /books", h.handle(h.List))
	mux.Handle("GET /books/new", h.handle(h.New))
	mux.Handle("POST /books/new", h.handle(h.Create))
	mux.Handle("GET /books/{id}", h.handle(h.Show))
	mux.Handle("POST /books/{id}", h.handle(h.Update))
	mux.Handle("POST /books/{id}/delete", h.handle(h.Delete))
}

func (h *HTTPHandler) handle(fn httpx.HandlerFunc) http.Handler {
	return httpx.Handle(h.errors, fn)
}

// Root handles GET /
func (h *HTTPHandler) Root(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

// List handles GET /books
func (h *HTTPHandler) List(w http.ResponseWriter, r *http.Request) error {
	books, err := h.service.List(r.Context())
	if err != nil {
		return err
	}
	return h.view.Render(w, http.StatusOK, pageIndex, page{Title: "Books", Books: books})
}

// New handles GET /books/new
func (h *HTTPHandler) New(w http.ResponseWriter, r *http.Request) error {
	return h.view.Render(w, http.StatusOK, pageNew, page{Title: "New Book"})
}

// Create handles POST /books/new
func (h *HTTPHandler) Create(w http.ResponseWriter, r *http.Request) error {
	if err := parseForm(r); err != nil {
		return err
	}
	fields := FieldsFromForm(r.PostForm.Get)

	_, err := h.service.Create(r.Context(), fields)
	switch KindOf(err) {
	case KindValidation:
		return h.view.Render(w, http.StatusOK, pageNew, page{
			Title:  "New Book",
			Book:   Build(fields),
			Form:   fields,
			Errors: FieldErrors(err),
		})
	case KindNotFound, KindServer, KindUnknown:
		if err != nil {
			return err
		}
	}

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// Show handles GET /books/{id}
func (h *HTTPHandler) Show(w http.ResponseWriter, r *http.Request) error {
	b, err := h.find(r, msgNotFound, http.StatusNotFound)
	if err != nil {
		return err
	}
	return h.view.Render(w, http.StatusOK, pageUpdate, page{Title: "Update Book", Book: b, Form: FieldsOf(b)})
}

// Update handles POST /books/{id}
func (h *HTTPHandler) Update(w http.ResponseWriter, r *http.Request) error {
	b, err := h.find(r, msgNotFound, http.StatusNotFound)
	if err != nil {
		return err
	}
	if err := parseForm(r); err != nil {
		return err
	}
	fields := FieldsFromForm(r.PostForm.Get)

	_, err = h.service.Update(r.Context(), b, fields)
	switch KindOf(err) {
	case KindValidation:
		unsaved := Build(fields)
		unsaved.ID = b.ID
		return h.view.Render(w, http.StatusOK, pageUpdate, page{
			Title:  "Update Book",
			Book:   unsaved,
			Form:   fields,
			Errors: FieldErrors(err),
		})
	case KindNotFound:
		return httpx.NewError(http.StatusNotFound, msgNotFound)
	case KindServer:
		return httpx.NewError(http.StatusInternalServerError, msgServerError)
	case KindUnknown:
		if err != nil {
			return err
		}
	}

	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

// Delete handles POST /books/{id}/delete
func (h *HTTPHandler) Delete(w http.ResponseWriter, r *http.Request) error {
	b, err := h.find(r, msgServerError, http.StatusInternalServerError)
	if err != nil {
		return err
	}

	switch err := h.service.Delete(r.Context(), b); KindOf(err) {
	case KindNotFound, KindServer:
		return httpx.NewError(http.StatusInternalServerError, msgServerError)
	case KindValidation, KindUnknown:
		if err != nil {
			return err
		}
	}

	http.Redirect(w, r, "/books", http.StatusFound)
	return nil
}

// parseForm parses the request body. A body cut off by http.MaxBytesReader
// reports 413 like the size limit middleware does.
func parseForm(r *http.Request) error {
	err := r.ParseForm()
	if err == nil {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return httpx.NewError(http.StatusRequestEntityTooLarge, "Request too large")
	}
	return httpx.NewError(http.StatusBadRequest, "Invalid form submission")
}

// find loads the book named by the path. A missing book, or an id that cannot
// name one, becomes a status error with the given status and message.
func (h *HTTPHandler) find(r *http.Request, missing string, status int) (Book, error) {
	id, ok := ParseID(r.PathValue("id"))
	if !ok {
		return Book{}, httpx.NewError(status, missing)
	}

	b, err := h.service.Get(r.Context(), id)
	switch KindOf(err) {
	case KindNotFound:
		return Book{}, httpx.NewError(status, missing)
	case KindServer:
		return Book{}, httpx.NewError(http.StatusInternalServerError, msgServerError)
	case KindValidation, KindUnknown:
		if err != nil {
			return Book{}, err
		}
	}
	return b, nil
}
