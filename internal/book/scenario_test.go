package book

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"testing"

	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is an in-memory Repository used to exercise whole request flows.
type memRepo struct {
	mu     sync.Mutex
	nextID int64
	books  map[int64]Book
}

func newMemRepo() *memRepo {
	return &memRepo{books: make(map[int64]Book)}
}

func (m *memRepo) List(ctx context.Context) ([]Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Book, 0, len(m.books))
	for _, b := range m.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memRepo) FindByID(ctx context.Context, id int64) (Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (m *memRepo) Create(ctx context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	b.ID = m.nextID
	m.books[b.ID] = *b
	return nil
}

func (m *memRepo) Update(ctx context.Context, b *Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[b.ID]; !ok {
		return ErrNotFound
	}
	m.books[b.ID] = *b
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return fmt.Errorf("delete book %d: %w", id, ErrServer)
	}
	delete(m.books, id)
	return nil
}

func TestBookLifecycle(t *testing.T) {
	repo := newMemRepo()
	mux := newTestMux(t, repo)

	w := testutil.Serve(mux, testutil.PostForm("/books/new", url.Values{"title": {"Dune"}, "author": {"Herbert"}}))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	books, _ := repo.List(context.Background())
	require.Len(t, books, 1)
	dune := books[0]
	assert.Equal(t, "Dune", dune.Title)
	assert.Equal(t, "Herbert", dune.Author)
	path := fmt.Sprintf("/books/%d", dune.ID)

	w = testutil.Get(mux, "/books")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">Dune</a>")

	w = testutil.Get(mux, path)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `value="Herbert"`)

	w = testutil.Serve(mux, testutil.PostForm(path, url.Values{"title": {""}, "author": {"Herbert"}}))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `data-field="title"`)
	stored, err := repo.FindByID(context.Background(), dune.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", stored.Title)

	w = testutil.Serve(mux, testutil.PostForm(path+"/delete", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/books", w.Header().Get("Location"))

	w = testutil.Get(mux, path)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Can&#39;t find book")

	w = testutil.Serve(mux, testutil.PostForm(path+"/delete", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreate_AssignsFreshIDs(t *testing.T) {
	repo := newMemRepo()
	mux := newTestMux(t, repo)

	for _, title := range []string{"Emma", "Persuasion", "Sanditon"} {
		w := testutil.Serve(mux, testutil.PostForm("/books/new", url.Values{"title": {title}, "author": {"Jane Austen"}}))
		require.Equal(t, http.StatusFound, w.Code)
	}

	books, _ := repo.List(context.Background())
	require.Len(t, books, 3)
	seen := map[int64]bool{}
	for _, b := range books {
		assert.False(t, seen[b.ID], "duplicate id %d", b.ID)
		seen[b.ID] = true
	}
}

func TestCreate_InvalidSubmissionPersistsNothing(t *testing.T) {
	repo := newMemRepo()
	mux := newTestMux(t, repo)

	w := testutil.Serve(mux, testutil.PostForm("/books/new", url.Values{"title": {"Dune"}, "year": {"soon"}}))

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `value="Dune"`)
	assert.Contains(t, body, `data-field="author"`)
	assert.Contains(t, body, `data-field="year"`)

	books, _ := repo.List(context.Background())
	assert.Empty(t, books)
}

func TestUpdate_OverwritesEveryField(t *testing.T) {
	repo := newMemRepo()
	year := 1815
	seed := Book{Title: "Emma", Author: "Jane Austen", Genre: "Novel", Year: &year}
	require.NoError(t, repo.Create(context.Background(), &seed))
	mux := newTestMux(t, repo)

	w := testutil.Serve(mux, testutil.PostForm(fmt.Sprintf("/books/%d", seed.ID), url.Values{
		"id":     {"999"},
		"title":  {"Emma"},
		"author": {"J. Austen"},
	}))
	require.Equal(t, http.StatusFound, w.Code)

	got, err := repo.FindByID(context.Background(), seed.ID)
	require.NoError(t, err)
	assert.Equal(t, seed.ID, got.ID)
	assert.Equal(t, "J. Austen", got.Author)
	assert.Empty(t, got.Genre)
	assert.Nil(t, got.Year)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
