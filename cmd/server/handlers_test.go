package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	sc "fstspell/internal/corrector"
)

type fakeChecker struct {
	words  map[string]bool
	custom map[string]bool
	err    error
}

func newFakeChecker() *fakeChecker {
	return &fakeChecker{
		words:  map[string]bool{"cat": true, "the": true},
		custom: map[string]bool{},
	}
}

func (f *fakeChecker) Spell(word string) bool { return f.words[word] || f.custom[word] }

func (f *fakeChecker) Suggest(word string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if word == "kat" {
		return []string{"cat"}, nil
	}
	return nil, nil
}

func (f *fakeChecker) CheckText(text string) (sc.CorrectionResult, error) {
	if f.err != nil {
		return sc.CorrectionResult{}, f.err
	}
	return sc.CorrectionResult{
		Original:  text,
		Corrected: strings.ReplaceAll(text, "kat", "cat"),
		Suggestions: map[int]sc.SuggestionInfo{
			2: {Token: "kat", Suggestions: []string{"cat"}, Decision: sc.DecisionAutoReplace},
		},
	}, nil
}

func (f *fakeChecker) AddCustomWord(_ context.Context, word string) error {
	if f.err != nil {
		return f.err
	}
	f.custom[word] = true
	return nil
}

func (f *fakeChecker) RemoveCustomWord(_ context.Context, word string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.custom, word)
	return nil
}

func do(mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestSpellHandler(t *testing.T) {
	mux := newMux(newFakeChecker())

	rec := do(mux, http.MethodPost, "/api/v1/spell", `{"word":"cat"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, gjson.Get(rec.Body.String(), "correct").Bool())

	rec = do(mux, http.MethodPost, "/api/v1/spell", `{"word":"kat"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), "correct").Bool())
}

func TestBadRequests(t *testing.T) {
	mux := newMux(newFakeChecker())

	tests := []struct {
		name, method, path, body string
		code                     int
	}{
		{"not json", http.MethodPost, "/api/v1/spell", `word=cat`, http.StatusBadRequest},
		{"missing field", http.MethodPost, "/api/v1/suggest", `{"text":"cat"}`, http.StatusBadRequest},
		{"blank field", http.MethodPost, "/api/v1/correct", `{"text":"   "}`, http.StatusBadRequest},
		{"number field", http.MethodPost, "/api/v1/spell", `{"word":7}`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, "/api/v1/spell", ``, http.StatusNotFound},
		{"delete without word", http.MethodDelete, "/api/v1/custom-word/", ``, http.StatusBadRequest},
		{"post to delete path", http.MethodPost, "/api/v1/custom-word/zorg", ``, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(mux, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestSuggestHandler(t *testing.T) {
	mux := newMux(newFakeChecker())

	rec := do(mux, http.MethodPost, "/api/v1/suggest", `{"word":"kat"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"word":"kat","suggestions":["cat"]}`, rec.Body.String())

	rec = do(mux, http.MethodPost, "/api/v1/suggest", `{"word":"xyzzy"}`)
	assert.JSONEq(t, `{"word":"xyzzy","suggestions":[]}`, rec.Body.String())
}

func TestCorrectHandler(t *testing.T) {
	mux := newMux(newFakeChecker())

	rec := do(mux, http.MethodPost, "/api/v1/correct", `{"text":"a kat"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Equal(t, "a cat", gjson.Get(body, "corrected").String())
	assert.Equal(t, "auto_replace", gjson.Get(body, "suggestions.2.decision").String())
}

func TestCustomWordHandlers(t *testing.T) {
	fc := newFakeChecker()
	mux := newMux(fc)

	rec := do(mux, http.MethodPost, "/api/v1/custom-word", `{"word":"zorg"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, fc.custom["zorg"])

	rec = do(mux, http.MethodDelete, "/api/v1/custom-word/zorg", ``)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, fc.custom["zorg"])
}

func TestHandlerErrors(t *testing.T) {
	fc := newFakeChecker()
	fc.err = errors.New("store down")
	mux := newMux(fc)

	for _, path := range []string{"/api/v1/suggest", "/api/v1/custom-word"} {
		rec := do(mux, http.MethodPost, path, `{"word":"kat"}`)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, path)
		assert.Equal(t, "store down", gjson.Get(rec.Body.String(), "error").String())
	}
	rec := do(mux, http.MethodPost, "/api/v1/correct", `{"text":"kat"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	rec = do(mux, http.MethodDelete, "/api/v1/custom-word/kat", ``)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
