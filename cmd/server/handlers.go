package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	sc "fstspell/internal/corrector"
)

const maxBodyBytes = 1 << 20

type checker interface {
	Spell(word string) bool
	Suggest(word string) ([]string, error)
	CheckText(text string) (sc.CorrectionResult, error)
	AddCustomWord(ctx context.Context, word string) error
	RemoveCustomWord(ctx context.Context, word string) error
}

func newMux(c checker) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/spell", func(w http.ResponseWriter, r *http.Request) {
		word, ok := readField(w, r, "word")
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"word":    word,
			"correct": c.Spell(word),
		})
	})

	mux.HandleFunc("/api/v1/suggest", func(w http.ResponseWriter, r *http.Request) {
		word, ok := readField(w, r, "word")
		if !ok {
			return
		}
		list, err := c.Suggest(word)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if list == nil {
			list = []string{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"word":        word,
			"suggestions": list,
		})
	})

	mux.HandleFunc("/api/v1/correct", func(w http.ResponseWriter, r *http.Request) {
		text, ok := readField(w, r, "text")
		if !ok {
			return
		}
		res, err := c.CheckText(text)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"original":    res.Original,
			"corrected":   res.Corrected,
			"suggestions": res.Suggestions,
		})
	})

	mux.HandleFunc("/api/v1/custom-word", func(w http.ResponseWriter, r *http.Request) {
		word, ok := readField(w, r, "word")
		if !ok {
			return
		}
		if err := c.AddCustomWord(r.Context(), word); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("/api/v1/custom-word/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			http.NotFound(w, r)
			return
		}
		word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
		if word == "" {
			writeError(w, http.StatusBadRequest, "word is required")
			return
		}
		if err := c.RemoveCustomWord(r.Context(), word); err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return mux
}

// readField extracts a non-blank string field from a POST JSON body. On
// failure the response is already written.
func readField(w http.ResponseWriter, r *http.Request, field string) (string, bool) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return "", false
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || !gjson.ValidBytes(body) {
		writeError(w, http.StatusBadRequest, "invalid request")
		return "", false
	}
	v := gjson.GetBytes(body, field)
	if v.Type != gjson.String || strings.TrimSpace(v.Str) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return "", false
	}
	return v.Str, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
