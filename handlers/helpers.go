package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Dosada05/music-league-system/archive"
	"github.com/Dosada05/music-league-system/services"
	"github.com/Dosada05/music-league-system/storage"
)

type jsonResponse map[string]interface{}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, message interface{}) {
	env := jsonResponse{"error": message}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal server error", slog.String("path", r.URL.Path), slog.Any("error", err))
	errorResponse(w, r, http.StatusInternalServerError, "the server encountered a problem and could not process your request")
}

func notFoundResponse(w http.ResponseWriter, r *http.Request) {
	errorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

// mapServiceErrorToHTTP translates service-layer errors into HTTP responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrLeagueNotFound),
		errors.Is(err, services.ErrCategoryNotFound):
		notFoundResponse(w, r)

	// Archive rejections and transport failures surface as an upstream
	// problem: the archive host or its contents, not this service.
	case errors.Is(err, storage.ErrFetchFailed),
		errors.Is(err, services.ErrLoadTimeout),
		errors.Is(err, archive.ErrArchiveTooLarge),
		errors.Is(err, archive.ErrTooManyEntries),
		errors.Is(err, archive.ErrAbsolutePath),
		errors.Is(err, archive.ErrPathTraversal),
		errors.Is(err, archive.ErrUnsupportedFileType),
		errors.Is(err, archive.ErrFileTooLarge):
		errorResponse(w, r, http.StatusBadGateway, err.Error())

	default:
		serverErrorResponse(w, r, err)
	}
}
