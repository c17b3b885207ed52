package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/music-league-system/models"
	"github.com/Dosada05/music-league-system/services"
	"github.com/Dosada05/music-league-system/utils"
)

type LeagueHandler struct {
	catalog     services.CatalogService
	privacyMode utils.PrivacyMode
}

func NewLeagueHandler(catalog services.CatalogService, privacyMode utils.PrivacyMode) *LeagueHandler {
	return &LeagueHandler{
		catalog:     catalog,
		privacyMode: privacyMode,
	}
}

func (h *LeagueHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	response := jsonResponse{"categories": h.catalog.Categories()}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	categorySlug := chi.URLParam(r, "category")

	results, err := h.catalog.LeaguesByCategory(categorySlug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	for i := range results {
		results[i] = h.maskResult(results[i])
	}

	response := jsonResponse{"leagues": results}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.catalog.LeagueBySlug(slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"league": h.maskResult(result)}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) GetLeagueStandings(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	result, err := h.catalog.LeagueBySlug(slug)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if result.League == nil {
		errorResponse(w, r, http.StatusBadGateway, result.Error)
		return
	}

	response := jsonResponse{
		"title":     result.League.Title,
		"standings": h.maskStandings(result.League.LeagueStandings),
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Refresh re-runs the whole archive fan-out synchronously and reports how it
// went. Guarded by the admin middleware in the route setup.
func (h *LeagueHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	results := h.catalog.RefreshAll(r.Context())

	failed := 0
	for _, result := range results {
		if result.State == models.LeagueStateFailed {
			failed++
		}
	}

	response := jsonResponse{"refreshed": len(results), "failed": failed}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *LeagueHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"status": "ok"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// maskResult applies the privacy policy to every competitor name in a result.
// Aggregation always runs on full names; masking happens only here, at the
// serving boundary.
func (h *LeagueHandler) maskResult(result models.LeagueResult) models.LeagueResult {
	if h.privacyMode == utils.PrivacyFull || result.League == nil {
		return result
	}

	league := *result.League

	league.LeagueStandings = h.maskStandings(league.LeagueStandings)

	rounds := make([]models.Round, len(league.Rounds))
	for i, round := range league.Rounds {
		round.Standings = h.maskStandings(round.Standings)
		rounds[i] = round
	}
	league.Rounds = rounds

	competitors := make([]models.Competitor, len(league.Competitors))
	for i, competitor := range league.Competitors {
		competitor.Name = utils.DisplayName(competitor.Name, h.privacyMode)
		competitors[i] = competitor
	}
	league.Competitors = competitors

	result.League = &league
	return result
}

func (h *LeagueHandler) maskStandings(entries []models.Standing) []models.Standing {
	if h.privacyMode == utils.PrivacyFull {
		return entries
	}

	masked := make([]models.Standing, len(entries))
	for i, entry := range entries {
		entry.Name = utils.DisplayName(entry.Name, h.privacyMode)
		masked[i] = entry
	}
	return masked
}
