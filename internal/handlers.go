package internal

import (
	"net/http"
	"time"
)

// parseLookupRequest validates form or query input into a LookupRequest.
// An empty API key falls back to the server-configured one inside the client.
func parseLookupRequest(r *http.Request) (LookupRequest, error) {
	riotID := r.FormValue("riotId")
	gameName := r.FormValue("gameName")
	tagLine := r.FormValue("tagLine")

	if riotID != "" {
		var ok bool
		gameName, tagLine, ok = SplitRiotID(riotID)
		if !ok {
			return LookupRequest{}, MissingFields("riotId must look like gameName#tagLine")
		}
	}
	if gameName == "" || tagLine == "" {
		return LookupRequest{}, MissingFields("gameName and tagLine are required")
	}

	region, err := ParseRegion(r.FormValue("region"))
	if err != nil {
		return LookupRequest{}, InvalidRegion(r.FormValue("region"))
	}

	return LookupRequest{
		GameName: gameName,
		TagLine:  tagLine,
		Region:   region,
		APIKey:   r.FormValue("apiKey"),
	}, nil
}

func withRateLimit(rateLimiter RateLimiterInterface, key string, logger *Logger, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if rateLimiter == nil {
			next(w, r)
			return
		}

		allowed, err := rateLimiter.Allow(r.Context(), key)
		if err != nil {
			writeError(w, r, NewAPIError(ErrCodeInternal, "rate limiter error", http.StatusInternalServerError), logger)
			return
		}
		if !allowed {
			writeError(w, r, RateLimitError(), logger)
			return
		}
		next(w, r)
	}
}

// IndexHandler renders the scouting form with the current display state and
// the recent-lookups panel.
func IndexHandler(scout *Scout, store ReportStore, cfg *Config, logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		state, report, lastErr := scout.State()
		data := pageData{
			Regions:      regionOptions(Region(cfg.RiotRegion)),
			HasServerKey: cfg.RiotAPIKey != "",
			State:        state,
			Report:       report,
		}
		switch {
		case lastErr != nil:
			data.StatusLine = lastErr.Message
		case report != nil:
			data.StatusLine = report.StatusLine
		}

		if store != nil {
			history, err := store.History(r.Context(), 10)
			if err != nil {
				logger.Warn("history_load_failed").
					Component("http").
					Operation("index").
					Err(err).
					Log()
			} else {
				data.History = history
			}
		}

		renderIndex(w, r, data, logger)
	}
}

// LookupFormHandler handles the form submit and re-renders the page with the
// outcome. Errors become the status line, never a bare error page.
func LookupFormHandler(scout *Scout, store ReportStore, rateLimiter RateLimiterInterface, cfg *Config, logger *Logger) http.HandlerFunc {
	return withRateLimit(rateLimiter, "lookup", logger, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		data := pageData{
			RiotID:       r.FormValue("riotId"),
			Regions:      regionOptions(Region(r.FormValue("region"))),
			HasServerKey: cfg.RiotAPIKey != "",
		}

		req, err := parseLookupRequest(r)
		if err != nil {
			data.State = StateFailed
			data.StatusLine = AsAPIError(err).Message
			renderIndex(w, r, data, logger)
			return
		}

		report, err := scout.Lookup(r.Context(), req)
		if err != nil {
			data.State = StateFailed
			data.StatusLine = AsAPIError(err).Message
			renderIndex(w, r, data, logger)
			return
		}

		data.State = StateSuccess
		data.StatusLine = report.StatusLine
		data.Report = report

		if store != nil {
			if history, histErr := store.History(r.Context(), 10); histErr == nil {
				data.History = history
			}
		}

		renderIndex(w, r, data, logger)
	})
}

func renderIndex(w http.ResponseWriter, r *http.Request, data pageData, logger *Logger) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, data); err != nil {
		logger.Error("template_render_failed").
			Component("http").
			Operation("render_index").
			Request("", "", GetRequestID(r.Context())).
			Err(err).
			Log()
	}
}

// APILookupHandler is the JSON variant of the form submit.
func APILookupHandler(scout *Scout, rateLimiter RateLimiterInterface, logger *Logger) http.HandlerFunc {
	return withRateLimit(rateLimiter, "api-lookup", logger, func(w http.ResponseWriter, r *http.Request) {
		req, err := parseLookupRequest(r)
		if err != nil {
			writeError(w, r, err, logger)
			return
		}

		report, err := scout.Lookup(r.Context(), req)
		if err != nil {
			writeError(w, r, err, logger)
			return
		}

		writeJSON(w, r, report, logger)
	})
}

// StatusHandler exposes the display state machine for polling clients.
func StatusHandler(scout *Scout, logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, report, lastErr := scout.State()

		response := map[string]interface{}{
			"state": state,
		}
		if report != nil {
			response["report"] = report
		}
		if lastErr != nil {
			response["error"] = map[string]interface{}{
				"code":    lastErr.Code,
				"message": lastErr.Message,
			}
		}

		writeJSON(w, r, response, logger)
	}
}

// HistoryHandler returns recent persisted reports.
func HistoryHandler(store ReportStore, logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store == nil {
			writeJSON(w, r, []Report{}, logger)
			return
		}

		history, err := store.History(r.Context(), 20)
		if err != nil {
			writeError(w, r, UpstreamError("failed to load history"), logger)
			return
		}
		if history == nil {
			history = []Report{}
		}
		writeJSON(w, r, history, logger)
	}
}

func HealthHandler(logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, map[string]interface{}{
			"status":    "ok",
			"service":   "scoutle",
			"timestamp": time.Now().Unix(),
		}, logger)
	}
}

func MetricsHandler(metrics *MetricsCollector, logger *Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, metrics.GetMetrics(), logger)
	}
}
