package main

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"
)

type SerpApiResponse struct {
	SearchMetadata SearchMetadata   `json:"search_metadata"`
	Error          string           `json:"error,omitempty"`
	BestFlights    []map[string]any `json:"best_flights"`
}

type SearchMetadata struct {
	Status string `json:"status"`
}

type routeFixture struct {
	Departure   string           `json:"departure_id"`
	Arrival     string           `json:"arrival_id"`
	BestFlights []map[string]any `json:"best_flights"`
}

// SerpApiSearchHandler mimics the google_flights engine. Special api keys
// trigger the failure modes: "invalid" (provider error), "broken"
// (malformed body) and "unavailable" (HTTP 503).
func SerpApiSearchHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	switch q.Get("api_key") {
	case "":
		writeJSON(w, SerpApiResponse{SearchMetadata: SearchMetadata{Status: "Error"}, Error: "Missing api_key."})
		return
	case "invalid":
		writeJSON(w, SerpApiResponse{SearchMetadata: SearchMetadata{Status: "Error"}, Error: "Invalid API key. Your API key should be here: https://serpapi.com/manage-api-key"})
		return
	case "broken":
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"search_metadata": {"status": "Succ`))
		return
	case "unavailable":
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}

	if q.Get("engine") != "google_flights" {
		writeJSON(w, SerpApiResponse{SearchMetadata: SearchMetadata{Status: "Error"}, Error: "Unsupported engine."})
		return
	}

	data, err := os.ReadFile("mock/files/serpapi_routes.json")
	if err != nil {
		http.Error(w, "Failed to read flight data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	var fixtures []routeFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		http.Error(w, "Failed to parse flight data: "+err.Error(), http.StatusInternalServerError)
		return
	}

	best := make([]map[string]any, 0)
	for _, f := range fixtures {
		if strings.EqualFold(f.Departure, q.Get("departure_id")) && strings.EqualFold(f.Arrival, q.Get("arrival_id")) {
			best = f.BestFlights
			break
		}
	}

	delay := 50 + rand.Intn(51) // 50 to 100ms
	time.Sleep(time.Duration(delay) * time.Millisecond)

	writeJSON(w, SerpApiResponse{SearchMetadata: SearchMetadata{Status: "Success"}, BestFlights: best})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
