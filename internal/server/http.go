package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"riskboard/internal/board"
	"riskboard/internal/risk"
	"riskboard/internal/storage"
)

// Deps are the pieces the HTTP surface reads from.
type Deps struct {
	Board   *board.Board
	Trend   interface{ PNG() ([]byte, error) }
	Archive *storage.Store
	Webhook http.HandlerFunc
	Metrics http.Handler
}

func NewHTTPMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(200) })
	if d.Metrics != nil {
		mux.Handle("GET /metrics", d.Metrics)
	}
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, risk.SignalKeys); err != nil {
			log.Printf("http: render page: %v", err)
		}
	})
	mux.HandleFunc("GET /api/board", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, d.Board.State())
	})
	mux.HandleFunc("GET /canvas/{id}", func(w http.ResponseWriter, r *http.Request) {
		c, ok := d.Board.RasterCanvas(r.PathValue("id"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		img, err := c.PNG()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writePNG(w, img)
	})
	mux.HandleFunc("POST /api/viewport", func(w http.ResponseWriter, r *http.Request) {
		width, err := strconv.Atoi(r.URL.Query().Get("width"))
		if err != nil || width <= 0 {
			http.Error(w, "width must be a positive integer", http.StatusBadRequest)
			return
		}
		d.Board.SetViewport(width)
		w.WriteHeader(http.StatusNoContent)
	})
	if d.Trend != nil {
		mux.HandleFunc("GET /chart/trend.png", func(w http.ResponseWriter, r *http.Request) {
			img, err := d.Trend.PNG()
			if err != nil {
				http.Error(w, err.Error(), http.StatusServiceUnavailable)
				return
			}
			writePNG(w, img)
		})
	}
	if d.Archive != nil {
		mux.HandleFunc("GET /api/archive", func(w http.ResponseWriter, r *http.Request) {
			limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
			if err != nil || limit <= 0 || limit > 500 {
				limit = 50
			}
			rows, err := d.Archive.Recent(limit)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			writeJSON(w, rows)
		})
	}
	if d.Webhook != nil {
		mux.HandleFunc("/telegram/webhook", d.Webhook)
	}
	return mux
}

func ListenAndServe(addr string, mux *http.ServeMux) error {
	return http.ListenAndServe(addr, mux)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("http: encode response: %v", err)
	}
}

func writePNG(w http.ResponseWriter, img []byte) {
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}
