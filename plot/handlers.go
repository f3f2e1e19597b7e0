package plot

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/nicoortuno/econtrack/core"
)

type seriesPayload struct {
	Name   string      `json:"name"`
	Color  string      `json:"color,omitempty"`
	Values core.Column `json:"values"`
}

type dataResponse struct {
	Board       string          `json:"board"`
	Title       string          `json:"title"`
	Window      core.Window     `json:"window"`
	Labels      []string        `json:"labels"`
	Series      []seriesPayload `json:"series"`
	Overlays    []seriesPayload `json:"overlays,omitempty"`
	Annotations Annotations     `json:"annotations"`
}

// handleHealth reports staleness: unhealthy if no refresh in 10 minutes.
func (c *Chart) handleHealth(w http.ResponseWriter, _ *http.Request) {
	c.Lock()
	lastUpdate := c.lastUpdate
	c.Unlock()

	if time.Since(lastUpdate) > 10*time.Minute {
		w.WriteHeader(http.StatusServiceUnavailable)
		if _, err := w.Write([]byte(lastUpdate.String())); err != nil {
			c.log.Error("Failed to write health status: ", err)
		}
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleIndex handles the main page request
func (c *Chart) handleIndex(w http.ResponseWriter, r *http.Request) {
	boards := c.BoardNames()

	board := r.URL.Query().Get("board")
	if board == "" && len(boards) > 0 {
		http.Redirect(w, r, fmt.Sprintf("/?board=%s", boards[0]), http.StatusFound)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	err := c.indexHTML.Execute(w, map[string]any{
		"board":  board,
		"boards": boards,
	})
	if err != nil {
		c.log.Error("Template execution failed: ", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// handleBoards lists the registered boards as JSON.
func (c *Chart) handleBoards(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(c.BoardNames()); err != nil {
		c.log.Error("Failed to encode board list: ", err)
	}
}

// handleData serves one board's windowed series, overlays and
// annotations for direct plot consumption.
func (c *Chart) handleData(w http.ResponseWriter, r *http.Request) {
	c.Lock()
	board, ok := c.boards[r.URL.Query().Get("board")]
	c.Unlock()
	if !ok {
		http.Error(w, "unknown board", http.StatusNotFound)
		return
	}

	window := core.WindowAll
	if token := r.URL.Query().Get("window"); token != "" {
		var err error
		if window, err = core.ParseWindow(token); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	sliced := board.Series.Slice(window)
	primary := sliced.Column(board.Primary)

	response := dataResponse{
		Board:       board.Name,
		Title:       board.Title,
		Window:      window,
		Labels:      sliced.Labels,
		Annotations: Annotate(primary),
	}
	for _, name := range sliced.ColumnNames() {
		response.Series = append(response.Series, seriesPayload{
			Name:   name,
			Values: sliced.Column(name),
		})
	}
	for _, overlay := range c.overlays {
		values, ok := overlay.Load(primary)
		if !ok {
			continue
		}
		response.Overlays = append(response.Overlays, seriesPayload{
			Name:   overlay.Name(),
			Color:  overlay.Color(),
			Values: values,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		c.log.Error("Failed to encode board data: ", err)
	}
}

// handleExportData handles CSV export of a board's current series
func (c *Chart) handleExportData(w http.ResponseWriter, r *http.Request) {
	c.Lock()
	board, ok := c.boards[r.URL.Query().Get("board")]
	c.Unlock()
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment;filename="+board.Name+".csv")

	buffer := bytes.NewBuffer(nil)
	csvWriter := csv.NewWriter(buffer)

	names := board.Series.ColumnNames()
	if err := csvWriter.Write(append([]string{"date"}, names...)); err != nil {
		c.log.Error("Failed writing CSV header: ", err)
		http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
		return
	}

	for i, label := range board.Series.Labels {
		record := make([]string, 0, len(names)+1)
		record = append(record, label)
		for _, name := range names {
			value := board.Series.Column(name)[i]
			if value.Valid {
				record = append(record, value.Display())
			} else {
				record = append(record, "")
			}
		}
		if err := csvWriter.Write(record); err != nil {
			c.log.Error("Failed writing CSV data: ", err)
			http.Error(w, "Failed to generate CSV", http.StatusInternalServerError)
			return
		}
	}
	csvWriter.Flush()

	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buffer.Bytes()); err != nil {
		c.log.Error("Failed writing CSV response: ", err)
	}
}
