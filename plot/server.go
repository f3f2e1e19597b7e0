package plot

import (
	"fmt"
	"net/http"
)

// Start registers the chart routes and serves until the listener fails.
func (c *Chart) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", c.handleIndex)
	mux.HandleFunc("/health", c.handleHealth)
	mux.HandleFunc("/api/boards", c.handleBoards)
	mux.HandleFunc("/api/data", c.handleData)
	mux.HandleFunc("/export", c.handleExportData)
	mux.HandleFunc("/assets/js/main.js", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/javascript")
		if _, err := w.Write([]byte(c.scriptContent)); err != nil {
			c.log.Error("Failed to write script: ", err)
		}
	})

	c.log.Infof("chart available at http://localhost:%d", c.port)
	return http.ListenAndServe(fmt.Sprintf(":%d", c.port), mux)
}
