package plot

import (
	"embed"
	"fmt"
	"html/template"
	"sync"
	"time"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/nicoortuno/econtrack/core"
)

// Static assets embedded in the binary
var (
	//go:embed assets
	staticFiles embed.FS
)

// Board is one chartable dashboard panel: a derived series plus the name
// of the column that gets extremum/latest annotations and overlays.
type Board struct {
	Name    string
	Title   string
	Series  core.Series
	Primary string
}

// Chart serves the dashboard boards over HTTP for the browser renderer.
// Board data is replaced wholesale on every refresh; the chart owns no
// part of the engine's state.
type Chart struct {
	sync.Mutex
	port          int
	debug         bool
	boards        map[string]Board
	order         []string
	overlays      []Overlay
	scriptContent string
	indexHTML     *template.Template
	lastUpdate    time.Time
	log           core.Logger
}

// Overlay computes an extra rendered line from a board's primary column.
type Overlay interface {
	Name() string
	Color() string
	Load(values core.Column) (core.Column, bool)
}

// Option defines a function type for configuring a Chart instance
type Option func(*Chart)

// WithPort sets the HTTP server port
func WithPort(port int) Option {
	return func(chart *Chart) {
		chart.port = port
	}
}

// WithDebug enables debug mode (disables minification)
func WithDebug() Option {
	return func(chart *Chart) {
		chart.debug = true
	}
}

// WithOverlays adds overlay indicators drawn on each board's primary column
func WithOverlays(overlays ...Overlay) Option {
	return func(chart *Chart) {
		chart.overlays = overlays
	}
}

// NewChart creates a new chart instance with the provided options
func NewChart(log core.Logger, options ...Option) (*Chart, error) {
	chart := &Chart{
		port:   8080,
		log:    log,
		boards: make(map[string]Board),
	}

	for _, option := range options {
		option(chart)
	}

	var err error
	chart.indexHTML, err = template.ParseFS(staticFiles, "assets/index.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse chart template: %w", err)
	}

	chartJS, err := staticFiles.ReadFile("assets/js/main.js")
	if err != nil {
		return nil, fmt.Errorf("failed to read main.js: %w", err)
	}

	transpiled := api.Transform(string(chartJS), api.TransformOptions{
		Loader:            api.LoaderJS,
		Target:            api.ES2015,
		MinifySyntax:      !chart.debug,
		MinifyWhitespace:  !chart.debug,
		MinifyIdentifiers: !chart.debug,
	})
	if len(transpiled.Errors) > 0 {
		return nil, fmt.Errorf("failed to transpile main.js: %v", transpiled.Errors)
	}
	chart.scriptContent = string(transpiled.Code)

	return chart, nil
}

// UpdateBoard replaces a board's data with a freshly computed series.
func (c *Chart) UpdateBoard(board Board) {
	c.Lock()
	defer c.Unlock()

	if _, exists := c.boards[board.Name]; !exists {
		c.order = append(c.order, board.Name)
	}
	c.boards[board.Name] = board
	c.lastUpdate = time.Now()
}

// BoardNames returns the registered board names in insertion order.
func (c *Chart) BoardNames() []string {
	c.Lock()
	defer c.Unlock()

	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}
