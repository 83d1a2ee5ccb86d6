package chart

// Spec is a declarative chart description: data plus encoding, no rendering
// state. A rendering layer (web frontend, notebook, image exporter) owns all
// mutable display concerns; nothing here touches a figure or a style registry.
type Spec struct {
	Kind   Kind     `json:"kind"`
	Title  string   `json:"title"`
	XLabel string   `json:"x_label,omitempty"`
	YLabel string   `json:"y_label,omitempty"`
	YMin   *float64 `json:"y_min,omitempty"`
	YMax   *float64 `json:"y_max,omitempty"`
	Series []Series `json:"series"`
}

// Kind enumerates the chart shapes renderers are expected to understand
type Kind string

const (
	KindLine Kind = "line" // Points per series, x is a date
	KindBox  Kind = "box"  // Values per series, one series per category
	KindBar  Kind = "bar"  // Points per series, x is a category
)

// Series is one named stream of data within a chart. Line and bar charts use
// Points; box charts carry the raw Values of each category.
type Series struct {
	Name   string    `json:"name"`
	Points []Point   `json:"points,omitempty"`
	Values []float64 `json:"values,omitempty"`
}

// Point is a single (x, y) observation
type Point struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// MapSpec describes an interactive station map: center, zoom, selectable base
// layers, and one marker per station. Pure data, rendered elsewhere.
type MapSpec struct {
	CenterLat  float64  `json:"center_lat"`
	CenterLng  float64  `json:"center_lng"`
	Zoom       int      `json:"zoom"`
	TileLayers []string `json:"tile_layers"`
	Markers    []Marker `json:"markers"`
}

// Marker is a circle marker at a station's location
type Marker struct {
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Tooltip     string  `json:"tooltip,omitempty"`
	Color       string  `json:"color"`
	Fill        bool    `json:"fill"`
	FillOpacity float64 `json:"fill_opacity"`
	Radius      int     `json:"radius"`
}
