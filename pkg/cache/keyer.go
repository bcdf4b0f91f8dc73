package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key for a layout computed from a scene.
	LayoutKey(sceneHash string, opts LayoutKeyOpts) string
	// ArtifactKey is the key for an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts are the layout inputs besides the scene itself.
type LayoutKeyOpts struct {
	Width          string `json:"width,omitempty"`
	Height         string `json:"height,omitempty"`
	DisableScripts bool   `json:"disable_scripts,omitempty"`
}

// ArtifactKeyOpts are the render inputs besides the layout itself.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	View       string  `json:"view,omitempty"`
	Style      string  `json:"style,omitempty"`
	LineBounds bool    `json:"line_bounds,omitempty"`
	NoLabels   bool    `json:"no_labels,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
}

// DefaultKeyer produces "layout:<hash>" and "artifact:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(sceneHash string, opts LayoutKeyOpts) string {
	return hashKey(KeyTypeLayout, sceneHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, layoutHash, opts)
}
