package domain

// StyleAnalysis is the structured decomposition of a style-reference image
// returned by the analysis model. It is valid only for the style asset it was
// produced from; replacing the style asset invalidates it.
type StyleAnalysis struct {
	Palette     []string `json:"palette"`
	Lighting    string   `json:"lighting"`
	Composition string   `json:"composition"`
	Textures    []string `json:"textures"`
	Vibe        string   `json:"vibe"`
	Keywords    []string `json:"keywords"`
}
