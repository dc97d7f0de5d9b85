// Package ui holds the localized strings served to the studio front end.
package ui

var text = map[string]map[string]string{
	"en": {
		"projectTitle":        "AI Master Ji",
		"saveDraft":           "Save Draft",
		"export":              "Export",
		"generating":          "Generating...",
		"applyingEdit":        "Applying Edit...",
		"canvasPlaceholder":   "Upload a product image and a style reference to begin.",
		"toggleRuleOfThirds":  "Toggle Rule of Thirds Grid",
		"posterSettings":      "Poster Settings",
		"aspectRatio":         "Aspect Ratio",
		"lightingStyle":       "Lighting Style",
		"cameraPerspective":   "Camera Perspective",
		"creativeConcept":     "AI-Generated Master Prompt",
		"creativePrompt":      "Creative Prompt",
		"aiPromptSuggestions": "AI Prompt Suggestions",
		"generatePoster":      "Generate Poster",
		"posterLibrary":       "Poster Library",
		"productImages":       "Product Images",
		"styleReference":      "Style Reference",
		"editPoster":          "Edit Poster",
		"applyEdit":           "Apply Edit",
		"libraryPlaceholder":  "Your generated posters will appear here.",
		"styleAnalysis":       "Style Analysis",
	},
	"id": {
		"projectTitle":        "AI Master Ji",
		"saveDraft":           "Simpan Draf",
		"export":              "Ekspor",
		"generating":          "Sedang membuat...",
		"applyingEdit":        "Menerapkan Edit...",
		"canvasPlaceholder":   "Unggah foto produk dan referensi gaya untuk memulai.",
		"toggleRuleOfThirds":  "Tampilkan Grid Rule of Thirds",
		"posterSettings":      "Pengaturan Poster",
		"aspectRatio":         "Rasio Aspek",
		"lightingStyle":       "Gaya Pencahayaan",
		"cameraPerspective":   "Perspektif Kamera",
		"creativeConcept":     "Master Prompt dari AI",
		"creativePrompt":      "Prompt Kreatif",
		"aiPromptSuggestions": "Saran Prompt AI",
		"generatePoster":      "Buat Poster",
		"posterLibrary":       "Pustaka Poster",
		"productImages":       "Foto Produk",
		"styleReference":      "Referensi Gaya",
		"editPoster":          "Edit Poster",
		"applyEdit":           "Terapkan Edit",
		"libraryPlaceholder":  "Poster yang dibuat akan muncul di sini.",
		"styleAnalysis":       "Analisis Gaya",
	},
}

// Text returns the string table for the given locale, falling back to English.
func Text(locale string) map[string]string {
	if t, ok := text[locale]; ok {
		return t
	}
	return text["en"]
}
