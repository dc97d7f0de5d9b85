package studio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bsatnami/Ai-Masterji/internal/domain"
	"github.com/bsatnami/Ai-Masterji/internal/infra"
	"github.com/bsatnami/Ai-Masterji/internal/poster"
)

// Analyzer derives a structured style description from a style asset.
type Analyzer interface {
	Analyze(ctx context.Context, style domain.Asset) (domain.StyleAnalysis, error)
}

// Generator synthesizes a poster from the session's assets and settings.
type Generator interface {
	Generate(ctx context.Context, products []domain.Asset, style *domain.Asset, analysis *domain.StyleAnalysis, settings domain.Settings) (domain.PosterRecord, error)
}

// Editor applies an instruction to an existing poster record.
type Editor interface {
	Edit(ctx context.Context, source domain.PosterRecord, instruction string) (domain.PosterRecord, error)
}

// Suggester returns best-effort creative prompt variants.
type Suggester interface {
	Suggestions(ctx context.Context, products []domain.Asset, style *domain.Asset) []string
}

// Session owns all mutable state of the single local editing session: the
// uploaded assets, the current style analysis, settings, the revision
// library, and the active-record cursor. Every mutation happens under one
// mutex; external calls run with the lock released and their results are
// folded back in afterwards.
//
// Generation and edit are serialized by a busy latch: a second invocation
// while one is outstanding fails with domain.ErrBusy instead of relying on
// the client to disable its buttons.
type Session struct {
	mu sync.Mutex

	products   []domain.Asset
	style      *domain.Asset
	styleToken uint64
	analysis   *domain.StyleAnalysis
	analyzing  bool

	settings    domain.Settings
	library     *poster.Library
	activeID    string
	concept     string
	suggestions []string

	busy           bool
	loadingMessage string

	analyzer  Analyzer
	generator Generator
	editor    Editor
	suggester Suggester
	logger    infra.Logger
}

// NewSession wires a session over the four invokers.
func NewSession(analyzer Analyzer, generator Generator, editor Editor, suggester Suggester, logger infra.Logger) *Session {
	return &Session{
		settings:  domain.DefaultSettings(),
		library:   poster.NewLibrary(),
		analyzer:  analyzer,
		generator: generator,
		editor:    editor,
		suggester: suggester,
		logger:    logger,
	}
}

// AddProducts appends uploaded product assets (order significant, duplicates
// allowed) and evaluates the auto-generation rule.
func (s *Session) AddProducts(ctx context.Context, assets []domain.Asset) {
	s.mu.Lock()
	s.products = append(s.products, assets...)
	s.mu.Unlock()

	s.maybeAutoGenerate()
}

// RemoveProduct drops the product asset at the given position.
func (s *Session) RemoveProduct(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.products) {
		return fmt.Errorf("%w: product index %d", domain.ErrNotFound, index)
	}
	s.products = append(s.products[:index], s.products[index+1:]...)
	return nil
}

// SetStyle replaces the style asset and runs analysis for it. Any analysis
// still in flight for an earlier asset is superseded: its result is discarded
// on arrival by comparing the style token captured at dispatch. The analysis
// error, if any, is returned so the caller can surface it; the style asset
// itself stays in place either way.
func (s *Session) SetStyle(ctx context.Context, asset domain.Asset) error {
	s.mu.Lock()
	s.style = &asset
	s.styleToken++
	token := s.styleToken
	s.analysis = nil
	s.analyzing = true
	s.mu.Unlock()

	analysis, err := s.analyzer.Analyze(ctx, asset)

	s.mu.Lock()
	if s.styleToken != token {
		// A newer upload superseded this analysis; drop the late result.
		s.mu.Unlock()
		s.logger.Debug().Msg("studio: discarding stale style analysis")
		return nil
	}
	s.analyzing = false
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.analysis = &analysis
	s.mu.Unlock()

	s.maybeAutoGenerate()
	return nil
}

// RemoveStyle clears the style asset and invalidates its analysis.
func (s *Session) RemoveStyle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = nil
	s.styleToken++
	s.analysis = nil
	s.analyzing = false
}

// Analysis returns the current style analysis, if ready.
func (s *Session) Analysis() (domain.StyleAnalysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.analysis == nil {
		return domain.StyleAnalysis{}, false
	}
	return *s.analysis, true
}

// Settings returns the current settings.
func (s *Session) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings validates and stores new settings.
func (s *Session) UpdateSettings(settings domain.Settings) error {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return nil
}

// maybeAutoGenerate fires the first generation as an explicit
// state-transition rule: at least one product asset, a style asset, a
// completed analysis, and an empty library. The generation itself runs in the
// background so uploads return promptly; the busy latch keeps it from
// overlapping a manual invocation.
func (s *Session) maybeAutoGenerate() {
	s.mu.Lock()
	ready := len(s.products) > 0 && s.style != nil && s.analysis != nil &&
		!s.busy && s.library.Len() == 0
	s.mu.Unlock()
	if !ready {
		return
	}

	s.logger.Info().Msg("studio: assets ready, generating first poster")
	go func() {
		genCtx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		if _, err := s.Generate(genCtx); err != nil {
			s.logger.Warn().Err(err).Msg("studio: automatic generation failed")
		}
	}()
}

// Generate runs one generation against the current state, appends the result
// to the library, and makes it active. The master prompt is loaded into the
// settings prompt and the creative concept, and a suggestion refresh is
// kicked off in the background.
func (s *Session) Generate(ctx context.Context) (domain.PosterRecord, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.PosterRecord{}, domain.ErrBusy
	}
	s.busy = true
	s.loadingMessage = "Generating poster from reference..."
	products := append([]domain.Asset(nil), s.products...)
	style := s.style
	analysis := s.analysis
	settings := s.settings
	s.mu.Unlock()

	record, err := s.generator.Generate(ctx, products, style, analysis, settings)

	s.mu.Lock()
	s.busy = false
	s.loadingMessage = ""
	if err != nil {
		s.mu.Unlock()
		return domain.PosterRecord{}, err
	}
	s.library.Append(record)
	s.activeID = record.ID
	s.settings.Prompt = record.Prompt
	s.concept = record.Prompt
	s.mu.Unlock()

	s.refreshSuggestions()
	return record, nil
}

// Edit applies an instruction to the identified record (the active one when
// id is empty), appends the result as a new revision, and makes it active.
func (s *Session) Edit(ctx context.Context, id, instruction string) (domain.PosterRecord, error) {
	s.mu.Lock()
	if id == "" {
		id = s.activeID
	}
	source, ok := s.library.Get(id)
	if !ok {
		s.mu.Unlock()
		return domain.PosterRecord{}, fmt.Errorf("%w: poster %s", domain.ErrNotFound, id)
	}
	if s.busy {
		s.mu.Unlock()
		return domain.PosterRecord{}, domain.ErrBusy
	}
	s.busy = true
	s.loadingMessage = fmt.Sprintf("Applying edit: %q...", instruction)
	s.mu.Unlock()

	record, err := s.editor.Edit(ctx, source, instruction)

	s.mu.Lock()
	s.busy = false
	s.loadingMessage = ""
	if err != nil {
		s.mu.Unlock()
		return domain.PosterRecord{}, err
	}
	s.library.Append(record)
	s.activeID = record.ID
	s.settings.Prompt = record.Prompt
	s.concept = record.Prompt
	s.mu.Unlock()

	return record, nil
}

// Suggestions fetches prompt ideas for the current assets and remembers them.
func (s *Session) Suggestions(ctx context.Context) []string {
	s.mu.Lock()
	products := append([]domain.Asset(nil), s.products...)
	style := s.style
	s.mu.Unlock()

	suggestions := s.suggester.Suggestions(ctx, products, style)

	s.mu.Lock()
	s.suggestions = suggestions
	s.mu.Unlock()
	return suggestions
}

// refreshSuggestions mirrors the post-generation convenience refresh: fire
// and forget, failures degrade to an empty list inside the suggester.
func (s *Session) refreshSuggestions() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		s.Suggestions(ctx)
	}()
}

// SelectActive points the cursor at an existing record and loads its prompt
// into the settings and the creative concept, as selecting from the library
// always did.
func (s *Session) SelectActive(id string) (domain.PosterRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.library.Get(id)
	if !ok {
		return domain.PosterRecord{}, fmt.Errorf("%w: poster %s", domain.ErrNotFound, id)
	}
	s.activeID = record.ID
	s.settings.Prompt = record.Prompt
	s.concept = record.Prompt
	return record, nil
}

// Record returns the identified record.
func (s *Session) Record(id string) (domain.PosterRecord, bool) {
	return s.library.Get(id)
}

// ActiveRecord returns the currently selected record, if any.
func (s *Session) ActiveRecord() (domain.PosterRecord, bool) {
	s.mu.Lock()
	id := s.activeID
	s.mu.Unlock()
	if id == "" {
		return domain.PosterRecord{}, false
	}
	return s.library.Get(id)
}

// Posters returns the library in creation order.
func (s *Session) Posters() []domain.PosterRecord {
	return s.library.Snapshot()
}

// AssetInfo is upload metadata exposed to the view layer.
type AssetInfo struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	MIME  string `json:"mime"`
	Bytes int    `json:"bytes"`
}

// Status is the session snapshot served to the view layer.
type Status struct {
	Products       []AssetInfo           `json:"products"`
	Style          *AssetInfo            `json:"style,omitempty"`
	Analyzing      bool                  `json:"analyzing"`
	Analysis       *domain.StyleAnalysis `json:"analysis,omitempty"`
	Settings       domain.Settings       `json:"settings"`
	Busy           bool                  `json:"busy"`
	LoadingMessage string                `json:"loading_message,omitempty"`
	ActiveID       string                `json:"active_id,omitempty"`
	Concept        string                `json:"creative_concept,omitempty"`
	Suggestions    []string              `json:"suggestions"`
	LibrarySize    int                   `json:"library_size"`
}

// Status snapshots the session for the view layer.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := Status{
		Products:       make([]AssetInfo, 0, len(s.products)),
		Analyzing:      s.analyzing,
		Settings:       s.settings,
		Busy:           s.busy,
		LoadingMessage: s.loadingMessage,
		ActiveID:       s.activeID,
		Concept:        s.concept,
		Suggestions:    append([]string(nil), s.suggestions...),
		LibrarySize:    s.library.Len(),
	}
	for _, p := range s.products {
		status.Products = append(status.Products, assetInfo(p))
	}
	if s.style != nil {
		info := assetInfo(*s.style)
		status.Style = &info
	}
	if s.analysis != nil {
		analysis := *s.analysis
		status.Analysis = &analysis
	}
	return status
}

func assetInfo(a domain.Asset) AssetInfo {
	return AssetInfo{ID: a.ID, Name: a.Name, MIME: a.MIME, Bytes: len(a.Data)}
}
