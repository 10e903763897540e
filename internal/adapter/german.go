package adapter

import (
	"log/slog"

	"github.com/thornvik/juricore/internal/citation"
	"github.com/thornvik/juricore/internal/models"
	"github.com/thornvik/juricore/internal/store"
)

// German is the jurisdiction adapter for German federal law: the only
// adapter this spec exercises in depth (Swedish/Norwegian exist only
// at the Citation Grammar layer, proving the interface generalizes,
// not as full Adapter implementations).
type German struct {
	store   *store.Store
	grammar citation.Grammar
	logger  *slog.Logger

	ingestionBinary string
}

// Config bundles German's construction-time dependencies.
type Config struct {
	Store           *store.Store
	IngestionBinary string
	Logger          *slog.Logger
}

// NewGerman wires a Store and the German Citation Grammar behind the
// Adapter interface. The grammar comes from citation.For("de") rather
// than a literal citation.German{} so the adapter always tracks
// whatever grammar is registered for its own jurisdiction code.
func NewGerman(cfg Config) *German {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &German{
		store:           cfg.Store,
		grammar:         citation.For("de"),
		logger:          logger,
		ingestionBinary: cfg.IngestionBinary,
	}
}

var _ Adapter = (*German)(nil)

func (a *German) Code() string { return "de" }

// Descriptor returns the static contract (spec §3): which operations
// this adapter exposes at all, independent of what the current Store
// snapshot can actually serve.
func (a *German) Descriptor() models.AdapterDescriptor {
	return models.AdapterDescriptor{
		JurisdictionCode: "de",
		Name:             "Germany",
		DefaultLanguage:  "de",
		Sources: []string{
			"gesetze-im-internet.de",
			"rechtsprechung-im-internet.de",
			"dip.bundestag.de",
		},
		Flags: models.AdapterFlags{
			Documents:        true,
			CaseLaw:          true,
			PreparatoryWorks: true,
			Citations:        true,
			Formatting:       true,
			Currency:         true,
			LegalStance:      true,
			Eu:               true,
			Ingestion:        a.ingestionBinary != "",
		},
	}
}

// Capabilities delegates to the Store's runtime Capability Set
// (spec §3: "runtime Capability Set is the availability"). With no
// Store, or an unopened one, the set is empty, and the Shell answers
// the runtime-gated tools with an upgrade notice. This adapter's own
// methods decide on the seed-data fallback through storeAvailable.
func (a *German) Capabilities() models.CapabilitySet {
	if a.store == nil {
		return models.CapabilitySet{}
	}
	return a.store.Capabilities()
}

// storeAvailable reports whether the wired Store has an open corpus
// file, the precise "unavailable vs empty" distinction §9's Open
// Question resolves to: seed data is a fallback for a missing Store,
// never a substitute for a legitimate zero-row result.
func (a *German) storeAvailable() bool {
	return a.store != nil && a.store.Present()
}

// seedDocuments is the minimal in-memory fixture used when the Store
// is unavailable, so read operations keep returning *something*
// demonstrably correct rather than failing outright (spec §9: "Store
// ... unavailable, so adapters can fall back to in-memory seed data").
// It deliberately mirrors the shape real corpus rows take, including
// an EU cross-reference a caller can exercise get_eu_basis against
// without a live database.
var seedDocuments = []models.Document{
	{
		ID:            "seed:bdsg:1",
		Jurisdiction:  "de",
		Kind:          models.KindStatute,
		Title:         "BDSG § 1 Anwendungsbereich",
		Citation:      "§ 1 BDSG",
		SourceURL:     "https://www.gesetze-im-internet.de/bdsg_2018/__1.html",
		EffectiveDate: "2018-05-25",
		TextSnippet: "Dieses Gesetz gilt fuer die Verarbeitung personenbezogener Daten durch " +
			"oeffentliche und nichtoeffentliche Stellen, soweit die Verordnung (EU) 2016/679 " +
			"zur Anwendung kommt.",
		Metadata: map[string]any{"statute_id": "bdsg", "section_ref": "1"},
	},
	{
		ID:            "seed:bgb:823",
		Jurisdiction:  "de",
		Kind:          models.KindStatute,
		Title:         "BGB § 823 Schadensersatzpflicht",
		Citation:      "§ 823 BGB",
		SourceURL:     "https://www.gesetze-im-internet.de/bgb/__823.html",
		EffectiveDate: "1900-01-01",
		TextSnippet:   "Wer vorsaetzlich oder fahrlaessig das Leben, den Koerper ... eines anderen verletzt.",
		Metadata:      map[string]any{"statute_id": "bgb", "section_ref": "823"},
	},
	{
		ID:            "seed:gg:1",
		Jurisdiction:  "de",
		Kind:          models.KindStatute,
		Title:         "Grundgesetz Art. 1 Menschenwuerde",
		Citation:      "Art. 1 GG",
		SourceURL:     "https://www.gesetze-im-internet.de/gg/art_1.html",
		EffectiveDate: "1949-05-23",
		TextSnippet:   "Die Wuerde des Menschen ist unantastbar.",
		Metadata:      map[string]any{"statute_id": "gg", "section_ref": "1"},
	},
}
