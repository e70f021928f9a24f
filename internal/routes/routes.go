package routes

const (
	// Health
	Health = "/health"

	// Anonymous session bootstrap
	Session = "/api/v1/session"

	// Entries
	Entries       = "/api/v1/entries"
	EntryByID     = "/api/v1/entries/{id}"
	EntryLookup   = "/api/v1/entries/lookup"
	EntriesImport = "/api/v1/entries/import"

	// Page session intents
	PageNext    = "/api/v1/entries/page/next"
	PagePrev    = "/api/v1/entries/page/prev"
	PageRefresh = "/api/v1/entries/page/refresh"
	PageReset   = "/api/v1/entries/page/reset"
	PageSize    = "/api/v1/entries/page/size"

	// Autocomplete candidate pools
	Properties    = "/api/v1/properties"
	PropertyUnits = "/api/v1/properties/units"

	// AI-backed suggestions
	AutocompletePropertyName = "/api/v1/autocomplete/property-name"
	AutocompleteUnitNumbers  = "/api/v1/autocomplete/unit-numbers"
)
