package catalog

import _ "embed"

// fallbackCatalogJSON is the catalog used when the store holds no catalog.
//
//go:embed data/fallback.json
var fallbackCatalogJSON []byte
