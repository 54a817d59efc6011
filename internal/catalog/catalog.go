// Package catalog provides the read-only materials price catalog.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/jonathan/renovation-quoter/internal/schemas"
	"github.com/jonathan/renovation-quoter/internal/types"
)

//go:embed materials.json
var defaultMaterials []byte

// Catalog maps material keys to catalog entries. It is loaded once and never mutated.
type Catalog map[string]types.MaterialInfo

// Default returns the built-in catalog
func Default() Catalog {
	cat, err := Parse(defaultMaterials)
	if err != nil {
		panic(fmt.Sprintf("embedded materials catalog is invalid: %v", err))
	}
	return cat
}

// Load reads and validates a catalog file
func Load(path string) (Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "failed to read file", Cause: err}
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "invalid catalog", Cause: err}
	}
	return cat, nil
}

// Parse decodes a catalog document after validating it against the catalog schema
func Parse(data []byte) (Catalog, error) {
	if err := schemas.ValidateJSONString(mustSchema(), string(data)); err != nil {
		return nil, err
	}

	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
	}
	return cat, nil
}

func mustSchema() string {
	schema, err := schemas.Schema(schemas.Catalog)
	if err != nil {
		panic(err)
	}
	return schema
}

// Lookup returns the entry for a material key
func (c Catalog) Lookup(key string) (types.MaterialInfo, error) {
	info, ok := c[key]
	if !ok {
		return types.MaterialInfo{}, &UnknownMaterialError{Key: key}
	}
	return info, nil
}

// UnitPrice returns the base unit price of a material in a city. There is no
// fallback city: a missing price is an error.
func UnitPrice(info types.MaterialInfo, city string) (float64, error) {
	price, ok := info.BasePrice[city]
	if !ok {
		return 0, &MissingCityPriceError{Material: info.Name, City: city}
	}
	return price, nil
}

// Keys returns the material keys in sorted order
func (c Catalog) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
