package catalog

import "fmt"

// UnknownMaterialError is returned when a material key is not in the catalog
type UnknownMaterialError struct {
	Key string
}

func (e *UnknownMaterialError) Error() string {
	return fmt.Sprintf("unknown material: %s", e.Key)
}

// MissingCityPriceError is returned when a material has no base price for a city
type MissingCityPriceError struct {
	Material string
	City     string
}

func (e *MissingCityPriceError) Error() string {
	return fmt.Sprintf("no base price for %s in %s", e.Material, e.City)
}

// LoadError represents a failure reading or decoding a catalog
type LoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load catalog %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load catalog %s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
