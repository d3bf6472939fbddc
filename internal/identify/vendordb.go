package identify

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

//go:embed data/vendors.json
var builtinVendorDB []byte

// Invalid is the sentinel mapped to devices that are known but
// intentionally ignored, such as a duplicate enumeration of a pad that is
// already connected through another interface.
const Invalid = "invalid"

// VendorDB maps vendor hex codes to product hex codes to canonical
// catalog names (or the Invalid sentinel).
type VendorDB struct {
	Vendors []string                     `json:"vendors"`
	Devices map[string]map[string]string `json:"devices"`
}

// LoadVendorDB reads and parses a vendor/product database from disk.
// Like the catalog, a missing or corrupt database is fatal to the caller.
func LoadVendorDB(path string) (*VendorDB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vendor database: %w", err)
	}
	return ParseVendorDB(data)
}

// LoadBuiltinVendorDB parses the database compiled into the binary.
func LoadBuiltinVendorDB() (*VendorDB, error) {
	return ParseVendorDB(builtinVendorDB)
}

// ParseVendorDB parses a vendor/product database document.
func ParseVendorDB(data []byte) (*VendorDB, error) {
	var db VendorDB
	if err := json.Unmarshal(data, &db); err != nil {
		return nil, fmt.Errorf("failed to parse vendor database: %w", err)
	}
	if db.Devices == nil {
		return nil, fmt.Errorf("vendor database has no devices")
	}
	return &db, nil
}

// Lookup returns the name for a vendor/product pair. Hex tokens are
// matched case-insensitively.
func (db *VendorDB) Lookup(vendor, product string) (string, bool) {
	products, ok := db.Devices[strings.ToLower(vendor)]
	if !ok {
		return "", false
	}
	name, ok := products[strings.ToLower(product)]
	return name, ok
}
