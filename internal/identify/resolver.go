// Package identify normalizes raw hardware descriptors into canonical
// controller-catalog names.
package identify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rmrfslashbin/padbind/internal/catalog"
)

// stringsContains wraps strings.Contains so rules.go reads as data.
func stringsContains(s, substr string) bool {
	return strings.Contains(s, substr)
}

var (
	vendorPattern  = regexp.MustCompile(`Vendor:\s*([0-9a-fA-F]{4})`)
	productPattern = regexp.MustCompile(`Product:\s*([0-9a-fA-F]{4})`)
)

// Identity is the result of a successful identification: the bare
// canonical name and a button-count-suffixed variant, so hardware with
// multiple physical configurations can hold distinct profiles.
type Identity struct {
	Name          string
	Disambiguated string
}

// Resolver turns raw device descriptors into catalog identities.
type Resolver struct {
	catalog *catalog.Catalog
	db      *VendorDB
}

// NewResolver builds a resolver over a loaded catalog and vendor database.
func NewResolver(cat *catalog.Catalog, db *VendorDB) *Resolver {
	return &Resolver{catalog: cat, db: db}
}

// Identify resolves a raw identifier string plus reported button and axis
// counts. A nil result means the device should be ignored entirely, either
// because it matched a known-bad pattern or because the vendor database
// marks it invalid. Identification never fails for unrecognized hardware:
// the raw id itself becomes the fallback identity.
//
// Precedence, first match wins:
//  1. known-bad duplicate filter
//  2. special-case (vendor, product, buttons) overrides
//  3. vendor/product database lookup
//  4. free-text heuristic rules, in table order
//  5. raw id as fallback identity
func (r *Resolver) Identify(rawID string, buttons, axes int) *Identity {
	lower := strings.ToLower(rawID)

	for _, pattern := range rejectPatterns {
		if strings.Contains(lower, pattern) {
			return nil
		}
	}

	if vendor, product, ok := extractCodes(rawID); ok {
		for _, o := range overrides {
			if o.vendor == vendor && o.product == product && o.buttons == buttons {
				if r.catalog.Has(o.name) {
					return r.identity(o.name, buttons)
				}
			}
		}
		if name, ok := r.db.Lookup(vendor, product); ok {
			if name == Invalid {
				return nil
			}
			// An unknown catalog name falls through to the heuristics
			// rather than failing the identification.
			if r.catalog.Has(name) {
				return r.identity(name, buttons)
			}
		}
	}

	for _, rule := range heuristics {
		if rule.match(lower, buttons) {
			return r.identity(rule.name(lower, buttons), buttons)
		}
	}

	return r.identity(rawID, buttons)
}

// extractCodes pulls the 4-hex-digit vendor and product tokens out of a
// raw id. Both must be present; a partial match degrades to the heuristic
// path.
func extractCodes(rawID string) (vendor, product string, ok bool) {
	v := vendorPattern.FindStringSubmatch(rawID)
	p := productPattern.FindStringSubmatch(rawID)
	if v == nil || p == nil {
		return "", "", false
	}
	return strings.ToLower(v[1]), strings.ToLower(p[1]), true
}

func (r *Resolver) identity(name string, buttons int) *Identity {
	return &Identity{
		Name:          name,
		Disambiguated: fmt.Sprintf("%s (%d buttons)", name, buttons),
	}
}
