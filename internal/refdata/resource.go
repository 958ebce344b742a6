// Package refdata reads the optional reference-data REST services (colors,
// date formats, postal facilities, publications and so on). Every resource
// is a paginated GET returning {count, next, previous, results}.
package refdata

import (
	"strings"
)

// Resource names one reference-data endpoint.
type Resource string

const (
	Colors                   Resource = "colors"
	DateFormats              Resource = "date-formats"
	FramingStyles            Resource = "framing-styles"
	LetteringStyles          Resource = "lettering-styles"
	PostalFacilities         Resource = "postal-facilities"
	PostalFacilityIdentities Resource = "postal-facility-identities"
	PostcoverImages          Resource = "postcover-images"
	Postcovers               Resource = "postcovers"
	PostmarkImages           Resource = "postmark-images"
	PostmarkShapes           Resource = "postmark-shapes"
	PostmarkValuations       Resource = "postmark-valuations"
	PublicationReferences    Resource = "publication-references"
	Publications             Resource = "publications"
	Postmarks                Resource = "postmarks"
)

// Resources lists every known resource.
var Resources = []Resource{
	Colors, DateFormats, FramingStyles, LetteringStyles,
	PostalFacilities, PostalFacilityIdentities, PostcoverImages, Postcovers,
	PostmarkImages, PostmarkShapes, PostmarkValuations,
	PublicationReferences, Publications, Postmarks,
}

// ParseResource returns the resource named s.
func ParseResource(s string) (Resource, bool) {
	r := Resource(strings.ToLower(strings.TrimSpace(s)))
	return r, r.Valid()
}

func (r Resource) Valid() bool {
	for _, known := range Resources {
		if r == known {
			return true
		}
	}
	return false
}

// Path is the API path of the resource, "/api/<name>".
func (r Resource) Path() string {
	return "/api/" + string(r)
}

// EnvKey is the environment variable holding the resource's base URL, such
// as WORLDCOVERS_POSTAL_FACILITIES_API_URL.
func (r Resource) EnvKey() string {
	return "WORLDCOVERS_" + strings.ToUpper(strings.ReplaceAll(string(r), "-", "_")) + "_API_URL"
}

// IsOption reports whether the resource feeds a dropdown and is normalized
// to options.Option.
func (r Resource) IsOption() bool {
	switch r {
	case Colors, DateFormats, FramingStyles, LetteringStyles, PostalFacilities, PostmarkShapes:
		return true
	default:
		return false
	}
}

// ResolveURL turns a configured base into the request URL for r. Trailing
// slashes are trimmed, the resource path is appended unless base already
// ends with it, and the result always ends in "/". A blank base means the
// resource is not configured.
func ResolveURL(base string, r Resource) (string, bool) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return "", false
	}
	if !strings.HasSuffix(base, r.Path()) {
		base += r.Path()
	}
	return base + "/", true
}
