package compare

// Well-known service UUIDs the app resolved before the SIG tables were
// converted.
var wellKnownServices = []string{
	"1800", "1801", "1802", "1803", "1804", "1805", "1806", "1807",
	"1808", "1809", "180a", "180d", "180e", "180f", "1810", "1811",
	"1812", "1813", "1814", "1815", "1816", "1818", "1819", "181a",
	"181b", "181c", "181d", "181e", "181f", "1820", "1821", "1822",
	"1823", "1824", "1825", "1826", "1827", "1828", "1829",
}

// Well-known characteristic UUIDs, same origin as wellKnownServices.
var wellKnownCharacteristics = []string{
	"2a00", "2a01", "2a02", "2a03", "2a04", "2a05", "2a06", "2a07",
	"2a08", "2a09", "2a0a", "2a0c", "2a0d", "2a0e", "2a0f", "2a11",
	"2a12", "2a13", "2a14", "2a16", "2a17", "2a18", "2a19", "2a1c",
	"2a1d", "2a1e", "2a21", "2a22", "2a23", "2a24", "2a25", "2a26",
	"2a27", "2a28", "2a29", "2a2a", "2a2b", "2a31", "2a32", "2a33",
	"2a34", "2a35", "2a36", "2a37", "2a38", "2a39", "2a3a", "2a3b",
	"2a3c", "2a3d", "2a3e", "2a3f", "2a40", "2a41", "2a42", "2a43",
	"2a44", "2a45", "2a46", "2a47", "2a48", "2a49", "2a4a", "2a4b",
	"2a4c", "2a4d", "2a4e", "2a4f", "2a50", "2a51", "2a52", "2a53",
	"2a54", "2a55",
}

// Category is one converted file checked by the report.
type Category struct {
	// Name is the plural noun used in the report, e.g. "services".
	Name string
	File string

	// Baseline is the set of keys known before conversion. Empty means
	// the whole file is a new capability.
	Baseline []string
}

// Categories returns the categories in report order.
func Categories() []Category {
	return []Category{
		{Name: "services", File: "sig_services.json", Baseline: wellKnownServices},
		{Name: "characteristics", File: "sig_characteristics.json", Baseline: wellKnownCharacteristics},
		{Name: "descriptors", File: "sig_descriptors.json"},
		{Name: "company identifiers", File: "sig_company_identifiers.json"},
	}
}
