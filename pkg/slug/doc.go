// Package slug turns arbitrary text into ASCII identifiers safe for file names and URLs.
//
// Latin diacritics are folded to their base letters and every run of other
// characters becomes a single separator:
//
//	slug.Make("Hello, World!")           // "hello-world"
//	slug.Make("Aïcha N'Diaye", slug.Separator("_")) // "aicha_n_diaye"
//	slug.Make("Product Name", slug.Lowercase(false)) // "Product-Name"
//	slug.Make("Very long title", slug.MaxLength(9))  // "very-long"
//
// Characters outside the Latin script (Cyrillic, CJK, etc.) are treated as separators.
package slug
