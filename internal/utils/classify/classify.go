package classify

import "strings"

// DefaultCategory is returned when no keyword matches the description.
const DefaultCategory = "Lainnya"

// categoryKeywords maps a category to the substrings that select it. The
// table is ordered: the first category with a matching keyword wins, so
// entries earlier in the slice take precedence.
var categoryKeywords = []struct {
	category string
	keywords []string
}{
	{"Makanan", []string{"makan", "nasi", "restoran", "warung", "kafe", "bakso", "sate", "goreng", "minum", "kopi", "jajan"}},
	{"Transportasi", []string{"grab", "gojek", "ojek", "taxi", "bensin", "parkir", "tol", "kereta", "bus", "angkot"}},
	{"Belanja", []string{"belanja", "supermarket", "mall", "swalayan", "minimarket", "indomaret", "alfamart"}},
	{"Hiburan", []string{"nonton", "bioskop", "game", "netflix", "spotify", "youtube", "tiket"}},
	{"Tagihan", []string{"listrik", "air", "pdam", "pln", "wifi", "internet", "telepon", "pulsa", "paket data"}},
	{"Kesehatan", []string{"obat", "dokter", "rumah sakit", "apotek", "klinik", "checkup", "vitamin"}},
	{"Pendidikan", []string{"sekolah", "kuliah", "buku", "kursus", "les", "pendidikan"}},
	{"Fashion", []string{"baju", "celana", "sepatu", "tas", "aksesoris", "fashion"}},
	{"Gaji", []string{"gaji", "salary", "income", "pendapatan"}},
}

// Categorize maps a free-text description to a category label using
// case-insensitive substring matching. It is deterministic and stateless;
// an empty or unmatched description yields DefaultCategory.
func Categorize(description string) string {
	if description == "" {
		return DefaultCategory
	}

	lower := strings.ToLower(description)
	for _, entry := range categoryKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.category
			}
		}
	}

	return DefaultCategory
}

// Categories returns the known category labels in precedence order,
// ending with the fallback.
func Categories() []string {
	out := make([]string, 0, len(categoryKeywords)+1)
	for _, entry := range categoryKeywords {
		out = append(out, entry.category)
	}
	return append(out, DefaultCategory)
}
