// Package phoneme holds the static IPA reference inventory.
// The catalog is fixed at compile time; nothing here is created or
// destroyed at runtime.
package phoneme

// Category groups IPA symbols by articulatory class.
type Category string

const (
	CategoryPulmonic        Category = "pulmonic"
	CategoryNonPulmonic     Category = "non_pulmonic"
	CategoryVowel           Category = "vowel"
	CategoryExtIPA          Category = "ext_ipa"
	CategoryDiacritic       Category = "diacritic"
	CategorySuprasegmental  Category = "suprasegmental"
)

// Phoneme is one immutable catalog entry.
type Phoneme struct {
	Symbol      string   `json:"symbol"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Example     string   `json:"example"`
}

var catalog = []Phoneme{
	// Pulmonic consonants
	{"p", CategoryPulmonic, "voiceless bilabial plosive", "pen"},
	{"b", CategoryPulmonic, "voiced bilabial plosive", "bat"},
	{"t", CategoryPulmonic, "voiceless alveolar plosive", "top"},
	{"d", CategoryPulmonic, "voiced alveolar plosive", "dog"},
	{"ʈ", CategoryPulmonic, "voiceless retroflex plosive", "Hindi ṭal"},
	{"ɖ", CategoryPulmonic, "voiced retroflex plosive", "Hindi ḍal"},
	{"c", CategoryPulmonic, "voiceless palatal plosive", "Hungarian tyúk"},
	{"ɟ", CategoryPulmonic, "voiced palatal plosive", "Hungarian gyár"},
	{"k", CategoryPulmonic, "voiceless velar plosive", "cat"},
	{"g", CategoryPulmonic, "voiced velar plosive", "go"},
	{"q", CategoryPulmonic, "voiceless uvular plosive", "Arabic qalb"},
	{"ɢ", CategoryPulmonic, "voiced uvular plosive", "Inuktitut -rniq"},
	{"ʔ", CategoryPulmonic, "glottal stop", "uh-oh"},
	{"m", CategoryPulmonic, "bilabial nasal", "man"},
	{"ɱ", CategoryPulmonic, "labiodental nasal", "symphony"},
	{"n", CategoryPulmonic, "alveolar nasal", "no"},
	{"ɳ", CategoryPulmonic, "retroflex nasal", "Hindi gaṇa"},
	{"ɲ", CategoryPulmonic, "palatal nasal", "Spanish año"},
	{"ŋ", CategoryPulmonic, "velar nasal", "sing"},
	{"ɴ", CategoryPulmonic, "uvular nasal", "Japanese san"},
	{"ʙ", CategoryPulmonic, "bilabial trill", "brrr"},
	{"r", CategoryPulmonic, "alveolar trill", "Spanish perro"},
	{"ʀ", CategoryPulmonic, "uvular trill", "French rue (some speakers)"},
	{"ɾ", CategoryPulmonic, "alveolar tap", "American English butter"},
	{"ɸ", CategoryPulmonic, "voiceless bilabial fricative", "Japanese fu"},
	{"β", CategoryPulmonic, "voiced bilabial fricative", "Spanish haber"},
	{"f", CategoryPulmonic, "voiceless labiodental fricative", "fan"},
	{"v", CategoryPulmonic, "voiced labiodental fricative", "van"},
	{"θ", CategoryPulmonic, "voiceless dental fricative", "thin"},
	{"ð", CategoryPulmonic, "voiced dental fricative", "this"},
	{"s", CategoryPulmonic, "voiceless alveolar fricative", "see"},
	{"z", CategoryPulmonic, "voiced alveolar fricative", "zoo"},
	{"ʃ", CategoryPulmonic, "voiceless postalveolar fricative", "she"},
	{"ʒ", CategoryPulmonic, "voiced postalveolar fricative", "measure"},
	{"ʂ", CategoryPulmonic, "voiceless retroflex fricative", "Mandarin shī"},
	{"ʐ", CategoryPulmonic, "voiced retroflex fricative", "Mandarin rì"},
	{"ç", CategoryPulmonic, "voiceless palatal fricative", "German ich"},
	{"ʝ", CategoryPulmonic, "voiced palatal fricative", "Spanish ayer (some dialects)"},
	{"x", CategoryPulmonic, "voiceless velar fricative", "Scottish loch"},
	{"ɣ", CategoryPulmonic, "voiced velar fricative", "Greek gamma"},
	{"χ", CategoryPulmonic, "voiceless uvular fricative", "German Bach"},
	{"ʁ", CategoryPulmonic, "voiced uvular fricative", "French rouge"},
	{"ħ", CategoryPulmonic, "voiceless pharyngeal fricative", "Arabic ḥāl"},
	{"ʕ", CategoryPulmonic, "voiced pharyngeal fricative", "Arabic ʿayn"},
	{"h", CategoryPulmonic, "voiceless glottal fricative", "hat"},
	{"ɦ", CategoryPulmonic, "voiced glottal fricative", "Czech hora"},
	{"ɬ", CategoryPulmonic, "voiceless lateral fricative", "Welsh llan"},
	{"ɮ", CategoryPulmonic, "voiced lateral fricative", "Zulu dla"},
	{"ʋ", CategoryPulmonic, "labiodental approximant", "Dutch wang"},
	{"ɹ", CategoryPulmonic, "alveolar approximant", "red"},
	{"ɻ", CategoryPulmonic, "retroflex approximant", "Mandarin rén"},
	{"j", CategoryPulmonic, "palatal approximant", "yes"},
	{"ɰ", CategoryPulmonic, "velar approximant", "Spanish agua (fast speech)"},
	{"l", CategoryPulmonic, "alveolar lateral approximant", "let"},
	{"ɭ", CategoryPulmonic, "retroflex lateral approximant", "Tamil puḷi"},
	{"ʎ", CategoryPulmonic, "palatal lateral approximant", "Italian figlio"},
	{"ʟ", CategoryPulmonic, "velar lateral approximant", "Mid-Wahgi aglagle"},
	{"w", CategoryPulmonic, "labio-velar approximant", "wet"},
	{"t͡ʃ", CategoryPulmonic, "voiceless postalveolar affricate", "church"},
	{"d͡ʒ", CategoryPulmonic, "voiced postalveolar affricate", "judge"},
	{"t͡s", CategoryPulmonic, "voiceless alveolar affricate", "cats"},
	{"d͡z", CategoryPulmonic, "voiced alveolar affricate", "Italian zero"},

	// Non-pulmonic consonants
	{"ʘ", CategoryNonPulmonic, "bilabial click", "ǂʼAmkoe ʘoa"},
	{"ǀ", CategoryNonPulmonic, "dental click", "tsk-tsk"},
	{"ǃ", CategoryNonPulmonic, "alveolar click", "Zulu iqaqa"},
	{"ǂ", CategoryNonPulmonic, "palatoalveolar click", "Khoekhoe ǂgā"},
	{"ǁ", CategoryNonPulmonic, "lateral click", "clucking to a horse"},
	{"ɓ", CategoryNonPulmonic, "voiced bilabial implosive", "Swahili mbwa"},
	{"ɗ", CategoryNonPulmonic, "voiced alveolar implosive", "Swahili ndoto"},
	{"ʄ", CategoryNonPulmonic, "voiced palatal implosive", "Swahili jana"},
	{"ɠ", CategoryNonPulmonic, "voiced velar implosive", "Sindhi g̈a"},
	{"ʛ", CategoryNonPulmonic, "voiced uvular implosive", "Mam q̈a"},
	{"pʼ", CategoryNonPulmonic, "bilabial ejective", "Georgian p'iri"},
	{"tʼ", CategoryNonPulmonic, "alveolar ejective", "Navajo t'áá"},
	{"kʼ", CategoryNonPulmonic, "velar ejective", "Amharic k'ey"},
	{"sʼ", CategoryNonPulmonic, "alveolar ejective fricative", "Tlingit s'é"},

	// Vowels
	{"i", CategoryVowel, "close front unrounded", "see"},
	{"y", CategoryVowel, "close front rounded", "French tu"},
	{"ɨ", CategoryVowel, "close central unrounded", "Russian ты"},
	{"ʉ", CategoryVowel, "close central rounded", "Swedish hus"},
	{"ɯ", CategoryVowel, "close back unrounded", "Turkish ı"},
	{"u", CategoryVowel, "close back rounded", "boot"},
	{"ɪ", CategoryVowel, "near-close front unrounded", "bit"},
	{"ʏ", CategoryVowel, "near-close front rounded", "German hübsch"},
	{"ʊ", CategoryVowel, "near-close back rounded", "book"},
	{"e", CategoryVowel, "close-mid front unrounded", "Spanish pero"},
	{"ø", CategoryVowel, "close-mid front rounded", "French deux"},
	{"ɘ", CategoryVowel, "close-mid central unrounded", "Australian English bird"},
	{"ɵ", CategoryVowel, "close-mid central rounded", "Dutch hut"},
	{"ɤ", CategoryVowel, "close-mid back unrounded", "Mandarin gē"},
	{"o", CategoryVowel, "close-mid back rounded", "Spanish no"},
	{"ə", CategoryVowel, "mid central (schwa)", "about"},
	{"ɛ", CategoryVowel, "open-mid front unrounded", "bed"},
	{"œ", CategoryVowel, "open-mid front rounded", "French sœur"},
	{"ɜ", CategoryVowel, "open-mid central unrounded", "bird (British)"},
	{"ɞ", CategoryVowel, "open-mid central rounded", "Irish tomhail"},
	{"ʌ", CategoryVowel, "open-mid back unrounded", "cup"},
	{"ɔ", CategoryVowel, "open-mid back rounded", "thought"},
	{"æ", CategoryVowel, "near-open front unrounded", "cat"},
	{"ɐ", CategoryVowel, "near-open central", "German kommer"},
	{"a", CategoryVowel, "open front unrounded", "Spanish casa"},
	{"ɶ", CategoryVowel, "open front rounded", "Danish grøn (some speakers)"},
	{"ɑ", CategoryVowel, "open back unrounded", "father"},
	{"ɒ", CategoryVowel, "open back rounded", "British lot"},

	// extIPA
	{"ʪ", CategoryExtIPA, "voiceless lateralized alveolar fricative", "lisped s"},
	{"ʫ", CategoryExtIPA, "voiced lateralized alveolar fricative", "lisped z"},
	{"ꞎ", CategoryExtIPA, "voiceless retroflex lateral fricative", "disordered speech"},
	{"ʩ", CategoryExtIPA, "velopharyngeal fricative", "disordered speech"},
	{"ʭ", CategoryExtIPA, "bidental percussive", "teeth gnashing"},

	// Diacritics
	{"ʰ", CategoryDiacritic, "aspirated", "pʰ in pin"},
	{"ʷ", CategoryDiacritic, "labialized", "kʷ in quick"},
	{"ʲ", CategoryDiacritic, "palatalized", "Russian nʲet"},
	{"ˠ", CategoryDiacritic, "velarized", "Irish lˠ"},
	{"ˤ", CategoryDiacritic, "pharyngealized", "Arabic emphatic tˤ"},
	{"̃", CategoryDiacritic, "nasalized", "French bon"},
	{"̥", CategoryDiacritic, "voiceless", "devoiced vowel"},
	{"̬", CategoryDiacritic, "voiced", "voiced consonant"},
	{"ː", CategoryDiacritic, "long", "Japanese obāsan"},
	{"̆", CategoryDiacritic, "extra-short", "reduced vowel"},

	// Suprasegmentals
	{"ˈ", CategorySuprasegmental, "primary stress", "ˈhappy"},
	{"ˌ", CategorySuprasegmental, "secondary stress", "ˌunderˈstand"},
	{".", CategorySuprasegmental, "syllable break", "pa.ta"},
	{"˥", CategorySuprasegmental, "extra-high tone", "Mandarin tone 1"},
	{"˧", CategorySuprasegmental, "mid tone", "Yoruba mid tone"},
	{"˩", CategorySuprasegmental, "low tone", "Cantonese tone 4"},
	{"˩˥", CategorySuprasegmental, "rising tone", "Mandarin tone 2"},
	{"˥˩", CategorySuprasegmental, "falling tone", "Mandarin tone 4"},
}

var bySymbol = func() map[string]Phoneme {
	m := make(map[string]Phoneme, len(catalog))
	for _, p := range catalog {
		m[p.Symbol] = p
	}
	return m
}()

// Catalog returns the full inventory in display order. The returned slice
// is a copy; callers may not mutate the catalog through it.
func Catalog() []Phoneme {
	out := make([]Phoneme, len(catalog))
	copy(out, catalog)
	return out
}

// ByCategory returns the catalog entries for one category, in display order.
func ByCategory(c Category) []Phoneme {
	var out []Phoneme
	for _, p := range catalog {
		if p.Category == c {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns all categories in chart order.
func Categories() []Category {
	return []Category{
		CategoryPulmonic,
		CategoryNonPulmonic,
		CategoryVowel,
		CategoryExtIPA,
		CategoryDiacritic,
		CategorySuprasegmental,
	}
}

// Lookup returns the catalog entry for a symbol.
func Lookup(symbol string) (Phoneme, bool) {
	p, ok := bySymbol[symbol]
	return p, ok
}

// Known reports whether the symbol is part of the inventory.
func Known(symbol string) bool {
	_, ok := bySymbol[symbol]
	return ok
}

// FilterKnown drops symbols not present in the catalog and removes
// duplicates, preserving first-seen order. Used to sanitize phoneme lists
// coming back from the model.
func FilterKnown(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	var out []string
	for _, s := range symbols {
		if s == "" || seen[s] || !Known(s) {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
