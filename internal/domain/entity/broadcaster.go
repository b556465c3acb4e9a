package entity

// Broadcaster describes one public broadcaster for channel pickers:
// the catalog channel name, the 24-bit RGB brand color, and the short
// label used where the full name does not fit.
type Broadcaster struct {
	Name         string `json:"name"`
	BrandColor   int    `json:"brandColor"`
	Abbreviation string `json:"abbreviation"`
}

// broadcasters is the static table of channels carried by the Filmliste
// mirror network. Colors follow the broadcasters' published brand guides.
var broadcasters = []Broadcaster{
	{Name: "ARD", BrandColor: 0x003366, Abbreviation: "ARD"},
	{Name: "ZDF", BrandColor: 0xFA7D19, Abbreviation: "ZDF"},
	{Name: "3Sat", BrandColor: 0x333333, Abbreviation: "3sat"},
	{Name: "ARTE.DE", BrandColor: 0xF05A23, Abbreviation: "ARTE"},
	{Name: "ARTE.FR", BrandColor: 0xF05A23, Abbreviation: "ARTE"},
	{Name: "BR", BrandColor: 0x0066B3, Abbreviation: "BR"},
	{Name: "HR", BrandColor: 0x004B93, Abbreviation: "HR"},
	{Name: "KiKA", BrandColor: 0x85C441, Abbreviation: "KiKA"},
	{Name: "MDR", BrandColor: 0x00519E, Abbreviation: "MDR"},
	{Name: "NDR", BrandColor: 0x003B7E, Abbreviation: "NDR"},
	{Name: "ORF", BrandColor: 0x8C8C8C, Abbreviation: "ORF"},
	{Name: "PHOENIX", BrandColor: 0xFF6600, Abbreviation: "PHX"},
	{Name: "RBB", BrandColor: 0xAD1D24, Abbreviation: "RBB"},
	{Name: "SR", BrandColor: 0x009CDC, Abbreviation: "SR"},
	{Name: "SRF", BrandColor: 0xC8002D, Abbreviation: "SRF"},
	{Name: "SWR", BrandColor: 0xFF6600, Abbreviation: "SWR"},
	{Name: "WDR", BrandColor: 0x00355F, Abbreviation: "WDR"},
	{Name: "ZDF-tivi", BrandColor: 0x00AAE1, Abbreviation: "tivi"},
	{Name: "DW", BrandColor: 0x003366, Abbreviation: "DW"},
	{Name: "FUNK.net", BrandColor: 0xE10078, Abbreviation: "FUNK"},
	{Name: "Radio Bremen TV", BrandColor: 0x007BC4, Abbreviation: "RB"},
}

// Broadcasters returns the static broadcaster table. The returned slice is
// a copy; callers may reorder or filter it freely.
func Broadcasters() []Broadcaster {
	out := make([]Broadcaster, len(broadcasters))
	copy(out, broadcasters)
	return out
}

// BroadcasterByName looks up a broadcaster by its catalog channel name.
// The second return value reports whether the channel is known.
func BroadcasterByName(name string) (Broadcaster, bool) {
	for _, b := range broadcasters {
		if b.Name == name {
			return b, true
		}
	}
	return Broadcaster{}, false
}
