package textnorm

// GoldenCorpus returns the fixed set of inputs used to prove parity between
// this package and the database-side normalize_text() function. Both
// implementations must produce byte-identical output for every entry.
// Any divergence is release-blocking.
func GoldenCorpus() []string {
	return []string{
		"",
		" ",
		"IVISKIN G3",
		"IVISKIN G-3",
		"IVISKIN G.3",
		"IVISKIN G 3",
		"IVISKIN G  3",
		"IVISKIN G \t 3",
		"IVISKIN G \n 3",
		"iviskin g3",
		"G-3 vs G-4",
		"Er IVISKIN G3 bra?",
		"Blåtand høyttaler på kjøkkenet",
		"SÆRDELES   god  \t kaffetrakter\n",
		"Größe XL für Männer",
		"Çelik A-1 ÅgÅrd Ø.2",
		"X1  X-1  X.1  X 1",
		"phone2024 model-5 rev 7",
		"  leading and trailing  ",
		"punctuation, stays; intact! (mostly)",
		"ümlaut Über alles",
		"crème brûlée à la carte",
		"PRIS: 1.999,- for G4!",
	}
}
