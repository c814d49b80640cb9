// Command inflags trains and applies the reversible case-flag and
// diacritic-flag codecs.
//
// Train a case vocabulary, then encode and decode:
//
//	inflags case train --vocab vocab.json corpus.txt
//	inflags case encode --vocab vocab.json input.txt encoded.txt
//	inflags case decode --vocab vocab.json encoded.txt restored.txt
//
// The diacritic codec works the same way under "inflags dia"; its
// training accepts a comma-separated list of Unicode combining-mark
// names via --diacritics.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := NewCLI().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inflags: %v\n", err)
		os.Exit(1)
	}
}
