// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package book

import "strconv"

// romanOrdinals covers generations 0-19 (chapter ordinals I-XX).
var romanOrdinals = [...]string{
	"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X",
	"XI", "XII", "XIII", "XIV", "XV", "XVI", "XVII", "XVIII", "XIX", "XX",
}

// ordinalLabel returns the chapter ordinal for a generation: a roman
// numeral for the first twenty generations, the decimal generation+1
// beyond that.
func ordinalLabel(generation int) string {
	if generation >= 0 && generation < len(romanOrdinals) {
		return romanOrdinals[generation]
	}
	return strconv.Itoa(generation + 1)
}
