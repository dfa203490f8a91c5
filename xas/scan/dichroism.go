package scan

import "strings"

// Dichroism labels the physical contrast probed by the difference of two
// scans.
type Dichroism int

const (
	// DichroismNone marks a pair whose metadata matches no known contrast.
	DichroismNone Dichroism = iota
	// XMCD is circular dichroism: a magnet field sign flip or an opposite
	// circular polarization pair.
	XMCD
	// XMLD is linear dichroism: horizontal versus vertical polarization.
	XMLD
)

// String returns the slug used to name derived containers.
func (d Dichroism) String() string {
	switch d {
	case XMCD:
		return "xmcd"
	case XMLD:
		return "xmld"
	default:
		return "difference"
	}
}

// Classify decides which dichroism the difference a - b measures. The field
// sign flip is checked first, then the polarization pairing; unmatched
// metadata yields DichroismNone rather than a guess.
func Classify(a, b Metadata) Dichroism {
	if a.MagField*b.MagField < 0 {
		return XMCD
	}

	pa, pb := strings.ToLower(a.Pol), strings.ToLower(b.Pol)
	if isCircular(pa) && isCircular(pb) && pa != pb {
		return XMCD
	}
	if isLinear(pa) && isLinear(pb) && pa != pb {
		return XMLD
	}
	return DichroismNone
}

func isCircular(pol string) bool {
	return pol == "pc" || pol == "nc"
}

func isLinear(pol string) bool {
	return pol == "lh" || pol == "lv"
}
