package metar

import (
	"fmt"
	"regexp"
	"strconv"
)

// cloudHeightFactor scales the three-digit cloud-base group.
const cloudHeightFactor = 30

var (
	skyLayerRe    = regexp.MustCompile(`^(BKN|FEW|OVC|SCT)(\d{3})(CB|TCU|///)?$`)
	skyVerticalRe = regexp.MustCompile(`^VV(\d{3}|///)$`)
)

var cloudTypes = map[string]string{
	"":    "",
	"CB":  "cumulonimbus ",
	"TCU": "towering cumulus ",
	"///": "",
}

// SkyCondition is the English description of a sky-condition group.
type SkyCondition string

// ParseSkyCondition reads a sky-condition group: "NSC", "CLR", "FEW030",
// "OVC020CB" or "VV005".
func ParseSkyCondition(s string) (SkyCondition, bool) {
	switch s {
	case "NSC", "NCD":
		return "No significant cloud", true
	case "CLR", "SKC":
		return "Clear skies", true
	}

	if m := skyLayerRe.FindStringSubmatch(s); m != nil {
		height, err := strconv.Atoi(m[2])
		if err != nil {
			return "", false
		}
		height *= cloudHeightFactor
		kind := cloudTypes[m[3]]

		var text string
		switch m[1] {
		case "BKN":
			text = fmt.Sprintf("Broken %scloud at %d", kind, height)
		case "FEW":
			text = fmt.Sprintf("Few %sclouds at %d", kind, height)
		case "OVC":
			text = fmt.Sprintf("Overcast %sat %d", kind, height)
		case "SCT":
			text = fmt.Sprintf("Scattered %scloud at %d", kind, height)
		}
		return SkyCondition(text), true
	}

	if m := skyVerticalRe.FindStringSubmatch(s); m != nil {
		if m[1] == "///" {
			return "Vertical visibility unknown", true
		}
		height, err := strconv.Atoi(m[1])
		if err != nil {
			return "", false
		}
		return SkyCondition(fmt.Sprintf("Vertical visibility %d", height)), true
	}

	return "", false
}

func (s SkyCondition) String() string { return string(s) }
