package evolution

import "strings"

var regionalSuffixes = []struct {
	suffix string
	region string
}{
	{"-alola", "Alola"},
	{"-galar", "Galar"},
	{"-hisui", "Hisui"},
	{"-paldea", "Paldea"},
}

// RegionalForm reports the display region of a species name carrying a
// regional suffix such as "raichu-alola".
func RegionalForm(name string) (string, bool) {
	for _, s := range regionalSuffixes {
		if strings.Contains(name, s.suffix) {
			return s.region, true
		}
	}
	return "", false
}
