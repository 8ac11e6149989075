package citygen

import (
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Building blocks for fictional place names.
var (
	fakeCityPrefixes   = []string{"San", "Fort", "New", "Lake", "Port", "North", "South", "West", "East"}
	fakeCitySeparators = []string{" ", ""}
	fakeCityRoots      = []string{"ville", "burg", "caster", "ton", "polis", "ford", "ham", "mouth", "field"}
)

// capitalizedRoots holds fakeCityRoots with the first letter upper-cased
// and the rest lower-cased, e.g. "ville" -> "Ville".
var capitalizedRoots = sync.OnceValue(func() []string {
	caser := cases.Title(language.Und)
	roots := make([]string, len(fakeCityRoots))
	for i, r := range fakeCityRoots {
		roots[i] = caser.String(r)
	}
	return roots
})

// fakeCityNames is every name FakeCityName can produce.
var fakeCityNames = sync.OnceValue(func() map[string]struct{} {
	roots := capitalizedRoots()
	names := make(map[string]struct{}, len(fakeCityPrefixes)*len(fakeCitySeparators)*len(roots))
	for _, p := range fakeCityPrefixes {
		for _, sep := range fakeCitySeparators {
			for _, r := range roots {
				names[p+sep+r] = struct{}{}
			}
		}
	}
	return names
})

// FakeCityName synthesizes a place name such as "Port Ville" or "Northburg".
// Repeated calls may return the same name.
func (g *Generator) FakeCityName() string {
	prefix := fakeCityPrefixes[g.rng.IntN(len(fakeCityPrefixes))]
	sep := fakeCitySeparators[g.rng.IntN(len(fakeCitySeparators))]
	roots := capitalizedRoots()
	root := roots[g.rng.IntN(len(roots))]
	return prefix + sep + root
}

// IsFakeCityName reports whether name could have come from FakeCityName.
func IsFakeCityName(name string) bool {
	_, ok := fakeCityNames()[name]
	return ok
}
