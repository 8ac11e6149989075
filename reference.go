package citygen

// ReferenceCity is a real city and its short description.
type ReferenceCity struct {
	Name        string
	Description string
}

// referenceCities is the built-in table sampled for real records.
// Order matters: scripted sources index into it.
var referenceCities = [...]ReferenceCity{
	{"New York", "Largest US city, known for skyline and Central Park"},
	{"London", "Historic capital with museums and the Thames"},
	{"Paris", "City of light, fashion, and the Eiffel Tower"},
	{"Tokyo", "Bustling capital with tech and tradition"},
	{"Berlin", "German capital known for history and nightlife"},
	{"Toronto", "Diverse Canadian city by Lake Ontario"},
	{"Melbourne", "Australian city known for coffee culture"},
	{"Bangkok", "Thai capital with temples and street food"},
	{"Buenos Aires", "Argentinian city of tango and steak"},
	{"Seoul", "South Korea's high-tech and cultural hub"},
	{"Amsterdam", "Dutch city with canals and bicycles"},
	{"Rome", "Italian capital with ancient ruins"},
	{"Istanbul", "Straddles Europe and Asia with rich history"},
	{"Barcelona", "Spanish city famous for Gaudí and beaches"},
	{"Dubai", "UAE city with skyscrapers and desert charm"},
	{"Chicago", "Known for deep-dish pizza and Lake Michigan"},
	{"Lima", "Capital of Peru with colonial architecture"},
	{"Oslo", "Norwegian capital known for fjords and design"},
	{"Helsinki", "Finnish capital with modern design"},
	{"Cape Town", "Coastal city beneath Table Mountain"},
}

// ReferenceCities returns a copy of the built-in reference table.
func ReferenceCities() []ReferenceCity {
	out := make([]ReferenceCity, len(referenceCities))
	copy(out, referenceCities[:])
	return out
}

// referenceIndex maps city name to description for a reference table.
// Config.Validate rejects tables with duplicate names.
func referenceIndex(cities []ReferenceCity) map[string]string {
	idx := make(map[string]string, len(cities))
	for _, c := range cities {
		idx[c.Name] = c.Description
	}
	return idx
}

// duplicateReference returns the first name that appears twice in cities,
// or "" when all names are distinct.
func duplicateReference(cities []ReferenceCity) string {
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		if _, ok := seen[c.Name]; ok {
			return c.Name
		}
		seen[c.Name] = struct{}{}
	}
	return ""
}
