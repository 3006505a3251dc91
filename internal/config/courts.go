package config

// Court is one bookable court + period slot exactly as the upstream form
// lists it. Name carries the form's full option label (submitted verbatim),
// Alias the short label shown in this app's UI and API responses.
type Court struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Alias string `json:"alias"`
}

var courts = []Court{
	{ID: "1", Name: "คอร์ทที่ 1   รอบที่ 1  เวลา 17.30 – 18.30 น. | Court no.1: 1st Period: 17.30-18.30 hrs.", Alias: "Court 1, 1st Period (17:30 - 18:30)"},
	{ID: "2", Name: "คอร์ทที่ 1   รอบที่ 2  เวลา 18.45 – 19.45 น. | Court no.1: 2nd Period: 18.45-19.45 hrs.", Alias: "Court 1, 2nd Period (18:45 - 19:45)"},
	{ID: "3", Name: "คอร์ทที่ 2   รอบที่ 1  เวลา 17.30 – 18.30 น. | Court no.1: 1st Period: 17.30-18.30 hrs.", Alias: "Court 2, 1st Period (17:30 - 18:30)"},
	{ID: "4", Name: "คอร์ทที่ 2   รอบที่ 2  เวลา 18.45 – 19.45 น. | Court no.1: 2nd Period: 18.45-19.45 hrs.", Alias: "Court 2, 2nd Period (18:45 - 19:45)"},
	{ID: "5", Name: "คอร์ทที่ 3   รอบที่ 1  เวลา 17.30 – 18.30 น. | Court no.1: 1st Period: 17.30-18.30 hrs.", Alias: "Court 3, 1st Period (17:30 - 18:30)"},
	{ID: "6", Name: "คอร์ทที่ 3   รอบที่ 2  เวลา 18.45 – 19.45 น. | Court no.1: 2nd Period: 18.45-19.45 hrs.", Alias: "Court 3, 2nd Period (18:45 - 19:45)"},
	{ID: "7", Name: "คอร์ทที่ 4   รอบที่ 1  เวลา 17.30 – 18.30 น. | Court no.1: 1st Period: 17.30-18.30 hrs.", Alias: "Court 4, 1st Period (17:30 - 18:30)"},
	{ID: "8", Name: "คอร์ทที่ 4   รอบที่ 2  เวลา 18.45 – 19.45 น. | Court no.1: 2nd Period: 18.45-19.45 hrs.", Alias: "Court 4, 2nd Period (18:45 - 19:45)"},
}

// Courts returns the configured court catalog.
func Courts() []Court {
	out := make([]Court, len(courts))
	copy(out, courts)
	return out
}

// CourtByID looks up a court by its id. ok is false for unknown ids.
func CourtByID(id string) (Court, bool) {
	for _, c := range courts {
		if c.ID == id {
			return c, true
		}
	}
	return Court{}, false
}

// CourtAlias returns the short display label for a court id, or the id
// itself when it is not in the catalog (old rows after a catalog change).
func CourtAlias(id string) string {
	if c, ok := CourtByID(id); ok {
		return c.Alias
	}
	return id
}

// ResolveCourt matches a court by catalog id first, then by the form's
// full option label. ok is false when neither matches.
func ResolveCourt(s string) (Court, bool) {
	if c, ok := CourtByID(s); ok {
		return c, true
	}
	for _, c := range courts {
		if c.Name == s {
			return c, true
		}
	}
	return Court{}, false
}
