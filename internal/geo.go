package internal

// lookupCountry resolves a client address to a two-letter country code via
// the optional IP2Location database. Quoted addresses (as some upstream
// formats emit) are unwrapped first. Empty string means "unknown".
func (a *App) lookupCountry(ip string) string {
	if a.GeoDb == nil || ip == "" {
		return ""
	}

	if len(ip) > 2 && ip[0] == '"' && ip[len(ip)-1] == '"' {
		ip = ip[1 : len(ip)-1]
	}

	record, err := a.GeoDb.Get_country_short(ip)
	if err != nil {
		return ""
	}
	if record.Country_short == "" || record.Country_short == "-" {
		return ""
	}
	return record.Country_short
}
