package calendar

import "time"

// Holidays returns the set of non-business holiday dates for the given year
// in the club's jurisdiction (Brazil, state of Paraíba). The set is a pure
// function of the year: national fixed dates, the Easter-derived movable
// dates, and the Paraíba state dates.
//
// Callers must resolve the set for the year of the date being tested, never
// for the run's current year; month scans near year boundaries would
// otherwise consult the wrong calendar.
func Holidays(year int) map[time.Time]string {
	d := func(month time.Month, day int) time.Time {
		return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	}

	hs := map[time.Time]string{
		d(time.January, 1):    "Confraternização Universal",
		d(time.April, 21):     "Tiradentes",
		d(time.May, 1):        "Dia do Trabalhador",
		d(time.September, 7):  "Independência do Brasil",
		d(time.October, 12):   "Nossa Senhora Aparecida",
		d(time.November, 2):   "Finados",
		d(time.November, 15):  "Proclamação da República",
		d(time.December, 25):  "Natal",
		d(time.June, 24):      "São João",
		d(time.August, 5):     "Fundação do Estado da Paraíba",
	}

	// National holiday since 2024 (Lei 14.759/2023).
	if year >= 2024 {
		hs[d(time.November, 20)] = "Dia Nacional de Zumbi e da Consciência Negra"
	}

	easter := easterSunday(year)
	hs[easter.AddDate(0, 0, -48)] = "Carnaval"
	hs[easter.AddDate(0, 0, -47)] = "Carnaval"
	hs[easter.AddDate(0, 0, -2)] = "Paixão de Cristo"
	hs[easter.AddDate(0, 0, 60)] = "Corpus Christi"

	return hs
}

// easterSunday computes the date of Easter for a Gregorian-calendar year
// using the anonymous Gregorian (Meeus/Jones/Butcher) algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
