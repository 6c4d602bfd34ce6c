package predicate

// Standard operator constructors. Each takes the fragment path it applies to
// and builds the corresponding predicate; values run through Value, so plain
// strings are quoted and "my."/"document" strings become path references.

// At matches documents whose fragment equals the value exactly.
func At(path string, value any) Predicate {
	return New("at", Path(path), Value(value))
}

// Any matches documents whose fragment equals any of the values.
func Any(path string, values any) Predicate {
	return New("any", Path(path), Value(values))
}

// In matches documents whose id or uid is in the list. Unlike Any it is
// only valid on document.id and my.*.uid paths.
func In(path string, values any) Predicate {
	return New("in", Path(path), Value(values))
}

// Fulltext matches documents containing the terms in the given fragment.
func Fulltext(path string, terms string) Predicate {
	return New("fulltext", Path(path), String(terms))
}

// Similar matches documents similar to the one with the given id.
func Similar(id string, maxResults int) Predicate {
	return New("similar", String(id), Raw(maxResults))
}

// Has matches documents where the fragment is present.
func Has(path string) Predicate {
	return New("has", Path(path))
}

// Missing matches documents where the fragment is absent.
func Missing(path string) Predicate {
	return New("missing", Path(path))
}

// GT matches documents whose number fragment is greater than the value.
func GT(path string, value any) Predicate {
	return New("number.gt", Path(path), Raw(value))
}

// LT matches documents whose number fragment is less than the value.
func LT(path string, value any) Predicate {
	return New("number.lt", Path(path), Raw(value))
}

// InRange matches documents whose number fragment lies in [low, high].
func InRange(path string, low, high any) Predicate {
	return New("number.inRange", Path(path), Raw(low), Raw(high))
}

// DateBefore matches date fragments strictly before the value. The value is
// emitted raw; callers pass a pre-formatted date or millisecond timestamp.
func DateBefore(path string, value any) Predicate {
	return New("date.before", Path(path), Value(value))
}

// DateAfter matches date fragments strictly after the value.
func DateAfter(path string, value any) Predicate {
	return New("date.after", Path(path), Value(value))
}

// DateBetween matches date fragments between the two values.
func DateBetween(path string, from, to any) Predicate {
	return New("date.between", Path(path), Value(from), Value(to))
}

// Month matches date fragments falling in the named month.
func Month(path string, month string) Predicate {
	return New("date.month", Path(path), String(month))
}

// Year matches date fragments falling in the given year.
func Year(path string, year int) Predicate {
	return New("date.year", Path(path), Raw(year))
}

// DayOfWeek matches date fragments falling on the named weekday.
func DayOfWeek(path string, day string) Predicate {
	return New("date.day-of-week", Path(path), String(day))
}

// Near matches geopoint fragments within radiusKm of the coordinates.
func Near(path string, latitude, longitude, radiusKm float64) Predicate {
	return New("geopoint.near", Path(path), Raw(latitude), Raw(longitude), Raw(radiusKm))
}
