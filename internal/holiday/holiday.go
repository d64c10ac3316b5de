// Package holiday loads the read-only holiday table used to decorate
// calendar cells. Shape: { "2024": { "01-01": "신정", ... }, ... }.
package holiday

import (
	"encoding/json"
	"os"
	"strconv"
	"time"

	"taskcal/internal/timeutil"
)

type Map map[string]map[string]string

// Lookup returns the holiday name for a day, keyed by (year, MM-DD).
func (m Map) Lookup(day time.Time) (string, bool) {
	day = day.In(timeutil.KST)
	year := strconv.Itoa(day.Year())
	monthDay := day.Format("01-02")
	names, ok := m[year]
	if !ok {
		return "", false
	}
	name, ok := names[monthDay]
	return name, ok
}

// Load reads holidays.json from dataDir. A missing or malformed file
// degrades to an empty map; decoration is never worth failing startup.
func Load(path string) Map {
	b, err := os.ReadFile(path)
	if err != nil {
		return Map{}
	}
	var m Map
	if err := json.Unmarshal(b, &m); err != nil {
		return Map{}
	}
	if m == nil {
		return Map{}
	}
	return m
}
