package forecast

import (
	"strings"
	"time"
)

// TimeLayout is the layout of the dt_txt field returned by the forecast API.
const TimeLayout = "2006-01-02 15:04:05"

// KelvinOffset converts Kelvin to Celsius.
const KelvinOffset = 273.15

// Coordinate is a resolved location together with the canonical city name
// the geocoding API returned for it.
type Coordinate struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// Entry is one timestamped forecast sample.
type Entry struct {
	Time        time.Time `json:"time"`
	DtTxt       string    `json:"dt_txt"`
	TempK       float64   `json:"temp_k"`
	Humidity    int       `json:"humidity"`
	WindSpeed   float64   `json:"wind_speed"`
	Icon        string    `json:"icon"`
	Description string    `json:"description"`
}

// NewEntry parses dt_txt; a malformed timestamp leaves Time zero.
func NewEntry(dtTxt string, tempK float64, humidity int, wind float64, icon, description string) Entry {
	ts, _ := time.Parse(TimeLayout, dtTxt)
	return Entry{
		Time:        ts,
		DtTxt:       dtTxt,
		TempK:       tempK,
		Humidity:    humidity,
		WindSpeed:   wind,
		Icon:        icon,
		Description: description,
	}
}

// Date is the date part of dt_txt as sent by the API.
func (e Entry) Date() string {
	date, _, _ := strings.Cut(e.DtTxt, " ")
	return date
}

func (e Entry) Celsius() float64 {
	return e.TempK - KelvinOffset
}

// Daily holds at most one entry per day; the first is the current conditions.
type Daily []Entry

func (d Daily) Current() (Entry, bool) {
	if len(d) == 0 {
		return Entry{}, false
	}
	return d[0], true
}

func (d Daily) Upcoming() []Entry {
	if len(d) < 2 {
		return nil
	}
	return d[1:]
}
