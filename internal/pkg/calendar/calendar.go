// Package calendar classifies dates as weekend, public holiday or working day.
package calendar

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cmlabs-hris/workforce-backend-go/internal/pkg/apperror"
	"gopkg.in/yaml.v3"
)

type Calendar interface {
	IsHoliday(date time.Time) bool
	IsWeekend(date time.Time) bool
	HolidayName(date time.Time) string
}

// Static is an in-memory calendar, usually loaded from a YAML file:
//
//	weekend: [saturday, sunday]
//	holidays:
//	  - date: 2024-01-01
//	    name: New Year's Day
type Static struct {
	weekend  map[time.Weekday]bool
	holidays map[string]string
}

var defaultWeekend = []time.Weekday{time.Saturday, time.Sunday}

func New(weekend []time.Weekday, holidays map[string]string) *Static {
	c := &Static{
		weekend:  make(map[time.Weekday]bool, len(weekend)),
		holidays: make(map[string]string, len(holidays)),
	}
	for _, d := range weekend {
		c.weekend[d] = true
	}
	for date, name := range holidays {
		c.holidays[date] = name
	}
	return c
}

func (c *Static) IsHoliday(date time.Time) bool {
	_, ok := c.holidays[date.Format(time.DateOnly)]
	return ok
}

func (c *Static) IsWeekend(date time.Time) bool {
	return c.weekend[date.Weekday()]
}

func (c *Static) HolidayName(date time.Time) string {
	return c.holidays[date.Format(time.DateOnly)]
}

type holidayEntry struct {
	Date string `yaml:"date"`
	Name string `yaml:"name"`
}

type calendarFile struct {
	Weekend  []string       `yaml:"weekend"`
	Holidays []holidayEntry `yaml:"holidays"`
}

// LoadFile reads a calendar file. Any problem with the file is reported as a
// configuration error.
func LoadFile(path string) (*Static, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperror.Configuration("failed to read holiday calendar", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Static, error) {
	var file calendarFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, apperror.Configuration("malformed holiday calendar", err)
	}

	weekend := defaultWeekend
	if file.Weekend != nil {
		weekend = make([]time.Weekday, 0, len(file.Weekend))
		for _, name := range file.Weekend {
			day, ok := parseWeekday(name)
			if !ok {
				return nil, apperror.Configuration("malformed holiday calendar", fmt.Errorf("unknown weekday %q", name))
			}
			weekend = append(weekend, day)
		}
	}

	holidays := make(map[string]string, len(file.Holidays))
	for _, h := range file.Holidays {
		date, err := time.Parse(time.DateOnly, h.Date)
		if err != nil {
			return nil, apperror.Configuration("malformed holiday calendar", fmt.Errorf("invalid holiday date %q", h.Date))
		}
		key := date.Format(time.DateOnly)
		if _, dup := holidays[key]; dup {
			return nil, apperror.Configuration("malformed holiday calendar", fmt.Errorf("duplicate holiday %s", key))
		}
		holidays[key] = h.Name
	}

	return New(weekend, holidays), nil
}

func parseWeekday(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}
