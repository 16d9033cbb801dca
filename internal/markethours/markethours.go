// Package markethours decides whether an exchange session is open.
package markethours

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
)

// Defaults of the B3 cash market session.
const (
	DefaultTimeZone = "America/Sao_Paulo"
	DefaultOpen     = "10:00"
	DefaultClose    = "17:55"
)

const clockLayout = "15:04"

// Config describes an exchange session in the exchange's local time.
type Config struct {
	Enabled  bool     `yaml:"enabled" json:"enabled" jsonschema:"title=Only run during market hours,default=true"`
	TimeZone string   `yaml:"time_zone" json:"time_zone" jsonschema:"title=Exchange time zone,default=America/Sao_Paulo" validate:"required,timezone"`
	Open     string   `yaml:"open" json:"open" jsonschema:"title=Session open (HH:MM),default=10:00" validate:"required,datetime=15:04"`
	Close    string   `yaml:"close" json:"close" jsonschema:"title=Session close (HH:MM),default=17:55" validate:"required,datetime=15:04"`
	Holidays []string `yaml:"holidays" json:"holidays,omitempty" jsonschema:"title=Exchange holidays (YYYY-MM-DD)" validate:"dive,datetime=2006-01-02"`
}

// DefaultConfig is the B3 session, 10:00 to 17:55 in São Paulo.
func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		TimeZone: DefaultTimeZone,
		Open:     DefaultOpen,
		Close:    DefaultClose,
		Holidays: nil,
	}
}

// Session answers open/closed questions for one exchange.
type Session struct {
	location *time.Location
	// open and close are offsets from local midnight.
	open     time.Duration
	close    time.Duration
	holidays map[string]bool
}

// NewSession parses config.
func NewSession(config Config) (*Session, error) {
	location, err := time.LoadLocation(config.TimeZone)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, fmt.Sprintf("unknown time zone %q", config.TimeZone), err)
	}

	open, err := parseClock(config.Open)
	if err != nil {
		return nil, err
	}

	closeAt, err := parseClock(config.Close)
	if err != nil {
		return nil, err
	}

	if closeAt <= open {
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "session close %s is not after open %s", config.Close, config.Open)
	}

	holidays := make(map[string]bool, len(config.Holidays))
	for _, day := range config.Holidays {
		if _, err := time.Parse(time.DateOnly, day); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, fmt.Sprintf("invalid holiday %q", day), err)
		}

		holidays[day] = true
	}

	return &Session{
		location: location,
		open:     open,
		close:    closeAt,
		holidays: holidays,
	}, nil
}

func parseClock(clock string) (time.Duration, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfiguration, fmt.Sprintf("invalid clock %q, expected HH:MM", clock), err)
	}

	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// Location returns the exchange time zone.
func (s *Session) Location() *time.Location {
	return s.location
}

// IsTradingDay reports whether t falls on a weekday that is not a holiday.
func (s *Session) IsTradingDay(t time.Time) bool {
	local := t.In(s.location)

	if wd := local.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}

	return !s.holidays[local.Format(time.DateOnly)]
}

// IsOpen reports whether t is inside the session. Both ends are inclusive
// at minute resolution: with a 17:55 close, 17:55:59 is still open.
func (s *Session) IsOpen(t time.Time) bool {
	if !s.IsTradingDay(t) {
		return false
	}

	local := t.In(s.location)
	clock := time.Duration(local.Hour())*time.Hour + time.Duration(local.Minute())*time.Minute

	return clock >= s.open && clock <= s.close
}

func (s *Session) at(day time.Time, offset time.Duration) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.location).Add(offset)
}

// NextOpen returns the next session open at or after t.
func (s *Session) NextOpen(t time.Time) time.Time {
	local := t.In(s.location)

	// a long run of holidays is the only reason to look further ahead
	for i := 0; i < 15; i++ {
		day := local.AddDate(0, 0, i)
		open := s.at(day, s.open)

		if s.IsTradingDay(day) && !open.Before(t) {
			return open
		}
	}

	return s.at(local.AddDate(0, 0, 1), s.open)
}

// Status is a short human-readable session state.
func (s *Session) Status(t time.Time) string {
	if s.IsOpen(t) {
		return "ABERTO"
	}

	return "FECHADO"
}
