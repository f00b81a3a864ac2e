// Package timeparsing parses the due-date expressions accepted on the command line.
//
// Three forms are understood:
//  1. "." for the current time
//  2. Relative offsets: "+1d 5h 30m 10s" added to a reference time
//  3. Absolute timestamps in the stored layout (2006-01-02 15:04:05.000000)
//
// Anything else degrades to the current time. The returned error wraps
// ErrDateFormat in that case and the returned time is still usable, the same
// way strconv reports ErrRange alongside a clamped value.
package timeparsing

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Layout is the on-disk timestamp format for every date field.
const Layout = "2006-01-02 15:04:05.000000"

// layoutSeconds is accepted on read for hand-edited files.
const layoutSeconds = "2006-01-02 15:04:05"

// maxYear is the last year Layout can write and read back.
const maxYear = 9999

var (
	// ErrDateFormat marks a recoverable parse failure; the accompanying time is now.
	ErrDateFormat = errors.New("invalid date format")
	// ErrInvalidOffset marks a relative term whose magnitude is not a plain
	// integer, or an offset that lands past the last storable year.
	ErrInvalidOffset = errors.New("invalid offset")
)

// Parser turns date expressions into times. The zero value uses time.Now.
type Parser struct {
	// Now overrides the clock, mainly for tests.
	Now func() time.Time
	// Natural enables phrases such as "tomorrow 5pm" before degrading.
	Natural bool
}

func (p Parser) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}

// Parse evaluates expr. reference, when non-empty, is the base for relative
// offsets (edit passes the stored due date here).
func (p Parser) Parse(expr, reference string) (time.Time, error) {
	now := p.now()
	switch {
	case expr == ".":
		return now, nil
	case len(expr) > 1 && expr[0] == '+':
		return p.parseRelative(expr[1:], reference, now)
	case len(expr) > 1:
		t, err := ParseTimestamp(expr)
		if err == nil {
			return t, nil
		}
		if p.Natural {
			if nt, ok := p.parseNatural(expr, now); ok {
				return nt, nil
			}
		}
		return now, fmt.Errorf("%w: %q: %v", ErrDateFormat, expr, err)
	default:
		return now, fmt.Errorf("%w: %q", ErrDateFormat, expr)
	}
}

// parseRelative applies "<n>d <n>h <n>m <n>s" terms. Within a unit the last
// term wins; distinct units add up. Terms with an unknown unit are skipped.
func (p Parser) parseRelative(terms, reference string, now time.Time) (time.Time, error) {
	var days, hours, minutes, seconds uint64
	for _, tok := range strings.Fields(terms) {
		var dst *uint64
		switch tok[len(tok)-1] {
		case 'd':
			dst = &days
		case 'h':
			dst = &hours
		case 'm':
			dst = &minutes
		case 's':
			dst = &seconds
		default:
			continue
		}
		n, err := strconv.ParseUint(tok[:len(tok)-1], 10, 32)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidOffset, tok)
		}
		*dst = n
	}

	base := now
	var baseErr error
	if reference != "" {
		ref, err := ParseTimestamp(reference)
		if err != nil {
			baseErr = fmt.Errorf("%w: reference %q: %v", ErrDateFormat, reference, err)
		} else {
			base = ref
		}
	}

	// Magnitudes fit in 32 bits, so the second count cannot overflow int64,
	// but its Duration can. Whole days go through AddDate instead.
	secs := int64(hours)*3600 + int64(minutes)*60 + int64(seconds)
	t := base.AddDate(0, 0, int(int64(days)+secs/86400)).Add(time.Duration(secs%86400) * time.Second)
	if t.Year() > maxYear {
		return time.Time{}, fmt.Errorf("%w: %q lands past year %d", ErrInvalidOffset, "+"+terms, maxYear)
	}
	return t, baseErr
}

func (p Parser) parseNatural(expr string, now time.Time) (time.Time, bool) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)
	r, err := w.Parse(expr, now)
	if err != nil || r == nil {
		return time.Time{}, false
	}
	return r.Time, true
}

// ParseTimestamp reads a stored timestamp in local time.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(Layout, s, time.Local)
	if err == nil {
		return t, nil
	}
	if t2, err2 := time.ParseInLocation(layoutSeconds, s, time.Local); err2 == nil {
		return t2, nil
	}
	return time.Time{}, err
}

// Format renders t in the stored layout.
func Format(t time.Time) string {
	return t.Format(Layout)
}
