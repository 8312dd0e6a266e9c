package ir

import (
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Scalar is the closed set of domain scalar kinds. Each kind carries
// its own canonical rendering, used by the encoder.
type Scalar interface {
	scalar()
	fmt.Stringer
}

// HexInt is an integer written as a hex literal in source; it renders
// back as its plain decimal text.
type HexInt int64

func (HexInt) scalar() {}

func (h HexInt) String() string {
	return strconv.FormatInt(int64(h), 10)
}

type IPAddress struct {
	netip.Addr
}

func (IPAddress) scalar() {}

func ParseIPAddress(s string) (IPAddress, error) {
	a, err := netip.ParseAddr(s)
	if err != nil {
		return IPAddress{}, err
	}
	return IPAddress{Addr: a}, nil
}

type MACAddress struct {
	HW net.HardwareAddr
}

func (MACAddress) scalar() {}

func (m MACAddress) String() string {
	return m.HW.String()
}

func ParseMACAddress(s string) (MACAddress, error) {
	hw, err := net.ParseMAC(s)
	if err != nil {
		return MACAddress{}, err
	}
	return MACAddress{HW: hw}, nil
}

type UUID struct {
	uuid.UUID
}

func (UUID) scalar() {}

// Lambda is a verbatim code fragment. It is never reparsed as
// structured data.
type Lambda string

func (Lambda) scalar() {}

func (l Lambda) String() string {
	return string(l)
}

// ID names an object for cross references; only the id survives
// serialization.
type ID struct {
	Name string
	ID   string
}

func (ID) scalar() {}

func (id ID) String() string {
	return id.ID
}

// TimePeriod is a duration broken down by unit. A unit is set at most
// once; a period with exactly one unit set has a short rendering
// ("10s"), all others render as an explicit unit mapping.
type TimePeriod struct {
	Microseconds *int64
	Milliseconds *int64
	Seconds      *int64
	Minutes      *int64
	Hours        *int64
	Days         *int64
}

func (TimePeriod) scalar() {}

type TimeUnit struct {
	Unit   string
	Abbrev string
	Value  int64
}

// Units returns the set units in fixed order, smallest first.
func (tp TimePeriod) Units() []TimeUnit {
	var res []TimeUnit
	add := func(unit, abbrev string, v *int64) {
		if v != nil {
			res = append(res, TimeUnit{Unit: unit, Abbrev: abbrev, Value: *v})
		}
	}
	add("microseconds", "us", tp.Microseconds)
	add("milliseconds", "ms", tp.Milliseconds)
	add("seconds", "s", tp.Seconds)
	add("minutes", "min", tp.Minutes)
	add("hours", "h", tp.Hours)
	add("days", "d", tp.Days)
	return res
}

func (tp TimePeriod) IsSingle() bool {
	return len(tp.Units()) == 1
}

func (tp TimePeriod) String() string {
	units := tp.Units()
	if len(units) == 1 {
		return fmt.Sprintf("%d%s", units[0].Value, units[0].Abbrev)
	}
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%s: %d", u.Unit, u.Value)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// NewTimePeriod builds a period from a unit→magnitude map, rejecting
// unknown units.
func NewTimePeriod(units map[string]int64) (TimePeriod, error) {
	tp := TimePeriod{}
	for unit, v := range units {
		v := v
		switch unit {
		case "microseconds":
			tp.Microseconds = &v
		case "milliseconds":
			tp.Milliseconds = &v
		case "seconds":
			tp.Seconds = &v
		case "minutes":
			tp.Minutes = &v
		case "hours":
			tp.Hours = &v
		case "days":
			tp.Days = &v
		default:
			return TimePeriod{}, fmt.Errorf("unknown time period unit %q", unit)
		}
	}
	return tp, nil
}

func scalarEqual(a, b Scalar) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case HexInt:
		y, ok := b.(HexInt)
		return ok && x == y
	case IPAddress:
		y, ok := b.(IPAddress)
		return ok && x.Addr == y.Addr
	case MACAddress:
		y, ok := b.(MACAddress)
		return ok && x.String() == y.String()
	case UUID:
		y, ok := b.(UUID)
		return ok && x.UUID == y.UUID
	case Lambda:
		y, ok := b.(Lambda)
		return ok && x == y
	case ID:
		y, ok := b.(ID)
		return ok && x == y
	case TimePeriod:
		y, ok := b.(TimePeriod)
		return ok && x.String() == y.String()
	}
	return false
}
