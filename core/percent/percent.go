// percent implements a simple and straightforward type for percentage values
package percent

import (
	"math"
	"strconv"
	"strings"

	"github.com/npillmayer/lineflow/core/dimen"
)

// Percent is a simple and straightforward type for percentage values
type Percent uint8

func FromInt(n int) Percent {
	switch {
	case n <= 0:
		return Percent(0)
	case n >= 100:
		return Percent(100)
	}
	return Percent(n)
}

func FromFloat(f float64) Percent {
	switch {
	case f <= 0 || math.IsNaN(f) || math.IsInf(f, -1):
		return Percent(0)
	case f >= 100 || math.IsInf(f, 1):
		return Percent(100)
	}
	return Percent(math.Round(f))
}

// FromString parses "40%" or "40". Values outside 0…100 are clamped.
func FromString(s string) (Percent, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return FromInt(n), nil
}

// Of returns p percent of a dimension, rounded towards zero.
func (p Percent) Of(d dimen.Dimen) dimen.Dimen {
	return dimen.Dimen(int64(d) * int64(p) / 100)
}

func (p Percent) String() string {
	return strconv.Itoa(int(p)) + "%"
}
