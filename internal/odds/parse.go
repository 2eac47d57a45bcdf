package odds

import (
	"strconv"
	"strings"
)

// RawRequest carries the five inputs as the user typed them.
type RawRequest struct {
	Level            string `json:"level" query:"level"`
	Tier             string `json:"tier" query:"tier"`
	Gold             string `json:"gold" query:"gold"`
	UnitsRemoved     string `json:"unitsRemoved" query:"unitsRemoved"`
	TierUnitsRemoved string `json:"tierUnitsRemoved" query:"tierUnitsRemoved"`
}

// ParseRequest converts raw text into a Request. Every field must be a base-10
// integer; surrounding whitespace is ignored. Range checks happen in Engine.Check.
func ParseRequest(raw RawRequest) (Request, error) {
	fields := []struct {
		name string
		text string
		dst  *int
	}{
		{"level", raw.Level, new(int)},
		{"tier", raw.Tier, new(int)},
		{"gold", raw.Gold, new(int)},
		{"unitsRemoved", raw.UnitsRemoved, new(int)},
		{"tierUnitsRemoved", raw.TierUnitsRemoved, new(int)},
	}
	for _, f := range fields {
		s := strings.TrimSpace(f.text)
		if s == "" {
			return Request{}, invalid("%s is missing", f.name)
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			return Request{}, invalid("%s is not an integer: %q", f.name, f.text)
		}
		*f.dst = v
	}

	return Request{
		Level:            *fields[0].dst,
		Tier:             Tier(*fields[1].dst),
		Gold:             *fields[2].dst,
		UnitsRemoved:     *fields[3].dst,
		TierUnitsRemoved: *fields[4].dst,
	}, nil
}

// ComputeRaw parses and computes in one step.
func (e *Engine) ComputeRaw(raw RawRequest) (Result, error) {
	req, err := ParseRequest(raw)
	if err != nil {
		return Result{}, err
	}
	return e.Compute(req)
}
