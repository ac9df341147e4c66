// Package gridparam parses grid-search parameter strings of the form
//
//	location;name;type;series;values
//
// as used by experiment configurations to describe hyperparameter
// optimization: `model;alpha;float;continuous-log;-6:0:25` grids alpha over
// 25 log-spaced points. The package only parses and expands value grids; it
// performs no fitting.
package gridparam

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ValueType is the numeric type a parameter grids over.
type ValueType int

const (
	Int ValueType = iota
	Float
)

func (t ValueType) String() string {
	if t == Int {
		return "int"
	}
	return "float"
}

// Series determines how the values piece is interpreted.
type Series int

const (
	// Discrete lists the grid values directly, colon-delimited.
	Discrete Series = iota
	// Continuous is an inclusive start:end:numpoints linear range.
	Continuous
	// ContinuousLog is an inclusive start:end:numpoints range of base-10
	// exponents.
	ContinuousLog
)

func (s Series) String() string {
	switch s {
	case Discrete:
		return "discrete"
	case Continuous:
		return "continuous"
	case ContinuousLog:
		return "continuous-log"
	}
	return "unknown"
}

// Param is one parsed grid-search parameter.
type Param struct {
	Location string // "model" or a custom feature class.method.
	Name     string
	Type     ValueType
	Series   Series

	values []float64 // discrete values
	start  float64
	end    float64
	points int
}

// Parse splits a semicolon-delimited parameter string into its five pieces.
// Type and series keywords are matched case-insensitively, mirroring the
// documents this grammar comes from.
func Parse(s string) (*Param, error) {
	pieces := strings.Split(strings.TrimSpace(s), ";")
	if len(pieces) != 5 {
		return nil, fmt.Errorf("gridparam: expected 5 semicolon-delimited pieces, got %d in %q", len(pieces), s)
	}
	p := &Param{
		Location: strings.TrimSpace(pieces[0]),
		Name:     strings.TrimSpace(pieces[1]),
	}
	if p.Location == "" || p.Name == "" {
		return nil, fmt.Errorf("gridparam: empty location or name in %q", s)
	}
	switch strings.ToLower(strings.TrimSpace(pieces[2])) {
	case "int":
		p.Type = Int
	case "float":
		p.Type = Float
	default:
		return nil, fmt.Errorf("gridparam: parameter type %q must be 'int' or 'float'", strings.TrimSpace(pieces[2]))
	}
	switch strings.ToLower(strings.TrimSpace(pieces[3])) {
	case "discrete":
		p.Series = Discrete
	case "continuous":
		p.Series = Continuous
	case "continuous-log":
		p.Series = ContinuousLog
	default:
		return nil, fmt.Errorf("gridparam: series type %q must be 'discrete', 'continuous' or 'continuous-log'", strings.TrimSpace(pieces[3]))
	}
	grid := strings.Split(strings.TrimSpace(pieces[4]), ":")
	nums := make([]float64, len(grid))
	for i, g := range grid {
		v, err := strconv.ParseFloat(strings.TrimSpace(g), 64)
		if err != nil {
			return nil, fmt.Errorf("gridparam: grid value %q is not numeric", strings.TrimSpace(g))
		}
		nums[i] = v
	}
	if p.Series == Discrete {
		if len(nums) == 0 {
			return nil, fmt.Errorf("gridparam: discrete series needs at least one value in %q", s)
		}
		p.values = nums
		return p, nil
	}
	if len(nums) != 3 {
		return nil, fmt.Errorf("gridparam: %s series needs start:end:numpoints, got %d pieces", p.Series, len(nums))
	}
	p.start, p.end = nums[0], nums[1]
	p.points = int(nums[2])
	if p.points < 1 {
		return nil, fmt.Errorf("gridparam: numpoints must be at least 1, got %d", p.points)
	}
	return p, nil
}

// Expand materializes the value grid. Continuous series are linearly spaced
// with both endpoints included; continuous-log series raise 10 to the same
// spacing. Int-typed parameters are truncated toward zero after spacing,
// matching the numpy dtype conversion the original grammar leaned on.
func (p *Param) Expand() []float64 {
	var out []float64
	switch p.Series {
	case Discrete:
		out = append(out, p.values...)
	case Continuous:
		out = linspace(p.start, p.end, p.points)
	case ContinuousLog:
		out = linspace(p.start, p.end, p.points)
		for i, v := range out {
			out[i] = math.Pow(10, v)
		}
	}
	if p.Type == Int {
		for i, v := range out {
			out[i] = math.Trunc(v)
		}
	}
	return out
}

func linspace(start, end float64, n int) []float64 {
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	out[n-1] = end
	return out
}
