package gridparam_test

import (
	"math"
	"reflect"
	"testing"

	"github.com/matforge/expcfg/gridparam"
)

func TestParse_Discrete(t *testing.T) {
	p, err := gridparam.Parse("model;min_samples_split;int;discrete;2:5:10")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.Location != "model" || p.Name != "min_samples_split" {
		t.Fatalf("parsed %q.%q", p.Location, p.Name)
	}
	if p.Type != gridparam.Int || p.Series != gridparam.Discrete {
		t.Fatalf("type/series = %v/%v", p.Type, p.Series)
	}
	if got := p.Expand(); !reflect.DeepEqual(got, []float64{2, 5, 10}) {
		t.Fatalf("Expand() = %v", got)
	}
}

func TestParse_Continuous(t *testing.T) {
	p, err := gridparam.Parse("model;gamma;float;continuous;0:1:5")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := p.Expand()
	want := []float64{0, 0.25, 0.5, 0.75, 1}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Expand() = %v, want %v", got, want)
	}
}

func TestParse_ContinuousLog(t *testing.T) {
	p, err := gridparam.Parse("model;alpha;float;continuous-log;-2:0:3")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got := p.Expand()
	want := []float64{0.01, 0.1, 1}
	if len(got) != len(want) {
		t.Fatalf("Expand() = %v", got)
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("Expand()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestParse_IntTruncation(t *testing.T) {
	p, err := gridparam.Parse("model;estimators;int;continuous;1:4:3")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// 1, 2.5, 4 truncated to integers.
	if got := p.Expand(); !reflect.DeepEqual(got, []float64{1, 2, 4}) {
		t.Fatalf("Expand() = %v", got)
	}
}

func TestParse_SinglePoint(t *testing.T) {
	p, err := gridparam.Parse("model;alpha;float;continuous;3:9:1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got := p.Expand(); !reflect.DeepEqual(got, []float64{3}) {
		t.Fatalf("Expand() = %v", got)
	}
}

func TestParse_CaseInsensitiveKeywords(t *testing.T) {
	if _, err := gridparam.Parse("model;alpha;Float;Continuous-Log;-6:0:25"); err != nil {
		t.Fatalf("keywords are case-insensitive: %v", err)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []string{
		"model;alpha;float;continuous",           // four pieces
		"model;alpha;complex;continuous;0:1:5",   // bad type
		"model;alpha;float;sometimes;0:1:5",      // bad series
		"model;alpha;float;continuous;0:1",       // range needs 3 values
		"model;alpha;float;continuous;a:b:c",     // non-numeric
		"model;alpha;float;continuous;0:1:0",     // zero points
		";alpha;float;discrete;1",                // empty location
		"model;alpha;float;continuous;0:1:5;bye", // six pieces
	}
	for _, s := range cases {
		if _, err := gridparam.Parse(s); err == nil {
			t.Fatalf("Parse(%q): expected error", s)
		}
	}
}
