package expcfg_test

import (
	"reflect"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/matforge/expcfg"
	"gopkg.in/yaml.v3"
)

func TestConfig_RoundTrip(t *testing.T) {
	sch := mustSchema(t)
	cfg, iss := expcfg.Validate(sch, mustDoc(t, sampleInstance))
	if cfg == nil {
		t.Fatalf("unexpected issues: %v", iss)
	}

	// Re-serializing to the instance grammar and re-validating yields the
	// identical configuration.
	encoded := cfg.Encode()
	cfg2, iss2 := expcfg.Validate(sch, mustDoc(t, encoded))
	if cfg2 == nil {
		t.Fatalf("re-validation failed: %v\nencoded:\n%s", iss2, encoded)
	}
	if !reflect.DeepEqual(cfg.Map(), cfg2.Map()) {
		t.Fatalf("round-trip changed the configuration:\nfirst:  %#v\nsecond: %#v", cfg.Map(), cfg2.Map())
	}

	// Idempotence extends to the text itself.
	if encoded2 := cfg2.Encode(); encoded2 != encoded {
		t.Fatalf("second encode differs:\n%s\n---\n%s", encoded, encoded2)
	}
}

func TestConfig_RoundTripEmptyList(t *testing.T) {
	sch, err := expcfg.ParseSchema("[A]\nx = integer_list\ny = string\n", expcfg.WithoutModelConvention())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	cfg, _ := expcfg.Validate(sch, mustDoc(t, "[A]\nx =\ny = keep, the comma\n"))
	if cfg == nil {
		t.Fatalf("validation failed")
	}
	cfg2, iss := expcfg.Validate(sch, mustDoc(t, cfg.Encode()))
	if cfg2 == nil {
		t.Fatalf("re-validation failed: %v", iss)
	}
	if !reflect.DeepEqual(cfg.Map(), cfg2.Map()) {
		t.Fatalf("round-trip changed values: %#v vs %#v", cfg.Map(), cfg2.Map())
	}
	if v, _ := cfg2.Section("A").String("y"); v != "keep, the comma" {
		t.Fatalf("scalar comma lost: %q", v)
	}
}

func TestConfig_Accessors(t *testing.T) {
	sch := mustSchema(t)
	cfg, _ := expcfg.Validate(sch, mustDoc(t, sampleInstance))
	if cfg == nil {
		t.Fatalf("validation failed")
	}
	if cfg.Lookup("Nope") != nil || cfg.Lookup() != nil {
		t.Fatalf("Lookup of unknown path should be nil")
	}
	gs := cfg.Section("General Setup")
	if _, ok := gs.Int("save_path"); ok {
		t.Fatalf("wrongly typed accessor must report !ok")
	}
	if _, ok := gs.Value("nope"); ok {
		t.Fatalf("absent field must report !ok")
	}
	if got := cfg.Sections(); got[0] != "General Setup" {
		t.Fatalf("section order = %v", got)
	}
}

func TestConfig_MarshalJSON(t *testing.T) {
	sch := mustSchema(t)
	cfg, _ := expcfg.Validate(sch, mustDoc(t, sampleInstance))
	if cfg == nil {
		t.Fatalf("validation failed")
	}
	out, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(out)
	// Declaration order is preserved.
	if !strings.Contains(s, `"General Setup"`) || strings.Index(s, `"General Setup"`) > strings.Index(s, `"Model Parameters"`) {
		t.Fatalf("section order lost: %s", s)
	}
	var back map[string]any
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	gs, _ := back["General Setup"].(map[string]any)
	if gs["target_feature"] != "y_feature" {
		t.Fatalf("target_feature = %v", gs["target_feature"])
	}
}

func TestConfig_MarshalYAML(t *testing.T) {
	sch := mustSchema(t)
	cfg, _ := expcfg.Validate(sch, mustDoc(t, sampleInstance))
	if cfg == nil {
		t.Fatalf("validation failed")
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back map[string]any
	if err := yaml.Unmarshal(out, &back); err != nil {
		t.Fatalf("output is not valid YAML: %v", err)
	}
	ds, _ := back["Data Setup"].(map[string]any)
	initial, _ := ds["Initial"].(map[string]any)
	if initial["weights"] != false {
		t.Fatalf("weights = %v", initial["weights"])
	}
}
