package expcfg_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/matforge/expcfg"
)

const sampleSchema = `# Experiment driver input schema

[General Setup]
save_path = string
input_features = string_list or string
target_feature = string
normalize_features = boolean

[Data Setup]
[[Initial]]
data_path = string
weights = boolean

[Models and Tests to Run]
models = string_list
test_cases = string_list

[Test Parameters]
[[ParamGridSearch]]
training_dataset = string
testing_dataset = string
param_1 = string
param_2 = string
fix_random_for_testing = integer
num_cvtests = integer
percent_leave_out = float or integer
processors = integer

[Model Parameters]
[[gkrr_model_regressor]]
alpha = float or float_list
gamma = float or float_list
coef0 = float
degree = integer
kernel = string

[[randomforest_model_regressor]]
estimators = integer
max_depth = integer
max_features = integer or string

[[nn_model_classifier]]
hidden_layer_sizes = integer_list
activation = string
alpha = float
`

func mustSchema(t *testing.T) *expcfg.Schema {
	t.Helper()
	sch, err := expcfg.ParseSchema(sampleSchema)
	if err != nil {
		t.Fatalf("ParseSchema: unexpected err: %v", err)
	}
	return sch
}

func TestParseSchema_Tree(t *testing.T) {
	sch := mustSchema(t)

	want := []string{"General Setup", "Data Setup", "Models and Tests to Run", "Test Parameters", "Model Parameters"}
	got := sch.Sections()
	if len(got) != len(want) {
		t.Fatalf("Sections() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Sections()[%d] = %q, want %q (order must be preserved)", i, got[i], want[i])
		}
	}

	gs := sch.Section("General Setup")
	if gs == nil {
		t.Fatalf("General Setup missing")
	}
	ts, ok := gs.Field("input_features")
	if !ok {
		t.Fatalf("input_features not declared")
	}
	if ts.String() != "string_list or string" {
		t.Fatalf("input_features type = %q", ts.String())
	}

	if sub := sch.Section("Data Setup").Section("Initial"); sub == nil {
		t.Fatalf("nested Initial section missing")
	}
}

func TestParseSchema_ModelRegistry(t *testing.T) {
	sch := mustSchema(t)
	if !sch.Polymorphic("Model Parameters") {
		t.Fatalf("Model Parameters should be polymorphic by default")
	}
	models := sch.Models("Model Parameters")
	if len(models) != 3 || models[0] != "gkrr_model_regressor" {
		t.Fatalf("Models() = %v", models)
	}
}

func TestParseSchema_SyntaxErrors(t *testing.T) {
	cases := map[string]string{
		"unterminated header": "[General Setup\nsave_path = string\n",
		"mismatched brackets": "[[General Setup]\nsave_path = string\n",
		"depth jump":          "[[Initial]]\ndata_path = string\n",
		"duplicate section":   "[A]\nx = string\n[A]\ny = string\n",
		"duplicate field":     "[A]\nx = string\nx = float\n",
		"field outside":       "save_path = string\n[General Setup]\n",
		"no equals":           "[A]\njust some text\n",
		"trailing junk":       "[A] extra\nx = string\n",
	}
	for name, text := range cases {
		_, err := expcfg.ParseSchema(text)
		var se *expcfg.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("%s: expected *SyntaxError, got %v", name, err)
		}
		if se.Doc != expcfg.DocSchema {
			t.Fatalf("%s: Doc = %q, want schema", name, se.Doc)
		}
		if se.Line == 0 {
			t.Fatalf("%s: missing line number", name)
		}
	}
}

func TestParseSchema_TypeErrorCarriesLocation(t *testing.T) {
	_, err := expcfg.ParseSchema("[General Setup]\ntarget_feature = number\n")
	var te *expcfg.TypeError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TypeError, got %v", err)
	}
	if te.Section != "/General Setup" || te.Field != "target_feature" {
		t.Fatalf("location = %q/%q", te.Section, te.Field)
	}
	if !strings.Contains(te.Error(), "number") {
		t.Fatalf("error should mention the token: %v", te)
	}
}

func TestParseSchema_CommentsAndBlanks(t *testing.T) {
	sch, err := expcfg.ParseSchema("\n# comment\n\n[A]\n  # indented comment\nx = string\n\n")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := sch.Section("A").Field("x"); !ok {
		t.Fatalf("field x missing")
	}
}

func TestParseSchema_Options(t *testing.T) {
	text := "[Stages]\n[[fit]]\nsteps = integer\n[Plan]\nstages = string_list\n"
	sch, err := expcfg.ParseSchema(text,
		expcfg.WithoutModelConvention(),
		expcfg.WithPolymorphic("Stages"),
		expcfg.WithModelSelector("Plan", "stages", "Stages"),
	)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sch.Polymorphic("Model Parameters") {
		t.Fatalf("default convention should be dropped")
	}
	if !sch.Polymorphic("Stages") {
		t.Fatalf("Stages should be polymorphic")
	}
}
