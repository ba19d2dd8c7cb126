package core

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"pkt.systems/codetribe/schema"
)

func TestRegistryKeywordDetection(t *testing.T) {
	r := NewRegistry()
	rng := &fakeRand{ints: []int{0}}

	res := r.Resolve("javascript")(`console.log("hi")`, rng)
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Output != javascriptOutputs[0] {
		t.Fatalf("expected canned output, got %q", res.Output)
	}

	res = r.Resolve("javascript")(`const x = 1`, rng)
	if res.Output != "Code executed successfully (no output)" {
		t.Fatalf("expected no-output message, got %q", res.Output)
	}

	res = r.Resolve("go")(`fmt.Println("hi")`, rng)
	if res.Output != goOutputs[0] {
		t.Fatalf("expected canned go output, got %q", res.Output)
	}

	res = r.Resolve("go")(`package main`, rng)
	if res.Output != "Code built and executed successfully (no output)" {
		t.Fatalf("expected go no-output message, got %q", res.Output)
	}

	res = r.Resolve("c")(`printf("hi")`, rng)
	if res.Output != cOutputs[0] {
		t.Fatalf("expected canned c output, got %q", res.Output)
	}
}

func TestRegistryStaticLanguages(t *testing.T) {
	r := NewRegistry()
	rng := &fakeRand{}
	cases := map[string]string{
		"html":     "HTML rendered successfully (see preview panel)",
		"css":      "CSS compiled successfully (see preview panel)",
		"markdown": "Markdown processed successfully",
	}
	for lang, want := range cases {
		res := r.Resolve(schema.LanguageID(lang))("anything", rng)
		if !res.Success || res.Output != want {
			t.Fatalf("%s: got %+v", lang, res)
		}
	}
}

func TestRegistryJSONValidation(t *testing.T) {
	r := NewRegistry()
	rng := &fakeRand{}

	res := r.Resolve("json")(`{"a": [1, 2, 3]}`, rng)
	if !res.Success || res.Output != "JSON is valid ✓" {
		t.Fatalf("valid json: got %+v", res)
	}

	res = r.Resolve("json")(`{"a": `, rng)
	if res.Success {
		t.Fatalf("expected failure for invalid json")
	}
	if res.Error != "Invalid JSON syntax" {
		t.Fatalf("expected Invalid JSON syntax, got %q", res.Error)
	}
	if !strings.HasPrefix(res.Output, "JSON Parse Error: ") {
		t.Fatalf("unexpected output %q", res.Output)
	}
}

func TestRegistryUnknownLanguageFallsBack(t *testing.T) {
	r := NewRegistry()
	res := r.Resolve("brainfuck")("+-", &fakeRand{})
	if !res.Success {
		t.Fatalf("expected success, got %+v", res)
	}
	if res.Output != "Code execution simulated for brainfuck" {
		t.Fatalf("unexpected output %q", res.Output)
	}
}

type seededRand struct{ r *rand.Rand }

func (s seededRand) Float64() float64 { return s.r.Float64() }
func (s seededRand) IntN(n int) int   { return s.r.IntN(n) }

func TestRegistryHandlersAlwaysProduceOutput(t *testing.T) {
	r := NewRegistry()
	rng := seededRand{r: rand.New(rand.NewPCG(1, 2))}
	inputs := []string{
		"",
		"   \n\t",
		`console.log("hi")`,
		`print("hi")`,
		`System.out.println("hi");`,
		`cout << "hi";`,
		`printf("hi\n");`,
		`fmt.Println("hi")`,
		`println!("hi");`,
		`Console.WriteLine("hi");`,
		`echo "hi";`,
		`puts "hi"`,
		"SELECT * FROM users;",
		`{"valid": true}`,
		`{"broken":`,
		"total garbage ~~ !!",
	}

	// Every registered language must yield non-empty output for any
	// input, every time.
	for _, lang := range r.Languages() {
		handler := r.Resolve(lang)
		for i := 0; i < 120; i++ {
			code := inputs[i%len(inputs)] + fmt.Sprintf(" // %d", rng.IntN(1000))
			res := handler(code, rng)
			if res.Output == "" {
				t.Fatalf("%s: empty output for input %q", lang, code)
			}
		}
	}
}

func TestRegistryLanguagesSorted(t *testing.T) {
	langs := NewRegistry().Languages()
	if len(langs) != 16 {
		t.Fatalf("expected 16 languages, got %d: %v", len(langs), langs)
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] >= langs[i] {
			t.Fatalf("languages not sorted: %v", langs)
		}
	}
}
