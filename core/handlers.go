package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"pkt.systems/codetribe/schema"
)

// Handler synthesizes the outcome of running a snippet in one
// language. Handlers never fail on their own account; failures come
// from the handler's own result (e.g. invalid JSON) or from fault
// injection in the dispatcher.
type Handler func(code string, rng RandSource) schema.ExecutionResult

// Registry maps language tags to handlers. Unknown tags resolve to a
// generic handler that names the language in its output.
type Registry struct {
	handlers map[schema.LanguageID]Handler
}

// NewRegistry builds the default registry covering every built-in
// language.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[schema.LanguageID]Handler)}
	r.Register("javascript", keywordHandler([]string{"console.log"}, javascriptOutputs, "Code executed successfully (no output)"))
	r.Register("typescript", keywordHandler([]string{"console.log"}, javascriptOutputs, "Code executed successfully (no output)"))
	r.Register("python", keywordHandler([]string{"print"}, pythonOutputs, "Code executed successfully (no output)"))
	r.Register("java", keywordHandler([]string{"System.out.println"}, javaOutputs, "Code compiled and executed successfully (no output)"))
	r.Register("cpp", keywordHandler([]string{"cout", "printf"}, cOutputs, "Code compiled and executed successfully (no output)"))
	r.Register("c", keywordHandler([]string{"cout", "printf"}, cOutputs, "Code compiled and executed successfully (no output)"))
	r.Register("go", keywordHandler([]string{"fmt.Print"}, goOutputs, "Code built and executed successfully (no output)"))
	r.Register("rust", keywordHandler([]string{"println!"}, rustOutputs, "Code compiled and executed successfully (no output)"))
	r.Register("csharp", keywordHandler([]string{"Console.Write"}, csharpOutputs, "Code compiled and executed successfully (no output)"))
	r.Register("php", keywordHandler([]string{"echo"}, phpOutputs, "PHP script executed successfully (no output)"))
	r.Register("ruby", keywordHandler([]string{"puts"}, rubyOutputs, "Ruby script executed successfully (no output)"))
	r.Register("sql", tableHandler(sqlOutputs))
	r.Register("html", staticHandler("HTML rendered successfully (see preview panel)"))
	r.Register("css", staticHandler("CSS compiled successfully (see preview panel)"))
	r.Register("markdown", staticHandler("Markdown processed successfully"))
	r.Register("json", jsonHandler)
	return r
}

// Register installs or replaces the handler for a language tag.
func (r *Registry) Register(lang schema.LanguageID, h Handler) {
	r.handlers[schema.NormalizeLanguageID(lang)] = h
}

// Resolve returns the handler for a language, falling back to a
// generic simulation for unknown tags.
func (r *Registry) Resolve(lang schema.LanguageID) Handler {
	if h, ok := r.handlers[lang]; ok {
		return h
	}
	return func(string, RandSource) schema.ExecutionResult {
		return schema.ExecutionResult{
			Success: true,
			Output:  fmt.Sprintf("Code execution simulated for %s", lang),
		}
	}
}

// Languages returns the registered language tags, sorted.
func (r *Registry) Languages() []schema.LanguageID {
	langs := make([]schema.LanguageID, 0, len(r.handlers))
	for lang := range r.handlers {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i] < langs[j] })
	return langs
}

func keywordHandler(keywords []string, outputs []string, noOutput string) Handler {
	return func(code string, rng RandSource) schema.ExecutionResult {
		for _, kw := range keywords {
			if strings.Contains(code, kw) {
				return schema.ExecutionResult{Success: true, Output: outputs[rng.IntN(len(outputs))]}
			}
		}
		return schema.ExecutionResult{Success: true, Output: noOutput}
	}
}

func tableHandler(outputs []string) Handler {
	return func(_ string, rng RandSource) schema.ExecutionResult {
		return schema.ExecutionResult{Success: true, Output: outputs[rng.IntN(len(outputs))]}
	}
}

func staticHandler(output string) Handler {
	return func(string, RandSource) schema.ExecutionResult {
		return schema.ExecutionResult{Success: true, Output: output}
	}
}

// jsonHandler is the one handler that inspects its input for real:
// the snippet must parse as JSON.
func jsonHandler(code string, _ RandSource) schema.ExecutionResult {
	var v any
	if err := json.Unmarshal([]byte(code), &v); err != nil {
		return schema.ExecutionResult{
			Success: false,
			Error:   "Invalid JSON syntax",
			Output:  fmt.Sprintf("JSON Parse Error: %v", err),
		}
	}
	return schema.ExecutionResult{Success: true, Output: "JSON is valid ✓"}
}

var javascriptOutputs = []string{
	"Hello, CodeTribe!",
	"Welcome Developer!",
	"JavaScript is running!",
	"42",
	"true",
	"[1, 2, 3, 4, 5]",
	`{ name: "CodeTribe", version: "1.0" }`,
	"Function executed successfully",
}

var pythonOutputs = []string{
	"Hello from Python!",
	"Fibonacci sequence: [0, 1, 1, 2, 3, 5, 8, 13, 21, 34]",
	"Python is awesome!",
	"42",
	"True",
	"[1, 4, 9, 16, 25]",
	"List comprehension result: [2, 4, 6, 8, 10]",
	"Dictionary: {'key': 'value'}",
}

var javaOutputs = []string{
	"=== Session: DEMO123 ===\nAdded member: Alice (Frontend Developer)\nAdded member: Bob (Backend Developer)",
	"Hello, CodeTribe!\nMessage: HELLO, CODETRIBE!\nSum of numbers: 15",
	"Java application started\nProcessing complete",
	"42",
	"true",
	"Array processed: [1, 2, 3, 4, 5]",
}

var cOutputs = []string{
	"=== CodeTribe C Programming Demo ===\nCreated session: C_SESSION_2024\nAdded user: Alice Developer (ID: 1)",
	"Maximum: 89\nMinimum: 7\nSum: 120\nAverage: 17.14",
	"fib(5) = 5\nfib(6) = 8\nfib(7) = 13",
	"Array Operations Demo\nOriginal array: 15 7 23 9 42 8 16",
	"Memory allocation successful\nProcessing complete",
}

var goOutputs = []string{
	"=== CodeTribe Go Demo ===\nAdded member: Alice Johnson (Backend Developer)\nSum of data1: 15\nSum of data2: 40",
	"Original slice: [64 25 12 22 11 90 5 77 30]\nSorted slice: [5 11 12 22 25 30 64 77 90]",
	"Go: Backend/Systems\nJavascript: Frontend/Backend\nPython: Data Science/Backend",
	"Goroutines completed successfully",
	"Channel communication working",
}

var rustOutputs = []string{
	"=== CodeTribe Rust Demo ===\nCreated new session: RUST_SESSION_2024\nAdding member: Alice Johnson (Systems Developer)",
	"Maximum number: 91\nMaximum word (lexicographically): safe",
	"10.0 / 2.0 = 5\nError: Cannot divide by zero!",
	"Original vector: [1, 2, 3, 4, 5]\nVector length: 5\nSum of elements: 15",
	"🦀 Rust: Fast, Reliable, Productive — Pick Three! 🦀",
}

var csharpOutputs = []string{
	"=== CodeTribe C# Demo ===\nCreated session: CSHARP_2024\nAdded member: Alice (Frontend Developer)",
	"Original: [1, 2, 3, 4, 5, 6, 7, 8, 9, 10]\nEven numbers: [2, 4, 6, 8, 10]\nSum: 55",
	"Starting async operation...\nTask 1 completed!\nAll async tasks completed!",
	"Active members: 3\n- Alice Johnson (Frontend Developer)",
	".NET application running successfully",
}

var phpOutputs = []string{
	"=== CodeTribe PHP Demo ===\nCreated session: PHP_SESSION_2024\nAdded member: Alice Johnson (Full Stack Developer)",
	"Maximum: 91\nMinimum: 12\nSum: 361\nAverage: 51.57",
	"Even numbers: 12, 34\nSquared: 529, 2025, 144, 7921, 1156, 4489, 8281",
	"- PHP: 3 developer(s)\n- Laravel: 1 developer(s)\n- MySQL: 1 developer(s)",
	"🐘 PHP: The web development powerhouse! 🚀",
}

var rubyOutputs = []string{
	"=== CodeTribe Ruby Demo ===\nCreated session: RUBY_SESSION_2024\nAdded member: Alice Johnson (Full Stack Developer)",
	"Maximum: 91\nMinimum: 12\nSum: 361\nAverage: 51.57142857142857",
	"Long words: javascript, python\nShort words: ruby, rust\nCountdown: 5.. 4.. 3.. 2.. 1.. Blast off! 🚀",
	"Ruby developers: Alice Johnson, Bob Smith, Charlie Brown",
	"💎 Ruby: Programmer happiness and productivity! ✨",
}

var sqlOutputs = []string{
	"Table created successfully: users\n3 rows inserted\nQuery executed: SELECT * FROM users",
	"id | username     | email                | created_at\n1  | alice_dev    | alice@codetribe.com  | 2024-01-15 10:30:00\n2  | bob_coder    | bob@codetribe.com    | 2024-01-15 10:31:00",
	"UPDATE successful: 1 row affected\nSELECT executed: 2 rows returned",
	"signup_date  | new_users\n2024-01-15   | 3\n2024-01-16   | 1",
	"Query optimization complete\nExecution plan generated",
}
