package rules

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	zygo "github.com/glycerine/zygomys/zygo"
)

// DefaultTimeout is the hard limit for a single check run.
const DefaultTimeout = 5 * time.Second

// ScriptError reports a parse or runtime failure in the check source,
// with a 1-based line number when one could be extracted.
type ScriptError struct {
	Line    int
	Message string
}

func (e *ScriptError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Engine runs acceptance checks. It is safe for concurrent use; each call
// to Check creates a fresh sandboxed environment for determinism.
type Engine struct {
	mu         sync.Mutex
	generation uint64
	timeout    time.Duration
}

// NewEngine creates an Engine with the default timeout.
func NewEngine() *Engine {
	return &Engine{timeout: DefaultTimeout}
}

// NewEngineWithTimeout creates an Engine with a custom hard limit per run.
func NewEngineWithTimeout(timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{timeout: timeout}
}

// checkOutcome passes a finished run through the result channel.
type checkOutcome struct {
	result *CheckResult
	err    error
}

// Check evaluates the check source against the report.
//
// Return semantics:
//   - On success: the CheckResult, including any recorded issues.
//   - On a parse/runtime error in the source: a *ScriptError.
//   - On timeout or panic: a plain error.
func (e *Engine) Check(source string, rep *Report) (*CheckResult, error) {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	ch := make(chan checkOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ch <- checkOutcome{err: fmt.Errorf("panic during check: %v", r)}
			}
		}()
		result, err := e.check(source, rep)
		ch <- checkOutcome{result: result, err: err}
	}()

	return e.waitOutcome(ch, gen)
}

// waitOutcome blocks until the evaluation goroutine reports or the timeout
// fires, discarding results from superseded runs.
func (e *Engine) waitOutcome(ch <-chan checkOutcome, gen uint64) (*CheckResult, error) {
	timer := time.NewTimer(e.timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		e.mu.Lock()
		current := e.generation
		e.mu.Unlock()
		if gen != current {
			// A newer check was started; this result is stale.
			return nil, fmt.Errorf("check superseded by newer request")
		}
		return out.result, out.err

	case <-timer.C:
		// The goroutine may still be running; the generation counter makes
		// sure its eventual result is discarded.
		return nil, fmt.Errorf("check timed out after %s", e.timeout)
	}
}

// check performs the actual evaluation in a fresh sandbox. Sandbox mode
// keeps user code away from the filesystem and syscalls.
func (e *Engine) check(source string, rep *Report) (*CheckResult, error) {
	col := &collector{}

	// Empty source is a valid check that records nothing.
	if strings.TrimSpace(source) == "" {
		return col.result(), nil
	}

	env := zygo.NewZlispSandbox()
	defer env.Stop()

	registerBuiltins(env, rep, col)

	if err := env.LoadString(preprocess(source)); err != nil {
		return nil, toScriptError(err)
	}
	if _, err := env.Run(); err != nil {
		return nil, toScriptError(err)
	}

	return col.result(), nil
}

// linePattern matches zygomys messages of the form "Error on line N: ...".
var linePattern = regexp.MustCompile(`(?i)(?:error )?on line (\d+):\s*(.*)`)

// toScriptError converts a zygomys error into a *ScriptError, extracting
// line information when the message carries it.
func toScriptError(err error) error {
	msg := err.Error()
	if m := linePattern.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		return &ScriptError{Line: line, Message: strings.TrimSpace(m[2])}
	}
	return &ScriptError{Message: strings.TrimSpace(msg)}
}

// preprocess rewrites check source for zygomys:
//
//  1. Kebab-case identifiers become underscore form (require-watertight ->
//     require_watertight); zygomys reads hyphens as subtraction. Only
//     hyphens between identifier characters are rewritten, so unary and
//     binary minus survive.
//  2. Traditional Lisp ; line comments become // comments.
//
// String literal contents are left untouched.
func preprocess(source string) string {
	out := make([]byte, 0, len(source))
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
			continue
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]) {
			out = append(out, '_')
			i++
			continue
		}
		out = append(out, b[i])
		i++
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
