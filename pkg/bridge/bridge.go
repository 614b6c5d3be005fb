// Package bridge exposes the command dispatcher to embedded Starlark
// scripts. Bridge calls and script lines share one dispatch path, so a
// Starlark script can do exactly what a script line can and nothing more.
package bridge

import (
	"fmt"
	"log/slog"
	"time"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/yukidoke/tsugi/pkg/engine"
)

// Engine is the dispatch surface the bridge needs from the interpreter.
type Engine interface {
	ClassifyAndDispatch(args []string, now time.Time) engine.Status
	ChangeBackground(name string, now time.Time) engine.Status
}

// Runner executes Starlark sources with the engine builtins predeclared.
type Runner struct {
	engine      Engine
	now         func() time.Time
	log         *slog.Logger
	predeclared starlark.StringDict
	opts        *syntax.FileOptions
}

func NewRunner(eng Engine, now func() time.Time, log *slog.Logger) *Runner {
	if now == nil {
		now = time.Now
	}
	r := &Runner{
		engine: eng,
		now:    now,
		log:    log,
		opts: &syntax.FileOptions{
			Set:             true,
			While:           true,
			TopLevelControl: true,
		},
	}
	r.predeclared = starlark.StringDict{
		"vn_execute_command":   starlark.NewBuiltin("vn_execute_command", r.executeCommand),
		"vn_change_background": starlark.NewBuiltin("vn_change_background", r.changeBackground),
	}
	return r
}

// Run executes a Starlark source. name labels the source in errors; src is a
// string, []byte or io.Reader, or nil to read the file at name.
func (r *Runner) Run(name string, src any) error {
	thread := &starlark.Thread{
		Name: name,
		Print: func(_ *starlark.Thread, msg string) {
			r.log.Info("starlark print", "script", name, "message", msg)
		},
	}
	if _, err := starlark.ExecFileOptions(r.opts, thread, name, src, r.predeclared); err != nil {
		return fmt.Errorf("starlark %s: %w", name, err)
	}
	return nil
}

// executeCommand implements vn_execute_command(*args). Each argument becomes
// one delimiter-separated token of the command line; the returned int is the
// dispatch status.
func (r *Runner) executeCommand(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if len(kwargs) > 0 {
		return nil, fmt.Errorf("%s: unexpected keyword arguments", fn.Name())
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: want at least one argument", fn.Name())
	}
	tokens := make([]string, len(args))
	for i, arg := range args {
		s, ok := starlark.AsString(arg)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d: want string, got %s", fn.Name(), i+1, arg.Type())
		}
		tokens[i] = s
	}
	status := r.engine.ClassifyAndDispatch(tokens, r.now())
	return starlark.MakeInt(int(status)), nil
}

// changeBackground implements vn_change_background(name).
func (r *Runner) changeBackground(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	if err := starlark.UnpackPositionalArgs(fn.Name(), args, kwargs, 1, &name); err != nil {
		return nil, err
	}
	status := r.engine.ChangeBackground(name, r.now())
	return starlark.MakeInt(int(status)), nil
}
