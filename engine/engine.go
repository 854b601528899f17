package engine

import (
	"context"
	"fmt"
	"strconv"

	"quarteto/engine/ast"
	"quarteto/engine/interpreter"
	"quarteto/lib/timer"
	"quarteto/pcache"

	"github.com/samber/mo"
	"github.com/zeebo/xxh3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

type Result struct {
	Output      []string                 `json:"output"`
	Diagnostics []interpreter.Diagnostic `json:"diagnostics"`
	Bindings    map[string]string        `json:"bindings"`
}

type ProgramExecutor struct {
	cache  mo.Option[pcache.PCache]
	logger *zap.Logger
	// concurrent misses on the same program share one parse
	flight *singleflight.Group
}

func NewProgramExecutor(cache mo.Option[pcache.PCache], logger *zap.Logger) ProgramExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return ProgramExecutor{cache: cache, logger: logger, flight: &singleflight.Group{}}
}

// Exec runs source in vocab against a copy of bindings. The returned
// Result holds the final bindings; the caller's map is left untouched.
// Programs never fail, so the only error is ctx ending first.
func (ex ProgramExecutor) Exec(ctx context.Context, vocab ast.Vocabulary, source string, bindings map[string]string) (Result, error) {
	defer timer.Start("engine.exec").Stop()
	if len(vocab.Keywords) == 0 {
		return Result{}, fmt.Errorf("vocabulary '%s' defines no keywords", vocab.Name)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	// copied here so that the caller may reuse bindings as soon as Exec
	// returns, even if the run is still going
	env := interpreter.FromMap(bindings)
	resch := make(chan Result, 1)
	go func() {
		rec := &interpreter.Recorder{}
		ip := interpreter.NewInterpreter(vocab, rec,
			interpreter.WithLogger(ex.logger),
			interpreter.WithParser(ex.parser()),
			interpreter.WithContext(ctx),
		)
		ip.Run(source, env)
		resch <- Result{
			Output:      nonNil(rec.Output),
			Diagnostics: rec.Diagnostics,
			Bindings:    env.Bindings(),
		}
	}()
	select {
	case res := <-resch:
		if res.Diagnostics == nil {
			res.Diagnostics = []interpreter.Diagnostic{}
		}
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

func (ex ProgramExecutor) parser() interpreter.Parser {
	cache, ok := ex.cache.Get()
	if !ok {
		return interpreter.ParserFunc(ast.Parse)
	}
	flight := ex.flight
	if flight == nil {
		flight = &singleflight.Group{}
	}
	return cachingParser{cache: cache, flight: flight}
}

// cachingParser memoizes ast.Parse. Parsing has no side effects, so a
// cached program behaves exactly like a freshly parsed one.
type cachingParser struct {
	cache  pcache.PCache
	flight *singleflight.Group
}

func programKey(source string, vocab ast.Vocabulary) uint64 {
	return xxh3.HashString(vocab.Name + "\x00" + source)
}

func (c cachingParser) Parse(source string, vocab ast.Vocabulary) ast.Program {
	key := programKey(source, vocab)
	if v, ok := c.cache.Get(key); ok {
		if prog, ok := v.(ast.Program); ok {
			return prog
		}
	}
	v, _, _ := c.flight.Do(strconv.FormatUint(key, 16), func() (interface{}, error) {
		prog := ast.Parse(source, vocab)
		c.cache.Set(key, prog, int64(len(source))+1)
		return prog, nil
	})
	return v.(ast.Program)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
