package interpreter

import (
	"context"
	"fmt"

	"quarteto/engine/ast"
	"quarteto/lib/timer"

	"go.uber.org/zap"
)

// Parser turns program text into statements. The default is ast.Parse; a
// caching parser can be plugged in with WithParser.
type Parser interface {
	Parse(source string, vocab ast.Vocabulary) ast.Program
}

type ParserFunc func(source string, vocab ast.Vocabulary) ast.Program

func (f ParserFunc) Parse(source string, vocab ast.Vocabulary) ast.Program {
	return f(source, vocab)
}

type Option func(*Interpreter)

func WithLogger(logger *zap.Logger) Option {
	return func(i *Interpreter) {
		i.logger = logger
	}
}

func WithParser(p Parser) Option {
	return func(i *Interpreter) {
		i.parser = p
	}
}

// WithContext attaches ctx so that executed lines are recorded on the trace
// started by timer.WithTracing, if any.
func WithContext(ctx context.Context) Option {
	return func(i *Interpreter) {
		i.ctx = ctx
	}
}

type Interpreter struct {
	vocab  ast.Vocabulary
	sink   Sink
	parser Parser
	logger *zap.Logger
	ctx    context.Context
}

func NewInterpreter(vocab ast.Vocabulary, sink Sink, opts ...Option) *Interpreter {
	ret := &Interpreter{
		vocab:  vocab,
		sink:   sink,
		parser: ParserFunc(ast.Parse),
		logger: zap.NewNop(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (i *Interpreter) Vocabulary() ast.Vocabulary {
	return i.vocab
}

// Run executes source line by line against env and returns env. A nil env
// is replaced by a fresh one, so separate calls never share bindings unless
// the caller passes the same Env. Run never fails: lines that can not be
// executed are reported to the sink and skipped.
func (i *Interpreter) Run(source string, env *Env) *Env {
	if env == nil {
		env = NewEnv()
	}
	i.exec(source, env, 0)
	return env
}

// exec is the single entry point for top level programs and for the bodies
// of conditionals and loops. A non-zero pos pins every diagnostic to the
// line that holds the body.
func (i *Interpreter) exec(source string, env *Env, pos int) {
	for _, node := range i.parser.Parse(source, i.vocab) {
		f := frame{ip: i, env: env, pos: node.Pos}
		if pos > 0 {
			f.pos = pos
		}
		node.Accept(f)
	}
}

type frame struct {
	ip  *Interpreter
	env *Env
	pos int
}

var _ ast.Visitor = frame{}

func (f frame) VisitAssign(name, value string) {
	f.executed(ast.RoleAssign)
	f.env.Set(name, value)
}

func (f frame) VisitPrint(expr ast.Expr) {
	f.executed(ast.RolePrint)
	f.ip.sink.Emit(f.eval(expr))
}

func (f frame) VisitIf(condition, body string) {
	f.executed(ast.RoleConditional)
	if condition == f.ip.vocab.True {
		f.ip.exec(body, f.env, f.pos)
	}
}

// The condition is never re-evaluated, so the body runs at most once.
func (f frame) VisitLoop(condition, body string) {
	f.executed(ast.RoleLoop)
	if condition == f.ip.vocab.True {
		f.ip.exec(body, f.env, f.pos)
	}
}

func (f frame) VisitMalformed(_ ast.Role, raw string) {
	f.report(SyntaxError, raw)
}

func (f frame) VisitUnknown(raw string) {
	f.report(UnrecognizedCommand, raw)
}

// eval concatenates the terms of expr. Unbound identifiers stand for
// themselves. It never writes to the env.
func (f frame) eval(expr ast.Expr) string {
	out := make([]byte, 0, 64)
	for _, term := range expr {
		if term.Kind == ast.Literal {
			out = append(out, term.Text...)
		} else {
			out = append(out, f.env.Resolve(term.Text)...)
		}
	}
	return string(out)
}

func (f frame) executed(role ast.Role) {
	statementsTotal.WithLabelValues(role.String()).Inc()
	timer.Mark(f.ip.ctx, fmt.Sprintf("line %d: %s", f.pos, role))
}

func (f frame) report(kind DiagnosticKind, raw string) {
	d := Diagnostic{Kind: kind, Pos: f.pos, Line: raw}
	diagnosticsTotal.WithLabelValues(kind.String()).Inc()
	f.ip.logger.Debug("skipping line",
		zap.String("kind", kind.String()),
		zap.Int("pos", f.pos),
		zap.String("line", raw),
	)
	f.ip.sink.Report(d)
}
