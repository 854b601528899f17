package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"strings"

	"quarteto/engine/ast"
	"quarteto/engine/interpreter"
	"quarteto/stage"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
)

const demo = `
    definir nome como "lalala"
    mostrar "O nome é" + nome
    se verdadeiro então mostrar "Isso é verdadeiro"
    enquanto verdadeiro faça mostrar "Dentro do laço"
`

type CLIArgs struct {
	Vocabulary        string   `arg:"--vocabulary,env:QUARTETO_VOCABULARY" default:"musical" help:"keyword set the program is written in"`
	Set               []string `arg:"--set,separate" help:"bind NAME=VALUE before the program runs"`
	Eval              string   `arg:"--eval" help:"run this text instead of a file"`
	File              string   `arg:"positional" help:"program file; stdin when absent"`
	DiagnosticsStderr bool     `arg:"--diagnostics-stderr" help:"write diagnostics to stderr instead of stdout"`
	Translate         string   `arg:"--translate" help:"print the program in another vocabulary instead of running it"`
	Demo              bool     `arg:"--demo" help:"run the built-in sample program"`
	Verbose           bool     `arg:"--verbose,-v" help:"log skipped lines to stderr"`
}

func (CLIArgs) Description() string {
	return "quarteto runs line-oriented Portuguese keyword programs"
}

func main() {
	var flags CLIArgs
	arg.MustParse(&flags)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.SetOutput(ioutil.Discard)

	logger := zap.NewNop()
	if flags.Verbose {
		var err error
		if logger, err = stage.NewLogger(true); err != nil {
			panic(fmt.Sprintf("failed to construct logger: %v", err))
		}
		defer logger.Sync()
	}
	if err := run(flags, os.Stdin, os.Stdout, os.Stderr, logger); err != nil {
		fmt.Fprintf(os.Stderr, "quarteto: %v\n", err)
		os.Exit(1)
	}
}

func run(flags CLIArgs, stdin io.Reader, stdout, stderr io.Writer, logger *zap.Logger) error {
	vocab, err := ast.VocabularyByName(flags.Vocabulary)
	if err != nil {
		return err
	}
	source, err := readSource(flags, stdin)
	if err != nil {
		return err
	}
	if flags.Demo {
		vocab = ast.Classic
	}

	if flags.Translate != "" {
		to, err := ast.VocabularyByName(flags.Translate)
		if err != nil {
			return err
		}
		translated, err := ast.Translate(source, vocab, to)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(stdout, translated)
		return err
	}

	env, err := parseBindings(flags.Set)
	if err != nil {
		return err
	}
	diag := stdout
	if flags.DiagnosticsStderr {
		diag = stderr
	}
	sink := interpreter.NewWriterSink(stdout, diag)
	interpreter.NewInterpreter(vocab, sink, interpreter.WithLogger(logger)).Run(source, env)
	return sink.Err()
}

func readSource(flags CLIArgs, stdin io.Reader) (string, error) {
	given := 0
	for _, set := range []bool{flags.Demo, flags.Eval != "", flags.File != ""} {
		if set {
			given++
		}
	}
	if given > 1 {
		return "", fmt.Errorf("only one of --demo, --eval and FILE can be given")
	}
	switch {
	case flags.Demo:
		return demo, nil
	case flags.Eval != "":
		return flags.Eval, nil
	case flags.File != "":
		data, err := ioutil.ReadFile(flags.File)
		if err != nil {
			return "", fmt.Errorf("failed to read program: %v", err)
		}
		return string(data), nil
	default:
		data, err := ioutil.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read program from stdin: %v", err)
		}
		return string(data), nil
	}
}

func parseBindings(pairs []string) (*interpreter.Env, error) {
	env := interpreter.NewEnv()
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid binding '%s': expected NAME=VALUE", pair)
		}
		env.Set(strings.TrimSpace(name), value)
	}
	return env, nil
}
