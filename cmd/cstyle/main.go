package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"cstyle/css"
)

func prepareLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = zapcore.OmitKey
	cfg.DisableCaller = true
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	return cfg.Build()
}

// decodeValue converts one YAML node into a style tree value: mappings
// become css.Tree, sequences become []any, scalars decode to their plain
// Go value.
func decodeValue(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.MappingNode:
		return decodeTree(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := decodeValue(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.AliasNode:
		return decodeValue(n.Alias)
	default:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	}
}

func decodeTree(n *yaml.Node) (css.Tree, error) {
	t := make(css.Tree, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		v, err := decodeValue(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		t[n.Content[i].Value] = v
	}
	return t, nil
}

// compileFile registers every style tree from one YAML file into the
// sheet. The file is a top-level mapping of label to style tree; labels
// starting with "@" register under that literal rule text, everything else
// registers normally and gets a generated class name. Document order is
// preserved, which fixes the order of rendered top-level blocks.
func compileFile(sheet *css.Sheet, fname string, log *zap.Logger) error {
	data, err := os.ReadFile(fname)
	if err != nil {
		return err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unable to parse YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		log.Warn("Empty document", zap.String("file", fname))
		return nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return fmt.Errorf("top level must be a mapping of label to style tree, got %s", root.Tag)
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		label := root.Content[i].Value
		tree, err := decodeTree(root.Content[i+1])
		if err != nil {
			return fmt.Errorf("unable to decode '%s': %w", label, err)
		}
		if len(label) > 0 && label[0] == '@' {
			sheet.RegisterRule(label, tree)
			log.Info("Registered rule", zap.String("file", fname), zap.String("rule", label))
		} else {
			class := sheet.Register(tree)
			log.Info("Registered style", zap.String("file", fname), zap.String("label", label), zap.String("class", class))
		}
	}
	return nil
}

func run(_ context.Context, cmd *cli.Command) error {
	log, err := prepareLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("unable to prepare logs: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	if cmd.NArg() == 0 {
		log.Warn("No input files, nothing to do")
		return nil
	}

	sheet := css.NewSheet(log)

	var errs error
	for _, fname := range cmd.Args().Slice() {
		if err := compileFile(sheet, fname, log); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("unable to compile '%s': %w", fname, err))
		}
	}
	if errs != nil {
		return errs
	}

	text := sheet.String()

	if cmd.Bool("check") {
		warnings := css.Lint(text)
		for _, w := range warnings {
			log.Warn("Lint", zap.String("warning", w))
		}
		if len(warnings) > 0 {
			return fmt.Errorf("rendered CSS failed check with %d warning(s)", len(warnings))
		}
	}

	if out := cmd.String("out"); out != "" {
		if err := os.WriteFile(out, []byte(text), 0o644); err != nil {
			return fmt.Errorf("unable to write output: %w", err)
		}
		log.Info("CSS written", zap.String("file", out), zap.Int("bytes", len(text)))
		return nil
	}
	fmt.Fprintln(os.Stdout, text)
	return nil
}

func main() {
	// allow graceful shutdown on interrupt, even though compilation is
	// pure computation and normally finishes immediately
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := &cli.Command{
		Name:            "cstyle",
		Usage:           "compile nested style trees (YAML) into deduplicated CSS",
		HideHelpCommand: true,
		ArgsUsage:       "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "verbose logging to help troubleshooting"},
			&cli.BoolFlag{Name: "check", Usage: "tokenize rendered CSS and fail on structural warnings"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, DefaultText: "", Usage: "write CSS to `FILE` instead of stdout"},
		},
		Action: run,
	}

	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
