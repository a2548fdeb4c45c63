package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/foomo/componentbuilder"
	"github.com/spf13/cobra"
)

const (
	formatJSON = "json"
	formatText = "text"
)

type convertFlags struct {
	format string
	minify bool
}

func newConvertCmd(gf *globalFlags) *cobra.Command {
	cf := &convertFlags{}
	cmd := &cobra.Command{
		Use:   "convert [path/to/fragment.html|-]",
		Short: "convert markup from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := "-"
			if len(args) == 1 {
				source = args[0]
			}
			return runConvert(gf, cf, cmd.Flags().Changed("minify"), source, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&cf.format, "format", "f", formatJSON, "output format json|text")
	cmd.Flags().BoolVar(&cf.minify, "minify", false, "minify markup before converting it")
	return cmd
}

func runConvert(gf *globalFlags, cf *convertFlags, minifyChanged bool, source string, stdin io.Reader, w io.Writer) error {
	if cf.format != formatJSON && cf.format != formatText {
		return fmt.Errorf("unknown format %q, use %s or %s", cf.format, formatJSON, formatText)
	}
	l, errLogger := gf.logger()
	if errLogger != nil {
		return errLogger
	}
	defer func() {
		_ = l.Sync()
	}()

	opts := []componentbuilder.Option{}
	if minifyChanged {
		opts = append(opts, componentbuilder.WithMinify(cf.minify))
	}
	b, errBuilder := gf.builder(l, opts...)
	if errBuilder != nil {
		return errBuilder
	}

	markup, errRead := readSource(source, stdin)
	if errRead != nil {
		return errRead
	}
	element, errBuild := b.Build(string(markup))
	if errBuild != nil {
		return fmt.Errorf("could not convert %s: %w", source, errBuild)
	}
	switch cf.format {
	case formatText:
		componentbuilder.Print(w, element)
		return nil
	default:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(element)
	}
}

func readSource(source string, stdin io.Reader) ([]byte, error) {
	if source == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(source)
}
