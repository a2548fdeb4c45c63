package main

import (
	"fmt"
	"os"

	"github.com/foomo/componentbuilder"
	"github.com/foomo/componentbuilder/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type globalFlags struct {
	configFile string
	debug      bool
}

func newRootCmd() *cobra.Command {
	gf := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:   "componentbuilder",
		Short: "convert html markup into ui component element trees",
		Long: `componentbuilder converts a fragment of html into a tree of element
descriptors. Rules from a yaml config can replace element types, add default
props or drop elements.

Examples:
  # convert a file with the default identity rules
  componentbuilder convert fragment.html

  # read from stdin and apply rules
  echo '<b>hi</b>' | componentbuilder convert --config rules.yaml -

  # serve conversions over http
  componentbuilder serve --config rules.yaml --addr :8080`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&gf.configFile, "config", "c", "", "path/to/config.yaml with rules")
	rootCmd.PersistentFlags().BoolVar(&gf.debug, "debug", false, "enable debug logging")
	rootCmd.AddCommand(newConvertCmd(gf), newServeCmd(gf))
	return rootCmd
}

func (gf *globalFlags) logger() (l *zap.Logger, err error) {
	if gf.debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (gf *globalFlags) builder(l *zap.Logger, opts ...componentbuilder.Option) (b *componentbuilder.Builder, err error) {
	opts = append([]componentbuilder.Option{componentbuilder.WithLogger(l)}, opts...)
	if gf.configFile == "" {
		return componentbuilder.New(nil, opts...), nil
	}
	conf, errConf := config.Get(gf.configFile)
	if errConf != nil {
		return nil, errConf
	}
	l.Debug("loaded config", zap.String("file", gf.configFile), zap.Int("rules", len(conf.Rules)))
	return componentbuilder.NewFromConfig(conf, opts...)
}

func main() {
	if errExecute := newRootCmd().Execute(); errExecute != nil {
		fmt.Fprintln(os.Stderr, "componentbuilder:", errExecute)
		os.Exit(1)
	}
}
