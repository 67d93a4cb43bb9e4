package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/prgtools/prgconv/convert"
)

func newRootCommand() *cobra.Command {
	var configFlag, formatFlag, levelFlag string
	var prettyOff bool

	ctx := &commandContext{
		configFlag:    &configFlag,
		formatFlag:    &formatFlag,
		levelFlag:     &levelFlag,
		prettyOffFlag: &prettyOff,
	}

	rootCmd := &cobra.Command{
		Use:           "prgconv [flags] <in_file>",
		Short:         "Convert programs between the binary and the text format",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, ctx, args[0])
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	flags.StringVarP(&formatFlag, "format", "f", "auto", "Input format: auto, binary or text")
	flags.StringVar(&levelFlag, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.Flags().BoolVarP(&prettyOff, "pretty-print-off", "p", false, "Do not print the decoded program")

	rootCmd.AddCommand(newInspectCommand(ctx))
	rootCmd.AddCommand(newConfigCommand())

	return rootCmd
}

func runConvert(cmd *cobra.Command, ctx *commandContext, inPath string) error {
	s, err := ctx.open(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	opts := []convert.Option{
		convert.WithLogger(s.log),
		convert.WithFormat(s.cfg.InputFormat()),
		convert.WithLock(s.cfg.Convert.Lock),
	}
	if s.cfg.Convert.PrettyPrint {
		opts = append(opts, convert.WithPrettyPrint(cmd.OutOrStdout()))
	}

	converter, err := convert.NewConverter(opts...)
	if err != nil {
		return err
	}

	res, err := converter.Convert(cmd.Context(), inPath)
	if err != nil {
		s.log.Error("conversion failed", "path", inPath, "error", err)
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s file: %s\n", res.To, res.Output)

	return nil
}
