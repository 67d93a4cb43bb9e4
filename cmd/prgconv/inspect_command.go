package main

import (
	"github.com/spf13/cobra"

	"github.com/prgtools/prgconv/convert"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <in_file>",
		Short: "Print a program without converting it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := ctx.open(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			converter, err := convert.NewConverter(
				convert.WithLogger(s.log),
				convert.WithFormat(s.cfg.InputFormat()),
			)
			if err != nil {
				return err
			}

			program, err := converter.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			return convert.RenderProgram(cmd.OutOrStdout(), program)
		},
	}
}
