package main

import (
	"context"
	"fmt"
	"io"

	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/prepaint"
	"github.com/npillmayer/paintprops/paint/propdbg"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDumpCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file.html ...]",
		Short: "Print the paint property trees of HTML documents",
		Long: `Dump builds the layout tree of every document, runs a property tree
pass over it and prints the resulting trees. Without arguments, or with
argument "-", the document is read from standard input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			return process(cmd.Context(), s, args, cmd.InOrStdin(), cmd.OutOrStdout(),
				func(_ context.Context, name string, fv *layout.FrameView, w io.Writer) error {
					return dump(s.Format, name, fv, w)
				})
		},
	}
}

func dump(format, name string, fv *layout.FrameView, w io.Writer) error {
	result := (&prepaint.Walker{}).Update(fv)
	if format == "summary" {
		_, err := fmt.Fprintf(w, "%s: %v\n", name, result)
		return err
	}
	forest, err := propdbg.Collect(fv)
	if err != nil {
		return err
	}
	if format == "dot" {
		fmt.Fprintf(w, "// %s\n", name)
		return propdbg.ToGraphViz(forest, w)
	}
	_, err = fmt.Fprintf(w, "=== %s (%v)\n%s", name, result, forest)
	return err
}
