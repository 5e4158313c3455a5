package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/paint/prepaint"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// errUnstable is reported if a pass without invalidations changes the trees.
var errUnstable = errors.New("second pass changed the property trees")

func newVerifyCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file.html ...]",
		Short: "Check the property trees of HTML documents",
		Long: `Verify builds the property trees of every document and checks that all
nodes are connected to their roots, that local transform spaces nest
properly and that a second pass leaves the trees unchanged.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(v)
			if err != nil {
				return err
			}
			return process(cmd.Context(), s, args, cmd.InOrStdin(), cmd.OutOrStdout(), verify)
		},
	}
}

func verify(ctx context.Context, name string, fv *layout.FrameView, w io.Writer) error {
	var walker prepaint.Walker
	walker.Update(fv)
	if err := prepaint.Verify(ctx, fv); err != nil {
		return err
	}
	if r := walker.Update(fv); r.Changed() {
		return fmt.Errorf("%w: %v", errUnstable, r)
	}
	var publisher prepaint.Publisher
	snap, err := publisher.Publish(fv)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s: ok, %d objects, %d property nodes\n", name, len(snap.Fragments), snap.NodeCount)
	return err
}
