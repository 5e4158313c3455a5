package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/npillmayer/paintprops/layout"
	"github.com/npillmayer/paintprops/layout/htmlbuild"
	"golang.org/x/sync/errgroup"
)

// stdinName stands for the standard input in argument lists.
const stdinName = "-"

// documentFunc handles the frame view built for the document name and writes
// its output to w.
type documentFunc func(ctx context.Context, name string, fv *layout.FrameView, w io.Writer) error

// process builds the frame views of documents concurrently and hands each of
// them to handle. Outputs are written to out in argument order, once every
// document has been handled successfully.
func process(ctx context.Context, s settings, names []string, stdin io.Reader, out io.Writer,
	handle documentFunc) error {
	if len(names) == 0 {
		names = []string{stdinName}
	}
	opts := htmlbuild.Options{Viewport: s.Viewport}
	for _, path := range s.StyleSheets {
		css, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		opts.StyleSheets = append(opts.StyleSheets, string(css))
	}
	outputs := make([]bytes.Buffer, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.Parallel)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fv, err := load(name, stdin, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if err = handle(ctx, name, fv, &outputs[i]); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range outputs {
		if _, err := outputs[i].WriteTo(out); err != nil {
			return err
		}
	}
	return nil
}

func load(name string, stdin io.Reader, opts htmlbuild.Options) (*layout.FrameView, error) {
	if name == stdinName {
		return htmlbuild.Build(stdin, opts)
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return htmlbuild.Build(f, opts)
}
