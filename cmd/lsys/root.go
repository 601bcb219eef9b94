package main

import (
	"io"
	"os"
	"strings"

	"github.com/aabizri/lsys/internal/logging"
	"github.com/aabizri/lsys/sink"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// formatText writes the expanded word instead of drawing it.
const formatText = "text"

// DefaultMaxLength bounds expanded words unless --max-length says otherwise.
const DefaultMaxLength = 1 << 26

type options struct {
	format    string
	outDir    string
	workers   int
	maxLength uint64
	strict    bool
	logLevel  string
	style     sink.Style
}

func newRootCmd() *cobra.Command {
	opts := &options{style: sink.DefaultStyle}

	cmd := &cobra.Command{
		Use:   "lsys [file.lsif.yml...]",
		Short: "Expand L-systems and draw them with a turtle",
		Long: `lsys reads a stream of LSIF documents (from the given files, or stdin),
expands each program and either prints the expanded word or draws it.

Documents are processed concurrently and output in input order.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			logger := logging.New(level)

			if opts.format != formatText {
				if _, err := sink.New(opts.format, opts.style); err != nil {
					return err
				}
			}
			if opts.workers < 1 {
				return errors.Errorf("--workers must be at least 1, got %d", opts.workers)
			}
			if opts.outDir != "" {
				if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
					return errors.Wrap(err, "error while creating output directory")
				}
			}

			r, closeAll, err := openInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			defer closeAll()

			return listen(cmd.Context(), cmd.OutOrStdout(), r, opts, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", formatText,
		"output format: "+formatText+", "+strings.Join(sink.Formats(), ", "))
	flags.StringVarP(&opts.outDir, "out-dir", "o", "", "write one file per document in this directory instead of stdout")
	flags.IntVarP(&opts.workers, "workers", "w", 1, "number of documents processed concurrently")
	flags.Uint64Var(&opts.maxLength, "max-length", DefaultMaxLength, "reject programs whose expanded word would be longer (0 disables)")
	flags.BoolVar(&opts.strict, "strict", false, "fail drawings ending with unclosed branches")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.Float64Var(&opts.style.Width, "width", sink.DefaultStyle.Width, "page width")
	flags.Float64Var(&opts.style.Height, "height", sink.DefaultStyle.Height, "page height")
	flags.Float64Var(&opts.style.Margin, "margin", sink.DefaultStyle.Margin, "page margin")
	flags.Float64Var(&opts.style.LineWidth, "line-width", sink.DefaultStyle.LineWidth, "line width")
	flags.StringVar(&opts.style.Stroke, "stroke", sink.DefaultStyle.Stroke, "line color")
	flags.StringVar(&opts.style.Background, "background", sink.DefaultStyle.Background, "page color, empty for transparent")

	return cmd
}

// openInputs chains the given files as one document stream, or returns stdin
// when there are none.
func openInputs(stdin io.Reader, paths []string) (io.Reader, func(), error) {
	if len(paths) == 0 {
		return stdin, func() {}, nil
	}

	var files []*os.File
	closeAll := func() {
		for _, f := range files {
			f.Close()
		}
	}

	readers := make([]io.Reader, 0, 2*len(paths))
	for i, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			closeAll()
			return nil, nil, errors.Wrapf(err, "couldn't open input")
		}
		files = append(files, f)
		if i > 0 {
			readers = append(readers, strings.NewReader("\n---\n"))
		}
		readers = append(readers, f)
	}
	return io.MultiReader(readers...), closeAll, nil
}
