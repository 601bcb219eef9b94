package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"regexp"

	"github.com/aabizri/lsys"
	"github.com/aabizri/lsys/interchange"
	"github.com/aabizri/lsys/interchange/lsif"
	"github.com/aabizri/lsys/sink"
	"github.com/aabizri/lsys/turtle"
	"github.com/pkg/errors"
)

const (
	orderInQueueSize  = 5
	orderOutQueueSize = 0
	outQueueSize      = 5
)

// listen processes every document of r and writes the results to w, or to
// files in opts.outDir, in input order. Programs failing to import or to run
// are logged and reported in the returned error once the stream is done;
// a document that cannot be decoded stops the stream.
func listen(ctx context.Context, w io.Writer, r io.Reader, opts *options, logger *slog.Logger) error {
	in, out := buildPipeline(ctx, opts, logger)

	// Consume the results in order
	done := make(chan error, 1)
	go func() {
		var failed, total int
		var writeErr error
		for o := range out {
			total++
			if o.err != nil {
				failed++
				logger.Error("program failed", "seq", o.seq, "doc", o.doc, "name", o.name(), "error", o.err)
				continue
			}
			if writeErr != nil {
				continue
			}
			if writeErr = emit(w, o, opts); writeErr != nil {
				logger.Error("couldn't write output", "seq", o.seq, "name", o.name(), "error", writeErr)
				continue
			}
			logger.Info("program done",
				"seq", o.seq,
				"name", o.name(),
				"length", len(o.word),
				"actions", o.result.Actions,
				"open_branches", o.result.OpenBranches,
			)
		}

		switch {
		case writeErr != nil:
			done <- writeErr
		case failed > 0:
			done <- errors.Errorf("%d of %d programs failed", failed, total)
		default:
			done <- nil
		}
	}()

	dec := lsif.NewDecoder(r)
	var decodeErr error
	for seq, doc := 0, 0; ; doc++ {
		format, err := dec.Decode()
		if err == io.EOF {
			break
		} else if err != nil {
			decodeErr = errors.Wrapf(err, "error while decoding document #%d", doc)
			break
		}
		if isEmpty(format) {
			logger.Debug("skipping empty document", "doc", doc)
			continue
		}

		o := &order{seq: seq, doc: doc}
		o.program, err = format.Import()
		if err != nil {
			o.err = errors.Wrap(err, "error while importing format")
			o.program = &interchange.Program{Name: format.Name}
		}
		logger.Debug("document read", "seq", seq, "name", o.name())
		in <- o
		seq++
	}
	close(in)

	err := <-done
	if decodeErr != nil {
		return decodeErr
	}
	return err
}

func isEmpty(f *lsif.Format) bool {
	return f.Name == "" && f.Axiom == "" && len(f.Rules) == 0 && len(f.Actions) == 0
}

type order struct {
	seq int
	doc int

	program *interchange.Program
	err     error

	word    lsys.Word
	result  turtle.Result
	encoded []byte
}

func (o *order) name() string {
	if o.program != nil && o.program.Name != "" {
		return o.program.Name
	}
	return fmt.Sprintf("%03d", o.seq)
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// fileName is unique per document: documents may share a name.
func (o *order) fileName(format string) string {
	name := fmt.Sprintf("%03d", o.seq)
	if o.program != nil && o.program.Name != "" {
		name += "-" + unsafeFileChars.ReplaceAllString(o.program.Name, "_")
	}
	if format == formatText {
		format = "txt"
	}
	return name + "." + format
}

func emit(w io.Writer, o *order, opts *options) error {
	data := o.encoded
	if opts.format == formatText {
		data = []byte(o.word.String() + "\n")
	}

	if opts.outDir == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(filepath.Join(opts.outDir, o.fileName(opts.format)), data, 0o644)
}

func buildPipeline(ctx context.Context, opts *options, logger *slog.Logger) (in chan<- *order, out <-chan *order) {
	orderInQueue := make(chan *order, orderInQueueSize)
	outQueue := make(chan *order, outQueueSize)
	orderOutQueues := make([]<-chan *order, opts.workers)

	for i := range orderOutQueues {
		q := make(chan *order, orderOutQueueSize)
		go run(ctx, opts, logger, orderInQueue, q)
		orderOutQueues[i] = q
	}
	go resolve(orderOutQueues, outQueue)

	return orderInQueue, outQueue
}

func run(ctx context.Context, opts *options, logger *slog.Logger, orderInQueue <-chan *order, orderOutQueue chan<- *order) {
	for o := range orderInQueue {
		if o.err == nil {
			o.err = process(ctx, o, opts, logger)
		}
		orderOutQueue <- o
	}
	close(orderOutQueue)
}

// process expands the program of o, then draws it unless the output is text.
func process(ctx context.Context, o *order, opts *options, logger *slog.Logger) error {
	p := o.program
	if opts.maxLength > 0 {
		if err := p.CheckLength(opts.maxLength); err != nil {
			return err
		}
	}

	word, err := p.Expand(ctx)
	if err != nil {
		return errors.Wrap(err, "error while expanding")
	}
	o.word = word

	if opts.format == formatText {
		return nil
	}

	enc, err := sink.New(opts.format, opts.style)
	if err != nil {
		return err
	}
	interpreter := turtle.NewInterpreter(p.Registry)
	interpreter.Strict = opts.strict
	interpreter.Logger = logger.With("seq", o.seq, "name", o.name())
	if o.result, err = p.Draw(interpreter, word, enc); err != nil {
		return errors.Wrap(err, "error while drawing")
	}

	var buf bytes.Buffer
	if _, err := enc.WriteTo(&buf); err != nil {
		return errors.Wrapf(err, "error while encoding %s", opts.format)
	}
	o.encoded = buf.Bytes()
	return nil
}

// resolve forwards the orders coming from the workers in sequence order.
//
// One order is buffered per queue: if it is the next in the sequence it is
// forwarded, else that queue's spot in the buffer is taken and the queue is
// not selected on until the spot is freed. In the worst case all slots are
// taken but one, the queue that will deliver the next order.
func resolve(orderOutQueues []<-chan *order, outQueue chan<- *order) {
	seq := -1
	buffer := make([]*order, len(orderOutQueues))

	// The mask marks an order out queue as being closed, so that it is
	// disregarded for queue selection
	mask := make([]bool, len(orderOutQueues))

	// Forward buffered orders as long as one is next in the sequence
	flush := func() {
		for progress := true; progress; {
			progress = false
			for i, buffered := range buffer {
				if buffered != nil && buffered.seq == seq+1 {
					outQueue <- buffered
					seq++
					buffer[i] = nil
					progress = true
				}
			}
		}
	}

	selectCases := make([]reflect.SelectCase, len(orderOutQueues))
	for i, ooq := range orderOutQueues {
		selectCases[i] = reflect.SelectCase{
			Dir:  reflect.SelectRecv,
			Chan: reflect.ValueOf(ooq),
		}
	}

	subSelectCases := make([]reflect.SelectCase, 0, len(orderOutQueues))
	subSelectCaseToOrderQueueIndex := make([]int, 0, len(orderOutQueues))

	for {
		allMasked := true
		for _, masked := range mask {
			if !masked {
				allMasked = false
				break
			}
		}
		if allMasked {
			flush()
			close(outQueue)
			return
		}

		subSelectCases = subSelectCases[:0]
		subSelectCaseToOrderQueueIndex = subSelectCaseToOrderQueueIndex[:0]
		for i, sc := range selectCases {
			if buffer[i] == nil && !mask[i] {
				subSelectCases = append(subSelectCases, sc)
				subSelectCaseToOrderQueueIndex = append(subSelectCaseToOrderQueueIndex, i)
			}
		}

		// Every open queue has its slot taken yet none holds the next order:
		// sequence numbers were not incremental.
		if len(subSelectCases) == 0 {
			panic("no cases produced, are the sequence numbers really incremental?")
		}

		chosen, recv, ok := reflect.Select(subSelectCases)
		queueIndex := subSelectCaseToOrderQueueIndex[chosen]
		if !ok {
			mask[queueIndex] = true
			flush()
			continue
		}

		o := recv.Interface().(*order)
		if o.seq == seq+1 {
			outQueue <- o
			seq++
			flush()
		} else {
			buffer[queueIndex] = o
		}
	}
}
