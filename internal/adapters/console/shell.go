package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aeyjeyaryan/ultradoc/internal/core/domain"
	"github.com/aeyjeyaryan/ultradoc/internal/core/ports"
	"github.com/aeyjeyaryan/ultradoc/internal/core/usecase"
)

// Shell is the interactive read-eval loop. It owns the shared document state
// that gates ask and extract, folds the poller's advisory echo into that
// state between commands, and routes every command to its flow.
type Shell struct {
	in  io.Reader
	out io.Writer

	backend   ports.Backend
	notifier  ports.Notifier
	inspector ports.DocumentInspector
	exporter  ports.ExtractionExporter
	poller    *usecase.StatusPoller

	upload  *usecase.UploadFlow
	ask     *usecase.AskFlow
	extract *usecase.ExtractFlow

	exportPath string
	doc        domain.DocumentState
}

type Options struct {
	In         io.Reader
	Out        io.Writer
	Backend    ports.Backend
	Notifier   ports.Notifier
	Inspector  ports.DocumentInspector
	Exporter   ports.ExtractionExporter
	Poller     *usecase.StatusPoller
	ExportPath string
}

func NewShell(opts Options) *Shell {
	s := &Shell{
		in:         opts.In,
		out:        opts.Out,
		backend:    opts.Backend,
		notifier:   opts.Notifier,
		inspector:  opts.Inspector,
		exporter:   opts.Exporter,
		poller:     opts.Poller,
		exportPath: opts.ExportPath,
	}
	s.upload = usecase.NewUploadFlow(opts.Backend, opts.Notifier, s.setDocument)
	s.ask = usecase.NewAskFlow(opts.Backend, opts.Notifier, s.documentLoaded)
	s.extract = usecase.NewExtractFlow(opts.Backend, opts.Notifier, s.documentLoaded)
	return s
}

func (s *Shell) setDocument(state domain.DocumentState) { s.doc = state }
func (s *Shell) documentLoaded() bool                   { return s.doc.Loaded }

// Run reads commands until EOF, a quit command, or context cancellation.
// Stdin is drained on a goroutine so a blocked read cannot outlive ctx.
func (s *Shell) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	fmt.Fprintln(s.out, "ultradoc console · type 'help' for commands")
	for {
		s.adoptEcho()
		renderHeader(s.out, s.poller.Snapshot(), s.doc)
		fmt.Fprint(s.out, "> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if s.dispatch(ctx, line) {
				return nil
			}
		}
	}
}

// adoptEcho folds the poller's document echo into the shared state. Only the
// positive direction is trusted: a stale pre-upload snapshot must not unload
// a document the user just uploaded, so absence in the echo is ignored.
func (s *Shell) adoptEcho() {
	snap := s.poller.Snapshot()
	if snap.Online && snap.DocumentLoaded && snap.DocumentName != "" && !s.doc.Loaded {
		s.doc = domain.DocumentState{Loaded: true, Name: snap.DocumentName}
	}
}

// dispatch handles one input line and reports whether the shell should exit.
func (s *Shell) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	switch cmd := strings.ToLower(fields[0]); cmd {
	case "quit", "exit":
		return true
	case "help":
		renderHelp(s.out)
	case "status":
		renderStatus(s.out, s.poller.Poll(ctx))
	case "upload":
		s.cmdUpload(ctx, fields[1:])
	case "ask":
		s.cmdAsk(ctx, strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), fields[0])))
	case "source":
		s.cmdSource(fields[1:])
	case "extract":
		s.cmdExtract(ctx)
	case "export":
		s.cmdExport(fields[1:])
	case "about":
		s.cmdAbout(ctx)
	default:
		fmt.Fprintf(s.out, "unknown command %q, type 'help'\n", cmd)
	}
	return false
}

func (s *Shell) cmdUpload(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "usage: upload <path>")
		return
	}
	path := strings.Join(args, " ")
	filename := filepath.Base(path)
	if err := usecase.ValidateFilename(filename); err != nil {
		// Route through the flow so its state machine records the failure;
		// validation runs before the body is touched.
		_ = s.upload.Upload(ctx, filename, nil)
		return
	}
	file, err := os.Open(path)
	if err != nil {
		s.notifier.Error(fmt.Sprintf("Cannot open %s: %v", path, err))
		return
	}
	defer file.Close()

	info := s.inspector.Inspect(path)
	if err := s.upload.Upload(ctx, filename, file); err != nil {
		return
	}
	renderUploadResult(s.out, s.upload.Result(), info)
}

func (s *Shell) cmdAsk(ctx context.Context, question string) {
	if !s.doc.Loaded {
		s.notifier.Error("Upload a document before asking questions.")
		return
	}
	if strings.TrimSpace(question) == "" {
		fmt.Fprintln(s.out, "usage: ask <question>")
		return
	}
	if err := s.ask.Ask(ctx, question); err != nil {
		return
	}
	renderAnswer(s.out, s.ask.Answer(), s.ask.ExpandedSource())
}

func (s *Shell) cmdSource(args []string) {
	answer := s.ask.Answer()
	if answer == nil {
		s.notifier.Error("No answer yet. Ask a question first.")
		return
	}
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: source <i>")
		return
	}
	i, err := strconv.Atoi(args[0])
	if err != nil || i < 1 || i > len(answer.Sources) {
		fmt.Fprintf(s.out, "source index must be 1..%d\n", len(answer.Sources))
		return
	}
	s.ask.ToggleSource(i - 1)
	renderSources(s.out, answer.Sources, s.ask.ExpandedSource())
}

func (s *Shell) cmdExtract(ctx context.Context) {
	if !s.doc.Loaded {
		s.notifier.Error("Upload a document before extracting.")
		return
	}
	if err := s.extract.Extract(ctx); err != nil {
		return
	}
	renderExtraction(s.out, s.extract.Result())
}

func (s *Shell) cmdExport(args []string) {
	result := s.extract.Result()
	if result == nil {
		s.notifier.Error("Nothing to export. Run 'extract' first.")
		return
	}
	path := s.exportPath
	if len(args) > 0 {
		path = strings.Join(args, " ")
	}
	if err := s.exporter.Export(*result, path); err != nil {
		s.notifier.Error(fmt.Sprintf("Export failed: %v", err))
		return
	}
	s.notifier.Success("Saved extraction to " + path)
}

func (s *Shell) cmdAbout(ctx context.Context) {
	info, err := s.backend.About(ctx)
	if err != nil {
		s.notifier.Error("Backend unavailable: " + err.Error())
		return
	}
	fmt.Fprintf(s.out, "%s (version %s)\n", info.Message, info.Version)
}
