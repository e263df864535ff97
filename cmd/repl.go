package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"

	"github.com/tara-vision/readmegen/internal/pipeline"
	"github.com/tara-vision/readmegen/internal/readme"
	"github.com/tara-vision/readmegen/internal/ui"
)

func startREPL(ctx context.Context, cfg Config) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Print(a.renderer.WelcomeMessage())
	fmt.Print(a.renderer.ProviderMessage(a.info))
	fmt.Println()

	historyFile := ""
	if dir, err := configDir(); err == nil && os.MkdirAll(dir, 0o755) == nil {
		historyFile = filepath.Join(dir, "history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[34m❯\033[0m ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    NewRepoCompleter(a.store),
	})
	if err != nil {
		return fmt.Errorf("set up readline: %w", err)
	}
	defer rl.Close()

	r := &repl{app: a, out: os.Stdout}
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or Ctrl+C
			fmt.Println("\nGoodbye!")
			return nil
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			fmt.Println("Goodbye!")
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		r.handle(ctx, line)
	}
}

type repl struct {
	app *app
	out io.Writer
}

func (r *repl) handle(ctx context.Context, line string) {
	if strings.HasPrefix(line, "/") {
		r.command(line)
		return
	}

	req, err := pipeline.ParseTarget(line)
	if err != nil {
		fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
		return
	}
	req.Customization = readme.DefaultCustomization()

	res, err := r.app.run(ctx, req)
	if err != nil {
		fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(errors.New(FriendlyError(err))))
		return
	}
	fmt.Fprint(r.out, r.app.renderer.RunSummary(res))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, ui.RenderMarkdown(res.Readme))
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.app.renderer.InfoMessage(fmt.Sprintf("Use '/save %s' to write README.md", shortID(res.ID))))
}

func (r *repl) command(line string) {
	parts := strings.Fields(line)
	args := parts[1:]

	switch parts[0] {
	case "/help":
		fmt.Fprint(r.out, r.app.renderer.HelpMessage())

	case "/history":
		fmt.Fprint(r.out, r.app.renderer.HistoryTable(r.app.store.List()))

	case "/show":
		id, err := r.runID(args)
		if err != nil {
			fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
			return
		}
		run, err := r.app.store.Get(id)
		if err != nil {
			fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
			return
		}
		showRun(r.out, run, false)

	case "/save":
		id, err := r.runID(args)
		if err != nil {
			fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
			return
		}
		path := "README.md"
		if len(args) > 1 {
			path = args[1]
		}
		r.save(id, path)

	default:
		fmt.Fprintf(r.out, "Unknown command: %s\n", parts[0])
		fmt.Fprintln(r.out, "Type '/help' for available commands.")
	}
	fmt.Fprintln(r.out)
}

func (r *repl) runID(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return selectRun(r.app.store.List())
}

func (r *repl) save(id, path string) {
	run, err := r.app.store.Get(id)
	if err != nil {
		fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
		return
	}

	err = r.app.writer.Write(path, run.Readme, false)
	if errors.Is(err, readme.ErrExists) {
		if !confirmOverwrite(path) {
			fmt.Fprintln(r.out, r.app.renderer.WarningMessage("Kept existing "+path))
			return
		}
		err = r.app.writer.Write(path, run.Readme, true)
	}
	if err != nil {
		fmt.Fprintln(r.out, r.app.renderer.ErrorMessage(err))
		return
	}
	fmt.Fprintln(r.out, r.app.renderer.SuccessMessage(fmt.Sprintf("Wrote %s (%s)", path, run.Repository)))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
