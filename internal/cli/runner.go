package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/tasks/internal/model"
	"github.com/Makepad-fr/tasks/internal/store"
	"github.com/Makepad-fr/tasks/internal/ui"
)

// Options tune the shell.
type Options struct {
	Group     bool // list grouped by pending/done
	AssumeYes bool // skip the removal prompt
	Prompt    string
}

// Shell reads one command per line and applies it to an in-memory store.
// Tasks are gone when the shell exits.
type Shell struct {
	store *store.Store
	in    *bufio.Scanner
	out   io.Writer
	err   io.Writer
	log   *log.Logger
	opt   Options
}

func NewShell(s *store.Store, in io.Reader, out, errOut io.Writer, logger *log.Logger, opt Options) *Shell {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Shell{
		store: s,
		in:    bufio.NewScanner(in),
		out:   out,
		err:   errOut,
		log:   logger,
		opt:   opt,
	}
}

// Run processes input until EOF or "quit". It returns the exit code of the
// last failing command (0 ok, 1 error, 2 usage), or 0 if every command
// succeeded.
func (sh *Shell) Run() int {
	code := 0
	for {
		if sh.opt.Prompt != "" {
			fmt.Fprint(sh.out, sh.opt.Prompt)
		}
		if !sh.in.Scan() {
			break
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if fields[0] == "quit" || fields[0] == "exit" {
			break
		}
		if c := sh.Exec(fields); c != 0 {
			code = c
		}
	}
	if err := sh.in.Err(); err != nil {
		sh.fail("read: " + err.Error())
		return 1
	}
	return code
}

// Exec dispatches one command and returns an exit code (0 ok, 1 error, 2 usage).
func (sh *Shell) Exec(args []string) int {
	if len(args) == 0 {
		return 0
	}
	cmd, a := args[0], args[1:]
	sh.log.Debug("command", "name", cmd, "args", a)

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(sh.out)
		return 0

	case "ls":
		return sh.doList()

	case "count":
		fmt.Fprintln(sh.out, sh.store.Len())
		return 0

	case "add":
		if len(a) == 0 {
			sh.fail("usage: add <title...>")
			return 2
		}
		return sh.doAdd(strings.Join(a, " "))

	case "done":
		if len(a) != 1 {
			sh.fail("usage: done <index>")
			return 2
		}
		task, code := sh.lookup("done", a[0])
		if code != 0 {
			return code
		}
		sh.store.Toggle(task.ID)
		sh.ok("toggled")
		return 0

	case "edit":
		if len(a) < 2 {
			sh.fail("usage: edit <index> <title...>")
			return 2
		}
		task, code := sh.lookup("edit", a[0])
		if code != 0 {
			return code
		}
		sh.store.Edit(task.ID, strings.Join(a[1:], " "))
		sh.ok("edited")
		return 0

	case "rm":
		if len(a) != 1 {
			sh.fail("usage: rm <index>")
			return 2
		}
		task, code := sh.lookup("rm", a[0])
		if code != 0 {
			return code
		}
		if sh.store.Remove(task.ID, store.ConfirmFunc(sh.confirm)) {
			sh.ok("removed")
		} else {
			fmt.Fprintln(sh.out, ui.Current().Muted.Render("kept"))
		}
		return 0
	}

	sh.fail("unknown command: " + cmd)
	fmt.Fprintln(sh.err, ui.Current().Muted.Render("Hint: type `help` for the command list"))
	return 2
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `tasks shell - one command per line

Commands:
  add <title...>          Add a new task (title can be multiple words)
  ls                      List tasks
  count                   Print the number of tasks
  done <index>            Toggle done for the task at 1-based index
  edit <index> <title...> Rename the task at 1-based index
  rm <index>              Remove the task at 1-based index (asks first)
  quit                    Leave the shell

Examples:
  add Buy milk
  done 1
  edit 1 Buy oat milk
  rm 1
`)
}

// -------------- command impls ----------------

func (sh *Shell) doList() int {
	tasks := sh.store.Tasks()
	d, p := model.Stats(tasks)

	var lines []string
	lines = append(lines, ui.Counter("to.do", d, p))
	lines = append(lines, ui.Current().Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if sh.opt.Group {
		lines = append(lines, groupLines(tasks)...)
	} else {
		lines = append(lines, flatLines(tasks)...)
	}
	lines = append(lines, "")
	lines = append(lines, ui.Current().Muted.Render("Tip: add with `add Buy milk`"))
	ui.Panel(sh.out, lines)
	return 0
}

func (sh *Shell) doAdd(title string) int {
	title = strings.TrimSpace(title)
	if _, err := sh.store.Add(title); err != nil {
		sh.fail("add: " + err.Error())
		if errors.Is(err, store.ErrDuplicateTitle) {
			fmt.Fprintln(sh.err, ui.Current().Muted.Render("You cannot register a task with the same name"))
		}
		return 1
	}
	sh.ok("added")
	return 0
}

// lookup resolves a 1-based index against the current list.
func (sh *Shell) lookup(cmd, arg string) (model.Task, int) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		sh.fail(cmd + ": not a number: " + arg)
		return model.Task{}, 2
	}
	tasks := sh.store.Tasks()
	if n < 1 || n > len(tasks) {
		sh.fail(fmt.Sprintf("index out of range: have %d, got %d", len(tasks), n))
		fmt.Fprintln(sh.err, ui.Current().Muted.Render("Hint: run `ls` to see valid indexes"))
		return model.Task{}, 2
	}
	return tasks[n-1], 0
}

// confirm asks on the shell's own input. Anything but y/yes is a no,
// including EOF.
func (sh *Shell) confirm(t model.Task) bool {
	if sh.opt.AssumeYes {
		return true
	}
	fmt.Fprintf(sh.out, "Remove %q? [y/N] ", t.Title)
	if !sh.in.Scan() {
		fmt.Fprintln(sh.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(sh.in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

func (sh *Shell) ok(msg string)   { ui.OK(sh.out, msg) }
func (sh *Shell) fail(msg string) { ui.Fail(sh.err, msg) }

// -------------- rendering helpers --------------

// taskLine renders one row; n is the 1-based index accepted by done/edit/rm.
func taskLine(n int, it model.Task) string {
	t := ui.Current()
	idx := fmt.Sprintf("%2d.", n)
	box := t.Muted.Render(t.BoxUnchecked)
	title := it.Title
	if r := []rune(title); len(r) > 80 {
		title = string(r[:77]) + "..."
	}
	if it.Done {
		box = t.Success.Render(t.BoxChecked)
		title = t.DoneText.Render(title)
	}
	return fmt.Sprintf("%s %s %s", t.Muted.Render(idx), box, title)
}

func flatLines(tasks []model.Task) []string {
	if len(tasks) == 0 {
		return []string{ui.Current().Muted.Render("no tasks")}
	}
	out := make([]string, 0, len(tasks))
	for i, it := range tasks {
		out = append(out, taskLine(i+1, it))
	}
	return out
}

// groupLines splits pending from done but keeps each task's list index.
func groupLines(tasks []model.Task) []string {
	var pend, done []string
	for i, it := range tasks {
		if it.Done {
			done = append(done, taskLine(i+1, it))
		} else {
			pend = append(pend, taskLine(i+1, it))
		}
	}
	t := ui.Current()
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, pend...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, done...)
	}
	return lines
}
