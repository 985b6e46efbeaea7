// Package cli wires the task-tracking core to the command line. Every
// command is a thin wrapper: open the gateway, load the store, run one core
// operation, save on success and render the result. Failures discard the
// in-memory state, so the persisted store never sees a partial write.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/clock"
	"github.com/dmitrijs2005/taskkeeper/internal/config"
	"github.com/dmitrijs2005/taskkeeper/internal/flagx"
	"github.com/dmitrijs2005/taskkeeper/internal/gateway"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/store"
)

type App struct {
	config *config.Config
	log    logging.Logger
	clock  clock.Clock
	hasher store.CredentialHasher
	policy store.AssignPolicy
	out    io.Writer
	reader *bufio.Reader
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	return &App{
		config: cfg,
		log:    log,
		clock:  clock.System(),
		hasher: auth.NewBcryptHasher(),
		policy: store.CreatorOnlyPolicy{},
		out:    os.Stdout,
		reader: bufio.NewReader(os.Stdin),
	}
}

// Run dispatches the command named by args. Global flags before the command
// word have already been consumed by the config layer and are skipped here.
func (a *App) Run(ctx context.Context, args []string) error {
	cmd, rest := flagx.SplitCommand(args)

	switch cmd {
	case "register":
		return a.Register(ctx, rest)
	case "login":
		return a.Login(ctx, rest)
	case "whoami":
		return a.Whoami(ctx)
	case "add":
		return a.Add(ctx, rest)
	case "list":
		return a.List(ctx, rest)
	case "update":
		return a.Update(ctx, rest)
	case "complete":
		return a.Complete(ctx, rest)
	case "delete":
		return a.Delete(ctx, rest)
	case "assign":
		return a.Assign(ctx, rest)
	case "workload":
		return a.Workload(ctx, rest)
	case "report":
		return a.Report(ctx, rest)
	case "export":
		return a.Export(ctx, rest)
	case "import":
		return a.Import(ctx, rest)
	case "process-recurring":
		return a.ProcessRecurring(ctx)
	case "backup":
		return a.Backup(ctx, rest)
	case "restore":
		return a.Restore(ctx, rest)
	case "settings":
		return a.Settings(ctx, rest)
	case "", "help":
		a.printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try \"help\")", cmd)
	}
}

func (a *App) printUsage() {
	fmt.Fprintln(a.out, `Usage: taskkeeper [global flags] <command> [args]

User commands:
  register <username> <email> [password]   create an account
  login <username> [password]              authenticate and cache a session
  whoami                                   show the session user
  settings <username> [flags]              update display preferences

Task commands:
  add [flags] <title>                      create a task
  list [flags]                             list tasks with filters
  update [flags] <task-id>                 patch a task
  complete <task-id>                       mark a task completed
  delete <task-id>                         delete a task permanently
  assign <task-id> <assigner> <assignee>   hand a task to another user

Reporting:
  workload <username>                      tasks assigned to a user
  report [flags] <username>                productivity report

System:
  export [file]                            write all tasks to CSV
  import <file>                            load tasks from CSV
  process-recurring                        roll forward overdue recurring tasks
  backup <file>                            copy the store to a backup file
  restore <file>                           replace the store from a backup`)
}

// withStore runs fn against the loaded store and, when save is set, flushes
// the state back through the gateway. Any error skips the save, so the
// persisted store stays as it was.
func (a *App) withStore(ctx context.Context, save bool, fn func(s *store.Store) error) error {
	gw, err := gateway.Open(ctx, a.config.DatabasePath, a.log)
	if err != nil {
		return err
	}
	defer gw.Close()

	snap, err := gw.LoadAll(ctx)
	if err != nil {
		return err
	}

	st := store.FromSnapshot(snap, a.clock, a.hasher, a.policy)
	if err := fn(st); err != nil {
		return err
	}
	if !save {
		return nil
	}
	return gw.SaveAll(ctx, st.Snapshot())
}

// popPositional detaches a leading bare word so commands accept both
// "add <title> -flags" and "add -flags <title>".
func popPositional(args []string) (string, []string) {
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		return args[0], args[1:]
	}
	return "", args
}

// stringsFlag collects a repeatable string flag (e.g. -tag a -tag b).
type stringsFlag []string

func (f *stringsFlag) String() string { return strings.Join(*f, ",") }

func (f *stringsFlag) Set(v string) error {
	*f = append(*f, v)
	return nil
}
