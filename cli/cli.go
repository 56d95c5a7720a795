package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"go.uber.org/zap"

	"ordtree/btree"
	"ordtree/handle"
)

var (
	errColor  = color.New(color.FgRed)
	infoColor = color.New(color.FgGreen)
)

type Table = handle.Table[int64, string]

type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	table   *Table
	current handle.Handle
	logger  *zap.Logger
}

// NewCli drives table from scanner, writing to out. current may be 0 when no tree exists yet.
func NewCli(s *bufio.Scanner, out io.Writer, table *Table, current handle.Handle, logger *zap.Logger) *Cli {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cli{scanner: s, out: out, table: table, current: current, logger: logger}
}

// Start runs the read-eval-print loop until EOF or EXIT.
func (c *Cli) Start() {
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return
		}
		c.printPrompt()
	}
	if err := c.scanner.Err(); err != nil {
		c.logger.Error("reading input", zap.Error(err))
	}
}

func (c *Cli) printHelp() {
	fmt.Fprint(c.out, `
B-Tree CLI

Available Commands:
  CREATE <degree>        Create a B-Tree and make it current
  USE <handle>           Switch to another B-Tree
  DESTROY [handle]       Destroy the current (or given) B-Tree
  SET <key> <val>        Insert or overwrite a key-value pair
  UPD <key> <val>        Overwrite the value of an existing key
  GET <key>              Retrieve the value for key
  DEL <key>              Remove a key-value pair
  SCAN [from|-] [to|-]   List pairs with from <= key < to
  LAST [from|-] [to|-]   Show the largest pair with from <= key < to
  STATS                  Show height, node and key counts
  CHECK                  Validate the B-Tree invariants
  SHOW                   Print the B-Tree
  HELP                   Show this message
  EXIT                   Terminate this session
`)
}

func (c *Cli) printPrompt() {
	fmt.Fprint(c.out, "> ")
}

func (c *Cli) printErr(err error) {
	fmt.Fprintln(c.out, errColor.Sprint("error: "+err.Error()))
}

// processInput handles one line and reports whether the session continues.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	args := fields[1:]
	switch command {
	default:
		fmt.Fprintf(c.out, "Unknown command \"%s\"\n", command)
	case "create":
		c.processCreateCommand(args)
	case "use":
		c.processUseCommand(args)
	case "destroy":
		c.processDestroyCommand(args)
	case "set":
		c.processSetCommand(args)
	case "upd":
		c.processUpdateCommand(args)
	case "get":
		c.processGetCommand(args)
	case "del":
		c.processDeleteCommand(args)
	case "scan":
		c.processScanCommand(args)
	case "last":
		c.processLastCommand(args)
	case "stats":
		c.processStatsCommand()
	case "check":
		c.processCheckCommand()
	case "show":
		c.show()
	case "help":
		c.printHelp()
	case "exit":
		return false
	}
	return true
}

func (c *Cli) processCreateCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: CREATE <degree>")
		return
	}
	degree, err := strconv.Atoi(args[0])
	if err != nil {
		c.printErr(errors.Wrapf(err, "degree %q", args[0]))
		return
	}
	h, err := c.table.Create(degree)
	if err != nil {
		c.printErr(err)
		return
	}
	c.current = h
	fmt.Fprintln(c.out, infoColor.Sprintf("created tree %d (t=%d)", h, degree))
}

func (c *Cli) processUseCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: USE <handle>")
		return
	}
	h, err := parseHandle(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	if _, err := c.table.Get(h); err != nil {
		c.printErr(err)
		return
	}
	c.current = h
	fmt.Fprintln(c.out, infoColor.Sprintf("using tree %d", h))
}

func (c *Cli) processDestroyCommand(args []string) {
	h := c.current
	switch len(args) {
	case 0:
	case 1:
		var err error
		if h, err = parseHandle(args[0]); err != nil {
			c.printErr(err)
			return
		}
	default:
		fmt.Fprintln(c.out, "Usage: DESTROY [handle]")
		return
	}
	if err := c.table.Destroy(h); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, infoColor.Sprintf("destroyed tree %d", h))
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: SET <key> <value>")
		return
	}
	key, err := parseKey(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	res, err := c.table.Insert(c.current, key, args[1])
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, res)
	c.show()
}

func (c *Cli) processUpdateCommand(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(c.out, "Usage: UPD <key> <value>")
		return
	}
	key, err := parseKey(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	res, err := c.table.Update(c.current, key, args[1])
	if err != nil {
		c.printErr(err)
		return
	}
	if res == btree.NotFound {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, res)
	c.show()
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: DEL <key>")
		return
	}
	key, err := parseKey(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	res, err := c.table.Delete(c.current, key)
	if err != nil {
		c.printErr(err)
		return
	}
	if res == btree.NotFound {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	fmt.Fprintln(c.out, res)
	c.show()
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "Usage: GET <key>")
		return
	}
	key, err := parseKey(args[0])
	if err != nil {
		c.printErr(err)
		return
	}
	val, err := c.table.Find(c.current, key)
	if errors.Is(err, btree.ErrKeyNotFound) {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, val)
}

func (c *Cli) processScanCommand(args []string) {
	from, to, err := parseRange(args)
	if err != nil {
		c.printErr(err)
		return
	}
	it, err := c.table.Iterate(c.current, from, to)
	if err != nil {
		c.printErr(err)
		return
	}
	n := 0
	for {
		k, v, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintf(c.out, "%d %s\n", k, v)
		n++
	}
	if err := it.Err(); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "(%d pairs)\n", n)
}

func (c *Cli) processLastCommand(args []string) {
	from, to, err := parseRange(args)
	if err != nil {
		c.printErr(err)
		return
	}
	k, v, err := c.table.Last(c.current, from, to)
	if errors.Is(err, btree.ErrKeyNotFound) {
		fmt.Fprintln(c.out, "Key not found.")
		return
	}
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "%d %s\n", k, v)
}

func (c *Cli) processStatsCommand() {
	tree, err := c.table.Get(c.current)
	if err != nil {
		c.printErr(err)
		return
	}
	s, err := tree.Stats()
	if err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintf(c.out, "t=%d height=%d nodes=%d internal=%d leaves=%d keys=%d\n",
		tree.MinDegree(), s.Height, s.Nodes, s.InternalNodes, s.Leaves, s.Keys)
}

func (c *Cli) processCheckCommand() {
	tree, err := c.table.Get(c.current)
	if err != nil {
		c.printErr(err)
		return
	}
	if err := tree.Check(); err != nil {
		c.printErr(err)
		return
	}
	fmt.Fprintln(c.out, infoColor.Sprint("ok"))
}

func (c *Cli) show() {
	tree, err := c.table.Get(c.current)
	if err != nil {
		c.printErr(err)
		return
	}
	v := &btree.Visualizer[int64, string]{Tree: tree}
	fmt.Fprintln(c.out, tree)
	fmt.Fprintln(c.out, v.Visualize())
}

func parseKey(s string) (int64, error) {
	k, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "key %q", s)
	}
	return k, nil
}

func parseHandle(s string) (handle.Handle, error) {
	h, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "handle %q", s)
	}
	return handle.Handle(h), nil
}

// parseRange reads optional [from] [to] arguments where "-" (or omission) means unbounded.
func parseRange(args []string) (from, to btree.Bound[int64], err error) {
	if len(args) > 2 {
		return from, to, errors.New("usage: [from|-] [to|-]")
	}
	bounds := [2]*btree.Bound[int64]{&from, &to}
	for i, a := range args {
		if a == "-" {
			continue
		}
		k, err := parseKey(a)
		if err != nil {
			return from, to, err
		}
		*bounds[i] = btree.At(k)
	}
	return from, to, nil
}
