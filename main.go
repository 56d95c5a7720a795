package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/go-faker/faker/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ordtree/btree"
	"ordtree/cli"
	"ordtree/handle"
)

var (
	degree, seedNumRecords, maxNodes *int
	shouldSeed, noColor              *bool
	logLevel                         *string
)

func newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(*logLevel)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func seedTreeWithTestRecords(table *cli.Table, h handle.Handle, logger *zap.Logger) error {
	inserted := 0
	for i := 0; i < *seedNumRecords; i++ {
		res, err := table.Insert(h, faker.UnixTime(), faker.Word()+faker.Word())
		if err != nil {
			return err
		}
		if res == btree.Inserted {
			inserted++
		}
	}
	logger.Info("seeded tree", zap.Uint64("handle", uint64(h)), zap.Int("records", inserted))
	return nil
}

func main() {
	setupFlags()
	color.NoColor = color.NoColor || *noColor

	logger, err := newLogger()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync() //nolint:errcheck

	table := handle.NewTable[int64, string](logger, btree.WithMaxNodes(*maxNodes))
	h, err := table.Create(*degree)
	if err != nil {
		logger.Fatal("creating tree", zap.Error(err))
	}

	if *shouldSeed {
		if err := seedTreeWithTestRecords(table, h, logger); err != nil {
			logger.Fatal("seeding tree", zap.Error(err))
		}
	}

	scanner := bufio.NewScanner(os.Stdin)
	demo := cli.NewCli(scanner, os.Stdout, table, h, logger)
	demo.Start()
}

func setupFlags() {
	degree = flag.Int("degree", 3, "Minimum degree t of the initial B-Tree (t >= 2).")
	shouldSeed = flag.Bool("seed", false, "Seed the initial B-Tree using records created with go-faker.")
	seedNumRecords = flag.Int("records", 100, "Amount of records to seed the B-Tree with upon startup.")
	maxNodes = flag.Int("max-nodes", 0, "Cap on live nodes per B-Tree, 0 for no cap.")
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn or error.")
	noColor = flag.Bool("no-color", false, "Disable coloured output.")
	flag.Usage = func() {
		fmt.Println("\nB-Tree CLI\n\nArguments:")
		flag.PrintDefaults()
	}
	flag.Parse()
}
