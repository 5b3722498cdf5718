// Copyright 2025 The fcdict Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

/*
Package main implements a front-coded dictionary build tool, query
server and CLI application.

Note: This is a BETA release. APIs and functionality may rapidly change.

fcdict builds a front-coded dictionary from a plain-text phrase list,
then serves exact, prefix and prefix-range lookups over it. It can
operate as a MessagePack IPC server for integration with other
processes, or as a CLI application for testing and debugging.

# Usage

Build a dictionary from a phrase list, one phrase per line, words
separated by whitespace:

	fcdict -build phrases.txt -data /path/to/dict

Start the query server over an existing sealed dictionary:

	fcdict -data /path/to/dict

Run in CLI mode for interactive testing:

	fcdict -data /path/to/dict -c -limit 10

# Data Directory

The data directory holds three files: dict.bin (the sealed dictionary's
msgpack blob), docids.bin (the doc id sidecar), and vocab.bin (the
string<->term id vocabulary). All three are produced together by
-build and loaded together otherwise.

# Configuration

Runtime configuration is managed through a TOML file that supports
build parameters, server limits, and CLI defaults:

	[build]
	bucket_size = 15
	compact = true

	[server]
	max_limit = 64

	[cli]
	default_limit = 20

The config file is automatically created with defaults if it doesn't
exist. bucket_size and default_limit become the defaults of -bucket and
-limit. compact and max_limit are loaded but not used by this binary:
builds and loads always use compact pointer tables, and the server
applies no upper bound to a request's limit.

# IPC Protocol

The server communicates via MessagePack over stdin/stdout. See
pkg/server for the request and response message shapes.

# Command Line Flags

	-build string
	    Phrase list file to build a fresh dictionary from
	-data string
	    Directory holding (or to hold) the dictionary's blob files
	-d  Enable debug mode with detailed logging
	-c  Run in CLI mode instead of server mode
	-limit int
	    Number of completions returned per query (default from config)
	-bucket int
	    Bucket size B used when building (default from config)
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/front-coded/fcdict/internal/cli"
	"github.com/front-coded/fcdict/internal/logger"
	"github.com/front-coded/fcdict/internal/utils"
	"github.com/front-coded/fcdict/pkg/config"
	"github.com/front-coded/fcdict/pkg/fcdict"
	"github.com/front-coded/fcdict/pkg/server"
	"github.com/front-coded/fcdict/pkg/vocabulary"
)

const (
	Version = "0.9.0-beta"
	AppName = "fcdict"
	gh      = "https://github.com/front-coded/fcdict"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to build, serve or query a dictionary.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()
	defaultConfig, _, err := config.LoadConfigWithPriority("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	showVersion := flag.Bool("version", false, "Show current version")
	dataDir := flag.String("data", "data/", "Directory holding the dictionary's blob files")
	buildFrom := flag.String("build", "", "Phrase list file to build a fresh dictionary from")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	limit := flag.Int("limit", defaultConfig.CLI.DefaultLimit, "Number of completions returned per query")
	bucketSize := flag.Int("bucket", defaultConfig.Build.BucketSize, "Bucket size B used when building")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	pathResolver, err := utils.NewPathResolver()
	if err != nil {
		log.Fatalf("Failed to initialize path resolver: %v", err)
	}

	resolvedDataDir, err := pathResolver.GetDataDir(*dataDir)
	if err != nil {
		log.Fatalf("Failed to resolve data dir: %v", err)
	}
	log.Debugf("Using data dir at: %s", resolvedDataDir)

	if *buildFrom != "" {
		if err := runBuild(*buildFrom, resolvedDataDir, *bucketSize, *debugMode); err != nil {
			log.Fatalf("Build failed: %v", err)
		}
		return
	}

	dict, docIDs, vocab, err := loadDictionary(resolvedDataDir)
	if err != nil {
		log.Fatalf("Failed to load dictionary from %s: %v", resolvedDataDir, err)
	}
	log.Debugf("Loaded dictionary: %d completions, %d vocabulary terms", dict.Size(), vocab.Len())

	if *cliMode {
		log.SetReportTimestamp(false)
		inputHandler := cli.NewInputHandler(dict, docIDs, vocab, *limit)
		if err := inputHandler.Start(); err != nil {
			log.Fatalf("CLI error: %v", err)
		}
		return
	}

	log.Debug("spawning IPC")
	showStartupInfo(resolvedDataDir, dict.Size())
	srv := server.New(dict, docIDs, vocab, os.Stdin, os.Stdout)
	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// runBuild reads a phrase list, builds a dictionary from it, and
// writes dict.bin, docids.bin and vocab.bin into dataDir. In debug mode
// the build logger also reports call sites, for tracing down exactly
// where a build-time error originated.
func runBuild(phraseFile, dataDir string, bucketSize int, debug bool) error {
	if err := utils.EnsureDir(dataDir); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	phrases, err := readPhrases(phraseFile)
	if err != nil {
		return fmt.Errorf("reading phrase list: %w", err)
	}
	log.Infof("Read %d phrases from %s", len(phrases), phraseFile)

	vocab := vocabulary.New()
	src, err := vocabulary.NewPhraseSource(vocab, phrases)
	if err != nil {
		return fmt.Errorf("encoding phrases: %w", err)
	}

	buildLogger := logger.New("build")
	if debug {
		buildLogger = logger.NewWithConfig("build", log.DebugLevel, true, true, log.TextFormatter)
	}

	dict, docIDs, err := fcdict.Build(src, fcdict.BuildParams{
		NumCompletions: uint64(src.Len()),
		BucketSize:     bucketSize,
		Compact:        true,
		Logger:         buildLogger,
	})
	if err != nil {
		return fmt.Errorf("building dictionary: %w", err)
	}

	dictBlob, err := fcdict.Marshal(dict)
	if err != nil {
		return fmt.Errorf("marshaling dictionary: %w", err)
	}
	docIDsBlob, err := fcdict.MarshalDocIDs(docIDs)
	if err != nil {
		return fmt.Errorf("marshaling doc ids: %w", err)
	}
	vocabBlob, err := vocab.Marshal()
	if err != nil {
		return fmt.Errorf("marshaling vocabulary: %w", err)
	}

	if err := os.WriteFile(filepath.Join(dataDir, "dict.bin"), dictBlob, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dataDir, "docids.bin"), docIDsBlob, 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dataDir, "vocab.bin"), vocabBlob, 0644); err != nil {
		return err
	}

	log.Infof("Built dictionary: %d completions, %d vocabulary terms, %d bytes", dict.Size(), vocab.Len(), dict.Bytes())
	return nil
}

// readPhrases reads one phrase per non-empty line of path, assigning
// sequential document ids starting at zero.
func readPhrases(path string) ([]vocabulary.Phrase, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var phrases []vocabulary.Phrase
	var docID uint64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		phrases = append(phrases, vocabulary.Phrase{Words: strings.Fields(line), DocID: docID})
		docID++
	}
	return phrases, scanner.Err()
}

// loadDictionary reads the three blob files dataDir holds and rebuilds
// a sealed Dictionary, its doc id sidecar and its Vocabulary.
func loadDictionary(dataDir string) (*fcdict.Dictionary, []uint64, *vocabulary.Vocabulary, error) {
	dictBlob, err := os.ReadFile(filepath.Join(dataDir, "dict.bin"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading dict.bin: %w", err)
	}
	dict, err := fcdict.Unmarshal(dictBlob, true)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unmarshaling dict.bin: %w", err)
	}

	docIDsBlob, err := os.ReadFile(filepath.Join(dataDir, "docids.bin"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading docids.bin: %w", err)
	}
	docIDs, err := fcdict.UnmarshalDocIDs(docIDsBlob)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unmarshaling docids.bin: %w", err)
	}

	vocabBlob, err := os.ReadFile(filepath.Join(dataDir, "vocab.bin"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("reading vocab.bin: %w", err)
	}
	vocab, err := vocabulary.Unmarshal(vocabBlob)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("unmarshaling vocab.bin: %w", err)
	}

	return dict, docIDs, vocab, nil
}

func printVersion() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    false,
		ReportTimestamp: false,
		Prefix:          "",
	})

	styles := log.DefaultStyles()
	styles.Values["version"] = lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"}).
		Background(lipgloss.AdaptiveColor{Light: "#f2e9e1", Dark: "#26233a"})
	styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
	logger.SetStyles(styles)

	logger.Print("")
	logger.Print("[ fcdict ] Front-coded dictionary lookups, fast.")
	logger.Print("", "version", Version)
	logger.Print("")
	logger.Print("use -h or --help to see available options")
	logger.Print("Github Repo", "gh", gh)
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo(dataDir string, n uint64) {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println(" fcdict ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Infof("data dir: ( %s )", dataDir)
	log.Infof("completions: %d", n)
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
