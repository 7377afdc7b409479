package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/peterkuimelis/crdeck/internal/config"
	"github.com/peterkuimelis/crdeck/internal/deck"
	"github.com/peterkuimelis/crdeck/internal/log"
	crnet "github.com/peterkuimelis/crdeck/internal/net"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "build":
		runBuild(os.Args[2:])
	case "analyze":
		runAnalyze(os.Args[2:])
	case "match":
		runMatch(os.Args[2:])
	case "cards":
		runCards(os.Args[2:])
	case "serve":
		runServe(os.Args[2:])
	case "ask":
		runAsk(os.Args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  crdeck build [--scratch] [--no-fix] [--style S] [--verbose] TEXT...")
	fmt.Println("  crdeck analyze NAME,NAME,...")
	fmt.Println("  crdeck match TEXT...")
	fmt.Println("  crdeck cards [--arena N]")
	fmt.Println("  crdeck serve [--port P]")
	fmt.Println("  crdeck ask [--addr ADDR]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  build    Build a deck from a free-text request (stdin if no TEXT)")
	fmt.Println("  analyze  Analyze a comma-separated list of cards")
	fmt.Println("  match    Show the cards found in TEXT")
	fmt.Println("  cards    Print the card catalog")
	fmt.Println("  serve    Start the TCP deck server")
	fmt.Println("  ask      Connect to a deck server and chat")
	fmt.Println()
	fmt.Println("Common flags: --config FILE, --cards FILE, --decks FILE")
}

// common holds the flags every command accepts.
type common struct {
	config *string
	cards  *string
	decks  *string
}

func commonFlags(fs *flag.FlagSet) *common {
	return &common{
		config: fs.String("config", config.DefaultPath, "path to TOML config file"),
		cards:  fs.String("cards", "", "path to cards YAML file (default: embedded)"),
		decks:  fs.String("decks", "", "path to known decks YAML file (default: embedded)"),
	}
}

// load reads the config and applies flag overrides.
func (c *common) load() *config.Config {
	cfg, err := config.Load(*c.config)
	if err != nil {
		fatal(err)
	}
	if *c.cards != "" {
		cfg.Data.Cards = *c.cards
	}
	if *c.decks != "" {
		cfg.Data.Decks = *c.decks
	}
	return cfg
}

func (c *common) engine(logger log.EventLogger) *deck.Engine {
	e, err := c.load().NewEngine(logger)
	if err != nil {
		fatal(err)
	}
	return e
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	cf := commonFlags(fs)
	scratch := fs.Bool("scratch", false, "skip proven decks and compose a custom deck")
	noFix := fs.Bool("no-fix", false, "drop misspelled cards instead of correcting them")
	style := fs.String("style", "", "style hint: cycle, beatdown, siege, control, bait, bridgespam")
	verbose := fs.Bool("verbose", false, "log build events to stderr")
	fs.Parse(args)

	var logger log.EventLogger = log.NopLogger{}
	if *verbose {
		logger = log.NewTextLogger(os.Stderr)
	}
	e := cf.engine(logger)

	stdin := bufio.NewReader(os.Stdin)
	text := strings.Join(fs.Args(), " ")
	if text == "" {
		line, err := stdin.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fatal(err)
		}
		text = strings.TrimSpace(line)
	}

	req := e.ParseRequest(text)
	if *scratch {
		req.FromScratch = true
	}
	if *style != "" {
		s := deck.ParseStyle(*style)
		if s == deck.StyleNone {
			fatal(fmt.Errorf("unknown style %q", *style))
		}
		req.Style = s
	}

	p, err := e.ProposeRequest(req)
	if err != nil {
		fatal(err)
	}
	res := p.Result
	if p.Pending != nil {
		accept := !*noFix
		if accept {
			fmt.Fprintf(os.Stderr, "%s (Y/n): ", p.Pending.Prompt())
			accept = readYesNo(stdin)
		}
		if res, err = e.Resolve(*p.Pending, accept); err != nil {
			fatal(err)
		}
	}
	printJSON(res)
}

// readYesNo reads an answer defaulting to yes on an empty line or EOF.
func readYesNo(r *bufio.Reader) bool {
	line, _ := r.ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "n", "no":
		return false
	}
	return true
}

func runAnalyze(args []string) {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	cf := commonFlags(fs)
	fs.Parse(args)

	var names []string
	for _, name := range strings.Split(strings.Join(fs.Args(), " "), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		fatal(errors.New("analyze needs a comma-separated list of cards"))
	}

	a, missing := cf.engine(nil).AnalyzeNames(names)
	printJSON(struct {
		Analysis *deck.Analysis `json:"analysis"`
		Missing  []string       `json:"missing,omitempty"`
	}{a, missing})
}

func runMatch(args []string) {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	cf := commonFlags(fs)
	fs.Parse(args)

	printJSON(cf.engine(nil).Matcher().Match(strings.Join(fs.Args(), " ")))
}

func runCards(args []string) {
	fs := flag.NewFlagSet("cards", flag.ExitOnError)
	cf := commonFlags(fs)
	arena := fs.Int("arena", 0, "only cards unlocked by this arena (0 = all)")
	fs.Parse(args)

	printJSON(cf.engine(nil).Catalog().Available(*arena))
}

func runServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	cf := commonFlags(fs)
	port := fs.String("port", "", "TCP port to listen on (default from config)")
	verbose := fs.Bool("verbose", false, "log build events to stderr")
	fs.Parse(args)

	cfg := cf.load()
	if *port != "" {
		cfg.Server.TCPPort = *port
	}
	var logger log.EventLogger = log.NopLogger{}
	if *verbose {
		logger = log.NewTextLogger(os.Stderr)
	}
	e, err := cfg.NewEngine(logger)
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if cfg.Data.Watch {
		w, err := cfg.NewDataWatcher(e, logger)
		if err != nil {
			fatal(err)
		}
		go w.Run(ctx)
	}
	srv := &crnet.Server{
		Engine: e,
		Port:   cfg.Server.TCPPort,
		RPS:    cfg.Limits.RequestsPerSecond,
		Burst:  cfg.Limits.Burst,
	}
	if err := srv.Run(ctx); err != nil {
		fatal(err)
	}
}

func runAsk(args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	addr := fs.String("addr", "localhost:7777", "server address to connect to")
	fs.Parse(args)

	if err := crnet.Connect(context.Background(), *addr, os.Stdin, os.Stdout); err != nil {
		fatal(err)
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
