package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/gfreezy/resp/log"
)

func main() {
	var (
		file = flag.String("f", "", "decode a RESP payload from a file instead of stdin")
		dump = flag.Bool("dump", false, "print a structural dump of every decoded value")
	)
	flag.Parse()

	if err := log.InitLogger(); err != nil {
		fmt.Fprintf(os.Stderr, "respcli: %v\n", err)
		os.Exit(1)
	}
	defer log.Logger.Sync()

	cli := NewCli(*dump)

	var err error
	switch {
	case *file != "":
		err = cli.RunFile(*file)
	case isatty.IsTerminal(os.Stdin.Fd()):
		err = cli.RunInteractive()
	default:
		err = cli.RunReader(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "respcli: %v\n", err)
		os.Exit(1)
	}
}
