package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/peterh/liner"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/gfreezy/resp"
	"github.com/gfreezy/resp/log"
)

const (
	HistFileEnv     = "RESPCLI_HISTFILE"
	HistFileDefault = ".respcli_history"
)

// Cli inspects RESP payloads: it decodes values in a loop and
// pretty-prints them redis-cli style. It is not a Redis client and opens
// no connections.
type Cli struct {
	fs   afero.Fs
	out  io.Writer
	dump bool
}

func NewCli(dump bool) *Cli {
	return &Cli{fs: afero.NewOsFs(), out: os.Stdout, dump: dump}
}

// RunFile decodes the raw RESP payload stored in the named file.
func (cli *Cli) RunFile(path string) error {
	payload, err := afero.ReadFile(cli.fs, path)
	if err != nil {
		return err
	}
	return cli.decodeAll(payload)
}

// RunReader decodes a raw RESP payload read from r until EOF.
func (cli *Cli) RunReader(r io.Reader) error {
	payload, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	return cli.decodeAll(payload)
}

// RunInteractive reads escaped RESP fragments line by line. Fragments
// accumulate in a pending buffer until they form complete values, so a
// bulk string header and its body may be entered on separate lines.
func (cli *Cli) RunInteractive() error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histFile := historyFile()
	if f, err := os.Open(histFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, histFile)

	fmt.Fprintln(cli.out, `Enter RESP fragments with \r\n escapes, e.g. +OK\r\n ("exit" to quit).`)

	var pending []byte
	for {
		input, err := line.Prompt("resp> ")
		if err == liner.ErrPromptAborted || err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if input == "exit" || input == "quit" {
			return nil
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)

		fragment, err := Unescape(input)
		if err != nil {
			fmt.Fprintf(cli.out, "(bad escape) %v\n", err)
			continue
		}
		pending = append(pending, fragment...)
		rest, complete := cli.drain(pending)
		if !complete {
			fmt.Fprintf(cli.out, "... %d byte(s) pending\n", len(rest))
		}
		pending = rest
	}
}

func (cli *Cli) decodeAll(payload []byte) error {
	rest, complete := cli.drain(payload)
	if !complete {
		return fmt.Errorf("%w: %d trailing byte(s)", resp.ErrIncomplete, len(rest))
	}
	return nil
}

// drain decodes and prints values from buf until it is empty or
// incomplete. It returns the undecoded tail and whether that tail is
// empty. A hard protocol error discards the tail.
func (cli *Cli) drain(buf []byte) (rest []byte, complete bool) {
	for len(buf) > 0 {
		rest, v, err := resp.Parse(buf)
		if errors.Is(err, resp.ErrIncomplete) {
			return buf, false
		}
		if err != nil {
			log.Logger.Warn("discarding undecodable input",
				zap.Error(err), zap.Int("bytes", len(buf)))
			fmt.Fprintf(cli.out, "(protocol error) %v\n", err)
			return nil, true
		}
		fmt.Fprint(cli.out, FormatValue(v))
		if cli.dump {
			fmt.Fprint(cli.out, spew.Sdump(v))
		}
		buf = rest
	}
	return nil, true
}

// FormatValue renders a value the way redis-cli does, one element per
// line and nested arrays indented by their index prefix.
func FormatValue(v resp.Value) string {
	var b strings.Builder
	formatValue(&b, v, "")
	return b.String()
}

func formatValue(b *strings.Builder, v resp.Value, prefix string) {
	switch val := v.(type) {
	case resp.SimpleString:
		fmt.Fprintf(b, "%s\n", val)
	case resp.Error:
		fmt.Fprintf(b, "(error) %s\n", val)
	case resp.Integer:
		fmt.Fprintf(b, "(integer) %d\n", int64(val))
	case resp.BulkString:
		if val == nil {
			b.WriteString("(nil)\n")
			return
		}
		fmt.Fprintf(b, "%s\n", strconv.Quote(string(val)))
	case resp.Array:
		if val == nil {
			b.WriteString("(nil)\n")
			return
		}
		if len(val) == 0 {
			b.WriteString("(empty array)\n")
			return
		}
		pad := strings.Repeat(" ", len(prefix))
		for i, item := range val {
			idx := fmt.Sprintf("%d) ", i+1)
			if i == 0 {
				b.WriteString(idx)
			} else {
				b.WriteString(pad + idx)
			}
			formatValue(b, item, prefix+idx)
		}
	}
}

// Unescape turns a typed line into raw bytes, honoring \r, \n, \t, \\
// and \xNN escapes.
func Unescape(s string) ([]byte, error) {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' {
			out = append(out, c)
			continue
		}
		i++
		if i >= len(s) {
			return nil, fmt.Errorf("dangling backslash")
		}
		switch s[i] {
		case 'r':
			out = append(out, '\r')
		case 'n':
			out = append(out, '\n')
		case 't':
			out = append(out, '\t')
		case '\\':
			out = append(out, '\\')
		case 'x':
			if i+2 >= len(s) {
				return nil, fmt.Errorf("truncated \\x escape")
			}
			n, err := strconv.ParseUint(s[i+1:i+3], 16, 8)
			if err != nil {
				return nil, fmt.Errorf("bad \\x escape %q", s[i+1:i+3])
			}
			out = append(out, byte(n))
			i += 2
		default:
			return nil, fmt.Errorf("unknown escape \\%c", s[i])
		}
	}
	return out, nil
}

func historyFile() string {
	if f := os.Getenv(HistFileEnv); f != "" {
		return f
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return HistFileDefault
	}
	return filepath.Join(home, HistFileDefault)
}

func saveHistory(line *liner.State, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Logger.Warn("cannot save history", zap.String("path", path), zap.Error(err))
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
