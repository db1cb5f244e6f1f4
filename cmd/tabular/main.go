// Command tabular is the CLI for the tabular codec.
// It inspects and converts tabular sources across the supported formats.
//
// Usage:
//
//	tabular schema <file> [--format csv] [--no-header]
//	tabular head <file> [-n 10]
//	tabular convert <file> --to xml [--out result.xml]
//	tabular version
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"github.com/FocuswithJustin/tabular/core/codec"
	"github.com/FocuswithJustin/tabular/internal/checksum"
	"github.com/FocuswithJustin/tabular/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for tabular.
var CLI struct {
	// Global flags
	LogLevel  string `name:"log-level" default:"info" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Schema  SchemaCmd  `cmd:"" help:"Print the inferred schema of a tabular source"`
	Head    HeadCmd    `cmd:"" help:"Print the first rows of a tabular source"`
	Convert ConvertCmd `cmd:"" help:"Convert a tabular source to another format"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// sourceArgs are the flags shared by every command that opens a source.
type sourceArgs struct {
	Path     string `arg:"" help:"Source file path" type:"existingfile"`
	Format   string `help:"Source format (csv|xlsx|xml|json|sqlite); default from extension"`
	NoHeader bool   `help:"Source has no header record; generate Column1..ColumnN"`
	Sheet    string `help:"Worksheet name (xlsx sources)"`
	Table    string `help:"Table name (sqlite sources)"`
}

// open resolves the format and builds a reader over the file content.
func (s *sourceArgs) open() (codec.Reader, codec.Format, error) {
	format, err := s.resolveFormat()
	if err != nil {
		return nil, codec.FormatUnknown, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, format, err
	}
	r, err := codec.NewBytesReader(format, data, codec.ReaderOptions{
		HasHeader: !s.NoHeader,
		XLSX:      codec.XLSXOptions{Sheet: s.Sheet},
		SQLite:    codec.SQLiteOptions{Table: s.Table},
	})
	return r, format, err
}

func (s *sourceArgs) resolveFormat() (codec.Format, error) {
	if s.Format != "" {
		return codec.ParseFormat(s.Format)
	}
	return codec.FormatFromPath(s.Path)
}

// SchemaCmd prints the inferred column layout of a source.
type SchemaCmd struct {
	sourceArgs
}

func (c *SchemaCmd) Run(ctx *kong.Context) error {
	r, format, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	fmt.Printf("Source: %s (%s)\n", c.Path, format)
	fmt.Printf("Columns: %d\n", r.Schema().Len())
	for _, col := range r.Schema().Columns() {
		fmt.Printf("  %3d  %s\n", col.Index, col.Name)
	}
	return nil
}

// HeadCmd prints the first rows of a source.
type HeadCmd struct {
	sourceArgs
	Rows int `short:"n" default:"10" help:"Number of rows to print"`
}

func (c *HeadCmd) Run(kctx *kong.Context) error {
	r, _, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	ctx := context.Background()
	fmt.Println(strings.Join(r.Schema().Names(), "\t"))
	for i := 0; i < c.Rows; i++ {
		ok, err := r.Read(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		row, err := r.Current()
		if err != nil {
			return err
		}
		fmt.Println(strings.Join(row.Values(), "\t"))
	}
	return nil
}

// ConvertCmd reads a source and writes it in another format.
type ConvertCmd struct {
	sourceArgs
	To       string `required:"" help:"Target format (csv|xlsx|xml|sqlite)"`
	Out      string `help:"Output path; stdout when omitted"`
	NoDigest bool   `help:"Skip printing the BLAKE3 digest of the output"`
}

func (c *ConvertCmd) Run(kctx *kong.Context) error {
	target, err := codec.ParseFormat(c.To)
	if err != nil {
		return err
	}

	ctx := logging.WithJobID(context.Background(), uuid.NewString())
	start := time.Now()

	r, source, err := c.open()
	if err != nil {
		return err
	}
	defer r.Close()

	var rows [][]string
	for {
		ok, err := r.Read(ctx)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
		row, err := r.Current()
		if err != nil {
			return err
		}
		values := make([]string, row.Len())
		copy(values, row.Values())
		rows = append(rows, values)
	}
	logging.ReadEvent(ctx, source.String(), r.Schema().Len(), len(rows))

	out, err := codec.WriteBytes(ctx, target, rows,
		func(row []string) []string { return row },
		codec.WriteOptions{
			IncludeHeader: !c.NoHeader,
			ColumnNames:   r.Schema().Names(),
			XLSX:          codec.XLSXWriteOptions{Sheet: c.Sheet},
			SQLite:        codec.SQLiteWriteOptions{Table: c.Table},
		})
	if err != nil {
		return err
	}
	logging.WriteEvent(ctx, target.String(), len(rows), int64(len(out)))

	if c.Out != "" {
		if err := os.WriteFile(c.Out, out, 0644); err != nil {
			return err
		}
	} else {
		if _, err := os.Stdout.Write(out); err != nil {
			return err
		}
	}

	logging.ConvertEvent(ctx, source.String(), target.String(), len(rows), time.Since(start))
	if !c.NoDigest {
		fmt.Fprintf(os.Stderr, "blake3: %s\n", checksum.Sum(out))
	}
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run(ctx *kong.Context) error {
	fmt.Printf("tabular %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("tabular"),
		kong.Description("Tabular codec - read and convert tabular data across formats"),
		kong.UsageOnError(),
	)

	logging.InitLogger(parseLevel(CLI.LogLevel), parseFormat(CLI.LogFormat))

	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseLevel(s string) logging.Level {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func parseFormat(s string) logging.Format {
	if s == "json" {
		return logging.FormatJSON
	}
	return logging.FormatText
}
