// Command rgbpack compresses images with a windowed LZ77 coder.
//
//	rgbpack encode [-window n] [-addressing absolute|relative] <image>
//	rgbpack decode <image>-encode.txt
//	rgbpack export -format snappy <image>
//
// With no command it asks whether to encode or decode and for a file name.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/rgbpack/pack"
	"github.com/rgbpack/pack/internal/app"
	"github.com/rgbpack/pack/internal/logging"
	"github.com/rgbpack/pack/tokenfile"
)

type CliCommand struct {
	fn       func(args []string) error
	flagset  *flag.FlagSet
	argsdesc string // argument description
	desc     string
}

// Describes how to use a given command.
func PrintCmdUsage(name string, cmd CliCommand) {
	fmt.Printf("%s %s - %s\n", name, cmd.argsdesc, cmd.desc)
	count := 0
	cmd.flagset.VisitAll(func(*flag.Flag) { count++ })
	if count != 0 {
		cmd.flagset.Usage()
	}
}

func PrintUsage(commands map[string]CliCommand) {
	fmt.Println()
	fmt.Println("Usage: rgbpack <command> [arguments]")
	fmt.Println("Commands available:")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("    %-10s %s\n", name, commands[name].desc)
	}
}

// codecFlags registers the settings shared by the commands that read or
// write token files.
type codecFlags struct {
	window     *int
	addressing *string
	codec      *string
	compress   *string
}

func addCodecFlags(fs *flag.FlagSet, cfg app.Config, encoding bool) codecFlags {
	var f codecFlags
	if encoding {
		f.window = fs.Int("window", cfg.WindowSize, "window and lookahead size in symbols (env "+app.EnvWindow+")")
		f.addressing = fs.String("addressing", cfg.Addressing.String(), "match offsets: absolute|relative")
	}
	f.codec = fs.String("codec", "text", "token file codec: text|msgpack|cbor")
	compressDesc := "token file compression: none|gzip|zstd|brotli"
	if !encoding {
		compressDesc += " (default from the file extension)"
	}
	f.compress = fs.String("compress", "none", compressDesc)
	return f
}

func (f codecFlags) apply(cfg *app.Config) error {
	if f.window != nil {
		cfg.WindowSize = *f.window
	}
	if f.addressing != nil {
		a, err := pack.ParseAddressing(*f.addressing)
		if err != nil {
			return err
		}
		cfg.Addressing = a
	}
	c, err := tokenfile.ParseCodec(*f.codec)
	if err != nil {
		return err
	}
	cfg.Codec = c
	cfg.Compression, err = tokenfile.ParseCompression(*f.compress)
	return err
}

// isSet reports whether the named flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func main() {
	log, err := logging.New(os.Getenv(app.EnvLogLevel))
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	defer log.L.Sync()

	cfg, err := app.ConfigFromEnv(os.Getenv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	cfg.Log = log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	encodeFlags := flag.NewFlagSet("encode", flag.ExitOnError)
	decodeFlags := flag.NewFlagSet("decode", flag.ExitOnError)
	exportFlags := flag.NewFlagSet("export", flag.ExitOnError)
	statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)
	helpFlags := flag.NewFlagSet("help", flag.ExitOnError)

	encodeOpts := addCodecFlags(encodeFlags, cfg, true)
	encodeOut := encodeFlags.String("o", "", "output file (default <image>-encode.txt)")
	encodeChart := encodeFlags.String("chart", "", "write a match length histogram to this SVG file")

	decodeOpts := addCodecFlags(decodeFlags, cfg, false)
	decodeOut := decodeFlags.String("o", "", "output image, .jpg .png or .bmp (default <name>-decoded_image.jpg)")
	decodeMax := decodeFlags.Int("max-decode", cfg.MaxDecode, "largest token file payload to accept in bytes, 0 for no limit (env "+app.EnvMaxDecode+")")

	exportWindow := exportFlags.Int("window", cfg.WindowSize, "window and lookahead size in symbols")
	exportAddressing := exportFlags.String("addressing", cfg.Addressing.String(), "match offsets: absolute|relative")
	exportFormat := exportFlags.String("format", "snappy", "output format: "+strings.Join(app.ExportFormats(), "|"))
	exportOut := exportFlags.String("o", "", "output file (default <image> plus the format's extension)")

	statsOpts := addCodecFlags(statsFlags, cfg, true)
	statsChart := statsFlags.String("chart", "", "write a match length histogram to this SVG file")

	var commands map[string]CliCommand

	oneArg := func(name string, fs *flag.FlagSet, args []string) string {
		fs.Parse(args)
		rest := fs.Args()
		if len(rest) != 1 {
			fmt.Printf("'%s' command: expected %s argument\n", name, commands[name].argsdesc)
			os.Exit(1)
		}
		return rest[0]
	}

	cmdEncode := func(args []string) error {
		name := oneArg("encode", encodeFlags, args)
		if err := encodeOpts.apply(&cfg); err != nil {
			return err
		}
		_, err := app.EncodeImage(ctx, cfg, name, *encodeOut, *encodeChart)
		return err
	}

	cmdDecode := func(args []string) error {
		name := oneArg("decode", decodeFlags, args)
		if err := decodeOpts.apply(&cfg); err != nil {
			return err
		}
		if !isSet(decodeFlags, "compress") {
			cfg.Compression = app.CompressionFromName(name)
		}
		cfg.MaxDecode = *decodeMax
		_, err := app.DecodeImage(cfg, name, *decodeOut)
		return err
	}

	cmdExport := func(args []string) error {
		name := oneArg("export", exportFlags, args)
		a, err := pack.ParseAddressing(*exportAddressing)
		if err != nil {
			return err
		}
		cfg.WindowSize, cfg.Addressing = *exportWindow, a
		out, err := app.ExportImage(ctx, cfg, name, *exportFormat, *exportOut)
		if err != nil {
			return err
		}
		fmt.Printf("Exported %s as %s.\n", name, out)
		return nil
	}

	cmdStats := func(args []string) error {
		name := oneArg("stats", statsFlags, args)
		if err := statsOpts.apply(&cfg); err != nil {
			return err
		}
		_, err := app.StatsImage(ctx, cfg, name, *statsChart)
		return err
	}

	cmdHelp := func(args []string) error {
		helpFlags.Parse(args)
		names := helpFlags.Args()
		if len(names) == 0 {
			PrintUsage(commands)
			return nil
		}
		cmd, ok := commands[names[0]]
		if !ok {
			fmt.Println("error: unknown command for help")
			PrintUsage(commands)
			os.Exit(1)
		}
		PrintCmdUsage(names[0], cmd)
		return nil
	}

	commands = map[string]CliCommand{
		"encode": {cmdEncode, encodeFlags, "<image>", "encode an image (name without extension) to a token file"},
		"decode": {cmdDecode, decodeFlags, "<file>", "rebuild an image from a token file"},
		"export": {cmdExport, exportFlags, "<image>", "write the parse as a snappy, lz4 or text stream"},
		"stats":  {cmdStats, statsFlags, "<image>", "print compression figures without writing a file"},
		"help":   {cmdHelp, helpFlags, "[command]", "list commands or describe a single command"},
	}

	if len(os.Args) < 2 {
		if err := app.Menu(ctx, cfg, os.Stdin); err != nil {
			fmt.Println("error:", err)
			os.Exit(1)
		}
		return
	}

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Println("error: unknown command")
		PrintUsage(commands)
		os.Exit(1)
	}
	if err := cmd.fn(os.Args[2:]); err != nil {
		log.Error(os.Args[1]+" failed", logging.Fields{"error": err.Error()})
		fmt.Println("error:", err)
		os.Exit(1)
	}
}
