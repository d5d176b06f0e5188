package wrap

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/brimdata/stax/cli/inputflags"
	"github.com/brimdata/stax/cli/logflags"
	"github.com/brimdata/stax/cli/outputflags"
	"github.com/brimdata/stax/pkg/logger"
	"github.com/brimdata/stax/pkg/storage"
	"github.com/brimdata/stax/sio/emitter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const long = `
The wrap command reads lines of text from each input file, or from standard
input when no file is given, and writes them as one XML document in which
each line is the text of an element beneath the document root.

Output goes to standard output unless -o names a file.  With -split, each
input is written to its own document in the given directory, named for the
input with an ".xml" extension.  Split outputs are written concurrently,
each through its own writer.

When writing to a terminal and no factory is selected, output is indented.
`

type Command struct {
	inputFlags  inputflags.Flags
	outputFlags outputflags.Flags
	logFlags    logflags.Flags
	quiet       bool
	engine      storage.Engine
	flags       *flag.FlagSet
}

func New() *cobra.Command {
	c := &Command{engine: storage.NewLocalEngine()}
	cmd := &cobra.Command{
		Use:   "wrap [options] [file ...]",
		Short: "wrap lines of text in XML elements",
		Long:  long,
		// Options are parsed by the Go flag package so that -name works
		// as it does throughout stax.
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.flags.SetOutput(cmd.ErrOrStderr())
			if err := c.flags.Parse(args); err != nil {
				if errors.Is(err, flag.ErrHelp) {
					return nil
				}
				return err
			}
			return c.Run(cmd, c.flags.Args())
		},
	}
	fs := flag.NewFlagSet("wrap", flag.ContinueOnError)
	c.inputFlags.SetFlags(fs)
	c.outputFlags.SetFlags(fs)
	c.logFlags.SetFlags(fs)
	fs.BoolVar(&c.quiet, "q", false, "don't log")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: stax %s\n%s\nOptions:\n", cmd.Use, long)
		fs.PrintDefaults()
	}
	c.flags = fs
	return cmd
}

func (c *Command) Run(cmd *cobra.Command, args []string) error {
	if err := c.outputFlags.Init(); err != nil {
		return err
	}
	logger, err := c.logger()
	if err != nil {
		return err
	}
	defer logger.Sync()
	inputs, err := c.inputFlags.URIs(args)
	if err != nil {
		return err
	}
	jobs, err := c.outputFlags.Jobs(inputs)
	if err != nil {
		return err
	}
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()
	conf := c.outputFlags.Config()
	logger.Debug("writing",
		zap.String("factory", conf.WriterFactory.Alias),
		zap.Int("inputs", len(inputs)),
		zap.Int("outputs", len(jobs)))
	return emitter.Convert(ctx, c.engine, conf.Factory, conf.Document.Opts(), jobs, logger)
}

// logger uses the config file's log section unless a -log flag was given.
func (c *Command) logger() (*zap.Logger, error) {
	if c.quiet {
		return zap.NewNop(), nil
	}
	set := make(map[string]bool)
	c.flags.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	conf := c.logFlags.Config
	changed := lo.SomeBy([]string{"log.level", "log.path", "log.filemode", "log.devmode"}, func(name string) bool {
		return set[name]
	})
	if c.outputFlags.ConfigPath() != "" && !changed {
		conf = c.outputFlags.Config().Log
	}
	return logger.New(conf)
}

