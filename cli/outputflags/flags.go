package outputflags

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/brimdata/stax/config"
	"github.com/brimdata/stax/factory"
	"github.com/brimdata/stax/pkg/storage"
	"github.com/brimdata/stax/sio/emitter"
	"golang.org/x/term"
)

// Flags gathers output options.  Values given on the command line override
// those in the -config file.
type Flags struct {
	config     *config.Config
	configPath string
	alias      *string
	prefix     *string
	indent     *string
	normalize  *bool
	root       *string
	element    *string
	noDecl     *bool
	number     *bool
	outputFile string
	split      string
	// IsTerminal reports whether standard output is a terminal.
	IsTerminal func() bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "path of YAML config file")
	fs.Func("factory", "writer factory alias (see \"stax factories\")", stringFunc(&f.alias))
	fs.Func("prefix", "line prefix for indented output", stringFunc(&f.prefix))
	fs.Func("indent", "indentation string for indented output", stringFunc(&f.indent))
	fs.BoolFunc("normalize", "normalize text to Unicode NFC", boolFunc(&f.normalize))
	fs.Func("root", "name of the document element", stringFunc(&f.root))
	fs.Func("element", "name of the element wrapping each line", stringFunc(&f.element))
	fs.BoolFunc("nodecl", "omit the XML declaration", boolFunc(&f.noDecl))
	fs.BoolFunc("number", "add each line's number as attribute n", boolFunc(&f.number))
	fs.StringVar(&f.outputFile, "o", "", "write data to output file")
	fs.StringVar(&f.split, "split", "", "write one output file per input into this directory")
}

func stringFunc(p **string) func(string) error {
	return func(s string) error {
		*p = &s
		return nil
	}
}

func boolFunc(p **bool) func(string) error {
	return func(s string) error {
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		*p = &b
		return nil
	}
}

// Init loads the configuration, applies overrides, and resolves the writer
// factory.
func (f *Flags) Init() error {
	env, err := config.LoadEnv()
	if err != nil {
		return err
	}
	if f.configPath == "" {
		f.configPath = env.Config
	}
	if f.alias == nil && env.Factory != "" {
		f.alias = &env.Factory
	}
	conf := config.Default()
	if f.configPath != "" {
		if conf, err = config.Load(f.configPath); err != nil {
			return err
		}
	}
	if f.outputFile == "-" {
		f.outputFile = ""
	}
	if f.split != "" && f.outputFile != "" {
		return errors.New("cannot use -o with -split")
	}
	override(&conf.WriterFactory.Alias, f.alias)
	override(&conf.WriterFactory.Prefix, f.prefix)
	override(&conf.WriterFactory.Indent, f.indent)
	override(&conf.WriterFactory.Normalize, f.normalize)
	override(&conf.Document.Root, f.root)
	override(&conf.Document.Element, f.element)
	override(&conf.Document.NoDeclaration, f.noDecl)
	override(&conf.Document.Number, f.number)
	if f.alias == nil && f.configPath == "" {
		if f.prefix != nil || f.indent != nil || (f.outputFile == "" && f.split == "" && f.isTerminal()) {
			conf.WriterFactory.Alias = factory.IndentAlias
		}
	}
	if err := conf.Resolve(factory.Builtin()); err != nil {
		return err
	}
	f.config = conf
	return nil
}

func override[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (f *Flags) isTerminal() bool {
	if f.IsTerminal != nil {
		return f.IsTerminal()
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// Config returns the configuration built by Init.
func (f *Flags) Config() *config.Config {
	return f.config
}

// ConfigPath returns the -config path, or STAX_CONFIG if -config was not
// given.
func (f *Flags) ConfigPath() string {
	return f.configPath
}

// Jobs plans the conversion of inputs.  Without -split every input goes to
// a single document.
func (f *Flags) Jobs(inputs []*storage.URI) ([]emitter.Job, error) {
	if f.split != "" {
		dir, err := storage.ParseURI(f.split)
		if err != nil {
			return nil, err
		}
		return emitter.SplitJobs(dir, inputs)
	}
	out := storage.Stdout
	if f.outputFile != "" {
		var err error
		if out, err = storage.ParseURI(f.outputFile); err != nil {
			return nil, err
		}
	}
	return []emitter.Job{{Inputs: inputs, Output: out}}, nil
}
