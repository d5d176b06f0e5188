package root

import (
	"github.com/brimdata/stax/cmd/stax/factories"
	"github.com/brimdata/stax/cmd/stax/wrap"
	"github.com/spf13/cobra"
)

const long = `
The "stax" command writes streaming XML through a writer factory chosen
by alias.  Factories bind a writer to an output that stays owned by the
caller, so each output is opened, written, and closed by stax itself.

The built-in factories are listed by "stax factories".  The default
factory, csv-default-stream-writer, writes with the encoder's defaults:
no indentation, UTF-8 output, and prefixed names passed through without
namespace repairing.  The csv-indent-stream-writer factory pretty-prints.

A YAML file given with -config may select the factory and shape the
document, e.g.,

  writer-factory:
    alias: csv-indent-stream-writer
    indent: "    "
  document:
    root: csv-xml
    element: record

Command-line options override values from the file.
`

func New() *cobra.Command {
	c := &cobra.Command{
		Use:           "stax",
		Short:         "write streaming XML through selectable writer factories",
		Long:          long,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	c.AddCommand(factories.New(), wrap.New())
	return c
}
