package inputflags

import (
	"flag"

	"github.com/brimdata/stax/pkg/storage"
)

type Flags struct {
	stdin bool
}

func (f *Flags) SetFlags(fs *flag.FlagSet) {
	fs.BoolVar(&f.stdin, "stdin", false, "read standard input after any file arguments")
}

// URIs parses the input paths in args.  With no paths, or with -stdin,
// standard input is read.
func (f *Flags) URIs(args []string) ([]*storage.URI, error) {
	var uris []*storage.URI
	for _, path := range args {
		u, err := storage.ParseURI(path)
		if err != nil {
			return nil, err
		}
		uris = append(uris, u)
	}
	if len(uris) == 0 || f.stdin {
		uris = append(uris, storage.Stdin)
	}
	return uris, nil
}
