package main

import (
	"bytes"
	"fmt"
	"io"
	"reflect"

	"github.com/jessevdk/go-flags"
	"github.com/peco/flash/config"
	"github.com/pkg/errors"
)

type cmdOptions struct {
	OptHelp          bool   `short:"h" long:"help" description:"show this help message and exit"`
	OptVersion       bool   `long:"version" description:"print the version and exit"`
	OptRcfile        string `long:"rcfile" description:"path to the settings file"`
	OptLabelChars    string `long:"label-chars" description:"characters used as jump labels"`
	OptCaseSensitive bool   `long:"case-sensitive" description:"match case even for all-lowercase queries"`
	OptHug           bool   `long:"hug" description:"put line labels on the first non-blank column"`
	OptListActions   bool   `long:"list-actions" description:"print the names of the bindable actions and exit"`
}

func (o *cmdOptions) parse(s []string, stderr io.Writer) ([]string, error) {
	p := flags.NewParser(o, flags.PrintErrors)
	args, err := p.ParseArgs(s)
	if err != nil {
		stderr.Write(o.help())
		return nil, errors.Wrap(err, "invalid command line options")
	}
	return args, nil
}

// apply overrides the settings read from the rcfile.
func (o *cmdOptions) apply(cfg *config.Config) error {
	if o.OptLabelChars != "" {
		cfg.LabelChars = o.OptLabelChars
	}
	if o.OptCaseSensitive {
		cfg.CaseSensitive = true
	}
	if o.OptHug {
		cfg.LineHugsTheContent = true
	}
	return errors.Wrap(cfg.Validate(), "invalid settings")
}

func (o cmdOptions) help() []byte {
	buf := bytes.Buffer{}

	fmt.Fprintf(&buf, `
Usage: flash [options] FILE...

Options:
`)

	t := reflect.TypeOf(o)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag

		var opt string
		if s := tag.Get("short"); s != "" {
			opt = fmt.Sprintf("-%s, --%s", s, tag.Get("long"))
		} else {
			opt = fmt.Sprintf("--%s", tag.Get("long"))
		}
		fmt.Fprintf(&buf, "  %-21s %s\n", opt, tag.Get("description"))
	}

	return buf.Bytes()
}
