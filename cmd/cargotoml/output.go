package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"

	"github.com/KimNorgaard/go-cargotoml"
)

// dumper prints typed models with spans and variant structure intact.
var dumper = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// render writes v in the requested format. Text output is produced by
// text, the other formats work on the decoded model.
func render(w io.Writer, format string, v any, text func(io.Writer) error) error {
	switch format {
	case "text":
		return text(w)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(cargotoml.Plain(v))
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(cargotoml.Plain(v)); err != nil {
			return err
		}
		return enc.Close()
	case "spew":
		dumper.Fdump(w, v)
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
