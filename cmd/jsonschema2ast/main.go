// Command jsonschema2ast reads a JSON Schema document (JSON or YAML), runs
// it through a minimal local dereferencer, translates it with
// jsonschema2ast, and prints the resulting AST as JSON. It does not emit
// target-language source — only the AST a downstream generator would
// consume.
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	goccyjson "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kaptinlin/jsonschema2ast"
	"github.com/kaptinlin/jsonschema2ast/internal/deref"
)

// config holds the flags registered onto the root command.
type config struct {
	Output                 string
	Indent                 int
	Verbose                bool
	UnknownAny             bool
	UnreachableDefinitions bool
}

// RegisterFlags wires c's fields onto fs, in the style of the rest of the
// example pack's cobra/pflag CLIs.
func (c *config) RegisterFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Output, "output", "o", "-", "output file, or - for stdout")
	fs.IntVar(&c.Indent, "indent", 2, "number of spaces to indent the AST output")
	fs.BoolVarP(&c.Verbose, "verbose", "v", false, "verbose logging")
	fs.BoolVar(&c.UnknownAny, "unknown-any", false, "replace the ANY sentinel with UNKNOWN throughout")
	fs.BoolVar(&c.UnreachableDefinitions, "unreachable-definitions", false, "emit every definitions entry as a param of its parent interface")
}

func main() {
	cfg := &config{}

	rootCmd := &cobra.Command{
		Use:           "jsonschema2ast [flags] <schema-file>",
		Short:         "Translate a JSON Schema document into a language-neutral AST",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(_ *cobra.Command, args []string) error {
			return run(cfg, args[0])
		},
	}

	cfg.RegisterFlags(rootCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config, path string) error {
	if cfg.Verbose {
		log.Printf("🚀 reading schema from %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		if cfg.Verbose {
			log.Printf("📦 converting YAML input to JSON")
		}
		data, err = yamlToJSON(data)
		if err != nil {
			return fmt.Errorf("convert yaml schema: %w", err)
		}
	}

	root, err := deref.Parse(data)
	if err != nil {
		return fmt.Errorf("❌ dereference schema: %w", err)
	}
	if cfg.Verbose {
		log.Printf("✅ schema parsed and linked")
	}

	opts := jsonschema2ast.Options{
		UnknownAny:             cfg.UnknownAny,
		UnreachableDefinitions: cfg.UnreachableDefinitions,
	}
	translator := jsonschema2ast.New(root, opts)

	ast, err := translator.Translate(root)
	if err != nil {
		return fmt.Errorf("❌ translate schema: %w", err)
	}
	if cfg.Verbose {
		log.Printf("🎉 translation complete")
	}

	indent := strings.Repeat(" ", cfg.Indent)
	out, err := goccyjson.MarshalIndent(ast, "", indent)
	if err != nil {
		return fmt.Errorf("encode ast: %w", err)
	}
	out = append(out, '\n')

	if cfg.Output == "" || cfg.Output == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	return os.WriteFile(cfg.Output, out, 0o644)
}

// yamlToJSON decodes data as YAML into a generic value and re-encodes it as
// JSON, so the rest of the pipeline only ever has to deal with one format.
func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return goccyjson.Marshal(v)
}
