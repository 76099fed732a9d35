// Command ho compiles a specification document into callable operations
// and invokes them from the command line.
//
//	ho ops api.yaml                                  — list compiled operations
//	ho call api.yaml get_users_id_ -p id=42          — invoke one by name
//	ho call api.yaml get_users_id_ --base-url http://localhost:8080 -p id=42
//
// Documents are OpenAPI 3 by default; pass --native for the plain
// path/method/parameters format.
package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/i2mint/ho"
)

func main() {
	var (
		baseURL string
		native  bool
		params  []string
	)

	rootCmd := &cobra.Command{
		Use:           "ho",
		Short:         "Compile URL templates and OpenAPI documents into callable operations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Base URL requests are resolved against")
	rootCmd.PersistentFlags().BoolVar(&native, "native", false, "Treat the document as the native format instead of OpenAPI 3")

	opsCmd := &cobra.Command{
		Use:   "ops <spec-file>",
		Short: "List the operations a document compiles to",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			ns, err := buildNamespace(args[0], baseURL, native)
			if err != nil {
				return err
			}
			for _, name := range ns.Names() {
				fn, _ := ns.Get(name)
				d := fn.Descriptor()
				fmt.Printf("%-40s %s %s", name, d.Method(), d.PathTemplate())
				if d.Description() != "" {
					fmt.Printf("  — %s", d.Description())
				}
				fmt.Println()
			}
			return nil
		},
	}

	callCmd := &cobra.Command{
		Use:   "call <spec-file> <operation>",
		Short: "Invoke one compiled operation by its derived name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ns, err := buildNamespace(args[0], baseURL, native)
			if err != nil {
				return err
			}
			callArgs, err := parseArgs(params)
			if err != nil {
				return err
			}
			out, err := ns.Call(cmd.Context(), args[1], callArgs)
			if err != nil {
				return err
			}
			switch v := out.(type) {
			case string:
				fmt.Println(v)
			default:
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(v)
			}
			return nil
		},
	}
	callCmd.Flags().StringArrayVarP(&params, "param", "p", nil, "Operation argument as name=value (repeatable)")

	rootCmd.AddCommand(opsCmd, callCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("ho failed", "err", err)
		os.Exit(1)
	}
}

func buildNamespace(specPath, baseURL string, native bool) (*ho.Namespace, error) {
	data, err := os.ReadFile(specPath)
	if err != nil {
		return nil, err
	}

	var doc ho.Document
	if native {
		doc, err = ho.ParseDocument(data)
	} else {
		doc, err = ho.LoadDocument(data)
	}
	if err != nil {
		return nil, err
	}

	reg, err := ho.BuildRegistry(doc, baseURL, ho.WithStrict())
	if err != nil {
		return nil, err
	}
	return reg.Namespace()
}

// parseArgs turns repeated name=value flags into a call argument set.
// Values stay strings; declared parameter types coerce them.
func parseArgs(pairs []string) (ho.Args, error) {
	args := make(ho.Args, len(pairs))
	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q: want name=value", pair)
		}
		args[name] = value
	}
	return args, nil
}
