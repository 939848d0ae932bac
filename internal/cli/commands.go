package cli

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hugr-lab/jql-go"
	"github.com/hugr-lab/jql-go/filter"
	"github.com/hugr-lab/jql-go/internal/recovery"
	"github.com/hugr-lab/jql-go/internal/serialize"
)

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		format     string
		listFields bool
	)

	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a filter document as query text",
		Long: `Compile a JSON or YAML filter document and print the query text.

Reads stdin when no file is given. With --fields the fields referenced by the
filter are listed after the query, one per line.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recovery.RecoverToError(rootOpts.Filter.Logger, "render", func() error {
				q, err := compileInput(cmd, args, format, rootOpts.Filter)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, q.String())
				if listFields {
					for _, f := range jql.ReferencedFields(q.Filter) {
						fmt.Fprintln(out, f.String())
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "input", "i", FormatAuto, "input format (auto|json|yaml)")
	cmd.Flags().BoolVar(&listFields, "fields", false, "list referenced fields")

	return cmd
}

// NewPackCommand creates the pack command.
func NewPackCommand(rootOpts *RootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "pack [file|-]",
		Short: "Pack a filter document into its base64 binary form",
		Long: `Compile a filter document and print its packed binary form as base64.

Field names are resolved before packing, so the packed form does not depend on
the config used to produce it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recovery.RecoverToError(rootOpts.Filter.Logger, "pack", func() error {
				q, err := compileInput(cmd, args, format, rootOpts.Filter)
				if err != nil {
					return err
				}
				doc, err := filter.FromQuery(q)
				if err != nil {
					return err
				}
				data, err := filter.MarshalBinary(doc)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), base64.StdEncoding.EncodeToString(data))
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&format, "input", "i", FormatAuto, "input format (auto|json|yaml)")

	return cmd
}

// NewUnpackCommand creates the unpack command.
func NewUnpackCommand(rootOpts *RootOptions) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "unpack [file|-]",
		Short: "Render a packed document as query text",
		Long: `Decode a base64 packed document and print its query text.

Packed fields are already resolved, so the config's field mapping is not
applied. With --raw the decoded document is printed as YAML instead of being
compiled.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return recovery.RecoverToError(rootOpts.Filter.Logger, "unpack", func() error {
				_, text, err := readInput(cmd, args)
				if err != nil {
					return err
				}
				data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(text)))
				if err != nil {
					return fmt.Errorf("invalid base64: %w", err)
				}

				if raw {
					m, err := serialize.Inspect(data)
					if err != nil {
						return err
					}
					out, err := yaml.Marshal(m)
					if err != nil {
						return err
					}
					_, err = cmd.OutOrStdout().Write(out)
					return err
				}

				doc, err := filter.UnmarshalBinary(data)
				if err != nil {
					return err
				}
				q, err := filter.Compile(doc, &filter.Options{Logger: rootOpts.Filter.Logger})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), q.String())
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print the decoded document as YAML")

	return cmd
}
