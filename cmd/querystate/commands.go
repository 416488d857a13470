package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

func decodeCmd() *cobra.Command {
	var flags mappingFlags

	cmd := &cobra.Command{
		Use:   "decode URL",
		Short: "Decode a URL's query into typed values",
		Long: `Decode prints the typed values of the declared fields as JSON.

Examples:
  querystate decode 'https://shop.example/list?page=2&tags=a&tags=b' -f page=number -f tags=string_list
  querystate decode -c querystate.json 'https://shop.example/list?q=boots'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := flags.load()
			if err != nil {
				return err
			}
			return runDecode(cmd.OutOrStdout(), args[0], m)
		},
	}
	flags.register(cmd)
	return cmd
}

func runDecode(w io.Writer, rawURL string, m *querycodec.Mapping) error {
	loc, err := querysync.NewMemoryLocation(rawURL)
	if err != nil {
		return err
	}
	values, err := querycodec.Decode(loc.URL().Query(), m)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func encodeCmd() *cobra.Command {
	var (
		flags     mappingFlags
		sets      []string
		nulls     []string
		immediate bool
	)

	cmd := &cobra.Command{
		Use:   "encode URL",
		Short: "Apply typed updates to a URL's query",
		Long: `Encode applies --set and --null updates to the declared fields and
prints the resulting URL. Deferred fields are buffered and then flushed,
exactly as a browser session would after the debounce window.

Examples:
  querystate encode 'https://shop.example/list?page=1' -f page=number --set page=2
  querystate encode 'https://shop.example/list' -f tags=string_list --set tags=a --set tags=b
  querystate encode 'https://shop.example/list?q=x' -f q=deferred_string --null q`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, m, err := flags.load()
			if err != nil {
				return err
			}
			u, err := parseAssignments(m, sets, nulls)
			if err != nil {
				return err
			}
			return runEncode(cmd.OutOrStdout(), args[0], m, u, immediate)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringArrayVarP(&sets, "set", "s", nil, "Assignment name=value (repeat for list fields)")
	cmd.Flags().StringArrayVar(&nulls, "null", nil, "Field to delete (repeatable)")
	cmd.Flags().BoolVarP(&immediate, "immediate", "i", false, "Write deferred fields without buffering")
	return cmd
}

func runEncode(w io.Writer, rawURL string, m *querycodec.Mapping, u querysync.Update, immediate bool) error {
	loc, err := querysync.NewMemoryLocation(rawURL)
	if err != nil {
		return err
	}
	p := querysync.NewProvider(loc, querysync.WithLogger(slog.Default()))
	defer p.Close()

	var opts []querysync.UpdateOption
	if immediate {
		opts = append(opts, querysync.Immediate())
	}
	p.Bind(m).Update(u, opts...)
	p.Flush()

	_, err = fmt.Fprintln(w, loc.String())
	return err
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset URL",
		Short: "Remove every query parameter from a URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReset(cmd.OutOrStdout(), args[0])
		},
	}
}

func runReset(w io.Writer, rawURL string) error {
	loc, err := querysync.NewMemoryLocation(rawURL)
	if err != nil {
		return err
	}
	p := querysync.NewProvider(loc, querysync.WithLogger(slog.Default()))
	defer p.Close()
	p.Reset()

	_, err = fmt.Fprintln(w, loc.String())
	return err
}
