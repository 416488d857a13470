package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/querystate/internal/config"
	"github.com/vango-dev/querystate/internal/errors"
	"github.com/vango-dev/querystate/pkg/querycodec"
	"github.com/vango-dev/querystate/pkg/querysync"
)

// mappingFlags are the field declaration flags shared by every command.
type mappingFlags struct {
	fields     []string
	configPath string
}

func (f *mappingFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.fields, "field", "f", nil, "Field declaration name=kind (repeatable)")
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to "+config.ConfigFileName)
}

// load resolves the config file, if any, and appends --field declarations.
func (f *mappingFlags) load() (*config.Config, *querycodec.Mapping, error) {
	cfg := config.New()
	if f.configPath != "" {
		loaded, err := config.LoadFile(f.configPath)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
	}

	for _, decl := range f.fields {
		field, err := parseFieldFlag(decl)
		if err != nil {
			return nil, nil, err
		}
		cfg.Fields = append(cfg.Fields, field)
	}

	m, err := cfg.Mapping()
	if err != nil {
		return nil, nil, err
	}
	return cfg, m, nil
}

func parseFieldFlag(decl string) (querycodec.Field, error) {
	name, kindName, ok := strings.Cut(decl, "=")
	if !ok || name == "" {
		return querycodec.Field{}, errors.New("Q103").
			WithDetail("expected name=kind, got " + strconv.Quote(decl))
	}
	kind, err := querycodec.ParseKind(kindName)
	if err != nil {
		return querycodec.Field{}, errors.New("Q103").WithField(name).Wrap(err)
	}
	return querycodec.Field{Name: name, Kind: kind}, nil
}

// parseAssignments turns --set name=value flags into an update. Values for
// list and set fields accumulate across repeated flags; number fields must
// parse as numbers.
func parseAssignments(m *querycodec.Mapping, sets, nulls []string) (querysync.Update, error) {
	u := make(querysync.Update)
	lists := make(map[string][]string)

	for _, assignment := range sets {
		name, raw, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, errors.Newf(errors.CategoryCLI, "expected name=value, got %q", assignment)
		}
		kind, declared := m.Kind(name)
		if !declared {
			return nil, errors.Newf(errors.CategoryCLI, "field %q is not declared", name)
		}

		switch kind {
		case querycodec.StringList, querycodec.OptionalStringList, querycodec.StringSet:
			if raw != "" {
				lists[name] = append(lists[name], raw)
			} else if _, seen := lists[name]; !seen {
				lists[name] = []string{}
			}
		case querycodec.Number, querycodec.DeferredNumber:
			if raw == "" {
				u[name] = querycodec.Str("")
				continue
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, errors.Newf(errors.CategoryCLI, "field %q: %q is not a number", name, raw)
			}
			u[name] = querycodec.Num(n)
		default:
			u[name] = querycodec.Str(raw)
		}
	}

	for name, items := range lists {
		if kind, _ := m.Kind(name); kind == querycodec.StringSet {
			u[name] = querycodec.SetOf(items...)
		} else {
			u[name] = querycodec.List(items...)
		}
	}

	for _, name := range nulls {
		if _, declared := m.Kind(name); !declared {
			return nil, errors.Newf(errors.CategoryCLI, "field %q is not declared", name)
		}
		u[name] = querycodec.Null()
	}
	return u, nil
}
