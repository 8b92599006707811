// Cache command looks up a literal in the frozen descriptor cache.
package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"jsprop/pkg/vm"
)

var cacheCmd = &cobra.Command{
	Use:   "cache <literal>",
	Short: "Show the frozen-cache entry for a literal",
	Long: `Cache looks up a boolean or numeric literal in the shared cache of
all-forbidden descriptors and reports whether the value is cached.

Example:
  jsprop cache 3
  jsprop cache true
  jsprop cache 3.5`,
	Args: cobra.ExactArgs(1),
	RunE: runCache,
}

func runCache(cmd *cobra.Command, args []string) error {
	value, err := parseCacheLiteral(args[0])
	if err != nil {
		return err
	}

	vmctx := vm.New()
	pd, ok := vmctx.Descriptors().Forbidden(value)
	if !ok {
		return printJSON(map[string]interface{}{
			"literal": valueToJSON(value),
			"cached":  false,
		})
	}
	return printJSON(map[string]interface{}{
		"literal":    valueToJSON(value),
		"cached":     true,
		"descriptor": descriptorReport(pd),
	})
}

func parseCacheLiteral(input string) (vm.Value, error) {
	if f, err := strconv.ParseFloat(input, 64); err == nil {
		return vm.NumberValue(f), nil
	}
	if b, err := strconv.ParseBool(input); err == nil {
		return vm.BooleanValue(b), nil
	}
	return vm.Undefined, fmt.Errorf("literal %q is not a boolean or number", input)
}
