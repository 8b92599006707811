// Convert command rounds a descriptor literal through the conversion
// protocol and prints the materialized object.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jsprop/pkg/vm"
)

var flagStrict bool

var convertCmd = &cobra.Command{
	Use:   "convert <json>",
	Short: "Round-trip a descriptor literal through the conversion protocol",
	Long: `Convert parses a JSON descriptor literal, converts it to an internal
property descriptor, materializes it back into an object, and prints
that object. With --strict, attributes that were never explicitly set
are omitted from the output instead of defaulting to false.

Example:
  jsprop convert '{"value": 3}'
  jsprop convert --strict '{"value": 3}'`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().BoolVar(&flagStrict, "strict", false, "omit attributes that were not explicitly set")
}

func runConvert(cmd *cobra.Command, args []string) error {
	candidate, err := parseDescriptorLiteral(args[0])
	if err != nil {
		return err
	}

	vmctx := vm.New()
	pd, err := vm.ToPropertyDescriptor(vmctx, candidate)
	if err != nil {
		return err
	}
	logrus.Debugf("converted literal to %s", pd)

	return printJSON(valueToJSON(vm.FromPropertyDescriptor(vmctx, pd, flagStrict)))
}
