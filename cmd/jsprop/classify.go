// Classify command runs a descriptor literal through the conversion
// protocol and reports its shape and attributes.
package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jsprop/pkg/vm"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <json>",
	Short: "Classify a descriptor literal",
	Long: `Classify parses a JSON descriptor literal, converts it to an
internal property descriptor, and prints its shape (data, accessor or
generic) together with the attributes that were explicitly set.

Example:
  jsprop classify '{"value": 3, "writable": true}'
  jsprop classify '{"get": "getFoo", "configurable": true}'`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
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

	return printJSON(descriptorReport(pd))
}
