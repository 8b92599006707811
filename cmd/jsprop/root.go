// Root command for the jsprop CLI.
package main

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Global flag values.
var (
	flagVerbose  bool
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "jsprop",
	Short: "jsprop inspects JavaScript property descriptors",
	Long: `jsprop is an inspection tool for the property descriptor engine.

Descriptor literals are given as JSON objects with the usual keys
(value, writable, enumerable, configurable, get, set). Since JSON has
no function values, string values for "get" and "set" are interpreted
as the names of stub functions:

  jsprop classify '{"value": 3, "writable": true}'
  jsprop convert '{"get": "getFoo", "enumerable": true}'`,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("JSPROP")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(cacheCmd)
}

// setupLogging configures logrus from flags and the JSPROP_LOG_LEVEL
// environment variable. --verbose wins over the configured level.
func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetOutput(cmd.ErrOrStderr())

	if flagVerbose {
		logrus.SetLevel(logrus.DebugLevel)
		return nil
	}
	if lvl := strings.TrimSpace(viper.GetString("log_level")); lvl != "" {
		parsed, err := logrus.ParseLevel(lvl)
		if err != nil {
			return err
		}
		logrus.SetLevel(parsed)
		return nil
	}
	logrus.SetLevel(logrus.WarnLevel)
	return nil
}
