// cangjiepqb builds Pleco SQL dictionary databases (.pqb) from Cangjie
// romanization tables.
package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var logger = logrus.New()

var rootCmd = &cobra.Command{
	Use:          "cangjiepqb",
	Short:        "Build Pleco dictionary databases from Cangjie code tables",
	SilenceUsage: true,
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}
