package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanzikit/cangjiepqb/pkg/build"
	"github.com/hanzikit/cangjiepqb/pkg/cangjie"
	"github.com/hanzikit/cangjiepqb/pkg/pleco"
)

const (
	buildCJ3Key       = "build.cj3"
	buildCJ5Key       = "build.cj5"
	buildOutKey       = "build.out"
	buildDictNameKey  = "build.dict_name"
	buildMenuNameKey  = "build.menu_name"
	buildShortNameKey = "build.short_name"
	buildIconKey      = "build.icon"
	buildSeedKey      = "build.seed"
	buildWorkersKey   = "build.workers"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build a .pqb dictionary from Cangjie3 and Cangjie5 tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := viper.GetString(buildOutKey)
		if outPath == "" {
			return fmt.Errorf("--out is required")
		}

		primary, err := loadTable(viper.GetString(buildCJ3Key), "cangjie3")
		if err != nil {
			return err
		}
		secondary, err := loadTable(viper.GetString(buildCJ5Key), "cangjie5")
		if err != nil {
			return err
		}

		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		if seed := viper.GetInt64(buildSeedKey); seed != 0 {
			rng = rand.New(rand.NewSource(seed))
		}

		b := &build.Builder{
			Primary:   primary,
			Secondary: secondary,
			Meta: pleco.Metadata{
				Name:      viper.GetString(buildDictNameKey),
				MenuName:  viper.GetString(buildMenuNameKey),
				ShortName: viper.GetString(buildShortNameKey),
				Icon:      viper.GetString(buildIconKey),
			},
			Workers: viper.GetInt(buildWorkersKey),
			Rand:    rng,
			Logger:  logger,
		}
		logger.Info("building: ", b.Describe())

		count, err := b.Build(cmd.Context(), outPath)
		if err != nil {
			return fmt.Errorf("build %s: %w", outPath, err)
		}
		cmd.Printf("Wrote %s with %d entries.\n", outPath, count)
		return nil
	},
}

func loadTable(path, system string) (cangjie.Table, error) {
	table, err := cangjie.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s table: %w", system, err)
	}
	logger.WithFields(logrus.Fields{
		"table":      system,
		"path":       path,
		"characters": len(table),
	}).Info("loaded code table")
	return table, nil
}

func init() {
	rootCmd.AddCommand(buildCmd)

	buildCmd.Flags().String("cj3", "cangjie3.txt", "Cangjie3 table path")
	buildCmd.Flags().String("cj5", "cangjie5.txt", "Cangjie5 table path")
	buildCmd.Flags().StringP("out", "o", "", "output .pqb path (required)")
	buildCmd.Flags().String("dict-name", "Cangjie Input Dictionary 倉頡輸入字典", "dictionary display name")
	buildCmd.Flags().String("menu-name", "Cangjie Input Dictionary", "dictionary menu name")
	buildCmd.Flags().String("short-name", "Cangjie Input Dictionary", "dictionary short name")
	buildCmd.Flags().String("icon", "CJ", "icon token")
	buildCmd.Flags().Int64("seed", 0, "seed for the opaque file identifiers (0 = time-based)")
	buildCmd.Flags().Int("workers", 0, "derivation workers (0 = number of CPUs)")

	bindFlagToViper(buildCJ3Key, buildCmd.Flags().Lookup("cj3"))
	bindFlagToViper(buildCJ5Key, buildCmd.Flags().Lookup("cj5"))
	bindFlagToViper(buildOutKey, buildCmd.Flags().Lookup("out"))
	bindFlagToViper(buildDictNameKey, buildCmd.Flags().Lookup("dict-name"))
	bindFlagToViper(buildMenuNameKey, buildCmd.Flags().Lookup("menu-name"))
	bindFlagToViper(buildShortNameKey, buildCmd.Flags().Lookup("short-name"))
	bindFlagToViper(buildIconKey, buildCmd.Flags().Lookup("icon"))
	bindFlagToViper(buildSeedKey, buildCmd.Flags().Lookup("seed"))
	bindFlagToViper(buildWorkersKey, buildCmd.Flags().Lookup("workers"))
}
