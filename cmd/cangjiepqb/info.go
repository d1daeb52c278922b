package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	_ "github.com/mattn/go-sqlite3"
)

var infoCmd = &cobra.Command{
	Use:   "info <artifact.pqb>",
	Short: "Show the properties and entry count of a built dictionary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("open artifact: %w", err)
		}

		db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
		if err != nil {
			return fmt.Errorf("open artifact: %w", err)
		}
		defer db.Close()

		rows, err := db.Query(`SELECT propid, propvalue FROM pleco_dict_properties
			WHERE propset = 0 ORDER BY propid`)
		if err != nil {
			return fmt.Errorf("read properties: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id, value string
			if err := rows.Scan(&id, &value); err != nil {
				return err
			}
			cmd.Printf("%-20s %s\n", id, value)
		}
		if err := rows.Err(); err != nil {
			return err
		}

		var count int
		if err := db.QueryRow(`SELECT COUNT(*) FROM pleco_dict_entries`).Scan(&count); err != nil {
			return fmt.Errorf("count entries: %w", err)
		}
		cmd.Printf("%-20s %d\n", "entries", count)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
