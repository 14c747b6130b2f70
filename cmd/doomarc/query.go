package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jchantrell/doomarc/internal/database"
)

var queryCmd = &cobra.Command{
	Use:   "query [sql]",
	Short: "Query the lump catalog",
	Long: `Query executes SQL against a catalog written by the catalog command,
lists its tables, or shows a table's schema.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		listTables, err := cmd.Flags().GetBool("tables")
		if err != nil {
			return fmt.Errorf("failed to get tables flag: %w", err)
		}
		schemaTable, err := cmd.Flags().GetString("schema")
		if err != nil {
			return fmt.Errorf("failed to get schema flag: %w", err)
		}

		db, err := database.NewDatabase(database.DefaultDatabaseOptions(cfg.Database))
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()

		switch {
		case listTables:
			tables, err := db.Tables(ctx)
			if err != nil {
				return err
			}
			fmt.Println("Available tables:")
			for _, name := range tables {
				fmt.Printf("  %s\n", name)
			}
			return nil

		case schemaTable != "":
			columns, err := db.Columns(ctx, schemaTable)
			if err != nil {
				return err
			}
			if len(columns) == 0 {
				return fmt.Errorf("table %s not found", schemaTable)
			}

			fmt.Printf("Schema for table '%s':\n", schemaTable)
			fmt.Printf("%-20s %-15s %-10s %-10s %-10s\n", "Column", "Type", "NotNull", "Default", "Primary")
			fmt.Println(strings.Repeat("-", 69))
			for _, c := range columns {
				def := "NULL"
				if c.Default != nil {
					def = *c.Default
				}
				fmt.Printf("%-20s %-15s %-10s %-10s %-10s\n", c.Name, c.Type, yesNo(c.NotNull), def, yesNo(c.PrimaryKey))
			}
			return nil

		case len(args) > 0:
			slog.Debug("Executing SQL query", "query", args[0])
			return runQuery(cmd, db, args[0])
		}

		return fmt.Errorf("no query provided, use --tables to list tables or --schema <table> to show schema")
	},
}

func runQuery(cmd *cobra.Command, db *database.Database, query string) error {
	rows, err := db.Query(cmd.Context(), query)
	if err != nil {
		return err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("getting column names: %w", err)
	}

	rule := make([]string, len(columns))
	for i, col := range columns {
		rule[i] = strings.Repeat("-", len(col))
	}
	fmt.Println(strings.Join(columns, "\t"))
	fmt.Println(strings.Join(rule, "\t"))

	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	cells := make([]string, len(columns))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scanning row: %w", err)
		}
		for i, v := range values {
			switch v := v.(type) {
			case nil:
				cells[i] = "NULL"
			case []byte:
				cells[i] = string(v)
			default:
				cells[i] = fmt.Sprint(v)
			}
		}
		fmt.Println(strings.Join(cells, "\t"))
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating rows: %w", err)
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().Bool("tables", false, "List available tables")
	queryCmd.Flags().String("schema", "", "Show schema for specified table")
}
