package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/reach/internal/search"
	"github.com/xonecas/reach/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search the project for symbols and text",
	Long:  `Runs the pattern (a case-insensitive regular expression) through every configured contributor and records the query.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		findOnly, _ := cmd.Flags().GetBool("find")

		st := openStore()
		defer st.Close()

		svc, err := search.NewService(dir, cfg.Search, st)
		if err != nil {
			return err
		}
		run := svc.Search
		if findOnly {
			run = svc.Find
		}
		groups, err := run(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Printf("== %s ==\n", g.Name)
			for _, it := range g.Items {
				fmt.Println(it)
			}
		}
		return nil
	},
}

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List recorded search queries",
	RunE: func(cmd *cobra.Command, args []string) error {
		st := openStore()
		defer st.Close()

		report, err := st.QueryReport()
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, strings.TrimRight(report, "\n"))
		return nil
	},
}

func init() {
	searchCmd.Flags().String("dir", ".", "project root")
	searchCmd.Flags().Bool("find", false, "only use contributors shown in find results")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(queriesCmd)
}

// openStore opens the query log. A store that fails to open is replaced by
// nil, which records nothing.
func openStore() *store.Store {
	path, err := cfg.DBPath()
	if err != nil {
		log.Warn().Err(err).Msg("no query store path")
		return nil
	}
	st, err := store.Open(path, cfg.Store.TTL())
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to open query store")
		return nil
	}
	return st
}
