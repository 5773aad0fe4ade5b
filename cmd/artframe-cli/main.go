package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"artframe/internal/config"
	"artframe/internal/favorites"
	"artframe/internal/provider"
)

var (
	dbPathFlag string
	countFlag  int
	genreFlag  string
)

func cliLogger(msg string) {
	log.Printf("[artframe-cli] %s", msg)
}

// NewRootCmd creates the root command for the CLI application. The openDB
// function is injected so tests can point the favorites commands at a
// temporary database.
func NewRootCmd(openDB func(dbPath string, logger favorites.LoggerFunc) (*favorites.DB, error)) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "artframe-cli",
		Short: "ArtFrame CLI - resolve artwork URLs and manage favorites",
	}
	rootCmd.PersistentFlags().StringVar(&dbPathFlag, "dbpath", "", "Directory of the favorites database (defaults to the user config dir)")

	resolveCmd := &cobra.Command{
		Use:   "resolve [genre]",
		Short: "Print freshly resolved image URLs for a genre",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			genre := config.GenreMountains
			if len(args) == 1 {
				var err error
				genre, err = config.ParseGenre(args[0])
				if err != nil {
					return err
				}
			}
			prov := provider.New(nil)
			for i := 0; i < countFlag; i++ {
				cmd.Println(prov.Resolve(genre).URL)
			}
			return nil
		},
	}
	resolveCmd.Flags().IntVar(&countFlag, "count", 1, "Number of URLs to resolve")
	rootCmd.AddCommand(resolveCmd)

	genresCmd := &cobra.Command{
		Use:   "genres",
		Short: "List the image genres",
		Run: func(cmd *cobra.Command, args []string) {
			for _, g := range config.Genres {
				cmd.Printf("%s (%s)\n", g, g.Slug())
			}
		},
	}
	rootCmd.AddCommand(genresCmd)

	stylesCmd := &cobra.Command{
		Use:   "styles",
		Short: "List the frame styles",
		Run: func(cmd *cobra.Command, args []string) {
			for _, fs := range config.FrameStyles {
				cmd.Println(fs.String())
			}
		},
	}
	rootCmd.AddCommand(stylesCmd)

	filtersCmd := &cobra.Command{
		Use:   "filters",
		Short: "List the filter presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, f := range config.FilterPresets {
				cmd.Println(f.String())
			}
		},
	}
	rootCmd.AddCommand(filtersCmd)

	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage starred images",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List starred images, optionally for one genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPathFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open favorites database: %w", err)
			}
			defer db.Close()

			if genreFlag != "" {
				genre, err := config.ParseGenre(genreFlag)
				if err != nil {
					return err
				}
				urls, err := db.ListByGenre(genre)
				if err != nil {
					return err
				}
				if len(urls) == 0 {
					cmd.Printf("No favorites stored for %s.\n", genre)
					return nil
				}
				for _, url := range urls {
					cmd.Println(url)
				}
				return nil
			}

			all, err := db.All()
			if err != nil {
				return err
			}
			if len(all) == 0 {
				cmd.Println("No favorites stored.")
				return nil
			}
			for _, fav := range all {
				cmd.Printf("%s\t%s\n", fav.Genre, fav.URL)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&genreFlag, "genre", "", "Only list favorites for this genre")
	favoritesCmd.AddCommand(listCmd)

	removeCmd := &cobra.Command{
		Use:   "remove [url]",
		Short: "Unstar an image by URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPathFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open favorites database: %w", err)
			}
			defer db.Close()
			if err := db.Remove(args[0]); err != nil {
				return err
			}
			cmd.Printf("Removed %s\n", args[0])
			return nil
		},
	}
	favoritesCmd.AddCommand(removeCmd)

	countsCmd := &cobra.Command{
		Use:   "counts",
		Short: "Show favorite totals per genre",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB(dbPathFlag, cliLogger)
			if err != nil {
				return fmt.Errorf("failed to open favorites database: %w", err)
			}
			defer db.Close()
			counts, err := db.Counts()
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				cmd.Println("No favorites stored.")
				return nil
			}
			for _, gc := range counts {
				cmd.Printf("%s (%d)\n", gc.Genre, gc.Count)
			}
			return nil
		},
	}
	favoritesCmd.AddCommand(countsCmd)

	rootCmd.AddCommand(favoritesCmd)
	return rootCmd
}

func main() {
	rootCmd := NewRootCmd(favorites.NewDB)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
