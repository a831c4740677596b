package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Browse exam categories and subtopics",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories, or the subtopics of one category",
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("category")

		if key == "" {
			fmt.Printf("%-16s  %-36s  %9s  %s\n", "Key", "Title", "Questions", "Subtopics")
			fmt.Println(strings.Repeat("─", 76))
			for _, c := range catalog.Categories() {
				fmt.Printf("%-16s  %-36s  %9s  %d\n", c.Key, c.Title, c.NumQuestions, len(c.Subtopics))
			}
			return nil
		}

		c, ok := catalog.CategoryByKey(key)
		if !ok {
			return fmt.Errorf("no category %q (see `feprep catalog list`)", key)
		}
		fmt.Printf("%s (%s questions)\n", c.Title, c.NumQuestions)
		fmt.Println(strings.Repeat("─", 60))
		for _, t := range c.Topics() {
			seeds := ""
			if n := len(catalog.Seeds(t)); n > 0 {
				seeds = fmt.Sprintf("  [%d built-in]", n)
			}
			fmt.Printf("  %s  %s%s\n", t.SubtopicID, t.SubtopicTitle, seeds)
		}
		return nil
	},
}

func init() {
	catalogListCmd.Flags().StringP("category", "c", "", "Show the subtopics of this category")
	catalogCmd.AddCommand(catalogListCmd)
}
