package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/bankio"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/store"
)

var bankCmd = &cobra.Command{
	Use:   "bank",
	Short: "Manage the local question bank",
}

var bankListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored questions",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := bankFilterFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		entries, err := s.QuestionRepo().ListQuestions(cmd.Context(), f)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No questions in the bank.")
			return nil
		}

		fmt.Printf("%-36s  %-19s  %-16s  %-3s  %-16s  %-6s  %s\n",
			"ID", "Created", "Category", "Sub", "Kind", "Source", "Text")
		fmt.Println(strings.Repeat("─", 140))
		for _, e := range entries {
			text := "(invalid payload)"
			if kind, err := question.ParseKind(e.Kind); err == nil {
				if q, err := question.Decode(kind, []byte(e.Payload)); err == nil {
					text = q.Common().Text
				}
			}
			fmt.Printf("%-36s  %-19s  %-16s  %-3s  %-16s  %-6s  %s\n",
				e.ID,
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Category, e.Subtopic, e.Kind, e.Source,
				truncate(text, 40),
			)
		}
		return nil
	},
}

var bankExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export stored questions to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		f, err := bankFilterFlags(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		file, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		n, err := bankio.Export(cmd.Context(), s.QuestionRepo(), f, file)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("Exported %d question(s) to %s\n", n, out)
		return nil
	},
}

var bankImportCmd = &cobra.Command{
	Use:   "import <file.xlsx>",
	Short: "Import questions from an Excel workbook",
	Long: `Import questions from the first sheet of a workbook with Category, Subtopic,
Kind and Payload columns (the layout written by bank export). Invalid rows
are reported and skipped; questions already in the bank are ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		file, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer file.Close()

		res, err := bankio.Import(cmd.Context(), s.QuestionRepo(), file)
		if err != nil {
			return err
		}
		for _, re := range res.Errors {
			fmt.Println("skipped", re.Error())
		}
		fmt.Printf("%d row(s): %d added, %d already in the bank, %d invalid\n",
			res.TotalRows, res.Added, res.Duplicates, len(res.Errors))
		return nil
	},
}

var bankDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a stored question by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()
		return s.QuestionRepo().DeleteQuestion(cmd.Context(), args[0])
	},
}

func bankFilterFlags(cmd *cobra.Command) (store.BankFilter, error) {
	var f store.BankFilter
	f.Category, _ = cmd.Flags().GetString("category")
	f.Subtopic, _ = cmd.Flags().GetString("subtopic")
	f.Limit, _ = cmd.Flags().GetInt("limit")
	if k, _ := cmd.Flags().GetString("kind"); k != "" {
		kind, err := question.ParseKind(k)
		if err != nil {
			return f, err
		}
		f.Kind = string(kind)
	}
	return f, nil
}

func addBankFilterFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "Filter by category key")
	cmd.Flags().StringP("subtopic", "s", "", "Filter by subtopic letter")
	cmd.Flags().StringP("kind", "k", "", "Filter by question kind")
	cmd.Flags().IntP("limit", "n", 0, "Maximum number of questions (0 for all)")
}

func init() {
	addBankFilterFlags(bankListCmd)
	addBankFilterFlags(bankExportCmd)
	bankExportCmd.Flags().StringP("out", "o", "question-bank.xlsx", "Output file")

	bankCmd.AddCommand(bankListCmd)
	bankCmd.AddCommand(bankExportCmd)
	bankCmd.AddCommand(bankImportCmd)
	bankCmd.AddCommand(bankDeleteCmd)
}
