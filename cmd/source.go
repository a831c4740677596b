package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/catalog"
	"github.com/abhisek/feprep/internal/llm"
	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
	"github.com/abhisek/feprep/internal/store"
)

var errNoSource = errors.New("no question source configured")

// buildSource returns the Source selected by --source. LLM and HTTP sources
// record what they produce into the bank.
func buildSource(cmd *cobra.Command, st *store.Store) (questiongen.Source, string, error) {
	name, _ := cmd.Flags().GetString("source")
	repo := st.QuestionRepo()

	switch name {
	case "", "llm":
		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.EventRepo())
		if err != nil {
			if name == "" {
				slog.Info("LLM provider not configured, serving from the question bank", "error", err)
				return questiongen.NewBankSource(repo), "bank", nil
			}
			return nil, "", fmt.Errorf("%w: %w", errNoSource, err)
		}
		src := questiongen.NewLLMSource(provider, questiongen.DefaultConfig())
		return questiongen.WithRecording(src, repo, "llm"), "llm", nil
	case "bank":
		return questiongen.NewBankSource(repo), "bank", nil
	case "http":
		url, _ := cmd.Flags().GetString("source-url")
		if url == "" {
			return nil, "", fmt.Errorf("%w: --source http needs --source-url", errNoSource)
		}
		return questiongen.WithRecording(questiongen.NewHTTPSource(url, nil), repo, "http"), "http", nil
	}
	return nil, "", fmt.Errorf("unknown question source %q: must be llm, bank or http", name)
}

func kindsFlag(cmd *cobra.Command) ([]question.Kind, error) {
	s, _ := cmd.Flags().GetString("kinds")
	return questiongen.ParseKinds(s)
}

// topicFlags resolves --category and --subtopic. The subtopic may be given
// by letter or by title.
func topicFlags(cmd *cobra.Command) (catalog.Topic, error) {
	category, _ := cmd.Flags().GetString("category")
	subtopic, _ := cmd.Flags().GetString("subtopic")
	if category == "" || subtopic == "" {
		return catalog.Topic{}, fmt.Errorf("--category and --subtopic are required (see `feprep catalog list`)")
	}
	return catalog.Resolve(category, subtopic)
}

func addTopicFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("category", "c", "", "Category key, e.g. statics")
	cmd.Flags().StringP("subtopic", "s", "", "Subtopic letter or title, e.g. A")
}
