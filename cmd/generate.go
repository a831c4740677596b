package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/feprep/internal/question"
	"github.com/abhisek/feprep/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate questions for a subtopic and print them",
	Long: `Generate one question per requested kind for a subtopic and print each
with its answer. LLM and HTTP sources also save the questions to the bank.`,
	RunE: runGenerate,
}

func init() {
	addTopicFlags(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	topic, err := topicFlags(cmd)
	if err != nil {
		return err
	}
	kinds, err := kindsFlag(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	src, label, err := buildSource(cmd, st)
	if err != nil {
		return err
	}

	fmt.Printf("%s — generating %d question(s) from %s...\n\n", topic, len(kinds), label)
	batch := questiongen.NewOrchestrator(src).Generate(cmd.Context(), topic, kinds)

	for i, r := range batch.Results {
		fmt.Printf("── %d. %s ──\n", i+1, r.Kind.DisplayName())
		if r.Err != nil {
			fmt.Printf("generation failed: %v\n\n", r.Err)
			continue
		}
		printQuestion(r.Question)
		fmt.Printf("Answer: %s\n", question.DescribeCorrect(r.Question))
		if ex := r.Question.Common().Explanation; ex != "" {
			fmt.Printf("Explanation: %s\n", ex)
		}
		fmt.Println()
	}

	if len(batch.Questions()) == 0 {
		if err := batch.Err(); err != nil {
			return fmt.Errorf("%w: %w", questiongen.ErrNoQuestionsAvailable, err)
		}
		return questiongen.ErrNoQuestionsAvailable
	}
	return nil
}

// printQuestion writes the question text and its numbered choices.
func printQuestion(q question.Question) {
	fmt.Println(q.Common().Text)
	switch q := q.(type) {
	case *question.MultipleChoice:
		for j, o := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, o)
		}
	case *question.PointAndClick:
		fmt.Printf("  Hotspots: %v\n", question.HotspotLabels)
	case *question.DragAndDrop:
		fmt.Println("  Zones:")
		for j, z := range q.Dropzones {
			fmt.Printf("    %d) %s\n", j+1, z.Label)
		}
		fmt.Println("  Items:")
		for j, it := range q.Items {
			fmt.Printf("    %d) %s\n", j+1, it.Label)
		}
	}
}
