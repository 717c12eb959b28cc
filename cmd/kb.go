package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/ui"
)

var kbCmd = &cobra.Command{
	Use:     "kb",
	Aliases: []string{"knowledge"},
	Short:   "Manage knowledge bases",
}

var kbListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your knowledge bases",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.result(pages.NewKnowledge(a.deps).List(ctx))
		})
	},
}

var kbCreateCmd = &cobra.Command{
	Use:   "create NAME",
	Short: "Create a knowledge base",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			var name string
			if len(args) > 0 {
				name = args[0]
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.result(pages.NewKnowledge(a.deps).Create(ctx, name, kbDescription))
		})
	},
}

var kbDeleteCmd = &cobra.Command{
	Use:   "delete ID",
	Short: "Delete a knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			confirm := ui.Confirm
			if kbYes {
				confirm = func(string) (bool, error) { return true, nil }
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.result(pages.NewKnowledge(a.deps).Delete(ctx, id, confirm))
		})
	},
}

var kbShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.showKnowledgeBase(ctx, id)
		})
	},
}

var kbAddTextCmd = &cobra.Command{
	Use:   "add-text ID [TEXT]",
	Short: "Add a text document to a knowledge base",
	Long: `Add a text document to a knowledge base. The text is taken from the
argument, from --file, or from standard input.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			text, err := documentText(cmd, args[1:])
			if err != nil {
				return err
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.result(pages.NewKnowledgeBase(a.deps).AddText(ctx, id, text))
		})
	},
}

var kbAddResumeCmd = &cobra.Command{
	Use:   "add-resume ID FILE",
	Short: "Add a PDF or DOCX résumé to a knowledge base",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			f, err := loadResume(args[1])
			if err != nil {
				return err
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.result(pages.NewKnowledgeBase(a.deps).AddResume(ctx, id, f))
		})
	},
}

var kbQueryCmd = &cobra.Command{
	Use:   "query ID QUESTION...",
	Short: "Ask a knowledge base a question",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			question := strings.Join(args[1:], " ")
			return a.result(pages.NewKnowledgeBase(a.deps).Query(ctx, id, question))
		})
	},
}

var kbHistoryCmd = &cobra.Command{
	Use:   "history ID",
	Short: "Show the questions asked of a knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app) error {
			id, err := a.parseID(args[0])
			if err != nil {
				return err
			}
			ctx, stop := commandContext(cmd)
			defer stop()
			return a.showHistory(ctx, id)
		})
	},
}

var (
	kbDescription string
	kbYes         bool
	kbFile        string
)

func init() {
	rootCmd.AddCommand(kbCmd)
	kbCmd.AddCommand(kbListCmd)
	kbCmd.AddCommand(kbCreateCmd)
	kbCmd.AddCommand(kbDeleteCmd)
	kbCmd.AddCommand(kbShowCmd)
	kbCmd.AddCommand(kbAddTextCmd)
	kbCmd.AddCommand(kbAddResumeCmd)
	kbCmd.AddCommand(kbQueryCmd)
	kbCmd.AddCommand(kbHistoryCmd)

	kbCreateCmd.Flags().StringVarP(&kbDescription, "description", "d", "", "knowledge base description")
	kbDeleteCmd.Flags().BoolVarP(&kbYes, "yes", "y", false, "skip the confirmation")
	kbAddTextCmd.Flags().StringVarP(&kbFile, "file", "f", "", "read the document from a text file")
}

// withApp opens the app for the duration of fn.
func withApp(cmd *cobra.Command, fn func(a *app) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

// showKnowledgeBase prints a knowledge base followed by the command for
// its query history.
func (a *app) showKnowledgeBase(ctx context.Context, id int64) error {
	kb := pages.NewKnowledgeBase(a.deps)
	res, err := kb.Show(ctx, id)
	if err == nil {
		err = kb.History(ctx, id)
	}
	return a.result(res, err)
}

// showHistory prints the query history followed by the command back to
// the knowledge base.
func (a *app) showHistory(ctx context.Context, id int64) error {
	res, err := pages.NewHistory(a.deps).Show(ctx, id)
	if err == nil {
		err = pages.NewKnowledge(a.deps).Open(ctx, id)
	}
	return a.result(res, err)
}

// documentText returns the document for add-text.
func documentText(cmd *cobra.Command, args []string) (string, error) {
	switch {
	case len(args) > 0:
		return args[0], nil
	case kbFile != "":
		data, err := os.ReadFile(kbFile)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && ui.IsTerminal(f) {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading standard input: %w", err)
	}
	return string(data), nil
}
