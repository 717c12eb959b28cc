package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/pages"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Upload a résumé for analysis",
}

var resumeUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Analyse a PDF or DOCX résumé and add it to your personal knowledge base",
	Args:  cobra.ExactArgs(1),
	RunE:  runResumeUpload,
}

var resumeChat bool

func init() {
	rootCmd.AddCommand(resumeCmd)
	resumeCmd.AddCommand(resumeUploadCmd)
	resumeUploadCmd.Flags().BoolVar(&resumeChat, "chat", false, "start the interview chat after a successful upload")
}

func runResumeUpload(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := commandContext(cmd)
	defer stop()

	state := pages.NewChatState()
	if err := a.upload(ctx, state, args[0]); err != nil {
		return err
	}
	if !resumeChat {
		return nil
	}
	return a.chatLoop(ctx, cmd.InOrStdin(), state, "")
}
