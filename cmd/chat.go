package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/interview-assistant/internal/api"
	"github.com/ziadkadry99/interview-assistant/internal/pages"
	"github.com/ziadkadry99/interview-assistant/internal/transcript"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start a mock interview chat",
	Long: `Start a mock interview chat with the AI assistant.

With --resume the résumé is uploaded first and its analysis is sent with
every message. Inside the chat:

  /question        let the assistant ask the next interview question
  /history         print the conversation so far
  /export [FILE]   write the conversation as an HTML page
  /reset           start over
  /exit            leave`,
	RunE: runChat,
}

var (
	chatResume string
	chatExport string
)

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.Flags().StringVar(&chatResume, "resume", "", "PDF or DOCX résumé to upload first")
	chatCmd.Flags().StringVar(&chatExport, "export", "", "write the conversation to this HTML file on exit")
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := commandContext(cmd)
	defer stop()

	state := pages.NewChatState()
	if chatResume != "" {
		if err := a.upload(ctx, state, chatResume); err != nil {
			return err
		}
	}
	return a.chatLoop(ctx, cmd.InOrStdin(), state, chatExport)
}

// upload sends a résumé and prints the analysis.
func (a *app) upload(ctx context.Context, state *pages.ChatState, path string) error {
	f, err := loadResume(path)
	if err != nil {
		return err
	}
	a.printer.Info(pages.StatusUploading)
	return a.result(pages.NewInterview(a.deps).Upload(ctx, state, f))
}

// chatLoop reads messages from in until EOF, /exit or cancellation.
func (a *app) chatLoop(ctx context.Context, in io.Reader, state *pages.ChatState, exportPath string) error {
	interview := pages.NewInterview(a.deps)

	a.printer.Info("输入消息开始面试，/question 让AI提问，/exit 退出")

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 64*1024), 1024*1024)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

loop:
	for {
		fmt.Fprint(a.printer.Out, "> ")

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(a.printer.Out)
			break loop
		case l, ok := <-lines:
			if !ok {
				break loop
			}
			line = strings.TrimSpace(l)
		}

		var (
			reply *transcript.Message
			err   error
		)
		switch {
		case line == "":
			continue
		case line == "/exit" || line == "/quit":
			break loop
		case line == "/reset":
			state.Transcript.Reset()
			a.printer.Info("对话已清空")
			continue
		case line == "/history":
			if err := state.Transcript.RenderText(a.printer.Out); err != nil {
				return err
			}
			continue
		case line == "/export" || strings.HasPrefix(line, "/export "):
			path := strings.TrimSpace(strings.TrimPrefix(line, "/export"))
			if err := a.exportTranscript(state.Transcript, path); err != nil {
				a.printer.Error(err.Error())
			}
			continue
		case line == "/question":
			reply, err = interview.InterviewQuestion(ctx, state)
		default:
			reply, err = interview.Chat(ctx, state, line)
		}

		if err != nil {
			if rerr := a.fail(err); rerr != nil && !errors.Is(rerr, errReported) {
				return rerr
			}
			if errors.Is(err, api.ErrUnauthorized) || errors.Is(err, pages.ErrLoginRequired) {
				break loop
			}
			continue
		}
		if reply != nil {
			a.printMessage(*reply)
		}
	}

	if exportPath != "" && state.Transcript.Len() > 0 {
		return a.exportTranscript(state.Transcript, exportPath)
	}
	return nil
}

func (a *app) printMessage(m transcript.Message) {
	a.printer.Speaker(transcript.Speaker(m)+" - "+transcript.Clock(m), m.Role == api.RoleUser)
	fmt.Fprintln(a.printer.Out, m.Content)
	fmt.Fprintln(a.printer.Out)
}

// exportTranscript writes tr as HTML. An empty path picks a name in the
// configured export directory.
func (a *app) exportTranscript(tr *transcript.Transcript, path string) error {
	if path == "" {
		name := fmt.Sprintf("interview-%s-%s.html", time.Now().Format("20060102-150405"), tr.ID()[:8])
		path = filepath.Join(a.cfg.Chat.ExportDir, name)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := tr.RenderHTML(f, "AI面试记录"); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	a.printer.Success("对话已导出到 " + path)
	return nil
}
