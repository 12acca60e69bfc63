package cli

import (
	"bufio"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docdesk/internal/core/domain"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask questions about stored documents",
	Long: `With arguments, sends one message and prints the reply. Without
arguments, starts an interactive session that reads one question per line
until "exit", "quit" or end of input.`,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	if chatService == nil {
		return errors.New("chat service not configured")
	}

	if len(args) > 0 {
		reply, err := chatService.Send(cmd.Context(), strings.Join(args, " "))
		if err != nil {
			return err
		}
		printReply(cmd, reply)
		return nil
	}
	return chatSession(cmd)
}

func chatSession(cmd *cobra.Command) error {
	policy := domain.EmptyInputIgnore
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			policy = s.Chat.EmptyInput
		}
	}

	cmd.Println("Ask a question about your uploaded documents. Type \"exit\" to quit.")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("> ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		message := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(message) {
		case "exit", "quit":
			return nil
		case "":
			if policy == domain.EmptyInputWarn {
				cmd.Println("Please enter a message")
			}
			continue
		}

		reply, err := chatService.Send(cmd.Context(), message)
		if err != nil {
			cmd.Printf("Error: %s\n", domain.ErrorDetail(err))
			continue
		}
		printReply(cmd, reply)
	}
}

func printReply(cmd *cobra.Command, reply *domain.ChatReply) {
	cmd.Println(reply.Response)
	if len(reply.Sources) > 0 {
		cmd.Printf("Sources: %s\n", strings.Join(reply.Sources, ", "))
	}
}
