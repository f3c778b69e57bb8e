package main

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hormonya/hormonya/internal/client"
)

func newChatCmd(opts *options) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "chat [MESSAGE]",
		Short: "Ask Hormonya AI about hormonal health",
		Long: `Ask a question about cycles, PCOS or thyroid health. Attach a lab
report image or PDF with --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var message string
			if len(args) == 1 {
				message = args[0]
			}

			var file *client.File
			if filePath != "" {
				data, err := os.ReadFile(filePath)
				if err != nil {
					return fmt.Errorf("read attachment: %w", err)
				}
				file = &client.File{
					Name:        filepath.Base(filePath),
					ContentType: mime.TypeByExtension(filepath.Ext(filePath)),
					Data:        data,
				}
			}

			if message == "" && file == nil {
				return fmt.Errorf("a message or --file is required")
			}

			id, err := opts.store().Load()
			if err != nil {
				return err
			}
			c, err := opts.client(id)
			if err != nil {
				return err
			}

			reply, err := c.Chat(cmd.Context(), message, file)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, newStyles(out).reply(reply))
			return nil
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "lab report to attach (image or PDF)")
	return cmd
}
