package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"bookvoice/internal/services/gemini"
)

func newVoicesCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "voices",
		Short:       "List the available synthesis voices",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			voices := gemini.Voices()

			if file, ok := out.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
				rows := make([][]string, 0, len(voices))
				for _, voice := range voices {
					rows = append(rows, []string{voice.Name, voice.Tone})
				}
				fmt.Fprintln(out, renderTable([]string{"Voice", "Tone"}, rows))
				return nil
			}

			for _, voice := range voices {
				fmt.Fprintf(out, "%s\t%s\n", voice.Name, voice.Tone)
			}
			return nil
		},
	}
}
