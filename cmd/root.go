package cmd

import (
	"github.com/spf13/cobra"
)

// Version 构建时通过 -ldflags "-X groundedanalyst/cmd.Version=..." 注入
var Version = "dev"

func newRootCMD() *cobra.Command {
	root := &cobra.Command{
		Use:           "grounded-analyst",
		Short:         "Grounded financial analysis API backed by Gemini with Google Search grounding",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(serveCMD(), versionCMD())
	return root
}

func Execute() error {
	return newRootCMD().Execute()
}

func versionCMD() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(Version)
		},
	}
}
