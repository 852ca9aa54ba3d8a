package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/memochat-ai/memochat/cmd/service"
)

func main() {
	root := &cobra.Command{
		Use:   "memochat",
		Short: "memochat",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("empty command")
		},
	}

	root.AddCommand(service.NewCommand(), service.NewSeedCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
