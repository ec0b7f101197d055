package main

import (
	"fmt"
	"io"

	"car-viewer/internal/model"
	"car-viewer/internal/parts"

	"github.com/spf13/cobra"
)

func classifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <model>",
		Short: "Print how a model's parts are grouped",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := model.LoadGLTF(args[0])
			if err != nil {
				return err
			}
			printGroups(cmd.OutOrStdout(), parts.Classify(root))
			return nil
		},
	}
}

func printGroups(w io.Writer, g *parts.Groups) {
	for _, t := range parts.Tags {
		nodes := g.Get(t)
		fmt.Fprintf(w, "%s (%d)\n", t, len(nodes))
		for _, n := range nodes {
			fmt.Fprintf(w, "  %s\n", n.Name)
		}
	}
	if !g.Ready() {
		fmt.Fprintln(w, "warning: no body found, this model cannot be configured")
	}
}
