package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newRootCmd(log *logrus.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:           "enclose",
		Short:         "Tile-map enclosure optimizer",
		Long:          "Decide which map cells become barriers so the barrier-free region\nreachable from the root, away from the map boundary, scores highest.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSolveCmd(log))
	root.AddCommand(newClassifyCmd(log))
	return root
}
