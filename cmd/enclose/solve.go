package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridpen/enclose/backend"
	"github.com/gridpen/enclose/backend/fdprop"
	"github.com/gridpen/enclose/backend/glpkmip"
	"github.com/gridpen/enclose/enclosure"
	"github.com/gridpen/enclose/model"
	"github.com/gridpen/enclose/render"
	"github.com/gridpen/enclose/tilemap"
)

func newSolveCmd(log *logrus.Logger) *cobra.Command {
	var (
		mapPath     string
		maxWalls    int
		encodingArg string
		backendArg  string
		plotPath    string
		cellPx      int
		timeLimit   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve an enclosure instance from a map file",
		RunE: func(cmd *cobra.Command, args []string) error {
			grid, err := tilemap.ParseFile(mapPath)
			if err != nil {
				return err
			}
			enc, err := pickEncoding(encodingArg)
			if err != nil {
				return err
			}
			be, err := pickBackend(backendArg)
			if err != nil {
				return err
			}

			start := time.Now()
			out, err := enclosure.Solve(grid, maxWalls,
				enclosure.WithEncoding(enc),
				enclosure.WithBackend(be),
				enclosure.WithLimits(backend.Options{TimeLimit: timeLimit}),
			)
			if err != nil {
				return err
			}
			entry := log.WithFields(logrus.Fields{
				"status":   out.Status.String(),
				"walls":    fmt.Sprintf("%d/%d", out.BarriersUsed, maxWalls),
				"enclosed": out.EnclosedCount,
				"elapsed":  time.Since(start).Round(time.Millisecond),
			})
			if out.HasObjective {
				entry = entry.WithField("objective", out.Objective)
			}
			entry.Info("solve finished")

			if err := enclosure.VerifyAssignment(grid, maxWalls, out); err != nil {
				log.WithError(err).Warn("solution failed the enclosure audit")
			}

			fmt.Fprintln(cmd.OutOrStdout(), render.Text(grid, out))

			if plotPath != "" {
				f, err := os.Create(plotPath)
				if err != nil {
					return fmt.Errorf("creating plot file: %w", err)
				}
				defer f.Close()
				if err := render.WritePNG(f, grid, out, cellPx); err != nil {
					return err
				}
				log.WithField("path", plotPath).Info("saved plot")
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&mapPath, "map", "", "path to map text file")
	cmd.Flags().IntVar(&maxWalls, "max-walls", 13, "maximum barriers available")
	cmd.Flags().StringVar(&encodingArg, "encoding", "flow", "model encoding: flow|order|categorical")
	cmd.Flags().StringVar(&backendArg, "backend", "mip", "solve backend: mip|cp")
	cmd.Flags().StringVar(&plotPath, "plot", "", "optional path to save a rendered PNG")
	cmd.Flags().IntVar(&cellPx, "cell-px", 24, "pixels per cell in the rendered PNG")
	cmd.Flags().DurationVar(&timeLimit, "time-limit", 0, "backend search limit (0 = unlimited)")
	_ = cmd.MarkFlagRequired("map")
	return cmd
}

func pickEncoding(name string) (model.Encoding, error) {
	switch name {
	case "flow":
		return model.FlowEncoding{}, nil
	case "order":
		return model.OrderEncoding{}, nil
	case "categorical":
		return model.CategoricalEncoding{}, nil
	default:
		return nil, fmt.Errorf("unknown encoding %q (want flow, order or categorical)", name)
	}
}

func pickBackend(name string) (backend.Solver, error) {
	switch name {
	case "mip":
		return glpkmip.New(), nil
	case "cp":
		return fdprop.New(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q (want mip or cp)", name)
	}
}
