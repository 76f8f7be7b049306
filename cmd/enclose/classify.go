package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gridpen/enclose/calib"
	"github.com/gridpen/enclose/tileimg"
)

func newClassifyCmd(log *logrus.Logger) *cobra.Command {
	var (
		imagePath string
		statsPath string
		outPath   string
	)
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a map screenshot into map text",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(imagePath)
			if err != nil {
				return fmt.Errorf("opening image: %w", err)
			}
			defer f.Close()
			img, _, err := image.Decode(f)
			if err != nil {
				return fmt.Errorf("decoding image: %w", err)
			}
			stats, err := calib.LoadFile(statsPath)
			if err != nil {
				return err
			}
			det, err := tileimg.DetectGrid(img)
			if err != nil {
				return err
			}
			log.WithFields(logrus.Fields{
				"cols": det.Cols, "rows": det.Rows,
				"pitch": fmt.Sprintf("%dx%d", det.PitchX, det.PitchY),
			}).Info("detected grid")

			grid, err := tileimg.Classify(img, det, stats)
			if err != nil {
				return err
			}
			text := grid.String()
			if outPath == "" {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if err := os.WriteFile(outPath, []byte(text+"\n"), 0o644); err != nil {
				return fmt.Errorf("writing map: %w", err)
			}
			log.WithField("path", outPath).Info("saved map")
			return nil
		},
	}
	cmd.Flags().StringVar(&imagePath, "image", "", "path to map screenshot")
	cmd.Flags().StringVar(&statsPath, "stats", "", "path to calibration statistics JSON")
	cmd.Flags().StringVar(&outPath, "out", "", "optional path to save map text (default: stdout)")
	_ = cmd.MarkFlagRequired("image")
	_ = cmd.MarkFlagRequired("stats")
	return cmd
}
