package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/trim-timeline-cli/clip"
	"github.com/user/trim-timeline-cli/db"
	"github.com/user/trim-timeline-cli/pkg/timeutil"
	"github.com/user/trim-timeline-cli/thumbs"
)

var trimCmd = &cobra.Command{
	Use:     "trims",
	Aliases: []string{"trim"},
	Short:   "Manage saved trims",
	Long:    `List, add, delete, and export trims saved from the trimmer.`,
}

var trimListCmd = &cobra.Command{
	Use:   "list [video-file]",
	Short: "List saved trims",
	Long:  `Display saved trims as a table. With a video file only its trims are shown.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath := ""
		if len(args) == 1 {
			var err error
			if videoPath, err = resolveVideo(args[0]); err != nil {
				return err
			}
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		trims, err := db.ListTrims(database, videoPath)
		if err != nil {
			return fmt.Errorf("failed to list trims: %w", err)
		}
		if len(trims) == 0 {
			fmt.Println("No trims saved.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tStart\tEnd\tDuration\tStatus\tLabel\tVideo")
		fmt.Fprintln(w, "--\t-----\t---\t--------\t------\t-----\t-----")
		for _, t := range trims {
			label := t.Label
			if len(label) > 30 {
				label = label[:27] + "..."
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%.2fs\t%s\t%s\t%s\n",
				t.ID,
				timeutil.FormatPrecise(t.Start),
				timeutil.FormatPrecise(t.Finish),
				t.Duration(),
				t.Status,
				label,
				t.VideoPath,
			)
		}
		w.Flush()

		fmt.Printf("\nTotal: %d trim(s)\n", len(trims))
		return nil
	},
}

var trimAddCmd = &cobra.Command{
	Use:   "add <video-file> <start> <end>",
	Short: "Save a trim without opening the trimmer",
	Long:  `Save a trim range for a video. Times accept H:MM:SS, MM:SS, or seconds, with optional fractions.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		videoPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}
		start, err := timeutil.ParseTimeToSeconds(args[1])
		if err != nil {
			return fmt.Errorf("invalid start time: %w", err)
		}
		finish, err := timeutil.ParseTimeToSeconds(args[2])
		if err != nil {
			return fmt.Errorf("invalid end time: %w", err)
		}
		label, _ := cmd.Flags().GetString("label")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		duration, err := thumbs.Probe(ctx, videoPath)
		if err != nil {
			return fmt.Errorf("failed to read video duration: %w", err)
		}
		if finish > duration {
			return fmt.Errorf("end %s is past the end of the video (%s)",
				timeutil.FormatPrecise(finish), timeutil.FormatPrecise(duration))
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		info, err := os.Stat(videoPath)
		if err != nil {
			return fmt.Errorf("failed to access video file: %w", err)
		}
		video, err := db.EnsureVideo(database, videoPath, info.Size(), duration)
		if err != nil {
			return err
		}
		id, err := db.InsertTrim(database, video.ID, start, finish, label)
		if err != nil {
			return err
		}

		fmt.Printf("Trim %d saved: %s - %s\n", id, timeutil.FormatPrecise(start), timeutil.FormatPrecise(finish))
		return nil
	},
}

var trimDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved trim",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTrimID(args[0])
		if err != nil {
			return err
		}

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		if err := db.DeleteTrim(database, id); err != nil {
			return fmt.Errorf("failed to delete trim %d: %w", id, err)
		}
		fmt.Printf("Trim %d deleted\n", id)
		return nil
	},
}

var trimExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved trim with ffmpeg",
	Long: `Cut a saved trim into its own file next to the source video.
By default the export runs immediately; with --queue it is left for the
trimmer's background exporter.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseTrimID(args[0])
		if err != nil {
			return err
		}
		queue, _ := cmd.Flags().GetBool("queue")
		out, _ := cmd.Flags().GetString("output")

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		t, err := db.SelectTrimByID(database, id)
		if err != nil {
			return fmt.Errorf("failed to load trim %d: %w", id, err)
		}
		if out == "" {
			out = clip.OutputPath(t.VideoPath, t.Start, t.Finish, t.Label)
		}

		// Queueing records the output path and refuses trims already being exported.
		if err := db.QueueTrimExport(database, id, out); err != nil {
			return fmt.Errorf("failed to queue trim %d: %w", id, err)
		}
		if queue {
			fmt.Printf("Trim %d queued for export to %s\n", id, out)
			return nil
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		if err := db.MarkTrimProcessing(database, id, time.Now()); err != nil {
			return err
		}
		fmt.Printf("Exporting trim %d to %s...\n", id, out)
		if err := clip.Export(ctx, nil, t.VideoPath, t.Start, t.Finish, out); err != nil {
			if markErr := db.MarkTrimError(database, id, time.Now(), err.Error()); markErr != nil {
				return fmt.Errorf("%w (and failed to record error: %v)", err, markErr)
			}
			return err
		}
		if err := db.MarkTrimComplete(database, id, time.Now()); err != nil {
			return err
		}
		fmt.Println("Done")
		return nil
	},
}

func parseTrimID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid trim id: %s", s)
	}
	return id, nil
}

func init() {
	trimAddCmd.Flags().String("label", "", "Label for the trim")
	trimExportCmd.Flags().Bool("queue", false, "Queue for the background exporter instead of exporting now")
	trimExportCmd.Flags().StringP("output", "o", "", "Output file (default <video dir>/trims/<video>/<range>.<ext>)")

	trimCmd.AddCommand(trimListCmd)
	trimCmd.AddCommand(trimAddCmd)
	trimCmd.AddCommand(trimDeleteCmd)
	trimCmd.AddCommand(trimExportCmd)
	rootCmd.AddCommand(trimCmd)
}
