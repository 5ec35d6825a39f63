package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/trim-timeline-cli/clip"
	"github.com/user/trim-timeline-cli/config"
	"github.com/user/trim-timeline-cli/db"
	"github.com/user/trim-timeline-cli/deps"
	"github.com/user/trim-timeline-cli/mpv"
	"github.com/user/trim-timeline-cli/thumbs"
	"github.com/user/trim-timeline-cli/tui"
	"github.com/user/trim-timeline-cli/watch"
)

var Version = "0.1.0"

// configPath is the --config flag shared by all commands.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "trim-timeline-cli",
	Short: "Pick trim ranges from a video on a thumbnail timeline",
	Long: `trim-timeline-cli plays a video in mpv and shows a scrollable strip of
thumbnails in the terminal with two handles marking the trim range.

Features:
  - Drag or nudge the start and end handles, scroll the strip
  - Playback loops inside the selected range
  - Save trims to SQLite and export them with ffmpeg in the background
  - Reloads automatically when the video file is rewritten`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("trim-timeline-cli version %s\n", Version)
	},
}

var openCmd = &cobra.Command{
	Use:   "open <video-file>",
	Short: "Open a video file in the trimmer",
	Long:  `Open a video file in mpv and start the trimming timeline. Saved trims are exported in the background while the trimmer runs.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		absPath, err := resolveVideo(args[0])
		if err != nil {
			return err
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		applyTrimFlags(cmd, cfg)

		if err := setupLogFile(); err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		probeCtx, probeCancel := context.WithTimeout(ctx, 30*time.Second)
		duration, err := thumbs.Probe(probeCtx, absPath)
		probeCancel()
		if err != nil {
			return fmt.Errorf("failed to read video duration: %w", err)
		}

		fmt.Printf("Opening video: %s\n", filepath.Base(absPath))
		process, err := mpv.LaunchMpv(absPath, cfg.Player.SocketPath)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}
		defer func() {
			if process.Process != nil {
				_ = process.Process.Kill()
				_ = process.Wait()
			}
		}()

		// Wait up to 5 seconds for the socket
		client, err := mpv.Dial(cfg.Player.SocketPath, 50, 100*time.Millisecond)
		if err != nil {
			return err
		}
		defer client.Close()

		database, err := db.Open()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		processor := &clip.Processor{
			DB: database,
			OnDone: func(trimID int64, err error) {
				if err != nil {
					log.Printf("trim %d export failed: %v", trimID, err)
				}
			},
		}
		processor.Start(ctx)

		watcher, err := startWatcher(absPath)
		if err != nil {
			log.Printf("watch disabled: %v", err)
		} else {
			defer watcher.Close()
		}

		return tui.Run(tui.Options{
			Config:    cfg,
			Client:    client,
			DB:        database,
			Watcher:   watcher,
			VideoPath: absPath,
			Duration:  duration,
		})
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that all required system dependencies (mpv, ffmpeg, ffprobe) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		allGood := true
		for _, d := range deps.Required {
			if err := d.Check(); err != nil {
				fmt.Printf("✗ %s: NOT FOUND\n", d.Name)
				fmt.Printf("  Install from: %s\n", d.InstallURL)
				allGood = false
			} else {
				fmt.Printf("✓ %s: OK\n", d.Name)
			}
		}

		fmt.Println()
		if allGood {
			fmt.Println("All dependencies are installed!")
		} else {
			fmt.Println("Some dependencies are missing. Please install them to use all features.")
			os.Exit(1)
		}
	},
}

func init() {
	openCmd.Flags().Float64("min", 0, "Minimum trim duration in seconds (overrides config)")
	openCmd.Flags().Float64("max", 0, "Maximum trim duration in seconds (overrides config)")
	openCmd.Flags().Int("frames", 0, "Thumbnails across the strip (overrides config)")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/trim-timeline-cli/config.yaml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// startWatcher watches the video file for rewrites. A change counts once the
// file stayed the same for a second.
func startWatcher(videoPath string) (*watch.Watcher, error) {
	w, err := watch.New(videoPath, time.Second)
	if err != nil {
		return nil, err
	}
	if err := w.Start(); err != nil {
		w.Close()
		return nil, err
	}
	return w, nil
}

// resolveVideo returns the absolute path of an existing video file.
func resolveVideo(videoPath string) (string, error) {
	absPath, err := filepath.Abs(videoPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %w", err)
	}

	info, err := os.Stat(absPath)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("video file not found: %s", absPath)
	}
	if err != nil {
		return "", fmt.Errorf("failed to access video file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a video file: %s", absPath)
	}
	return absPath, nil
}

// loadConfig reads --config or the default config file.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config path: %w", err)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyTrimFlags copies explicitly set open flags over the config values.
func applyTrimFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("min") {
		cfg.Trim.MinDuration, _ = flags.GetFloat64("min")
	}
	if flags.Changed("max") {
		cfg.Trim.MaxDuration, _ = flags.GetFloat64("max")
	}
	if flags.Changed("frames") {
		cfg.Trim.FramesPerCycle, _ = flags.GetInt("frames")
	}
	cfg.Normalize()
}

// setupLogFile sends the standard logger to trim.log in the data directory
// so log output does not corrupt the TUI.
func setupLogFile() error {
	dir, err := db.DataDir()
	if err != nil {
		return fmt.Errorf("failed to resolve data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "trim.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	log.SetOutput(f)
	return nil
}
