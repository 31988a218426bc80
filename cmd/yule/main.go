// Command yule shows the rotating particle tree with fireworks in a window
// or in the terminal.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"github.com/yohamta/donburi"
	"gopkg.in/yaml.v3"

	"github.com/phanxgames/yule"
	"github.com/phanxgames/yule/audio"
	"github.com/phanxgames/yule/ecs"
	"github.com/phanxgames/yule/term"
)

var (
	configPath string
	debug      bool
	withAudio  bool
	withStats  bool

	showFPS         bool
	windowWidth     int
	windowHeight    int
	scriptPath      string
	exitAfterScript bool
	screenshotDir   string

	termFPS int
)

var newScreen = tcell.NewScreen

var rootCmd = &cobra.Command{
	Use:   "yule",
	Short: "A rotating particle tree with fireworks",
	RunE:  runWindow,
}

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open a window (default)",
	RunE:  runWindow,
}

var termCmd = &cobra.Command{
	Use:   "term",
	Short: "Draw in the terminal",
	RunE:  runTerm,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	RunE:  printConfig,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "YAML config file")
	pf.BoolVar(&debug, "debug", false, "log per-frame timing to stderr")
	pf.BoolVar(&withAudio, "audio", false, "play launch and burst sounds")
	pf.BoolVar(&withStats, "stats", false, "print firework totals on exit")

	for _, c := range []*cobra.Command{rootCmd, windowCmd} {
		f := c.Flags()
		f.BoolVar(&showFPS, "fps", false, "show FPS and entity counts")
		f.IntVar(&windowWidth, "width", 1000, "initial window width")
		f.IntVar(&windowHeight, "height", 800, "initial window height")
		f.StringVar(&scriptPath, "script", "", "JSON frame script")
		f.BoolVar(&exitAfterScript, "exit-after-script", false, "quit when the script finishes")
		f.StringVar(&screenshotDir, "screenshots", "screenshots", "screenshot output directory")
	}
	termCmd.Flags().IntVar(&termFPS, "fps", 30, "terminal frame rate")

	rootCmd.AddCommand(windowCmd, termCmd, configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (yule.Config, error) {
	if configPath == "" {
		return yule.DefaultConfig(), nil
	}
	return yule.LoadConfig(configPath)
}

// newScene builds a scene from flags and attaches the optional sinks. The
// returned cleanup releases them and prints stats.
func newScene() (*yule.Scene, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	scene := yule.NewScene(cfg, nil)
	scene.SetDebugMode(debug)

	var cleanups []func()
	if withAudio {
		player, err := audio.New(audio.DefaultOptions())
		if err != nil {
			log.Printf("[yule] audio disabled: %v", err)
		} else {
			scene.AddEventSink(player)
			cleanups = append(cleanups, player.Close)
		}
	}
	if withStats {
		world := donburi.NewWorld()
		tally := ecs.TrackTally(world)
		scene.AddEventSink(ecs.NewDonburiSink(world))
		cleanups = append(cleanups, func() {
			t := ecs.GetTally(world, tally)
			log.Printf("[yule] %d launches, %d detonations, %d sparks", t.Launches, t.Detonations, t.Sparks)
		})
	}
	return scene, func() {
		for _, fn := range cleanups {
			fn()
		}
	}, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	scene, cleanup, err := newScene()
	if err != nil {
		return err
	}
	defer cleanup()
	scene.ScreenshotDir = screenshotDir

	if scriptPath != "" {
		runner, err := yule.LoadTestScriptFile(scriptPath)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return yule.RunContext(ctx, scene, yule.RunConfig{
		Title:              "yule",
		Width:              windowWidth,
		Height:             windowHeight,
		ShowFPS:            showFPS,
		Debug:              debug,
		ExitWhenScriptDone: exitAfterScript,
	})
}

func runTerm(cmd *cobra.Command, args []string) error {
	scene, cleanup, err := newScene()
	if err != nil {
		return err
	}
	defer cleanup()

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = term.Run(ctx, screen, scene, term.Options{FPS: termFPS})
	screen.Fini()
	return err
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
