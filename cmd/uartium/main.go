package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/uartium/uartium/internal/config"
	"github.com/uartium/uartium/internal/monitor"
	"github.com/uartium/uartium/internal/source"
	"github.com/uartium/uartium/internal/ui"
)

const releaseRepo = "uartium/uartium"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			runVersion(releaseRepo)
			return
		case "update":
			runUpdate(releaseRepo)
			return
		}
	}

	var (
		port       string
		baud       int
		interval   float64
		configPath string
	)
	flag.StringVar(&port, "port", "", "serial device path (demo stream when empty)")
	flag.StringVar(&port, "p", "", "shorthand for -port")
	flag.IntVar(&baud, "baud", 0, "serial baud rate")
	flag.IntVar(&baud, "b", 0, "shorthand for -baud")
	flag.Float64Var(&interval, "interval", 0, "demo mean inter-arrival seconds")
	flag.StringVar(&configPath, "config", "", "config file path")
	flag.Parse()

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// CLI flags win over file and environment values.
	if port != "" {
		cfg.Serial.Port = port
	}
	if baud > 0 {
		cfg.Serial.Baud = baud
	}
	if interval > 0 {
		cfg.Demo.Interval = interval
	}

	src := buildSource(cfg)

	engine, err := monitor.LoadTriggers(cfg.Triggers.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: load triggers: %v\n", err)
		os.Exit(1)
	}

	session := monitor.NewSession(
		src,
		monitor.NewEntryBuffer(cfg.Log.Capacity),
		monitor.NewTimeline(cfg.Timeline.Points),
		monitor.NewStats(),
		engine,
	)

	app := ui.NewApp(cfg, session)
	p := tea.NewProgram(app, tea.WithAltScreen())
	session.SetProgram(p)

	if _, err := p.Run(); err != nil {
		session.Stop()
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	session.Stop()
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// buildSource picks the serial port when one is configured, otherwise
// the synthetic demo stream.
func buildSource(cfg *config.Config) source.Source {
	if cfg.Serial.Port != "" {
		return source.NewSerialSource(cfg.Serial.Port, cfg.Serial.Baud)
	}
	return source.NewDemoSource(time.Duration(cfg.Demo.Interval * float64(time.Second)))
}
