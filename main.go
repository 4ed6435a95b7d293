// main.go - Main entry point for the CCM Engine

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/golang/glog"
)

func boilerPlate() {
	fmt.Println("\n\033[38;2;255;20;147mCCM Engine\033[0m - i.MX25 / i.MX31 / Allwinner A10 Clock Control Module emulation")
	fmt.Println("(c) 2024 - 2026 Zayn Otley")
	fmt.Println("https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Println("License: GPLv3 or later")
}

// cliOptions holds the parsed command line.
type cliOptions struct {
	soc       string
	base      uint32
	script    string
	load      string
	save      string
	monitor   bool
	verbosity int
	features  bool
}

var errUsage = errors.New("usage")

func parseFlags(args []string) (cliOptions, error) {
	var (
		opts    cliOptions
		baseArg string
	)

	flagSet := flag.NewFlagSet("ccm_engine", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&opts.soc, "soc", TYPE_IMX31_CCM, "CCM device type (imx25.ccm, imx31.ccm, allwinner-a10-ccm)")
	flagSet.StringVar(&baseArg, "base", "", "MMIO base address (hex or decimal, default per device)")
	flagSet.StringVar(&opts.script, "script", "", "Lua script to run after reset")
	flagSet.StringVar(&opts.load, "load", "", "Register snapshot to restore before running")
	flagSet.StringVar(&opts.save, "save", "", "Write a register snapshot on exit")
	flagSet.BoolVar(&opts.monitor, "monitor", false, "Start the interactive monitor")
	flagSet.IntVar(&opts.verbosity, "v", 0, "Log verbosity (2 traces register access, 3 traces PLL math)")
	flagSet.BoolVar(&opts.features, "features", false, "Print compiled features and devices")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: ./ccm_engine [-soc imx31.ccm] [-base 0x53F80000] [-load file] [-script file.lua] [-monitor] [-save file]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			flagSet.Usage()
			return opts, errUsage
		}
		return opts, err
	}

	if baseArg != "" {
		base, err := parseUint32Flag(baseArg)
		if err != nil {
			return opts, fmt.Errorf("invalid -base %q: %w", baseArg, err)
		}
		opts.base = base
	}
	return opts, nil
}

// configureLogging routes glog to stderr at the requested verbosity.
func configureLogging(verbosity int) {
	_ = flag.CommandLine.Set("logtostderr", "true")
	_ = flag.CommandLine.Set("v", strconv.Itoa(verbosity))
}

func run(opts cliOptions) error {
	registry := DefaultDeviceRegistry()

	if opts.features {
		printFeatures(os.Stdout, registry)
		return nil
	}

	machine, err := NewMachine(MachineConfig{
		SoC:      opts.soc,
		Base:     opts.base,
		Registry: registry,
	})
	if err != nil {
		return err
	}

	if opts.load != "" {
		if err := machine.LoadState(opts.load); err != nil {
			return fmt.Errorf("loading state: %w", err)
		}
		fmt.Printf("Restored %s from %s\n", machine.CCM().TypeName(), opts.load)
	}

	if opts.script != "" {
		err := RunScriptFile(machine, opts.script, func(s string) { fmt.Println(s) })
		if err != nil {
			return err
		}
	}

	monitor := NewMachineMonitor(machine, os.Stdout)
	if opts.monitor {
		if err := NewTerminalHost(monitor).Run(); err != nil {
			return err
		}
	} else if opts.script == "" {
		monitor.ExecuteCommand("clocks")
	}

	if opts.save != "" {
		if err := machine.SaveState(opts.save); err != nil {
			return fmt.Errorf("saving state: %w", err)
		}
		fmt.Printf("Saved %s to %s\n", machine.CCM().TypeName(), opts.save)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == errUsage {
			os.Exit(0)
		}
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	configureLogging(opts.verbosity)
	defer glog.Flush()

	if !opts.features {
		boilerPlate()
	}

	if err := run(opts); err != nil {
		glog.Flush()
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func parseUint32Flag(value string) (uint32, error) {
	parsed, err := strconv.ParseUint(value, 0, 32)
	if err != nil {
		return 0, err
	}
	return uint32(parsed), nil
}
