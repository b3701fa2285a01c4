package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/faiface/pixel/pixelgl"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sadekin/Intel-8080/invaders"
)

// Machine pacing (spec §5): the real cabinet runs its 8080 at 2MHz and
// refreshes at 60Hz, so each frame is two half-frame slices of cyclesPerSlice
// cycles, with interrupt(1) (mid-screen) after the first and interrupt(2)
// (vblank) after the second. --clock-rate lets a diagnostic run at other
// than the stock 2MHz.
const (
	defaultClockRate = 2_000_000.0
	framesPerSec     = 60.0

	// defaultTrapAddr is the BDOS entry point CP/M diagnostic images (e.g.
	// CPUDIAG) CALL to print results; 0x0000 (warm boot) is fixed since only
	// the BDOS entry varies across loaders.
	defaultTrapAddr = 0x0005
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "invaders",
		Short: "Intel 8080 core and I/O subsystem for the Space Invaders arcade ROM",
	}

	var debug bool
	var logFile string
	var clockRate float64
	runCmd := &cobra.Command{
		Use:   "run <rom>",
		Short: "Run a Space Invaders ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRom(args[0], debug, logFile, clockRate)
		},
	}
	runCmd.Flags().BoolVarP(&debug, "debug", "d", false, "show the register/disassembly debug panel")
	runCmd.Flags().StringVarP(&logFile, "log-file", "l", "", "path to write the retired-instruction log to (default ./logs/invaders<timestamp>.log)")
	runCmd.Flags().Float64Var(&clockRate, "clock-rate", defaultClockRate, "8080 clock rate in Hz, for pacing Execute() slices against the 60Hz refresh")

	var disasmStart, disasmEnd uint16
	disasmCmd := &cobra.Command{
		Use:   "disasm <rom>",
		Short: "Disassemble a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return disasmRom(args[0], disasmStart, disasmEnd)
		},
	}
	disasmCmd.Flags().Uint16Var(&disasmStart, "start", 0x0000, "first address to disassemble")
	disasmCmd.Flags().Uint16Var(&disasmEnd, "end", 0x1FFF, "last address to disassemble")

	var trapAddr uint16
	selftestCmd := &cobra.Command{
		Use:   "selftest <rom>",
		Short: "Run a CP/M BDOS-trap diagnostic image (e.g. CPUDIAG, 8080EXM) and print its console output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return selftestRom(args[0], trapAddr)
		},
	}
	selftestCmd.Flags().Uint16Var(&trapAddr, "trap-addr", defaultTrapAddr, "CP/M BDOS entry address to trap (warm-boot vector 0x0000 is always trapped)")

	rootCmd.AddCommand(runCmd, disasmCmd, selftestCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openLogFile mirrors the teacher's Cpu6502 logging pattern: a log file is
// always created for a run, timestamped under ./logs when the caller didn't
// name one explicitly.
func openLogFile(path string) (*log.Logger, error) {
	if path == "" {
		if err := os.MkdirAll("./logs", 0755); err != nil {
			return nil, errors.Wrap(err, "creating logs directory")
		}
		path = fmt.Sprintf("./logs/invaders%s.log", time.Now().Format("20060102-150405"))
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0664)
	if err != nil {
		return nil, errors.Wrap(err, "creating log file")
	}
	return log.New(f, "", log.Ltime), nil
}

func newMachine(romPath string, offset int, logger *log.Logger) (*invaders.CPU, error) {
	mem := &invaders.Memory{}
	if err := invaders.LoadROM(mem, romPath, offset); err != nil {
		return nil, errors.Wrap(err, "loading rom")
	}
	cpu := invaders.New(mem, invaders.NewIOPorts())
	cpu.Logger = logger
	cpu.SetIE(true)
	return cpu, nil
}

func runRom(romPath string, debug bool, logFile string, clockRate float64) error {
	logger, err := openLogFile(logFile)
	if err != nil {
		return err
	}

	cpu, err := newMachine(romPath, 0, logger)
	if err != nil {
		return err
	}

	audioLogger := log.New(os.Stdout, "", 0)
	cyclesPerSlice := int(clockRate / framesPerSec / 2)

	pixelgl.Run(func() {
		display := NewDisplay(debug)
		interval := time.Duration(float64(time.Second) / framesPerSec)

		for !display.Closed() {
			frameStart := time.Now()

			cpu.Execute(cyclesPerSlice)
			cpu.Interrupt(1)
			cpu.Execute(cyclesPerSlice)
			cpu.Interrupt(2)

			pollInput(display.window, cpu.IO())
			logSoundEvents(audioLogger, cpu.IO())

			display.DrawFramebuffer(cpu.Mem().Framebuffer())
			if debug {
				display.WriteRegDebugString(invaders.DumpState(cpu.Snapshot()))
				inst, _ := cpu.Disassemble(cpu.PC())
				display.WriteInstDebugString(inst)
			}
			display.Update()

			if elapsed := time.Since(frameStart); elapsed < interval {
				time.Sleep(interval - elapsed)
			}
		}
	})

	return nil
}

func disasmRom(romPath string, start, end uint16) error {
	mem := &invaders.Memory{}
	if err := invaders.LoadROM(mem, romPath, 0); err != nil {
		return errors.Wrap(err, "loading rom")
	}

	listing := invaders.DisassembleRange(mem, start, end)
	for addr := uint32(start); addr <= uint32(end); addr++ {
		if line, ok := listing[uint16(addr)]; ok {
			fmt.Println(line)
		}
	}
	return nil
}

// selftestRom runs a CP/M-hosted diagnostic image at 0x100, trapping BDOS
// calls through address 0 (warm boot) and trapAddr (the BDOS entry, normally
// 0x0005) the way a real CP/M loader would (spec §8's "thorough test suite"
// scenario): function 9 prints a $-terminated string from DE, function 2
// prints the character in E.
func selftestRom(romPath string, trapAddr uint16) error {
	cpu, err := newMachine(romPath, 0x0100, nil)
	if err != nil {
		return err
	}
	cpu.SetIE(false)
	cpu.SetPC(0x0100)

	// The warm-boot vector at 0x0000 and the BDOS entry at trapAddr are both
	// modeled as a single HLT so Execute's busy-wait naturally traps there;
	// the loop below intercepts PC==trapAddr before fetching.
	mem := cpu.Mem()
	mem.Write(0x0000, 0x76)   // HLT
	mem.Write(trapAddr, 0x76) // HLT

	for {
		if cpu.PC() == trapAddr {
			if cpu.C() == 2 {
				fmt.Printf("%c", cpu.E())
			} else if cpu.C() == 9 {
				printBdosString(mem, cpu.DE())
			}
			cpu.SetPC(retAddr(cpu))
			continue
		}
		if cpu.PC() == 0x0000 {
			fmt.Println("\nCP/M warm boot — test run complete")
			return nil
		}
		cpu.Execute(1000)
	}
}

// retAddr pops the return address CALL 5 pushed, the same way a real CP/M
// BDOS stub would RET back into the diagnostic image.
func retAddr(cpu *invaders.CPU) uint16 {
	sp := cpu.SP()
	lo := cpu.Mem().Read(sp)
	hi := cpu.Mem().Read(sp + 1)
	cpu.SetSP(sp + 2)
	return uint16(hi)<<8 | uint16(lo)
}

func printBdosString(mem *invaders.Memory, addr uint16) {
	for {
		c := mem.Read(addr)
		if c == '$' {
			return
		}
		fmt.Printf("%c", c)
		addr++
	}
}
