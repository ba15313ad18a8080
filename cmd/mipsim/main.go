// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/mipsim/emulator"
)

func main() {
	var compile string
	var image string
	var output string
	var save bool
	var listing bool
	var size uint
	var verbose bool
	var dump bool

	flag.StringVar(&compile, "c", "", ".s file to assemble")
	flag.StringVar(&image, "i", "", "Program image to load")
	flag.StringVar(&output, "o", "", "Program image to save")
	flag.BoolVar(&save, "s", false, "Save image, do not execute")
	flag.BoolVar(&listing, "l", false, "Print program listing")
	flag.UintVar(&size, "m", emulator.MEMORY_SIZE, "Memory size, in bytes")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&dump, "dump", false, "Dump CPU state on exit")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(image) != 0 {
		log.Fatalf("%v: -c and -i are exclusive", os.Args[0])
	}

	emu := emulator.NewEmulator(uint32(size))
	emu.Verbose = verbose

	// Assemble a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		err = emu.Assemble(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	// Or load an existing image.
	if len(image) != 0 {
		inf, err := os.Open(image)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
		defer inf.Close()

		err = emu.LoadImage(inf)
		if err != nil {
			log.Fatalf("%v: %v", image, err)
		}
	}

	if listing {
		fmt.Print(emu.Program.String())
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = emu.SaveImage(ouf)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		err = ouf.Close()
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
	}

	if save {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run(ctx)

	if dump {
		spew.Fdump(os.Stderr, emu.Cpu)
	}

	if err != nil {
		log.Fatal(err)
	}
}
