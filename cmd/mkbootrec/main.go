//go:build !tinygo

// Command mkbootrec writes the 28-byte boot handoff record blob that the
// bootstrap stage places in low memory. Useful for seeding emulator images
// and for inspecting what the loader should have produced.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"lumen/hal"
)

func main() {
	var (
		out        = flag.String("o", "bootrec.bin", "Output file ('-' for hex dump to stdout).")
		drive      = flag.Uint("drive", 0x80, "BIOS boot drive number.")
		kernelPhys = flag.Uint("kernel-phys", 0x00100000, "Kernel load address.")
		kernelSect = flag.Uint("kernel-sectors", 0, "Kernel image size in 512-byte sectors.")
		fbAddr     = flag.Uint("fb-addr", 0, "Framebuffer physical address.")
		fbPitch    = flag.Uint("fb-pitch", 0, "Framebuffer pitch in bytes (0 = width*bpp/8).")
		fbWidth    = flag.Uint("fb-width", 0, "Framebuffer width in pixels.")
		fbHeight   = flag.Uint("fb-height", 0, "Framebuffer height in pixels.")
		fbBpp      = flag.Uint("fb-bpp", 32, "Framebuffer depth (16, 24, or 32).")
	)
	flag.Parse()

	if *fbPitch == 0 {
		*fbPitch = *fbWidth * *fbBpp / 8
	}

	rec := hal.BootRecord{
		Magic:         hal.BootMagic,
		BootDrive:     uint8(*drive),
		KernelPhys:    uint32(*kernelPhys),
		KernelSectors: uint32(*kernelSect),
		FBAddr:        uint32(*fbAddr),
		FBPitch:       uint16(*fbPitch),
		FBWidth:       uint16(*fbWidth),
		FBHeight:      uint16(*fbHeight),
		FBBpp:         uint8(*fbBpp),
		FBType:        hal.FBTypeRGB,
	}

	// Refuse to produce a record the stack would halt on.
	if err := rec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "mkbootrec: %v (fb-addr, fb-width, fb-height, and a 16/24/32 fb-bpp are required)\n", err)
		os.Exit(1)
	}

	buf := make([]byte, hal.BootRecordBytes)
	if err := rec.Encode(buf); err != nil {
		fmt.Fprintln(os.Stderr, "mkbootrec:", err)
		os.Exit(1)
	}

	if *out == "-" {
		fmt.Println(hex.EncodeToString(buf))
		return
	}
	if err := os.WriteFile(*out, buf, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "mkbootrec:", err)
		os.Exit(1)
	}
	fmt.Printf("mkbootrec: wrote %d bytes to %s (%dx%dx%d @ %#x)\n",
		len(buf), *out, rec.FBWidth, rec.FBHeight, rec.FBBpp, rec.FBAddr)
}
