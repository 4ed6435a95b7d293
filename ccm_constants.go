// ccm_constants.go - Clock Control Module register map, clock IDs and PLL fields

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

import "strings"

// ------------------------------------------------------------------------------
// Clock identifiers
// ------------------------------------------------------------------------------

// ClockID names a node in a CCM clock tree.
type ClockID int

const (
	NOCLK ClockID = iota
	CLK_MPLL
	CLK_UPLL
	CLK_MCU
	CLK_HSP
	CLK_AHB
	CLK_IPG
	CLK_PER
	CLK_32K
)

var clockNames = [...]string{
	NOCLK:    "none",
	CLK_MPLL: "mpll",
	CLK_UPLL: "upll",
	CLK_MCU:  "mcu",
	CLK_HSP:  "hsp",
	CLK_AHB:  "ahb",
	CLK_IPG:  "ipg",
	CLK_PER:  "per",
	CLK_32K:  "32k",
}

func (c ClockID) String() string {
	if c >= 0 && int(c) < len(clockNames) {
		return clockNames[c]
	}
	return "clk?"
}

// ParseClockID maps a monitor/script clock name back to its ID.
func ParseClockID(name string) (ClockID, bool) {
	name = strings.ToLower(name)
	for id, n := range clockNames {
		if n == name {
			return ClockID(id), true
		}
	}
	return NOCLK, false
}

// ------------------------------------------------------------------------------
// Oscillators
// ------------------------------------------------------------------------------
const (
	CKIL_FREQ       = 32768    // 32.768 kHz low frequency oscillator
	IMX25_CKIH_FREQ = 24000000 // 24 MHz crystal input
	IMX31_CKIH_FREQ = 26000000 // 26 MHz crystal input
)

// ------------------------------------------------------------------------------
// PLL configuration word (MPCTL/UPCTL/SPCTL)
//
//	31 30 | 29..26 | 25..16 | 15 14 | 13..10 | 9..0
//	 BRM  |   PD   |  MFD   |  --   |  MFI   | MFN
//
// ------------------------------------------------------------------------------
const (
	PLL_MFN_SHIFT = 0
	PLL_MFN_MASK  = 0x3FF
	PLL_MFI_SHIFT = 10
	PLL_MFI_MASK  = 0xF
	PLL_MFD_SHIFT = 16
	PLL_MFD_MASK  = 0x3FF
	PLL_PD_SHIFT  = 26
	PLL_PD_MASK   = 0xF

	PLL_MFN_BITS = 10
	PLL_MFI_MIN  = 5 // the PLL cannot multiply by less than 5
)

func PLL_PD(x uint32) uint32  { return (x & PLL_PD_MASK) << PLL_PD_SHIFT }
func PLL_MFD(x uint32) uint32 { return (x & PLL_MFD_MASK) << PLL_MFD_SHIFT }
func PLL_MFI(x uint32) uint32 { return (x & PLL_MFI_MASK) << PLL_MFI_SHIFT }
func PLL_MFN(x uint32) uint32 { return (x & PLL_MFN_MASK) << PLL_MFN_SHIFT }

// ------------------------------------------------------------------------------
// i.MX25 CCM (0x70 byte register file)
// ------------------------------------------------------------------------------
const (
	TYPE_IMX25_CCM = "imx25.ccm"

	IMX25_CCM_MPCTL  = 0
	IMX25_CCM_UPCTL  = 1
	IMX25_CCM_CCTL   = 2
	IMX25_CCM_CGCR0  = 3 // CGCR0..2
	IMX25_CCM_PCDR0  = 6 // PCDR0..3
	IMX25_CCM_RCSR   = 10
	IMX25_CCM_CRDR   = 11
	IMX25_CCM_DCVR0  = 12 // DCVR0..3
	IMX25_CCM_LTR0   = 16 // LTR0..3
	IMX25_CCM_LTBR0  = 20 // LTBR0..1
	IMX25_CCM_PMCR0  = 22 // PMCR0..2
	IMX25_CCM_MCR    = 25
	IMX25_CCM_LPIMR0 = 26 // LPIMR0..1

	IMX25_CCM_NUM_REGS      = 0x70 / 4
	IMX25_CCM_MMIO_SIZE     = 0x1000
	IMX25_CCM_STATE_VERSION = 1
)

// CCTL fields
const (
	CCTL_ARM_CLK_DIV_SHIFT = 30
	CCTL_ARM_CLK_DIV_MASK  = 0x3
	CCTL_AHB_CLK_DIV_SHIFT = 28
	CCTL_AHB_CLK_DIV_MASK  = 0x3
	CCTL_MPLL_BYPASS_SHIFT = 22
	CCTL_MPLL_BYPASS_MASK  = 0x1
	CCTL_USB_DIV_SHIFT     = 16
	CCTL_USB_DIV_MASK      = 0x3F
	CCTL_ARM_SRC_SHIFT     = 13
	CCTL_ARM_SRC_MASK      = 0x1
)

// ------------------------------------------------------------------------------
// i.MX31 CCM (0x68 byte register file)
// ------------------------------------------------------------------------------
const (
	TYPE_IMX31_CCM = "imx31.ccm"

	IMX31_CCM_CCMR  = 0
	IMX31_CCM_PDR0  = 1
	IMX31_CCM_PDR1  = 2
	IMX31_CCM_RCSR  = 3
	IMX31_CCM_MPCTL = 4
	IMX31_CCM_UPCTL = 5
	IMX31_CCM_SPCTL = 6
	IMX31_CCM_COSR  = 7
	IMX31_CCM_CGR0  = 8 // CGR0..2
	IMX31_CCM_WIMR  = 11
	IMX31_CCM_LDC   = 12
	IMX31_CCM_DCVR0 = 13 // DCVR0..3
	IMX31_CCM_LTR0  = 17 // LTR0..3
	IMX31_CCM_LTR1  = 18
	IMX31_CCM_LTBR0 = 21 // LTBR0..1
	IMX31_CCM_PMCR0 = 23 // PMCR0..1
	IMX31_CCM_PDR2  = 25

	IMX31_CCM_NUM_REGS      = 0x68 / 4
	IMX31_CCM_MMIO_SIZE     = 0x1000
	IMX31_CCM_STATE_VERSION = 2
)

// CCMR bits
const (
	CCMR_FPME = 1 << 0
	CCMR_PRCS = 3 << 1
	CCMR_MPE  = 1 << 3
	CCMR_MDS  = 1 << 7
	CCMR_FPMF = 1 << 26

	CCMR_PRCS_CKIL = 1 << 1 // PRCS == 01: reference from CKIL x1024
)

// Guest-writable bits per i.MX31 register.
const (
	IMX31_CCMR_WRITE_MASK  = 0x3b6fdfff
	IMX31_PDR0_WRITE_MASK  = 0xff9f3fff
	IMX31_MPCTL_WRITE_MASK = 0xbfff3fff
	IMX31_SPCTL_WRITE_MASK = 0xbfff3fff
)

// PDR0 post-divider fields
const (
	PDR0_MCU_PODF_SHIFT = 0
	PDR0_MCU_PODF_MASK  = 0x7
	PDR0_MAX_PODF_SHIFT = 3
	PDR0_MAX_PODF_MASK  = 0x7
	PDR0_IPG_PODF_SHIFT = 6
	PDR0_IPG_PODF_MASK  = 0x3
	PDR0_NFC_PODF_SHIFT = 8
	PDR0_NFC_PODF_MASK  = 0x7
	PDR0_HSP_PODF_SHIFT = 11
	PDR0_HSP_PODF_MASK  = 0x7
	PDR0_PER_PODF_SHIFT = 16
	PDR0_PER_PODF_MASK  = 0x1f
	PDR0_CSI_PODF_SHIFT = 23
	PDR0_CSI_PODF_MASK  = 0x1ff
)

// ------------------------------------------------------------------------------
// Allwinner A10 CCM (opaque 0x200 byte register bank)
// ------------------------------------------------------------------------------
const (
	TYPE_AW_A10_CCM = "allwinner-a10-ccm"

	AW_A10_CCM_MMIO_SIZE     = 0x200
	AW_A10_CCM_NUM_REGS      = AW_A10_CCM_MMIO_SIZE / 4
	AW_A10_CCM_STATE_VERSION = 1
)

// ------------------------------------------------------------------------------
// Default machine placement
// ------------------------------------------------------------------------------
const (
	IMX25_CCM_BASE  = 0x53F80000
	IMX31_CCM_BASE  = 0x53F80000
	AW_A10_CCM_BASE = 0x01C20000
)

// field extracts a right-aligned bit-field.
func field(value uint32, shift, mask uint32) uint32 {
	return (value >> shift) & mask
}

// insertField places a value into a bit-field position.
func insertField(value uint32, shift, mask uint32) uint32 {
	return (value & mask) << shift
}
