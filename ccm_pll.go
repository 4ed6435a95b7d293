// ccm_pll.go - Fractional-N PLL output frequency shared by the i.MX CCMs

package main

import "github.com/golang/glog"

// CalcPLL returns the output frequency of a PLL programmed with pllreg and
// fed with baseFreq. The base frequency is scaled down by 1024 before the
// multiply so that a tens-of-MHz input times MFI stays inside 32 bits; the
// result is scaled back up afterwards, losing the low 10 bits.
func CalcPLL(pllreg uint32, baseFreq uint32) uint32 {
	mfn := int32(field(pllreg, PLL_MFN_SHIFT, PLL_MFN_MASK)) // Numerator
	mfi := field(pllreg, PLL_MFI_SHIFT, PLL_MFI_MASK)        // Integer part
	mfd := 1 + field(pllreg, PLL_MFD_SHIFT, PLL_MFD_MASK)    // Denominator
	pd := 1 + field(pllreg, PLL_PD_SHIFT, PLL_PD_MASK)       // Pre-divider

	glog.V(3).Infof("[ccm] CalcPLL: pllreg=0x%08X base=%d", pllreg, baseFreq)

	if mfi < PLL_MFI_MIN {
		mfi = PLL_MFI_MIN
	}

	// MFN is 10-bit signed two's complement
	mfn <<= 32 - PLL_MFN_BITS
	mfn >>= 32 - PLL_MFN_BITS

	return ((2 * (baseFreq >> 10) * (mfi*mfd + uint32(mfn))) / (mfd * pd)) << 10
}
