package gopresentation

import (
	"math"
	"strconv"
)

// Lengths in the model are EMU (English Metric Units), the unit DrawingML
// uses directly. ODF parts get centimetres, settings.xml 1/100 mm.
const (
	emuPerInch       = 914400
	emuPerPoint      = 12700
	emuPerCentimeter = 360000
	emuPerMillimeter = 36000
	emuPerPixel      = emuPerInch / 96

	// maxEMU bounds every converted length so that offsets plus extents
	// cannot overflow.
	maxEMU = math.MaxInt64 / 2
)

// Inch converts inches to EMU.
func Inch(n float64) int64 { return toEMU(n, emuPerInch) }

// Point converts points to EMU.
func Point(n float64) int64 { return toEMU(n, emuPerPoint) }

// Centimeter converts centimetres to EMU.
func Centimeter(n float64) int64 { return toEMU(n, emuPerCentimeter) }

// Millimeter converts millimetres to EMU.
func Millimeter(n float64) int64 { return toEMU(n, emuPerMillimeter) }

// Pixel converts pixels at 96 DPI to EMU.
func Pixel(n float64) int64 { return toEMU(n, emuPerPixel) }

func EMUToInch(emu int64) float64       { return fromEMU(emu, emuPerInch) }
func EMUToPoint(emu int64) float64      { return fromEMU(emu, emuPerPoint) }
func EMUToCentimeter(emu int64) float64 { return fromEMU(emu, emuPerCentimeter) }
func EMUToMillimeter(emu int64) float64 { return fromEMU(emu, emuPerMillimeter) }

// toEMU scales n units of per EMU each, saturating at ±maxEMU. NaN is 0.
func toEMU(n float64, per int64) int64 {
	v := n * float64(per)
	switch {
	case math.IsNaN(v):
		return 0
	case v >= float64(maxEMU):
		return maxEMU
	case v <= -float64(maxEMU):
		return -maxEMU
	}
	return int64(v)
}

func fromEMU(emu, per int64) float64 { return float64(emu) / float64(per) }

// pixelsToEMU converts a sniffed pixel count.
func pixelsToEMU(px int) int64 { return int64(px) * emuPerPixel }

// emuToHundredthMM converts EMU to the 1/100 mm units of ODF settings.
func emuToHundredthMM(emu int64) int64 { return emu / (emuPerMillimeter / 100) }

// odfLength formats an EMU length as an ODF length in centimetres with
// three decimals, e.g. "2.540cm".
func odfLength(emu int64) string {
	return strconv.FormatFloat(EMUToCentimeter(emu), 'f', 3, 64) + "cm"
}
