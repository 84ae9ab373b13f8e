package postprocess

import (
	"strconv"
	"strings"

	"github.com/swdee/go-depthfuse"
)

// BestLabel returns the classification label with the highest confidence.
// Labels are scanned in order starting from an empty label of zero
// confidence and only replaced on a strictly greater confidence, so the first
// seen label wins ties.  The bool is false when no label had a confidence
// above zero.
func BestLabel(labels []depthfuse.ClassLabel) (depthfuse.ClassLabel, bool) {

	best := depthfuse.ClassLabel{}
	found := false

	for _, l := range labels {
		if l.Confidence > best.Confidence {
			best = l
			found = true
		}
	}

	return best, found
}

// LabelText returns the display label of a classification, its identifier
// immediately followed by the shortest decimal form of the confidence.
// Integral confidences keep a decimal point, 1 is written as "1.0".
func LabelText(l depthfuse.ClassLabel) string {

	conf := strconv.FormatFloat(float64(l.Confidence), 'g', -1, 32)

	if !strings.ContainsAny(conf, ".eIN") {
		conf += ".0"
	}

	return l.Identifier + conf
}
