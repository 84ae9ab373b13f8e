package postprocess

// clamp restricts the value to be within the range min and max
func clamp(val, min, max float64) float64 {

	if val > min {

		if val < max {
			return val
		}

		return max
	}

	return min
}
