package field

// Origins returns up to intMax distinct integer time origins sampled evenly
// in [init, last]. Origins that round to the same frame are deduplicated in
// order; fewer than intMax effective origins is not an error.
func Origins(init, last, intMax int) []int {
	if intMax < 1 || last < init {
		return nil
	}
	if intMax == 1 {
		return []int{init}
	}

	step := float64(last-init) / float64(intMax-1)
	seen := map[int]bool{}
	out := []int{}
	for i := 0; i < intMax; i++ {
		t := init + int(float64(i)*step)
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// StrainVorticityStacks runs the sampler at every time origin with a fixed
// lag and stacks the resulting grids along a leading sample axis.
func (s *Sampler) StrainVorticityStacks(origins []int, dt int) (
	strain, vorticity []Grid,
) {
	for _, t := range origins {
		e, w := s.StrainVorticityGrid(t, dt)
		strain = append(strain, e)
		vorticity = append(vorticity, w)
	}
	return strain, vorticity
}

// DisplacementStacks runs the sampler in displacement mode at every time
// origin with a fixed lag and stacks the resulting grids.
func (s *Sampler) DisplacementStacks(origins []int, dt int) (
	density []Grid, u, w []VecGrid, norm []Grid, dir []VecGrid,
) {
	for _, t := range origins {
		d, ut, wt, nt, et := s.DisplacementGrid(t, dt)
		density = append(density, d)
		u = append(u, ut)
		w = append(w, wt)
		norm = append(norm, nt)
		dir = append(dir, et)
	}
	return density, u, w, norm, dir
}
