package frame

// Describe computes summary statistics (min, max, mean, median) for every
// numeric column and returns them as a new frame with one row per column.
func (f *Frame) Describe() (*Frame, error) {
	var names []string
	var mins, maxs, means, medians []float64
	for _, name := range f.Names() {
		col, err := f.Col(name)
		if err != nil {
			return nil, err
		}
		if !col.Type().IsNumeric() || col.Len() == 0 {
			continue
		}
		min, err := col.Min()
		if err != nil {
			return nil, err
		}
		max, err := col.Max()
		if err != nil {
			return nil, err
		}
		mean, err := col.Mean()
		if err != nil {
			return nil, err
		}
		median, err := col.Quantile(0.5)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
		mins = append(mins, min)
		maxs = append(maxs, max)
		means = append(means, mean)
		medians = append(medians, median)
	}

	cols := []*Series{
		MustSeries(names, String, "column"),
		MustSeries(mins, Float, "min"),
		MustSeries(maxs, Float, "max"),
		MustSeries(means, Float, "mean"),
		MustSeries(medians, Float, "median"),
	}
	return New(cols...)
}
